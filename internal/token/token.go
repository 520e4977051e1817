// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package token defines xen token types and delimiter runes.
package token

// Token represents a xen token type.
type Token int

const (
	EOF Token = iota
	NUMBER
	SYMBOL
	STRING
	COMMENT

	// Delimiters
	LPAREN // ( opens an S-expression
	RPAREN // ) closes an S-expression
	LBRACE // { opens a Q-expression
	RBRACE // } closes a Q-expression

	ILLEGAL
)

// Delimiter runes.
const (
	RuneLParen  = '('
	RuneRParen  = ')'
	RuneLBrace  = '{'
	RuneRBrace  = '}'
	RuneQuote   = '"'
	RuneComment = ';'
	RuneEscape  = '\\'
)

// IsDelimiter returns true if the rune opens or closes a list.
func IsDelimiter(r rune) bool {
	switch r {
	case RuneLParen, RuneRParen, RuneLBrace, RuneRBrace:
		return true
	}
	return false
}

// TokenFromRune returns the token type for a delimiter rune.
func TokenFromRune(r rune) Token {
	switch r {
	case RuneLParen:
		return LPAREN
	case RuneRParen:
		return RPAREN
	case RuneLBrace:
		return LBRACE
	case RuneRBrace:
		return RBRACE
	}
	return ILLEGAL
}

// IsSymbolRune reports whether r may appear in a symbol or number.
// Mirrors the character class [a-zA-Z0-9_+\-*/\\=<>!&%^?].
func IsSymbolRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	switch r {
	case '_', '+', '-', '*', '/', '\\', '=', '<', '>', '!', '&', '%', '^', '?':
		return true
	}
	return false
}

// String returns the string representation of a token.
func (t Token) String() string {
	switch t {
	case EOF:
		return "EOF"
	case NUMBER:
		return "NUMBER"
	case SYMBOL:
		return "SYMBOL"
	case STRING:
		return "STRING"
	case COMMENT:
		return "COMMENT"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	case LBRACE:
		return "LBRACE"
	case RBRACE:
		return "RBRACE"
	case ILLEGAL:
		return "ILLEGAL"
	}
	return "UNKNOWN"
}

// IsOpen returns true if the token opens a list.
func (t Token) IsOpen() bool {
	return t == LPAREN || t == LBRACE
}

// IsClose returns true if the token closes a list.
func (t Token) IsClose() bool {
	return t == RPAREN || t == RBRACE
}

// Closer returns the token that closes a list opened by t.
func (t Token) Closer() Token {
	switch t {
	case LPAREN:
		return RPAREN
	case LBRACE:
		return RBRACE
	}
	return ILLEGAL
}
