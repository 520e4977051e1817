// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package scanner provides a streaming lexer for xen source text.
package scanner

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"nickandperla.net/xen/internal/token"
)

// Scanner tokenizes xen input rune-by-rune.
type Scanner struct {
	reader *bufio.Reader
	buf    strings.Builder
	peeked *Item
	line   int // Current line number (1-based)
}

// Item represents a scanned token with its value.
type Item struct {
	Token token.Token
	Value string
	Line  int // Line number where this token started
}

// Error is a lexical error with its position.
type Error struct {
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// New creates a new Scanner from an io.Reader.
func New(r io.Reader) *Scanner {
	return &Scanner{
		reader: bufio.NewReader(r),
		line:   1,
	}
}

// NewFromString creates a new Scanner from a string.
func NewFromString(s string) *Scanner {
	return New(strings.NewReader(s))
}

// Line returns the current line number (1-based).
func (s *Scanner) Line() int {
	return s.line
}

// Peek returns the next item without consuming it.
func (s *Scanner) Peek() (*Item, error) {
	if s.peeked != nil {
		return s.peeked, nil
	}
	item, err := s.Next()
	if err != nil {
		return nil, err
	}
	s.peeked = item
	return item, nil
}

// Next returns the next token from the input.
func (s *Scanner) Next() (*Item, error) {
	if s.peeked != nil {
		item := s.peeked
		s.peeked = nil
		return item, nil
	}

	if err := s.SkipWhitespace(); err != nil {
		return nil, err
	}

	s.buf.Reset()
	startLine := s.line

	r, _, err := s.reader.ReadRune()
	if err == io.EOF {
		return &Item{Token: token.EOF, Line: s.line}, nil
	}
	if err != nil {
		return nil, err
	}

	switch {
	case token.IsDelimiter(r):
		return &Item{Token: token.TokenFromRune(r), Value: string(r), Line: startLine}, nil
	case r == token.RuneComment:
		s.buf.WriteRune(r)
		return s.scanComment(startLine)
	case r == token.RuneQuote:
		s.buf.WriteRune(r)
		return s.scanString(startLine)
	case token.IsSymbolRune(r):
		s.buf.WriteRune(r)
		return s.scanSymbol(startLine)
	}
	return nil, &Error{Line: startLine, Msg: fmt.Sprintf("unexpected character %q", r)}
}

// scanComment consumes a ';' comment up to (not including) the line break.
func (s *Scanner) scanComment(startLine int) (*Item, error) {
	for {
		r, _, err := s.reader.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if r == '\r' || r == '\n' {
			s.reader.UnreadRune()
			break
		}
		s.buf.WriteRune(r)
	}
	return &Item{Token: token.COMMENT, Value: s.buf.String(), Line: startLine}, nil
}

// scanString consumes a double-quoted string literal, quotes included.
// Escapes are kept verbatim; decoding is the reader's job.
func (s *Scanner) scanString(startLine int) (*Item, error) {
	for {
		r, _, err := s.reader.ReadRune()
		if err == io.EOF {
			return nil, &Error{Line: startLine, Msg: "unterminated string"}
		}
		if err != nil {
			return nil, err
		}
		if r == '\n' {
			s.line++
		}
		s.buf.WriteRune(r)

		switch r {
		case token.RuneQuote:
			return &Item{Token: token.STRING, Value: s.buf.String(), Line: startLine}, nil
		case token.RuneEscape:
			next, _, err := s.reader.ReadRune()
			if err == io.EOF {
				return nil, &Error{Line: startLine, Msg: "unterminated string"}
			}
			if err != nil {
				return nil, err
			}
			if next == '\n' {
				s.line++
			}
			s.buf.WriteRune(next)
		}
	}
}

// scanSymbol consumes a run of symbol characters. A run that looks like
// -?[0-9]+ is a number, anything else is a symbol.
func (s *Scanner) scanSymbol(startLine int) (*Item, error) {
	for {
		r, _, err := s.reader.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !token.IsSymbolRune(r) {
			s.reader.UnreadRune()
			break
		}
		s.buf.WriteRune(r)
	}
	text := s.buf.String()
	if isNumber(text) {
		return &Item{Token: token.NUMBER, Value: text, Line: startLine}, nil
	}
	return &Item{Token: token.SYMBOL, Value: text, Line: startLine}, nil
}

func isNumber(text string) bool {
	digits := strings.TrimPrefix(text, "-")
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// SkipWhitespace consumes and discards whitespace.
func (s *Scanner) SkipWhitespace() error {
	for {
		r, _, err := s.reader.ReadRune()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if !unicode.IsSpace(r) {
			s.reader.UnreadRune()
			return nil
		}
		if r == '\n' {
			s.line++
		}
	}
}
