// Package parse turns xen source text into a generic tagged parse tree.
//
// The tree mirrors the shape produced by a grammar-driven parser: every node
// carries a tag naming the rules that matched it, the literal contents for
// leaves, and its ordered children. Delimiters are kept as "char" leaves and
// the start/end anchors of a unit as "regex" leaves, so consumers decide what
// to skip.
package parse

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"nickandperla.net/xen/internal/scanner"
	"nickandperla.net/xen/internal/token"
)

// Tags used in the parse tree.
const (
	TagRoot    = ">"
	TagNumber  = "expr|number|regex"
	TagSymbol  = "expr|symbol|regex"
	TagString  = "expr|string|regex"
	TagComment = "expr|comment|regex"
	TagSExpr   = "expr|sexpr|>"
	TagQExpr   = "expr|qexpr|>"
	TagChar    = "char"
	TagRegex   = "regex"
)

// ErrUnbalanced is returned when input ends inside an open list.
var ErrUnbalanced = errors.New("unbalanced delimiters")

// Node is a parse tree node.
type Node struct {
	Tag      string
	Contents string
	Line     int
	Children []*Node
}

// Error describes a parse failure in a named unit.
type Error struct {
	Unit string
	Line int
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Unit, e.Line, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Parse parses a complete unit held in a string.
func Parse(name, src string) (*Node, error) {
	return ParseReader(name, strings.NewReader(src))
}

// ParseReader parses a complete unit read from r.
func ParseReader(name string, r io.Reader) (*Node, error) {
	p := &parser{name: name, scan: scanner.New(r)}
	return p.parseUnit()
}

// Unit locates the named source unit and parses it. Absolute names and names
// that exist relative to the working directory are used as-is; otherwise each
// directory in dirs is tried in order.
func Unit(name string, dirs []string) (*Node, error) {
	path, err := Resolve(name, dirs)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseReader(name, f)
}

// Resolve returns the path of the named source unit.
func Resolve(name string, dirs []string) (string, error) {
	if filepath.IsAbs(name) {
		return name, nil
	}
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}
	for _, dir := range dirs {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%s: %w", name, os.ErrNotExist)
}

type parser struct {
	name string
	scan *scanner.Scanner
}

func (p *parser) fail(line int, err error) error {
	return &Error{Unit: p.name, Line: line, Err: err}
}

func (p *parser) parseUnit() (*Node, error) {
	root := &Node{Tag: TagRoot, Line: 1}
	root.Children = append(root.Children, &Node{Tag: TagRegex, Line: 1})

	for {
		item, err := p.scan.Next()
		if err != nil {
			return nil, p.wrap(err)
		}
		if item.Token == token.EOF {
			root.Children = append(root.Children, &Node{Tag: TagRegex, Line: item.Line})
			return root, nil
		}
		if item.Token.IsClose() {
			return nil, p.fail(item.Line, fmt.Errorf("unexpected %q", item.Value))
		}
		node, err := p.parseExpr(item)
		if err != nil {
			return nil, err
		}
		root.Children = append(root.Children, node)
	}
}

func (p *parser) parseExpr(item *scanner.Item) (*Node, error) {
	switch item.Token {
	case token.NUMBER:
		return &Node{Tag: TagNumber, Contents: item.Value, Line: item.Line}, nil
	case token.SYMBOL:
		return &Node{Tag: TagSymbol, Contents: item.Value, Line: item.Line}, nil
	case token.STRING:
		return &Node{Tag: TagString, Contents: item.Value, Line: item.Line}, nil
	case token.COMMENT:
		return &Node{Tag: TagComment, Contents: item.Value, Line: item.Line}, nil
	case token.LPAREN, token.LBRACE:
		return p.parseList(item)
	}
	return nil, p.fail(item.Line, fmt.Errorf("unexpected token %s", item.Token))
}

func (p *parser) parseList(open *scanner.Item) (*Node, error) {
	tag := TagSExpr
	if open.Token == token.LBRACE {
		tag = TagQExpr
	}
	node := &Node{Tag: tag, Line: open.Line}
	node.Children = append(node.Children, &Node{Tag: TagChar, Contents: open.Value, Line: open.Line})

	closer := open.Token.Closer()
	for {
		item, err := p.scan.Next()
		if err != nil {
			return nil, p.wrap(err)
		}
		switch {
		case item.Token == token.EOF:
			return nil, p.fail(open.Line, ErrUnbalanced)
		case item.Token == closer:
			node.Children = append(node.Children, &Node{Tag: TagChar, Contents: item.Value, Line: item.Line})
			return node, nil
		case item.Token.IsClose():
			return nil, p.fail(item.Line, fmt.Errorf("unexpected %q", item.Value))
		}
		child, err := p.parseExpr(item)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
}

func (p *parser) wrap(err error) error {
	var serr *scanner.Error
	if errors.As(err, &serr) {
		if serr.Msg == "unterminated string" {
			return p.fail(serr.Line, fmt.Errorf("%s: %w", serr.Msg, ErrUnbalanced))
		}
		return p.fail(serr.Line, errors.New(serr.Msg))
	}
	return p.fail(p.scan.Line(), err)
}

// String renders the tree in an indented debug format.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb, 0)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.Tag)
	if n.Contents != "" {
		sb.WriteString(" '")
		sb.WriteString(n.Contents)
		sb.WriteString("'")
	}
	sb.WriteString("\n")
	for _, c := range n.Children {
		c.write(sb, depth+1)
	}
}
