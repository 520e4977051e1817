package eval

import (
	"strconv"
	"strings"

	"nickandperla.net/xen/internal/parse"
	"nickandperla.net/xen/internal/value"
)

// Read converts a parse tree into a value tree without evaluating it.
// The root of a unit becomes an S-expression holding its top-level forms.
func Read(n *parse.Node) value.Value {
	switch {
	case strings.Contains(n.Tag, "number"):
		return readNumber(n.Contents)
	case strings.Contains(n.Tag, "symbol"):
		return value.Symbol(n.Contents)
	case strings.Contains(n.Tag, "string"):
		return readString(n.Contents)
	}

	var cells []value.Value
	for _, child := range n.Children {
		if skipNode(child) {
			continue
		}
		cells = append(cells, Read(child))
	}
	if strings.Contains(n.Tag, "qexpr") {
		return value.NewQExpr(cells...)
	}
	// The root tag and sexpr both produce an S-expression.
	return value.NewSExpr(cells...)
}

func skipNode(n *parse.Node) bool {
	switch n.Contents {
	case "(", ")", "{", "}":
		return true
	}
	return n.Tag == parse.TagRegex || strings.Contains(n.Tag, "comment")
}

func readNumber(text string) value.Value {
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return value.Errorf(value.MalformedNumber, "invalid number")
	}
	return value.Number(n)
}

func readString(text string) value.Value {
	text = strings.TrimPrefix(text, `"`)
	text = strings.TrimSuffix(text, `"`)
	s, err := value.Unescape(text)
	if err != nil {
		return value.Errorf(value.MalformedString, "invalid string: %v", err)
	}
	return value.Str(s)
}
