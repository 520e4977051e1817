package eval

import (
	"testing"

	"nickandperla.net/xen/internal/parse"
	"nickandperla.net/xen/internal/value"
)

func TestRead(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 2 3", "(1 2 3)"},
		{"-42", "(-42)"},
		{"(+ 1 2)", "((+ 1 2))"},
		{"{1 {2 3}}", "({1 {2 3}})"},
		{"{1 ; ignored\n 2}", "({1 2})"},
		{`"a\tb"`, `("a\tb")`},
		{`\ {x & xs} {xs}`, `(\ {x & xs} {xs})`},
		{"", "()"},
	}

	for _, tt := range tests {
		node, err := parse.Parse("test", tt.input)
		if err != nil {
			t.Fatalf("%q: parse error: %v", tt.input, err)
		}
		if got := Read(node).String(); got != tt.expected {
			t.Errorf("%q: expected %s, got %s", tt.input, tt.expected, got)
		}
	}
}

func TestReadDoesNotEvaluate(t *testing.T) {
	node, err := parse.Parse("test", "(undefined (/ 1 0))")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	v := Read(node)
	if value.IsError(v) {
		t.Fatalf("expected a plain tree, got %s", v)
	}
	if v.String() != "((undefined (/ 1 0)))" {
		t.Errorf("unexpected tree %s", v)
	}
}

func TestReadHandBuiltTree(t *testing.T) {
	// Trees from any producer work as long as the tags follow the same
	// naming: delimiters, regex anchors and comments are skipped.
	root := &parse.Node{
		Tag: ">",
		Children: []*parse.Node{
			{Tag: "regex"},
			{Tag: "expr|qexpr|>", Children: []*parse.Node{
				{Tag: "char", Contents: "{"},
				{Tag: "expr|number|regex", Contents: "7"},
				{Tag: "expr|comment|regex", Contents: "; note"},
				{Tag: "expr|symbol|regex", Contents: "x"},
				{Tag: "char", Contents: "}"},
			}},
			{Tag: "regex"},
		},
	}
	if got := Read(root).String(); got != "({7 x})" {
		t.Errorf("expected ({7 x}), got %s", got)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		node *parse.Node
		kind value.ErrorKind
		msg  string
	}{
		{&parse.Node{Tag: parse.TagNumber, Contents: "99999999999999999999"}, value.MalformedNumber, "invalid number"},
		{&parse.Node{Tag: parse.TagString, Contents: `"bad \q"`}, value.MalformedString, `invalid string: invalid escape '\q'`},
	}
	for _, tt := range tests {
		errv, ok := Read(tt.node).(*value.Error)
		if !ok {
			t.Fatalf("%q: expected an Error value", tt.node.Contents)
		}
		if errv.Kind != tt.kind || errv.Msg != tt.msg {
			t.Errorf("%q: got %s (%q), want %s (%q)", tt.node.Contents, errv.Kind, errv.Msg, tt.kind, tt.msg)
		}
	}
}
