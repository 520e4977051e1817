package parse

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseShape(t *testing.T) {
	root, err := Parse("test", "(+ 1 {x})")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.Tag != TagRoot {
		t.Fatalf("root tag = %q", root.Tag)
	}
	// regex anchor, the form, regex anchor
	if len(root.Children) != 3 {
		t.Fatalf("expected 3 root children, got %d:\n%s", len(root.Children), root)
	}
	if root.Children[0].Tag != TagRegex || root.Children[2].Tag != TagRegex {
		t.Errorf("expected regex anchors around the unit:\n%s", root)
	}

	sexpr := root.Children[1]
	if sexpr.Tag != TagSExpr {
		t.Fatalf("expected sexpr, got %q", sexpr.Tag)
	}
	var tags []string
	for _, c := range sexpr.Children {
		tags = append(tags, c.Tag+":"+c.Contents)
	}
	want := []string{
		"char:(",
		TagSymbol + ":+",
		TagNumber + ":1",
		TagQExpr + ":",
		"char:)",
	}
	if strings.Join(tags, " ") != strings.Join(want, " ") {
		t.Errorf("children = %v, want %v", tags, want)
	}
}

func TestParseKeepsComments(t *testing.T) {
	root, err := Parse("test", "; header\nx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.Children[1].Tag != TagComment || root.Children[1].Contents != "; header" {
		t.Errorf("expected a comment node:\n%s", root)
	}
	if root.Children[2].Line != 2 {
		t.Errorf("expected x on line 2, got %d", root.Children[2].Line)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input      string
		unbalanced bool
	}{
		{"(+ 1", true},
		{"{1 (2}", false},
		{")", false},
		{`"open`, true},
		{"#", false},
	}

	for _, tt := range tests {
		_, err := Parse("unit", tt.input)
		if err == nil {
			t.Errorf("%q: expected an error", tt.input)
			continue
		}
		var perr *Error
		if !errors.As(err, &perr) || perr.Unit != "unit" {
			t.Errorf("%q: expected *Error for unit, got %v", tt.input, err)
		}
		if got := errors.Is(err, ErrUnbalanced); got != tt.unbalanced {
			t.Errorf("%q: errors.Is(ErrUnbalanced) = %v, want %v", tt.input, got, tt.unbalanced)
		}
	}
}

func TestUnit(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "lib.xen"), []byte("(def {x} 1)"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	root, err := Unit("lib.xen", []string{t.TempDir(), dir})
	if err != nil {
		t.Fatalf("Unit: %v", err)
	}
	if len(root.Children) != 3 {
		t.Errorf("expected one form, got:\n%s", root)
	}

	abs := filepath.Join(dir, "lib.xen")
	if p, err := Resolve(abs, nil); err != nil || p != abs {
		t.Errorf("Resolve(%q) = %q, %v", abs, p, err)
	}

	if _, err := Unit("missing.xen", []string{dir}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}
