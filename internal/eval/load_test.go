package eval

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nickandperla.net/xen/internal/parse"
	"nickandperla.net/xen/internal/value"
)

func TestLoadContinuesPastErrors(t *testing.T) {
	var out bytes.Buffer
	units := map[string]string{
		"unit": "(def {a} 1)\n(undefined)\n; comment\n(def {b} 2)\n",
	}
	e := New(WithOutput(&out), WithLoader(func(name string) (*parse.Node, error) {
		src, ok := units[name]
		if !ok {
			return nil, errors.New("no such unit")
		}
		return parse.Parse(name, src)
	}))

	if got := run(t, e, `load "unit"`); got != "()" {
		t.Errorf("expected (), got %s", got)
	}
	if !strings.Contains(out.String(), "Error: unbound symbol 'undefined'") {
		t.Errorf("expected the error to be printed, got %q", out.String())
	}
	if got := run(t, e, "(+ a b)"); got != "3" {
		t.Errorf("expected both definitions to be loaded, got %s", got)
	}

	errv := runErr(t, e, `load "missing"`)
	if errv.Kind != value.LoadFailure {
		t.Errorf("kind = %s, want LoadFailure", errv.Kind)
	}
	if errv.Msg != "Could not load Library no such unit" {
		t.Errorf("message = %q", errv.Msg)
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	src := `(def {double} (\ {x} {* 2 x}))` + "\n" + `(print "loaded")` + "\n"
	if err := os.WriteFile(filepath.Join(dir, "lib.xen"), []byte(src), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var out bytes.Buffer
	e := New(WithOutput(&out), WithLoadPath(dir))
	run(t, e, `(load "lib.xen")`)
	if out.String() != "\"loaded\" \n" {
		t.Errorf("unexpected output %q", out.String())
	}
	if got := run(t, e, "(double 21)"); got != "42" {
		t.Errorf("expected 42, got %s", got)
	}

	errv := runErr(t, e, `(load "nope.xen")`)
	if errv.Kind != value.LoadFailure {
		t.Errorf("kind = %s, want LoadFailure", errv.Kind)
	}
}

func TestLoadParseFailure(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.xen"), []byte("(def {x} 1"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	e := New(WithLoadPath(dir))
	errv := runErr(t, e, `(load "bad.xen")`)
	if errv.Kind != value.LoadFailure {
		t.Errorf("kind = %s, want LoadFailure", errv.Kind)
	}
	if !strings.HasPrefix(errv.Msg, "Could not load Library") {
		t.Errorf("message = %q", errv.Msg)
	}
}

func TestLoadString(t *testing.T) {
	var out bytes.Buffer
	e := New(WithOutput(&out))
	if err := e.LoadString("inline", "(def {x} 5) (error \"oops\") (def {y} x)"); err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	if out.String() != "Error: oops\n" {
		t.Errorf("unexpected output %q", out.String())
	}
	if got := run(t, e, "y"); got != "5" {
		t.Errorf("expected 5, got %s", got)
	}
	if err := e.LoadString("inline", "(def {x}"); !errors.Is(err, parse.ErrUnbalanced) {
		t.Errorf("expected ErrUnbalanced, got %v", err)
	}
}
