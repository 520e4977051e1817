package value

import (
	"reflect"
	"testing"
)

func TestEnvLookupChain(t *testing.T) {
	root := NewEnv(nil)
	child := NewEnv(root)
	root.Put("x", Number(1))
	child.Put("y", Number(2))

	if v := child.Get("x"); v != Number(1) {
		t.Errorf("expected x from the parent, got %s", v)
	}
	if v := root.Get("y"); !IsError(v) {
		t.Errorf("expected y to be unbound in the root, got %s", v)
	}
	if v := child.Get("z").(*Error); v.Kind != UnboundSymbol || v.Msg != "unbound symbol 'z'" {
		t.Errorf("unexpected error %s (%s)", v, v.Kind)
	}

	child.Put("x", Number(3))
	if v := child.Get("x"); v != Number(3) {
		t.Errorf("expected the shadowing binding, got %s", v)
	}
	if v := root.Get("x"); v != Number(1) {
		t.Errorf("expected the root binding untouched, got %s", v)
	}
}

func TestEnvCopiesOnPutAndGet(t *testing.T) {
	env := NewEnv(nil)
	list := NewQExpr(Number(1), Number(2))
	env.Put("l", list)
	list.Pop(0)

	got := env.Get("l").(*QExpr)
	if got.String() != "{1 2}" {
		t.Fatalf("binding changed through the caller's value: %s", got)
	}
	got.Pop(0)
	if again := env.Get("l"); again.String() != "{1 2}" {
		t.Errorf("binding changed through a fetched value: %s", again)
	}
}

func TestEnvDef(t *testing.T) {
	root := NewEnv(nil)
	inner := NewEnv(NewEnv(root))
	inner.Def("g", Str("global"))

	if !root.Has("g") || inner.Has("g") {
		t.Error("expected Def to bind in the root frame only")
	}
	if inner.Root() != root {
		t.Error("Root did not walk to the parentless frame")
	}
}

func TestEnvCopy(t *testing.T) {
	parent := NewEnv(nil)
	env := NewEnv(parent)
	env.Put("a", NewQExpr(Number(1)))

	cp := env.Copy()
	cp.Put("b", Number(2))
	cp.Delete("a")

	if !env.Has("a") || env.Has("b") {
		t.Error("copy shares bindings with the original")
	}
	if cp.Parent() != parent {
		t.Error("expected the copy to keep the parent")
	}
}

func TestEnvNames(t *testing.T) {
	env := NewEnv(nil)
	for _, n := range []string{"c", "a", "b"} {
		env.Put(n, Number(0))
	}
	if got := env.Names(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Names = %v", got)
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	tests := []struct {
		raw     string
		escaped string
	}{
		{"plain", "plain"},
		{"line\nbreak", `line\nbreak`},
		{"tab\there", `tab\there`},
		{`q"uote`, `q\"uote`},
		{`back\slash`, `back\\slash`},
		{"nul\x00", `nul\0`},
	}
	for _, tt := range tests {
		if got := Escape(tt.raw); got != tt.escaped {
			t.Errorf("Escape(%q) = %q, want %q", tt.raw, got, tt.escaped)
		}
		got, err := Unescape(tt.escaped)
		if err != nil || got != tt.raw {
			t.Errorf("Unescape(%q) = %q, %v; want %q", tt.escaped, got, err, tt.raw)
		}
	}

	if got, err := Unescape(`it\'s`); err != nil || got != "it's" {
		t.Errorf("Unescape single quote = %q, %v", got, err)
	}
	for _, bad := range []string{`\q`, `end\`} {
		if _, err := Unescape(bad); err == nil {
			t.Errorf("Unescape(%q): expected an error", bad)
		}
	}
}
