// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package eval implements the xen evaluator.
package eval

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"nickandperla.net/xen/internal/parse"
	"nickandperla.net/xen/internal/value"
)

// Store is the interface for definition persistence. Values are stored as
// source text.
type Store interface {
	Get(name string) (string, bool, error)
	Put(name, source string) error
	Delete(name string) error
	Names() ([]string, error)
	Close() error
}

// PersistMode controls when definitions are persisted.
type PersistMode int

const (
	// PersistOnDemand is the default - explicit persist/restore calls only.
	PersistOnDemand PersistMode = iota
	// PersistAlways persists every global def as it happens.
	PersistAlways
	// PersistNever makes persist a no-op (memory-only mode).
	PersistNever
)

// String returns the string representation of a PersistMode.
func (m PersistMode) String() string {
	switch m {
	case PersistOnDemand:
		return "ON_DEMAND"
	case PersistAlways:
		return "ALWAYS"
	case PersistNever:
		return "NEVER"
	default:
		return "UNKNOWN"
	}
}

// ParsePersistMode parses a string into a PersistMode.
func ParsePersistMode(s string) (PersistMode, bool) {
	switch strings.ToUpper(s) {
	case "ON_DEMAND", "":
		return PersistOnDemand, true
	case "ALWAYS":
		return PersistAlways, true
	case "NEVER":
		return PersistNever, true
	default:
		return PersistOnDemand, false
	}
}

// Loader parses the named source unit.
type Loader func(name string) (*parse.Node, error)

// DefaultMaxDepth bounds nested reductions unless overridden.
const DefaultMaxDepth = 10000

// Evaluator reduces xen values. It owns the root environment and the table
// of native operations.
//
// An Evaluator is not safe for concurrent use.
type Evaluator struct {
	root        *value.Env
	builtins    map[string]BuiltinFunc // keyed by Builtin.Op
	out         io.Writer
	loader      Loader
	loadPath    []string
	store       Store
	persistMode PersistMode
	maxDepth    int
	depth       int
	logger      *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithOutput sets the writer used by print and by load diagnostics.
func WithOutput(w io.Writer) Option {
	return func(e *Evaluator) { e.out = w }
}

// WithLoader replaces the source unit loader used by load.
func WithLoader(l Loader) Option {
	return func(e *Evaluator) { e.loader = l }
}

// WithLoadPath sets directories searched by the default loader.
func WithLoadPath(dirs ...string) Option {
	return func(e *Evaluator) { e.loadPath = append(e.loadPath, dirs...) }
}

// WithStore sets the persistence store.
func WithStore(s Store) Option {
	return func(e *Evaluator) { e.store = s }
}

// WithPersistMode sets the persistence mode.
func WithPersistMode(mode PersistMode) Option {
	return func(e *Evaluator) { e.persistMode = mode }
}

// WithMaxDepth bounds the nesting of reductions. Zero disables the bound.
func WithMaxDepth(n int) Option {
	return func(e *Evaluator) { e.maxDepth = n }
}

// WithLogger sets the logger for debug tracing.
func WithLogger(l *slog.Logger) Option {
	return func(e *Evaluator) { e.logger = l }
}

// New creates a new Evaluator with a root environment holding the builtins.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		root:     value.NewEnv(nil),
		builtins: make(map[string]BuiltinFunc),
		out:      os.Stdout,
		maxDepth: DefaultMaxDepth,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.loader == nil {
		dirs := e.loadPath
		e.loader = func(name string) (*parse.Node, error) {
			return parse.Unit(name, dirs)
		}
	}
	registerBuiltins(e)
	return e
}

// Root returns the root environment.
func (e *Evaluator) Root() *value.Env {
	return e.root
}

// Store returns the configured store, or nil.
func (e *Evaluator) Store() Store {
	return e.store
}

// Output returns the writer used by print.
func (e *Evaluator) Output() io.Writer {
	return e.out
}

// Eval reduces v in env. Symbols resolve to a copy of their binding,
// S-expressions are applied, everything else evaluates to itself.
func (e *Evaluator) Eval(env *value.Env, v value.Value) value.Value {
	switch x := v.(type) {
	case value.Symbol:
		return env.Get(string(x))
	case *value.SExpr:
		return e.evalSExpr(env, x)
	}
	return v
}

func (e *Evaluator) evalSExpr(env *value.Env, s *value.SExpr) value.Value {
	if e.maxDepth > 0 && e.depth >= e.maxDepth {
		return value.Errorf(value.RecursionLimit, "maximum recursion depth exceeded")
	}
	e.depth++
	defer func() { e.depth-- }()

	for i, c := range s.Cells {
		s.Cells[i] = e.Eval(env, c)
	}
	for _, c := range s.Cells {
		if err, ok := c.(*value.Error); ok {
			return err
		}
	}

	switch s.Len() {
	case 0:
		return s
	case 1:
		return s.Cells[0]
	}

	f := s.Pop(0)
	if f.Type() != value.TypeFunction {
		return value.Errorf(value.TypeMismatch,
			"S-Expression starts with incorrect type. Got %s, Expected %s.",
			f.Type(), value.TypeFunction)
	}
	return e.Call(env, f, s)
}

// Call applies fn to args in the calling environment env. A closure that
// receives fewer arguments than formals returns a copy of itself holding the
// bindings made so far.
func (e *Evaluator) Call(env *value.Env, fn value.Value, args *value.SExpr) value.Value {
	switch f := fn.(type) {
	case *value.Builtin:
		impl, ok := e.builtins[f.Op]
		if !ok {
			return value.Errorf(value.UnknownFunction, "Unknown Function!")
		}
		return impl(e, env, args)
	case *value.Closure:
		return e.callClosure(env, f, args)
	}
	return value.Errorf(value.TypeMismatch, "Cannot call %s, Expected %s.", fn.Type(), value.TypeFunction)
}

func (e *Evaluator) callClosure(env *value.Env, f *value.Closure, args *value.SExpr) value.Value {
	given := args.Len()
	total := f.Formals.Len()

	for args.Len() > 0 {
		if f.Formals.Len() == 0 {
			return value.Errorf(value.ArityMismatch,
				"too many arguments: got %d, expected %d", given, total)
		}

		sym, errv := formalName(f.Formals.Pop(0))
		if errv != nil {
			return errv
		}

		if sym == "&" {
			if f.Formals.Len() != 1 {
				return malformedFormals()
			}
			rest, errv := formalName(f.Formals.Pop(0))
			if errv != nil {
				return errv
			}
			f.Env.Put(rest, args.AsQExpr())
			break
		}

		f.Env.Put(sym, args.Pop(0))
	}

	// Zero variadic arguments: bind the rest symbol to {}.
	if f.Formals.Len() > 0 && f.Formals.Cells[0] == value.Symbol("&") {
		if f.Formals.Len() != 2 {
			return malformedFormals()
		}
		f.Formals.Pop(0)
		rest, errv := formalName(f.Formals.Pop(0))
		if errv != nil {
			return errv
		}
		f.Env.Put(rest, value.NewQExpr())
	}

	if f.Formals.Len() > 0 {
		return f.Copy()
	}

	f.Env.SetParent(env)
	return e.Eval(f.Env, f.Body.Copy().AsSExpr())
}

func formalName(v value.Value) (string, *value.Error) {
	sym, ok := v.(value.Symbol)
	if !ok {
		return "", value.Errorf(value.MalformedFormals,
			"Cannot define non-symbol. Got %s, Expected %s.", v.Type(), value.TypeSymbol)
	}
	return string(sym), nil
}

func malformedFormals() *value.Error {
	return value.Errorf(value.MalformedFormals,
		"Function format invalid. Symbol '&' not followed by single symbol.")
}

// EvalString parses src and reduces the whole unit as one S-expression, the
// way the interactive prompt does.
func (e *Evaluator) EvalString(src string) (value.Value, error) {
	node, err := parse.Parse("<stdin>", src)
	if err != nil {
		return nil, err
	}
	return e.Eval(e.root, Read(node)), nil
}

// LoadString parses src and evaluates each top-level form in turn.
func (e *Evaluator) LoadString(name, src string) error {
	node, err := parse.Parse(name, src)
	if err != nil {
		return err
	}
	e.LoadNode(e.root, node)
	return nil
}

// Load parses the named unit and evaluates each top-level form in env.
// Errors produced by a form are printed and evaluation continues with the
// next form. A unit that cannot be parsed yields an Error value.
func (e *Evaluator) Load(env *value.Env, name string) value.Value {
	node, err := e.loader(name)
	if err != nil {
		e.logger.Debug("load failed", "unit", name, "err", err)
		return value.Errorf(value.LoadFailure, "Could not load Library %v", err)
	}
	e.logger.Debug("loading unit", "unit", name)
	return e.LoadNode(env, node)
}

// LoadNode evaluates each top-level form of a parsed unit.
func (e *Evaluator) LoadNode(env *value.Env, node *parse.Node) value.Value {
	forms, ok := Read(node).(*value.SExpr)
	if !ok {
		return value.NewSExpr()
	}
	for _, form := range forms.Cells {
		x := e.Eval(env, form)
		if x.Type() == value.TypeError {
			fmt.Fprintln(e.out, x.String())
		}
	}
	return value.NewSExpr()
}
