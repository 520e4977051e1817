// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package xen provides the xen runtime.
package xen

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"nickandperla.net/xen/internal/eval"
	"nickandperla.net/xen/internal/stdlib"
	"nickandperla.net/xen/internal/value"
)

// PreludeKey names the stored definition that replaces the built-in prelude
// when it holds a string.
const PreludeKey = "__prelude__"

// Runtime is the xen interpreter runtime.
type Runtime struct {
	evaluator   *eval.Evaluator
	store       eval.Store
	out         io.Writer
	loadPath    []string
	maxDepth    int
	prelude     string // Custom prelude source (if empty, uses stdlib.Prelude)
	noStdlib    bool   // If true, skip loading prelude
	persistMode eval.PersistMode
	logger      *slog.Logger
	sessionID   string
	errs        []error // Setup failures reported by Err
}

// New creates a new xen runtime with the given options.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		maxDepth:  eval.DefaultMaxDepth,
		sessionID: uuid.NewString(),
	}

	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	// Build evaluator options
	evalOpts := []eval.Option{
		eval.WithPersistMode(r.persistMode),
		eval.WithMaxDepth(r.maxDepth),
		eval.WithLogger(r.logger),
	}
	if r.store != nil {
		evalOpts = append(evalOpts, eval.WithStore(r.store))
	}
	if r.out != nil {
		evalOpts = append(evalOpts, eval.WithOutput(r.out))
	}
	if len(r.loadPath) > 0 {
		evalOpts = append(evalOpts, eval.WithLoadPath(r.loadPath...))
	}

	r.evaluator = eval.New(evalOpts...)
	r.recordSession()

	// Load prelude unless disabled
	if !r.noStdlib {
		if err := r.loadPrelude(); err != nil {
			r.errs = append(r.errs, err)
		}
	}

	return r
}

// metadataStore is implemented by stores that keep key/value metadata.
type metadataStore interface {
	SetMetadata(key, value string) error
}

func (r *Runtime) recordSession() {
	ms, ok := r.store.(metadataStore)
	if !ok {
		return
	}
	if err := ms.SetMetadata("last_session", r.sessionID); err != nil {
		r.logger.Debug("could not record session", "session", r.sessionID, "err", err)
	}
}

func (r *Runtime) loadPrelude() error {
	name := stdlib.PreludeName
	prelude := r.prelude
	if prelude == "" {
		prelude = stdlib.Prelude
	} else {
		name = "<prelude>"
	}

	// Check for database override
	if r.store != nil {
		if _, ok, err := r.store.Get(PreludeKey); err == nil && ok {
			if s, ok := r.evaluator.Restore(PreludeKey).(value.Str); ok {
				prelude = string(s)
				name = PreludeKey
			}
		}
	}

	r.logger.Debug("loading prelude", "unit", name)
	if err := r.evaluator.LoadString(name, prelude); err != nil {
		return fmt.Errorf("prelude: %w", err)
	}
	return nil
}

// Err reports failures that happened while the runtime was set up, such as
// a store that could not be opened or a prelude that did not parse.
func (r *Runtime) Err() error {
	return errors.Join(r.errs...)
}

// Eval evaluates src the way the interactive prompt does, as a single
// expression, and returns the printed result. The error is non-nil only when
// src cannot be parsed; evaluation failures are printed Error values.
func (r *Runtime) Eval(src string) (string, error) {
	v, err := r.EvalValue(src)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// EvalValue is like Eval but returns the value itself.
func (r *Runtime) EvalValue(src string) (value.Value, error) {
	return r.evaluator.EvalString(src)
}

// LoadFile loads the named unit, searching the load path. Errors raised by
// individual forms are printed and do not stop the load; the returned error
// reports a unit that could not be read or parsed.
func (r *Runtime) LoadFile(name string) error {
	v := r.evaluator.Load(r.evaluator.Root(), name)
	if errv, ok := v.(*value.Error); ok {
		return errv
	}
	return nil
}

// LoadString evaluates each top-level form of src in turn.
func (r *Runtime) LoadString(name, src string) error {
	return r.evaluator.LoadString(name, src)
}

// Define binds v to name in the root environment.
func (r *Runtime) Define(name string, v value.Value) {
	r.evaluator.Root().Def(name, v)
}

// Lookup returns a copy of the root binding of name.
func (r *Runtime) Lookup(name string) (value.Value, bool) {
	v, ok := r.evaluator.Root().Lookup(name)
	if !ok {
		return nil, false
	}
	return value.Copy(v), true
}

// Names returns the names bound in the root environment, sorted.
func (r *Runtime) Names() []string {
	return r.evaluator.Root().Names()
}

// SessionID identifies this runtime. Stores that keep metadata record it as
// last_session.
func (r *Runtime) SessionID() string {
	return r.sessionID
}

// Store returns the configured store, or nil.
func (r *Runtime) Store() Store {
	return r.store
}

// Close releases resources.
func (r *Runtime) Close() error {
	if r.store != nil {
		return r.store.Close()
	}
	return nil
}
