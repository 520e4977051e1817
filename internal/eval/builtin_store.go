// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import (
	"nickandperla.net/xen/internal/parse"
	"nickandperla.net/xen/internal/store"
	"nickandperla.net/xen/internal/value"
)

// symbolArgs checks that args is a single Q-expression of symbols and
// returns their names.
func symbolArgs(fn string, args *value.SExpr) ([]string, *value.Error) {
	if err := checkCount(fn, args, 1); err != nil {
		return nil, err
	}
	if err := checkType(fn, args, 0, value.TypeQExpr); err != nil {
		return nil, err
	}
	var names []string
	for _, s := range args.Cells[0].(*value.QExpr).Cells {
		sym, ok := s.(value.Symbol)
		if !ok {
			return nil, value.Errorf(value.TypeMismatch,
				"Function '%s' passed non-symbol. Got %s, Expected %s.",
				fn, s.Type(), value.TypeSymbol)
		}
		names = append(names, string(sym))
	}
	return names, nil
}

func noStore(fn string) *value.Error {
	return value.Errorf(value.StoreFailure, "Function '%s' needs a store, none configured.", fn)
}

// persistOne writes the source form of v under name.
func (e *Evaluator) persistOne(name string, v value.Value) *value.Error {
	src := value.Source(v)
	if err := e.store.Put(name, src); err != nil {
		return value.Errorf(value.StoreFailure, "could not persist '%s': %v", name, err)
	}
	e.logger.Debug("persisted", "name", name, "source", src)
	return nil
}

// builtinPersist stores the current bindings of the given symbols.
func builtinPersist(e *Evaluator, env *value.Env, args *value.SExpr) value.Value {
	names, errv := symbolArgs("persist", args)
	if errv != nil {
		return errv
	}
	if e.persistMode == PersistNever {
		return value.NewSExpr()
	}
	if e.store == nil {
		return noStore("persist")
	}
	for _, name := range names {
		v := env.Get(name)
		if err, ok := v.(*value.Error); ok {
			return err
		}
		if err := e.persistOne(name, v); err != nil {
			return err
		}
	}
	return value.NewSExpr()
}

// builtinRestore evaluates stored definitions and binds them globally.
func builtinRestore(e *Evaluator, env *value.Env, args *value.SExpr) value.Value {
	names, errv := symbolArgs("restore", args)
	if errv != nil {
		return errv
	}
	if e.store == nil {
		return noStore("restore")
	}
	for _, name := range names {
		v := e.restoreOne(name)
		if err, ok := v.(*value.Error); ok {
			return err
		}
		env.Def(name, v)
	}
	return value.NewSExpr()
}

// Restore evaluates the stored definition of name and binds it in the root
// environment.
func (e *Evaluator) Restore(name string) value.Value {
	if e.store == nil {
		return noStore("restore")
	}
	v := e.restoreOne(name)
	if !value.IsError(v) {
		e.root.Def(name, v)
	}
	return v
}

func (e *Evaluator) restoreOne(name string) value.Value {
	src, ok, err := e.store.Get(name)
	if err != nil {
		return value.Errorf(value.StoreFailure, "could not restore '%s': %v", name, err)
	}
	if !ok {
		return value.Errorf(value.StoreFailure, "no stored definition for '%s'", name)
	}
	node, err := parse.Parse(name, src)
	if err != nil {
		return value.Errorf(value.StoreFailure, "could not restore '%s': %v", name, err)
	}
	e.logger.Debug("restored", "name", name, "source", src)
	return e.Eval(e.root, Read(node))
}

// builtinHistory returns the stored versions of a definition, oldest first.
func builtinHistory(e *Evaluator, env *value.Env, args *value.SExpr) value.Value {
	names, errv := symbolArgs("history", args)
	if errv != nil {
		return errv
	}
	if len(names) != 1 {
		return value.Errorf(value.ArityMismatch,
			"Function 'history' passed incorrect number of symbols. Got %d, Expected 1.", len(names))
	}

	hs := historyStore(e)
	if hs == nil {
		return value.NewQExpr()
	}

	entries, err := hs.GetHistory(names[0], 0)
	if err != nil {
		return value.Errorf(value.StoreFailure, "could not read history of '%s': %v", names[0], err)
	}

	cells := make([]value.Value, 0, len(entries))
	for _, ve := range entries {
		cells = append(cells, value.Str(ve.Source))
	}
	return value.NewQExpr(cells...)
}

// historyStore type-asserts the evaluator's store to HistoryStore.
func historyStore(e *Evaluator) store.HistoryStore {
	if e.store == nil {
		return nil
	}
	hs, _ := e.store.(store.HistoryStore)
	return hs
}
