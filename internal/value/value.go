// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package value defines xen runtime values and environments.
package value

import "fmt"

// Type identifies the variant of a Value.
type Type int

const (
	TypeError Type = iota
	TypeNumber
	TypeSymbol
	TypeString
	TypeFunction
	TypeSExpr
	TypeQExpr
)

// String returns the user-facing name of the type.
func (t Type) String() string {
	switch t {
	case TypeError:
		return "Error"
	case TypeNumber:
		return "Number"
	case TypeSymbol:
		return "Symbol"
	case TypeString:
		return "String"
	case TypeFunction:
		return "Function"
	case TypeSExpr:
		return "S-Expression"
	case TypeQExpr:
		return "Q-Expression"
	}
	return "Unknown"
}

// Value is the interface all runtime values implement. The set of
// implementations is closed.
type Value interface {
	// Type returns the variant tag.
	Type() Type
	// String returns the printed representation.
	String() string
	isValue()
}

// Number is a signed 64-bit integer.
type Number int64

func (Number) Type() Type { return TypeNumber }
func (Number) isValue()   {}

// Symbol is an identifier, resolved by evaluation.
type Symbol string

func (Symbol) Type() Type { return TypeSymbol }
func (Symbol) isValue()   {}

// Str is a string literal.
type Str string

func (Str) Type() Type { return TypeString }
func (Str) isValue()   {}

// Error is an error carried as an ordinary value.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (*Error) Type() Type { return TypeError }
func (*Error) isValue()   {}

// Errorf creates an Error value of the given kind.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Builtin refers to a native operation by the name it was registered under.
// Aliases registered for the same operation share Op.
type Builtin struct {
	Name string
	Op   string
}

func (*Builtin) Type() Type { return TypeFunction }
func (*Builtin) isValue()   {}

// Closure is a user-defined function. Env holds the formals bound so far;
// its parent is attached only when the body is reduced.
type Closure struct {
	Formals *QExpr
	Body    *QExpr
	Env     *Env
}

func (*Closure) Type() Type { return TypeFunction }
func (*Closure) isValue()   {}

// NewClosure creates a closure with a fresh, parentless environment.
func NewClosure(formals, body *QExpr) *Closure {
	return &Closure{Formals: formals, Body: body, Env: NewEnv(nil)}
}

// SExpr is an evaluable form.
type SExpr struct {
	Cells []Value
}

func (*SExpr) Type() Type { return TypeSExpr }
func (*SExpr) isValue()   {}

// QExpr is an inert literal list.
type QExpr struct {
	Cells []Value
}

func (*QExpr) Type() Type { return TypeQExpr }
func (*QExpr) isValue()   {}

// NewSExpr creates an S-expression holding cells.
func NewSExpr(cells ...Value) *SExpr {
	return &SExpr{Cells: cells}
}

// NewQExpr creates a Q-expression holding cells.
func NewQExpr(cells ...Value) *QExpr {
	return &QExpr{Cells: cells}
}

// Len returns the number of cells.
func (s *SExpr) Len() int { return len(s.Cells) }

// Len returns the number of cells.
func (q *QExpr) Len() int { return len(q.Cells) }

// Pop removes and returns the cell at index i.
func (s *SExpr) Pop(i int) Value {
	v := s.Cells[i]
	if i == 0 {
		s.Cells = s.Cells[1:]
		return v
	}
	s.Cells = append(s.Cells[:i:i], s.Cells[i+1:]...)
	return v
}

// Pop removes and returns the cell at index i.
func (q *QExpr) Pop(i int) Value {
	v := q.Cells[i]
	if i == 0 {
		q.Cells = q.Cells[1:]
		return v
	}
	q.Cells = append(q.Cells[:i:i], q.Cells[i+1:]...)
	return v
}

// AsQExpr relabels s as a Q-expression without copying its cells.
func (s *SExpr) AsQExpr() *QExpr { return &QExpr{Cells: s.Cells} }

// AsSExpr relabels q as an S-expression without copying its cells.
func (q *QExpr) AsSExpr() *SExpr { return &SExpr{Cells: q.Cells} }

// Cells returns the elements of a list value, or nil for non-lists.
func Cells(v Value) []Value {
	switch l := v.(type) {
	case *SExpr:
		return l.Cells
	case *QExpr:
		return l.Cells
	}
	return nil
}

// IsError reports whether v is an Error value.
func IsError(v Value) bool {
	_, ok := v.(*Error)
	return ok
}
