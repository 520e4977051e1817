package value

// Copy returns a deep copy of v. Lists are copied element by element and
// closures get their own environment frame (sharing its parent).
func Copy(v Value) Value {
	switch x := v.(type) {
	case *Error:
		c := *x
		return &c
	case *Builtin:
		c := *x
		return &c
	case *Closure:
		return x.Copy()
	case *SExpr:
		return &SExpr{Cells: copyCells(x.Cells)}
	case *QExpr:
		return x.Copy()
	}
	// Number, Symbol and Str are immutable Go values.
	return v
}

// Copy returns a deep copy of the closure.
func (c *Closure) Copy() *Closure {
	return &Closure{
		Formals: c.Formals.Copy(),
		Body:    c.Body.Copy(),
		Env:     c.Env.Copy(),
	}
}

// Copy returns a deep copy of the Q-expression.
func (q *QExpr) Copy() *QExpr {
	return &QExpr{Cells: copyCells(q.Cells)}
}

func copyCells(cells []Value) []Value {
	if cells == nil {
		return nil
	}
	out := make([]Value, len(cells))
	for i, c := range cells {
		out[i] = Copy(c)
	}
	return out
}

// Equal reports structural equality. Values of different types are never
// equal. Closures compare by formals and body only.
func Equal(a, b Value) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch x := a.(type) {
	case Number:
		return x == b.(Number)
	case Symbol:
		return x == b.(Symbol)
	case Str:
		return x == b.(Str)
	case *Error:
		return x.Msg == b.(*Error).Msg
	case *Builtin:
		y, ok := b.(*Builtin)
		return ok && x.Op == y.Op
	case *Closure:
		y, ok := b.(*Closure)
		return ok && Equal(x.Formals, y.Formals) && Equal(x.Body, y.Body)
	case *SExpr:
		return equalCells(x.Cells, b.(*SExpr).Cells)
	case *QExpr:
		return equalCells(x.Cells, b.(*QExpr).Cells)
	}
	return false
}

func equalCells(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
