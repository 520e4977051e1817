package value

import (
	"strconv"
	"strings"
)

func (n Number) String() string { return strconv.FormatInt(int64(n), 10) }

func (s Symbol) String() string { return string(s) }

func (s Str) String() string { return `"` + Escape(string(s)) + `"` }

func (e *Error) String() string { return "Error: " + e.Msg }

func (e *Error) Error() string { return e.Msg }

func (b *Builtin) String() string { return "<builtin>" }

func (c *Closure) String() string {
	return `(\ ` + c.Formals.String() + " " + c.Body.String() + ")"
}

func (s *SExpr) String() string { return printCells(s.Cells, '(', ')', String) }

func (q *QExpr) String() string { return printCells(q.Cells, '{', '}', String) }

// String returns the printed representation of v.
func String(v Value) string {
	return v.String()
}

// Source returns text that evaluates back to v where possible. It differs
// from String only for builtins, which are written as the symbol they were
// registered under. Partial bindings held by a closure are not preserved.
func Source(v Value) string {
	switch x := v.(type) {
	case *Builtin:
		return x.Name
	case *Closure:
		return `(\ ` + Source(x.Formals) + " " + Source(x.Body) + ")"
	case *SExpr:
		return printCells(x.Cells, '(', ')', Source)
	case *QExpr:
		return printCells(x.Cells, '{', '}', Source)
	}
	return v.String()
}

func printCells(cells []Value, open, close byte, each func(Value) string) string {
	var sb strings.Builder
	sb.WriteByte(open)
	for i, c := range cells {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(each(c))
	}
	sb.WriteByte(close)
	return sb.String()
}
