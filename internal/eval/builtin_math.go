package eval

import "nickandperla.net/xen/internal/value"

// arith returns a builtin that left-folds op over Number arguments.
// A lone argument to "-" is negated.
func arith(op string) BuiltinFunc {
	return func(e *Evaluator, env *value.Env, args *value.SExpr) value.Value {
		if args.Len() == 0 {
			return value.Errorf(value.ArityMismatch,
				"Function '%s' passed incorrect number of arguments. Got 0, Expected at least 1.", op)
		}
		for i := range args.Cells {
			if err := checkType(op, args, i, value.TypeNumber); err != nil {
				return err
			}
		}

		x := args.Cells[0].(value.Number)
		if op == "-" && args.Len() == 1 {
			return -x
		}

		for _, c := range args.Cells[1:] {
			y := c.(value.Number)
			switch op {
			case "+":
				x += y
			case "-":
				x -= y
			case "*":
				x *= y
			case "/":
				if y == 0 {
					return value.Errorf(value.DivisionByZero, "division by zero")
				}
				x /= y
			case "%":
				if y == 0 {
					return value.Errorf(value.DivisionByZero, "division by zero")
				}
				x %= y
			case "^":
				x = pow(x, y)
			case "min":
				x = min(x, y)
			case "max":
				x = max(x, y)
			}
		}
		return x
	}
}

// pow raises base to exp with wrapping int64 arithmetic. Negative exponents
// truncate toward zero as integer division would.
func pow(base, exp value.Number) value.Number {
	if exp < 0 {
		switch base {
		case 1:
			return 1
		case -1:
			if exp%2 == 0 {
				return 1
			}
			return -1
		}
		return 0
	}
	result := value.Number(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

func builtinOrd(op string) BuiltinFunc {
	return func(e *Evaluator, env *value.Env, args *value.SExpr) value.Value {
		if err := checkCount(op, args, 2); err != nil {
			return err
		}
		if err := checkType(op, args, 0, value.TypeNumber); err != nil {
			return err
		}
		if err := checkType(op, args, 1, value.TypeNumber); err != nil {
			return err
		}

		x, y := args.Cells[0].(value.Number), args.Cells[1].(value.Number)
		var r bool
		switch op {
		case ">":
			r = x > y
		case "<":
			r = x < y
		case ">=":
			r = x >= y
		case "<=":
			r = x <= y
		}
		return boolNumber(r)
	}
}

func builtinCmp(op string) BuiltinFunc {
	return func(e *Evaluator, env *value.Env, args *value.SExpr) value.Value {
		if err := checkCount(op, args, 2); err != nil {
			return err
		}
		r := value.Equal(args.Cells[0], args.Cells[1])
		if op == "!=" {
			r = !r
		}
		return boolNumber(r)
	}
}

func boolNumber(b bool) value.Number {
	if b {
		return 1
	}
	return 0
}
