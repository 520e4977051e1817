package eval

import (
	"fmt"

	"nickandperla.net/xen/internal/value"
)

// BuiltinFunc is the signature for builtin functions. args holds the already
// evaluated arguments and is owned by the builtin. All failures are reported
// as Error values.
type BuiltinFunc func(e *Evaluator, env *value.Env, args *value.SExpr) value.Value

// builtinSpec registers one native operation under one or more names.
type builtinSpec struct {
	op      string
	aliases []string
	fn      BuiltinFunc
}

func builtinSpecs() []builtinSpec {
	return []builtinSpec{
		// Variable functions
		{op: "def", fn: builtinDef},
		{op: "=", fn: builtinPut},
		{op: `\`, fn: builtinLambda},

		// String functions
		{op: "load", fn: builtinLoad},
		{op: "error", fn: builtinError},
		{op: "print", fn: builtinPrint},

		// List functions
		{op: "list", fn: builtinList},
		{op: "head", fn: builtinHead},
		{op: "tail", fn: builtinTail},
		{op: "eval", fn: builtinEval},
		{op: "join", fn: builtinJoin},
		{op: "cons", fn: builtinCons},
		{op: "len", fn: builtinLen},
		{op: "init", fn: builtinInit},

		// Mathematical functions
		{op: "+", aliases: []string{"add"}, fn: arith("+")},
		{op: "-", aliases: []string{"sub"}, fn: arith("-")},
		{op: "*", aliases: []string{"mul"}, fn: arith("*")},
		{op: "/", aliases: []string{"div"}, fn: arith("/")},
		{op: "%", aliases: []string{"mod"}, fn: arith("%")},
		{op: "^", aliases: []string{"pow"}, fn: arith("^")},
		{op: "min", fn: arith("min")},
		{op: "max", fn: arith("max")},

		// Comparison functions
		{op: "if", fn: builtinIf},
		{op: "==", fn: builtinCmp("==")},
		{op: "!=", fn: builtinCmp("!=")},
		{op: ">", fn: builtinOrd(">")},
		{op: "<", fn: builtinOrd("<")},
		{op: ">=", fn: builtinOrd(">=")},
		{op: "<=", fn: builtinOrd("<=")},

		// Persistence functions
		{op: "persist", fn: builtinPersist},
		{op: "restore", fn: builtinRestore},
		{op: "history", fn: builtinHistory},
	}
}

// registerBuiltins binds every builtin name in the root environment.
func registerBuiltins(e *Evaluator) {
	for _, spec := range builtinSpecs() {
		e.builtins[spec.op] = spec.fn
		e.root.Put(spec.op, &value.Builtin{Name: spec.op, Op: spec.op})
		for _, alias := range spec.aliases {
			e.root.Put(alias, &value.Builtin{Name: alias, Op: spec.op})
		}
	}
}

// Argument checks. Each returns nil when the check passes.

func checkCount(fn string, args *value.SExpr, n int) *value.Error {
	if args.Len() != n {
		return value.Errorf(value.ArityMismatch,
			"Function '%s' passed incorrect number of arguments. Got %d, Expected %d.",
			fn, args.Len(), n)
	}
	return nil
}

func checkType(fn string, args *value.SExpr, i int, want value.Type) *value.Error {
	if got := args.Cells[i].Type(); got != want {
		return value.Errorf(value.TypeMismatch,
			"Function '%s' passed incorrect type for argument %d. Got %s, Expected %s.",
			fn, i, got, want)
	}
	return nil
}

func checkNotEmpty(fn string, args *value.SExpr, i int) *value.Error {
	if len(value.Cells(args.Cells[i])) == 0 {
		return value.Errorf(value.EmptyArgument,
			"Function '%s' passed {} for argument %d.", fn, i)
	}
	return nil
}

func builtinList(e *Evaluator, env *value.Env, args *value.SExpr) value.Value {
	return args.AsQExpr()
}

func builtinHead(e *Evaluator, env *value.Env, args *value.SExpr) value.Value {
	if err := checkCount("head", args, 1); err != nil {
		return err
	}
	if err := checkType("head", args, 0, value.TypeQExpr); err != nil {
		return err
	}
	if err := checkNotEmpty("head", args, 0); err != nil {
		return err
	}
	q := args.Cells[0].(*value.QExpr)
	return value.NewQExpr(q.Cells[0])
}

func builtinTail(e *Evaluator, env *value.Env, args *value.SExpr) value.Value {
	if err := checkCount("tail", args, 1); err != nil {
		return err
	}
	if err := checkType("tail", args, 0, value.TypeQExpr); err != nil {
		return err
	}
	if err := checkNotEmpty("tail", args, 0); err != nil {
		return err
	}
	q := args.Cells[0].(*value.QExpr)
	q.Pop(0)
	return q
}

func builtinInit(e *Evaluator, env *value.Env, args *value.SExpr) value.Value {
	if err := checkCount("init", args, 1); err != nil {
		return err
	}
	if err := checkType("init", args, 0, value.TypeQExpr); err != nil {
		return err
	}
	if err := checkNotEmpty("init", args, 0); err != nil {
		return err
	}
	q := args.Cells[0].(*value.QExpr)
	q.Pop(q.Len() - 1)
	return q
}

func builtinLen(e *Evaluator, env *value.Env, args *value.SExpr) value.Value {
	if err := checkCount("len", args, 1); err != nil {
		return err
	}
	if err := checkType("len", args, 0, value.TypeQExpr); err != nil {
		return err
	}
	return value.Number(args.Cells[0].(*value.QExpr).Len())
}

func builtinCons(e *Evaluator, env *value.Env, args *value.SExpr) value.Value {
	if err := checkCount("cons", args, 2); err != nil {
		return err
	}
	if err := checkType("cons", args, 1, value.TypeQExpr); err != nil {
		return err
	}
	q := args.Cells[1].(*value.QExpr)
	cells := make([]value.Value, 0, q.Len()+1)
	cells = append(cells, args.Cells[0])
	cells = append(cells, q.Cells...)
	return value.NewQExpr(cells...)
}

func builtinEval(e *Evaluator, env *value.Env, args *value.SExpr) value.Value {
	if err := checkCount("eval", args, 1); err != nil {
		return err
	}
	if err := checkType("eval", args, 0, value.TypeQExpr); err != nil {
		return err
	}
	return e.Eval(env, args.Cells[0].(*value.QExpr).AsSExpr())
}

func builtinJoin(e *Evaluator, env *value.Env, args *value.SExpr) value.Value {
	for _, c := range args.Cells {
		if c.Type() != value.TypeQExpr {
			return value.Errorf(value.TypeMismatch,
				"Function 'join' passed incorrect type. Got %s, Expected %s.",
				c.Type(), value.TypeQExpr)
		}
	}
	var cells []value.Value
	for _, c := range args.Cells {
		cells = append(cells, c.(*value.QExpr).Cells...)
	}
	return value.NewQExpr(cells...)
}

func builtinDef(e *Evaluator, env *value.Env, args *value.SExpr) value.Value {
	return builtinVar(e, env, args, "def")
}

func builtinPut(e *Evaluator, env *value.Env, args *value.SExpr) value.Value {
	return builtinVar(e, env, args, "=")
}

// builtinVar binds each symbol of the first argument to the argument at the
// same position among the rest: globally for def, in the current frame for =.
func builtinVar(e *Evaluator, env *value.Env, args *value.SExpr, fn string) value.Value {
	if args.Len() == 0 {
		return value.Errorf(value.ArityMismatch,
			"Function '%s' passed incorrect number of arguments. Got 0, Expected at least 1.", fn)
	}
	if err := checkType(fn, args, 0, value.TypeQExpr); err != nil {
		return err
	}

	syms := args.Cells[0].(*value.QExpr)
	for _, s := range syms.Cells {
		if s.Type() != value.TypeSymbol {
			return value.Errorf(value.TypeMismatch,
				"Function '%s' cannot define non-symbol. Got %s, Expected %s.",
				fn, s.Type(), value.TypeSymbol)
		}
	}
	if syms.Len() != args.Len()-1 {
		return value.Errorf(value.ArityMismatch,
			"Function '%s' passed too many arguments for symbols. Got %d, Expected %d.",
			fn, syms.Len(), args.Len()-1)
	}

	for i, s := range syms.Cells {
		name := string(s.(value.Symbol))
		v := args.Cells[i+1]
		if fn == "def" {
			env.Def(name, v)
			if e.persistMode == PersistAlways && e.store != nil {
				if err := e.persistOne(name, v); err != nil {
					return err
				}
			}
		} else {
			env.Put(name, v)
		}
	}
	return value.NewSExpr()
}

func builtinLambda(e *Evaluator, env *value.Env, args *value.SExpr) value.Value {
	if err := checkCount(`\`, args, 2); err != nil {
		return err
	}
	if err := checkType(`\`, args, 0, value.TypeQExpr); err != nil {
		return err
	}
	if err := checkType(`\`, args, 1, value.TypeQExpr); err != nil {
		return err
	}

	formals := args.Cells[0].(*value.QExpr)
	for _, f := range formals.Cells {
		if f.Type() != value.TypeSymbol {
			return value.Errorf(value.MalformedFormals,
				"Cannot define non-symbol. Got %s, Expected %s.", f.Type(), value.TypeSymbol)
		}
	}
	return value.NewClosure(formals, args.Cells[1].(*value.QExpr))
}

func builtinIf(e *Evaluator, env *value.Env, args *value.SExpr) value.Value {
	if err := checkCount("if", args, 3); err != nil {
		return err
	}
	if err := checkType("if", args, 0, value.TypeNumber); err != nil {
		return err
	}
	if err := checkType("if", args, 1, value.TypeQExpr); err != nil {
		return err
	}
	if err := checkType("if", args, 2, value.TypeQExpr); err != nil {
		return err
	}

	branch := args.Cells[2].(*value.QExpr)
	if args.Cells[0].(value.Number) != 0 {
		branch = args.Cells[1].(*value.QExpr)
	}
	return e.Eval(env, branch.AsSExpr())
}

func builtinLoad(e *Evaluator, env *value.Env, args *value.SExpr) value.Value {
	if err := checkCount("load", args, 1); err != nil {
		return err
	}
	if err := checkType("load", args, 0, value.TypeString); err != nil {
		return err
	}
	return e.Load(env, string(args.Cells[0].(value.Str)))
}

func builtinPrint(e *Evaluator, env *value.Env, args *value.SExpr) value.Value {
	for _, c := range args.Cells {
		fmt.Fprint(e.out, c.String(), " ")
	}
	fmt.Fprintln(e.out)
	return value.NewSExpr()
}

func builtinError(e *Evaluator, env *value.Env, args *value.SExpr) value.Value {
	if err := checkCount("error", args, 1); err != nil {
		return err
	}
	if err := checkType("error", args, 0, value.TypeString); err != nil {
		return err
	}
	return &value.Error{Kind: value.UserError, Msg: string(args.Cells[0].(value.Str))}
}
