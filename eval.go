package l3

import (
	"fmt"

	"github.com/coyove/l3/value"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Closure is the value of a procedure literal: its parameters and body, and
// nothing else.
type Closure struct {
	Params []string
	Body   []Expr
}

func (c *Closure) Type() value.Type { return value.ClosureType }
func (c *Closure) String() string   { return (&Procedure{Params: c.Params, Body: c.Body}).String() }

type execState struct {
	local   *Env
	renamer *Renamer
	depth   int
}

// EvalProgram evaluates prog against an empty chain.
func (it *Interpreter) EvalProgram(prog *Program) (value.Value, error) {
	v, _, err := it.EvalForms(prog.Forms, nil)
	return v, err
}

// EvalForms evaluates top-level forms in order starting from env and returns
// the value of the last form together with env extended by the defines. A
// define evaluates to the value it binds. On error env is returned unchanged.
func (it *Interpreter) EvalForms(forms []Form, env *Env) (value.Value, *Env, error) {
	if len(forms) == 0 {
		return nil, env, errorf(ErrEmptyProgram, "no top-level forms")
	}
	defer it.stop.UnSet()
	state := execState{local: env}
	state.renamer = it.newRenamer(func() *Env { return state.local })
	var last value.Value
	for _, f := range forms {
		switch f := f.(type) {
		case *Define:
			v, err := it.exec(Desugar(f.Value), state)
			if err != nil {
				return nil, env, err
			}
			state.local, last = state.local.Bind(f.Name, v), v
		case Expr:
			v, err := it.exec(Desugar(f), state)
			if err != nil {
				return nil, env, err
			}
			last = v
		}
	}
	it.log.WithField("forms", len(forms)).Debug("program evaluated")
	return last, state.local, nil
}

// Eval evaluates a single expression against env.
func (it *Interpreter) Eval(e Expr, env *Env) (value.Value, error) {
	defer it.stop.UnSet()
	return it.exec(Desugar(e), execState{local: env, renamer: it.newRenamer(func() *Env { return env })})
}

// newRenamer returns a Renamer that never hands out a name bound in chain().
func (it *Interpreter) newRenamer(chain func() *Env) *Renamer {
	r := NewRenamer()
	r.reserved = func(name string) bool {
		_, ok := chain().Lookup(name)
		return ok
	}
	if it.cfg.Trace {
		r.log = it.log
	}
	return r
}

func (it *Interpreter) exec(e Expr, state execState) (value.Value, error) {
	switch e := e.(type) {
	case *Number:
		return value.Number(e.Value), nil
	case *Boolean:
		return value.Boolean(e.Value), nil
	case *Literal:
		return e.Datum, nil
	case *PrimitiveOperation:
		return value.Primitive(e.Op), nil
	case *VariableReference:
		v, ok := state.local.Lookup(e.Name)
		if !ok {
			return nil, errorf(ErrUndefinedVariable, "%s", e.Name)
		}
		return v, nil
	case *If:
		cond, err := it.exec(e.Cond, state)
		if err != nil {
			return nil, err
		}
		if value.Truthy(cond) {
			return it.exec(e.Then, state)
		}
		return it.exec(e.Alt, state)
	case *Procedure:
		return &Closure{Params: e.Params, Body: e.Body}, nil
	case *Let:
		return it.exec(Desugar(e), state)
	case *Application:
		return it.apply(e, state)
	}
	panic(fmt.Sprintf("exec: unknown expression %T", e))
}

func (it *Interpreter) apply(e *Application, state execState) (value.Value, error) {
	fn, err := it.exec(e.Operator, state)
	if err != nil {
		return nil, err
	}
	args := make([]value.Value, len(e.Operands))
	for i, o := range e.Operands {
		if args[i], err = it.exec(o, state); err != nil {
			return nil, err
		}
	}

	switch fn := fn.(type) {
	case value.Primitive:
		return Apply(value.Op(fn), args)
	case *Closure:
		if len(fn.Params) != len(args) {
			return nil, errorf(ErrArgumentMismatch, "%v expects %d argument(s), got %d", fn, len(fn.Params), len(args))
		}
		if it.stop.IsSet() {
			return nil, errorf(ErrInterrupted, "evaluation interrupted")
		}
		if it.cfg.MaxDepth > 0 && state.depth >= it.cfg.MaxDepth {
			return nil, errorf(ErrStackExhausted, "more than %d nested applications", it.cfg.MaxDepth)
		}
		state.depth++
		if it.cfg.Trace {
			it.log.WithFields(logrus.Fields{"depth": state.depth, "params": fn.Params, "args": args}).Trace("apply")
		}
		reps := lo.Map(args, func(v value.Value, _ int) Expr { return Literalize(v) })
		body := Substitute(state.renamer.Rename(fn.Body, reps...), fn.Params, reps)
		return it.execSeq(body, state)
	}
	return nil, errorf(ErrBadProcedure, "%v is not a procedure", fn)
}

// execSeq evaluates a body and returns the value of its last expression.
func (it *Interpreter) execSeq(body []Expr, state execState) (v value.Value, err error) {
	if len(body) == 0 {
		return nil, errorf(ErrEmptyProgram, "empty procedure body")
	}
	for _, e := range body {
		if v, err = it.exec(e, state); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Literalize turns a value back into syntax that evaluates to it.
func Literalize(v value.Value) Expr {
	switch v := v.(type) {
	case value.Number:
		return &Number{Value: float64(v)}
	case value.Boolean:
		return &Boolean{Value: bool(v)}
	case value.Primitive:
		return &PrimitiveOperation{Op: value.Op(v)}
	case *Closure:
		return &Procedure{Params: v.Params, Body: v.Body}
	case value.SExpression:
		return &Literal{Datum: v}
	}
	panic(fmt.Sprintf("literalize: unknown value %T", v))
}
