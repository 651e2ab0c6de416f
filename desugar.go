package l3

import (
	"github.com/samber/lo"
)

// Desugar rewrites every let in e into the application of an equivalent
// procedure to the binding values. The values stay outside the procedure, so
// they see the enclosing scope and not each other.
func Desugar(e Expr) Expr {
	switch e := e.(type) {
	case *Let:
		return &Application{
			Operator: &Procedure{
				Params: lo.Map(e.Bindings, func(b Binding, _ int) string { return b.Name }),
				Body:   desugarAll(e.Body),
			},
			Operands: lo.Map(e.Bindings, func(b Binding, _ int) Expr { return Desugar(b.Value) }),
		}
	case *Application:
		return &Application{Operator: Desugar(e.Operator), Operands: desugarAll(e.Operands)}
	case *If:
		return &If{Cond: Desugar(e.Cond), Then: Desugar(e.Then), Alt: Desugar(e.Alt)}
	case *Procedure:
		return &Procedure{Params: e.Params, Body: desugarAll(e.Body)}
	default:
		return e
	}
}

// DesugarProgram returns a copy of prog with no let left in it.
func DesugarProgram(prog *Program) *Program {
	return &Program{Forms: lo.Map(prog.Forms, func(f Form, _ int) Form {
		if d, ok := f.(*Define); ok {
			return &Define{Name: d.Name, Value: Desugar(d.Value)}
		}
		return Desugar(f.(Expr))
	})}
}

func desugarAll(exprs []Expr) []Expr {
	return lo.Map(exprs, func(e Expr, _ int) Expr { return Desugar(e) })
}
