package l3

import (
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Substitute replaces the free occurrences of vars[i] in body with
// replacements[i]. A procedure binding one of the vars hides it from its own
// body; the other pairs still go through. Nothing is renamed here, body is
// expected to come out of a Renamer already.
func Substitute(body []Expr, vars []string, replacements []Expr) []Expr {
	if len(vars) != len(replacements) {
		panic(fmt.Sprintf("substitute: %d vars but %d replacements", len(vars), len(replacements)))
	}
	return substituteAll(body, vars, replacements)
}

func substituteAll(exprs []Expr, vars []string, reps []Expr) []Expr {
	return lo.Map(exprs, func(e Expr, _ int) Expr { return substitute(e, vars, reps) })
}

func substitute(e Expr, vars []string, reps []Expr) Expr {
	switch e := e.(type) {
	case *VariableReference:
		if i := slices.Index(vars, e.Name); i >= 0 {
			return reps[i]
		}
		return e
	case *Application:
		return &Application{Operator: substitute(e.Operator, vars, reps), Operands: substituteAll(e.Operands, vars, reps)}
	case *If:
		return &If{Cond: substitute(e.Cond, vars, reps), Then: substitute(e.Then, vars, reps), Alt: substitute(e.Alt, vars, reps)}
	case *Procedure:
		var freeVars []string
		var freeReps []Expr
		for i, v := range vars {
			if !slices.Contains(e.Params, v) {
				freeVars, freeReps = append(freeVars, v), append(freeReps, reps[i])
			}
		}
		return &Procedure{Params: e.Params, Body: substituteAll(e.Body, freeVars, freeReps)}
	case *Let:
		panic("substitute: let must be desugared first")
	default:
		return e
	}
}
