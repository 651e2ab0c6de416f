package l3

import (
	"strings"

	"github.com/coyove/l3/value"
	"github.com/samber/lo"
)

type (
	// Form is a top-level form of a program: a *Define or any Expr.
	Form interface {
		String() string
		form()
	}

	// Expr is a constituent expression, anything that can appear below the
	// top level.
	Expr interface {
		Form
		expr()
	}

	Program struct {
		Forms []Form
	}

	Define struct {
		Name  string
		Value Expr
	}

	Application struct {
		Operator Expr
		Operands []Expr
	}

	If struct {
		Cond, Then, Alt Expr
	}

	// Procedure is a lambda literal.
	Procedure struct {
		Params []string
		Body   []Expr
	}

	Binding struct {
		Name  string
		Value Expr
	}

	Let struct {
		Bindings []Binding
		Body     []Expr
	}

	Number struct {
		Value float64
	}

	Boolean struct {
		Value bool
	}

	// Literal embeds an S-expression value. The parser never produces one,
	// they come from literalizing argument values during application. It
	// prints as the list expression that evaluates to the same datum.
	Literal struct {
		Datum value.SExpression
	}

	PrimitiveOperation struct {
		Op value.Op
	}

	VariableReference struct {
		Name string
	}
)

func (*Define) form()             {}
func (*Application) form()        {}
func (*If) form()                 {}
func (*Procedure) form()          {}
func (*Let) form()                {}
func (*Number) form()             {}
func (*Boolean) form()            {}
func (*Literal) form()            {}
func (*PrimitiveOperation) form() {}
func (*VariableReference) form()  {}

func (*Application) expr()        {}
func (*If) expr()                 {}
func (*Procedure) expr()          {}
func (*Let) expr()                {}
func (*Number) expr()             {}
func (*Boolean) expr()            {}
func (*Literal) expr()            {}
func (*PrimitiveOperation) expr() {}
func (*VariableReference) expr()  {}

// String renders the program as canonical L3 source that parses back to an
// equal program.
func (p *Program) String() string {
	parts := make([]string, 0, len(p.Forms)+1)
	parts = append(parts, "L3")
	for _, f := range p.Forms {
		parts = append(parts, f.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (d *Define) String() string { return "(define " + d.Name + " " + d.Value.String() + ")" }

func (a *Application) String() string {
	return "(" + a.Operator.String() + joinExprs(a.Operands) + ")"
}

func (i *If) String() string {
	return "(if " + i.Cond.String() + " " + i.Then.String() + " " + i.Alt.String() + ")"
}

func (p *Procedure) String() string {
	return "(lambda (" + strings.Join(p.Params, " ") + ")" + joinExprs(p.Body) + ")"
}

func (l *Let) String() string {
	b := make([]string, len(l.Bindings))
	for i, bd := range l.Bindings {
		b[i] = "(" + bd.Name + " " + bd.Value.String() + ")"
	}
	return "(let (" + strings.Join(b, " ") + ")" + joinExprs(l.Body) + ")"
}

func (n *Number) String() string             { return value.Number(n.Value).String() }
func (b *Boolean) String() string            { return value.Boolean(b.Value).String() }
func (p *PrimitiveOperation) String() string { return p.Op.String() }
func (v *VariableReference) String() string  { return v.Name }

// String renders a list datum as the list and cons calls that rebuild it.
// Symbols have no source form and print quoted.
func (l *Literal) String() string {
	p, ok := l.Datum.(*value.Pair)
	switch {
	case !ok:
		return "'" + l.Datum.String()
	case p.Empty():
		return "(list)"
	case p.Proper():
		return "(list" + joinExprs(lo.Map(p.ToSlice(), func(v value.Value, _ int) Expr { return Literalize(v) })) + ")"
	}
	return "(cons " + Literalize(p.Car()).String() + " " + Literalize(p.Cdr()).String() + ")"
}

// joinExprs renders exprs each preceded by a space.
func joinExprs(exprs []Expr) string {
	var sb strings.Builder
	for _, e := range exprs {
		sb.WriteByte(' ')
		sb.WriteString(e.String())
	}
	return sb.String()
}
