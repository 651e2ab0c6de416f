package l3

import (
	"testing"

	"github.com/coyove/l3/value"
)

func TestSubstitute(t *testing.T) {
	check := func(src string, vars []string, reps []Expr, want string) {
		out := Substitute([]Expr{mustExpr(t, src)}, vars, reps)
		if out[0].String() != want {
			t.Fatal(src, out[0], want)
		}
	}
	three := &Number{Value: 3}
	check("(+ x y)", []string{"x"}, []Expr{three}, "(+ 3 y)")
	check("(+ x y)", []string{"x", "y"}, []Expr{three, &Boolean{Value: true}}, "(+ 3 #t)")
	check("(lambda (x) (+ x y))", []string{"x", "y"}, []Expr{&Number{Value: 1}, &Number{Value: 2}}, "(lambda (x) (+ x 2))")
	check("(if x (lambda (y) x) y)", []string{"x", "y"}, []Expr{three, three}, "(if 3 (lambda (y) 3) 3)")
	check("(f x)", []string{"f"}, []Expr{&PrimitiveOperation{Op: value.Mul}}, "(* x)")
	check("(car l)", []string{"l"}, []Expr{&Literal{Datum: value.List(value.Number(1))}}, "(car (list 1))")
	check("(g 1)", []string{"g"}, []Expr{&Procedure{Params: []string{"a"}, Body: []Expr{&VariableReference{Name: "a"}}}}, "((lambda (a) a) 1)")
	check("x", nil, nil, "x")
}

func TestSubstitutePanics(t *testing.T) {
	check := func(f func()) {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic")
			}
		}()
		f()
	}
	check(func() { Substitute([]Expr{&Number{Value: 1}}, []string{"x"}, nil) })
	check(func() { Substitute([]Expr{mustExpr(t, "(let ((x 1)) x)")}, []string{"x"}, []Expr{&Number{Value: 1}}) })
}
