package l3

import (
	"errors"
	"strings"
	"testing"

	"github.com/coyove/l3/value"
)

func TestApply(t *testing.T) {
	n := func(v float64) value.Value { return value.Number(v) }
	T, F := value.True, value.False
	l12 := value.List(n(1), n(2))

	for _, c := range []struct {
		op   value.Op
		args []value.Value
		want string
		err  error
	}{
		{value.Add, nil, "0", nil},
		{value.Mul, nil, "1", nil},
		{value.Add, []value.Value{n(1), n(2), n(3)}, "6", nil},
		{value.Mul, []value.Value{n(2), n(2.5)}, "5", nil},
		{value.Sub, []value.Value{n(5)}, "-5", nil},
		{value.Sub, []value.Value{n(10), n(1), n(2)}, "7", nil},
		{value.Div, []value.Value{n(4), n(2)}, "2", nil},
		{value.Div, []value.Value{n(4)}, "0.25", nil},
		{value.Sub, nil, "", ErrArgumentMismatch},
		{value.Div, nil, "", ErrArgumentMismatch},
		{value.Add, []value.Value{n(1), T}, "", ErrTypeMismatch},
		{value.Mul, []value.Value{value.Empty}, "", ErrTypeMismatch},

		{value.Less, []value.Value{n(1), n(2), n(3)}, "#t", nil},
		{value.Less, []value.Value{n(1), n(3), n(2)}, "#f", nil},
		{value.Less, []value.Value{n(5)}, "#t", nil},
		{value.LessEq, []value.Value{n(1), n(1), n(2)}, "#t", nil},
		{value.Greater, []value.Value{n(3), n(2), n(2)}, "#f", nil},
		{value.GreaterEq, []value.Value{n(3), n(3), n(1)}, "#t", nil},
		{value.NumEq, []value.Value{n(2), n(2)}, "#t", nil},
		{value.NumEq, []value.Value{n(2), n(3)}, "#f", nil},
		{value.Less, nil, "", ErrArgumentMismatch},
		{value.Less, []value.Value{n(1), T}, "", ErrTypeMismatch},
		{value.NumEq, []value.Value{n(1), n(2), F}, "", ErrTypeMismatch},

		{value.Not, []value.Value{F}, "#t", nil},
		{value.Not, []value.Value{n(0)}, "#f", nil},
		{value.Not, nil, "", ErrArgumentMismatch},
		{value.And, nil, "#t", nil},
		{value.And, []value.Value{n(1), n(2)}, "2", nil},
		{value.And, []value.Value{n(1), F, n(2)}, "#f", nil},
		{value.Or, nil, "#f", nil},
		{value.Or, []value.Value{F, n(3), n(4)}, "3", nil},
		{value.Or, []value.Value{F, F}, "#f", nil},

		{value.ConsOp, []value.Value{n(1), n(2)}, "(1 . 2)", nil},
		{value.ConsOp, []value.Value{n(0), l12}, "(0 1 2)", nil},
		{value.ConsOp, []value.Value{n(1)}, "", ErrArgumentMismatch},
		{value.Car, []value.Value{l12}, "1", nil},
		{value.Cdr, []value.Value{l12}, "(2)", nil},
		{value.Car, []value.Value{n(5)}, "", ErrTypeMismatch},
		{value.Cdr, []value.Value{value.Empty}, "", ErrTypeMismatch},
		{value.Car, []value.Value{l12, l12}, "", ErrArgumentMismatch},
		{value.ListOp, nil, "()", nil},
		{value.ListOp, []value.Value{n(1), T, value.Symbol("a")}, "(1 #t a)", nil},

		{value.IsEq, []value.Value{n(1), n(1)}, "#t", nil},
		{value.IsEq, []value.Value{n(1), n(2)}, "#f", nil},
		{value.IsEq, []value.Value{T, T}, "#t", nil},
		{value.IsEq, []value.Value{n(1), T}, "#f", nil},
		{value.IsEq, []value.Value{value.Empty, value.List()}, "#t", nil},
		{value.IsEq, []value.Value{l12, l12}, "#f", nil},
		{value.IsEq, []value.Value{value.Symbol("a"), value.Symbol("a")}, "#f", nil},
		{value.IsEq, []value.Value{n(1)}, "", ErrArgumentMismatch},
		{value.IsPair, []value.Value{l12}, "#t", nil},
		{value.IsPair, []value.Value{value.Empty}, "#f", nil},
		{value.IsNumber, []value.Value{n(1)}, "#t", nil},
		{value.IsNumber, []value.Value{T}, "#f", nil},
		{value.IsBoolean, []value.Value{F}, "#t", nil},
		{value.IsSymbol, []value.Value{value.Symbol("a")}, "#t", nil},
		{value.IsSymbol, []value.Value{n(1)}, "#f", nil},
		{value.IsSymbol, nil, "", ErrArgumentMismatch},
	} {
		v, err := Apply(c.op, c.args)
		if c.err != nil {
			if !errors.Is(err, c.err) {
				t.Fatal(c.op, c.args, v, err)
			}
			continue
		}
		if err != nil || v.String() != c.want {
			t.Fatal(c.op, c.args, v, err, c.want)
		}
	}
}

func TestApplyErrorMessage(t *testing.T) {
	_, err := Apply(value.Car, []value.Value{value.Number(5)})
	if err == nil || err.Error() != "type mismatch: car: argument #1 expects pair, got 5" {
		t.Fatal(err)
	}
	_, err = Apply(value.Not, nil)
	if err == nil || err.Error() != "argument mismatch: not expects 1 argument(s), got 0" {
		t.Fatal(err)
	}
	if _, err := Apply(value.Op(0), nil); !errors.Is(err, ErrBadProcedure) {
		t.Fatal(err)
	}
}

func TestBuiltins(t *testing.T) {
	bs := Builtins()
	if len(bs) != len(value.Ops()) {
		t.Fatal(len(bs))
	}
	for i, b := range bs {
		if b.Op != value.Ops()[i] || !strings.HasPrefix(b.Sig, "("+b.Op.String()+" ") {
			t.Fatal(b.Op, b.Sig)
		}
	}
	if s := FormatBuiltins(); !strings.Contains(s, "(eq? a b)") || strings.Count(s, "\n") != len(bs)-1 {
		t.Fatal(s)
	}
}
