package l3

import (
	"fmt"
	"strings"

	"github.com/coyove/l3/value"
	"github.com/samber/lo"
)

// Builtin is one entry of the primitive table. Sig documents the call shape,
// its first word is the operator token.
type Builtin struct {
	Op  value.Op
	Sig string
	f   func(*State)
}

func (b *Builtin) String() string { return b.Sig }

// State carries one primitive call. Argument helpers record the first failure
// and the call result is dropped when one was recorded.
type State struct {
	assertable
	Op   value.Op
	Args []value.Value
	Out  value.Value
}

var builtinTable = map[value.Op]*Builtin{}

func install(sig string, f func(*State)) {
	name := sig[1:strings.IndexAny(sig, " )")]
	op, ok := value.LookupOp(name)
	value.PanicIf(!ok, "install: unknown operator "+name)
	builtinTable[op] = &Builtin{Op: op, Sig: sig, f: f}
}

// Apply calls the primitive op with already evaluated arguments.
func Apply(op value.Op, args []value.Value) (value.Value, error) {
	b, ok := builtinTable[op]
	if !ok {
		return nil, errorf(ErrBadProcedure, "unknown primitive %v", op)
	}
	s := &State{Op: op, Args: args}
	b.f(s)
	if s.err != nil {
		return nil, s.err
	}
	return s.Out, nil
}

// Builtins lists the primitive table in operator order.
func Builtins() []*Builtin {
	return lo.FilterMap(value.Ops(), func(op value.Op, _ int) (*Builtin, bool) {
		b, ok := builtinTable[op]
		return b, ok
	})
}

func (s *State) Arity(n int) bool {
	return s.check(len(s.Args) == n, ErrArgumentMismatch, "%v expects %d argument(s), got %d", s.Op, n, len(s.Args))
}

func (s *State) AtLeast(n int) bool {
	return s.check(len(s.Args) >= n, ErrArgumentMismatch, "%v expects at least %d argument(s), got %d", s.Op, n, len(s.Args))
}

func (s *State) Num(i int) float64 {
	n, ok := s.Args[i].(value.Number)
	s.check(ok, ErrTypeMismatch, "%v: argument #%d expects number, got %v", s.Op, i+1, s.Args[i])
	return float64(n)
}

// Pair returns argument i, which must be a non-empty pair.
func (s *State) Pair(i int) *value.Pair {
	p, ok := s.Args[i].(*value.Pair)
	if !s.check(ok && !p.Empty(), ErrTypeMismatch, "%v: argument #%d expects pair, got %v", s.Op, i+1, s.Args[i]) {
		return nil
	}
	return p
}

// Nums checks every argument is a number.
func (s *State) Nums() []float64 {
	return lo.Map(s.Args, func(_ value.Value, i int) float64 { return s.Num(i) })
}

func (s *State) fold(start float64, f func(a, b float64) float64) {
	a := start
	for _, n := range s.Nums() {
		a = f(a, n)
	}
	s.Out = value.Number(a)
}

func (s *State) foldFirst(single func(a float64) float64, f func(a, b float64) float64) {
	if !s.AtLeast(1) {
		return
	}
	nums := s.Nums()
	if len(nums) == 1 {
		s.Out = value.Number(single(nums[0]))
		return
	}
	a := nums[0]
	for _, n := range nums[1:] {
		a = f(a, n)
	}
	s.Out = value.Number(a)
}

func (s *State) compare(f func(a, b float64) bool) {
	if !s.AtLeast(1) {
		return
	}
	nums := s.Nums()
	for i := 1; i < len(nums); i++ {
		if !f(nums[i-1], nums[i]) {
			s.Out = value.False
			return
		}
	}
	s.Out = value.True
}

func unary(f func(v value.Value) bool) func(*State) {
	return func(s *State) {
		if s.Arity(1) {
			s.Out = value.Boolean(f(s.Args[0]))
		}
	}
}

func init() {
	install("(+ number...)", func(s *State) { s.fold(0, func(a, b float64) float64 { return a + b }) })
	install("(* number...)", func(s *State) { s.fold(1, func(a, b float64) float64 { return a * b }) })
	install("(- number...)", func(s *State) {
		s.foldFirst(func(a float64) float64 { return -a }, func(a, b float64) float64 { return a - b })
	})
	install("(/ number...)", func(s *State) {
		s.foldFirst(func(a float64) float64 { return 1 / a }, func(a, b float64) float64 { return a / b })
	})
	install("(= number...)", func(s *State) { s.compare(func(a, b float64) bool { return a == b }) })
	install("(< number...)", func(s *State) { s.compare(func(a, b float64) bool { return a < b }) })
	install("(<= number...)", func(s *State) { s.compare(func(a, b float64) bool { return a <= b }) })
	install("(> number...)", func(s *State) { s.compare(func(a, b float64) bool { return a > b }) })
	install("(>= number...)", func(s *State) { s.compare(func(a, b float64) bool { return a >= b }) })
	install("(not a)", unary(func(v value.Value) bool { return !value.Truthy(v) }))
	install("(and a...)", func(s *State) {
		s.Out = value.True
		for _, a := range s.Args {
			if !value.Truthy(a) {
				s.Out = value.False
				return
			}
			s.Out = a
		}
	})
	install("(or a...)", func(s *State) {
		s.Out = value.False
		if v, ok := lo.Find(s.Args, value.Truthy); ok {
			s.Out = v
		}
	})
	install("(cons a b)", func(s *State) {
		if s.Arity(2) {
			s.Out = value.Cons(s.Args[0], s.Args[1])
		}
	})
	install("(car pair)", func(s *State) {
		if s.Arity(1) {
			if p := s.Pair(0); p != nil {
				s.Out = p.Car()
			}
		}
	})
	install("(cdr pair)", func(s *State) {
		if s.Arity(1) {
			if p := s.Pair(0); p != nil {
				s.Out = p.Cdr()
			}
		}
	})
	install("(list a...)", func(s *State) { s.Out = value.List(s.Args...) })
	install("(eq? a b)", func(s *State) {
		if s.Arity(2) {
			s.Out = value.Boolean(eq(s.Args[0], s.Args[1]))
		}
	})
	install("(pair? a)", unary(func(v value.Value) bool { return v.Type() == value.PairType }))
	install("(number? a)", unary(func(v value.Value) bool { return v.Type() == value.NumberType }))
	install("(boolean? a)", unary(func(v value.Value) bool { return v.Type() == value.BooleanType }))
	install("(symbol? a)", unary(func(v value.Value) bool { return v.Type() == value.SymbolType }))
}

// eq holds for equal numbers, equal booleans and two empty lists only.
func eq(a, b value.Value) bool {
	switch a := a.(type) {
	case value.Number:
		b, ok := b.(value.Number)
		return ok && a == b
	case value.Boolean:
		b, ok := b.(value.Boolean)
		return ok && a == b
	case *value.Pair:
		b, ok := b.(*value.Pair)
		return ok && a.Empty() && b.Empty()
	}
	return false
}

// FormatBuiltins renders the primitive table one signature per line.
func FormatBuiltins() string {
	return strings.Join(lo.Map(Builtins(), func(b *Builtin, _ int) string {
		return fmt.Sprintf("%-10s %s", b.Op, b.Sig)
	}), "\n")
}
