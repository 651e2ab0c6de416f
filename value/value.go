package value

import (
	"bytes"
	"math"
	"strconv"
)

type (
	Type byte

	// Value is any runtime value. Values never change after construction, so
	// they can be shared freely between substituted trees.
	Value interface {
		Type() Type
		String() string
	}

	// SExpression is the pair/list part of the value model: Empty, Symbol and
	// non-empty *Pair.
	SExpression interface {
		Value
		sexp()
	}

	Number    float64
	Boolean   bool
	Primitive Op
	Symbol    string

	// Pair is a cons cell. The empty list is the single sentinel Empty.
	Pair struct {
		car, cdr Value
		empty    bool
	}

	// ListBuilder appends values to a proper list in order.
	ListBuilder struct {
		Len        int
		head, last *Pair
	}
)

const (
	NumberType    Type = 'n'
	BooleanType   Type = 'b'
	PrimitiveType Type = 'p'
	ClosureType   Type = 'f'
	SymbolType    Type = 'y'
	PairType      Type = 'l'
	NilType       Type = 'v'
)

var (
	Empty = &Pair{empty: true}
	True  = Boolean(true)
	False = Boolean(false)
)

var Types = map[Type]string{
	NumberType:    "number",
	BooleanType:   "boolean",
	PrimitiveType: "primitive",
	ClosureType:   "closure",
	SymbolType:    "symbol",
	PairType:      "pair",
	NilType:       "nil",
}

func (t Type) String() string {
	if s, ok := Types[t]; ok {
		return s
	}
	return "unknown"
}

func (n Number) Type() Type { return NumberType }
func (n Number) String() string {
	v := float64(n)
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (b Boolean) Type() Type     { return BooleanType }
func (b Boolean) String() string { return ifstr(bool(b), "#t", "#f") }

func (p Primitive) Type() Type     { return PrimitiveType }
func (p Primitive) String() string { return Op(p).String() }

func (y Symbol) Type() Type     { return SymbolType }
func (y Symbol) String() string { return string(y) }
func (y Symbol) sexp()          {}

func (p *Pair) Type() Type {
	if p.Empty() {
		return NilType
	}
	return PairType
}
func (p *Pair) sexp() {}

func (p *Pair) String() string {
	if p.Empty() {
		return "()"
	}
	buf := bytes.NewBufferString("(")
	for c := p; ; {
		buf.WriteString(c.car.String())
		next, ok := c.cdr.(*Pair)
		if !ok {
			buf.WriteString(" . ")
			buf.WriteString(c.cdr.String())
			break
		}
		if next.Empty() {
			break
		}
		buf.WriteByte(' ')
		c = next
	}
	buf.WriteByte(')')
	return buf.String()
}

func (p *Pair) Empty() bool { return p.empty }
func (p *Pair) Car() Value  { PanicIf(p.Empty(), "car: empty list"); return p.car }
func (p *Pair) Cdr() Value  { PanicIf(p.Empty(), "cdr: empty list"); return p.cdr }

// Proper reports whether p is a chain of pairs ending in Empty.
func (p *Pair) Proper() bool {
	for !p.Empty() {
		next, ok := p.cdr.(*Pair)
		if !ok {
			return false
		}
		p = next
	}
	return true
}

// Foreach walks the cars of a proper list prefix until cb returns false.
func (p *Pair) Foreach(cb func(Value) bool) {
	for flag := true; flag && !p.Empty(); {
		flag = cb(p.car)
		next, ok := p.cdr.(*Pair)
		if !ok {
			return
		}
		p = next
	}
}

func (p *Pair) ToSlice() (s []Value) {
	p.Foreach(func(v Value) bool { s = append(s, v); return true })
	return
}

func Cons(v, v2 Value) *Pair { return &Pair{car: v, cdr: v2} }

func List(l ...Value) *Pair {
	b := InitListBuilder()
	for _, v := range l {
		b = b.Append(v)
	}
	return b.Build()
}

func InitListBuilder() (b ListBuilder) { return b }

func (b ListBuilder) Build() *Pair {
	if b.head == nil {
		return Empty
	}
	return b.head
}

func (b ListBuilder) Append(v Value) ListBuilder {
	n := &Pair{car: v, cdr: Empty}
	if b.last == nil {
		b.head = n
	} else {
		b.last.cdr = n
	}
	b.last, b.Len = n, b.Len+1
	return b
}

// Truthy reports whether v counts as true in a conditional: everything but #f.
func Truthy(v Value) bool {
	b, ok := v.(Boolean)
	return !ok || bool(b)
}
