package value

// Op is one of the fixed primitive operators of the language.
type Op byte

const (
	Add Op = iota + 1
	Sub
	Mul
	Div
	NumEq
	Less
	LessEq
	Greater
	GreaterEq
	Not
	And
	Or
	ConsOp
	Car
	Cdr
	ListOp
	IsEq
	IsPair
	IsNumber
	IsBoolean
	IsSymbol
)

var opTokens = [...]string{
	Add:       "+",
	Sub:       "-",
	Mul:       "*",
	Div:       "/",
	NumEq:     "=",
	Less:      "<",
	LessEq:    "<=",
	Greater:   ">",
	GreaterEq: ">=",
	Not:       "not",
	And:       "and",
	Or:        "or",
	ConsOp:    "cons",
	Car:       "car",
	Cdr:       "cdr",
	ListOp:    "list",
	IsEq:      "eq?",
	IsPair:    "pair?",
	IsNumber:  "number?",
	IsBoolean: "boolean?",
	IsSymbol:  "symbol?",
}

var opByToken = map[string]Op{}

func init() {
	for op, tok := range opTokens {
		if tok != "" {
			opByToken[tok] = Op(op)
		}
	}
}

func (o Op) String() string {
	if int(o) < len(opTokens) && opTokens[o] != "" {
		return opTokens[o]
	}
	return "#<bad-op>"
}

// LookupOp returns the operator spelled exactly tok.
func LookupOp(tok string) (Op, bool) {
	op, ok := opByToken[tok]
	return op, ok
}

// Ops returns every operator in declaration order.
func Ops() []Op {
	ops := make([]Op, 0, len(opTokens)-1)
	for op := Add; int(op) < len(opTokens); op++ {
		ops = append(ops, op)
	}
	return ops
}
