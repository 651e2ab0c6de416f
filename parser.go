package l3

import (
	"errors"
	"fmt"
	"strings"

	"github.com/coyove/l3/value"
)

type parser struct {
	name string
	src  string
	pos  int
}

// parseFunc tries one grammar alternative at the current position. A false ok
// with a nil error means the alternative does not apply and nothing was
// consumed; a non-nil error is a committed failure and stops the whole parse.
type parseFunc func(p *parser) (e Expr, ok bool, err error)

var parseCexpr parseFunc

func init() {
	// Order is significant: operator tokens shadow identifiers of the same
	// spelling, and application is the fallback for any parenthesized form.
	parseCexpr = alt(
		parsePrimop,
		parseBoolean,
		parseNumber,
		parseVariable,
		parseQuoted,
		keyword("if", parseIfBody),
		keyword("lambda", parseLambdaBody),
		keyword("let", parseLetBody),
		parseApplication,
	)
}

// Parse reads a whole (L3 ...) program. name only shows up in error positions.
func Parse(name, text string) (*Program, error) {
	p := &parser{name: name, src: text}
	p.skipSpace()
	start := p.pos
	if !p.consume('(') {
		return nil, p.errorf("expected '(' to open the program")
	}
	p.skipSpace()
	if p.atom() != "L3" {
		return nil, p.errorf("expected L3 header, got %q", p.token())
	}
	p.pos += len("L3")

	var forms []Form
	for {
		p.skipSpace()
		if p.eof() {
			return nil, p.errorf("missing ')' to close the program")
		}
		if p.consume(')') {
			break
		}
		f, err := p.topForm()
		if err != nil {
			return nil, err
		}
		forms = append(forms, f)
	}
	if len(forms) == 0 {
		return nil, p.errorAt(start, "program has no expressions")
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf("unexpected trailing input %q", p.token())
	}
	return &Program{Forms: forms}, nil
}

func ParseProgram(text string) (*Program, error) { return Parse("(memory)", text) }

// ParseExpression reads exactly one constituent expression.
func ParseExpression(text string) (Expr, error) {
	p := &parser{name: "(memory)", src: text}
	e, err := p.need("expression")
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf("unexpected trailing input %q", p.token())
	}
	return e, nil
}

func (p *parser) topForm() (Form, error) {
	start := p.pos
	if p.consume('(') {
		p.skipSpace()
		if p.atom() == "define" {
			p.pos += len("define")
			p.skipSpace()
			name := p.atom()
			if !isIdent(name) {
				return nil, p.errorf("define: invalid name %q", p.token())
			}
			p.pos += len(name)
			val, err := p.need("define")
			if err != nil {
				return nil, err
			}
			if err := p.expectClose("define"); err != nil {
				return nil, err
			}
			return &Define{Name: name, Value: val}, nil
		}
		p.pos = start
	}
	return p.need("expression")
}

// need parses a constituent expression that must be there.
func (p *parser) need(what string) (Expr, error) {
	p.skipSpace()
	if p.eof() {
		return nil, p.errorf("%s: unexpected end of input", what)
	}
	e, ok, err := parseCexpr(p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, p.errorf("%s: unexpected %q", what, p.token())
	}
	return e, nil
}

// exprsUntilClose parses expressions up to and including the closing paren.
func (p *parser) exprsUntilClose(what string) ([]Expr, error) {
	var exprs []Expr
	for {
		p.skipSpace()
		if p.eof() {
			return nil, p.errorf("%s: missing ')'", what)
		}
		if p.consume(')') {
			return exprs, nil
		}
		e, err := p.need(what)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
}

func (p *parser) expectClose(what string) error {
	p.skipSpace()
	if !p.consume(')') {
		return p.errorf("%s: expected ')', got %q", what, p.token())
	}
	return nil
}

func alt(fs ...parseFunc) parseFunc {
	return func(p *parser) (Expr, bool, error) {
		start := p.pos
		for _, f := range fs {
			e, ok, err := f(p)
			if err != nil || ok {
				return e, ok, err
			}
			p.pos = start
		}
		return nil, false, nil
	}
}

// atomParser matches the whole atom at the current position through conv.
func atomParser(conv func(tok string) (Expr, bool)) parseFunc {
	return func(p *parser) (Expr, bool, error) {
		tok := p.atom()
		if tok == "" {
			return nil, false, nil
		}
		e, ok := conv(tok)
		if ok {
			p.pos += len(tok)
		}
		return e, ok, nil
	}
}

var (
	parsePrimop = atomParser(func(tok string) (Expr, bool) {
		op, ok := value.LookupOp(tok)
		return &PrimitiveOperation{Op: op}, ok
	})
	parseBoolean = atomParser(func(tok string) (Expr, bool) {
		return &Boolean{Value: tok == "#t"}, tok == "#t" || tok == "#f"
	})
	parseVariable = atomParser(func(tok string) (Expr, bool) {
		return &VariableReference{Name: tok}, isIdent(tok)
	})
)

func parseNumber(p *parser) (Expr, bool, error) {
	tok := p.atom()
	n, err := value.ParseNumber(tok)
	if errors.Is(err, value.ErrNumberRange) {
		return nil, false, p.errorf("number %s out of range", tok)
	}
	if err != nil {
		return nil, false, nil
	}
	p.pos += len(tok)
	return &Number{Value: float64(n)}, true, nil
}

func parseQuoted(p *parser) (Expr, bool, error) {
	if p.peek() != '\'' {
		return nil, false, nil
	}
	return nil, false, p.errorf("quoted literals are not supported")
}

// keyword matches '(' kw and then commits to body: once the keyword is seen a
// failure inside the form is final.
func keyword(kw string, body func(p *parser) (Expr, error)) parseFunc {
	return func(p *parser) (Expr, bool, error) {
		if !p.consume('(') {
			return nil, false, nil
		}
		p.skipSpace()
		if p.atom() != kw {
			return nil, false, nil
		}
		p.pos += len(kw)
		e, err := body(p)
		if err != nil {
			return nil, false, err
		}
		return e, true, nil
	}
}

func parseIfBody(p *parser) (Expr, error) {
	var parts [3]Expr
	for i := range parts {
		e, err := p.need("if")
		if err != nil {
			return nil, err
		}
		parts[i] = e
	}
	if err := p.expectClose("if"); err != nil {
		return nil, err
	}
	return &If{Cond: parts[0], Then: parts[1], Alt: parts[2]}, nil
}

func parseLambdaBody(p *parser) (Expr, error) {
	p.skipSpace()
	if !p.consume('(') {
		return nil, p.errorf("lambda: expected parameter list, got %q", p.token())
	}
	params := []string{}
	for {
		p.skipSpace()
		if p.eof() {
			return nil, p.errorf("lambda: missing ')' after parameters")
		}
		if p.consume(')') {
			break
		}
		name := p.atom()
		if !isIdent(name) {
			return nil, p.errorf("lambda: invalid parameter %q", p.token())
		}
		p.pos += len(name)
		params = append(params, name)
	}
	body, err := p.exprsUntilClose("lambda")
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, p.errorf("lambda: missing body")
	}
	return &Procedure{Params: params, Body: body}, nil
}

func parseLetBody(p *parser) (Expr, error) {
	p.skipSpace()
	if !p.consume('(') {
		return nil, p.errorf("let: expected binding list, got %q", p.token())
	}
	bindings := []Binding{}
	for {
		p.skipSpace()
		if p.eof() {
			return nil, p.errorf("let: missing ')' after bindings")
		}
		if p.consume(')') {
			break
		}
		if !p.consume('(') {
			return nil, p.errorf("let: expected binding, got %q", p.token())
		}
		p.skipSpace()
		name := p.atom()
		if !isIdent(name) {
			return nil, p.errorf("let: invalid binding name %q", p.token())
		}
		p.pos += len(name)
		val, err := p.need("let binding")
		if err != nil {
			return nil, err
		}
		if err := p.expectClose("let binding"); err != nil {
			return nil, err
		}
		bindings = append(bindings, Binding{Name: name, Value: val})
	}
	body, err := p.exprsUntilClose("let")
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, p.errorf("let: missing body")
	}
	return &Let{Bindings: bindings, Body: body}, nil
}

func parseApplication(p *parser) (Expr, bool, error) {
	start := p.pos
	if !p.consume('(') {
		return nil, false, nil
	}
	items, err := p.exprsUntilClose("application")
	if err != nil {
		return nil, false, err
	}
	if len(items) == 0 {
		return nil, false, p.errorAt(start, "empty application")
	}
	return &Application{Operator: items[0], Operands: items[1:]}, true, nil
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) consume(c byte) bool {
	if p.peek() == c && !p.eof() {
		p.pos++
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch c := p.src[p.pos]; {
		case isSpace(c):
			p.pos++
		case c == ';':
			for !p.eof() && p.src[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

// atom returns the text up to the next delimiter without consuming it.
func (p *parser) atom() string {
	end := p.pos
	for end < len(p.src) && !isDelim(p.src[end]) {
		end++
	}
	return p.src[p.pos:end]
}

// token describes what sits at the current position, for error messages.
func (p *parser) token() string {
	if p.eof() {
		return "EOF"
	}
	if tok := p.atom(); tok != "" {
		return tok
	}
	return p.src[p.pos : p.pos+1]
}

func (p *parser) errorf(format string, a ...interface{}) *Error {
	return p.errorAt(p.pos, format, a...)
}

func (p *parser) errorAt(pos int, format string, a ...interface{}) *Error {
	line := 1 + strings.Count(p.src[:pos], "\n")
	col := pos - strings.LastIndexByte(p.src[:pos], '\n')
	return &Error{
		Kind: ErrParse,
		Msg:  fmt.Sprintf(format, a...),
		Pos:  &Position{Name: p.name, Line: line, Col: col},
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isDelim(c byte) bool { return isSpace(c) || c == '(' || c == ')' || c == ';' }

func isIdent(s string) bool {
	if s == "" || !isLetter(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isLetter(c) && !(c >= '0' && c <= '9') && strings.IndexByte("_?!-", c) < 0 {
			return false
		}
	}
	return true
}

func isLetter(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }
