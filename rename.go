package l3

import (
	"strconv"
	"strings"

	"github.com/coyove/l3/value"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Renamer alpha-converts procedure parameters to fresh names of the form
// name__N. N comes from a counter owned by the Renamer, so one Renamer must
// be used for a whole evaluation to keep the names unique, and a new Renamer
// always produces the same names for the same input. A counter value whose
// name is already taken is skipped.
type Renamer struct {
	n   int
	log *logrus.Entry
	// reserved reports names bound outside the renamed tree, the top-level
	// chain during evaluation.
	reserved func(name string) bool
	used     map[string]bool
}

func NewRenamer() *Renamer { return &Renamer{} }

// Fresh returns a name never handed out before by r. A previous __N suffix is
// dropped first so repeated renaming does not grow names.
func (r *Renamer) Fresh(name string) string {
	if i := strings.LastIndex(name, "__"); i > 0 && isCounter(name[i+2:]) {
		name = name[:i]
	}
	var fresh string
	for {
		r.n++
		fresh = name + "__" + strconv.Itoa(r.n)
		if !r.used[fresh] && (r.reserved == nil || !r.reserved(fresh)) {
			break
		}
	}
	if r.log != nil {
		r.log.WithFields(logrus.Fields{"name": name, "fresh": fresh}).Trace("rename")
	}
	return fresh
}

// Rename gives every procedure inside body fresh parameter names and rewrites
// the occurrences they bind. Free variables are left alone. The fresh names
// avoid every identifier in body and in the expressions about to be
// substituted into it. body must not contain let.
func (r *Renamer) Rename(body []Expr, substituted ...Expr) []Expr {
	used := map[string]bool{}
	collectNames(body, used)
	collectNames(substituted, used)
	prev := r.used
	r.used = used
	defer func() { r.used = prev }()
	return r.renameAll(body, nil)
}

// collectNames adds every variable and parameter name in exprs to names.
func collectNames(exprs []Expr, names map[string]bool) {
	for _, e := range exprs {
		switch e := e.(type) {
		case *VariableReference:
			names[e.Name] = true
		case *Application:
			collectNames([]Expr{e.Operator}, names)
			collectNames(e.Operands, names)
		case *If:
			collectNames([]Expr{e.Cond, e.Then, e.Alt}, names)
		case *Procedure:
			for _, p := range e.Params {
				names[p] = true
			}
			collectNames(e.Body, names)
		case *Let:
			for _, b := range e.Bindings {
				names[b.Name] = true
				collectNames([]Expr{b.Value}, names)
			}
			collectNames(e.Body, names)
		case *Literal:
			collectDatumNames(e.Datum, names)
		}
	}
}

// collectDatumNames looks into closures carried inside list literals.
func collectDatumNames(v value.Value, names map[string]bool) {
	switch v := v.(type) {
	case *Closure:
		collectNames([]Expr{Literalize(v)}, names)
	case *value.Pair:
		if !v.Empty() {
			collectDatumNames(v.Car(), names)
			collectDatumNames(v.Cdr(), names)
		}
	}
}

func (r *Renamer) renameAll(exprs []Expr, scope map[string]string) []Expr {
	return lo.Map(exprs, func(e Expr, _ int) Expr { return r.rename(e, scope) })
}

func (r *Renamer) rename(e Expr, scope map[string]string) Expr {
	switch e := e.(type) {
	case *VariableReference:
		if fresh, ok := scope[e.Name]; ok {
			return &VariableReference{Name: fresh}
		}
		return e
	case *Application:
		return &Application{Operator: r.rename(e.Operator, scope), Operands: r.renameAll(e.Operands, scope)}
	case *If:
		return &If{Cond: r.rename(e.Cond, scope), Then: r.rename(e.Then, scope), Alt: r.rename(e.Alt, scope)}
	case *Procedure:
		inner := make(map[string]string, len(scope)+len(e.Params))
		for k, v := range scope {
			inner[k] = v
		}
		params := make([]string, len(e.Params))
		for i, p := range e.Params {
			params[i] = r.Fresh(p)
			inner[p] = params[i]
		}
		return &Procedure{Params: params, Body: r.renameAll(e.Body, inner)}
	case *Let:
		panic("rename: let must be desugared first")
	default:
		return e
	}
}

func isCounter(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
