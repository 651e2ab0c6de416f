package l3

import "github.com/coyove/l3/value"

// Env is the chain of top-level definitions, newest first. The nil *Env is
// the empty chain. Bind never modifies the receiver, so an Env can be kept
// and extended from any point.
type Env struct {
	name   string
	val    value.Value
	parent *Env
}

func (e *Env) Bind(name string, v value.Value) *Env {
	return &Env{name: name, val: v, parent: e}
}

func (e *Env) Lookup(name string) (value.Value, bool) {
	for ; e != nil; e = e.parent {
		if e.name == name {
			return e.val, true
		}
	}
	return nil, false
}

// Names lists the visible names, newest first, without the shadowed ones.
func (e *Env) Names() (names []string) {
	seen := map[string]bool{}
	for ; e != nil; e = e.parent {
		if !seen[e.name] {
			seen[e.name] = true
			names = append(names, e.name)
		}
	}
	return names
}
