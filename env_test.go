package l3

import (
	"reflect"
	"testing"

	"github.com/coyove/l3/value"
)

func TestEnv(t *testing.T) {
	var empty *Env
	if _, ok := empty.Lookup("x"); ok || empty.Names() != nil {
		t.Fatal("empty chain")
	}

	a := empty.Bind("x", value.Number(1))
	b := a.Bind("y", value.Number(2)).Bind("x", value.Number(3))
	if v, _ := a.Lookup("x"); v != value.Number(1) {
		t.Fatal(v)
	}
	if v, _ := b.Lookup("x"); v != value.Number(3) {
		t.Fatal(v)
	}
	if _, ok := a.Lookup("y"); ok {
		t.Fatal("y leaked into an older chain")
	}
	if names := b.Names(); !reflect.DeepEqual(names, []string{"x", "y"}) {
		t.Fatal(names)
	}
}
