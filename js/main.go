//go:build js && wasm

// Command js exposes a REPL session to JavaScript as run(input), which returns
// {result, error}.
package main

import (
	"syscall/js"

	"github.com/coyove/l3"
	"github.com/coyove/l3/repl"
)

func main() {
	s := repl.NewSession(l3.New())
	js.Global().Set("run", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) == 0 {
			return map[string]interface{}{"result": "", "error": "run: missing input"}
		}
		res, err := s.Eval(args[0].String())
		if err != nil {
			return map[string]interface{}{"result": "", "error": err.Error()}
		}
		return map[string]interface{}{"result": res, "error": nil}
	}))
	select {}
}
