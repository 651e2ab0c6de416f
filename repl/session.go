package repl

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/coyove/l3"
)

const Help = `Enter L3 forms, or a whole (L3 ...) program. Defines are kept between inputs.
Commands:
  :help   show this text and the primitive table
  :defs   list the current top-level definitions
  :reset  forget every definition
  :quit   leave the REPL`

// ErrQuit is returned by Session.Eval for the :quit command.
var ErrQuit = errors.New("quit")

// Session evaluates REPL inputs one after another over a growing top-level
// chain. It is safe for concurrent use, inputs are evaluated one at a time.
type Session struct {
	mu  sync.Mutex
	it  *l3.Interpreter
	env *l3.Env
}

func NewSession(it *l3.Interpreter) *Session { return &Session{it: it} }

func (s *Session) Interpreter() *l3.Interpreter { return s.it }

// Eval runs one input and returns the text to show for it. A define shows the
// defined name, any other form its value. A failed input leaves the chain as
// it was.
func (s *Session) Eval(input string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	input = strings.TrimSpace(input)
	switch input {
	case "":
		return "", nil
	case ":help":
		return Help + "\n\nPrimitives:\n" + l3.FormatBuiltins(), nil
	case ":defs":
		return strings.Join(s.env.Names(), "\n"), nil
	case ":reset":
		s.env = nil
		return "definitions cleared", nil
	case ":quit":
		return "", ErrQuit
	}
	if strings.HasPrefix(input, ":") {
		return "", fmt.Errorf("unknown command %s, try :help", strings.Fields(input)[0])
	}

	if !isProgram(input) {
		input = "(L3 " + input + "\n)"
	}
	prog, err := l3.Parse("(repl)", input)
	if err != nil {
		return "", err
	}
	// A Ctrl-C that arrived while idle at the prompt must not abort this input.
	s.it.ResetInterrupt()
	v, env, err := s.it.EvalForms(prog.Forms, s.env)
	if err != nil {
		return "", err
	}
	s.env = env
	if d, ok := prog.Forms[len(prog.Forms)-1].(*l3.Define); ok {
		return d.Name, nil
	}
	return v.String(), nil
}

func isProgram(input string) bool {
	rest := strings.TrimSpace(strings.TrimPrefix(input, "("))
	if len(rest) == len(input) || !strings.HasPrefix(rest, "L3") {
		return false
	}
	rest = rest[2:]
	return rest == "" || strings.IndexByte(" \t\r\n();", rest[0]) >= 0
}

// Balanced reports whether text closes every parenthesis it opens, ignoring
// comments. Extra closing parentheses count as balanced and are left for the
// parser to reject.
func Balanced(text string) bool {
	depth := 0
	for _, line := range strings.Split(text, "\n") {
		if i := strings.IndexByte(line, ';'); i >= 0 {
			line = line[:i]
		}
		depth += strings.Count(line, "(") - strings.Count(line, ")")
	}
	return depth <= 0
}
