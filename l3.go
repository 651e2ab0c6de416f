// Package l3 interprets L3, a small Scheme-like teaching language, with the
// substitution model: applying a procedure renames the bound variables of its
// body, substitutes the argument values into it as literals and evaluates the
// result. Closures carry no environment. The only environment is the chain of
// top-level defines.
//
// A program looks like
//
//	(L3
//	  (define fact (lambda (n) (if (= n 0) 1 (* n (fact (- n 1))))))
//	  (fact 5))
package l3

import (
	"fmt"
	"os"

	"github.com/coyove/l3/value"
	"github.com/sirupsen/logrus"
	"github.com/tevino/abool/v2"
)

type Interpreter struct {
	cfg  *Config
	log  *logrus.Entry
	stop *abool.AtomicBool
}

type Option func(*Interpreter)

// WithConfig uses a copy of cfg. Options apply in order, so put it first.
func WithConfig(cfg *Config) Option {
	return func(it *Interpreter) {
		c := *cfg
		it.cfg = &c
	}
}

func WithMaxDepth(n int) Option {
	return func(it *Interpreter) { it.cfg.MaxDepth = n }
}

// WithLogger logs through l as is, the config log level is not applied to it.
func WithLogger(l *logrus.Logger) Option {
	return func(it *Interpreter) { it.log = logrus.NewEntry(l) }
}

func New(opts ...Option) *Interpreter {
	it := &Interpreter{cfg: DefaultConfig(), stop: abool.New()}
	for _, o := range opts {
		o(it)
	}
	if it.log == nil {
		l := logrus.New()
		l.SetLevel(it.cfg.Level())
		it.log = logrus.NewEntry(l)
	}
	return it
}

func (it *Interpreter) Config() Config { return *it.cfg }

// Interrupt makes the running evaluation fail with ErrInterrupted at its next
// closure application, or the next evaluation if none is running. It is safe
// to call from another goroutine.
func (it *Interpreter) Interrupt() { it.stop.Set() }

// ResetInterrupt drops an Interrupt that no evaluation has seen yet.
func (it *Interpreter) ResetInterrupt() { it.stop.UnSet() }

// Run parses and evaluates a program; name is used in parse error positions.
func (it *Interpreter) Run(name, text string) (value.Value, error) {
	prog, err := Parse(name, text)
	if err != nil {
		return nil, err
	}
	return it.EvalProgram(prog)
}

func (it *Interpreter) RunFile(path string) (value.Value, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read program: %w", err)
	}
	return it.Run(path, string(buf))
}

// Run evaluates program text with a default Interpreter.
func Run(text string) (value.Value, error) { return New().Run("(memory)", text) }

func RunFile(path string) (value.Value, error) { return New().RunFile(path) }
