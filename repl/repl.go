// Package repl drives an l3 Session from a terminal or over HTTP.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/coyove/l3"
	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"
)

const (
	Prompt       = "l3> "
	Continuation = "... "
	HistoryFile  = ".l3_history"
)

var red = color.New(color.FgRed).SprintFunc()

// Run reads inputs from the terminal until EOF or :quit. Ctrl-C at the prompt
// drops the pending input, during an evaluation it interrupts it.
func Run(s *Session, out io.Writer) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, HistoryFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		f, err := os.Create(histPath)
		if err != nil {
			logrus.WithError(err).Warn("repl: cannot save history")
			return
		}
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}()

	defer forwardInterrupts(s.Interpreter())()

	fmt.Fprintln(out, "L3 REPL, :help for help")
	for {
		input, err := readInput(ln)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))

		res, err := s.Eval(input)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(out, red(err.Error()))
			continue
		}
		if res != "" {
			fmt.Fprintln(out, res)
		}
	}
}

// forwardInterrupts turns SIGINT into it.Interrupt until stop is called.
// stop returns once the forwarding goroutine has exited.
func forwardInterrupts(it *l3.Interpreter) (stop func()) {
	sigc := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigc, os.Interrupt)
	go func() {
		defer close(done)
		for range sigc {
			it.Interrupt()
		}
	}()
	return func() {
		signal.Stop(sigc)
		close(sigc)
		<-done
	}
}

// readInput prompts for lines until the parentheses balance.
func readInput(ln *liner.State) (string, error) {
	var b strings.Builder
	for {
		prompt := Prompt
		if b.Len() > 0 {
			prompt = Continuation
		}
		line, err := ln.Prompt(prompt)
		if err != nil {
			if b.Len() > 0 && errors.Is(err, io.EOF) {
				return b.String(), nil
			}
			return "", err
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if Balanced(b.String()) {
			return b.String(), nil
		}
	}
}
