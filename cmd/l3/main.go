// Command l3 runs L3 programs from a file or the command line, or starts a
// REPL.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/coyove/l3"
	"github.com/coyove/l3/repl"
	"github.com/coyove/l3/value"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

const usage = `usage: l3 [-vpih] [-c config.yaml] [-d depth] [-t seconds] [-m bytes] [-l addr] [-e program | -f file | file]
  -f file     run the program in file
  -e program  run the program text
  -c file     load configuration from a YAML file
  -d depth    maximum nested closure applications, 0 for no limit
  -t seconds  interrupt the evaluation after this many seconds
  -m bytes    virtual memory limit (linux only)
  -v          verbose, log at debug level
  -p          print the primitive table
  -i          start a REPL on the terminal
  -l addr     serve a web REPL at addr
  -h          show this help`

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	red := color.New(color.FgRed)
	fail := func(err error) int {
		red.Fprintln(stderr, err)
		return 1
	}

	opts, optind, err := getopt.Getopts(args, "f:e:c:d:t:m:l:vpih")
	if err != nil {
		fmt.Fprintln(stderr, usage)
		return fail(err)
	}
	args = args[optind:]

	var (
		inputFile, inputExpr, configFile, listen string
		depth, timeout, memLimit                 int64 = -1, 0, 0
		verbose, printTable, interactive         bool
	)
	for _, optV := range opts {
		switch optV.Option {
		case 'f':
			inputFile = optV.Value
		case 'e':
			inputExpr = optV.Value
		case 'c':
			configFile = optV.Value
		case 'l':
			listen = optV.Value
		case 'd', 't', 'm':
			n, err := strconv.ParseInt(optV.Value, 10, 64)
			if err != nil || n < 0 {
				return fail(fmt.Errorf("invalid -%c parameter %q", optV.Option, optV.Value))
			}
			switch optV.Option {
			case 'd':
				depth = n
			case 't':
				timeout = n
			default:
				memLimit = n
			}
		case 'v':
			verbose = true
		case 'p':
			printTable = true
		case 'i':
			interactive = true
		case 'h':
			fmt.Fprintln(stdout, usage)
			return 0
		}
	}
	if inputFile == "" && len(args) > 0 {
		inputFile, args = args[0], args[1:]
	}
	if len(args) > 0 {
		fmt.Fprintln(stderr, usage)
		return fail(fmt.Errorf("unexpected arguments %v", args))
	}

	if memLimit > 0 {
		if err := setMemLimit(uint64(memLimit)); err != nil {
			red.Fprintln(stderr, "setrlimit error:", err)
		}
	}

	cfg := l3.DefaultConfig()
	if configFile != "" {
		if cfg, err = l3.LoadConfig(configFile); err != nil {
			return fail(err)
		}
	}
	if depth >= 0 {
		cfg.MaxDepth = int(depth)
	}
	logger := logrus.New()
	logger.SetOutput(stderr)
	if lvl := cfg.Level(); verbose && lvl < logrus.DebugLevel {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(lvl)
	}
	it := l3.New(l3.WithConfig(cfg), l3.WithLogger(logger))

	if printTable {
		fmt.Fprintln(stdout, l3.FormatBuiltins())
		if inputFile == "" && inputExpr == "" && !interactive && listen == "" {
			return 0
		}
	}

	if listen != "" {
		logger.WithField("addr", listen).Info("serving web REPL")
		if err := repl.ListenAndServe(listen, repl.NewSession(it), "l3"); err != nil {
			return fail(err)
		}
		return 0
	}

	if inputFile == "" && inputExpr == "" {
		if !interactive {
			fmt.Fprintln(stderr, usage)
			return 1
		}
		if err := repl.Run(repl.NewSession(it), stdout); err != nil {
			return fail(err)
		}
		return 0
	}

	if timeout > 0 {
		t := time.AfterFunc(time.Duration(timeout)*time.Second, it.Interrupt)
		defer t.Stop()
	}

	var v value.Value
	if inputFile != "" {
		v, err = it.RunFile(inputFile)
	} else {
		v, err = it.Run("(command line)", inputExpr)
	}
	if err != nil {
		return fail(err)
	}
	fmt.Fprintln(stdout, v)
	return 0
}
