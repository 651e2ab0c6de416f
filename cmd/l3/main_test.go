package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func runArgs(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"l3"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunExpr(t *testing.T) {
	if code, out, errs := runArgs("-e", "(L3 (+ 1 2))"); code != 0 || out != "3\n" {
		t.Fatal(code, out, errs)
	}
	if code, out, errs := runArgs("-e", "(L3 (car 5))"); code != 1 || out != "" || !strings.Contains(errs, "type mismatch") {
		t.Fatal(code, out, errs)
	}
	if code, _, errs := runArgs("-e", "(L3 1"); code != 1 || !strings.Contains(errs, "(command line):1:7") {
		t.Fatal(code, errs)
	}
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sq.l3")
	if err := os.WriteFile(path, []byte("(L3 (define sq (lambda (x) (* x x))) (sq 9))"), 0644); err != nil {
		t.Fatal(err)
	}
	if code, out, errs := runArgs("-f", path); code != 0 || out != "81\n" {
		t.Fatal(code, out, errs)
	}
	if code, out, errs := runArgs(path); code != 0 || out != "81\n" {
		t.Fatal(code, out, errs)
	}
	if code, _, errs := runArgs(filepath.Join(dir, "missing.l3")); code != 1 || errs == "" {
		t.Fatal(code, errs)
	}
}

func TestDepthAndConfig(t *testing.T) {
	const src = "(L3 (define down (lambda (n) (if (= n 0) 0 (down (- n 1))))) (down 10))"
	if code, out, errs := runArgs("-d", "5", "-e", src); code != 1 || out != "" || !strings.Contains(errs, "stack exhausted") {
		t.Fatal(code, out, errs)
	}
	if code, out, errs := runArgs("-d", "0", "-e", src); code != 0 || out != "0\n" {
		t.Fatal(code, out, errs)
	}

	cfg := filepath.Join(t.TempDir(), "l3.yaml")
	if err := os.WriteFile(cfg, []byte("max_depth: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if code, _, errs := runArgs("-c", cfg, "-e", src); code != 1 || !strings.Contains(errs, "stack exhausted") {
		t.Fatal(code, errs)
	}
	if code, out, errs := runArgs("-c", cfg, "-d", "20", "-e", src); code != 0 || out != "0\n" {
		t.Fatal(code, out, errs)
	}
	if code, _, errs := runArgs("-c", filepath.Join(t.TempDir(), "none.yaml"), "-e", src); code != 1 || !strings.Contains(errs, "config:") {
		t.Fatal(code, errs)
	}
}

func TestFlags(t *testing.T) {
	if code, out, _ := runArgs("-h"); code != 0 || !strings.HasPrefix(out, "usage: l3") {
		t.Fatal(code, out)
	}
	if code, out, _ := runArgs("-p"); code != 0 || !strings.Contains(out, "(cons a b)") {
		t.Fatal(code, out)
	}
	if code, _, errs := runArgs("-z"); code != 1 || !strings.Contains(errs, "usage") {
		t.Fatal(code, errs)
	}
	if code, _, errs := runArgs("-d", "x", "-e", "(L3 1)"); code != 1 || !strings.Contains(errs, "invalid -d") {
		t.Fatal(code, errs)
	}
	if code, _, errs := runArgs(); code != 1 || !strings.Contains(errs, "usage") {
		t.Fatal(code, errs)
	}
	if code, _, errs := runArgs("a.l3", "b.l3"); code != 1 || !strings.Contains(errs, "unexpected arguments") {
		t.Fatal(code, errs)
	}
}

func TestTimeout(t *testing.T) {
	const src = "(L3 (define fib (lambda (n) (if (< n 2) n (+ (fib (- n 1)) (fib (- n 2)))))) (fib 40))"
	start := time.Now()
	if code, out, errs := runArgs("-t", "1", "-e", src); code != 1 || out != "" || !strings.Contains(errs, "interrupted") {
		t.Fatal(code, out, errs)
	}
	if d := time.Since(start); d < time.Second || d > 30*time.Second {
		t.Fatal("timeout fired after", d)
	}
	if code, out, errs := runArgs("-t", "5", "-e", "(L3 (+ 1 2))"); code != 0 || out != "3\n" {
		t.Fatal(code, out, errs)
	}
}
