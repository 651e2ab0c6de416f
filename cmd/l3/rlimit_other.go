//go:build !linux

package main

import "errors"

func setMemLimit(uint64) error { return errors.New("memory limit is only supported on linux") }
