package main

import "syscall"

func setMemLimit(n uint64) error {
	r := &syscall.Rlimit{}
	if err := syscall.Getrlimit(syscall.RLIMIT_AS, r); err != nil {
		return err
	}
	r.Cur = n
	return syscall.Setrlimit(syscall.RLIMIT_AS, r)
}
