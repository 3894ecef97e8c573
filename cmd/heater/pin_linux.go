// Copyright 2026 The vecmix Authors. SPDX-License-Identifier: Apache-2.0

//go:build linux

package main

import "golang.org/x/sys/unix"

// pinToCore restricts the calling thread to one logical CPU. The caller must
// have locked the goroutine to its OS thread first.
func pinToCore(cpu int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	return unix.SchedSetaffinity(0, &set)
}
