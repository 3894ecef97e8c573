// Copyright 2026 The vecmix Authors. SPDX-License-Identifier: Apache-2.0

// Package cpuinfo reports the CPU features and SIMD dispatch level a run
// executes under. Measurement campaigns archive these lines next to the
// results: a checksum is comparable across machines, a cycle count is not.
package cpuinfo

import (
	"fmt"
	"runtime"

	"github.com/ajroetker/go-highway/hwy"
	"golang.org/x/sys/cpu"
)

// Summary returns one diagnostic line per relevant fact: architecture, the
// active SIMD dispatch level, the float64 lane count, and the feature bits
// that decide it.
func Summary() []string {
	lines := []string{
		fmt.Sprintf("goarch: %s", runtime.GOARCH),
		fmt.Sprintf("dispatch: %s (%d bytes, %d float64 lanes)",
			hwy.CurrentName(), hwy.CurrentWidth(), hwy.MaxLanes[float64]()),
	}
	switch runtime.GOARCH {
	case "amd64":
		lines = append(lines,
			fmt.Sprintf("avx2: %v", cpu.X86.HasAVX2),
			fmt.Sprintf("avx512f: %v", cpu.X86.HasAVX512F),
			fmt.Sprintf("fma: %v", cpu.X86.HasFMA),
		)
	case "arm64":
		lines = append(lines,
			fmt.Sprintf("neon: %v", cpu.ARM64.HasASIMD),
			fmt.Sprintf("sve: %v", cpu.ARM64.HasSVE),
		)
	}
	return lines
}

// DispatchName returns the active SIMD dispatch level name, the short form
// logged at the start of every run.
func DispatchName() string {
	return hwy.CurrentName()
}
