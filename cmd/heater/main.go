// Copyright 2026 The vecmix Authors. SPDX-License-Identifier: Apache-2.0

// Command heater saturates one logical core with vector fused multiply-adds.
// Measurement campaigns run it on a neighbor core while vecmix runs on the
// measured one, to study how a hot sibling shifts frequency and energy.
//
//	heater -core 3 &
//	taskset -c 2 vecmix 1024 64 vector 42
//
// The process pins itself before heating and runs until killed, or for
// -duration if one is given.
package main

import (
	"flag"
	"runtime"
	"time"

	"k8s.io/klog/v2"

	"github.com/ajroetker/go-highway/hwy"
	"github.com/vecmix/vecmix/internal/cpuinfo"
)

var (
	core     = flag.Int("core", 2, "logical CPU to pin to")
	duration = flag.Duration("duration", 0, "how long to heat; 0 runs until killed")
)

// sink keeps the accumulator reduction observable so the spin loop cannot be
// optimized away.
var sink float64

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	runtime.LockOSThread()
	if err := pinToCore(*core); err != nil {
		klog.Exitf("pin to core %d: %v", *core, err)
	}
	klog.Infof("heating core %d, dispatch %s", *core, cpuinfo.DispatchName())

	var deadline time.Time
	if *duration > 0 {
		deadline = time.Now().Add(*duration)
	}
	spin(deadline)
	klog.Infof("heater done, sink=%g", sink)
}

// spin issues four independent FMA chains per iteration. The multiplier sits
// just under one so the accumulators converge to a finite fixed point
// instead of overflowing or collapsing into denormals.
func spin(deadline time.Time) {
	x := hwy.Set(0.9999999)
	y := hwy.Set(1.0)
	acc0 := hwy.Set(1.0)
	acc1 := hwy.Set(2.0)
	acc2 := hwy.Set(3.0)
	acc3 := hwy.Set(4.0)
	for i := uint64(0); ; i++ {
		acc0 = hwy.MulAdd(x, acc0, y)
		acc1 = hwy.MulAdd(x, acc1, y)
		acc2 = hwy.MulAdd(x, acc2, y)
		acc3 = hwy.MulAdd(x, acc3, y)
		if i&0xfffff == 0 && !deadline.IsZero() && time.Now().After(deadline) {
			break
		}
	}
	sink = hwy.ReduceSum(acc0) + hwy.ReduceSum(acc1) + hwy.ReduceSum(acc2) + hwy.ReduceSum(acc3)
}
