// Copyright 2026 The vecmix Authors. SPDX-License-Identifier: Apache-2.0

// Command vecmix runs one blocked matrix multiplication under a chosen
// kernel-mixing mode and prints a machine-parseable summary line. It is the
// unit of work the sweep scripts invoke once per measurement point, pinned
// to a core by the invoking environment:
//
//	taskset -c 2 vecmix 1024 64 mixed_burst 42
//
// Output on success:
//
//	done sum=<checksum>
//	SUMMARY	N=<n>	BS=<bs>	mode=<mode>	seed=<seed>	seconds=<s>	checksum=<sum>
//
// Configuration errors exit with status 1 before anything is allocated.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"k8s.io/klog/v2"

	"github.com/vecmix/vecmix/internal/cpuinfo"
	"github.com/vecmix/vecmix/measure"
	"github.com/vecmix/vecmix/mixmul"
)

var (
	printMatrix = flag.Bool("print", false, "print the result matrix after the summary, one value per line")
	trace       = flag.Bool("trace", false, "log the per-block kernel class sequence after the run (adds per-block overhead)")
	showCPU     = flag.Bool("cpuinfo", false, "print CPU and SIMD dispatch diagnostics, then exit")

	hybridVec    = flag.Int("hybrid-vec", mixmul.DefaultHybridVectorCols, "vector columns per hybrid split unit (positive multiple of 8)")
	hybridScalar = flag.Int("hybrid-scalar", mixmul.DefaultHybridScalarCols, "scalar columns per hybrid split unit")
	interVec     = flag.Int("interleave-vec", mixmul.DefaultInterleavedVectorCols, "vector columns per interleaved split unit (positive multiple of 8)")
	interScalar  = flag.Int("interleave-scalar", mixmul.DefaultInterleavedScalarCols, "scalar columns per interleaved split unit")
	period       = flag.Int("period", mixmul.DefaultPeriod, "block period of the mixed_periodic policy")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [flags] N BS mode seed\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  N     matrix dimension, a positive multiple of %d\n", mixmul.VectorWidth)
	fmt.Fprintln(os.Stderr, "  BS    block size, a positive divisor of N (placeholder for whole-matrix modes)")
	fmt.Fprintf(os.Stderr, "  mode  one of: %s\n", strings.Join(mixmul.ModeNames(), ", "))
	fmt.Fprintln(os.Stderr, "  seed  mixing-policy seed; 0 derives one from the current time")
	fmt.Fprintln(os.Stderr, "flags:")
	flag.PrintDefaults()
}

func main() {
	klog.InitFlags(nil)
	flag.Usage = usage
	flag.Parse()

	if *showCPU {
		for _, line := range cpuinfo.Summary() {
			fmt.Println(line)
		}
		return
	}

	if flag.NArg() != 4 {
		usage()
		os.Exit(1)
	}
	if err := run(flag.Args()); err != nil {
		klog.Exitf("%v", err)
	}
	klog.Flush()
}

func run(args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid N %q: %v", args[0], err)
	}
	bs, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid BS %q: %v", args[1], err)
	}
	modeName := args[2]
	seed64, err := strconv.ParseUint(args[3], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid seed %q: %v", args[3], err)
	}
	seed := uint32(seed64)
	if seed == 0 {
		seed = uint32(time.Now().UnixNano())
		klog.V(1).Infof("seed 0 resolved to %d from current time", seed)
	}

	cfg, err := modeConfig(seed)
	if err != nil {
		return err
	}
	mode, err := mixmul.ResolveMode(modeName, cfg)
	if err != nil {
		return err
	}
	if err := mixmul.ValidateShape(mode, n, bs); err != nil {
		return err
	}

	klog.V(1).Infof("dispatch %s, mode %s, N=%d BS=%d seed=%d", cpuinfo.DispatchName(), mode.Name, n, bs, seed)

	a, err := mixmul.NewMatrix(n)
	if err != nil {
		return err
	}
	b, err := mixmul.NewMatrix(n)
	if err != nil {
		return err
	}
	c, err := mixmul.NewMatrix(n)
	if err != nil {
		return err
	}
	a.FillDeterministic()
	b.FillDeterministic()

	runner := mixmul.Runner{Mode: mode, Session: measure.NewSession()}
	var picks []byte
	if *trace {
		runner.Trace = func(_ mixmul.Block, class mixmul.Class) {
			if class == mixmul.ClassVector {
				picks = append(picks, 'v')
			} else {
				picks = append(picks, 's')
			}
		}
	}

	report, err := runner.Run(a.Data(), b.Data(), c.Data(), n, bs)
	if err != nil {
		return err
	}

	checksum := c.Checksum()
	fmt.Printf("done sum=%g\n", checksum)
	fmt.Printf("SUMMARY\tN=%d\tBS=%d\tmode=%s\tseed=%d\tseconds=%g\tchecksum=%g\n",
		n, bs, mode.Name, seed, report.Elapsed.Seconds(), checksum)

	for _, counter := range report.Counters {
		klog.V(1).Infof("counter %s=%d", counter.Name, counter.Value)
	}
	if *trace && len(picks) > 0 {
		klog.Infof("selection (%s policy): %s", mode.Policy.Name(), picks)
	}
	if *printMatrix {
		if _, err := c.WriteTo(os.Stdout); err != nil {
			return err
		}
	}
	return nil
}

// modeConfig assembles the strategy parameters from flags and the burst
// environment overrides. Everything is validated here or during mode
// resolution, before any matrix is allocated.
func modeConfig(seed uint32) (mixmul.ModeConfig, error) {
	cfg := mixmul.ModeConfig{
		Seed:                  seed,
		Period:                *period,
		HybridVectorCols:      *hybridVec,
		HybridScalarCols:      *hybridScalar,
		InterleavedVectorCols: *interVec,
		InterleavedScalarCols: *interScalar,
	}
	var err error
	if cfg.VectorBurst, err = burstEnv("VECMIX_VECTOR_BURST", mixmul.DefaultVectorBurst); err != nil {
		return cfg, err
	}
	if cfg.ScalarBurst, err = burstEnv("VECMIX_SCALAR_BURST", mixmul.DefaultScalarBurst); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func burstEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	klog.V(1).Infof("%s=%d overrides default %d", key, v, def)
	return v, nil
}
