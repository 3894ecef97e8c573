// Copyright 2026 The vecmix Authors. SPDX-License-Identifier: Apache-2.0

package mixmul

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Strategy parameter defaults. Burst lengths and the period match the
// original measurement campaigns; the column splits give one vector group
// per unit.
const (
	DefaultVectorBurst = 4
	DefaultScalarBurst = 2
	DefaultPeriod      = 4

	DefaultHybridVectorCols      = 8
	DefaultHybridScalarCols      = 2
	DefaultInterleavedVectorCols = 8
	DefaultInterleavedScalarCols = 1
)

// ModeConfig carries the runtime-tunable strategy parameters. Zero values
// take the defaults above; everything is validated once during resolution,
// never again on the hot path. Seed feeds only the mixing policies; matrix
// contents never depend on it.
type ModeConfig struct {
	Seed uint32

	VectorBurst int
	ScalarBurst int
	Period      int

	HybridVectorCols      int
	HybridScalarCols      int
	InterleavedVectorCols int
	InterleavedScalarCols int
}

func (cfg *ModeConfig) applyDefaults() {
	if cfg.VectorBurst == 0 {
		cfg.VectorBurst = DefaultVectorBurst
	}
	if cfg.ScalarBurst == 0 {
		cfg.ScalarBurst = DefaultScalarBurst
	}
	if cfg.Period == 0 {
		cfg.Period = DefaultPeriod
	}
	if cfg.HybridVectorCols == 0 {
		cfg.HybridVectorCols = DefaultHybridVectorCols
	}
	if cfg.HybridScalarCols == 0 {
		cfg.HybridScalarCols = DefaultHybridScalarCols
	}
	if cfg.InterleavedVectorCols == 0 {
		cfg.InterleavedVectorCols = DefaultInterleavedVectorCols
	}
	if cfg.InterleavedScalarCols == 0 {
		cfg.InterleavedScalarCols = DefaultInterleavedScalarCols
	}
}

// Mode is a fully resolved execution mode, built once at startup and passed
// explicitly into the runner. Whole-matrix modes set Whole and nothing else.
// Block modes set the Vector/Scalar kernel pair and the Policy that picks
// between them; the pure block modes use a fixed policy with the same kernel
// in both slots, which degenerates the mixing machinery without a separate
// code path.
type Mode struct {
	Name   string
	Whole  WholeFunc
	Vector BlockFunc
	Scalar BlockFunc
	Policy Policy

	// NeedsVectorAlignment marks modes whose kernels require bs to be a
	// multiple of VectorWidth (the pure vector kernel has no tail path).
	NeedsVectorAlignment bool

	// Mixed marks the modes that actually alternate classes per block;
	// selection traces are only meaningful for these.
	Mixed bool
}

// IsWhole reports whether the mode bypasses blocking.
func (m Mode) IsWhole() bool { return m.Whole != nil }

type modeBuilder func(cfg ModeConfig) (Mode, error)

// modeBuilders is the name→strategy mapping, fixed at init. "avx" is kept as
// an alias of "vector" for compatibility with existing sweep scripts.
var modeBuilders = map[string]modeBuilder{
	"scalar":         buildScalar,
	"vector":         buildVector,
	"avx":            buildVector,
	"hybrid":         buildHybrid,
	"interleaved":    buildInterleaved,
	"blas":           buildDelegated,
	"mixed_random":   buildMixedRandom,
	"mixed_burst":    buildMixedBurst,
	"mixed_periodic": buildMixedPeriodic,
	"scalar_whole":   buildScalarWhole,
	"blas_whole":     buildDelegatedWhole,
}

// ResolveMode maps a mode name to its resolved strategy. Unknown names are
// rejected with the registered set in the error, so the caller's usage text
// stays in sync with the registry.
func ResolveMode(name string, cfg ModeConfig) (Mode, error) {
	cfg.applyDefaults()
	build, ok := modeBuilders[name]
	if !ok {
		return Mode{}, errors.Errorf("unknown mode %q (available: %s)", name, strings.Join(ModeNames(), ", "))
	}
	m, err := build(cfg)
	if err != nil {
		return Mode{}, errors.Wrapf(err, "mode %q", name)
	}
	m.Name = name
	return m, nil
}

// ModeNames returns the registered mode names, sorted.
func ModeNames() []string {
	names := make([]string, 0, len(modeBuilders))
	for name := range modeBuilders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func buildScalar(ModeConfig) (Mode, error) {
	return Mode{
		Vector: ScalarBlockMulAdd,
		Scalar: ScalarBlockMulAdd,
		Policy: FixedPolicy{Class: ClassScalar},
	}, nil
}

func buildVector(ModeConfig) (Mode, error) {
	return Mode{
		Vector:               VectorBlockMulAdd,
		Scalar:               VectorBlockMulAdd,
		Policy:               FixedPolicy{Class: ClassVector},
		NeedsVectorAlignment: true,
	}, nil
}

func buildHybrid(cfg ModeConfig) (Mode, error) {
	k, err := NewHybridBlockMulAdd(cfg.HybridVectorCols, cfg.HybridScalarCols)
	if err != nil {
		return Mode{}, err
	}
	return Mode{Vector: k, Scalar: k, Policy: FixedPolicy{Class: ClassVector}}, nil
}

func buildInterleaved(cfg ModeConfig) (Mode, error) {
	k, err := NewInterleavedBlockMulAdd(cfg.InterleavedVectorCols, cfg.InterleavedScalarCols)
	if err != nil {
		return Mode{}, err
	}
	return Mode{Vector: k, Scalar: k, Policy: FixedPolicy{Class: ClassVector}}, nil
}

func buildDelegated(ModeConfig) (Mode, error) {
	return Mode{
		Vector: DelegatedBlockMulAdd,
		Scalar: DelegatedBlockMulAdd,
		Policy: FixedPolicy{Class: ClassVector},
	}, nil
}

func buildMixedRandom(cfg ModeConfig) (Mode, error) {
	return mixedMode(NewRandomPolicy(cfg.Seed)), nil
}

func buildMixedBurst(cfg ModeConfig) (Mode, error) {
	p, err := NewBurstPolicy(cfg.VectorBurst, cfg.ScalarBurst)
	if err != nil {
		return Mode{}, err
	}
	return mixedMode(p), nil
}

func buildMixedPeriodic(cfg ModeConfig) (Mode, error) {
	p, err := NewPeriodicPolicy(cfg.Period)
	if err != nil {
		return Mode{}, err
	}
	return mixedMode(p), nil
}

func mixedMode(p Policy) Mode {
	return Mode{
		Vector:               VectorBlockMulAdd,
		Scalar:               ScalarBlockMulAdd,
		Policy:               p,
		NeedsVectorAlignment: true,
		Mixed:                true,
	}
}

func buildScalarWhole(ModeConfig) (Mode, error) {
	return Mode{Whole: ScalarWholeMul}, nil
}

func buildDelegatedWhole(ModeConfig) (Mode, error) {
	return Mode{Whole: DelegatedWholeMul}, nil
}
