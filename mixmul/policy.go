// Copyright 2026 The vecmix Authors. SPDX-License-Identifier: Apache-2.0

package mixmul

import "github.com/pkg/errors"

// Policy decides, block by block, which instruction class a mixed-mode run
// executes. The engine calls Pick exactly once per kernel invocation, in
// row-major (i,k,j) order, and never concurrently; implementations may keep
// state (a burst counter, a PRNG) but must be fully determined by their
// construction parameters so a run can be replayed.
type Policy interface {
	// Pick returns the class the given block executes under.
	Pick(b Block) Class
	// Name identifies the policy in traces and diagnostics.
	Name() string
}

// xorshift32 is the mixing-policy PRNG: Marsaglia's 13/17/5 generator.
// Small, fast, and fully reproducible from one 32-bit seed.
type xorshift32 struct {
	state uint32
}

// newXorshift32 seeds the generator. Zero is a fixed point of the xorshift
// recurrence, so it is coerced to a nonzero constant.
func newXorshift32(seed uint32) *xorshift32 {
	if seed == 0 {
		seed = 0x9e3779b9
	}
	return &xorshift32{state: seed}
}

func (r *xorshift32) next() uint32 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// FixedPolicy always returns the same class. The pure (unmixed) block modes
// are mixed modes degenerated through it.
type FixedPolicy struct {
	Class Class
}

func (p FixedPolicy) Pick(Block) Class { return p.Class }

func (p FixedPolicy) Name() string { return "fixed_" + p.Class.String() }

// RandomPolicy draws one bit per block from a seeded xorshift32; a set bit
// selects the vector class. The generator is never reseeded mid-run, so the
// seed alone fixes the entire selection sequence.
type RandomPolicy struct {
	rng *xorshift32
}

// NewRandomPolicy builds a random policy from the run seed.
func NewRandomPolicy(seed uint32) *RandomPolicy {
	return &RandomPolicy{rng: newXorshift32(seed)}
}

func (p *RandomPolicy) Pick(Block) Class { return Class(p.rng.next() & 1) }

func (p *RandomPolicy) Name() string { return "random" }

// BurstPolicy alternates a run of vectorBurst consecutive vector blocks with
// a run of scalarBurst consecutive scalar blocks, starting with vector. Two
// states and one remaining-block counter; there are no other transitions.
type BurstPolicy struct {
	vectorBurst int
	scalarBurst int
	current     Class
	remaining   int
}

// NewBurstPolicy builds a burst policy. Both burst lengths must be positive.
func NewBurstPolicy(vectorBurst, scalarBurst int) (*BurstPolicy, error) {
	if vectorBurst < 1 || scalarBurst < 1 {
		return nil, errors.Errorf("burst lengths must be positive, got vector=%d scalar=%d", vectorBurst, scalarBurst)
	}
	return &BurstPolicy{
		vectorBurst: vectorBurst,
		scalarBurst: scalarBurst,
		current:     ClassVector,
		remaining:   vectorBurst,
	}, nil
}

func (p *BurstPolicy) Pick(Block) Class {
	if p.remaining == 0 {
		if p.current == ClassVector {
			p.current, p.remaining = ClassScalar, p.scalarBurst
		} else {
			p.current, p.remaining = ClassVector, p.vectorBurst
		}
	}
	p.remaining--
	return p.current
}

func (p *BurstPolicy) Name() string { return "burst" }

// PeriodicPolicy derives the class from the linear block index alone:
// blocks [0,period) run vector, [period,2*period) scalar, and so on. It
// keeps no state, so the pattern is reproducible from coordinates without
// any history.
type PeriodicPolicy struct {
	period int
}

// NewPeriodicPolicy builds a periodic policy. The period must be positive.
func NewPeriodicPolicy(period int) (*PeriodicPolicy, error) {
	if period < 1 {
		return nil, errors.Errorf("period must be positive, got %d", period)
	}
	return &PeriodicPolicy{period: period}, nil
}

func (p *PeriodicPolicy) Pick(b Block) Class {
	if (b.Index/p.period)%2 == 0 {
		return ClassVector
	}
	return ClassScalar
}

func (p *PeriodicPolicy) Name() string { return "periodic" }
