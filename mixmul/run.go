// Copyright 2026 The vecmix Authors. SPDX-License-Identifier: Apache-2.0

package mixmul

import (
	"github.com/pkg/errors"

	"github.com/vecmix/vecmix/measure"
)

// Runner drives one full multiplication under a resolved mode. The whole
// loop nest runs synchronously on the calling goroutine; pinning that thread
// to a core is the invoking environment's job. The measurement session
// brackets exactly one multiplication: Begin immediately before the outer
// block loop (or the single whole-matrix call), End immediately after.
type Runner struct {
	Mode    Mode
	Session measure.Session

	// Trace, when non-nil, observes every block-level kernel selection in
	// execution order. Whole-matrix modes never call it.
	Trace func(Block, Class)
}

// ValidateShape checks the n/bs relationship the mode requires: n must be a
// positive multiple of VectorWidth for every mode; block modes additionally
// need bs to be a positive divisor of n, and the vector-family block modes
// need bs aligned to VectorWidth (their kernels have no tail path). For
// whole-matrix modes bs is an ignored placeholder.
func ValidateShape(mode Mode, n, bs int) error {
	if n <= 0 || n%VectorWidth != 0 {
		return errors.Errorf("matrix dimension must be a positive multiple of %d, got %d", VectorWidth, n)
	}
	if mode.IsWhole() {
		return nil
	}
	if bs <= 0 || n%bs != 0 {
		return errors.Errorf("block size must be a positive divisor of %d, got %d", n, bs)
	}
	if mode.NeedsVectorAlignment && bs%VectorWidth != 0 {
		return errors.Errorf("mode %q requires a block size aligned to %d, got %d", mode.Name, VectorWidth, bs)
	}
	return nil
}

// Run computes C = A×B for n×n row-major matrices, blocked by bs (ignored
// for whole-matrix modes), and returns the session report for the bracketed
// run. c must be zeroed by the caller for block modes; whole-matrix modes
// overwrite it. A nil Session measures elapsed time only.
func (r *Runner) Run(a, b, c []float64, n, bs int) (measure.Report, error) {
	if err := ValidateShape(r.Mode, n, bs); err != nil {
		return measure.Report{}, err
	}
	if len(a) < n*n || len(b) < n*n || len(c) < n*n {
		return measure.Report{}, errors.Errorf("matrix storage shorter than %d elements", n*n)
	}

	sess := r.Session
	if sess == nil {
		sess = measure.Timer()
	}

	var packA, packB []float64
	if !r.Mode.IsWhole() {
		packA = alignedFloats(bs * bs)
		packB = alignedFloats(bs * bs)
	}

	if err := sess.Begin(); err != nil {
		return measure.Report{}, errors.Wrap(err, "begin measurement")
	}

	if r.Mode.IsWhole() {
		r.Mode.Whole(a, b, c, n)
	} else {
		r.runBlocked(a, b, c, n, bs, packA, packB)
	}

	report, err := sess.End()
	if err != nil {
		return measure.Report{}, errors.Wrap(err, "end measurement")
	}
	return report, nil
}

// runBlocked walks the (i,k,j) block grid. A is packed once per (i0,k0) and
// reused across the whole j sweep; B is packed for every invocation. Both
// pack buffers are fully overwritten before each use, so no state leaks
// between iterations.
func (r *Runner) runBlocked(a, b, c []float64, n, bs int, packA, packB []float64) {
	index := 0
	for i0 := 0; i0 < n; i0 += bs {
		for k0 := 0; k0 < n; k0 += bs {
			PackA(a, packA, n, i0, k0, bs)
			for j0 := 0; j0 < n; j0 += bs {
				PackB(b, packB, n, k0, j0, bs)
				blk := Block{I0: i0, J0: j0, K0: k0, BS: bs, Index: index}
				class := r.Mode.Policy.Pick(blk)
				kernel := r.Mode.Scalar
				if class == ClassVector {
					kernel = r.Mode.Vector
				}
				if r.Trace != nil {
					r.Trace(blk, class)
				}
				kernel(packA, packB, c, n, i0, j0, bs)
				index++
			}
		}
	}
}
