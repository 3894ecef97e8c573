// Copyright 2026 The vecmix Authors. SPDX-License-Identifier: Apache-2.0

// Package mixmul implements the blocked matrix-multiply engine at the heart
// of the vecmix measurement harness.
//
// The engine multiplies square row-major float64 matrices block by block and
// lets every bs×bs block product execute under an interchangeable kernel
// strategy: pure scalar arithmetic, 8-wide vector arithmetic, fixed
// within-row blends of the two (hybrid, interleaved), or delegation to an
// external BLAS. Mixed modes pick vector or scalar per block through a
// deterministic policy, so a given seed always replays the same instruction
// sequence on the core.
//
// All strategies compute the same product. They differ only in operation
// ordering and grouping, so results agree within a small floating-point
// tolerance while the instruction stream on the core differs drastically.
// That contrast is what the harness measures: how the mix affects wall-clock
// time, energy draw and effective clock frequency, not how fast the multiply
// can go.
package mixmul

// VectorWidth is the number of float64 columns the vector-family kernels
// process as one group, matching one 512-bit fused multiply-add. Block sizes
// handed to the pure vector kernel must be a multiple of it. Narrower SIMD
// dispatch levels subdivide a group into lane strips without changing this
// contract.
const VectorWidth = 8

// Block identifies one bs×bs sub-product of the global n×n multiplication.
// I0 and J0 locate the destination sub-block of C, K0 the reduction slice of
// A and B. Index is the linear ordinal of the kernel invocation in row-major
// (i,k,j) block-grid order.
type Block struct {
	I0, J0, K0 int
	BS         int
	Index      int
}

// BlockFunc is the block-level kernel shape. It reads the two bs×bs pack
// buffers (laid out pack[row*bs+col]) and accumulates their product into the
// bs×bs sub-block of c at (i0,j0), global row stride n. Kernels must add to
// the existing C contents, never overwrite, and must leave every element
// outside the sub-block untouched. The k-origin never appears here: packing
// absorbs it, so a kernel only needs to know where to accumulate.
type BlockFunc func(packA, packB, c []float64, n, i0, j0, bs int)

// WholeFunc is the whole-matrix kernel shape: compute C = A×B over full n×n
// matrices in one call, overwriting c.
type WholeFunc func(a, b, c []float64, n int)

// Class names the two instruction families a mixing policy chooses between.
type Class uint8

const (
	// ClassScalar selects the plain scalar block kernel.
	ClassScalar Class = iota
	// ClassVector selects the 8-wide vector block kernel.
	ClassVector
)

func (c Class) String() string {
	if c == ClassVector {
		return "vector"
	}
	return "scalar"
}
