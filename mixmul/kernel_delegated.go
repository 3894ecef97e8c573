// Copyright 2026 The vecmix Authors. SPDX-License-Identifier: Apache-2.0

package mixmul

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

// DelegatedBlockMulAdd forwards the bs×bs block product to the registered
// BLAS implementation (alpha=1, beta=1), accumulating into the C sub-block
// through a stride-n view. It serves as the optimized reference point among
// the block strategies and is never part of vector/scalar mixing.
func DelegatedBlockMulAdd(packA, packB, c []float64, n, i0, j0, bs int) {
	if len(packA) < bs*bs || len(packB) < bs*bs {
		panic("DelegatedBlockMulAdd: pack buffer too short")
	}
	blas64.Gemm(blas.NoTrans, blas.NoTrans, 1,
		blas64.General{Rows: bs, Cols: bs, Stride: bs, Data: packA[:bs*bs]},
		blas64.General{Rows: bs, Cols: bs, Stride: bs, Data: packB[:bs*bs]},
		1,
		blas64.General{Rows: bs, Cols: bs, Stride: n, Data: c[i0*n+j0:]})
}
