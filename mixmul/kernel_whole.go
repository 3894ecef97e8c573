// Copyright 2026 The vecmix Authors. SPDX-License-Identifier: Apache-2.0

package mixmul

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

// ScalarWholeMul computes C = A×B over the full n×n matrices with a plain
// triple loop, overwriting c. It ignores blocking entirely and is the
// reference every other strategy is checked against.
func ScalarWholeMul(a, b, c []float64, n int) {
	for i := range n {
		aRow := a[i*n:]
		cRow := c[i*n:]
		for j := range n {
			var sum float64
			for k := range n {
				sum += aRow[k] * b[k*n+j]
			}
			cRow[j] = sum
		}
	}
}

// DelegatedWholeMul forwards the full n×n product to the registered BLAS
// implementation in one call (alpha=1, beta=0), overwriting c.
func DelegatedWholeMul(a, b, c []float64, n int) {
	blas64.Gemm(blas.NoTrans, blas.NoTrans, 1,
		blas64.General{Rows: n, Cols: n, Stride: n, Data: a[:n*n]},
		blas64.General{Rows: n, Cols: n, Stride: n, Data: b[:n*n]},
		0,
		blas64.General{Rows: n, Cols: n, Stride: n, Data: c[:n*n]})
}
