// Copyright 2026 The vecmix Authors. SPDX-License-Identifier: Apache-2.0

package mixmul

// ScalarBlockMulAdd accumulates packA×packB into the C sub-block at (i0,j0)
// one scalar multiply-add at a time. Every output element is one dependent
// accumulation chain seeded from its current C value, which is exactly the
// instruction profile the scalar class is meant to present: no vector units,
// no independent partial sums.
func ScalarBlockMulAdd(packA, packB, c []float64, n, i0, j0, bs int) {
	if len(packA) < bs*bs || len(packB) < bs*bs {
		panic("ScalarBlockMulAdd: pack buffer too short")
	}
	for ii := range bs {
		aRow := packA[ii*bs:]
		cRow := c[(i0+ii)*n+j0:]
		for jj := range bs {
			sum := cRow[jj]
			for kk := range bs {
				sum += aRow[kk] * packB[kk*bs+jj]
			}
			cRow[jj] = sum
		}
	}
}
