// Copyright 2026 The vecmix Authors. SPDX-License-Identifier: Apache-2.0

package mixmul

import (
	"github.com/ajroetker/go-highway/hwy"
	"github.com/pkg/errors"
)

// NewHybridBlockMulAdd returns a kernel that splits every output row into
// repeating units of vecCols vector columns followed by scalarCols scalar
// columns. The two runs of a unit are computed as two separate passes: first
// the vector columns (lane strips, accumulators held across the whole
// k-reduction), then the scalar columns (one dependent chain each). A
// trailing remainder shorter than one full unit always takes the scalar
// path, so any bs works.
//
// vecCols must be a positive multiple of VectorWidth; scalarCols must be at
// least 1. Both are fixed at construction and validated here, once.
func NewHybridBlockMulAdd(vecCols, scalarCols int) (BlockFunc, error) {
	if vecCols <= 0 || vecCols%VectorWidth != 0 {
		return nil, errors.Errorf("hybrid vector columns must be a positive multiple of %d, got %d", VectorWidth, vecCols)
	}
	if scalarCols < 1 {
		return nil, errors.Errorf("hybrid scalar columns must be at least 1, got %d", scalarCols)
	}
	step := vecCols + scalarCols
	return func(packA, packB, c []float64, n, i0, j0, bs int) {
		if len(packA) < bs*bs || len(packB) < bs*bs {
			panic("HybridBlockMulAdd: pack buffer too short")
		}
		lanes := hwy.Zero[float64]().NumLanes()
		for ii := range bs {
			aRow := packA[ii*bs:]
			cRow := c[(i0+ii)*n+j0:]
			var j int
			for j = 0; j+step <= bs; j += step {
				// Vector run of the unit.
				for v := 0; v < vecCols; v += lanes {
					col := j + v
					acc := hwy.Load(cRow[col:])
					for k := range bs {
						acc = hwy.MulAdd(hwy.Set(aRow[k]), hwy.Load(packB[k*bs+col:]), acc)
					}
					hwy.Store(acc, cRow[col:])
				}
				// Scalar run of the unit.
				for s := range scalarCols {
					col := j + vecCols + s
					sum := cRow[col]
					for k := range bs {
						sum += aRow[k] * packB[k*bs+col]
					}
					cRow[col] = sum
				}
			}
			// Remainder shorter than one unit: safe scalar path.
			for ; j < bs; j++ {
				sum := cRow[j]
				for k := range bs {
					sum += aRow[k] * packB[k*bs+j]
				}
				cRow[j] = sum
			}
		}
	}, nil
}
