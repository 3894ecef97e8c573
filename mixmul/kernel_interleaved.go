// Copyright 2026 The vecmix Authors. SPDX-License-Identifier: Apache-2.0

package mixmul

import (
	"github.com/ajroetker/go-highway/hwy"
	"github.com/pkg/errors"
)

// NewInterleavedBlockMulAdd returns a kernel with the same column split as
// the hybrid kernel (units of vecCols vector columns plus scalarCols scalar
// columns per row) but a single k-reduction loop per unit: each k step feeds
// the vector accumulators and the scalar accumulators before advancing, so
// vector and scalar instructions issue interleaved rather than as two
// separate passes. A trailing remainder shorter than one unit takes the
// scalar path.
//
// vecCols must be a positive multiple of VectorWidth; scalarCols must be at
// least 1.
func NewInterleavedBlockMulAdd(vecCols, scalarCols int) (BlockFunc, error) {
	if vecCols <= 0 || vecCols%VectorWidth != 0 {
		return nil, errors.Errorf("interleaved vector columns must be a positive multiple of %d, got %d", VectorWidth, vecCols)
	}
	if scalarCols < 1 {
		return nil, errors.Errorf("interleaved scalar columns must be at least 1, got %d", scalarCols)
	}
	step := vecCols + scalarCols
	return func(packA, packB, c []float64, n, i0, j0, bs int) {
		if len(packA) < bs*bs || len(packB) < bs*bs {
			panic("InterleavedBlockMulAdd: pack buffer too short")
		}
		lanes := hwy.Zero[float64]().NumLanes()
		strips := vecCols / lanes
		accs := make([]hwy.Vec[float64], strips)
		sums := make([]float64, scalarCols)
		for ii := range bs {
			aRow := packA[ii*bs:]
			cRow := c[(i0+ii)*n+j0:]
			var j int
			for j = 0; j+step <= bs; j += step {
				for s := range strips {
					accs[s] = hwy.Load(cRow[j+s*lanes:])
				}
				for s := range scalarCols {
					sums[s] = cRow[j+vecCols+s]
				}
				for k := range bs {
					av := aRow[k]
					vA := hwy.Set(av)
					bRow := packB[k*bs:]
					for s := range strips {
						accs[s] = hwy.MulAdd(vA, hwy.Load(bRow[j+s*lanes:]), accs[s])
					}
					for s := range scalarCols {
						sums[s] += av * bRow[j+vecCols+s]
					}
				}
				for s := range strips {
					hwy.Store(accs[s], cRow[j+s*lanes:])
				}
				for s := range scalarCols {
					cRow[j+vecCols+s] = sums[s]
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
