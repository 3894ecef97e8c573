// Copyright 2026 The vecmix Authors. SPDX-License-Identifier: Apache-2.0

package mixmul

import "github.com/ajroetker/go-highway/hwy"

// maxStrips bounds the lane strips per column group: the narrowest dispatch
// level carries two float64 lanes, so a group splits into at most four.
const maxStrips = VectorWidth / 2

// VectorBlockMulAdd accumulates packA×packB into the C sub-block at (i0,j0)
// processing VectorWidth adjacent output columns as one group per row. The
// group accumulators are seeded from C, then each k step broadcasts one A
// value, loads eight contiguous B values and fuses them in; the group is
// stored back exactly once after the k-reduction completes.
//
// bs must be a multiple of VectorWidth. There is no tail path: non-multiple
// block sizes are rejected during mode resolution, not handled here.
func VectorBlockMulAdd(packA, packB, c []float64, n, i0, j0, bs int) {
	if len(packA) < bs*bs || len(packB) < bs*bs {
		panic("VectorBlockMulAdd: pack buffer too short")
	}
	lanes := hwy.Zero[float64]().NumLanes()
	strips := VectorWidth / lanes
	for ii := range bs {
		aRow := packA[ii*bs:]
		cBase := (i0+ii)*n + j0
		for j := 0; j < bs; j += VectorWidth {
			var acc [maxStrips]hwy.Vec[float64]
			for s := range strips {
				acc[s] = hwy.Load(c[cBase+j+s*lanes:])
			}
			for k := range bs {
				vA := hwy.Set(aRow[k])
				bRow := packB[k*bs+j:]
				for s := range strips {
					acc[s] = hwy.MulAdd(vA, hwy.Load(bRow[s*lanes:]), acc[s])
				}
			}
			for s := range strips {
				hwy.Store(acc[s], c[cBase+j+s*lanes:])
			}
		}
	}
}
