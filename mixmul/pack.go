// Copyright 2026 The vecmix Authors. SPDX-License-Identifier: Apache-2.0

package mixmul

// PackA copies the bs×bs block of a with origin (i0,k0) into dst, laid out
// dst[row*bs+col]: row r of dst is row i0+r of a, columns [k0,k0+bs). dst
// must not alias a.
func PackA(a, dst []float64, n, i0, k0, bs int) {
	for r := range bs {
		src := a[(i0+r)*n+k0:]
		copy(dst[r*bs:(r+1)*bs], src[:bs])
	}
}

// PackB copies the bs×bs block of b with origin (k0,j0) into dst, laid out
// dst[row*bs+col]: row r of dst is row k0+r of b, columns [j0,j0+bs). dst
// must not alias b.
func PackB(b, dst []float64, n, k0, j0, bs int) {
	for r := range bs {
		src := b[(k0+r)*n+j0:]
		copy(dst[r*bs:(r+1)*bs], src[:bs])
	}
}
