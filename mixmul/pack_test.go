// Copyright 2026 The vecmix Authors. SPDX-License-Identifier: Apache-2.0

package mixmul

import "testing"

func TestPackA(t *testing.T) {
	const n = 16
	const bs = 8

	a := make([]float64, n*n)
	for i := range a {
		a[i] = float64(i)
	}
	dst := make([]float64, bs*bs)

	for _, origin := range [][2]int{{0, 0}, {0, bs}, {bs, 0}, {bs, bs}} {
		i0, k0 := origin[0], origin[1]
		PackA(a, dst, n, i0, k0, bs)
		for r := 0; r < bs; r++ {
			for col := 0; col < bs; col++ {
				want := a[(i0+r)*n+k0+col]
				if got := dst[r*bs+col]; got != want {
					t.Fatalf("PackA origin (%d,%d): dst[%d,%d] = %v, want %v", i0, k0, r, col, got, want)
				}
			}
		}
	}
}

func TestPackB(t *testing.T) {
	const n = 16
	const bs = 8

	b := make([]float64, n*n)
	for i := range b {
		b[i] = float64(i) * 0.5
	}
	dst := make([]float64, bs*bs)

	for _, origin := range [][2]int{{0, 0}, {0, bs}, {bs, 0}, {bs, bs}} {
		k0, j0 := origin[0], origin[1]
		PackB(b, dst, n, k0, j0, bs)
		for r := 0; r < bs; r++ {
			for col := 0; col < bs; col++ {
				want := b[(k0+r)*n+j0+col]
				if got := dst[r*bs+col]; got != want {
					t.Fatalf("PackB origin (%d,%d): dst[%d,%d] = %v, want %v", k0, j0, r, col, got, want)
				}
			}
		}
	}
}

// TestPackOverwrite checks that packing fully replaces the buffer even when
// it held a previous block.
func TestPackOverwrite(t *testing.T) {
	const n = 16
	const bs = 4

	a := make([]float64, n*n)
	for i := range a {
		a[i] = float64(i)
	}
	dst := make([]float64, bs*bs)

	PackA(a, dst, n, 0, 0, bs)
	PackA(a, dst, n, 12, 8, bs)

	for r := 0; r < bs; r++ {
		for col := 0; col < bs; col++ {
			want := a[(12+r)*n+8+col]
			if got := dst[r*bs+col]; got != want {
				t.Fatalf("dst[%d,%d] = %v, want %v after repack", r, col, got, want)
			}
		}
	}
}
