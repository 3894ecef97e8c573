// Copyright 2026 The vecmix Authors. SPDX-License-Identifier: Apache-2.0

package mixmul

import (
	"fmt"
	"io"
	"unsafe"

	"github.com/pkg/errors"
)

// storageAlign is the byte alignment of matrix and pack-buffer storage.
// Aligning rows to a cache line keeps vector loads and stores from
// straddling lines.
const storageAlign = 64

// Matrix is a square float64 matrix stored flat in row-major order with
// 64-byte-aligned backing storage.
type Matrix struct {
	n    int
	data []float64
}

// NewMatrix allocates an n×n zeroed matrix.
func NewMatrix(n int) (*Matrix, error) {
	if n <= 0 {
		return nil, errors.Errorf("matrix dimension must be positive, got %d", n)
	}
	return &Matrix{n: n, data: alignedFloats(n * n)}, nil
}

// alignedFloats returns a zeroed slice of count float64 values whose first
// element sits on a 64-byte boundary. The aligned window is carved out of a
// slightly larger allocation; the subslice keeps the backing array alive.
func alignedFloats(count int) []float64 {
	const pad = storageAlign / 8
	raw := make([]float64, count+pad)
	off := 0
	if rem := uintptr(unsafe.Pointer(&raw[0])) % storageAlign; rem != 0 {
		off = int((storageAlign - rem) / 8)
	}
	return raw[off : off+count : off+count]
}

// Dim returns the matrix dimension n.
func (m *Matrix) Dim() int { return m.n }

// Data returns the flat row-major element slice of length n*n.
func (m *Matrix) Data() []float64 { return m.data }

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) float64 { return m.data[i*m.n+j] }

// Set stores v at row i, column j.
func (m *Matrix) Set(i, j int, v float64) { m.data[i*m.n+j] = v }

// FillDeterministic writes ((i*33+7) mod 100) + 1 to flattened element i.
// The pattern is a pure function of the index: two runs with the same n get
// bit-identical contents regardless of any seed, which is what makes run
// checksums comparable across modes.
func (m *Matrix) FillDeterministic() {
	for i := range m.data {
		m.data[i] = float64((i*33+7)%100) + 1
	}
}

// Zero clears every element.
func (m *Matrix) Zero() {
	clear(m.data)
}

// Checksum returns the sum of all elements, accumulated in row-major order.
// The fixed order keeps the value reproducible between runs.
func (m *Matrix) Checksum() float64 {
	var sum float64
	for _, v := range m.data {
		sum += v
	}
	return sum
}

// WriteTo prints the matrix one element per line in row-major order, the
// format consumed by external correctness-diff tooling.
func (m *Matrix) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, v := range m.data {
		n, err := fmt.Fprintf(w, "%.6f\n", v)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
