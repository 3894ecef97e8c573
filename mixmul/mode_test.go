// Copyright 2026 The vecmix Authors. SPDX-License-Identifier: Apache-2.0

package mixmul

import (
	"strings"
	"testing"
)

func TestResolveMode(t *testing.T) {
	for _, name := range ModeNames() {
		t.Run(name, func(t *testing.T) {
			m, err := ResolveMode(name, ModeConfig{Seed: 1})
			if err != nil {
				t.Fatalf("ResolveMode(%q): %v", name, err)
			}
			if m.Name != name {
				t.Errorf("Name = %q, want %q", m.Name, name)
			}
			if m.IsWhole() {
				if m.Vector != nil || m.Scalar != nil || m.Policy != nil {
					t.Error("whole-matrix mode carries block machinery")
				}
				return
			}
			if m.Vector == nil || m.Scalar == nil || m.Policy == nil {
				t.Error("block mode missing a kernel or policy")
			}
		})
	}
}

func TestResolveModeUnknown(t *testing.T) {
	_, err := ResolveMode("quantum", ModeConfig{})
	if err == nil {
		t.Fatal("unknown mode accepted")
	}
	if !strings.Contains(err.Error(), "unknown mode") {
		t.Errorf("error %q does not name the problem", err)
	}
	// The registry is listed so usage text stays honest.
	if !strings.Contains(err.Error(), "mixed_burst") {
		t.Errorf("error %q does not list the registered modes", err)
	}
}

func TestModeFlags(t *testing.T) {
	aligned := map[string]bool{
		"vector":         true,
		"avx":            true,
		"mixed_random":   true,
		"mixed_burst":    true,
		"mixed_periodic": true,
	}
	mixed := map[string]bool{
		"mixed_random":   true,
		"mixed_burst":    true,
		"mixed_periodic": true,
	}
	whole := map[string]bool{
		"scalar_whole": true,
		"blas_whole":   true,
	}

	for _, name := range ModeNames() {
		m, err := ResolveMode(name, ModeConfig{Seed: 1})
		if err != nil {
			t.Fatal(err)
		}
		if m.NeedsVectorAlignment != aligned[name] {
			t.Errorf("%s: NeedsVectorAlignment = %v, want %v", name, m.NeedsVectorAlignment, aligned[name])
		}
		if m.Mixed != mixed[name] {
			t.Errorf("%s: Mixed = %v, want %v", name, m.Mixed, mixed[name])
		}
		if m.IsWhole() != whole[name] {
			t.Errorf("%s: IsWhole = %v, want %v", name, m.IsWhole(), whole[name])
		}
	}
}

func TestResolveModeConfigErrors(t *testing.T) {
	cases := []struct {
		name string
		cfg  ModeConfig
	}{
		{"hybrid", ModeConfig{HybridVectorCols: 7}},
		{"hybrid", ModeConfig{HybridScalarCols: -1}},
		{"interleaved", ModeConfig{InterleavedVectorCols: 12}},
		{"interleaved", ModeConfig{InterleavedScalarCols: -1}},
		{"mixed_burst", ModeConfig{VectorBurst: -3}},
		{"mixed_burst", ModeConfig{ScalarBurst: -1}},
		{"mixed_periodic", ModeConfig{Period: -4}},
	}
	for _, tc := range cases {
		_, err := ResolveMode(tc.name, tc.cfg)
		if err == nil {
			t.Errorf("ResolveMode(%q, %+v): expected error", tc.name, tc.cfg)
			continue
		}
		if !strings.Contains(err.Error(), tc.name) {
			t.Errorf("error %q does not name mode %q", err, tc.name)
		}
	}
}

func TestModeConfigDefaults(t *testing.T) {
	var cfg ModeConfig
	cfg.applyDefaults()

	if cfg.VectorBurst != DefaultVectorBurst {
		t.Errorf("VectorBurst = %d, want %d", cfg.VectorBurst, DefaultVectorBurst)
	}
	if cfg.ScalarBurst != DefaultScalarBurst {
		t.Errorf("ScalarBurst = %d, want %d", cfg.ScalarBurst, DefaultScalarBurst)
	}
	if cfg.Period != DefaultPeriod {
		t.Errorf("Period = %d, want %d", cfg.Period, DefaultPeriod)
	}
	if cfg.HybridVectorCols != DefaultHybridVectorCols {
		t.Errorf("HybridVectorCols = %d, want %d", cfg.HybridVectorCols, DefaultHybridVectorCols)
	}
	if cfg.HybridScalarCols != DefaultHybridScalarCols {
		t.Errorf("HybridScalarCols = %d, want %d", cfg.HybridScalarCols, DefaultHybridScalarCols)
	}
	if cfg.InterleavedVectorCols != DefaultInterleavedVectorCols {
		t.Errorf("InterleavedVectorCols = %d, want %d", cfg.InterleavedVectorCols, DefaultInterleavedVectorCols)
	}
	if cfg.InterleavedScalarCols != DefaultInterleavedScalarCols {
		t.Errorf("InterleavedScalarCols = %d, want %d", cfg.InterleavedScalarCols, DefaultInterleavedScalarCols)
	}

	set := ModeConfig{VectorBurst: 9, Period: 3}
	set.applyDefaults()
	if set.VectorBurst != 9 || set.Period != 3 {
		t.Errorf("explicit values overwritten: %+v", set)
	}
}

// TestModeAliasAvx checks that avx resolves to the vector strategy under its
// historical name.
func TestModeAliasAvx(t *testing.T) {
	m, err := ResolveMode("avx", ModeConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "avx" {
		t.Errorf("Name = %q, want avx", m.Name)
	}
	if m.IsWhole() || m.Mixed || !m.NeedsVectorAlignment {
		t.Errorf("avx did not resolve to the pure vector strategy: %+v", m)
	}
}
