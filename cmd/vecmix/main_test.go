// Copyright 2026 The vecmix Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"testing"

	"github.com/vecmix/vecmix/mixmul"
)

func TestBurstEnv(t *testing.T) {
	t.Setenv("VECMIX_VECTOR_BURST", "")
	v, err := burstEnv("VECMIX_VECTOR_BURST", mixmul.DefaultVectorBurst)
	if err != nil || v != mixmul.DefaultVectorBurst {
		t.Errorf("unset: got %d, %v; want default %d", v, err, mixmul.DefaultVectorBurst)
	}

	t.Setenv("VECMIX_VECTOR_BURST", "6")
	v, err = burstEnv("VECMIX_VECTOR_BURST", mixmul.DefaultVectorBurst)
	if err != nil || v != 6 {
		t.Errorf("override: got %d, %v; want 6", v, err)
	}

	for _, raw := range []string{"0", "-2", "four", "4.5"} {
		t.Setenv("VECMIX_VECTOR_BURST", raw)
		if _, err := burstEnv("VECMIX_VECTOR_BURST", mixmul.DefaultVectorBurst); err == nil {
			t.Errorf("%q accepted as a burst length", raw)
		}
	}
}

func TestModeConfigEnvOverrides(t *testing.T) {
	t.Setenv("VECMIX_VECTOR_BURST", "5")
	t.Setenv("VECMIX_SCALAR_BURST", "3")

	cfg, err := modeConfig(9)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 9 {
		t.Errorf("Seed = %d, want 9", cfg.Seed)
	}
	if cfg.VectorBurst != 5 || cfg.ScalarBurst != 3 {
		t.Errorf("burst lengths = %d/%d, want 5/3", cfg.VectorBurst, cfg.ScalarBurst)
	}

	mode, err := mixmul.ResolveMode("mixed_burst", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !mode.Mixed {
		t.Error("mixed_burst did not resolve as a mixed mode")
	}
}
