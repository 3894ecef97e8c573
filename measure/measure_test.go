// Copyright 2026 The vecmix Authors. SPDX-License-Identifier: Apache-2.0

package measure

import (
	"testing"
	"time"
)

func TestTimerSession(t *testing.T) {
	s := Timer()
	if err := s.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	time.Sleep(time.Millisecond)
	report, err := s.End()
	if err != nil {
		t.Fatalf("End: %v", err)
	}
	if report.Elapsed < time.Millisecond {
		t.Errorf("elapsed %v, want at least 1ms", report.Elapsed)
	}
	if report.Counters != nil {
		t.Errorf("timer session reported counters: %v", report.Counters)
	}
}

func TestTimerSessionOrdering(t *testing.T) {
	s := Timer()
	if _, err := s.End(); err == nil {
		t.Error("End before Begin succeeded")
	}
	if err := s.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := s.Begin(); err == nil {
		t.Error("second Begin succeeded")
	}
	if _, err := s.End(); err != nil {
		t.Fatalf("End: %v", err)
	}
	if _, err := s.End(); err == nil {
		t.Error("End after completion succeeded")
	}
	if err := s.Begin(); err == nil {
		t.Error("Begin on a finished session succeeded")
	}
}
