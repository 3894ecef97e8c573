// Copyright 2026 The vecmix Authors. SPDX-License-Identifier: Apache-2.0

// Package measure provides the measurement boundary around one benchmark
// run. A Session is begun immediately before the multiplication loop nest
// and ended immediately after it; the resulting Report carries elapsed wall
// time plus whatever hardware counters the platform session managed to arm.
//
// The harness depends only on this begin/end contract. Counter acquisition
// is a platform concern and its unavailability degrades a session to
// timing-only; it never fails a run.
package measure

import (
	"time"

	"github.com/pkg/errors"
)

// Counter is one hardware event total captured between Begin and End.
type Counter struct {
	Name  string
	Value uint64
}

// Report summarizes one bracketed run. Counters is nil when the session
// measured time only.
type Report struct {
	Elapsed  time.Duration
	Counters []Counter
}

// Session brackets exactly one run. Begin arms the session and End disarms
// it and returns the report; calling either out of order is an error. A
// Session is single-use and not safe for concurrent use.
type Session interface {
	Begin() error
	End() (Report, error)
}

// Timer returns a session that measures elapsed wall time and nothing else.
// It is the fallback on every platform and the default for tests.
func Timer() Session { return &timerSession{} }

type timerSession struct {
	running bool
	done    bool
	t0      time.Time
}

func (s *timerSession) Begin() error {
	if s.running || s.done {
		return errors.New("measurement session already begun")
	}
	s.running = true
	s.t0 = time.Now()
	return nil
}

func (s *timerSession) End() (Report, error) {
	if !s.running {
		return Report{}, errors.New("measurement session not begun")
	}
	elapsed := time.Since(s.t0)
	s.running = false
	s.done = true
	return Report{Elapsed: elapsed}, nil
}
