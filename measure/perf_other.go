// Copyright 2026 The vecmix Authors. SPDX-License-Identifier: Apache-2.0

//go:build !linux

package measure

// NewSession returns the platform session. Hardware counters are a Linux
// facility; everywhere else the session measures wall time only.
func NewSession() Session {
	return Timer()
}
