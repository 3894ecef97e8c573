// Copyright 2026 The vecmix Authors. SPDX-License-Identifier: Apache-2.0

//go:build linux

package measure

import (
	"os"
	"time"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
	"k8s.io/klog/v2"
)

// NoPerfEnv reports whether VECMIX_NO_PERF is set, forcing timing-only
// sessions even where perf events are available.
func NoPerfEnv() bool {
	return os.Getenv("VECMIX_NO_PERF") != ""
}

// perfEvent names one hardware event of the fixed session set.
type perfEvent struct {
	name   string
	config uint64
}

// sessionEvents is the fixed counter set: enough to derive instructions per
// cycle and the effective core frequency over the bracketed span. Anything
// richer belongs to the external counter tooling, not this boundary.
var sessionEvents = []perfEvent{
	{"cpu-cycles", unix.PERF_COUNT_HW_CPU_CYCLES},
	{"instructions", unix.PERF_COUNT_HW_INSTRUCTIONS},
	{"ref-cycles", unix.PERF_COUNT_HW_REF_CPU_CYCLES},
}

// NewSession returns the platform session: hardware counters around a wall
// clock where perf_event_open is usable, plain timing otherwise. Counter
// setup failures degrade the session with a warning; they never surface as
// run errors.
func NewSession() Session {
	if NoPerfEnv() {
		return Timer()
	}
	return &perfSession{}
}

// perfSession counts the fixed hardware event set for the calling process
// across all CPUs it runs on (the harness is expected to be pinned, so in
// practice that is one core). Events are opened disabled, reset and enabled
// together at Begin, and disabled, read and closed at End.
type perfSession struct {
	running bool
	done    bool
	fds     []int
	names   []string
	t0      time.Time
}

func (s *perfSession) Begin() error {
	if s.running || s.done {
		return errors.New("measurement session already begun")
	}
	s.open()
	for _, fd := range s.fds {
		_ = unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_RESET, 0)
	}
	for _, fd := range s.fds {
		_ = unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_ENABLE, 0)
	}
	s.running = true
	s.t0 = time.Now()
	return nil
}

func (s *perfSession) End() (Report, error) {
	if !s.running {
		return Report{}, errors.New("measurement session not begun")
	}
	elapsed := time.Since(s.t0)
	s.running = false
	s.done = true

	var counters []Counter
	for i, fd := range s.fds {
		_ = unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_DISABLE, 0)
		var value uint64
		n, err := unix.Read(fd, (*[8]byte)(unsafe.Pointer(&value))[:])
		if err == nil && n == 8 {
			counters = append(counters, Counter{Name: s.names[i], Value: value})
		}
		_ = unix.Close(fd)
	}
	s.fds = nil
	s.names = nil
	return Report{Elapsed: elapsed, Counters: counters}, nil
}

// open arms the fixed event set. Opening stops at the first failure;
// events opened before it are kept, so a partial set still gets reported.
func (s *perfSession) open() {
	for _, ev := range sessionEvents {
		attr := unix.PerfEventAttr{
			Type:   unix.PERF_TYPE_HARDWARE,
			Config: ev.config,
			Bits:   unix.PerfBitDisabled | unix.PerfBitExcludeKernel | unix.PerfBitExcludeHv,
		}
		attr.Size = uint32(unsafe.Sizeof(attr))
		fd, err := unix.PerfEventOpen(&attr, 0, -1, -1, unix.PERF_FLAG_FD_CLOEXEC)
		if err != nil {
			klog.Warningf("perf counters unavailable (%s: %v), measuring time only", ev.name, err)
			break
		}
		s.fds = append(s.fds, fd)
		s.names = append(s.names, ev.name)
	}
}
