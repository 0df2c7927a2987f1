// Copyright 2025 The gilsync Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

// Futex-backed semaphore for Linux.
//
// The count word doubles as the futex key. Waiters sleep in FUTEX_WAIT only
// while the count reads zero, so a concurrent Signal either is observed by
// the decrement loop or wakes the sleeper. This is the same scheme the Go
// runtime uses in lock_futex.go, with the count bounded by max.

package sema

import (
	"math"
	"sync/atomic"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Implementation names the platform primitive behind Sema.
const Implementation = "futex"

const (
	_FUTEX_PRIVATE_FLAG = 128
	_FUTEX_WAIT_PRIVATE = 0 | _FUTEX_PRIVATE_FLAG
	_FUTEX_WAKE_PRIVATE = 1 | _FUTEX_PRIVATE_FLAG
)

// Sema is a counting semaphore with a fixed maximum.
//
// Must not be copied after first use.
type Sema struct {
	count  uint32 // futex word, accessed atomically
	max    uint32
	closed atomic.Bool
}

func newSema(initial, max uint32) *Sema {
	return &Sema{count: initial, max: max}
}

// Wait takes one unit from the count, sleeping up to ms milliseconds while
// the count is zero. ms == Infinite sleeps until signaled; ms == 0 polls.
//
// TimedOut is returned only once at least ms milliseconds have elapsed.
func (s *Sema) Wait(ms uint32) Result {
	var deadline time.Time
	if ms != Infinite {
		deadline = time.Now().Add(time.Duration(ms) * time.Millisecond)
	}

	for {
		if s.closed.Load() {
			return Failed
		}
		if s.tryAcquire() {
			return Signaled
		}

		var ts *unix.Timespec
		if ms != Infinite {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				return TimedOut
			}
			t := unix.NsecToTimespec(remaining.Nanoseconds())
			ts = &t
		}

		if !s.futexSleep(ts) {
			return Failed
		}
	}
}

// Signal adds n to the count and wakes up to n sleepers.
func (s *Sema) Signal(n uint32) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if n == 0 {
		return nil
	}
	for {
		c := atomic.LoadUint32(&s.count)
		if uint64(c)+uint64(n) > uint64(s.max) {
			return ErrLimitExceeded
		}
		if atomic.CompareAndSwapUint32(&s.count, c, c+n) {
			break
		}
	}
	s.futexWake(n)
	return nil
}

// Close marks the semaphore unusable and wakes every sleeper, which then
// returns Failed. Closing twice is a no-op.
func (s *Sema) Close() {
	if s.closed.Swap(true) {
		return
	}
	s.futexWake(math.MaxInt32)
}

func (s *Sema) tryAcquire() bool {
	for {
		c := atomic.LoadUint32(&s.count)
		if c == 0 {
			return false
		}
		if atomic.CompareAndSwapUint32(&s.count, c, c-1) {
			return true
		}
	}
}

// futexSleep blocks while the count is zero. A nil ts sleeps without a
// timeout. Spurious wakeups, interrupted sleeps and expired timeouts all
// report true so the caller re-checks the count and the deadline.
func (s *Sema) futexSleep(ts *unix.Timespec) bool {
	_, _, errno := unix.Syscall6(unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(&s.count)),
		_FUTEX_WAIT_PRIVATE,
		0,
		uintptr(unsafe.Pointer(ts)),
		0, 0)
	switch errno {
	case 0, unix.EAGAIN, unix.EINTR, unix.ETIMEDOUT:
		return true
	default:
		return false
	}
}

func (s *Sema) futexWake(n uint32) {
	if n > math.MaxInt32 {
		n = math.MaxInt32
	}
	_, _, _ = unix.Syscall6(unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(&s.count)),
		_FUTEX_WAKE_PRIVATE,
		uintptr(n),
		0, 0, 0)
}
