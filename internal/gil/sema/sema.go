// Copyright 2025 The gilsync Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sema implements the counting wait/signal primitive that every lock
// in gilsync is built on.
//
// A Sema holds a count between 0 and a fixed maximum. Wait takes one unit,
// blocking up to a relative timeout expressed in milliseconds; Signal adds
// units back. The interface mirrors a classic OS semaphore object:
//
//	s, err := sema.New(1, 1) // binary semaphore, initially available
//	if s.Wait(sema.Infinite) == sema.Signaled {
//	    // ... exclusive section ...
//	    _ = s.Signal(1)
//	}
//	s.Close()
//
// A Sema does not know which goroutine took a unit, and it does not queue
// waiters in FIFO order. Both properties are relied on by the non-recursive
// mutex built on top of it.
//
// The native timeout unit is the millisecond and the largest value a single
// call accepts is Infinite-1. Longer waits must be split by the caller (see
// package timeout).
package sema

import (
	"errors"
	"fmt"
)

// Infinite is the wait duration that never times out.
const Infinite uint32 = 0xFFFFFFFF

// Result is the outcome of a single Wait call.
type Result int

const (
	// Signaled means one unit was taken from the count.
	Signaled Result = iota

	// TimedOut means the relative timeout elapsed with the count at zero.
	TimedOut

	// Failed means the semaphore is closed or the platform wait failed.
	Failed
)

// String returns a human-readable result name.
func (r Result) String() string {
	switch r {
	case Signaled:
		return "signaled"
	case TimedOut:
		return "timed out"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

var (
	// ErrInvalidCount is returned by New for a zero maximum or an initial
	// count above the maximum.
	ErrInvalidCount = errors.New("sema: invalid initial or maximum count")

	// ErrLimitExceeded is returned by Signal when the release would push
	// the count above the maximum. The count is left unchanged.
	ErrLimitExceeded = errors.New("sema: release exceeds maximum count")

	// ErrClosed is returned by Signal after Close.
	ErrClosed = errors.New("sema: semaphore is closed")
)

// New creates a semaphore with the given initial count and maximum.
//
// Returns ErrInvalidCount when max is zero or initial exceeds max.
func New(initial, max uint32) (*Sema, error) {
	if max == 0 || initial > max {
		return nil, fmt.Errorf("%w: initial=%d max=%d", ErrInvalidCount, initial, max)
	}
	return newSema(initial, max), nil
}

// Max returns the maximum count the semaphore was created with.
func (s *Sema) Max() uint32 {
	return s.max
}
