// Copyright 2025 The gilsync Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux

// Channel-backed semaphore for platforms without a futex.
//
// Each unit of the count is a token in a buffered channel of capacity max.

package sema

import (
	"sync"
	"sync/atomic"
	"time"
)

// Implementation names the platform primitive behind Sema.
const Implementation = "channel"

// Sema is a counting semaphore with a fixed maximum.
//
// Must not be copied after first use.
type Sema struct {
	tokens chan struct{}
	done   chan struct{}
	max    uint32
	closed atomic.Bool

	// mu makes a multi-unit Signal all-or-nothing.
	mu sync.Mutex
}

func newSema(initial, max uint32) *Sema {
	s := &Sema{
		tokens: make(chan struct{}, max),
		done:   make(chan struct{}),
		max:    max,
	}
	for i := uint32(0); i < initial; i++ {
		s.tokens <- struct{}{}
	}
	return s
}

// Wait takes one unit from the count, sleeping up to ms milliseconds while
// the count is zero. ms == Infinite sleeps until signaled; ms == 0 polls.
//
// TimedOut is returned only once at least ms milliseconds have elapsed.
func (s *Sema) Wait(ms uint32) Result {
	if s.closed.Load() {
		return Failed
	}

	select {
	case <-s.tokens:
		return Signaled
	default:
	}
	if ms == 0 {
		return TimedOut
	}

	if ms == Infinite {
		select {
		case <-s.tokens:
			return Signaled
		case <-s.done:
			return Failed
		}
	}

	timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
	defer timer.Stop()
	select {
	case <-s.tokens:
		return Signaled
	case <-s.done:
		return Failed
	case <-timer.C:
		return TimedOut
	}
}

// Signal adds n to the count and wakes up to n sleepers.
func (s *Sema) Signal(n uint32) error {
	if s.closed.Load() {
		return ErrClosed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if uint64(len(s.tokens))+uint64(n) > uint64(s.max) {
		return ErrLimitExceeded
	}
	for i := uint32(0); i < n; i++ {
		s.tokens <- struct{}{}
	}
	return nil
}

// Close marks the semaphore unusable and wakes every sleeper, which then
// returns Failed. Closing twice is a no-op.
func (s *Sema) Close() {
	if s.closed.Swap(true) {
		return
	}
	close(s.done)
}
