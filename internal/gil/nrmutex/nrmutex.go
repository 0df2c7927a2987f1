// Copyright 2025 The gilsync Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nrmutex implements a non-recursive mutex with timed acquisition.
//
// A Lock is a binary semaphore (count 1, maximum 1). Whoever takes the unit
// holds the lock; nobody records who that is. A goroutine that acquires a
// Lock it already holds therefore waits like any other, until the timeout
// expires or another goroutine releases it.
//
// Timeouts are in microseconds:
//
//	us < 0   wait indefinitely
//	us == 0  poll without blocking
//	us > 0   wait at least us microseconds
//
// Acquisition has two outcomes, Acquired and Failure. A timeout is a normal
// Failure, not an error. No fairness among waiters is promised.
package nrmutex

import (
	"fmt"

	"github.com/kolkov/gilsync/internal/gil/diag"
	"github.com/kolkov/gilsync/internal/gil/sema"
	"github.com/kolkov/gilsync/internal/gil/timeout"
)

// Status is the outcome of an acquisition attempt.
type Status int

const (
	// Failure means the lock was not acquired; ownership is unchanged.
	Failure Status = iota

	// Acquired means the caller now holds the lock.
	Acquired
)

// String returns a human-readable status name.
func (s Status) String() string {
	if s == Acquired {
		return "acquired"
	}
	return "failure"
}

// newSema creates the underlying semaphore. Replaced in tests.
var newSema = sema.New

// Lock is a non-recursive mutex. The zero value is not usable; call Init.
//
// Init must happen before the Lock is shared, and Destroy after every
// goroutine has stopped using it. Neither is checked.
type Lock struct {
	sem *sema.Sema
}

// Init prepares l, unlocked. Returns an error if the semaphore cannot be
// created.
func (l *Lock) Init() error {
	s, err := newSema(1, 1)
	if err != nil {
		return fmt.Errorf("nrmutex: init: %w", err)
	}
	l.sem = s
	return nil
}

// Destroy releases the semaphore. Destroying an uninitialized or already
// destroyed Lock does nothing.
func (l *Lock) Destroy() {
	if l.sem == nil {
		return
	}
	l.sem.Close()
	l.sem = nil
}

// AcquireTimed tries to take l within us microseconds.
//
// A nil or uninitialized Lock always yields Failure. The lock does not
// track its holder: a second AcquireTimed by the holder fails after the
// timeout, and with us < 0 never returns unless someone else releases.
func (l *Lock) AcquireTimed(us int64) Status {
	if l == nil || l.sem == nil {
		return Failure
	}
	if timeout.WaitMicros(l.sem, us) == sema.Signaled {
		return Acquired
	}
	return Failure
}

// Acquire blocks until l is taken if wait is true, otherwise polls once.
// Reports whether the lock was acquired.
func (l *Lock) Acquire(wait bool) bool {
	us := int64(0)
	if wait {
		us = -1
	}
	return l.AcquireTimed(us) == Acquired
}

// Release gives up l.
//
// Releasing a Lock that is not held is a programming error the semaphore
// cannot attribute to anyone, but it does reject the release. A rejected
// release is reported through diag.Misuse and returns false.
func (l *Lock) Release() bool {
	if l == nil || l.sem == nil {
		diag.Misuse("release", "lock not initialized")
		return false
	}
	if err := l.sem.Signal(1); err != nil {
		diag.Misuse("release", err.Error())
		return false
	}
	return true
}
