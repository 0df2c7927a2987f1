// Copyright 2025 The gilsync Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mutex provides the two lock types a GIL implementation is built
// from, plus the atomic word operations it uses for lock-free bookkeeping.
//
// Mutex1 and Mutex2 share one representation, a non-recursive nrmutex.Lock,
// but are distinct types so a GIL cannot hand one role's lock to code
// expecting the other. A typical split is Mutex2 for "the GIL is held" and
// Mutex1 for "a thread is waiting to take it":
//
//	var held mutex.Mutex2
//	var waiting mutex.Mutex1
//	held.InitLocked() // the main thread starts out holding the GIL
//	waiting.Init()
//
//	// in a thread that wants the GIL:
//	waiting.Lock()
//	held.LoopStart()
//	for !held.LockTimeout(0.005) {
//	    // ask the holder to yield
//	}
//	held.LoopStop()
//	waiting.Unlock()
//
// Failing to create a lock aborts the process through diag.Fatal: a GIL
// with a half-initialized lock cannot keep its invariants.
package mutex

import (
	"github.com/kolkov/gilsync/internal/gil/diag"
	"github.com/kolkov/gilsync/internal/gil/nrmutex"
	"github.com/kolkov/gilsync/internal/gil/timeout"
)

// lockInit creates the semaphore behind a lock. Replaced in tests.
var lockInit = (*nrmutex.Lock).Init

// initLock initializes l or aborts.
func initLock(l *nrmutex.Lock) {
	if err := lockInit(l); err != nil {
		diag.Fatal("CreateSemaphore failed")
	}
}

// Mutex1 is the GIL's plain lock.
type Mutex1 struct {
	l nrmutex.Lock
}

// Init prepares m, unlocked.
func (m *Mutex1) Init() {
	initLock(&m.l)
}

// Lock blocks until m is held.
func (m *Mutex1) Lock() {
	m.l.AcquireTimed(-1)
}

// Unlock releases m.
func (m *Mutex1) Unlock() {
	m.l.Release()
}

// Destroy releases m's resources. No goroutine may hold or wait on m.
func (m *Mutex1) Destroy() {
	m.l.Destroy()
}

// Mutex2 is the GIL's lock with timed acquisition.
type Mutex2 struct {
	l nrmutex.Lock
}

// Init prepares m, unlocked.
func (m *Mutex2) Init() {
	initLock(&m.l)
}

// InitLocked prepares m already held by the caller.
//
// The lock exists unlocked for an instant, so m must not be visible to
// other goroutines until InitLocked returns.
func (m *Mutex2) InitLocked() {
	m.Init()
	m.Lock()
}

// Lock blocks until m is held.
func (m *Mutex2) Lock() {
	m.l.AcquireTimed(-1)
}

// Unlock releases m.
func (m *Mutex2) Unlock() {
	m.l.Release()
}

// LockTimeout tries to take m within delay seconds and reports whether it
// did. The delay is rounded up to the next microsecond, then to the next
// millisecond. A delay <= 0 polls.
func (m *Mutex2) LockTimeout(delay float64) bool {
	return m.l.AcquireTimed(timeout.FromSeconds(delay)) == nrmutex.Acquired
}

// LoopStart marks the start of a LockTimeout polling loop. It does nothing
// here; lock implementations that keep fairness state hook in at this point.
func (m *Mutex2) LoopStart() {}

// LoopStop marks the end of a LockTimeout polling loop. It does nothing.
func (m *Mutex2) LoopStop() {}

// Destroy releases m's resources. No goroutine may hold or wait on m.
func (m *Mutex2) Destroy() {
	m.l.Destroy()
}
