// Copyright 2025 The gilsync Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gil provides the thread and lock primitives a global interpreter
// lock is built from.
//
// The package does not schedule anything itself. It supplies:
//
//   - Threads: [Start] runs a function on a new OS-thread-bound goroutine
//     and returns its [ThreadID] once the thread has published it. Stack
//     size is configured with [SetStackSize] or a per-call [Config].
//   - A non-recursive lock: [Lock] with microsecond timeouts of any length,
//     including forever (negative) and a non-blocking poll (zero).
//   - The GIL's two lock roles, [Mutex1] and [Mutex2], as distinct types,
//     and atomic [Word] operations for lock-free counters.
//
// # Quick Start
//
//	var held gil.Mutex2
//	held.InitLocked()
//
//	id := gil.Start(func() {
//		for !held.LockTimeout(0.005) {
//			// request a switch from the holder
//		}
//		defer held.Unlock()
//		// ... run with the GIL held ...
//	})
//	if id == gil.InvalidThreadID {
//		log.Fatal("cannot start thread")
//	}
//	held.Unlock()
//
// # Timeouts
//
// Timeouts given in microseconds are rounded up to whole milliseconds, the
// native unit of the underlying semaphore, so a timed acquisition never
// gives up early. Requests longer than one native wait (about 49.7 days)
// are split into several waits; a release during any of them is observed
// at once.
//
// # Failure Handling
//
//   - A timeout is a normal outcome ([Failure] or false), never an error.
//   - Releasing a lock that is not held is reported on stderr as
//     "WARNING: LOCK MISUSE" and otherwise ignored.
//   - Failing to create the semaphore behind a [Mutex1] or [Mutex2] prints
//     "Fatal error in the GIL" and exits the process.
//   - Failing to create a thread returns [InvalidThreadID].
//
// # Ordering
//
// Locks give mutual exclusion but no fairness: waiters are not served in
// FIFO order, and a thread can lose the race for a released lock
// indefinitely. Locks do not record their holder, so they may be released
// by a thread other than the one that acquired them.
package gil
