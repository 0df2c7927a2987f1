// Copyright 2025 The gilsync Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mutex

import "sync/atomic"

// Word is a machine word updated atomically, such as the GIL's waiter
// counter or its "held" flag. The zero value is 0.
type Word struct {
	v atomic.Int64
}

// Load returns the current value of w.
func (w *Word) Load() int64 {
	return w.v.Load()
}

// Store sets w to v.
func (w *Word) Store(v int64) {
	w.v.Store(v)
}

// LockTestAndSet stores v into w and returns the previous value.
func LockTestAndSet(w *Word, v int64) int64 {
	return w.v.Swap(v)
}

// AtomicIncrement adds one to w and returns the new value.
func AtomicIncrement(w *Word) int64 {
	return w.v.Add(1)
}

// AtomicDecrement subtracts one from w and returns the new value.
func AtomicDecrement(w *Word) int64 {
	return w.v.Add(-1)
}
