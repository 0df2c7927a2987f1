// Copyright 2025 The gilsync Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !deadlock

// Package syncutil provides the mutex used for gilsync's own bookkeeping.
//
// Builds with the deadlock tag swap in github.com/sasha-s/go-deadlock, which
// reports lock-order inversions and long waits:
//
//	go test -tags deadlock ./...
//
// The primitives handed to GIL consumers never use this type; it only guards
// internal state such as the diagnostic writer.
package syncutil

import "sync"

// DeadlockEnabled is true if the deadlock detector is enabled.
const DeadlockEnabled = false

// A Mutex is a mutual exclusion lock.
type Mutex struct {
	sync.Mutex
}
