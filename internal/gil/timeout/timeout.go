// Copyright 2025 The gilsync Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package timeout translates caller timeouts into native semaphore waits.
//
// Callers speak microseconds (or seconds, for the GIL's interval timer) and
// may ask for waits of any length, including forever. The semaphore speaks
// milliseconds and treats sema.Infinite as "never time out", so a long but
// finite request cannot be handed over as-is. Translation happens in two
// steps:
//
//  1. Millis converts microseconds to milliseconds, rounding up so that a
//     wait never ends before the requested duration.
//  2. Wait issues the native waits, splitting any request longer than
//     MaxWait into MaxWait-sized chunks.
//
// Example:
//
//	ms := timeout.Millis(2500)         // 3
//	r := timeout.Wait(sem, ms)         // one native Wait(3)
//	r = timeout.Wait(sem, timeout.Forever) // one native Wait(sema.Infinite)
package timeout

import (
	"math"

	"github.com/kolkov/gilsync/internal/gil/sema"
)

// Forever is the translated value of any negative timeout.
const Forever int64 = -1

// MaxWait is the longest finite wait, in milliseconds, handed to a single
// native call. It is one unit below sema.Infinite.
const MaxWait = int64(sema.Infinite) - 1

// Waiter is the native wait the translation drives. *sema.Sema implements it.
type Waiter interface {
	Wait(ms uint32) sema.Result
}

// Millis converts a microsecond timeout to milliseconds.
//
// Negative input yields Forever. Any non-zero sub-millisecond remainder adds
// one millisecond, so Millis(1) == 1 and Millis(1000) == 1.
func Millis(us int64) int64 {
	if us < 0 {
		return Forever
	}
	ms := us / 1000
	if us%1000 > 0 {
		ms++
	}
	return ms
}

// FromSeconds converts a delay in seconds to microseconds, rounding any
// fractional microsecond up.
//
// Negative and NaN delays yield 0 (a poll). Delays too large for int64,
// including +Inf, saturate to math.MaxInt64, which is still finite.
func FromSeconds(delay float64) int64 {
	if math.IsNaN(delay) || delay <= 0 {
		return 0
	}
	us := math.Ceil(delay * 1e6)
	if us >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(us)
}

// Wait performs a wait of ms milliseconds on w.
//
// A negative ms issues a single wait with sema.Infinite. Otherwise no native
// call receives more than MaxWait: while more than MaxWait remains, Wait
// sleeps for MaxWait and subtracts it after each timeout. Any result other
// than sema.TimedOut ends the loop immediately.
func Wait(w Waiter, ms int64) sema.Result {
	if ms < 0 {
		return w.Wait(sema.Infinite)
	}

	for ms > MaxWait {
		r := w.Wait(uint32(MaxWait))
		if r != sema.TimedOut {
			return r
		}
		ms -= MaxWait
	}
	return w.Wait(uint32(ms))
}

// WaitMicros is Wait(w, Millis(us)).
func WaitMicros(w Waiter, us int64) sema.Result {
	return Wait(w, Millis(us))
}
