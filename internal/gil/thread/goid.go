// Copyright 2025 The gilsync Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Goroutine identity.
//
// A thread started by Start is a goroutine wired to its own OS thread, and
// its identifier is the goroutine ID. Goroutine IDs are positive and never
// reused within a process, which OS thread IDs do not guarantee.
//
// The ID is read from the first line of runtime.Stack output:
//
//	goroutine 123 [running]:

package thread

import "runtime"

// ID identifies a thread started by Start (or any goroutine, via Ident).
type ID int64

// InvalidID is returned by Start when the thread could not be created.
const InvalidID ID = -1

// Ident returns the identifier of the calling goroutine.
func Ident() ID {
	return ID(goroutineID())
}

// goroutineID extracts the current goroutine ID by parsing runtime.Stack.
//
// Returns 0 if parsing fails.
func goroutineID() int64 {
	// Only the first line is needed.
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	return parseGID(buf[:n])
}

// parseGID extracts the goroutine ID from stack trace bytes.
//
// Expected format: "goroutine 123 [running]:..."
// Returns the numeric ID or 0 if the format is not recognized.
func parseGID(buf []byte) int64 {
	const prefix = "goroutine "

	if len(buf) < len(prefix) || string(buf[:len(prefix)]) != prefix {
		return 0
	}

	var gid int64
	for _, c := range buf[len(prefix):] {
		if c < '0' || c > '9' {
			break
		}
		gid = gid*10 + int64(c-'0')
	}
	return gid
}
