// Copyright 2025 The gilsync Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diag is the diagnostic channel of the lock layer.
//
// Two kinds of events are reported here:
//
//   - Lock misuse, such as releasing a lock nobody holds. The semaphore
//     rejects the release; diag prints a framed report and counts it. The
//     program continues.
//   - Fatal errors, such as failing to create the semaphore behind a GIL
//     mutex. diag prints "Fatal error in the GIL: <msg>" with the caller's
//     stack and aborts the process.
//
// Output goes to os.Stderr unless redirected with SetOutput. Reports from
// different goroutines never interleave.
package diag

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/kolkov/gilsync/internal/gil/syncutil"
	"github.com/kolkov/gilsync/internal/gil/thread"
)

// ExitCode is the process status used by the default abort hook.
const ExitCode = 2

var (
	mu    syncutil.Mutex // guards out, abort and report output
	out   io.Writer      = os.Stderr
	abort                = func() { os.Exit(ExitCode) }

	misuseReports atomic.Uint64
)

// SetOutput redirects diagnostics to w and returns a function restoring the
// previous writer.
func SetOutput(w io.Writer) (restore func()) {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return func() {
		mu.Lock()
		out = prev
		mu.Unlock()
	}
}

// SetAbort replaces the action taken after a fatal report and returns a
// function restoring the previous one. Embedders use it to run their own
// shutdown; tests use it to observe Fatal without exiting.
func SetAbort(f func()) (restore func()) {
	mu.Lock()
	defer mu.Unlock()
	prev := abort
	abort = f
	return func() {
		mu.Lock()
		abort = prev
		mu.Unlock()
	}
}

// Fatal reports an unrecoverable failure of the lock layer and aborts.
//
// Fatal only returns if the abort hook installed by SetAbort returns.
func Fatal(msg string) {
	stack := CaptureStack(1)

	mu.Lock()
	w, stop := out, abort
	//nolint:errcheck // best effort on the way down
	fmt.Fprintf(w, "Fatal error in the GIL: %s\n", msg)
	stack.Format(w)
	mu.Unlock()

	stop()
}

// Misuse reports an invalid lock operation, such as a release the
// semaphore rejected. op names the operation, detail explains the failure.
//
// Output format:
//
//	==================
//	WARNING: LOCK MISUSE
//	release by goroutine 7: sema: release exceeds maximum count
//	  main.worker()
//	      /path/to/file.go:25
//	==================
func Misuse(op, detail string) {
	stack := CaptureStack(1)
	misuseReports.Add(1)

	var buf strings.Builder
	buf.WriteString("==================\n")
	buf.WriteString("WARNING: LOCK MISUSE\n")
	fmt.Fprintf(&buf, "%s by goroutine %d: %s\n", op, thread.Ident(), detail)
	stack.Format(&buf)
	buf.WriteString("==================\n")

	mu.Lock()
	defer mu.Unlock()
	//nolint:errcheck // diagnostics are best effort
	io.WriteString(out, buf.String())
}

// MisuseReports returns the number of misuse reports since process start.
func MisuseReports() uint64 {
	return misuseReports.Load()
}
