// Copyright 2025 The gilsync Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diag

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// MaxFrames is the maximum number of frames captured for a report.
const MaxFrames = 8

// Stack is a captured call stack of at most MaxFrames frames.
type Stack struct {
	pc [MaxFrames]uintptr
	n  int
}

// CaptureStack records the stack of its caller, skipping skip further
// frames. CaptureStack(0) starts at the function that called it.
func CaptureStack(skip int) Stack {
	var s Stack
	// Skip runtime.Callers and CaptureStack itself.
	s.n = runtime.Callers(skip+2, s.pc[:])
	return s
}

// Len returns the number of captured frames.
func (s Stack) Len() int {
	return s.n
}

// Format writes the stack in the layout of Go's own reports:
//
//	main.worker()
//	    /path/to/file.go:45
//
// Runtime-internal frames are omitted.
//
//nolint:errcheck // diagnostics are best effort
func (s Stack) Format(w io.Writer) {
	if s.n == 0 {
		fmt.Fprint(w, "  (no stack trace captured)\n")
		return
	}

	printed := false
	frames := runtime.CallersFrames(s.pc[:s.n])
	for {
		frame, more := frames.Next()
		if frame.PC != 0 && !strings.HasPrefix(frame.Function, "runtime.") {
			fmt.Fprintf(w, "  %s()\n", frame.Function)
			fmt.Fprintf(w, "      %s:%d\n", frame.File, frame.Line)
			printed = true
		}
		if !more {
			break
		}
	}

	if !printed {
		fmt.Fprint(w, "  <runtime internal>\n")
	}
}

// String returns the formatted stack.
func (s Stack) String() string {
	var buf strings.Builder
	s.Format(&buf)
	return buf.String()
}
