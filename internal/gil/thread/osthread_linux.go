// Copyright 2025 The gilsync Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package thread

import "golang.org/x/sys/unix"

// OSThreadID returns the kernel thread ID of the calling OS thread.
//
// Unlike Ident it changes if the goroutine migrates, except on threads
// started by Start, which stay wired to one OS thread. Intended for
// diagnostics only.
func OSThreadID() int {
	return unix.Gettid()
}
