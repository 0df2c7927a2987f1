// Copyright 2025 The gilsync Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux

package thread

// OSThreadID returns -1: the kernel thread ID is not available here.
func OSThreadID() int {
	return -1
}
