// Copyright 2025 The gilsync Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package thread starts threads for a GIL-based runtime and names them.
//
// Start runs a zero-argument entry function on a new goroutine wired to its
// own OS thread and returns the new thread's ID. The ID is published by the
// new thread itself before entry runs, and Start blocks on a one-shot
// semaphore until then:
//
//	Start                          bootstrap (new thread)
//	-----                          ----------------------
//	create handshake{id: Invalid}
//	Launch(bootstrap) ------------> copy entry out of handshake
//	Wait(done)                      handshake.id = Ident()
//	                 <------------- Signal(done)
//	read handshake.id               entry()
//	Close(done)
//
// The signal is the only synchronization between writing and reading the
// ID, and the bootstrap never touches the handshake after signaling.
//
// Spawn parameters live in a Config (stack size, launcher, thread cap),
// carried to Start through a context.Context:
//
//	cfg := thread.NewConfig(thread.WithMaxThreads(64))
//	if err := cfg.SetStackSize(1 << 20); err != nil {
//	    return err
//	}
//	id := thread.Start(thread.WithConfig(ctx, cfg), worker)
//	if id == thread.InvalidID {
//	    // too many threads
//	}
package thread
