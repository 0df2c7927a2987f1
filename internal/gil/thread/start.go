// Copyright 2025 The gilsync Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thread

import (
	"context"
	"runtime"

	"github.com/kolkov/gilsync/internal/gil/sema"
)

// handshake is shared by Start and the new thread's bootstrap until the
// bootstrap signals done. After that signal the bootstrap must not touch it.
type handshake struct {
	entry func()
	id    ID
	done  *sema.Sema // count 0, max 1
}

// Start runs entry on a new thread and returns that thread's ID.
//
// Start does not return until the new thread has published its ID, so the
// result is always the identity entry will observe via Ident. The Config
// comes from ctx (see WithConfig), falling back to DefaultConfig.
//
// If the thread cannot be created, InvalidID is returned and entry never
// runs. A nil entry is rejected the same way.
func Start(ctx context.Context, entry func()) ID {
	if entry == nil {
		return InvalidID
	}

	cfg := ConfigFrom(ctx)
	if !cfg.reserve() {
		return InvalidID
	}

	done, err := sema.New(0, 1)
	if err != nil {
		cfg.release()
		return InvalidID
	}

	hs := &handshake{entry: entry, id: InvalidID, done: done}
	if err := cfg.launcher.Launch(cfg.StackSize(), func() { bootstrap(cfg, hs) }); err != nil {
		cfg.release()
		done.Close()
		return InvalidID
	}

	// Wait for the thread to initialize, so we can read its ID.
	done.Wait(sema.Infinite)
	id := hs.id
	done.Close()
	return id
}

// bootstrap is the trampoline run on the new thread.
func bootstrap(cfg *Config, hs *handshake) {
	// The goroutine keeps this OS thread to itself and the thread exits
	// with it.
	runtime.LockOSThread()
	defer cfg.release()

	// Copy out everything needed: hs belongs to Start once done is signaled.
	entry := hs.entry
	done := hs.done
	hs.id = Ident()
	_ = done.Signal(1)

	entry()
}

// AfterFork is the hook a runtime calls in the child after fork. There is
// no per-thread state to reset, so it does nothing.
func AfterFork() {}
