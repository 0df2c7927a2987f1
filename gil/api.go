// Copyright 2025 The gilsync Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gil

import (
	"context"

	"github.com/kolkov/gilsync/internal/gil/mutex"
	"github.com/kolkov/gilsync/internal/gil/nrmutex"
	"github.com/kolkov/gilsync/internal/gil/thread"
)

// ThreadID identifies a thread started by Start.
type ThreadID = thread.ID

// InvalidThreadID is returned by Start when no thread was created.
const InvalidThreadID = thread.InvalidID

// Stack size limits accepted by SetStackSize. MaxStackSize is exclusive.
const (
	MinStackSize = thread.MinStackSize
	MaxStackSize = thread.MaxStackSize
)

// Config holds spawn parameters. See NewConfig.
type Config = thread.Config

// Launcher creates the platform thread for Start.
type Launcher = thread.Launcher

// Errors returned by SetStackSize and launchers.
var (
	ErrStackSize      = thread.ErrStackSize
	ErrTooManyThreads = thread.ErrTooManyThreads
)

// Option configures a Config.
type Option = thread.Option

// NewConfig returns a spawn configuration, for use with WithConfig.
func NewConfig(opts ...Option) *Config {
	return thread.NewConfig(opts...)
}

// WithLauncher sets the Launcher of a Config.
func WithLauncher(l Launcher) Option {
	return thread.WithLauncher(l)
}

// WithMaxThreads caps the live threads started through a Config.
func WithMaxThreads(n int64) Option {
	return thread.WithMaxThreads(n)
}

// WithConfig returns a context that makes StartContext use cfg.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return thread.WithConfig(ctx, cfg)
}

// Start runs entry on a new thread using the process-wide configuration.
//
// It returns the new thread's ID only after the thread has stored it, or
// InvalidThreadID if the thread could not be created.
func Start(entry func()) ThreadID {
	return thread.Start(context.Background(), entry)
}

// StartContext is Start with the Config carried by ctx.
func StartContext(ctx context.Context, entry func()) ThreadID {
	return thread.Start(ctx, entry)
}

// Ident returns the ID of the calling thread.
func Ident() ThreadID {
	return thread.Ident()
}

// StackSize returns the process-wide stack size, 0 meaning default.
func StackSize() int64 {
	return thread.DefaultConfig().StackSize()
}

// SetStackSize sets the process-wide stack size for new threads.
//
// Zero restores the default. Other values must lie in
// [MinStackSize, MaxStackSize) or ErrStackSize is returned and nothing
// changes.
func SetStackSize(size int64) error {
	return thread.DefaultConfig().SetStackSize(size)
}

// ThreadCount returns the number of running threads started by Start.
func ThreadCount() int64 {
	return thread.DefaultConfig().Count()
}

// AfterFork must be called in a forked child. It has nothing to reset.
func AfterFork() {
	thread.AfterFork()
}

// Lock is a non-recursive lock with timed acquisition.
type Lock = nrmutex.Lock

// LockStatus is the outcome of Lock.AcquireTimed.
type LockStatus = nrmutex.Status

// Acquisition outcomes.
const (
	Acquired = nrmutex.Acquired
	Failure  = nrmutex.Failure
)

// NewLock returns an initialized, unlocked Lock. Call Destroy when no
// thread uses it any more.
func NewLock() (*Lock, error) {
	l := new(Lock)
	if err := l.Init(); err != nil {
		return nil, err
	}
	return l, nil
}

// Mutex1 is the GIL's plain lock role.
type Mutex1 = mutex.Mutex1

// Mutex2 is the GIL's timed lock role.
type Mutex2 = mutex.Mutex2

// Word is an atomically updated machine word.
type Word = mutex.Word

// LockTestAndSet stores v into w and returns the previous value.
func LockTestAndSet(w *Word, v int64) int64 {
	return mutex.LockTestAndSet(w, v)
}

// AtomicIncrement adds one to w and returns the new value.
func AtomicIncrement(w *Word) int64 {
	return mutex.AtomicIncrement(w)
}

// AtomicDecrement subtracts one from w and returns the new value.
func AtomicDecrement(w *Word) int64 {
	return mutex.AtomicDecrement(w)
}
