// Copyright 2025 The gilsync Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thread

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
)

// Accepted stack sizes for SetStackSize. MaxStackSize itself is rejected.
const (
	MinStackSize int64 = 0x8000     // 32kB
	MaxStackSize int64 = 0x10000000 // 256MB
)

var (
	// ErrStackSize is returned by SetStackSize for a size outside
	// [MinStackSize, MaxStackSize).
	ErrStackSize = errors.New("thread: stack size out of range")

	// ErrTooManyThreads is returned by a Launcher that refuses to create
	// another thread.
	ErrTooManyThreads = errors.New("thread: too many threads")
)

// Launcher creates the platform thread that runs trampoline.
//
// stackSize is the configured size in bytes, or 0 for the platform default.
// Launch must not wait for trampoline to run.
type Launcher interface {
	Launch(stackSize int64, trampoline func()) error
}

// LauncherFunc adapts a function to the Launcher interface.
type LauncherFunc func(stackSize int64, trampoline func()) error

// Launch calls f(stackSize, trampoline).
func (f LauncherFunc) Launch(stackSize int64, trampoline func()) error {
	return f(stackSize, trampoline)
}

// goLauncher runs the trampoline on a new goroutine. Goroutine stacks grow
// on demand, so the configured size is not applied.
type goLauncher struct{}

func (goLauncher) Launch(_ int64, trampoline func()) error {
	go trampoline()
	return nil
}

// Config is the spawn configuration read by Start.
//
// The stack size is a single atomic word: SetStackSize is the only writer
// and Start the only reader, so no lock is needed.
type Config struct {
	stackSize  atomic.Int64
	live       atomic.Int64
	maxThreads int64
	launcher   Launcher
}

// Option configures a Config.
type Option func(*Config)

// WithLauncher sets the Launcher used by Start.
func WithLauncher(l Launcher) Option {
	return func(c *Config) {
		c.launcher = l
	}
}

// WithMaxThreads caps the number of live threads started through the
// Config. Start fails with InvalidID once the cap is reached. Zero or a
// negative value means no cap.
func WithMaxThreads(n int64) Option {
	return func(c *Config) {
		c.maxThreads = n
	}
}

// NewConfig returns a Config with the platform default stack size.
func NewConfig(opts ...Option) *Config {
	c := &Config{launcher: goLauncher{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StackSize returns the configured stack size, 0 meaning platform default.
func (c *Config) StackSize() int64 {
	return c.stackSize.Load()
}

// SetStackSize sets the stack size for threads started afterwards.
//
// Zero resets to the platform default. Any other value must lie in
// [MinStackSize, MaxStackSize); out-of-range values return ErrStackSize and
// leave the current setting untouched.
func (c *Config) SetStackSize(size int64) error {
	if size == 0 {
		c.stackSize.Store(0)
		return nil
	}
	if size < MinStackSize || size >= MaxStackSize {
		return fmt.Errorf("%w: %d not in [%d, %d)", ErrStackSize, size, MinStackSize, MaxStackSize)
	}
	c.stackSize.Store(size)
	return nil
}

// Count returns the number of threads started through c that have not yet
// returned from their entry function.
func (c *Config) Count() int64 {
	return c.live.Load()
}

// reserve claims a live-thread slot, honoring the cap.
func (c *Config) reserve() bool {
	for {
		n := c.live.Load()
		if c.maxThreads > 0 && n >= c.maxThreads {
			return false
		}
		if c.live.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

func (c *Config) release() {
	c.live.Add(-1)
}

var defaultConfig = NewConfig()

// DefaultConfig returns the process-wide Config used when a context carries
// none.
func DefaultConfig() *Config {
	return defaultConfig
}

type configKey struct{}

// WithConfig returns a context carrying cfg for Start.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// ConfigFrom returns the Config carried by ctx, or DefaultConfig.
func ConfigFrom(ctx context.Context) *Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(configKey{}).(*Config); ok && cfg != nil {
			return cfg
		}
	}
	return defaultConfig
}
