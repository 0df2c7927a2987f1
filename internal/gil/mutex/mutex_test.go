// Copyright 2025 The gilsync Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mutex

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kolkov/gilsync/internal/gil/diag"
	"github.com/kolkov/gilsync/internal/gil/nrmutex"
	"github.com/kolkov/gilsync/internal/gil/thread"
)

// TestMutex1_LockUnlock tests basic exclusion for Mutex1.
func TestMutex1_LockUnlock(t *testing.T) {
	var m Mutex1
	m.Init()
	defer m.Destroy()

	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				m.Lock()
				counter++
				m.Unlock()
			}
		}()
	}
	wg.Wait()

	if counter != 2000 {
		t.Errorf("counter = %d, want 2000", counter)
	}
}

// TestMutex2_InitLocked tests that InitLocked leaves the caller holding
// the lock.
func TestMutex2_InitLocked(t *testing.T) {
	var m Mutex2
	m.InitLocked()
	defer m.Destroy()

	if m.LockTimeout(0) {
		t.Fatal("LockTimeout(0) succeeded on a lock created held")
	}
	m.Unlock()
	if !m.LockTimeout(0) {
		t.Fatal("LockTimeout(0) failed after Unlock")
	}
	m.Unlock()
}

// TestMutex2_LockTimeout tests the seconds-based timed acquisition.
func TestMutex2_LockTimeout(t *testing.T) {
	var m Mutex2
	m.Init()
	defer m.Destroy()
	m.Lock()

	tests := []struct {
		name  string
		delay float64
		min   time.Duration
	}{
		{"poll", 0, 0},
		{"negative polls", -1, 0},
		{"one microsecond", 0.000001, time.Microsecond},
		{"five milliseconds", 0.005, 5 * time.Millisecond},
		{"fractional milliseconds", 0.0125, 12500 * time.Microsecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Now()
			if m.LockTimeout(tt.delay) {
				t.Fatalf("LockTimeout(%v) succeeded on held lock", tt.delay)
			}
			if elapsed := time.Since(start); elapsed < tt.min {
				t.Errorf("LockTimeout(%v) gave up after %v, want >= %v", tt.delay, elapsed, tt.min)
			}
		})
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		m.Unlock()
	}()
	if !m.LockTimeout(60) {
		t.Fatal("LockTimeout(60) failed although the holder released")
	}
	m.Unlock()
}

// TestMutex2_LoopHooks tests that the polling-loop hooks are inert.
func TestMutex2_LoopHooks(t *testing.T) {
	var m Mutex2
	m.Init()
	defer m.Destroy()

	m.LoopStart()
	if !m.LockTimeout(0) {
		t.Fatal("LockTimeout(0) failed inside LoopStart/LoopStop")
	}
	m.LoopStop()
	m.Unlock()
}

// TestMutex_DistinctTypes tests that the two roles are not interchangeable.
func TestMutex_DistinctTypes(t *testing.T) {
	type timedLocker interface {
		LockTimeout(delay float64) bool
	}
	var m1 any = &Mutex1{}
	var m2 any = &Mutex2{}

	if _, ok := m1.(timedLocker); ok {
		t.Error("*Mutex1 has LockTimeout")
	}
	if _, ok := m2.(timedLocker); !ok {
		t.Error("*Mutex2 lacks LockTimeout")
	}
	if _, ok := m1.(*Mutex2); ok {
		t.Error("*Mutex1 converts to *Mutex2")
	}
}

// TestInit_FailureIsFatal tests that a lock creation failure aborts with
// the GIL diagnostic.
func TestInit_FailureIsFatal(t *testing.T) {
	prev := lockInit
	lockInit = func(*nrmutex.Lock) error { return errors.New("no semaphores left") }
	defer func() { lockInit = prev }()

	var buf bytes.Buffer
	defer diag.SetOutput(&buf)()

	type aborted struct{}
	defer diag.SetAbort(func() { panic(aborted{}) })()

	for _, tt := range []struct {
		name string
		init func()
	}{
		{"Mutex1.Init", new(Mutex1).Init},
		{"Mutex2.Init", new(Mutex2).Init},
		{"Mutex2.InitLocked", new(Mutex2).InitLocked},
	} {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			defer func() {
				if _, ok := recover().(aborted); !ok {
					t.Fatalf("%s did not abort", tt.name)
				}
				if !strings.HasPrefix(buf.String(), "Fatal error in the GIL: CreateSemaphore failed\n") {
					t.Errorf("diagnostic = %q", buf.String())
				}
			}()
			tt.init()
		})
	}
}

// TestWord tests the atomic word operations.
func TestWord(t *testing.T) {
	var w Word

	if got := AtomicIncrement(&w); got != 1 {
		t.Errorf("AtomicIncrement = %d, want 1", got)
	}
	if got := AtomicIncrement(&w); got != 2 {
		t.Errorf("AtomicIncrement = %d, want 2", got)
	}
	if got := AtomicDecrement(&w); got != 1 {
		t.Errorf("AtomicDecrement = %d, want 1", got)
	}
	if got := LockTestAndSet(&w, 42); got != 1 {
		t.Errorf("LockTestAndSet returned %d, want previous value 1", got)
	}
	if got := w.Load(); got != 42 {
		t.Errorf("Load() = %d, want 42", got)
	}
	w.Store(-3)
	if got := AtomicDecrement(&w); got != -4 {
		t.Errorf("AtomicDecrement = %d, want -4", got)
	}
}

// TestWord_Concurrent tests that increments and decrements are not lost.
func TestWord_Concurrent(t *testing.T) {
	var w Word
	var wg sync.WaitGroup

	const numGoroutines = 16
	const numIterations = 1000

	for i := 0; i < numGoroutines; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < numIterations; j++ {
				AtomicIncrement(&w)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < numIterations/2; j++ {
				AtomicDecrement(&w)
			}
		}()
	}
	wg.Wait()

	if want := int64(numGoroutines * numIterations / 2); w.Load() != want {
		t.Errorf("Load() = %d, want %d", w.Load(), want)
	}
}

// TestGILConsumer drives the primitives the way a GIL does: threads
// started with thread.Start take a Mutex2 through a Mutex1-guarded waiting
// queue and count waiters in a Word.
func TestGILConsumer(t *testing.T) {
	const numThreads = 8
	const numSlices = 50

	var held Mutex2
	var waiting Mutex1
	var waiters Word
	held.InitLocked()
	waiting.Init()
	defer held.Destroy()
	defer waiting.Destroy()

	var shared int
	var wg sync.WaitGroup

	acquire := func() {
		waiting.Lock()
		AtomicIncrement(&waiters)
		held.LoopStart()
		for !held.LockTimeout(0.001) {
		}
		held.LoopStop()
		AtomicDecrement(&waiters)
		waiting.Unlock()
	}

	for i := 0; i < numThreads; i++ {
		wg.Add(1)
		id := thread.Start(context.Background(), func() {
			defer wg.Done()
			for j := 0; j < numSlices; j++ {
				acquire()
				shared++
				held.Unlock()
			}
		})
		if id == thread.InvalidID {
			t.Fatalf("thread.Start #%d failed", i)
		}
	}

	// The starting thread holds the GIL from InitLocked; let the others in.
	held.Unlock()
	wg.Wait()

	if want := numThreads * numSlices; shared != want {
		t.Errorf("shared = %d, want %d", shared, want)
	}
	if waiters.Load() != 0 {
		t.Errorf("waiters = %d after all threads finished", waiters.Load())
	}
}
