// Copyright 2025 The gilsync Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syncutil

import (
	"sync"
	"testing"
)

// TestMutex_Counter tests that the wrapper excludes like sync.Mutex in
// both build configurations.
func TestMutex_Counter(t *testing.T) {
	var mu Mutex
	var counter int
	var wg sync.WaitGroup

	const numGoroutines = 8
	const numIterations = 1000

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < numIterations; j++ {
				mu.Lock()
				counter++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if want := numGoroutines * numIterations; counter != want {
		t.Errorf("counter = %d, want %d (DeadlockEnabled=%v)", counter, want, DeadlockEnabled)
	}
}
