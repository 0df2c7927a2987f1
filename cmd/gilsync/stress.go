// Copyright 2025 The gilsync Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/kolkov/gilsync/gil"
)

// stressConfig holds the stress command's parameters.
type stressConfig struct {
	threads    int
	iterations int
	spawns     int
	timeoutUS  int64
}

// check is one named property verified by the stress command.
type check struct {
	name string
	run  func(cfg stressConfig) error
}

var checks = []check{
	{"mutual exclusion", checkMutualExclusion},
	{"non-recursion", checkNonRecursion},
	{"zero timeout", checkZeroTimeout},
	{"timeout lower bound", checkTimeoutLowerBound},
	{"thread identity", checkThreadIdentity},
}

// stressCommand implements 'gilsync stress' and returns the exit status.
//
//nolint:errcheck // CLI output
func stressCommand(args []string, w io.Writer) int {
	fs := flag.NewFlagSet("stress", flag.ContinueOnError)
	fs.SetOutput(w)

	var cfg stressConfig
	fs.IntVar(&cfg.threads, "threads", 8, "threads contending for one lock")
	fs.IntVar(&cfg.iterations, "iterations", 1000, "lock round trips per thread")
	fs.IntVar(&cfg.spawns, "spawns", 1000, "threads started sequentially")
	fs.Int64Var(&cfg.timeoutUS, "timeout-us", 2500, "timed acquisition bound in microseconds")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if cfg.threads <= 0 || cfg.iterations <= 0 || cfg.spawns <= 0 || cfg.timeoutUS <= 0 {
		fmt.Fprintln(w, "Error: all parameters must be positive")
		return 2
	}

	failed := 0
	for _, c := range checks {
		start := time.Now()
		err := c.run(cfg)
		elapsed := time.Since(start).Round(time.Millisecond)
		if err != nil {
			failed++
			fmt.Fprintf(w, "FAIL  %-20s %v (%v)\n", c.name, err, elapsed)
			continue
		}
		fmt.Fprintf(w, "ok    %-20s (%v)\n", c.name, elapsed)
	}

	if failed > 0 {
		fmt.Fprintf(w, "\n%d of %d checks failed\n", failed, len(checks))
		return 1
	}
	return 0
}

func checkMutualExclusion(cfg stressConfig) error {
	lock, err := gil.NewLock()
	if err != nil {
		return err
	}
	defer lock.Destroy()

	var counter int
	var wg sync.WaitGroup
	for i := 0; i < cfg.threads; i++ {
		wg.Add(1)
		id := gil.Start(func() {
			defer wg.Done()
			for j := 0; j < cfg.iterations; j++ {
				lock.AcquireTimed(-1)
				counter++
				lock.Release()
			}
		})
		if id == gil.InvalidThreadID {
			wg.Done()
			return fmt.Errorf("thread %d could not be started", i)
		}
	}
	wg.Wait()

	if want := cfg.threads * cfg.iterations; counter != want {
		return fmt.Errorf("counter = %d, want %d", counter, want)
	}
	return nil
}

func checkNonRecursion(cfg stressConfig) error {
	lock, err := gil.NewLock()
	if err != nil {
		return err
	}
	defer lock.Destroy()

	lock.AcquireTimed(-1)
	defer lock.Release()
	if lock.AcquireTimed(cfg.timeoutUS) == gil.Acquired {
		return fmt.Errorf("holder re-acquired the lock")
	}
	return nil
}

func checkZeroTimeout(_ stressConfig) error {
	lock, err := gil.NewLock()
	if err != nil {
		return err
	}
	defer lock.Destroy()

	lock.AcquireTimed(-1)
	defer lock.Release()

	start := time.Now()
	if lock.AcquireTimed(0) == gil.Acquired {
		return fmt.Errorf("poll acquired a held lock")
	}
	if elapsed := time.Since(start); elapsed >= time.Millisecond {
		return fmt.Errorf("poll took %v", elapsed)
	}
	return nil
}

func checkTimeoutLowerBound(cfg stressConfig) error {
	lock, err := gil.NewLock()
	if err != nil {
		return err
	}
	defer lock.Destroy()

	lock.AcquireTimed(-1)
	defer lock.Release()

	for i := 0; i < 10; i++ {
		start := time.Now()
		lock.AcquireTimed(cfg.timeoutUS)
		if elapsed := time.Since(start); elapsed < time.Duration(cfg.timeoutUS)*time.Microsecond {
			return fmt.Errorf("timed out after %v, bound %dus", elapsed, cfg.timeoutUS)
		}
	}
	return nil
}

func checkThreadIdentity(cfg stressConfig) error {
	seen := make(map[gil.ThreadID]bool, cfg.spawns)
	for i := 0; i < cfg.spawns; i++ {
		id := gil.Start(func() {})
		if id == gil.InvalidThreadID {
			return fmt.Errorf("spawn %d failed", i)
		}
		if seen[id] {
			return fmt.Errorf("spawn %d reused ID %d", i, id)
		}
		seen[id] = true
	}
	return nil
}
