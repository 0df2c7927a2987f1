// Copyright 2025 The gilsync Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package main implements the gilsync CLI tool.
//
// The tool exercises the gilsync primitives on the current machine and
// reports whether they hold their guarantees:
//
//	gilsync stress            # mutual exclusion, timeouts, thread identity
//	gilsync version           # library and Go runtime versions
//
// It is a smoke test for a new platform or Go release, not a benchmark.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "stress":
		os.Exit(stressCommand(os.Args[2:], os.Stdout))
	case "version", "--version", "-v":
		versionCommand(os.Stdout)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`gilsync - thread and lock primitives for a GIL

USAGE:
    gilsync <command> [arguments]

COMMANDS:
    stress     Check the primitives under load
    version    Show version information
    help       Show this help message

EXAMPLES:
    # Run every check with defaults
    gilsync stress

    # More contention, more spawned threads
    gilsync stress -threads 64 -iterations 10000 -spawns 5000

`)
}
