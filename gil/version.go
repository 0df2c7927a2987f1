// Copyright 2025 The gilsync Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gil

import (
	"runtime"

	"github.com/kolkov/gilsync/internal/gil/diag"
	"github.com/kolkov/gilsync/internal/gil/sema"
	"github.com/kolkov/gilsync/internal/gil/syncutil"
)

// Version information for gilsync.
const (
	// Version is the current library version.
	Version = "0.1.0"

	// VersionMajor is the major version number.
	VersionMajor = 0

	// VersionMinor is the minor version number.
	VersionMinor = 1

	// VersionPatch is the patch version number.
	VersionPatch = 0

	// MinGoVersion is the oldest Go release the library is tested with.
	MinGoVersion = "go1.24"
)

// Info describes the library build and its runtime state.
type Info struct {
	// Version is the library version string.
	Version string

	// GoVersion is the Go runtime version, e.g. "go1.24.1".
	GoVersion string

	// Semaphore names the platform primitive behind every lock:
	// "futex" on Linux, "channel" elsewhere.
	Semaphore string

	// DeadlockDetection is true in builds with the deadlock tag.
	DeadlockDetection bool

	// MisuseReports counts lock misuse reports printed so far.
	MisuseReports uint64
}

// GetInfo returns information about the library.
//
// Example:
//
//	info := gil.GetInfo()
//	fmt.Printf("gilsync %s (%s)\n", info.Version, info.Semaphore)
func GetInfo() Info {
	return Info{
		Version:           Version,
		GoVersion:         runtime.Version(),
		Semaphore:         sema.Implementation,
		DeadlockDetection: syncutil.DeadlockEnabled,
		MisuseReports:     diag.MisuseReports(),
	}
}
