// Copyright 2025 The gilsync Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/kolkov/gilsync/gil"
)

// versionCommand prints library and runtime versions.
//
//nolint:errcheck // CLI output
func versionCommand(w io.Writer) {
	info := gil.GetInfo()
	fmt.Fprintf(w, "gilsync version %s\n", info.Version)
	fmt.Fprintf(w, "go runtime:      %s (%s)\n", info.GoVersion, goSupport(info.GoVersion))
	fmt.Fprintf(w, "semaphore:       %s\n", info.Semaphore)
	if info.DeadlockDetection {
		fmt.Fprintf(w, "deadlock:        enabled\n")
	}
}

// goSupport classifies a runtime.Version string against gil.MinGoVersion.
func goSupport(goVersion string) string {
	v, ok := toSemver(goVersion)
	if !ok {
		return "unknown release"
	}
	minimum, _ := toSemver(gil.MinGoVersion)
	if semver.Compare(v, minimum) < 0 {
		return "unsupported, need " + gil.MinGoVersion + " or later"
	}
	return "supported"
}

// toSemver converts a Go release name ("go1.24.1", "go1.25rc2") to a
// semantic version ("v1.24.1", "v1.25.0-rc2").
func toSemver(goVersion string) (string, bool) {
	s, ok := strings.CutPrefix(goVersion, "go")
	if !ok {
		return "", false
	}
	for _, pre := range []string{"rc", "beta"} {
		if i := strings.Index(s, pre); i > 0 {
			base := s[:i]
			if strings.Count(base, ".") == 1 {
				base += ".0"
			}
			s = base + "-" + s[i:]
			break
		}
	}
	v := "v" + s
	if !semver.IsValid(v) {
		return "", false
	}
	return v, true
}
