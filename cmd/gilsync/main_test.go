// Copyright 2025 The gilsync Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestStressCommand tests a small stress run end to end.
func TestStressCommand(t *testing.T) {
	var out bytes.Buffer
	code := stressCommand([]string{"-threads", "4", "-iterations", "100", "-spawns", "50", "-timeout-us", "1500"}, &out)
	if code != 0 {
		t.Fatalf("stressCommand() = %d, output:\n%s", code, out.String())
	}
	for _, c := range checks {
		if !strings.Contains(out.String(), "ok    "+c.name) {
			t.Errorf("output lacks passing %q:\n%s", c.name, out.String())
		}
	}
}

// TestStressCommand_BadArgs tests argument validation.
func TestStressCommand_BadArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-bogus"}},
		{"zero threads", []string{"-threads", "0"}},
		{"negative timeout", []string{"-timeout-us", "-5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if code := stressCommand(tt.args, &out); code != 2 {
				t.Errorf("stressCommand(%v) = %d, want 2", tt.args, code)
			}
		})
	}
}

// TestToSemver tests conversion of Go release names.
func TestToSemver(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"go1.24", "v1.24", true},
		{"go1.24.1", "v1.24.1", true},
		{"go1.25rc2", "v1.25.0-rc2", true},
		{"go1.23beta1", "v1.23.0-beta1", true},
		{"devel go1.26-abcdef", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := toSemver(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("toSemver(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

// TestGoSupport tests classification against the minimum release.
func TestGoSupport(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"go1.24.0", "supported"},
		{"go1.25.3", "supported"},
		{"go1.24rc1", "unsupported, need go1.24 or later"},
		{"go1.21.5", "unsupported, need go1.24 or later"},
		{"devel +abc", "unknown release"},
	}

	for _, tt := range tests {
		if got := goSupport(tt.in); got != tt.want {
			t.Errorf("goSupport(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestVersionCommand tests the version output.
func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCommand(&out)
	if !strings.HasPrefix(out.String(), "gilsync version ") {
		t.Errorf("version output:\n%s", out.String())
	}
}
