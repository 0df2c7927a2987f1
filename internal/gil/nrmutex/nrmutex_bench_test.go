// Copyright 2025 The gilsync Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nrmutex

import "testing"

func BenchmarkLock_Uncontended(b *testing.B) {
	var l Lock
	if err := l.Init(); err != nil {
		b.Fatal(err)
	}
	defer l.Destroy()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.AcquireTimed(-1)
		l.Release()
	}
}

func BenchmarkLock_Contended(b *testing.B) {
	var l Lock
	if err := l.Init(); err != nil {
		b.Fatal(err)
	}
	defer l.Destroy()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			l.AcquireTimed(-1)
			l.Release()
		}
	})
}
