// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonbuf

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func FuzzBuffer(f *testing.F) {
	f.Add(int64(0))
	f.Fuzz(func(t *testing.T, seed int64) {
		const maxCapacity = 1 << 20
		rn := rand.New(rand.NewSource(seed))
		var got Buffer
		got.Init(Default)
		var want bytes.Buffer
		for i := 0; i < 100; i++ {
			if got.Len() != want.Len() {
				t.Fatalf("Buffer.Len = %d, want %d", got.Len(), want.Len())
			}
			n := 1 + rn.Intn(1<<10)
			b := make([]byte, n)
			rn.Read(b)
			got.Append(b)
			want.Write(b)
			if !bytes.Equal(got.Bytes(), want.Bytes()) {
				t.Fatalf("content mismatch at step %d", i)
			}
			if cap(got.Bytes()) > maxCapacity {
				got.Reset()
				want.Reset()
			}
		}
	})
}

// countingAllocator tracks net outstanding bytes handed out by Grow that
// have not been returned via Free, grounding the "No-leak" testable
// property: after a Parser or Writer is freed, net outstanding bytes must
// return to zero.
type countingAllocator struct {
	outstanding int
}

func (c *countingAllocator) Grow(buf []byte, n int) []byte {
	nb := Default.Grow(buf, n)
	if cap(nb) != cap(buf) {
		c.outstanding += cap(nb)
		if buf != nil {
			c.outstanding -= cap(buf)
		}
	}
	return nb
}

func (c *countingAllocator) Free(buf []byte) {
	c.outstanding -= cap(buf)
}

func TestBufferNoLeak(t *testing.T) {
	alloc := &countingAllocator{}
	var b Buffer
	b.Init(alloc)
	b.Append([]byte("hello, world, this is a moderately long string"))
	b.Grow(1 << 16)
	require.Positive(t, alloc.outstanding)
	b.Release()
	require.Zero(t, alloc.outstanding)
}
