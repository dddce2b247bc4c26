// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonbuf implements the growable byte buffer shared by Parser and
// Writer instances for accumulating pending tokens, plus the pluggable
// Allocator abstraction that backs it.
package jsonbuf

import "unicode/utf8"

// Allocator is the pluggable memory suite backing growable buffers used by
// Parser and Writer instances. It generalizes a malloc/realloc/free triple
// for a garbage-collected language: Grow plays the role of realloc (it may
// return its argument unchanged if there is already enough spare capacity),
// and Free is a hint that the buffer may be recycled.
//
// Implementations must be safe to use from a single goroutine at a time;
// neither Parser nor Writer call into an Allocator concurrently.
type Allocator interface {
	// Grow returns a slice with capacity for at least n more bytes than
	// len(buf), preserving buf's existing content and length.
	Grow(buf []byte, n int) []byte
	// Free releases a buffer previously returned by Grow. The caller must
	// not use buf again after calling Free.
	Free(buf []byte)
}

type defaultAllocator struct{}

// Default is the Allocator used when a Parser or Writer is not configured
// with one explicitly. It defers entirely to Go's built-in append growth
// and treats Free as a no-op, since the garbage collector reclaims memory
// on its own.
var Default Allocator = defaultAllocator{}

func (defaultAllocator) Grow(buf []byte, n int) []byte {
	if cap(buf)-len(buf) >= n {
		return buf
	}
	needed := len(buf) + n
	newCap := cap(buf) * 2
	if newCap < needed {
		newCap = needed
	}
	if newCap < 64 {
		newCap = 64
	}
	nb := make([]byte, len(buf), newCap)
	copy(nb, buf)
	return nb
}

func (defaultAllocator) Free([]byte) {}

// Buffer is a growable, Allocator-backed byte buffer. It is reused across
// tokens within a single Parser or Writer (cleared via Reset, not freed) to
// amortize allocation, and is only returned to its Allocator once, when the
// owning Parser or Writer is freed (Release).
type Buffer struct {
	alloc Allocator
	buf   []byte
}

// Init associates b with the given Allocator. A nil alloc selects Default.
func (b *Buffer) Init(alloc Allocator) {
	if alloc == nil {
		alloc = Default
	}
	b.alloc = alloc
}

// Len reports the number of bytes currently held in the buffer.
func (b *Buffer) Len() int { return len(b.buf) }

// Bytes returns the buffer's content. The returned slice is only valid
// until the next mutating call on b.
func (b *Buffer) Bytes() []byte { return b.buf }

// Grow ensures the buffer has capacity for n additional bytes.
func (b *Buffer) Grow(n int) {
	if b.alloc == nil {
		b.alloc = Default
	}
	b.buf = b.alloc.Grow(b.buf, n)
}

// Append appends p to the buffer, growing it as needed.
func (b *Buffer) Append(p []byte) {
	b.Grow(len(p))
	b.buf = append(b.buf, p...)
}

// AppendByte appends a single byte to the buffer, growing it as needed.
func (b *Buffer) AppendByte(c byte) {
	b.Grow(1)
	b.buf = append(b.buf, c)
}

// AppendRune appends the UTF-8 encoding of r to the buffer.
func (b *Buffer) AppendRune(r rune) {
	b.Grow(utf8.UTFMax)
	b.buf = utf8.AppendRune(b.buf, r)
}

// Reset empties the buffer without releasing its backing storage.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
}

// Release returns the buffer's backing storage to its Allocator. The
// Buffer must not be used again except by calling Init.
func (b *Buffer) Release() {
	if b.buf != nil && b.alloc != nil {
		b.alloc.Free(b.buf)
	}
	b.buf = nil
}

// Truncate shortens the buffer to its first n bytes.
func (b *Buffer) Truncate(n int) {
	b.buf = b.buf[:n]
}
