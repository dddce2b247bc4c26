// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonsax

import "github.com/go-jsonsax/jsonsax/internal/jsonbuf"

// Allocator is the pluggable memory suite backing a Parser's or Writer's
// internal buffers, generalizing JSON_MemorySuite's malloc/realloc/free
// triple for a garbage-collected language.
type Allocator = jsonbuf.Allocator

// DefaultAllocator defers to Go's built-in append growth.
var DefaultAllocator = jsonbuf.Default
