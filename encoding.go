// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonsax

import "github.com/go-jsonsax/jsonsax/internal/jsonenc"

// Encoding identifies one of the five text encodings a Parser or Writer can
// speak. Unknown is valid only as an input-encoding setting meaning
// "auto-detect from the input stream".
type Encoding = jsonenc.Encoding

const (
	UnknownEncoding = jsonenc.Unknown
	UTF8            = jsonenc.UTF8
	UTF16LE         = jsonenc.UTF16LE
	UTF16BE         = jsonenc.UTF16BE
	UTF32LE         = jsonenc.UTF32LE
	UTF32BE         = jsonenc.UTF32BE
)

// SpecialNumber identifies which non-finite literal a SpecialNumber
// handler or WriteSpecialNumber call refers to.
type SpecialNumber uint8

const (
	NaN SpecialNumber = iota
	Infinity
	NegativeInfinity
)
