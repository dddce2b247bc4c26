// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonsax

// StringAttributes is a bitmask describing notable properties of a string
// or object-member-name value delivered to a handler. Bit assignment is
// bit-exact with JSON_StringAttribute in the original C header.
type StringAttributes uint8

const (
	SimpleString StringAttributes = 0

	ContainsNullCharacter     StringAttributes = 1 << 0 // U+0000
	ContainsControlCharacter  StringAttributes = 1 << 1 // U+0000-U+001F
	ContainsNonASCIICharacter StringAttributes = 1 << 2 // U+0080-U+10FFFF
	ContainsNonBMPCharacter   StringAttributes = 1 << 3 // U+10000-U+10FFFF
	ContainsReplacedCharacter StringAttributes = 1 << 4 // an invalid sequence was replaced with U+FFFD
)

// Contains reports whether a has every bit set in want.
func (a StringAttributes) Contains(want StringAttributes) bool {
	return a&want == want
}
