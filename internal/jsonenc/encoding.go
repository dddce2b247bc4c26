// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonenc implements the byte-granular decode/encode pipeline
// shared by Parser and Writer: Unicode transcoding across five encodings,
// strict validation or Unicode 5.2 §3.9 maximal-subpart replacement of
// invalid sequences, and JSON string escaping on the output side.
package jsonenc

// Encoding identifies one of the five text encodings this package
// transcodes. The numeric values are bit-exact with the wire contract in
// original_source/jsonsax.h's JSON_Encoding enum.
type Encoding uint8

const (
	// Unknown is valid only as an input-encoding sentinel meaning
	// "auto-detect from the input stream".
	Unknown Encoding = iota
	UTF8
	UTF16LE
	UTF16BE
	UTF32LE
	UTF32BE
)

func (e Encoding) String() string {
	switch e {
	case Unknown:
		return "unknown"
	case UTF8:
		return "utf-8"
	case UTF16LE:
		return "utf-16le"
	case UTF16BE:
		return "utf-16be"
	case UTF32LE:
		return "utf-32le"
	case UTF32BE:
		return "utf-32be"
	default:
		return "invalid encoding"
	}
}

// UnitSize returns the number of bytes in one minimal code unit of e (1 for
// UTF-8, 2 for UTF-16 variants, 4 for UTF-32 variants). Unknown reports 0.
func (e Encoding) UnitSize() int {
	switch e {
	case UTF8:
		return 1
	case UTF16LE, UTF16BE:
		return 2
	case UTF32LE, UTF32BE:
		return 4
	default:
		return 0
	}
}

// DetectResult reports the outcome of encoding auto-detection.
type DetectResult struct {
	Encoding Encoding
	// There is no consumed-byte count: detection never consumes bytes by
	// itself; the BOM, if any, is consumed separately.
}

// Detect applies the detection table from spec §4.1 to the first (up to 4)
// bytes of input. ok is false if there are not enough bytes to decide and
// isFinal is false (caller should buffer more); if isFinal is true,
// detection proceeds on the available prefix per spec's rules for a short
// final chunk. failed is true if the byte pattern is unambiguously invalid
// (e.g. all zero or the reserved xx 00 00 xx pattern).
func Detect(b []byte, isFinal bool) (enc Encoding, ok bool, failed bool) {
	n := len(b)
	if n == 0 {
		if isFinal {
			return Unknown, false, false // caller reports ExpectedMoreTokens
		}
		return Unknown, false, false
	}
	if n < 4 && !isFinal {
		return Unknown, false, false
	}
	// Full 4-byte table.
	if n >= 4 {
		b0, b1, b2, b3 := b[0], b[1], b[2], b[3]
		switch {
		case b0 == 0 && b1 == 0 && b2 == 0 && b3 != 0:
			return UTF32BE, true, false
		case b0 != 0 && b1 == 0 && b2 == 0 && b3 == 0:
			return UTF32LE, true, false
		case b0 == 0 && b1 == 0 && b2 == 0 && b3 == 0:
			return Unknown, false, true
		case b0 != 0 && b1 == 0 && b2 != 0 && b3 == 0:
			return UTF16LE, true, false
		case b0 == 0 && b1 != 0 && b2 == 0 && b3 != 0:
			return UTF16BE, true, false
		case b0 == 0 && b1 != 0:
			return UTF16BE, true, false
		case b0 != 0 && b1 == 0:
			// Ambiguous with UTF-32LE unless b2/b3 say otherwise; already
			// handled above for the unambiguous UTF-32LE and the reserved
			// "xx 00 00 xx" case. Remaining case: xx 00 yy zz, yy!=0 → UTF-16LE.
			if b2 != 0 {
				return UTF16LE, true, false
			}
			if b3 != 0 {
				return Unknown, false, true // xx 00 00 xx reserved/invalid
			}
			return UTF16LE, true, false
		default:
			return UTF8, true, false
		}
	}
	// Fewer than 4 bytes available and isFinal: apply the same table to the
	// available prefix, defaulting a single non-ASCII byte to UTF-8.
	switch n {
	case 1:
		return UTF8, true, false
	case 2:
		b0, b1 := b[0], b[1]
		switch {
		case b0 == 0 && b1 != 0:
			return UTF16BE, true, false
		case b0 != 0 && b1 == 0:
			return UTF16LE, true, false
		case b0 == 0 && b1 == 0:
			return Unknown, false, true
		default:
			return UTF8, true, false
		}
	case 3:
		b0, b1, b2 := b[0], b[1], b[2]
		switch {
		case b0 == 0 && b1 == 0 && b2 != 0:
			return UTF32BE, true, false
		case b0 != 0 && b1 == 0 && b2 == 0:
			return UTF32LE, true, false
		case b0 == 0 && b1 != 0:
			return UTF16BE, true, false
		case b0 != 0 && b1 == 0:
			return UTF16LE, true, false
		default:
			return UTF8, true, false
		}
	}
	return UTF8, true, false
}

// BOM is U+FEFF, the byte-order mark.
const BOM rune = 0xFEFF
