// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonenc

// ReplacementChar is the Unicode replacement character substituted for
// invalid sequences when decoding in Replace mode.
const ReplacementChar rune = 0xFFFD

const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
	highSurrMin  = 0xD800
	highSurrMax  = 0xDBFF
	lowSurrMin   = 0xDC00
	lowSurrMax   = 0xDFFF
	maxScalar    = 0x10FFFF
)

func isSurrogate(r rune) bool { return r >= surrogateMin && r <= surrogateMax }
func isHighSurrogate(u uint16) bool {
	return u >= highSurrMin && u <= highSurrMax
}
func isLowSurrogate(u uint16) bool { return u >= lowSurrMin && u <= lowSurrMax }

// DecodeRune decodes one Unicode scalar value from the start of b, which is
// encoded as enc.
//
// size is the number of bytes consumed; it is always > 0 whenever valid or
// replace is true, but see incomplete below.
//
// incomplete is true when b does not hold enough bytes to tell whether a
// full unit is present; the caller should buffer more input and retry unless
// isFinal is true, in which case the partial bytes at the tail constitute a
// truncated-input error that the caller (which owns position tracking) must
// report itself.
//
// valid reports whether the decoded sequence was well-formed. When valid is
// false and replace is true, r is ReplacementChar and size is the length of
// the maximal subpart of an ill-formed subsequence per Unicode 5.2 §3.9;
// when replace is false, r is undefined and the caller should report a
// decode error of length size.
func DecodeRune(b []byte, enc Encoding, isFinal, replace bool) (r rune, size int, incomplete, valid bool) {
	switch enc {
	case UTF16LE, UTF16BE:
		return decodeUTF16(b, enc, isFinal, replace)
	case UTF32LE, UTF32BE:
		return decodeUTF32(b, enc, isFinal, replace)
	default:
		return decodeUTF8(b, isFinal, replace)
	}
}

// decodeUTF8 hand-rolls the maximal-subpart grouping of Unicode 5.2 §3.9,
// the same way decodeUTF16 and decodeUTF32 below do, rather than delegating
// to unicode/utf8.DecodeRune: that stdlib function always reports a size of
// 1 for any ill-formed sequence, which under-counts the maximal valid
// prefix and over-produces replacement characters for sequences like a
// truncated 3-byte lead followed by a valid 2-byte sequence.
func decodeUTF8(b []byte, isFinal, replace bool) (r rune, size int, incomplete, valid bool) {
	if len(b) == 0 {
		return 0, 0, true, false
	}
	b0 := b[0]
	if b0 < 0x80 {
		return rune(b0), 1, false, true
	}

	var need int
	var leadMask byte
	lo, hi := byte(0x80), byte(0xBF)
	switch {
	case b0 >= 0xC2 && b0 <= 0xDF:
		need, leadMask = 1, 0x1F
	case b0 == 0xE0:
		need, leadMask, lo = 2, 0x0F, 0xA0
	case b0 == 0xED:
		need, leadMask, hi = 2, 0x0F, 0x9F
	case b0 >= 0xE1 && b0 <= 0xEF:
		need, leadMask = 2, 0x0F
	case b0 == 0xF0:
		need, leadMask, lo = 3, 0x07, 0x90
	case b0 == 0xF4:
		need, leadMask, hi = 3, 0x07, 0x8F
	case b0 >= 0xF1 && b0 <= 0xF3:
		need, leadMask = 3, 0x07
	default:
		// Bare continuation byte (0x80-0xBF) or a byte that can never
		// start a sequence (0xC0, 0xC1, 0xF5-0xFF): the maximal subpart
		// is this byte alone.
		if replace {
			return ReplacementChar, 1, false, false
		}
		return 0, 1, false, false
	}

	cp := rune(b0 & leadMask)
	n := 1
	for n <= need {
		if n >= len(b) {
			if !isFinal {
				return 0, 0, true, false
			}
			// Input ends mid-sequence: the valid continuation bytes seen
			// so far are the maximal subpart.
			if replace {
				return ReplacementChar, n, false, false
			}
			return 0, n, false, false
		}
		c := b[n]
		curLo, curHi := byte(0x80), byte(0xBF)
		if n == 1 {
			curLo, curHi = lo, hi
		}
		if c < curLo || c > curHi {
			// The lead plus however many continuation bytes validated so
			// far form the maximal subpart; the disqualifying byte is
			// left unconsumed so the caller reinterprets it fresh.
			if replace {
				return ReplacementChar, n, false, false
			}
			return 0, n, false, false
		}
		cp = cp<<6 | rune(c&0x3F)
		n++
	}
	return cp, n, false, true
}

func readUTF16Unit(b []byte, enc Encoding) uint16 {
	if enc == UTF16BE {
		return uint16(b[0])<<8 | uint16(b[1])
	}
	return uint16(b[0]) | uint16(b[1])<<8
}

func decodeUTF16(b []byte, enc Encoding, isFinal, replace bool) (r rune, size int, incomplete, valid bool) {
	if len(b) < 2 {
		if isFinal {
			// A single trailing byte at true end-of-input can never form a
			// complete code unit; it is the maximal subpart of a truncated
			// sequence.
			if replace {
				return ReplacementChar, len(b), false, false
			}
			return 0, len(b), false, false
		}
		return 0, 0, true, false
	}
	u1 := readUTF16Unit(b, enc)
	if isHighSurrogate(u1) {
		if len(b) < 4 {
			if !isFinal {
				return 0, 0, true, false
			}
			// Final chunk ends mid-pair: the lone high surrogate is the
			// maximal subpart.
			if replace {
				return ReplacementChar, 2, false, false
			}
			return 0, 2, false, false
		}
		u2 := readUTF16Unit(b[2:], enc)
		if isLowSurrogate(u2) {
			r := (rune(u1)-highSurrMin)<<10 + (rune(u2) - lowSurrMin) + 0x10000
			return r, 4, false, true
		}
		if replace {
			return ReplacementChar, 2, false, false
		}
		return 0, 2, false, false
	}
	if isLowSurrogate(u1) {
		if replace {
			return ReplacementChar, 2, false, false
		}
		return 0, 2, false, false
	}
	return rune(u1), 2, false, true
}

func readUTF32Unit(b []byte, enc Encoding) uint32 {
	if enc == UTF32BE {
		return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func decodeUTF32(b []byte, enc Encoding, isFinal, replace bool) (r rune, size int, incomplete, valid bool) {
	if len(b) < 4 {
		if isFinal {
			if replace {
				return ReplacementChar, len(b), false, false
			}
			return 0, len(b), false, false
		}
		return 0, 0, true, false
	}
	u := readUTF32Unit(b, enc)
	rv := rune(u)
	if u > maxScalar || isSurrogate(rv) {
		if replace {
			return ReplacementChar, 4, false, false
		}
		return 0, 4, false, false
	}
	return rv, 4, false, true
}
