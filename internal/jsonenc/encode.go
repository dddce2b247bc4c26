// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonenc

import "unicode/utf16"

// AppendASCII appends the ASCII bytes of s to dst, transcoded to enc. s must
// contain only bytes below 0x80; this is used for structural punctuation,
// literals (true/false/null), and number text, all of which pass through
// unescaped and unmodified regardless of encoding per spec's number-text
// passthrough rule.
func AppendASCII(dst []byte, enc Encoding, s string) []byte {
	for i := 0; i < len(s); i++ {
		dst = appendUnit(dst, enc, rune(s[i]))
	}
	return dst
}

// AppendRune appends the single rune r to dst, transcoded to enc, without
// any JSON escaping.
func AppendRune(dst []byte, enc Encoding, r rune) []byte {
	return appendUnit(dst, enc, r)
}

// appendUnit writes one decoded Unicode scalar value to dst in the target
// encoding's byte form.
func appendUnit(dst []byte, enc Encoding, r rune) []byte {
	switch enc {
	case UTF16LE, UTF16BE:
		if r1, r2 := utf16.EncodeRune(r); r1 != '�' || r2 != '�' {
			dst = appendUTF16Unit(dst, enc, uint16(r1))
			dst = appendUTF16Unit(dst, enc, uint16(r2))
		} else {
			dst = appendUTF16Unit(dst, enc, uint16(r))
		}
		return dst
	case UTF32LE:
		return append(dst, byte(r), byte(r>>8), byte(r>>16), byte(r>>24))
	case UTF32BE:
		return append(dst, byte(r>>24), byte(r>>16), byte(r>>8), byte(r))
	default: // UTF8, Unknown
		return appendUTF8Rune(dst, r)
	}
}

func appendUTF16Unit(dst []byte, enc Encoding, u uint16) []byte {
	if enc == UTF16BE {
		return append(dst, byte(u>>8), byte(u))
	}
	return append(dst, byte(u), byte(u>>8))
}

// appendUTF8Rune appends the UTF-8 encoding of r to dst without relying on
// unicode/utf8's RuneError substitution, since callers here have already
// validated r.
func appendUTF8Rune(dst []byte, r rune) []byte {
	switch {
	case r < 0x80:
		return append(dst, byte(r))
	case r < 0x800:
		return append(dst, byte(0xC0|r>>6), byte(0x80|r&0x3F))
	case r < 0x10000:
		return append(dst, byte(0xE0|r>>12), byte(0x80|(r>>6)&0x3F), byte(0x80|r&0x3F))
	default:
		return append(dst, byte(0xF0|r>>18), byte(0x80|(r>>12)&0x3F), byte(0x80|(r>>6)&0x3F), byte(0x80|r&0x3F))
	}
}

// appendEscapedUTF16Hex appends a \uXXXX escape for the UTF-16 code unit x,
// transcoded to enc (the escape sequence is itself pure ASCII text).
func appendEscapedUTF16Hex(dst []byte, enc Encoding, x uint16) []byte {
	const hex = "0123456789abcdef"
	dst = appendUnit(dst, enc, '\\')
	dst = appendUnit(dst, enc, 'u')
	dst = appendUnit(dst, enc, rune(hex[(x>>12)&0xf]))
	dst = appendUnit(dst, enc, rune(hex[(x>>8)&0xf]))
	dst = appendUnit(dst, enc, rune(hex[(x>>4)&0xf]))
	dst = appendUnit(dst, enc, rune(hex[(x>>0)&0xf]))
	return dst
}

// AppendQuotedString appends src (a fully decoded Unicode string, already
// validated) to dst as a double-quoted JSON string literal transcoded to
// enc, escaping characters per the policy in escape.go.
func AppendQuotedString(dst []byte, enc Encoding, src string) []byte {
	dst = appendUnit(dst, enc, '"')
	for _, r := range src {
		switch classify(r) {
		case actionShort:
			c, _ := shortEscape(byte(r))
			dst = appendUnit(dst, enc, '\\')
			dst = appendUnit(dst, enc, rune(c))
		case actionUnicode:
			if r1, r2 := utf16.EncodeRune(r); r1 != '�' || r2 != '�' {
				dst = appendEscapedUTF16Hex(dst, enc, uint16(r1))
				dst = appendEscapedUTF16Hex(dst, enc, uint16(r2))
			} else {
				dst = appendEscapedUTF16Hex(dst, enc, uint16(r))
			}
		default:
			dst = appendUnit(dst, enc, r)
		}
	}
	dst = appendUnit(dst, enc, '"')
	return dst
}
