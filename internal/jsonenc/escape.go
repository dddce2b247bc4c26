// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonenc

// escapeAction classifies how a rune must be handled when writing it inside
// a JSON string literal.
type escapeAction int8

const (
	// actionNone means the rune is written verbatim (transcoded to the
	// output encoding, but not escaped).
	actionNone escapeAction = iota
	// actionShort means the rune is written using one of the short
	// two-character escapes (\b \t \n \f \r \" \\).
	actionShort
	// actionUnicode means the rune is written as one (or, for non-BMP
	// runes, two) \uXXXX escapes.
	actionUnicode
)

// lineSeparator and paragraphSeparator are U+2028 and U+2029: legal inside a
// JSON string but illegal unescaped inside a JavaScript string literal.
const (
	lineSeparator      rune = 0x2028
	paragraphSeparator rune = 0x2029
)

// asciiTable caches the escape action for every ASCII code point, mirroring
// the teacher's escapeCanonical design: a flat lookup avoids a chain of
// comparisons for the overwhelmingly common case of printable ASCII.
var asciiTable = func() (table [128]escapeAction) {
	for i := range table {
		table[i] = actionNone
	}
	for c := rune(0); c < 0x20; c++ {
		table[c] = actionUnicode
	}
	for _, c := range []byte{'\b', '\t', '\n', '\f', '\r', '"', '\\'} {
		table[c] = actionShort
	}
	return table
}()

// shortEscape returns the second character of a two-character escape
// sequence for c, and true if one exists.
func shortEscape(c byte) (byte, bool) {
	switch c {
	case '\b':
		return 'b', true
	case '\t':
		return 't', true
	case '\n':
		return 'n', true
	case '\f':
		return 'f', true
	case '\r':
		return 'r', true
	case '"':
		return '"', true
	case '\\':
		return '\\', true
	default:
		return 0, false
	}
}

// isNoncharacter reports whether r is a Unicode noncharacter: U+FDD0..U+FDEF,
// or any code point whose low 16 bits are 0xFFFE or 0xFFFF.
func isNoncharacter(r rune) bool {
	if r >= 0xFDD0 && r <= 0xFDEF {
		return true
	}
	return r&0xFFFE == 0xFFFE
}

// classify reports the escape action required for rune r when writing a
// JSON string literal, per the output-escaping policy documented in
// SPEC_FULL.md §4.1: the solidus '/' is never escaped; line/paragraph
// separators and noncharacters are always escaped even though they are
// otherwise representable in every output encoding, because many JSON
// consumers (JavaScript's eval, in particular) choke on them unescaped.
func classify(r rune) escapeAction {
	if r < 0x80 {
		return asciiTable[r]
	}
	if r == lineSeparator || r == paragraphSeparator {
		return actionUnicode
	}
	if isNoncharacter(r) {
		return actionUnicode
	}
	return actionNone
}
