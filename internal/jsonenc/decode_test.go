// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonenc

import "testing"

func TestDecodeUTF8(t *testing.T) {
	tests := []struct {
		name          string
		in            []byte
		isFinal       bool
		replace       bool
		wantR         rune
		wantSize      int
		wantIncomplete bool
		wantValid     bool
	}{
		{name: "ascii", in: []byte("a"), isFinal: true, wantR: 'a', wantSize: 1, wantValid: true},
		{name: "empty", in: nil, isFinal: true, wantIncomplete: true},
		{name: "two byte valid", in: []byte{0xC2, 0x80}, isFinal: true, wantR: 0x80, wantSize: 2, wantValid: true},
		{name: "two byte incomplete not final", in: []byte{0xC2}, isFinal: false, wantIncomplete: true},
		{name: "two byte truncated final replace", in: []byte{0xC2}, isFinal: true, replace: true, wantR: ReplacementChar, wantSize: 1},
		{name: "overlong two byte lead C0", in: []byte{0xC0, 0x80}, isFinal: true, replace: true, wantR: ReplacementChar, wantSize: 1},
		{name: "three byte valid", in: []byte{0xE2, 0x82, 0xAC}, isFinal: true, wantR: 0x20AC, wantSize: 3, wantValid: true},
		{name: "three byte E0 overlong second byte rejected", in: []byte{0xE0, 0x80, 0x80}, isFinal: true, replace: true, wantR: ReplacementChar, wantSize: 1},
		{name: "three byte E0 valid lower bound", in: []byte{0xE0, 0xA0, 0x80}, isFinal: true, wantR: 0x800, wantSize: 3, wantValid: true},
		{name: "three byte ED surrogate rejected", in: []byte{0xED, 0xA0, 0x80}, isFinal: true, replace: true, wantR: ReplacementChar, wantSize: 1},
		{name: "three byte ED valid upper bound", in: []byte{0xED, 0x9F, 0xBF}, isFinal: true, wantR: 0xD7FF, wantSize: 3, wantValid: true},
		{name: "four byte valid", in: []byte{0xF0, 0x9F, 0x98, 0x80}, isFinal: true, wantR: 0x1F600, wantSize: 4, wantValid: true},
		{name: "four byte F0 overlong second byte rejected", in: []byte{0xF0, 0x80, 0x80, 0x80}, isFinal: true, replace: true, wantR: ReplacementChar, wantSize: 1},
		{name: "four byte F4 valid upper bound", in: []byte{0xF4, 0x8F, 0xBF, 0xBF}, isFinal: true, wantR: maxScalar, wantSize: 4, wantValid: true},
		{name: "four byte F4 out of range second byte rejected", in: []byte{0xF4, 0x90, 0x80, 0x80}, isFinal: true, replace: true, wantR: ReplacementChar, wantSize: 1},
		{name: "bare continuation byte", in: []byte{0x80}, isFinal: true, replace: true, wantR: ReplacementChar, wantSize: 1},
		{name: "lead F5 never valid", in: []byte{0xF5, 0x80, 0x80, 0x80}, isFinal: true, replace: true, wantR: ReplacementChar, wantSize: 1},
		{
			name: "three byte sequence with two valid continuations",
			in:   []byte{0xE1, 0x80, 0x80},
			isFinal: true, wantR: 0x1000, wantSize: 3, wantValid: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, size, incomplete, valid := decodeUTF8(tt.in, tt.isFinal, tt.replace)
			if incomplete != tt.wantIncomplete {
				t.Fatalf("incomplete = %v, want %v", incomplete, tt.wantIncomplete)
			}
			if tt.wantIncomplete {
				return
			}
			if r != tt.wantR || size != tt.wantSize || valid != tt.wantValid {
				t.Errorf("decodeUTF8(% X) = (%U, %d, %v), want (%U, %d, %v)",
					tt.in, r, size, valid, tt.wantR, tt.wantSize, tt.wantValid)
			}
		})
	}
}

// TestDecodeUTF8MaximalSubpartVector runs the Unicode 5.2 §3.9 ill-formed
// byte sequence example (table 3-8's well-known "a F1 80 80 E1 80 C2 62 80
// 63 80 BF 64" case) through DecodeRune in replacement mode, rune by rune,
// and checks both the recovered scalars and that each call's size advances
// the cursor past exactly the maximal valid subpart rather than a single
// byte at a time.
func TestDecodeUTF8MaximalSubpartVector(t *testing.T) {
	in := []byte{0x61, 0xF1, 0x80, 0x80, 0xE1, 0x80, 0xC2, 0x62, 0x80, 0x63, 0x80, 0xBF, 0x64}
	want := []struct {
		r    rune
		size int
	}{
		{'a', 1},
		{ReplacementChar, 3}, // F1 80 80: truncated 4-byte lead, two valid continuations
		{ReplacementChar, 2}, // E1 80: truncated 3-byte lead, one valid continuation
		{ReplacementChar, 1}, // C2 alone: truncated 2-byte lead
		{'b', 1},
		{ReplacementChar, 1}, // bare continuation byte
		{'c', 1},
		{ReplacementChar, 1}, // bare continuation byte
		{ReplacementChar, 1}, // bare continuation byte
		{'d', 1},
	}
	var got []rune
	pos := 0
	for pos < len(in) {
		r, size, incomplete, _ := DecodeRune(in[pos:], UTF8, true, true)
		if incomplete || size == 0 {
			t.Fatalf("unexpected stall at offset %d", pos)
		}
		got = append(got, r)
		pos += size
	}
	if len(got) != len(want) {
		t.Fatalf("got %d runes %U, want %d runes", len(got), got, len(want))
	}
	for i, w := range want {
		if got[i] != w.r {
			t.Errorf("rune[%d] = %U, want %U", i, got[i], w.r)
		}
	}

	// 6 replacement characters total: the maximal-subpart rule merges
	// each truncated multi-byte lead with however many of its own
	// continuation bytes actually validated, rather than emitting one
	// replacement per raw byte.
	var n int
	for _, r := range got {
		if r == ReplacementChar {
			n++
		}
	}
	if n != 6 {
		t.Errorf("replacement count = %d, want 6", n)
	}
}

func TestDecodeUTF16(t *testing.T) {
	tests := []struct {
		name     string
		in       []byte
		enc      Encoding
		isFinal  bool
		replace  bool
		wantR    rune
		wantSize int
		wantIncomplete bool
		wantValid bool
	}{
		{name: "bmp char LE", in: []byte{0x41, 0x00}, enc: UTF16LE, isFinal: true, wantR: 'A', wantSize: 2, wantValid: true},
		{name: "bmp char BE", in: []byte{0x00, 0x41}, enc: UTF16BE, isFinal: true, wantR: 'A', wantSize: 2, wantValid: true},
		{name: "surrogate pair LE", in: []byte{0x3D, 0xD8, 0x00, 0xDE}, enc: UTF16LE, isFinal: true, wantR: 0x1F600, wantSize: 4, wantValid: true},
		{name: "lone high surrogate final", in: []byte{0x00, 0xD8}, enc: UTF16LE, isFinal: true, replace: true, wantR: ReplacementChar, wantSize: 2},
		{name: "lone high surrogate not final", in: []byte{0x00, 0xD8}, enc: UTF16LE, isFinal: false, wantIncomplete: true},
		{name: "high surrogate followed by non-low", in: []byte{0x00, 0xD8, 0x41, 0x00}, enc: UTF16LE, isFinal: true, replace: true, wantR: ReplacementChar, wantSize: 2},
		{name: "lone low surrogate", in: []byte{0x00, 0xDC}, enc: UTF16LE, isFinal: true, replace: true, wantR: ReplacementChar, wantSize: 2},
		{name: "single trailing byte", in: []byte{0x41}, enc: UTF16LE, isFinal: true, replace: true, wantR: ReplacementChar, wantSize: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, size, incomplete, valid := decodeUTF16(tt.in, tt.enc, tt.isFinal, tt.replace)
			if incomplete != tt.wantIncomplete {
				t.Fatalf("incomplete = %v, want %v", incomplete, tt.wantIncomplete)
			}
			if tt.wantIncomplete {
				return
			}
			if r != tt.wantR || size != tt.wantSize || valid != tt.wantValid {
				t.Errorf("decodeUTF16(% X) = (%U, %d, %v), want (%U, %d, %v)",
					tt.in, r, size, valid, tt.wantR, tt.wantSize, tt.wantValid)
			}
		})
	}
}

func TestDecodeUTF32(t *testing.T) {
	tests := []struct {
		name     string
		in       []byte
		enc      Encoding
		isFinal  bool
		replace  bool
		wantR    rune
		wantSize int
		wantValid bool
	}{
		{name: "ascii LE", in: []byte{0x41, 0x00, 0x00, 0x00}, enc: UTF32LE, isFinal: true, wantR: 'A', wantSize: 4, wantValid: true},
		{name: "ascii BE", in: []byte{0x00, 0x00, 0x00, 0x41}, enc: UTF32BE, isFinal: true, wantR: 'A', wantSize: 4, wantValid: true},
		{name: "surrogate rejected", in: []byte{0x00, 0xD8, 0x00, 0x00}, enc: UTF32LE, isFinal: true, replace: true, wantR: ReplacementChar, wantSize: 4},
		{name: "above max scalar rejected", in: []byte{0x00, 0x00, 0x11, 0x00}, enc: UTF32LE, isFinal: true, replace: true, wantR: ReplacementChar, wantSize: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, size, _, valid := decodeUTF32(tt.in, tt.enc, tt.isFinal, tt.replace)
			if r != tt.wantR || size != tt.wantSize || valid != tt.wantValid {
				t.Errorf("decodeUTF32(% X) = (%U, %d, %v), want (%U, %d, %v)",
					tt.in, r, size, valid, tt.wantR, tt.wantSize, tt.wantValid)
			}
		})
	}
}
