// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonlex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func plain(s string) []DecodedRune {
	rs := make([]DecodedRune, 0, len(s))
	for _, r := range s {
		rs = append(rs, DecodedRune{R: r})
	}
	return rs
}

func TestScanStructuralTokens(t *testing.T) {
	for _, tt := range []struct {
		in   string
		kind Kind
	}{
		{"{", KindBeginObject},
		{"}", KindEndObject},
		{"[", KindBeginArray},
		{"]", KindEndArray},
		{":", KindColon},
		{",", KindComma},
	} {
		tok, _, consumed, status, ec, _ := ScanToken(plain(tt.in), true, Options{})
		require.Equal(t, StatusToken, status, tt.in)
		require.Equal(t, ErrNone, ec)
		require.Equal(t, tt.kind, tok.Kind)
		require.Equal(t, 1, consumed)
	}
}

func TestScanLiterals(t *testing.T) {
	tok, _, consumed, status, _, _ := ScanToken(plain("null"), true, Options{})
	require.Equal(t, StatusToken, status)
	require.Equal(t, KindNull, tok.Kind)
	require.Equal(t, 4, consumed)

	tok, _, _, status, _, _ = ScanToken(plain("true"), true, Options{})
	require.Equal(t, StatusToken, status)
	require.Equal(t, KindTrue, tok.Kind)

	tok, _, _, status, _, _ = ScanToken(plain("false"), true, Options{})
	require.Equal(t, StatusToken, status)
	require.Equal(t, KindFalse, tok.Kind)
}

func TestScanLiteralIncompleteNotFinal(t *testing.T) {
	_, _, consumed, status, _, _ := ScanToken(plain("nul"), false, Options{})
	require.Equal(t, StatusNeedMore, status)
	require.Zero(t, consumed)
}

func TestScanLiteralMismatch(t *testing.T) {
	_, _, _, status, ec, offset := ScanToken(plain("nux"), true, Options{})
	require.Equal(t, StatusError, status)
	require.Equal(t, ErrUnknownToken, ec)
	require.Zero(t, offset)
}

func TestScanNumberToken(t *testing.T) {
	tok, _, consumed, status, _, _ := ScanToken(plain("3.14159"), true, Options{})
	require.Equal(t, StatusToken, status)
	require.Equal(t, KindNumber, tok.Kind)
	require.Equal(t, "3.14159", tok.Text)
	require.Equal(t, 7, consumed)
	require.Equal(t, ContainsDecimalPoint, tok.NumberFlags)
}

func TestScanNumberTerminatedByDelimiter(t *testing.T) {
	tok, _, consumed, status, _, _ := ScanToken(plain("42,"), true, Options{})
	require.Equal(t, StatusToken, status)
	require.Equal(t, "42", tok.Text)
	require.Equal(t, 2, consumed)
}

func TestScanSimpleString(t *testing.T) {
	tok, _, consumed, status, _, _ := ScanToken(plain(`"abc"`), true, Options{})
	require.Equal(t, StatusToken, status)
	require.Equal(t, KindString, tok.Kind)
	require.Equal(t, "abc", tok.Text)
	require.Equal(t, 5, consumed)
}

func TestScanStringEscapes(t *testing.T) {
	tok, _, _, status, _, _ := ScanToken(plain(`"a\nb\tc\"d"`), true, Options{})
	require.Equal(t, StatusToken, status)
	require.Equal(t, "a\nb\tc\"d", tok.Text)
}

func TestScanStringUnicodeEscape(t *testing.T) {
	tok, _, _, status, _, _ := ScanToken(plain("\"\\u00e9\""), true, Options{})
	require.Equal(t, StatusToken, status)
	require.Equal(t, "é", tok.Text)
	require.True(t, tok.ContainsNonASCII)
}

func TestScanStringSurrogatePair(t *testing.T) {
	tok, _, _, status, _, _ := ScanToken(plain("\"\\uD834\\uDD1E\""), true, Options{})
	require.Equal(t, StatusToken, status)
	require.Equal(t, "𝄞", tok.Text)
	require.True(t, tok.ContainsNonBMP)
}

func TestScanStringUnpairedSurrogate(t *testing.T) {
	_, _, _, status, ec, _ := ScanToken(plain(`"\uD834\n"`), true, Options{})
	require.Equal(t, StatusError, status)
	require.Equal(t, ErrUnpairedSurrogateEscapeSequence, ec)
}

func TestScanStringUnescapedControl(t *testing.T) {
	rs := plain("\"a\tb\"")
	_, _, _, status, ec, _ := ScanToken(rs, true, Options{})
	require.Equal(t, StatusError, status)
	require.Equal(t, ErrUnescapedControlCharacter, ec)
}

func TestScanStringInvalidEscape(t *testing.T) {
	_, _, _, status, ec, _ := ScanToken(plain(`"\q"`), true, Options{})
	require.Equal(t, StatusError, status)
	require.Equal(t, ErrInvalidEscapeSequence, ec)
}

func TestScanStringIncompleteNotFinal(t *testing.T) {
	_, _, consumed, status, _, _ := ScanToken(plain(`"abc`), false, Options{})
	require.Equal(t, StatusNeedMore, status)
	require.Zero(t, consumed)
}

func TestScanLineComment(t *testing.T) {
	tok, _, _, status, _, _ := ScanToken(plain("// hi\n42"), true, Options{AllowComments: true})
	require.Equal(t, StatusToken, status)
	require.Equal(t, "42", tok.Text)
}

func TestScanBlockComment(t *testing.T) {
	tok, _, _, status, _, _ := ScanToken(plain("/* hi */ true"), true, Options{AllowComments: true})
	require.Equal(t, StatusToken, status)
	require.Equal(t, KindTrue, tok.Kind)
}

func TestScanUnterminatedBlockComment(t *testing.T) {
	_, _, _, status, ec, _ := ScanToken(plain("/* hi"), true, Options{AllowComments: true})
	require.Equal(t, StatusError, status)
	require.Equal(t, ErrIncompleteToken, ec)
}

func TestScanSpecialNumbers(t *testing.T) {
	tok, _, _, status, _, _ := ScanToken(plain("NaN"), true, Options{AllowSpecialNumbers: true})
	require.Equal(t, StatusToken, status)
	require.Equal(t, KindNaN, tok.Kind)

	tok, _, _, status, _, _ = ScanToken(plain("Infinity"), true, Options{AllowSpecialNumbers: true})
	require.Equal(t, StatusToken, status)
	require.Equal(t, KindInfinity, tok.Kind)

	tok, _, _, status, _, _ = ScanToken(plain("-Infinity"), true, Options{AllowSpecialNumbers: true})
	require.Equal(t, StatusToken, status)
	require.Equal(t, KindNegInfinity, tok.Kind)
}

func TestScanEOF(t *testing.T) {
	tok, _, _, status, _, _ := ScanToken(plain("   "), true, Options{})
	require.Equal(t, StatusEOF, status)
	require.Equal(t, KindEOF, tok.Kind)
}
