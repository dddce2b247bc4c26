// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonlex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateNumber(t *testing.T) {
	tests := []struct {
		in       string
		allowHex bool
		wantOK   bool
		want     NumberFlags
	}{
		{"0", false, true, 0},
		{"-0", false, true, IsNegative},
		{"1", false, true, 0},
		{"-1", false, true, IsNegative},
		{"1.0", false, true, ContainsDecimalPoint},
		{"3.14159", false, true, ContainsDecimalPoint},
		{"1e10", false, true, ContainsExponent},
		{"1E+10", false, true, ContainsExponent},
		{"1e-10", false, true, ContainsExponent | ContainsNegativeExponent},
		{"-1.5e-10", false, true, IsNegative | ContainsDecimalPoint | ContainsExponent | ContainsNegativeExponent},
		{"01", false, false, 0},     // leading zero
		{"+1", false, false, 0},     // leading plus
		{"-", false, false, 0},      // bare sign
		{"1.", false, false, 0},     // missing fraction digit
		{".5", false, false, 0},     // missing integer part
		{"1e", false, false, 0},     // missing exponent digit
		{"1e+", false, false, 0},    // missing exponent digit after sign
		{"1 ", false, false, 0},     // trailing garbage not part of grammar
		{"0x1F", true, true, IsHex},
		{"0X0", true, true, IsHex},
		{"0x", true, false, 0}, // missing hex digit
		{"0x1F", false, false, 0}, // hex disallowed
		{"-0x1", true, false, 0}, // hex may not be signed
	}
	for _, tt := range tests {
		flags, ok := ValidateNumber(tt.in, tt.allowHex)
		require.Equal(t, tt.wantOK, ok, "input %q", tt.in)
		if ok {
			require.Equal(t, tt.want, flags, "input %q", tt.in)
		}
	}
}

func TestScanNumberNeedsMore(t *testing.T) {
	tests := []string{"1", "-", "1.", "1e", "1e+", "0x"}
	for _, s := range tests {
		_, _, status := ScanNumber([]rune(s), true)
		require.NotEqual(t, ScanInvalid, status, "input %q", s)
	}
}

func TestScanNumberTerminatesAtBoundary(t *testing.T) {
	n, flags, status := ScanNumber([]rune("123,"), false)
	require.Equal(t, ScanValid, status)
	require.Equal(t, 3, n)
	require.Zero(t, flags)
}
