// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonlex

// ScanStatus reports the outcome of scanning a number-literal candidate.
type ScanStatus uint8

const (
	// ScanValid means s was consumed in its entirety as a well-formed
	// number.
	ScanValid ScanStatus = iota
	// ScanNeedMore means scanning reached the end of s while still in a
	// state that legally extends with more characters (e.g. right after a
	// decimal point, or after an exponent sign); the caller should wait
	// for more input unless this is the final chunk, in which case it is
	// an IncompleteToken.
	ScanNeedMore
	// ScanInvalid means a character was found that cannot legally appear
	// at that position (e.g. a second decimal point, a leading '+', a
	// leading zero followed by another digit); this is conclusive
	// regardless of how much more input might follow.
	ScanInvalid
)

// numState is a state in the ASCII number DFA described in spec §4.2/§4.6:
//
//	number := '-'? ( '0' | [1-9][0-9]* ) ( '.' [0-9]+ )? ( [eE] [+-]? [0-9]+ )?
//	hex    := '0' [xX] [0-9a-fA-F]+
type numState uint8

const (
	nStart numState = iota
	nAfterSign
	nZero
	nIntDigits
	nAfterPoint
	nFracDigits
	nAfterExp
	nAfterExpSign
	nExpDigits
	nAfterHexPrefix
	nHexDigits
	nDone
)

func isDigit(r rune) bool     { return r >= '0' && r <= '9' }
func isHexDigit(r rune) bool  { return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F') }

// ScanNumber scans a number literal from the start of s per the grammar
// above. consumed is the number of runes that form the literal when status
// is ScanValid; for ScanInvalid it is the number of runes that were
// consistent with the grammar before the offending rune; for ScanNeedMore
// it equals len(s) (the whole candidate run was consumed, continuation
// pending).
func ScanNumber(s []rune, allowHex bool) (consumed int, flags NumberFlags, status ScanStatus) {
	state := nStart
	i := 0
	for i < len(s) {
		r := s[i]
		switch state {
		case nStart:
			switch {
			case r == '-':
				flags |= IsNegative
				state = nAfterSign
			case r == '0':
				state = nZero
			case r >= '1' && r <= '9':
				state = nIntDigits
			default:
				return i, flags, ScanInvalid
			}
		case nAfterSign:
			switch {
			case r == '0':
				state = nZero
			case r >= '1' && r <= '9':
				state = nIntDigits
			default:
				return i, flags, ScanInvalid
			}
		case nZero:
			switch {
			case allowHex && (r == 'x' || r == 'X') && flags&IsNegative == 0 && i == 1:
				flags |= IsHex
				state = nAfterHexPrefix
			case r == '.':
				flags |= ContainsDecimalPoint
				state = nAfterPoint
			case r == 'e' || r == 'E':
				flags |= ContainsExponent
				state = nAfterExp
			case isDigit(r):
				return i, flags, ScanInvalid // leading zero followed by a digit
			default:
				state = nDone
				return i, flags, ScanValid
			}
		case nIntDigits:
			switch {
			case isDigit(r):
				// stay in nIntDigits
			case r == '.':
				flags |= ContainsDecimalPoint
				state = nAfterPoint
			case r == 'e' || r == 'E':
				flags |= ContainsExponent
				state = nAfterExp
			default:
				return i, flags, ScanValid
			}
		case nAfterHexPrefix:
			if !isHexDigit(r) {
				return i, flags, ScanInvalid
			}
			state = nHexDigits
		case nHexDigits:
			if !isHexDigit(r) {
				return i, flags, ScanValid
			}
		case nAfterPoint:
			if !isDigit(r) {
				return i, flags, ScanInvalid
			}
			state = nFracDigits
		case nFracDigits:
			switch {
			case isDigit(r):
			case r == 'e' || r == 'E':
				flags |= ContainsExponent
				state = nAfterExp
			default:
				return i, flags, ScanValid
			}
		case nAfterExp:
			switch {
			case r == '+':
				state = nAfterExpSign
			case r == '-':
				flags |= ContainsNegativeExponent
				state = nAfterExpSign
			case isDigit(r):
				state = nExpDigits
			default:
				return i, flags, ScanInvalid
			}
		case nAfterExpSign:
			if !isDigit(r) {
				return i, flags, ScanInvalid
			}
			state = nExpDigits
		case nExpDigits:
			if !isDigit(r) {
				return i, flags, ScanValid
			}
		}
		i++
	}
	// Ran out of input. States that represent a complete, terminable
	// number report ScanValid; all others need more input.
	switch state {
	case nZero, nIntDigits, nHexDigits, nFracDigits, nExpDigits:
		return i, flags, ScanValid
	default:
		return i, flags, ScanNeedMore
	}
}

// ValidateNumber validates that s, in its entirety, is a well-formed number
// literal (no trailing characters permitted), grounding the writer's
// independent ASCII number scanner (C7).
func ValidateNumber(s string, allowHex bool) (NumberFlags, bool) {
	rs := []rune(s)
	n, flags, status := ScanNumber(rs, allowHex)
	if status != ScanValid || n != len(rs) {
		return 0, false
	}
	return flags, true
}
