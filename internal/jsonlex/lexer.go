// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonlex

import "strings"

// ErrorCode enumerates the lexical failure reasons this package can
// report. The parser maps each one onto the bit-exact public error
// taxonomy; jsonlex itself stays free of that dependency.
type ErrorCode uint8

const (
	ErrNone ErrorCode = iota
	ErrUnknownToken
	ErrIncompleteToken
	ErrUnescapedControlCharacter
	ErrInvalidEscapeSequence
	ErrUnpairedSurrogateEscapeSequence
	ErrTooLongString
	ErrInvalidNumber
	ErrTooLongNumber
)

// Status reports what ScanToken accomplished.
type Status uint8

const (
	// StatusToken means a Token was produced; Consumed runes (including
	// any leading whitespace/comments) should be discarded by the caller.
	StatusToken Status = iota
	// StatusNeedMore means there is not enough input to resolve the next
	// token; the caller should retry once more runes are available.
	// Nothing should be discarded.
	StatusNeedMore
	// StatusEOF means only whitespace/comments remain and isFinal is
	// true: there is no further token, by design (used to let the parser
	// distinguish "clean end of input" from "error").
	StatusEOF
	// StatusError means a lexical error was found; ErrCode/ErrOffset (an
	// index into the runes slice passed to ScanToken) describe it.
	StatusError
)

// Options configures lexical extensions beyond strict RFC 4627.
type Options struct {
	AllowComments        bool
	AllowSpecialNumbers  bool
	AllowHexNumbers      bool
	MaxStringLength      int // 0 means unbounded
	MaxNumberLength      int // 0 means unbounded
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// skipInsignificant advances past whitespace and (if enabled) comments,
// starting at runes[i]. It returns the new index, or needMore=true if
// resolving a comment or a lone '/' requires more input than is available.
func skipInsignificant(runes []DecodedRune, i int, opts Options, isFinal bool) (next int, needMore bool, errCode ErrorCode, errOffset int) {
	for {
		for i < len(runes) && isWhitespace(runes[i].R) {
			i++
		}
		if i >= len(runes) || runes[i].R != '/' || !opts.AllowComments {
			return i, false, ErrNone, 0
		}
		if i+1 >= len(runes) {
			if isFinal {
				return i, false, ErrNone, 0 // lone '/' at true EOF; let token recognition reject it
			}
			return i, true, ErrNone, 0
		}
		switch runes[i+1].R {
		case '/':
			j := i + 2
			for j < len(runes) && runes[j].R != '\n' && runes[j].R != '\r' {
				j++
			}
			i = j
			continue
		case '*':
			j := i + 2
			closed := false
			for j+1 < len(runes) {
				if runes[j].R == '*' && runes[j+1].R == '/' {
					j += 2
					closed = true
					break
				}
				j++
			}
			if !closed {
				if isFinal {
					return i, false, ErrIncompleteToken, i
				}
				return i, true, ErrNone, 0
			}
			i = j
			continue
		default:
			return i, false, ErrNone, 0
		}
	}
}

// matchLiteral reports whether runes[i:] begins with word. needMore is true
// if the available runes are a strict prefix of word.
func matchLiteral(runes []DecodedRune, i int, word string) (matched, needMore bool) {
	for k, want := range word {
		if i+k >= len(runes) {
			return false, true
		}
		if runes[i+k].R != want {
			return false, false
		}
	}
	return true, false
}

func hexVal(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	default:
		return 0, false
	}
}

const (
	highSurrMin = 0xD800
	highSurrMax = 0xDBFF
	lowSurrMin  = 0xDC00
	lowSurrMax  = 0xDFFF
)

// ScanToken scans exactly one token, plus any preceding whitespace/
// comments, from the start of runes. It always restarts from index 0: the
// caller is expected to retain the full undrained rune buffer across calls
// (the "buffer and rescan" chunking strategy), so ScanToken itself keeps no
// state between calls.
// ScanToken scans exactly one token, plus any preceding whitespace and
// comments, from the start of runes. start is the index of the first rune
// of the token itself (i.e. past any skipped whitespace/comments),
// meaningful whenever status is StatusToken; callers use it to compute
// the token's start Location distinctly from the Location after it.
func ScanToken(runes []DecodedRune, isFinal bool, opts Options) (tok Token, start, consumed int, status Status, errCode ErrorCode, errOffset int) {
	tok, consumed, status, errCode, errOffset = scanToken(runes, isFinal, opts)
	if status == StatusToken {
		start, _, _, _ = skipInsignificant(runes, 0, opts, isFinal)
	}
	return tok, start, consumed, status, errCode, errOffset
}

func scanToken(runes []DecodedRune, isFinal bool, opts Options) (tok Token, consumed int, status Status, errCode ErrorCode, errOffset int) {
	i, needMore, ec, eo := skipInsignificant(runes, 0, opts, isFinal)
	if ec != ErrNone {
		return Token{}, 0, StatusError, ec, eo
	}
	if needMore {
		return Token{}, 0, StatusNeedMore, 0, 0
	}
	if i >= len(runes) {
		if isFinal {
			return Token{Kind: KindEOF}, i, StatusEOF, 0, 0
		}
		return Token{}, 0, StatusNeedMore, 0, 0
	}

	start := i
	r := runes[i].R
	switch {
	case r == '{':
		return Token{Kind: KindBeginObject}, i + 1, StatusToken, 0, 0
	case r == '}':
		return Token{Kind: KindEndObject}, i + 1, StatusToken, 0, 0
	case r == '[':
		return Token{Kind: KindBeginArray}, i + 1, StatusToken, 0, 0
	case r == ']':
		return Token{Kind: KindEndArray}, i + 1, StatusToken, 0, 0
	case r == ':':
		return Token{Kind: KindColon}, i + 1, StatusToken, 0, 0
	case r == ',':
		return Token{Kind: KindComma}, i + 1, StatusToken, 0, 0
	case r == '"':
		return scanString(runes, start, isFinal, opts)
	case r == 'n':
		return scanLiteral(runes, start, isFinal, "null", Token{Kind: KindNull})
	case r == 't':
		return scanLiteral(runes, start, isFinal, "true", Token{Kind: KindTrue})
	case r == 'f':
		return scanLiteral(runes, start, isFinal, "false", Token{Kind: KindFalse})
	case r == 'N' && opts.AllowSpecialNumbers:
		return scanLiteral(runes, start, isFinal, "NaN", Token{Kind: KindNaN})
	case r == 'I' && opts.AllowSpecialNumbers:
		return scanLiteral(runes, start, isFinal, "Infinity", Token{Kind: KindInfinity})
	case r == '-' && opts.AllowSpecialNumbers && start+1 < len(runes) && runes[start+1].R == 'I':
		return scanLiteral(runes, start, isFinal, "-Infinity", Token{Kind: KindNegInfinity})
	case r == '-' && opts.AllowSpecialNumbers && start+1 >= len(runes) && !isFinal:
		return Token{}, 0, StatusNeedMore, 0, 0
	case r == '-' || (r >= '0' && r <= '9'):
		return scanNumberToken(runes, start, isFinal, opts)
	default:
		return Token{}, start + 1, StatusError, ErrUnknownToken, start
	}
}

func scanLiteral(runes []DecodedRune, start int, isFinal bool, word string, tok Token) (Token, int, Status, ErrorCode, int) {
	matched, needMore := matchLiteral(runes, start, word)
	if matched {
		return tok, start + len(word), StatusToken, ErrNone, 0
	}
	if needMore {
		if isFinal {
			return Token{}, len(runes), StatusError, ErrIncompleteToken, start
		}
		return Token{}, 0, StatusNeedMore, 0, 0
	}
	return Token{}, start + 1, StatusError, ErrUnknownToken, start
}

// numberCandidateEnd returns the index one past the last rune that could
// plausibly belong to a number literal (digits, sign, '.', exponent
// marker, hex digits/marker), starting at start.
func numberCandidateEnd(runes []DecodedRune, start int) int {
	i := start
	for i < len(runes) {
		r := runes[i].R
		switch {
		case r >= '0' && r <= '9':
		case r == '-' || r == '+' || r == '.':
		case r == 'e' || r == 'E' || r == 'x' || r == 'X':
		case r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return i
		}
		i++
	}
	return i
}

func scanNumberToken(runes []DecodedRune, start int, isFinal bool, opts Options) (Token, int, Status, ErrorCode, int) {
	end := numberCandidateEnd(runes, start)
	candidate := make([]rune, end-start)
	for k := range candidate {
		candidate[k] = runes[start+k].R
	}
	n, flags, status := ScanNumber(candidate, opts.AllowHexNumbers)
	switch status {
	case ScanValid:
		if start+n == len(runes) && !isFinal {
			// The literal runs to the end of the available input; the
			// next chunk may still extend it.
			return Token{}, 0, StatusNeedMore, 0, 0
		}
		if opts.MaxNumberLength > 0 && n > opts.MaxNumberLength {
			return Token{}, start + n, StatusError, ErrTooLongNumber, start
		}
		text := string(candidate[:n])
		return Token{Kind: KindNumber, Text: text, NumberFlags: flags}, start + n, StatusToken, ErrNone, 0
	case ScanNeedMore:
		if end < len(runes) {
			// The candidate run was bounded by a non-candidate
			// character yet the grammar wanted more: conclusively
			// invalid (e.g. "1." followed by a letter).
			return Token{}, start + n, StatusError, ErrInvalidNumber, start
		}
		if isFinal {
			return Token{}, start + n, StatusError, ErrIncompleteToken, start
		}
		return Token{}, 0, StatusNeedMore, 0, 0
	default: // ScanInvalid
		return Token{}, start + n, StatusError, ErrInvalidNumber, start
	}
}

func scanString(runes []DecodedRune, start int, isFinal bool, opts Options) (Token, int, Status, ErrorCode, int) {
	var b strings.Builder
	var containsNul, containsControl, containsNonASCII, containsNonBMP, containsReplaced bool
	idx := start + 1
	for {
		if idx >= len(runes) {
			if isFinal {
				return Token{}, len(runes), StatusError, ErrIncompleteToken, start
			}
			return Token{}, 0, StatusNeedMore, 0, 0
		}
		c := runes[idx]
		switch {
		case c.R == '"':
			idx++
			return Token{
				Kind:             KindString,
				Text:             b.String(),
				ContainsNul:      containsNul,
				ContainsControl:  containsControl,
				ContainsNonASCII: containsNonASCII,
				ContainsNonBMP:   containsNonBMP,
				ContainsReplaced: containsReplaced,
			}, idx, StatusToken, ErrNone, 0
		case c.R == '\\':
			idx++
			if idx >= len(runes) {
				if isFinal {
					return Token{}, len(runes), StatusError, ErrIncompleteToken, start
				}
				return Token{}, 0, StatusNeedMore, 0, 0
			}
			esc := runes[idx].R
			switch esc {
			case '"', '\\', '/':
				b.WriteRune(esc)
				idx++
			case 'b':
				b.WriteByte('\b')
				containsControl = true
				idx++
			case 'f':
				b.WriteByte('\f')
				containsControl = true
				idx++
			case 'n':
				b.WriteByte('\n')
				containsControl = true
				idx++
			case 'r':
				b.WriteByte('\r')
				containsControl = true
				idx++
			case 't':
				b.WriteByte('\t')
				containsControl = true
				idx++
			case 'u':
				idx++
				v, n, needMore := scanHex4(runes, idx)
				if needMore {
					if isFinal {
						return Token{}, len(runes), StatusError, ErrIncompleteToken, start
					}
					return Token{}, 0, StatusNeedMore, 0, 0
				}
				if n < 0 {
					return Token{}, idx, StatusError, ErrInvalidEscapeSequence, start
				}
				idx += 4
				switch {
				case v >= highSurrMin && v <= highSurrMax:
					if idx+1 >= len(runes) || runes[idx].R != '\\' || runes[idx+1].R != 'u' {
						if idx+1 >= len(runes) && !isFinal {
							return Token{}, 0, StatusNeedMore, 0, 0
						}
						return Token{}, idx, StatusError, ErrUnpairedSurrogateEscapeSequence, start
					}
					lowIdx := idx + 2
					v2, n2, needMore2 := scanHex4(runes, lowIdx)
					if needMore2 {
						if isFinal {
							return Token{}, len(runes), StatusError, ErrIncompleteToken, start
						}
						return Token{}, 0, StatusNeedMore, 0, 0
					}
					if n2 < 0 || v2 < lowSurrMin || v2 > lowSurrMax {
						return Token{}, idx, StatusError, ErrUnpairedSurrogateEscapeSequence, start
					}
					r := (rune(v)-highSurrMin)<<10 + (rune(v2) - lowSurrMin) + 0x10000
					b.WriteRune(r)
					containsNonBMP = true
					if r >= 0x80 {
						containsNonASCII = true
					}
					idx = lowIdx + 4
				case v >= lowSurrMin && v <= lowSurrMax:
					return Token{}, idx, StatusError, ErrUnpairedSurrogateEscapeSequence, start
				default:
					r := rune(v)
					if r == 0 {
						containsNul = true
					}
					if r < 0x20 {
						containsControl = true
					}
					if r >= 0x80 {
						containsNonASCII = true
					}
					b.WriteRune(r)
				}
			default:
				return Token{}, idx, StatusError, ErrInvalidEscapeSequence, start
			}
		case c.R < 0x20:
			return Token{}, idx, StatusError, ErrUnescapedControlCharacter, idx
		default:
			if c.Replaced {
				containsReplaced = true
			}
			if c.R >= 0x80 {
				containsNonASCII = true
			}
			if c.R > 0xFFFF {
				containsNonBMP = true
			}
			b.WriteRune(c.R)
			idx++
		}
		if opts.MaxStringLength > 0 && b.Len() > opts.MaxStringLength {
			// Checked after every accumulating branch (escape or literal
			// character) rather than only once the closing quote is seen,
			// so a pathologically long single string fails fast instead
			// of first being buffered to completion.
			return Token{}, idx, StatusError, ErrTooLongString, start
		}
	}
}

// scanHex4 reads 4 hex digits starting at idx. n is -1 if a non-hex digit
// was found (v is then meaningless); needMore is true if fewer than 4
// runes remain.
func scanHex4(runes []DecodedRune, idx int) (v int, n int, needMore bool) {
	if idx+4 > len(runes) {
		return 0, 0, true
	}
	for k := 0; k < 4; k++ {
		d, ok := hexVal(runes[idx+k].R)
		if !ok {
			return 0, -1, false
		}
		v = v<<4 | d
	}
	return v, 4, false
}
