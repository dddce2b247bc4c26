// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonsax

import goerrors "errors"

// ErrorCode identifies the cause of a parse or write failure. Numerical
// ordering is part of the wire contract: None, OutOfMemory,
// AbortedByHandler, BOMNotAllowed, InvalidEncodingSequence, UnknownToken,
// UnexpectedToken, IncompleteToken, ExpectedMoreTokens,
// UnescapedControlCharacter, InvalidEscapeSequence,
// UnpairedSurrogateEscapeSequence, TooLongString, InvalidNumber,
// TooLongNumber, DuplicateObjectMember.
type ErrorCode uint8

const (
	ErrorNone ErrorCode = iota
	ErrorOutOfMemory
	ErrorAbortedByHandler
	ErrorBOMNotAllowed
	ErrorInvalidEncodingSequence
	ErrorUnknownToken
	ErrorUnexpectedToken
	ErrorIncompleteToken
	ErrorExpectedMoreTokens
	ErrorUnescapedControlCharacter
	ErrorInvalidEscapeSequence
	ErrorUnpairedSurrogateEscapeSequence
	ErrorTooLongString
	ErrorInvalidNumber
	ErrorTooLongNumber
	ErrorDuplicateObjectMember
)

// errorStrings holds the canonical, ASCII, human-readable description of
// each ErrorCode, reproduced verbatim from the reference implementation's
// test harness so that callers depending on exact wording are not broken.
var errorStrings = [...]string{
	ErrorNone:                            "no error",
	ErrorOutOfMemory:                     "could not allocate enough memory",
	ErrorAbortedByHandler:                "the operation was aborted by a handler",
	ErrorBOMNotAllowed:                   "the input begins with a byte-order mark (BOM), which is not allowed by RFC 4627",
	ErrorInvalidEncodingSequence:         "the input contains a byte or sequence of bytes that is not valid for the input encoding",
	ErrorUnknownToken:                    "the input contains an unknown token",
	ErrorUnexpectedToken:                 "the input contains an unexpected token",
	ErrorIncompleteToken:                 "the input ends in the middle of a token",
	ErrorExpectedMoreTokens:              "the input ends when more tokens are expected",
	ErrorUnescapedControlCharacter:       "the input contains a string containing an unescaped control character (U+0000 - U+001F)",
	ErrorInvalidEscapeSequence:           "the input contains a string containing an invalid escape sequence",
	ErrorUnpairedSurrogateEscapeSequence: "the input contains a string containing an unmatched UTF-16 surrogate codepoint",
	ErrorTooLongString:                   "the input contains a string that is too long",
	ErrorInvalidNumber:                   "the input contains an invalid number",
	ErrorTooLongNumber:                   "the input contains a number that is too long",
	ErrorDuplicateObjectMember:           "the input contains an object with duplicate members",
}

// ErrorString returns the canonical human-readable description of code.
func ErrorString(code ErrorCode) string {
	if int(code) < len(errorStrings) {
		return errorStrings[code]
	}
	return "unknown error"
}

// ErrSyntax is the sentinel Error wraps so callers can test for any
// jsonsax failure with errors.Is(err, jsonsax.ErrSyntax), mirroring the
// teacher's jsonError sentinel pattern.
var ErrSyntax = goerrors.New("jsonsax: syntax error")

// Error is the positioned failure reported by a Parser or Writer once
// latched; it stays latched (further mutating calls fail fast) until Reset.
type Error struct {
	Code     ErrorCode
	Location Location
}

func (e *Error) Error() string {
	return ErrorString(e.Code) + " at " + e.Location.String()
}

func (e *Error) Unwrap() error { return ErrSyntax }

// ErrReentrant is returned by mutating methods invoked from within a
// callback running on the same instance.
var ErrReentrant = goerrors.New("jsonsax: reentrant call from within a handler")

// errInvalidOutputEncoding is returned by Parser.SetOutputEncoding /
// Writer.SetOutputEncoding when given UnknownEncoding, which is only a
// legal value for an input encoding.
var errInvalidOutputEncoding = goerrors.New("jsonsax: UnknownEncoding is not a valid output encoding")
