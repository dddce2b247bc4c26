// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonlex implements the token-level DFA shared by the parser (over
// decoded input runes) and the writer's ASCII-only number validator.
package jsonlex

// Kind identifies the lexical category of a Token.
type Kind uint8

const (
	KindEOF Kind = iota
	KindNull
	KindTrue
	KindFalse
	KindNaN
	KindInfinity
	KindNegInfinity
	KindString
	KindNumber
	KindBeginObject
	KindEndObject
	KindBeginArray
	KindEndArray
	KindColon
	KindComma
)

// NumberFlags records grammar features observed while scanning a number
// literal, mirroring spec's IsNegative/IsHex/ContainsDecimalPoint/
// ContainsExponent/ContainsNegativeExponent flags.
type NumberFlags uint8

const (
	IsNegative NumberFlags = 1 << iota
	IsHex
	ContainsDecimalPoint
	ContainsExponent
	ContainsNegativeExponent
)

// Token is the tagged result of one lexer scan. Kind discriminates which
// fields are meaningful, matching how jsontext.Token keys off Kind().
type Token struct {
	Kind Kind

	// Text holds the decoded string value for KindString, or the raw ASCII
	// digits/sign/exponent text for KindNumber.
	Text string

	NumberFlags NumberFlags

	ContainsNul      bool
	ContainsControl  bool
	ContainsNonASCII bool
	ContainsNonBMP   bool
	ContainsReplaced bool
}

// DecodedRune is one Unicode scalar value already decoded from raw input by
// the encoding pipeline, tagged with whether it is a genuine U+FFFD
// substitution for an invalid source sequence (as opposed to a literal
// U+FFFD present in well-formed input). The lexer needs this provenance bit
// to compute the ContainsReplaced string attribute.
type DecodedRune struct {
	R         rune
	Replaced  bool
}
