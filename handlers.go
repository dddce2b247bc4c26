// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonsax

// HandlerResult is the verdict a registered callback returns.
type HandlerResult uint8

const (
	// Continue lets parsing or writing proceed normally.
	Continue HandlerResult = iota
	// Abort latches ErrorAbortedByHandler at the current token/call
	// location and stops the parse or write.
	Abort
	// TreatAsDuplicate is valid only as the ObjectMemberHandler's
	// verdict; it latches ErrorDuplicateObjectMember as if the member
	// name had been found in the tracked member set, letting a caller
	// implement duplicate detection without TrackObjectMembers.
	TreatAsDuplicate
)

// NullHandler is invoked when a `null` literal is accepted.
type NullHandler func(p *Parser) HandlerResult

// BooleanHandler is invoked when a `true`/`false` literal is accepted.
type BooleanHandler func(p *Parser, value bool) HandlerResult

// StringHandler is invoked for a string value (not an object member name).
type StringHandler func(p *Parser, text string, attrs StringAttributes) HandlerResult

// NumberHandler is invoked for a number literal, with value already parsed
// as a float64. Precision-sensitive callers should register a
// RawNumberHandler instead.
type NumberHandler func(p *Parser, value float64, flags NumberFlags) HandlerResult

// RawNumberHandler is invoked for a number literal with the original ASCII
// text, un-parsed, alongside the Number callback (if both are registered,
// both fire).
type RawNumberHandler func(p *Parser, text string, flags NumberFlags) HandlerResult

// SpecialNumberHandler is invoked for `NaN`/`Infinity`/`-Infinity` literals
// when AllowSpecialNumbers is set.
type SpecialNumberHandler func(p *Parser, which SpecialNumber) HandlerResult

// StartObjectHandler is invoked when `{` is accepted.
type StartObjectHandler func(p *Parser) HandlerResult

// EndObjectHandler is invoked when the matching `}` is accepted.
type EndObjectHandler func(p *Parser) HandlerResult

// ObjectMemberHandler is invoked for an object member's name. Per the
// unified shape, "is this the first member" is not passed explicitly;
// callers who need it call Parser.InObjectFirstMember from inside the
// handler, which reads the bit the context stack already carries.
type ObjectMemberHandler func(p *Parser, name string, attrs StringAttributes) HandlerResult

// StartArrayHandler is invoked when `[` is accepted.
type StartArrayHandler func(p *Parser) HandlerResult

// EndArrayHandler is invoked when the matching `]` is accepted.
type EndArrayHandler func(p *Parser) HandlerResult

// ArrayItemHandler is invoked before each array item's value events, with
// isFirstItem true only for the array's first item.
type ArrayItemHandler func(p *Parser, isFirstItem bool) HandlerResult

// OutputHandler receives encoded bytes produced by a Writer.
type OutputHandler func(w *Writer, p []byte) HandlerResult
