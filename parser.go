// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonsax implements a streaming, push-style JSON parser and
// writer: callers feed arbitrary-size byte chunks to a Parser and register
// callbacks that fire as structure is recognized, or drive a Writer through
// structural calls that emit encoded bytes through a caller-registered
// sink. Neither constructs an in-memory document tree. Both support five
// text encodings (UTF-8, UTF-16LE/BE, UTF-32LE/BE) and report a positioned
// error on the first malformed input.
package jsonsax

import (
	"strconv"
	"strings"

	"github.com/go-jsonsax/jsonsax/internal/jsonbuf"
	"github.com/go-jsonsax/jsonsax/internal/jsonenc"
	"github.com/go-jsonsax/jsonsax/internal/jsonlex"
	"github.com/go-jsonsax/jsonsax/internal/jsonstack"
)

type phase uint8

const (
	phaseCreated phase = iota
	phaseStarted
	phaseFinishedOK
	phaseFinishedErr
)

// Parser incrementally recognizes one top-level JSON value from a sequence
// of Parse calls, firing registered handlers as tokens are accepted. It is
// not safe for concurrent use, and handlers may not call back into any
// mutating method of the same Parser; doing so fails with ErrReentrant
// rather than corrupting in-flight state.
type Parser struct {
	allocator Allocator
	userData  any

	inputEncoding         Encoding
	outputEncoding        Encoding
	maxOutputStringLength int
	maxNumberLength       int
	allowBOM              bool
	allowComments         bool
	allowTrailingCommas   bool
	allowSpecialNumbers   bool
	allowHexNumbers       bool
	replaceInvalid        bool
	trackObjectMembers    bool

	nullHandler          NullHandler
	booleanHandler       BooleanHandler
	stringHandler        StringHandler
	numberHandler        NumberHandler
	rawNumberHandler     RawNumberHandler
	specialNumberHandler SpecialNumberHandler
	startObjectHandler   StartObjectHandler
	endObjectHandler     EndObjectHandler
	objectMemberHandler  ObjectMemberHandler
	startArrayHandler    StartArrayHandler
	endArrayHandler      EndArrayHandler
	arrayItemHandler     ArrayItemHandler

	phase     phase
	inHandler bool
	err       *Error

	pending jsonbuf.Buffer // undecoded tail bytes retained across Parse calls
	stack   jsonstack.Stack

	resolvedInputEncoding Encoding
	bomChecked            bool

	committed tracker // position at the start of the pending buffer
	tokStart  Location
	sawTop    bool

	runes []jsonlex.DecodedRune
	lens  []int
}

// NewParser creates a Parser with defaults installed: InputEncoding
// Unknown (auto-detect), OutputEncoding UTF8, all Allow* options false, no
// length caps, and no handlers registered.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		outputEncoding: UTF8,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.allocator == nil {
		p.allocator = DefaultAllocator
	}
	p.pending.Init(p.allocator)
	p.stack.Init(p.trackObjectMembers)
	p.resolvedInputEncoding = p.inputEncoding
	return p
}

// Free releases the Parser's internal buffers back to its Allocator. The
// Parser must not be used again afterward.
func (p *Parser) Free() error {
	if p.inHandler {
		return ErrReentrant
	}
	p.pending.Release()
	return nil
}

// Reset returns p to the Created lifecycle state, preserving its
// Allocator, settings, and registered handlers but discarding any
// in-progress parse state and latched error.
func (p *Parser) Reset() error {
	if p.inHandler {
		return ErrReentrant
	}
	p.pending.Reset()
	p.stack.Init(p.trackObjectMembers)
	p.phase = phaseCreated
	p.err = nil
	p.committed = tracker{}
	p.tokStart = Location{}
	p.resolvedInputEncoding = p.inputEncoding
	p.bomChecked = false
	p.sawTop = false
	return nil
}

// UserData returns the value most recently installed by WithUserData or
// SetUserData.
func (p *Parser) UserData() any { return p.userData }

// SetUserData replaces the Parser's user-data value. It may be called at
// any time, including from within a handler.
func (p *Parser) SetUserData(v any) { p.userData = v }

// InputEncoding returns the input encoding: the configured one until
// auto-detection has run, and the detected one afterwards. Unknown means
// auto-detect and has not resolved yet.
func (p *Parser) InputEncoding() Encoding { return p.resolvedInputEncoding }

// SetInputEncoding sets the input encoding. It fails once parsing has
// started.
func (p *Parser) SetInputEncoding(enc Encoding) error {
	if err := p.checkMutable(); err != nil {
		return err
	}
	p.inputEncoding = enc
	p.resolvedInputEncoding = enc
	return nil
}

// OutputEncoding returns the encoding strings and member names are
// delivered to handlers in.
func (p *Parser) OutputEncoding() Encoding { return p.outputEncoding }

// SetOutputEncoding sets the encoding strings and member names are
// delivered to handlers in, as raw bytes held in a Go string.
// UnknownEncoding is not legal here. Fails once parsing has started.
func (p *Parser) SetOutputEncoding(enc Encoding) error {
	if err := p.checkMutable(); err != nil {
		return err
	}
	if enc == UnknownEncoding {
		return errInvalidOutputEncoding
	}
	p.outputEncoding = enc
	return nil
}

// MaxOutputStringLength returns the configured cap, or 0 if unbounded.
func (p *Parser) MaxOutputStringLength() int { return p.maxOutputStringLength }

// SetMaxOutputStringLength sets the byte cap (in the output encoding) on
// any delivered string or member name. Fails once parsing has started.
func (p *Parser) SetMaxOutputStringLength(n int) error {
	if err := p.checkMutable(); err != nil {
		return err
	}
	p.maxOutputStringLength = n
	return nil
}

// MaxNumberLength returns the configured cap, or 0 if unbounded.
func (p *Parser) MaxNumberLength() int { return p.maxNumberLength }

// SetMaxNumberLength sets the ASCII-length cap on an accepted number
// literal. Fails once parsing has started.
func (p *Parser) SetMaxNumberLength(n int) error {
	if err := p.checkMutable(); err != nil {
		return err
	}
	p.maxNumberLength = n
	return nil
}

func (p *Parser) AllowBOM() bool                      { return p.allowBOM }
func (p *Parser) AllowComments() bool                 { return p.allowComments }
func (p *Parser) AllowTrailingCommas() bool           { return p.allowTrailingCommas }
func (p *Parser) AllowSpecialNumbers() bool           { return p.allowSpecialNumbers }
func (p *Parser) AllowHexNumbers() bool               { return p.allowHexNumbers }
func (p *Parser) ReplaceInvalidEncodingSequences() bool { return p.replaceInvalid }
func (p *Parser) TrackObjectMembers() bool            { return p.trackObjectMembers }

func (p *Parser) SetAllowBOM(v bool) error {
	if err := p.checkMutable(); err != nil {
		return err
	}
	p.allowBOM = v
	return nil
}

func (p *Parser) SetAllowComments(v bool) error {
	if err := p.checkMutable(); err != nil {
		return err
	}
	p.allowComments = v
	return nil
}

func (p *Parser) SetAllowTrailingCommas(v bool) error {
	if err := p.checkMutable(); err != nil {
		return err
	}
	p.allowTrailingCommas = v
	return nil
}

func (p *Parser) SetAllowSpecialNumbers(v bool) error {
	if err := p.checkMutable(); err != nil {
		return err
	}
	p.allowSpecialNumbers = v
	return nil
}

func (p *Parser) SetAllowHexNumbers(v bool) error {
	if err := p.checkMutable(); err != nil {
		return err
	}
	p.allowHexNumbers = v
	return nil
}

func (p *Parser) SetReplaceInvalidEncodingSequences(v bool) error {
	if err := p.checkMutable(); err != nil {
		return err
	}
	p.replaceInvalid = v
	return nil
}

func (p *Parser) SetTrackObjectMembers(v bool) error {
	if err := p.checkMutable(); err != nil {
		return err
	}
	p.trackObjectMembers = v
	p.stack.Init(v)
	return nil
}

// Handler getter/setter pairs. Handlers may be changed at any time,
// including from within a handler invocation.
func (p *Parser) NullHandler() NullHandler                    { return p.nullHandler }
func (p *Parser) SetNullHandler(h NullHandler)                 { p.nullHandler = h }
func (p *Parser) BooleanHandler() BooleanHandler               { return p.booleanHandler }
func (p *Parser) SetBooleanHandler(h BooleanHandler)            { p.booleanHandler = h }
func (p *Parser) StringHandler() StringHandler                 { return p.stringHandler }
func (p *Parser) SetStringHandler(h StringHandler)              { p.stringHandler = h }
func (p *Parser) NumberHandler() NumberHandler                  { return p.numberHandler }
func (p *Parser) SetNumberHandler(h NumberHandler)              { p.numberHandler = h }
func (p *Parser) RawNumberHandler() RawNumberHandler            { return p.rawNumberHandler }
func (p *Parser) SetRawNumberHandler(h RawNumberHandler)        { p.rawNumberHandler = h }
func (p *Parser) SpecialNumberHandler() SpecialNumberHandler    { return p.specialNumberHandler }
func (p *Parser) SetSpecialNumberHandler(h SpecialNumberHandler) { p.specialNumberHandler = h }
func (p *Parser) StartObjectHandler() StartObjectHandler        { return p.startObjectHandler }
func (p *Parser) SetStartObjectHandler(h StartObjectHandler)     { p.startObjectHandler = h }
func (p *Parser) EndObjectHandler() EndObjectHandler            { return p.endObjectHandler }
func (p *Parser) SetEndObjectHandler(h EndObjectHandler)         { p.endObjectHandler = h }
func (p *Parser) ObjectMemberHandler() ObjectMemberHandler      { return p.objectMemberHandler }
func (p *Parser) SetObjectMemberHandler(h ObjectMemberHandler)   { p.objectMemberHandler = h }
func (p *Parser) StartArrayHandler() StartArrayHandler          { return p.startArrayHandler }
func (p *Parser) SetStartArrayHandler(h StartArrayHandler)       { p.startArrayHandler = h }
func (p *Parser) EndArrayHandler() EndArrayHandler              { return p.endArrayHandler }
func (p *Parser) SetEndArrayHandler(h EndArrayHandler)           { p.endArrayHandler = h }
func (p *Parser) ArrayItemHandler() ArrayItemHandler            { return p.arrayItemHandler }
func (p *Parser) SetArrayItemHandler(h ArrayItemHandler)         { p.arrayItemHandler = h }

// StartedParsing reports whether the first non-empty Parse call has
// occurred.
func (p *Parser) StartedParsing() bool { return p.phase != phaseCreated }

// FinishedParsing reports whether the Parser has reached a terminal state
// (a complete top-level value, or a latched error).
func (p *Parser) FinishedParsing() bool {
	return p.phase == phaseFinishedOK || p.phase == phaseFinishedErr
}

// Error returns the latched error, or nil if none has occurred.
func (p *Parser) Error() *Error { return p.err }

// ErrorLocation returns the location of the latched error, or the zero
// Location if none has occurred.
func (p *Parser) ErrorLocation() Location {
	if p.err == nil {
		return Location{}
	}
	return p.err.Location
}

// TokenLocation returns the start location of the token currently being
// processed. It is only meaningful when called from within a handler.
func (p *Parser) TokenLocation() Location { return p.tokStart }

// InObjectFirstMember reports whether the object member currently being
// delivered to an ObjectMemberHandler is that object's first member. It is
// only meaningful when called from within an ObjectMemberHandler.
func (p *Parser) InObjectFirstMember() bool {
	_, _, firstPending, ok := p.stack.Top()
	return ok && firstPending
}

func (p *Parser) checkMutable() error {
	if p.inHandler || p.phase != phaseCreated {
		return ErrReentrant
	}
	return nil
}

func (p *Parser) fail(code ErrorCode, loc Location) error {
	e := &Error{Code: code, Location: loc}
	p.err = e
	p.phase = phaseFinishedErr
	return e
}

// Parse feeds the next chunk of input bytes. b may be nil only when
// len(b) == 0. isFinal asserts that no further bytes follow this call.
// Parse fails fast once an error has latched, and fails with ErrReentrant
// if called from within a handler.
func (p *Parser) Parse(b []byte, isFinal bool) error {
	if p.inHandler {
		return ErrReentrant
	}
	if p.phase == phaseFinishedErr || p.phase == phaseFinishedOK {
		return p.err
	}
	if len(b) == 0 && !isFinal {
		return nil
	}
	p.phase = phaseStarted
	if len(b) > 0 {
		p.pending.Append(b)
	}

	if !p.bomChecked {
		if done, err := p.resolveEncodingAndBOM(isFinal); err != nil {
			return err
		} else if !done {
			if isFinal {
				return p.fail(ErrorExpectedMoreTokens, Location{})
			}
			return nil
		}
	}
	return p.drive(isFinal)
}

// resolveEncodingAndBOM performs auto-detection (if InputEncoding is
// Unknown) and BOM consumption exactly once, the first time enough bytes
// are available. done is false while more bytes are still needed to
// decide.
func (p *Parser) resolveEncodingAndBOM(isFinal bool) (done bool, err error) {
	raw := p.pending.Bytes()
	enc := p.inputEncoding
	if enc == UnknownEncoding {
		detected, ok, failed := jsonenc.Detect(raw, isFinal)
		if failed {
			return false, p.fail(ErrorInvalidEncodingSequence, Location{})
		}
		if !ok {
			if isFinal && len(raw) == 0 {
				return false, nil // caller reports ExpectedMoreTokens
			}
			return false, nil
		}
		enc = detected
	}
	p.resolvedInputEncoding = enc

	r, size, incomplete, valid := jsonenc.DecodeRune(raw, jsonenc.Encoding(enc), isFinal, false)
	if incomplete {
		return false, nil
	}
	if valid && r == jsonenc.BOM {
		if !p.allowBOM {
			return false, p.fail(ErrorBOMNotAllowed, Location{})
		}
		p.compact(size)
		p.committed.advanceBytes(uint64(size))
	}
	p.bomChecked = true
	return true, nil
}

// drive decodes and lexes as many tokens as are available from the
// pending buffer, feeding each into the grammar state machine, until no
// further token can be resolved from the currently buffered bytes.
func (p *Parser) drive(isFinal bool) error {
	for {
		if p.phase == phaseFinishedErr || p.phase == phaseFinishedOK {
			return p.err
		}
		status := p.decodeAvailable(isFinal)
		switch status {
		case decodeNeedMore:
			return nil
		case decodeInvalid:
			return p.fail(ErrorInvalidEncodingSequence, p.locationAt(len(p.runes)))
		}

		// The lexer measures its UTF-8 accumulation; UTF-16 output can be
		// shorter than that, so there deliverString alone applies the cap.
		maxString := p.maxOutputStringLength
		if p.outputEncoding == UTF16LE || p.outputEncoding == UTF16BE {
			maxString = 0
		}
		opts := jsonlex.Options{
			AllowComments:       p.allowComments,
			AllowSpecialNumbers: p.allowSpecialNumbers,
			AllowHexNumbers:     p.allowHexNumbers,
			MaxStringLength:     maxString,
			MaxNumberLength:     p.maxNumberLength,
		}
		tok, start, consumed, lexStatus, errCode, errOffset := jsonlex.ScanToken(p.runes, isFinal, opts)
		switch lexStatus {
		case jsonlex.StatusNeedMore:
			return nil
		case jsonlex.StatusEOF:
			if p.sawTop {
				if isFinal {
					p.phase = phaseFinishedOK
				}
				return nil
			}
			return p.fail(ErrorExpectedMoreTokens, p.locationAt(len(p.runes)))
		case jsonlex.StatusError:
			return p.fail(mapLexError(errCode), p.locationAt(errOffset))
		}

		tokStart := p.locationAt(start)
		if p.sawTop {
			return p.fail(ErrorUnexpectedToken, tokStart)
		}
		p.tokStart = tokStart
		if err := p.accept(tok, tokStart); err != nil {
			return err
		}
		p.commit(consumed)
	}
}

type decodeStatus uint8

const (
	decodeOK decodeStatus = iota
	decodeNeedMore
	decodeInvalid
)

// decodeAvailable decodes the entire current pending buffer into p.runes
// (with parallel byte lengths in p.lens), per the "buffer and rescan"
// chunking strategy: the lexer always restarts scanning from index 0, so
// the full not-yet-consumed suffix must always be available to it.
func (p *Parser) decodeAvailable(isFinal bool) decodeStatus {
	raw := p.pending.Bytes()
	p.runes = p.runes[:0]
	p.lens = p.lens[:0]
	i := 0
	for i < len(raw) {
		r, size, incomplete, valid := jsonenc.DecodeRune(raw[i:], jsonenc.Encoding(p.resolvedInputEncoding), isFinal, p.replaceInvalid)
		if incomplete {
			return decodeNeedMore
		}
		if !valid && !p.replaceInvalid {
			return decodeInvalid
		}
		p.runes = append(p.runes, jsonlex.DecodedRune{R: r, Replaced: !valid})
		p.lens = append(p.lens, size)
		i += size
	}
	return decodeOK
}

// locationAt replays the tracker from the pending buffer's start (where
// p.committed sits) through the first n decoded runes, yielding the
// Location at that point. Depth always reflects the current stack depth.
func (p *Parser) locationAt(n int) Location {
	t := p.committed
	for i := 0; i < n && i < len(p.runes); i++ {
		t.advanceRune(p.runes[i].R, uint64(p.lens[i]))
	}
	loc := t.location()
	loc.Depth = uint64(p.stack.Depth())
	return loc
}

// commit advances the committed tracker and shrinks the pending buffer
// past the first n runes of the current decode batch (the token just
// accepted, including any leading whitespace/comments).
func (p *Parser) commit(n int) {
	consumedBytes := 0
	for i := 0; i < n && i < len(p.runes); i++ {
		p.committed.advanceRune(p.runes[i].R, uint64(p.lens[i]))
		consumedBytes += p.lens[i]
	}
	p.compact(consumedBytes)
}

func (p *Parser) compact(n int) {
	if n <= 0 {
		return
	}
	raw := p.pending.Bytes()
	if n > len(raw) {
		n = len(raw)
	}
	remaining := append([]byte(nil), raw[n:]...)
	p.pending.Reset()
	p.pending.Append(remaining)
}

func mapLexError(ec jsonlex.ErrorCode) ErrorCode {
	switch ec {
	case jsonlex.ErrUnknownToken:
		return ErrorUnknownToken
	case jsonlex.ErrIncompleteToken:
		return ErrorIncompleteToken
	case jsonlex.ErrUnescapedControlCharacter:
		return ErrorUnescapedControlCharacter
	case jsonlex.ErrInvalidEscapeSequence:
		return ErrorInvalidEscapeSequence
	case jsonlex.ErrUnpairedSurrogateEscapeSequence:
		return ErrorUnpairedSurrogateEscapeSequence
	case jsonlex.ErrTooLongString:
		return ErrorTooLongString
	case jsonlex.ErrInvalidNumber:
		return ErrorInvalidNumber
	case jsonlex.ErrTooLongNumber:
		return ErrorTooLongNumber
	default:
		return ErrorUnknownToken
	}
}

// accept runs one lexed token through the grammar state machine (C5),
// dispatching exactly one handler callback per accepted token.
func (p *Parser) accept(tok jsonlex.Token, tokStart Location) error {
	isObj, expect, firstPending, hasCtx := p.stack.Top()
	if !hasCtx {
		return p.acceptValue(tok, tokStart, valueModeTopLevel, false)
	}
	if isObj {
		switch expect {
		case jsonstack.ExpectKey:
			if tok.Kind == jsonlex.KindEndObject {
				if !firstPending && !p.allowTrailingCommas {
					return p.fail(ErrorUnexpectedToken, tokStart)
				}
				return p.closeContainer(tokStart, false)
			}
			if tok.Kind != jsonlex.KindString {
				return p.fail(ErrorUnexpectedToken, tokStart)
			}
			return p.acceptObjectMember(tok, tokStart, firstPending)
		case jsonstack.ExpectColon:
			if tok.Kind != jsonlex.KindColon {
				return p.fail(ErrorUnexpectedToken, tokStart)
			}
			p.stack.SetExpect(jsonstack.ExpectValue)
			return nil
		case jsonstack.ExpectValue:
			return p.acceptValue(tok, tokStart, valueModeObjectValue, false)
		case jsonstack.ExpectCommaOrEnd:
			if tok.Kind == jsonlex.KindEndObject {
				return p.closeContainer(tokStart, false)
			}
			if tok.Kind == jsonlex.KindComma {
				p.stack.SetExpect(jsonstack.ExpectKey)
				return nil
			}
			return p.fail(ErrorUnexpectedToken, tokStart)
		}
	} else {
		switch expect {
		case jsonstack.ExpectValue:
			if tok.Kind == jsonlex.KindEndArray {
				if !firstPending && !p.allowTrailingCommas {
					return p.fail(ErrorUnexpectedToken, tokStart)
				}
				return p.closeContainer(tokStart, true)
			}
			return p.acceptValue(tok, tokStart, valueModeArrayItem, firstPending)
		case jsonstack.ExpectCommaOrEnd:
			if tok.Kind == jsonlex.KindEndArray {
				return p.closeContainer(tokStart, true)
			}
			if tok.Kind == jsonlex.KindComma {
				p.stack.SetExpect(jsonstack.ExpectValue)
				return nil
			}
			return p.fail(ErrorUnexpectedToken, tokStart)
		}
	}
	return p.fail(ErrorUnexpectedToken, tokStart)
}

type valueMode uint8

const (
	valueModeTopLevel valueMode = iota
	valueModeObjectValue
	valueModeArrayItem
)

func (p *Parser) closeContainer(tokStart Location, isArray bool) error {
	if isArray {
		if p.endArrayHandler != nil {
			res := p.callEndArray()
			if res == Abort {
				return p.fail(ErrorAbortedByHandler, tokStart)
			}
		}
	} else {
		if p.endObjectHandler != nil {
			res := p.callEndObject()
			if res == Abort {
				return p.fail(ErrorAbortedByHandler, tokStart)
			}
		}
	}
	p.stack.Pop()
	loc := tokStart
	loc.Depth = uint64(p.stack.Depth())
	p.tokStart = loc
	p.completeValue()
	return nil
}

func (p *Parser) callEndArray() HandlerResult {
	p.inHandler = true
	res := p.endArrayHandler(p)
	p.inHandler = false
	return res
}

func (p *Parser) callEndObject() HandlerResult {
	p.inHandler = true
	res := p.endObjectHandler(p)
	p.inHandler = false
	return res
}

// completeValue marks the just-finished value as done: either the whole
// parse (top level) or the enclosing container's next expectation.
func (p *Parser) completeValue() {
	if p.stack.Empty() {
		p.sawTop = true
		return
	}
	p.stack.Advance(jsonstack.ExpectCommaOrEnd)
}

func (p *Parser) acceptObjectMember(tok jsonlex.Token, tokStart Location, isFirst bool) error {
	name, attrs, err := p.deliverString(tok, tokStart)
	if err != nil {
		return err
	}
	if p.trackObjectMembers {
		if p.stack.CheckMember(name) {
			return p.fail(ErrorDuplicateObjectMember, tokStart)
		}
	}
	result := Continue
	if p.objectMemberHandler != nil {
		p.inHandler = true
		result = p.objectMemberHandler(p, name, attrs)
		p.inHandler = false
	}
	switch result {
	case Abort:
		return p.fail(ErrorAbortedByHandler, tokStart)
	case TreatAsDuplicate:
		return p.fail(ErrorDuplicateObjectMember, tokStart)
	}
	_ = isFirst
	p.stack.SetExpect(jsonstack.ExpectColon)
	return nil
}

// acceptValue dispatches a value-position token: a scalar literal, string,
// number, or the opening of a nested container. firstItem is only
// meaningful in valueModeArrayItem.
func (p *Parser) acceptValue(tok jsonlex.Token, tokStart Location, mode valueMode, firstItem bool) error {
	if mode == valueModeArrayItem && p.arrayItemHandler != nil {
		p.inHandler = true
		res := p.arrayItemHandler(p, firstItem)
		p.inHandler = false
		if res == Abort {
			return p.fail(ErrorAbortedByHandler, tokStart)
		}
	}

	switch tok.Kind {
	case jsonlex.KindNull:
		if p.nullHandler != nil {
			p.inHandler = true
			res := p.nullHandler(p)
			p.inHandler = false
			if res == Abort {
				return p.fail(ErrorAbortedByHandler, tokStart)
			}
		}
		p.completeValue()
		return nil
	case jsonlex.KindTrue, jsonlex.KindFalse:
		if p.booleanHandler != nil {
			p.inHandler = true
			res := p.booleanHandler(p, tok.Kind == jsonlex.KindTrue)
			p.inHandler = false
			if res == Abort {
				return p.fail(ErrorAbortedByHandler, tokStart)
			}
		}
		p.completeValue()
		return nil
	case jsonlex.KindString:
		text, attrs, err := p.deliverString(tok, tokStart)
		if err != nil {
			return err
		}
		if p.stringHandler != nil {
			p.inHandler = true
			res := p.stringHandler(p, text, attrs)
			p.inHandler = false
			if res == Abort {
				return p.fail(ErrorAbortedByHandler, tokStart)
			}
		}
		p.completeValue()
		return nil
	case jsonlex.KindNumber:
		if p.rawNumberHandler != nil {
			p.inHandler = true
			res := p.rawNumberHandler(p, tok.Text, tok.NumberFlags)
			p.inHandler = false
			if res == Abort {
				return p.fail(ErrorAbortedByHandler, tokStart)
			}
		}
		if p.numberHandler != nil {
			v, ok := parseNumberText(tok.Text, tok.NumberFlags)
			if !ok {
				return p.fail(ErrorInvalidNumber, tokStart)
			}
			p.inHandler = true
			res := p.numberHandler(p, v, tok.NumberFlags)
			p.inHandler = false
			if res == Abort {
				return p.fail(ErrorAbortedByHandler, tokStart)
			}
		}
		p.completeValue()
		return nil
	case jsonlex.KindNaN, jsonlex.KindInfinity, jsonlex.KindNegInfinity:
		if p.specialNumberHandler != nil {
			var which SpecialNumber
			switch tok.Kind {
			case jsonlex.KindInfinity:
				which = Infinity
			case jsonlex.KindNegInfinity:
				which = NegativeInfinity
			default:
				which = NaN
			}
			p.inHandler = true
			res := p.specialNumberHandler(p, which)
			p.inHandler = false
			if res == Abort {
				return p.fail(ErrorAbortedByHandler, tokStart)
			}
		}
		p.completeValue()
		return nil
	case jsonlex.KindBeginObject:
		if p.startObjectHandler != nil {
			p.inHandler = true
			res := p.startObjectHandler(p)
			p.inHandler = false
			if res == Abort {
				return p.fail(ErrorAbortedByHandler, tokStart)
			}
		}
		p.stack.PushObject()
		return nil
	case jsonlex.KindBeginArray:
		if p.startArrayHandler != nil {
			p.inHandler = true
			res := p.startArrayHandler(p)
			p.inHandler = false
			if res == Abort {
				return p.fail(ErrorAbortedByHandler, tokStart)
			}
		}
		p.stack.PushArray()
		return nil
	default:
		return p.fail(ErrorUnexpectedToken, tokStart)
	}
}

// deliverString transcodes tok.Text (always decoded internally as a Go
// UTF-8 string) into the configured OutputEncoding's byte representation,
// held in a Go string, and checks it against MaxOutputStringLength.
func (p *Parser) deliverString(tok jsonlex.Token, tokStart Location) (string, StringAttributes, error) {
	var attrs StringAttributes
	if tok.ContainsNul {
		attrs |= ContainsNullCharacter
	}
	if tok.ContainsControl {
		attrs |= ContainsControlCharacter
	}
	if tok.ContainsNonASCII {
		attrs |= ContainsNonASCIICharacter
	}
	if tok.ContainsNonBMP {
		attrs |= ContainsNonBMPCharacter
	}
	if tok.ContainsReplaced {
		attrs |= ContainsReplacedCharacter
	}
	out := p.encodeOutput(tok.Text)
	if p.maxOutputStringLength > 0 && len(out) > p.maxOutputStringLength {
		return "", 0, p.fail(ErrorTooLongString, tokStart)
	}
	return out, attrs, nil
}

func (p *Parser) encodeOutput(s string) string {
	if p.outputEncoding == UTF8 || p.outputEncoding == UnknownEncoding {
		return s
	}
	var buf []byte
	for _, r := range s {
		buf = jsonenc.AppendRune(buf, jsonenc.Encoding(p.outputEncoding), r)
	}
	return string(buf)
}

// parseNumberText converts an already-validated ASCII number literal into
// a float64. Hex literals (integers only, per grammar) are parsed as
// unsigned integers and converted.
func parseNumberText(text string, flags NumberFlags) (float64, bool) {
	if flags&IsHex != 0 {
		digits := strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X")
		u, err := strconv.ParseUint(digits, 16, 64)
		if err != nil {
			return 0, false
		}
		return float64(u), true
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
