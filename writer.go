// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonsax

import (
	"github.com/go-jsonsax/jsonsax/internal/jsonbuf"
	"github.com/go-jsonsax/jsonsax/internal/jsonenc"
	"github.com/go-jsonsax/jsonsax/internal/jsonlex"
	"github.com/go-jsonsax/jsonsax/internal/jsonstack"
)

// Writer accepts structural calls (WriteNull, WriteString, StartObject,
// ...) describing one top-level JSON value and emits encoded bytes through
// a registered OutputHandler. It mirrors Parser's grammar state machine
// (C5) with a validator (C6) gating the same four expectation states, and
// shares the encoding pipeline (C3) in reverse. Not safe for concurrent
// use; handlers may not call back into any mutating method of the same
// Writer.
type Writer struct {
	allocator Allocator
	userData  any

	outputEncoding  Encoding
	useCRLF         bool
	replaceInvalid  bool
	allowHexNumbers bool

	outputHandler OutputHandler

	phase     phase
	inHandler bool
	err       *Error

	stack    jsonstack.Stack
	scratch  jsonbuf.Buffer
	outBytes uint64 // total bytes emitted, used as Location.Byte
	sawTop   bool
}

// NewWriter creates a Writer with defaults installed: OutputEncoding UTF8,
// UseCRLF false, ReplaceInvalidEncodingSequences false, and no
// OutputHandler registered.
func NewWriter(opts ...WriterOption) *Writer {
	w := &Writer{
		outputEncoding: UTF8,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.allocator == nil {
		w.allocator = DefaultAllocator
	}
	w.scratch.Init(w.allocator)
	w.stack.Init(false)
	return w
}

// Free releases the Writer's internal buffers back to its Allocator. The
// Writer must not be used again afterward.
func (w *Writer) Free() error {
	if w.inHandler {
		return ErrReentrant
	}
	w.scratch.Release()
	return nil
}

// Reset returns w to the Created lifecycle state, preserving its
// Allocator, settings, and OutputHandler but discarding in-progress state
// and any latched error.
func (w *Writer) Reset() error {
	if w.inHandler {
		return ErrReentrant
	}
	w.stack.Init(false)
	w.scratch.Reset()
	w.phase = phaseCreated
	w.err = nil
	w.outBytes = 0
	w.sawTop = false
	return nil
}

func (w *Writer) UserData() any           { return w.userData }
func (w *Writer) SetUserData(v any)       { w.userData = v }
func (w *Writer) OutputEncoding() Encoding { return w.outputEncoding }

func (w *Writer) SetOutputEncoding(enc Encoding) error {
	if err := w.checkMutable(); err != nil {
		return err
	}
	if enc == UnknownEncoding {
		return errInvalidOutputEncoding
	}
	w.outputEncoding = enc
	return nil
}

func (w *Writer) UseCRLF() bool { return w.useCRLF }

func (w *Writer) SetUseCRLF(v bool) error {
	if err := w.checkMutable(); err != nil {
		return err
	}
	w.useCRLF = v
	return nil
}

func (w *Writer) ReplaceInvalidEncodingSequences() bool { return w.replaceInvalid }

func (w *Writer) SetReplaceInvalidEncodingSequences(v bool) error {
	if err := w.checkMutable(); err != nil {
		return err
	}
	w.replaceInvalid = v
	return nil
}

// AllowHexNumbers reports whether WriteNumber accepts 0x/0X-prefixed
// integer literals, mirroring the parser's grammar option (C7 reuses the
// same DFA as C4).
func (w *Writer) AllowHexNumbers() bool { return w.allowHexNumbers }

func (w *Writer) SetAllowHexNumbers(v bool) error {
	if err := w.checkMutable(); err != nil {
		return err
	}
	w.allowHexNumbers = v
	return nil
}

func (w *Writer) OutputHandler() OutputHandler     { return w.outputHandler }
func (w *Writer) SetOutputHandler(h OutputHandler) { w.outputHandler = h }

// StartedWriting reports whether the first structural call has occurred.
func (w *Writer) StartedWriting() bool { return w.phase != phaseCreated }

// FinishedWriting reports whether the Writer has completed its top-level
// value or latched an error.
func (w *Writer) FinishedWriting() bool {
	return w.phase == phaseFinishedOK || w.phase == phaseFinishedErr
}

// Error returns the latched error, or nil if none has occurred.
func (w *Writer) Error() *Error { return w.err }

// ErrorLocation returns the location of the latched error. Line and
// Column are not meaningful for a Writer (there is no input byte stream);
// Byte is the cumulative count of bytes emitted before the failing call,
// and Depth is the container nesting at the time.
func (w *Writer) ErrorLocation() Location {
	if w.err == nil {
		return Location{}
	}
	return w.err.Location
}

func (w *Writer) checkMutable() error {
	if w.inHandler || w.phase != phaseCreated {
		return ErrReentrant
	}
	return nil
}

func (w *Writer) fail(code ErrorCode) error {
	e := &Error{Code: code, Location: Location{Byte: w.outBytes, Depth: uint64(w.stack.Depth())}}
	w.err = e
	w.phase = phaseFinishedErr
	return e
}

// emitQuoted transcodes and flushes s (a fully decoded Unicode string to
// be JSON-escaped) through the output encoding and OutputHandler.
func (w *Writer) emitQuoted(s string) error {
	w.scratch.Reset()
	w.scratch.Append(jsonenc.AppendQuotedString(nil, jsonenc.Encoding(w.outputEncoding), s))
	return w.flush()
}

// emitASCII transcodes and flushes the ASCII text s (structural
// punctuation, literals, or number text) unescaped through the output
// encoding.
func (w *Writer) emitASCII(s string) error {
	w.scratch.Reset()
	w.scratch.Append(jsonenc.AppendASCII(nil, jsonenc.Encoding(w.outputEncoding), s))
	return w.flush()
}

func (w *Writer) flush() error {
	buf := w.scratch.Bytes()
	if w.outputHandler != nil {
		w.inHandler = true
		res := w.outputHandler(w, buf)
		w.inHandler = false
		if res == Abort {
			return w.fail(ErrorAbortedByHandler)
		}
	}
	w.outBytes += uint64(len(buf))
	return nil
}

func (w *Writer) beginCall() error {
	if w.inHandler {
		return ErrReentrant
	}
	if w.phase == phaseFinishedErr {
		return w.err
	}
	w.phase = phaseStarted
	return nil
}

// checkValueLegal validates that a value-shaped call (Null, Boolean,
// String, Number, SpecialNumber, StartObject, StartArray) is legal in the
// current state, per the table in SPEC_FULL.md §4.5. It returns only an
// error; array items and object values are admitted by the same rule.
func (w *Writer) checkValueLegal() error {
	if w.sawTop {
		return w.fail(ErrorUnexpectedToken)
	}
	isObj, expect, _, hasCtx := w.stack.Top()
	if !hasCtx {
		return nil
	}
	if isObj {
		if expect != jsonstack.ExpectValue {
			return w.fail(ErrorUnexpectedToken)
		}
		return nil
	}
	if expect != jsonstack.ExpectValue {
		return w.fail(ErrorUnexpectedToken)
	}
	return nil
}

// completeValue mirrors Parser.completeValue: the just-written value is
// either the whole document (top level) or advances the enclosing
// container to its comma-or-end expectation.
func (w *Writer) completeValue() {
	if w.stack.Empty() {
		w.sawTop = true
		w.phase = phaseFinishedOK
		return
	}
	w.stack.Advance(jsonstack.ExpectCommaOrEnd)
}

// WriteNull emits the `null` literal.
func (w *Writer) WriteNull() error {
	if err := w.beginCall(); err != nil {
		return err
	}
	if err := w.checkValueLegal(); err != nil {
		return err
	}
	if err := w.emitASCII("null"); err != nil {
		return err
	}
	w.completeValue()
	return nil
}

// WriteBoolean emits `true` or `false`.
func (w *Writer) WriteBoolean(v bool) error {
	if err := w.beginCall(); err != nil {
		return err
	}
	if err := w.checkValueLegal(); err != nil {
		return err
	}
	text := "false"
	if v {
		text = "true"
	}
	if err := w.emitASCII(text); err != nil {
		return err
	}
	w.completeValue()
	return nil
}

// WriteSpecialNumber emits `NaN`, `Infinity`, or `-Infinity`.
func (w *Writer) WriteSpecialNumber(which SpecialNumber) error {
	if err := w.beginCall(); err != nil {
		return err
	}
	if err := w.checkValueLegal(); err != nil {
		return err
	}
	var text string
	switch which {
	case Infinity:
		text = "Infinity"
	case NegativeInfinity:
		text = "-Infinity"
	default:
		text = "NaN"
	}
	if err := w.emitASCII(text); err != nil {
		return err
	}
	w.completeValue()
	return nil
}

// WriteString decodes data (encoded as inputEncoding) per the same
// validate-or-replace rules the Parser uses, then emits it as a
// JSON-escaped string literal in the Writer's OutputEncoding.
func (w *Writer) WriteString(data []byte, inputEncoding Encoding) error {
	if err := w.beginCall(); err != nil {
		return err
	}
	isObj, expect, _, hasCtx := w.stack.Top()
	isKeyPosition := hasCtx && isObj && expect == jsonstack.ExpectKey
	if !isKeyPosition {
		if err := w.checkValueLegal(); err != nil {
			return err
		}
	}
	decoded, ok := w.decodeAll(data, inputEncoding)
	if !ok {
		return w.fail(ErrorInvalidEncodingSequence)
	}
	if err := w.emitQuoted(decoded); err != nil {
		return err
	}
	if isKeyPosition {
		w.stack.SetExpect(jsonstack.ExpectColon)
		return nil
	}
	w.completeValue()
	return nil
}

// decodeAll fully decodes data (in its entirety; Writer calls are not
// chunked the way Parser.Parse is) as inputEncoding, honoring
// ReplaceInvalidEncodingSequences.
func (w *Writer) decodeAll(data []byte, inputEncoding Encoding) (string, bool) {
	var b []byte
	i := 0
	for i < len(data) {
		r, size, _, valid := jsonenc.DecodeRune(data[i:], jsonenc.Encoding(inputEncoding), true, w.replaceInvalid)
		if !valid && !w.replaceInvalid {
			return "", false
		}
		b = jsonenc.AppendRune(b, jsonenc.UTF8, r)
		if size == 0 {
			size = 1
		}
		i += size
	}
	return string(b), true
}

// WriteNumber validates asciiText as a number literal (C7) and, if valid,
// emits it verbatim (transcoded to the output encoding); no bytes are
// written on failure.
func (w *Writer) WriteNumber(asciiText string) error {
	if err := w.beginCall(); err != nil {
		return err
	}
	if err := w.checkValueLegal(); err != nil {
		return err
	}
	if _, ok := jsonlex.ValidateNumber(asciiText, w.allowHexNumbers); !ok {
		return w.fail(ErrorInvalidNumber)
	}
	if err := w.emitASCII(asciiText); err != nil {
		return err
	}
	w.completeValue()
	return nil
}

// StartObject emits `{` and opens a new object context.
func (w *Writer) StartObject() error {
	if err := w.beginCall(); err != nil {
		return err
	}
	if err := w.checkValueLegal(); err != nil {
		return err
	}
	if err := w.emitASCII("{"); err != nil {
		return err
	}
	w.stack.PushObject()
	return nil
}

// EndObject emits `}`, closing the innermost object context.
func (w *Writer) EndObject() error {
	if err := w.beginCall(); err != nil {
		return err
	}
	isObj, expect, firstPending, hasCtx := w.stack.Top()
	if !hasCtx || !isObj {
		return w.fail(ErrorUnexpectedToken)
	}
	legal := (expect == jsonstack.ExpectKey && firstPending) ||
		expect == jsonstack.ExpectCommaOrEnd
	if !legal {
		return w.fail(ErrorUnexpectedToken)
	}
	if err := w.emitASCII("}"); err != nil {
		return err
	}
	w.stack.Pop()
	w.completeValue()
	return nil
}

// StartArray emits `[` and opens a new array context.
func (w *Writer) StartArray() error {
	if err := w.beginCall(); err != nil {
		return err
	}
	if err := w.checkValueLegal(); err != nil {
		return err
	}
	if err := w.emitASCII("["); err != nil {
		return err
	}
	w.stack.PushArray()
	return nil
}

// EndArray emits `]`, closing the innermost array context.
func (w *Writer) EndArray() error {
	if err := w.beginCall(); err != nil {
		return err
	}
	isObj, expect, firstPending, hasCtx := w.stack.Top()
	if !hasCtx || isObj {
		return w.fail(ErrorUnexpectedToken)
	}
	legal := (expect == jsonstack.ExpectValue && firstPending) ||
		expect == jsonstack.ExpectCommaOrEnd
	if !legal {
		return w.fail(ErrorUnexpectedToken)
	}
	if err := w.emitASCII("]"); err != nil {
		return err
	}
	w.stack.Pop()
	w.completeValue()
	return nil
}

// Colon emits `:`, legal only directly after an object key.
func (w *Writer) Colon() error {
	if err := w.beginCall(); err != nil {
		return err
	}
	isObj, expect, _, hasCtx := w.stack.Top()
	if !hasCtx || !isObj || expect != jsonstack.ExpectColon {
		return w.fail(ErrorUnexpectedToken)
	}
	if err := w.emitASCII(":"); err != nil {
		return err
	}
	w.stack.SetExpect(jsonstack.ExpectValue)
	return nil
}

// Comma emits `,`, legal only after at least one member or item has been
// written in the innermost container.
func (w *Writer) Comma() error {
	if err := w.beginCall(); err != nil {
		return err
	}
	isObj, expect, _, hasCtx := w.stack.Top()
	if !hasCtx || expect != jsonstack.ExpectCommaOrEnd {
		return w.fail(ErrorUnexpectedToken)
	}
	if err := w.emitASCII(","); err != nil {
		return err
	}
	if isObj {
		w.stack.SetExpect(jsonstack.ExpectKey)
	} else {
		w.stack.SetExpect(jsonstack.ExpectValue)
	}
	return nil
}

// WriteSpace emits n ASCII spaces. Permitted at any time, including after
// the top-level value has been completed.
func (w *Writer) WriteSpace(n int) error {
	if err := w.beginCall(); err != nil {
		return err
	}
	if n <= 0 {
		return nil
	}
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = ' '
	}
	return w.emitASCII(string(buf))
}

// WriteNewLine emits LF, or CRLF when UseCRLF is set. Permitted at any
// time, including after the top-level value has been completed.
func (w *Writer) WriteNewLine() error {
	if err := w.beginCall(); err != nil {
		return err
	}
	if w.useCRLF {
		return w.emitASCII("\r\n")
	}
	return w.emitASCII("\n")
}
