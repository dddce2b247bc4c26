// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonsax

// ParserOption configures a Parser at construction time, the same
// options-slice pattern jsontext.NewEncoder uses.
type ParserOption func(*Parser)

// WithParserAllocator installs a custom Allocator. The default is
// DefaultAllocator.
func WithParserAllocator(a Allocator) ParserOption {
	return func(p *Parser) { p.allocator = a }
}

// WithUserData sets the initial user-data value, retrievable via UserData.
func WithUserData(v any) ParserOption {
	return func(p *Parser) { p.userData = v }
}

// WithInputEncoding sets the input encoding. UnknownEncoding (the default)
// means auto-detect from the first bytes of input.
func WithInputEncoding(enc Encoding) ParserOption {
	return func(p *Parser) { p.inputEncoding = enc }
}

// WithOutputEncoding sets the encoding strings delivered to handlers are
// encoded in. The default is UTF8; UnknownEncoding is invalid here.
func WithOutputEncoding(enc Encoding) ParserOption {
	return func(p *Parser) { p.outputEncoding = enc }
}

// WithMaxOutputStringLength bounds the byte length (in the output
// encoding) of any delivered string or member name. 0 means unbounded,
// the default.
func WithMaxOutputStringLength(n int) ParserOption {
	return func(p *Parser) { p.maxOutputStringLength = n }
}

// WithMaxNumberLength bounds the ASCII length of an accepted number
// literal. 0 means unbounded, the default.
func WithMaxNumberLength(n int) ParserOption {
	return func(p *Parser) { p.maxNumberLength = n }
}

// WithAllowBOM permits a leading byte-order mark, which RFC 4627 forbids.
func WithAllowBOM(allow bool) ParserOption {
	return func(p *Parser) { p.allowBOM = allow }
}

// WithAllowComments permits `//` and `/* */` comments between tokens.
func WithAllowComments(allow bool) ParserOption {
	return func(p *Parser) { p.allowComments = allow }
}

// WithAllowTrailingCommas permits a trailing comma before a closing `]`
// or `}`.
func WithAllowTrailingCommas(allow bool) ParserOption {
	return func(p *Parser) { p.allowTrailingCommas = allow }
}

// WithAllowSpecialNumbers permits the `NaN`, `Infinity`, and `-Infinity`
// literals.
func WithAllowSpecialNumbers(allow bool) ParserOption {
	return func(p *Parser) { p.allowSpecialNumbers = allow }
}

// WithAllowHexNumbers permits `0x`/`0X`-prefixed hexadecimal numbers.
func WithAllowHexNumbers(allow bool) ParserOption {
	return func(p *Parser) { p.allowHexNumbers = allow }
}

// WithReplaceInvalidEncodingSequences switches decoding from strict
// (InvalidEncodingSequence on any ill-formed sequence) to replacement
// (U+FFFD per Unicode 5.2 §3.9's maximal-subpart rule).
func WithReplaceInvalidEncodingSequences(replace bool) ParserOption {
	return func(p *Parser) { p.replaceInvalid = replace }
}

// WithTrackObjectMembers enables per-object duplicate member-name
// detection via a member-name set maintained on the context stack.
func WithTrackObjectMembers(track bool) ParserOption {
	return func(p *Parser) { p.trackObjectMembers = track }
}

// WriterOption configures a Writer at construction time.
type WriterOption func(*Writer)

// WithWriterAllocator installs a custom Allocator for a Writer.
func WithWriterAllocator(a Allocator) WriterOption {
	return func(w *Writer) { w.allocator = a }
}

// WithWriterUserData sets the initial user-data value for a Writer.
func WithWriterUserData(v any) WriterOption {
	return func(w *Writer) { w.userData = v }
}

// WithWriterOutputEncoding sets the encoding the Writer emits bytes in.
// The default is UTF8.
func WithWriterOutputEncoding(enc Encoding) WriterOption {
	return func(w *Writer) { w.outputEncoding = enc }
}

// WithUseCRLF makes WriteNewLine emit CRLF instead of a bare LF.
func WithUseCRLF(useCRLF bool) WriterOption {
	return func(w *Writer) { w.useCRLF = useCRLF }
}

// WithWriterReplaceInvalidEncodingSequences switches WriteString's
// decoding of its input from strict to replacement mode.
func WithWriterReplaceInvalidEncodingSequences(replace bool) WriterOption {
	return func(w *Writer) { w.replaceInvalid = replace }
}

// WithWriterAllowHexNumbers permits WriteNumber to accept 0x/0X-prefixed
// integer literals.
func WithWriterAllowHexNumbers(allow bool) WriterOption {
	return func(w *Writer) { w.allowHexNumbers = allow }
}
