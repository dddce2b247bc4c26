// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonsax

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// event records one callback firing, used to assert the shape of a parse
// without building a DOM.
type event struct {
	kind string
	val  string
}

func collect(t *testing.T, p *Parser) *[]event {
	t.Helper()
	events := &[]event{}
	p.SetNullHandler(func(p *Parser) HandlerResult {
		*events = append(*events, event{"null", ""})
		return Continue
	})
	p.SetBooleanHandler(func(p *Parser, v bool) HandlerResult {
		s := "false"
		if v {
			s = "true"
		}
		*events = append(*events, event{"bool", s})
		return Continue
	})
	p.SetStringHandler(func(p *Parser, text string, _ StringAttributes) HandlerResult {
		*events = append(*events, event{"string", text})
		return Continue
	})
	p.SetRawNumberHandler(func(p *Parser, text string, _ NumberFlags) HandlerResult {
		*events = append(*events, event{"number", text})
		return Continue
	})
	p.SetStartObjectHandler(func(p *Parser) HandlerResult {
		*events = append(*events, event{"startObject", ""})
		return Continue
	})
	p.SetEndObjectHandler(func(p *Parser) HandlerResult {
		*events = append(*events, event{"endObject", ""})
		return Continue
	})
	p.SetObjectMemberHandler(func(p *Parser, name string, _ StringAttributes) HandlerResult {
		first := "0"
		if p.InObjectFirstMember() {
			first = "1"
		}
		*events = append(*events, event{"member:" + first, name})
		return Continue
	})
	p.SetStartArrayHandler(func(p *Parser) HandlerResult {
		*events = append(*events, event{"startArray", ""})
		return Continue
	})
	p.SetEndArrayHandler(func(p *Parser) HandlerResult {
		*events = append(*events, event{"endArray", ""})
		return Continue
	})
	p.SetArrayItemHandler(func(p *Parser, isFirstItem bool) HandlerResult {
		first := "0"
		if isFirstItem {
			first = "1"
		}
		*events = append(*events, event{"item:" + first, ""})
		return Continue
	})
	return events
}

func TestParseScalars(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want event
	}{
		{"null", event{"null", ""}},
		{"true", event{"bool", "true"}},
		{"false", event{"bool", "false"}},
		{`"hi"`, event{"string", "hi"}},
		{"123", event{"number", "123"}},
		{"-12.5e3", event{"number", "-12.5e3"}},
	} {
		p := NewParser()
		events := collect(t, p)
		err := p.Parse([]byte(tt.in), true)
		require.NoError(t, err, tt.in)
		require.Equal(t, []event{tt.want}, *events, tt.in)
	}
}

func TestParseObjectAndArray(t *testing.T) {
	p := NewParser()
	events := collect(t, p)
	err := p.Parse([]byte(`{"a":1,"b":[true,false]}`), true)
	require.NoError(t, err)
	require.Equal(t, []event{
		{"startObject", ""},
		{"member:1", "a"},
		{"number", "1"},
		{"member:0", "b"},
		{"startArray", ""},
		{"item:1", ""},
		{"bool", "true"},
		{"item:0", ""},
		{"bool", "false"},
		{"endArray", ""},
		{"endObject", ""},
	}, *events)
}

// TestParseChunkingInvariance feeds the same document one byte at a time
// and confirms the observed event stream matches a single whole-buffer
// parse, per the buffer-and-rescan guarantee.
func TestParseChunkingInvariance(t *testing.T) {
	doc := `{"name":"widget","count":3,"tags":["a","b","c"],"ok":true,"extra":null}`

	whole := NewParser()
	wholeEvents := collect(t, whole)
	require.NoError(t, whole.Parse([]byte(doc), true))

	chunked := NewParser()
	chunkedEvents := collect(t, chunked)
	for i := 0; i < len(doc); i++ {
		require.NoError(t, chunked.Parse([]byte{doc[i]}, i == len(doc)-1))
	}
	require.Equal(t, *wholeEvents, *chunkedEvents)
}

func TestParseRejectsTrailingCommaByDefault(t *testing.T) {
	p := NewParser()
	collect(t, p)
	err := p.Parse([]byte(`[1,2,]`), true)
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, ErrorUnexpectedToken, e.Code)
}

func TestParseAllowsTrailingCommaWhenEnabled(t *testing.T) {
	p := NewParser(WithAllowTrailingCommas(true))
	events := collect(t, p)
	err := p.Parse([]byte(`[1,2,]`), true)
	require.NoError(t, err)
	require.Equal(t, []event{
		{"startArray", ""},
		{"item:1", ""}, {"number", "1"},
		{"item:0", ""}, {"number", "2"},
		{"endArray", ""},
	}, *events)
}

func TestParseDuplicateObjectMemberRejected(t *testing.T) {
	p := NewParser(WithTrackObjectMembers(true))
	collect(t, p)
	err := p.Parse([]byte(`{"a":1,"a":2}`), true)
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, ErrorDuplicateObjectMember, e.Code)
}

func TestParseObjectMemberHandlerCanTreatAsDuplicate(t *testing.T) {
	p := NewParser()
	seen := map[string]bool{}
	p.SetObjectMemberHandler(func(p *Parser, name string, _ StringAttributes) HandlerResult {
		if seen[name] {
			return TreatAsDuplicate
		}
		seen[name] = true
		return Continue
	})
	p.SetNumberHandler(func(p *Parser, v float64, _ NumberFlags) HandlerResult { return Continue })
	err := p.Parse([]byte(`{"a":1,"a":2}`), true)
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, ErrorDuplicateObjectMember, e.Code)
}

func TestParseHandlerAbort(t *testing.T) {
	p := NewParser()
	p.SetNumberHandler(func(p *Parser, v float64, _ NumberFlags) HandlerResult { return Abort })
	err := p.Parse([]byte(`42`), true)
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, ErrorAbortedByHandler, e.Code)
}

func TestParseRejectsUnescapedControlCharacter(t *testing.T) {
	p := NewParser()
	collect(t, p)
	err := p.Parse([]byte("\"a\x01b\""), true)
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, ErrorUnescapedControlCharacter, e.Code)
}

func TestParseRejectsUnpairedSurrogateEscape(t *testing.T) {
	p := NewParser()
	collect(t, p)
	err := p.Parse([]byte(`"\ud800"`), true)
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, ErrorUnpairedSurrogateEscapeSequence, e.Code)
}

func TestParseAcceptsPairedSurrogateEscape(t *testing.T) {
	p := NewParser()
	events := collect(t, p)
	err := p.Parse([]byte("\"\\ud83d\\ude00\""), true)
	require.NoError(t, err)
	require.Equal(t, []event{{"string", "😀"}}, *events)
}

func TestParseEncodingDetection(t *testing.T) {
	for _, tt := range []struct {
		name string
		in   []byte
		want Encoding
	}{
		{"utf8", []byte(`1`), UTF8},
		{"utf16le", []byte{'1', 0x00}, UTF16LE},
		{"utf16be", []byte{0x00, '1'}, UTF16BE},
		{"utf32le", []byte{'1', 0x00, 0x00, 0x00}, UTF32LE},
		{"utf32be", []byte{0x00, 0x00, 0x00, '1'}, UTF32BE},
	} {
		p := NewParser()
		events := collect(t, p)
		err := p.Parse(tt.in, true)
		require.NoError(t, err, tt.name)
		require.Equal(t, tt.want, p.InputEncoding(), tt.name)
		require.Equal(t, []event{{"number", "1"}}, *events, tt.name)
	}
}

func TestParseRejectsBOMByDefault(t *testing.T) {
	p := NewParser()
	collect(t, p)
	err := p.Parse([]byte("\xEF\xBB\xBF1"), true)
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, ErrorBOMNotAllowed, e.Code)
}

func TestParseAllowsBOMWhenEnabled(t *testing.T) {
	p := NewParser(WithAllowBOM(true))
	events := collect(t, p)
	err := p.Parse([]byte("\xEF\xBB\xBF1"), true)
	require.NoError(t, err)
	require.Equal(t, []event{{"number", "1"}}, *events)
}

func TestParseInvalidEncodingSequenceReplacement(t *testing.T) {
	p := NewParser(WithReplaceInvalidEncodingSequences(true))
	events := collect(t, p)
	// 0xFF is never valid as a UTF-8 lead byte; its maximal subpart is
	// itself, so it is replaced by one U+FFFD.
	err := p.Parse([]byte("\"\xff\""), true)
	require.NoError(t, err)
	require.Equal(t, []event{{"string", "�"}}, *events)
}

func TestParseInvalidEncodingSequenceStrict(t *testing.T) {
	p := NewParser()
	collect(t, p)
	err := p.Parse([]byte("\"\xff\""), true)
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, ErrorInvalidEncodingSequence, e.Code)
}

func TestParseSpecialNumbers(t *testing.T) {
	p := NewParser(WithAllowSpecialNumbers(true))
	var got []SpecialNumber
	p.SetSpecialNumberHandler(func(p *Parser, which SpecialNumber) HandlerResult {
		got = append(got, which)
		return Continue
	})
	err := p.Parse([]byte(`[NaN,Infinity,-Infinity]`), true)
	require.NoError(t, err)
	require.Equal(t, []SpecialNumber{NaN, Infinity, NegativeInfinity}, got)
}

func TestParseComments(t *testing.T) {
	p := NewParser(WithAllowComments(true))
	events := collect(t, p)
	err := p.Parse([]byte("// leading\n[1, /* inline */ 2]\n"), true)
	require.NoError(t, err)
	require.Equal(t, []event{
		{"startArray", ""},
		{"item:1", ""}, {"number", "1"},
		{"item:0", ""}, {"number", "2"},
		{"endArray", ""},
	}, *events)
}

func TestParseErrorIsSyntaxError(t *testing.T) {
	p := NewParser()
	collect(t, p)
	err := p.Parse([]byte(`{`), true)
	require.ErrorIs(t, err, ErrSyntax)
}

func TestParseReentrantCallFails(t *testing.T) {
	p := NewParser()
	var inner error
	p.SetNullHandler(func(p *Parser) HandlerResult {
		inner = p.Parse([]byte("null"), true)
		return Continue
	})
	require.NoError(t, p.Parse([]byte("null"), true))
	require.ErrorIs(t, inner, ErrReentrant)
}

func TestParseResetAllowsReuse(t *testing.T) {
	p := NewParser()
	collect(t, p)
	require.Error(t, p.Parse([]byte(`{`), true))
	require.NoError(t, p.Reset())
	events := collect(t, p)
	require.NoError(t, p.Parse([]byte(`1`), true))
	require.Equal(t, []event{{"number", "1"}}, *events)
}
