// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonstack implements the non-recursive container stack shared by
// the parser's grammar state machine and the writer's structural validator.
// Each open object or array is one bit-packed frame; nesting depth is
// bounded only by allocation success, never by host-language call
// recursion, since the stack lives on the heap.
package jsonstack

// Expect identifies what kind of token is legal next inside the container
// on top of the stack.
type Expect uint8

const (
	// ExpectValue means a JSON value (or, only when firstPending, the
	// container's closing token) is legal next.
	ExpectValue Expect = iota
	// ExpectKey means an object member name (or, only when firstPending,
	// '}') is legal next.
	ExpectKey
	// ExpectColon means ':' is legal next.
	ExpectColon
	// ExpectCommaOrEnd means ',' or the container's closing token is legal
	// next.
	ExpectCommaOrEnd
)

// entry is a bit-packed stack frame, generalizing the object/array tag and
// element count of the teacher's stateEntry with the first-item/
// first-member bit and expectation state this engine's grammar needs.
//
//	bit 63      isObject
//	bit 62      firstPending
//	bits 60-61  expect (Expect)
type entry uint64

const (
	bitIsObject     = 1 << 63
	bitFirstPending = 1 << 62
	shiftExpect     = 60
	maskExpect      = 0x3
)

func makeEntry(isObject bool, expect Expect, firstPending bool) entry {
	var e entry
	if isObject {
		e |= bitIsObject
	}
	if firstPending {
		e |= bitFirstPending
	}
	e |= entry(expect&maskExpect) << shiftExpect
	return e
}

func (e entry) isObject() bool     { return e&bitIsObject != 0 }
func (e entry) firstPending() bool { return e&bitFirstPending != 0 }
func (e entry) expect() Expect     { return Expect((e >> shiftExpect) & maskExpect) }

func (e entry) withExpect(x Expect) entry {
	return (e &^ (maskExpect << shiftExpect)) | entry(x&maskExpect)<<shiftExpect
}

func (e entry) withFirstPending(b bool) entry {
	if b {
		return e | bitFirstPending
	}
	return e &^ bitFirstPending
}

// Stack is a growable, heap-allocated stack of open object/array contexts.
// It is reused across parses/writes via Init rather than reallocated.
type Stack struct {
	frames  []entry
	members []map[string]struct{} // parallel to frames; nil unless tracking is on
	track   bool
}

// Init prepares s for use. When track is true, each pushed object frame is
// given a member-name set for duplicate detection.
func (s *Stack) Init(track bool) {
	s.track = track
	s.frames = s.frames[:0]
	s.members = s.members[:0]
}

// Depth reports the current container nesting depth.
func (s *Stack) Depth() int { return len(s.frames) }

// Empty reports whether the stack holds no open containers.
func (s *Stack) Empty() bool { return len(s.frames) == 0 }

// PushArray opens a new array context, initially expecting a value or the
// array's end.
func (s *Stack) PushArray() {
	s.frames = append(s.frames, makeEntry(false, ExpectValue, true))
	s.members = append(s.members, nil)
}

// PushObject opens a new object context, initially expecting a member name
// or the object's end. If member tracking is enabled, a fresh empty set is
// allocated lazily on the first inserted name.
func (s *Stack) PushObject() {
	s.frames = append(s.frames, makeEntry(true, ExpectKey, true))
	s.members = append(s.members, nil)
}

// Pop closes the top container. It is the caller's responsibility to have
// already validated that closing is legal.
func (s *Stack) Pop() {
	n := len(s.frames) - 1
	s.frames = s.frames[:n]
	s.members = s.members[:n]
}

// Top reports the tag, expectation, and first-pending bit of the top frame.
// ok is false if the stack is empty (top-level context).
func (s *Stack) Top() (isObject bool, expect Expect, firstPending bool, ok bool) {
	if len(s.frames) == 0 {
		return false, ExpectValue, false, false
	}
	e := s.frames[len(s.frames)-1]
	return e.isObject(), e.expect(), e.firstPending(), true
}

// Advance updates the top frame's expectation and clears firstPending (the
// container has now seen at least one item/member).
func (s *Stack) Advance(expect Expect) {
	n := len(s.frames) - 1
	s.frames[n] = s.frames[n].withExpect(expect).withFirstPending(false)
}

// SetExpect updates only the top frame's expectation, leaving firstPending
// untouched (used for the Key -> Colon -> Value chain inside one member,
// where "first member" status hasn't changed).
func (s *Stack) SetExpect(expect Expect) {
	n := len(s.frames) - 1
	s.frames[n] = s.frames[n].withExpect(expect)
}

// CheckMember looks up name (raw output-encoded bytes, including any
// embedded NUL) in the top object's member set. If absent, it is inserted
// and CheckMember returns false (not a duplicate). If present, it returns
// true without modifying the set. CheckMember must only be called when
// tracking is enabled and the top frame is an object.
func (s *Stack) CheckMember(name string) (duplicate bool) {
	n := len(s.frames) - 1
	set := s.members[n]
	if set == nil {
		set = make(map[string]struct{})
		s.members[n] = set
	}
	if _, ok := set[name]; ok {
		return true
	}
	set[name] = struct{}{}
	return false
}
