// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonstack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArrayTransitions(t *testing.T) {
	var s Stack
	s.Init(false)
	s.PushArray()
	isObject, expect, first, ok := s.Top()
	require.True(t, ok)
	require.False(t, isObject)
	require.Equal(t, ExpectValue, expect)
	require.True(t, first)

	s.Advance(ExpectCommaOrEnd)
	_, expect, first, _ = s.Top()
	require.Equal(t, ExpectCommaOrEnd, expect)
	require.False(t, first)

	s.SetExpect(ExpectValue)
	_, expect, first, _ = s.Top()
	require.Equal(t, ExpectValue, expect)
	require.False(t, first) // SetExpect preserves firstPending

	s.Pop()
	require.True(t, s.Empty())
}

func TestObjectMemberDuplicates(t *testing.T) {
	var s Stack
	s.Init(true)
	s.PushObject()

	require.False(t, s.CheckMember("x"))
	require.True(t, s.CheckMember("x"))
	require.False(t, s.CheckMember("y"))

	s.Pop()
	require.Equal(t, 0, s.Depth())
}

func TestNestedDepth(t *testing.T) {
	var s Stack
	s.Init(false)
	s.PushObject()
	s.PushArray()
	s.PushObject()
	require.Equal(t, 3, s.Depth())
	isObject, _, _, _ := s.Top()
	require.True(t, isObject)
	s.Pop()
	isObject, _, _, _ = s.Top()
	require.False(t, isObject)
	s.Pop()
	s.Pop()
	require.True(t, s.Empty())
}

func TestMemberSetScopedPerObject(t *testing.T) {
	var s Stack
	s.Init(true)
	s.PushObject()
	require.False(t, s.CheckMember("x"))
	s.PushObject()
	// A nested object's member set is independent of its parent's.
	require.False(t, s.CheckMember("x"))
	s.Pop()
	require.True(t, s.CheckMember("x"))
}
