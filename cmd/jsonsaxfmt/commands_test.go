// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func withCapturedStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func writeTempJSON(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "in.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunPipelineFormatIndents(t *testing.T) {
	logger = zap.NewNop()
	path := writeTempJSON(t, `{"a":1,"b":[true,false]}`)

	out := withCapturedStdout(t, func() {
		require.NoError(t, runPipeline([]string{path}, true))
	})
	require.Equal(t, "{\n  \"a\": 1,\n  \"b\": [\n    true,\n    false\n  ]\n}\n", out)
}

func TestRunPipelineReencodeIsCompact(t *testing.T) {
	logger = zap.NewNop()
	path := writeTempJSON(t, `{"a" : 1 , "b" : [ true , false ] }`)

	out := withCapturedStdout(t, func() {
		require.NoError(t, runPipeline([]string{path}, false))
	})
	require.Equal(t, `{"a":1,"b":[true,false]}`, out)
}

func TestRunPipelineRejectsMalformedInput(t *testing.T) {
	logger = zap.NewNop()
	isTerminal = false
	path := writeTempJSON(t, `{"a":}`)

	err := runPipeline([]string{path}, true)
	require.Error(t, err)
}
