// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package luacode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
)

func openSandbox(t *testing.T, timeout time.Duration) *lua.LState {
	t.Helper()
	L, done, err := newSandbox(timeout).open()
	require.NoError(t, err)
	t.Cleanup(func() {
		L.Close()
		done()
	})
	return L
}

func TestSandbox_OpensChunkLibraries(t *testing.T) {
	L := openSandbox(t, time.Second)

	for _, lib := range []string{"table", "string", "math"} {
		assert.NotEqual(t, lua.LTNil, L.GetGlobal(lib).Type(), lib)
	}
	require.NoError(t, L.DoString(`x = math.floor(string.len("abc") / 2)`))
	assert.Equal(t, lua.LNumber(1), L.GetGlobal("x"))
}

func TestSandbox_KeepsHostLibrariesClosed(t *testing.T) {
	L := openSandbox(t, time.Second)

	for _, name := range []string{"os", "io", "debug", "package", "dofile", "loadfile", "loadstring", "load", "require"} {
		assert.Equal(t, lua.LTNil, L.GetGlobal(name).Type(), name)
	}
}

func TestSandbox_LibraryOpenFailure(t *testing.T) {
	s := &sandbox{timeout: time.Second, libraries: []library{{"broken", func(L *lua.LState) int {
		L.RaiseError("cannot open")
		return 0
	}}}}

	_, _, err := s.open()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open library broken")
}

func TestSandbox_DeadlineStopsRunawayChunk(t *testing.T) {
	L := openSandbox(t, 20*time.Millisecond)

	assert.Error(t, L.DoString(`while true do end`))
}

func TestSandbox_DeepRecursionFails(t *testing.T) {
	L := openSandbox(t, time.Second)

	assert.Error(t, L.DoString(`local function f(n) return 1 + f(n + 1) end f(0)`))
}
