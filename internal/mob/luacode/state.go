// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package luacode

import (
	"context"
	"time"

	"github.com/samber/oops"
	lua "github.com/yuin/gopher-lua"
)

// Mob chunks are short event handlers; deep recursion is a bug.
const (
	chunkCallStackSize = 64
	chunkRegistrySize  = 2048
)

// library is a Lua standard library a chunk may use.
type library struct {
	name string
	open lua.LGFunction
}

// chunkLibraries are the only libraries opened for chunks. os, io, debug
// and package stay closed so a chunk can only touch its mob.
var chunkLibraries = []library{
	{lua.BaseLibName, lua.OpenBase},
	{lua.TabLibName, lua.OpenTable},
	{lua.StringLibName, lua.OpenString},
	{lua.MathLibName, lua.OpenMath},
}

// closedGlobals are base functions removed after the base library opens.
var closedGlobals = []string{"dofile", "loadfile", "loadstring", "load", "require"}

// sandbox builds one throwaway state per chunk run. Each state carries a
// deadline so a runaway loop ends the run instead of the tick.
type sandbox struct {
	libraries []library
	timeout   time.Duration
}

func newSandbox(timeout time.Duration) *sandbox {
	return &sandbox{libraries: chunkLibraries, timeout: timeout}
}

// open returns a state whose deadline starts now. The caller closes the
// state and then calls done.
func (s *sandbox) open() (L *lua.LState, done context.CancelFunc, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)

	L = lua.NewState(lua.Options{
		SkipOpenLibs:  true,
		CallStackSize: chunkCallStackSize,
		RegistrySize:  chunkRegistrySize,
	})
	for _, lib := range s.libraries {
		err := L.CallByParam(lua.P{Fn: L.NewFunction(lib.open), Protect: true}, lua.LString(lib.name))
		if err != nil {
			L.Close()
			cancel()
			return nil, nil, oops.In("luacode").With("library", lib.name).Wrapf(err, "open library %s", lib.name)
		}
	}
	for _, name := range closedGlobals {
		L.SetGlobal(name, lua.LNil)
	}

	L.SetContext(ctx)
	return L, cancel, nil
}
