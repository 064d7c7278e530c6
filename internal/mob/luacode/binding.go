// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package luacode

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/Espyo/Pikifen-sub018/internal/mob"
	"github.com/Espyo/Pikifen-sub018/internal/mobscript"
)

// binding exposes the running entity to a chunk as the global table "mob".
type binding struct {
	rc             *mobscript.RunContext
	stateRequested bool
}

func (b *binding) table(L *lua.LState) *lua.LTable {
	t := L.NewTable()
	L.SetFuncs(t, map[string]lua.LGFunction{
		"get":       b.get,
		"set":       b.set,
		"print":     b.print,
		"set_state": b.setState,
	})
	t.RawSetString("event", lua.LString(eventOf(b.rc)))
	if msg, ok := b.rc.Payload2.(string); ok {
		t.RawSetString("message", lua.LString(msg))
	}
	if m, ok := b.rc.Entity.(*mob.Mob); ok {
		t.RawSetString("id", lua.LString(m.ID.String()))
		t.RawSetString("type", lua.LString(m.Type.Name))
		t.RawSetString("state", lua.LString(m.State))
		t.RawSetString("x", lua.LNumber(m.Pos.X))
		t.RawSetString("y", lua.LNumber(m.Pos.Y))
		t.RawSetString("z", lua.LNumber(m.Z))
		t.RawSetString("health", lua.LNumber(m.Health))
	}
	return t
}

// get(name) returns a variable, "" when unset.
func (b *binding) get(L *lua.LState) int {
	L.Push(lua.LString(b.rc.Vars().Get(L.CheckString(1))))
	return 1
}

// set(name, value) stores value in its string form.
func (b *binding) set(L *lua.LState) int {
	b.rc.SetVar(L.CheckString(1), L.CheckAny(2).String())
	return 0
}

func (b *binding) print(L *lua.LState) int {
	text := L.CheckString(1)
	if m, ok := b.rc.Entity.(*mob.Mob); ok && m.Alive() {
		m.World.Print(m, text)
		return 0
	}
	if b.rc.Logger != nil {
		b.rc.Logger.Info("script print", "text", text)
	}
	return 0
}

// set_state(name) requests a state change; the program halts after the
// chunk returns.
func (b *binding) setState(L *lua.LState) int {
	name := L.CheckString(1)
	m, ok := b.rc.Entity.(*mob.Mob)
	if !ok || !m.Alive() {
		return 0
	}
	m.RequestState(name)
	b.stateRequested = m.PendingState() != ""
	return 0
}
