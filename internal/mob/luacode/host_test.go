// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package luacode_test

import (
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Espyo/Pikifen-sub018/internal/mob"
	"github.com/Espyo/Pikifen-sub018/internal/mob/actions"
	"github.com/Espyo/Pikifen-sub018/internal/mob/luacode"
	"github.com/Espyo/Pikifen-sub018/internal/mobscript"
	"github.com/Espyo/Pikifen-sub018/pkg/errutil"
)

var registry = actions.NewRegistry()

func newMob(t *testing.T) *mob.Mob {
	t.Helper()
	typ := mob.NewType("grub")
	typ.MaxHealth = 10
	typ.AddState("idle")
	typ.AddState("angry")
	w := mob.NewWorld()
	w.AddType(typ)
	return w.Spawn(typ, cp.Vector{X: 3, Y: 4}, 0)
}

// program places the custom call first, followed by parsed statements.
func program(t *testing.T, call *mobscript.ActionCall, ev mobscript.EventID, stmts ...string) *mobscript.Program {
	t.Helper()
	calls := []*mobscript.ActionCall{call}
	for i, s := range stmts {
		c, err := mobscript.Parse(registry, mobscript.Statement{Text: s, Line: i + 2}, nil, ev)
		require.NoError(t, err)
		calls = append(calls, c)
	}
	p, err := mobscript.Validate(ev, calls)
	require.NoError(t, err)
	return p
}

func TestHost_LoadAndUnload(t *testing.T) {
	h := luacode.NewHost()

	require.NoError(t, h.Load("b", `return true`))
	require.NoError(t, h.Load("a", `mob.set("x", 1)`))
	assert.Equal(t, []string{"a", "b"}, h.Chunks())

	require.NoError(t, h.Unload("a"))
	assert.Equal(t, []string{"b"}, h.Chunks())

	errutil.AssertErrorCode(t, h.Unload("a"), luacode.CodeUnknownChunk)
}

func TestHost_Load_SyntaxError(t *testing.T) {
	h := luacode.NewHost()

	err := h.Load("broken", `if then end`)

	errutil.AssertErrorCode(t, err, luacode.CodeSyntaxError)
	errutil.AssertErrorContext(t, err, "chunk", "broken")
	assert.Empty(t, h.Chunks())
}

func TestHost_Call_UnknownChunk(t *testing.T) {
	_, err := luacode.NewHost().Call("missing", mob.OnTick)

	errutil.AssertErrorCode(t, err, luacode.CodeUnknownChunk)
}

func TestHost_Call_ReadsAndWritesVariables(t *testing.T) {
	h := luacode.NewHost()
	require.NoError(t, h.Load("double", `
local n = tonumber(mob.get("n")) or 0
mob.set("n", n * 2)
mob.set("where", mob.x .. "," .. mob.y)
mob.set("seen", mob.event)
`))
	call, err := h.Call("double", mob.OnTick)
	require.NoError(t, err)
	assert.Equal(t, "lua:double", call.Name())

	m := newMob(t)
	m.Vars().Set("n", "21")
	p := program(t, call, mob.OnTick, "set_var after yes")

	out := mobscript.NewInterpreter().Execute(p, m, nil, nil)

	assert.Equal(t, 2, out.Steps)
	assert.Equal(t, "42", m.Vars().Get("n"))
	assert.Equal(t, "3,4", m.Vars().Get("where"))
	assert.Equal(t, "on_tick", m.Vars().Get("seen"))
	assert.Equal(t, "yes", m.Vars().Get("after"))
}

func TestHost_Call_MessagePayload(t *testing.T) {
	h := luacode.NewHost()
	require.NoError(t, h.Load("echo", `mob.set("got", mob.message)`))
	call, err := h.Call("echo", mob.OnReceiveMessage)
	require.NoError(t, err)
	m := newMob(t)

	mobscript.NewInterpreter().Run(program(t, call, mob.OnReceiveMessage), m, nil, "hello")

	assert.Equal(t, "hello", m.Vars().Get("got"))
}

func TestHost_Call_ReturningFalseHalts(t *testing.T) {
	h := luacode.NewHost()
	require.NoError(t, h.Load("gate", `return mob.get("open") == "yes"`))
	call, err := h.Call("gate", mob.OnTick)
	require.NoError(t, err)
	m := newMob(t)
	p := program(t, call, mob.OnTick, "set_var passed yes")

	out := mobscript.NewInterpreter().Execute(p, m, nil, nil)
	assert.True(t, out.Halted)
	assert.Empty(t, m.Vars().Get("passed"))

	m.Vars().Set("open", "yes")
	out = mobscript.NewInterpreter().Execute(p, m, nil, nil)
	assert.False(t, out.Halted)
	assert.Equal(t, "yes", m.Vars().Get("passed"))
}

func TestHost_Call_SetStateHalts(t *testing.T) {
	h := luacode.NewHost()
	require.NoError(t, h.Load("anger", `mob.set_state("angry")`))
	call, err := h.Call("anger", mob.OnTick)
	require.NoError(t, err)
	m := newMob(t)
	p := program(t, call, mob.OnTick, "set_var after yes")

	out := mobscript.NewInterpreter().Execute(p, m, nil, nil)

	assert.True(t, out.Halted)
	assert.Equal(t, "angry", m.PendingState())
	assert.Empty(t, m.Vars().Get("after"))
}

func TestHost_Call_UnknownStateDoesNotHalt(t *testing.T) {
	h := luacode.NewHost()
	require.NoError(t, h.Load("typo", `mob.set_state("angy")`))
	call, err := h.Call("typo", mob.OnTick)
	require.NoError(t, err)
	m := newMob(t)

	out := mobscript.NewInterpreter().Execute(program(t, call, mob.OnTick, "set_var after yes"), m, nil, nil)

	assert.False(t, out.Halted)
	assert.Equal(t, "yes", m.Vars().Get("after"))
}

func TestHost_Call_RuntimeErrorContinues(t *testing.T) {
	h := luacode.NewHost()
	require.NoError(t, h.Load("boom", `error("nope")`))
	call, err := h.Call("boom", mob.OnTick)
	require.NoError(t, err)
	m := newMob(t)

	out := mobscript.NewInterpreter().Execute(program(t, call, mob.OnTick, "set_var after yes"), m, nil, nil)

	assert.False(t, out.Halted)
	assert.Equal(t, "yes", m.Vars().Get("after"))
}

func TestHost_Call_TimeoutStopsRunawayChunk(t *testing.T) {
	h := luacode.NewHost(luacode.WithTimeout(20 * time.Millisecond))
	require.NoError(t, h.Load("spin", `while true do end`))
	call, err := h.Call("spin", mob.OnTick)
	require.NoError(t, err)
	m := newMob(t)

	out := mobscript.NewInterpreter().Execute(program(t, call, mob.OnTick, "set_var after yes"), m, nil, nil)

	assert.Equal(t, 2, out.Steps)
	assert.Equal(t, "yes", m.Vars().Get("after"))
}

func TestHost_Call_Print(t *testing.T) {
	h := luacode.NewHost()
	require.NoError(t, h.Load("hello", `mob.print("hi from " .. mob.type)`))
	call, err := h.Call("hello", mob.OnTick)
	require.NoError(t, err)
	m := newMob(t)

	mobscript.NewInterpreter().Run(program(t, call, mob.OnTick), m, nil, nil)

	assert.Equal(t, []string{"hi from grub"}, m.World.RecordsOf(mob.RecordPrint))
}
