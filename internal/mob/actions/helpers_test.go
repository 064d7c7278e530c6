// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package actions

import (
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"

	"github.com/Espyo/Pikifen-sub018/internal/mob"
	"github.com/Espyo/Pikifen-sub018/internal/mobscript"
)

var testRegistry = NewRegistry()

func newTestType(name string) *mob.Type {
	typ := mob.NewType(name)
	typ.Category = "enemy"
	typ.MaxHealth = 100
	typ.Speed = 10
	typ.AddResources(mobscript.ResourceAnimation, "idle", "walk", "chomp")
	typ.AddResources(mobscript.ResourceBodyPart, "mouth", "back")
	typ.AddResources(mobscript.ResourceSound, "roar")
	typ.AddResources(mobscript.ResourceStatus, "poison")
	typ.AddResources(mobscript.ResourceParticle, "dust")
	typ.Reaches["near"] = mob.Reach{Radius: 50}
	typ.Spawns["baby"] = mob.Spawn{TypeName: name, Offset: cp.Vector{X: 10}, LinkParent: true}
	typ.AddState("idle")
	typ.AddState("walk")
	return typ
}

// fixture is a world with one type and one mob under test.
type fixture struct {
	t     *testing.T
	typ   *mob.Type
	world *mob.World
	m     *mob.Mob
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	typ := newTestType("bulborb")
	w := mob.NewWorld(mob.WithSeed(7))
	w.AddType(typ)
	return &fixture{t: t, typ: typ, world: w, m: w.Spawn(typ, cp.Vector{}, 0)}
}

func (fx *fixture) spawn(pos cp.Vector) *mob.Mob {
	return fx.world.Spawn(fx.typ, pos, 0)
}

// compile builds a program from ';'-separated statements.
func (fx *fixture) compile(ev mobscript.EventID, text string) (*mobscript.Program, error) {
	var stmts []mobscript.Statement
	for i, part := range strings.Split(text, ";") {
		stmts = append(stmts, mobscript.Statement{Text: part, Line: i + 1})
	}
	return mobscript.Compile(testRegistry, stmts, fx.typ, ev)
}

// run compiles text for ev and runs it against m with the given payloads.
func (fx *fixture) run(m *mob.Mob, ev mobscript.EventID, text string, payloads ...any) mobscript.Outcome {
	fx.t.Helper()
	p, err := fx.compile(ev, text)
	require.NoError(fx.t, err)
	var p1, p2 any
	if len(payloads) > 0 {
		p1 = payloads[0]
	}
	if len(payloads) > 1 {
		p2 = payloads[1]
	}
	return mobscript.NewInterpreter().Execute(p, m, p1, p2)
}

func (fx *fixture) get(m *mob.Mob, name string) string {
	return m.Vars().Get(name)
}
