// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package actions

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Espyo/Pikifen-sub018/internal/mob"
)

func TestSetAnimation(t *testing.T) {
	fx := newFixture(t)

	fx.run(fx.m, mob.OnTick, "set_animation walk")
	assert.Equal(t, "walk", fx.m.Animation)

	fx.run(fx.m, mob.OnTick, "set_var a dance; set_animation $a")
	assert.Equal(t, "walk", fx.m.Animation, "unknown animation at run time is skipped")

	fx.run(fx.m, mob.OnTick, "set_animation chomp no_restart random_time")
	assert.Equal(t, "chomp", fx.m.Animation)
}

func TestSetLimbAnimation_NeedsParent(t *testing.T) {
	fx := newFixture(t)

	fx.run(fx.m, mob.OnTick, "set_limb_animation walk")
	assert.Empty(t, fx.m.LimbAnimation)

	fx.m.Parent = fx.spawn(cp.Vector{})
	fx.run(fx.m, mob.OnTick, "set_limb_animation walk")
	assert.Equal(t, "walk", fx.m.LimbAnimation)
}

func TestSounds(t *testing.T) {
	fx := newFixture(t)

	fx.run(fx.m, mob.OnTick, "play_sound roar; play_sound roar id")
	assert.Equal(t, 2, fx.world.Playing())
	assert.Equal(t, "2", fx.get(fx.m, "id"))
	assert.Equal(t, []string{"roar", "roar"}, fx.world.RecordsOf(mob.RecordSound))

	fx.run(fx.m, mob.OnTick, "stop_sound $id; stop_sound $id; stop_sound 99")
	assert.Equal(t, 1, fx.world.Playing())
}

func TestParticlesAndHeightEffect(t *testing.T) {
	fx := newFixture(t)

	fx.run(fx.m, mob.OnTick, "start_particles dust 1 2 3; start_height_effect")
	assert.Equal(t, []string{"dust"}, fx.m.Particles)
	assert.Equal(t, []string{"dust"}, fx.world.RecordsOf(mob.RecordParticles))
	assert.True(t, fx.m.HeightEffect)

	fx.run(fx.m, mob.OnTick, "stop_particles; stop_height_effect")
	assert.Empty(t, fx.m.Particles)
	assert.False(t, fx.m.HeightEffect)
}

func TestSpawn_LinksChildBeforeItsFirstState(t *testing.T) {
	fx := newFixture(t)
	p, err := fx.compile(mob.OnEnter, "get_info n link_count; set_var seen $n")
	require.NoError(t, err)
	fx.typ.States["idle"].Events[mob.OnEnter] = p

	fx.m.Pos = cp.Vector{X: 100, Y: 100}
	fx.m.Angle = math.Pi / 2
	fx.run(fx.m, mob.OnTick, "spawn baby")

	mobs := fx.world.Mobs()
	require.Len(t, mobs, 2)
	child := mobs[1]
	assert.Same(t, fx.m, child.Parent)
	assert.Equal(t, []*mob.Mob{fx.m}, child.Links)
	assert.InDelta(t, 100, child.Pos.X, 1e-9)
	assert.InDelta(t, 110, child.Pos.Y, 1e-9)
	assert.Equal(t, "idle", child.State)
	assert.Equal(t, "1", fx.get(child, "seen"), "on_enter already sees the link")
}

func TestDrainLiquid(t *testing.T) {
	fx := newFixture(t)
	pond := &mob.Liquid{Name: "pond", Pos: cp.Vector{X: 100}, Radius: 20}
	fx.world.Liquids = []*mob.Liquid{pond}

	fx.run(fx.m, mob.OnTick, "drain_liquid")
	assert.False(t, pond.Drained)

	fx.m.Pos = cp.Vector{X: 90}
	fx.run(fx.m, mob.OnTick, "drain_liquid")
	assert.True(t, pond.Drained)
}
