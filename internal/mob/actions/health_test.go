// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package actions

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"

	"github.com/Espyo/Pikifen-sub018/internal/mob"
)

func TestHealth_ClampsToRange(t *testing.T) {
	fx := newFixture(t)

	fx.run(fx.m, mob.OnTick, "add_health -30")
	assert.InDelta(t, 70, fx.m.Health, 1e-9)

	fx.run(fx.m, mob.OnTick, "add_health 500")
	assert.InDelta(t, 100, fx.m.Health, 1e-9)

	fx.run(fx.m, mob.OnTick, "set_health 40")
	assert.InDelta(t, 40, fx.m.Health, 1e-9)
	assert.Zero(t, fx.world.Pending())
}

func TestHealth_ReachingZeroPostsDeathOnce(t *testing.T) {
	fx := newFixture(t)

	fx.run(fx.m, mob.OnTick, "add_health -500; set_health 0")

	assert.Zero(t, fx.m.Health)
	assert.True(t, fx.m.Dying)
	assert.Equal(t, 1, fx.world.Pending())
}

func TestDeathSequence(t *testing.T) {
	fx := newFixture(t)
	held := fx.spawn(cp.Vector{})
	stored := fx.spawn(cp.Vector{})
	fx.m.Hold(held, "mouth", false)
	fx.m.Store(stored)
	fx.m.MoveTo(cp.Vector{X: 10})

	fx.run(fx.m, mob.OnTick, "start_dying")
	assert.True(t, fx.m.Dying)
	assert.Zero(t, fx.m.Health)
	assert.Nil(t, fx.m.Target)

	fx.run(fx.m, mob.OnTick, "finish_dying")
	assert.True(t, fx.m.Dead)
	assert.False(t, fx.m.Alive())
	assert.Nil(t, held.Holder)
	assert.False(t, stored.Hiding)
	assert.Equal(t, []string{"bulborb"}, fx.world.RecordsOf(mob.RecordDeath))
	assert.Equal(t, 1, fx.world.Pending(), "the held mob hears on_released")
}

func TestDelete(t *testing.T) {
	fx := newFixture(t)

	out := fx.run(fx.m, mob.OnTick, "delete; print after")

	assert.True(t, fx.m.Deleted)
	assert.Equal(t, 2, out.Steps)
	assert.Empty(t, fx.world.RecordsOf(mob.RecordPrint), "handlers after delete see no live mob")
	assert.NotContains(t, fx.world.Mobs(), fx.m)
}

func TestStatuses(t *testing.T) {
	fx := newFixture(t)

	fx.run(fx.m, mob.OnTick, "receive_status poison")
	assert.True(t, fx.m.Statuses["poison"])

	fx.run(fx.m, mob.OnTick, "set_var s sleepy; receive_status $s; remove_status poison")
	assert.Empty(t, fx.m.Statuses)
}

func TestFlagSetters(t *testing.T) {
	fx := newFixture(t)

	fx.run(fx.m, mob.OnTick, "set_tangible false; set_huntable no; set_shadow_visibility false; "+
		"set_holdable pikmin enemies; set_team enemy_2")

	assert.False(t, fx.m.Tangible)
	assert.False(t, fx.m.Huntable)
	assert.True(t, fx.m.ShadowHidden)
	assert.Equal(t, []string{"pikmin", "enemies"}, fx.m.Holdable)
	assert.Equal(t, "enemy_2", fx.m.Team)

	fx.run(fx.m, mob.OnTick, "set_holdable")
	assert.Empty(t, fx.m.Holdable)
}

func TestSetHiding_PostsOnlyWhenStarting(t *testing.T) {
	fx := newFixture(t)

	fx.run(fx.m, mob.OnTick, "set_hiding true; set_hiding true")
	assert.True(t, fx.m.Hiding)
	assert.Equal(t, 1, fx.world.Pending())

	fx.run(fx.m, mob.OnTick, "set_hiding false")
	assert.False(t, fx.m.Hiding)
	assert.Equal(t, 1, fx.world.Pending())
}
