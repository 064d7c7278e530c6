// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package actions

import (
	"math"

	"github.com/Espyo/Pikifen-sub018/internal/mob"
	"github.com/Espyo/Pikifen-sub018/internal/mobscript"
)

var (
	holdableBy = newEnum("flags", "pikmin", "enemies")
	teams      = newEnum("team",
		"none", "player_1", "player_2", "player_3", "player_4",
		"enemy_1", "enemy_2", "enemy_3", "enemy_4", "obstacle", "other",
	)
)

func healthKinds() []*mobscript.InstructionKind {
	return []*mobscript.InstructionKind{
		{
			ID:     IDAddHealth,
			Name:   "add_health",
			Params: []mobscript.Param{num("amount")},
			Help:   "Adds health, clamped to the maximum. Negative amounts hurt.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				if m := self(rc); m != nil {
					setHealth(m, m.Health+rc.Float(0))
				}
				return mobscript.Continue
			},
		},
		{
			ID:     IDSetHealth,
			Name:   "set_health",
			Params: []mobscript.Param{num("amount")},
			Help:   "Sets health, clamped to the maximum.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				if m := self(rc); m != nil {
					setHealth(m, rc.Float(0))
				}
				return mobscript.Continue
			},
		},
		{
			ID:   IDStartDying,
			Name: "start_dying",
			Help: "Starts the death sequence.",
			Run:  runStartDying,
		},
		{
			ID:   IDFinishDying,
			Name: "finish_dying",
			Help: "Ends the death sequence; the mob stops taking part in the area.",
			Run:  runFinishDying,
		},
		{
			ID:   IDDelete,
			Name: "delete",
			Help: "Removes the mob from the area.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				if m := self(rc); m != nil {
					m.Release()
					m.ReleaseStored()
					m.Deleted = true
				}
				return mobscript.Continue
			},
		},
		{
			ID:         IDReceiveStatus,
			Name:       "receive_status",
			Params:     []mobscript.Param{str("status")},
			Help:       "Applies a status effect.",
			ExtraParse: chain(resourceAt(0, mobscript.ResourceStatus)),
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				if m := self(rc); m != nil && hasResource(rc, m, mobscript.ResourceStatus, rc.Arg(0)) {
					m.Statuses[rc.Arg(0)] = true
				}
				return mobscript.Continue
			},
		},
		{
			ID:         IDRemoveStatus,
			Name:       "remove_status",
			Params:     []mobscript.Param{str("status")},
			Help:       "Removes a status effect.",
			ExtraParse: chain(resourceAt(0, mobscript.ResourceStatus)),
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				if m := self(rc); m != nil {
					delete(m.Statuses, rc.Arg(0))
				}
				return mobscript.Continue
			},
		},
		{
			ID:     IDSetTangible,
			Name:   "set_tangible",
			Params: []mobscript.Param{boolean("tangible")},
			Help:   "Makes the mob solid or not.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				if m := self(rc); m != nil {
					m.Tangible = rc.Bool(0)
				}
				return mobscript.Continue
			},
		},
		{
			ID:     IDSetHiding,
			Name:   "set_hiding",
			Params: []mobscript.Param{boolean("hiding")},
			Help:   "Hides the mob from other mobs. Starting to hide fires on_start_hiding.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				m := self(rc)
				if m == nil {
					return mobscript.Continue
				}
				hiding := rc.Bool(0)
				if hiding && !m.Hiding {
					m.World.Post(m, mob.OnStartHiding, nil, nil)
				}
				m.Hiding = hiding
				return mobscript.Continue
			},
		},
		{
			ID:     IDSetHuntable,
			Name:   "set_huntable",
			Params: []mobscript.Param{boolean("huntable")},
			Help:   "Makes the mob a valid target for hunters or not.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				if m := self(rc); m != nil {
					m.Huntable = rc.Bool(0)
				}
				return mobscript.Continue
			},
		},
		{
			ID:         IDSetHoldable,
			Name:       "set_holdable",
			Params:     []mobscript.Param{tail(enumParam("flags"))},
			Help:       "Sets who may hold the mob. No flags means nobody.",
			ExtraParse: chain(holdableBy.from(0)),
			FormatArg:  holdableBy.formatFrom(0),
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				m := self(rc)
				if m == nil {
					return mobscript.Continue
				}
				m.Holdable = m.Holdable[:0]
				for i := range rc.Args {
					m.Holdable = append(m.Holdable, holdableBy.word(rc.Int(i)))
				}
				return mobscript.Continue
			},
		},
		{
			ID:         IDSetTeam,
			Name:       "set_team",
			Params:     []mobscript.Param{enumParam("team")},
			Help:       "Sets the mob's team.",
			ExtraParse: chain(teams.at(0)),
			FormatArg:  teams.formatAt(0),
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				if m := self(rc); m != nil {
					m.Team = teams.word(rc.Int(0))
				}
				return mobscript.Continue
			},
		},
		{
			ID:     IDSetShadowVisibility,
			Name:   "set_shadow_visibility",
			Params: []mobscript.Param{boolean("visible")},
			Help:   "Shows or hides the mob's shadow.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				if m := self(rc); m != nil {
					m.ShadowHidden = !rc.Bool(0)
				}
				return mobscript.Continue
			},
		},
	}
}

// setHealth clamps and applies a new health value. Reaching zero starts
// the death sequence through on_death.
func setHealth(m *mob.Mob, h float64) {
	if m.MaxHealth > 0 {
		h = math.Min(h, m.MaxHealth)
	}
	m.Health = math.Max(0, h)
	if m.Health == 0 && m.MaxHealth > 0 && !m.Dying {
		m.Dying = true
		m.World.Post(m, mob.OnDeath, nil, nil)
	}
}

func runStartDying(rc *mobscript.RunContext) mobscript.Signal {
	m := self(rc)
	if m == nil || m.Dying {
		return mobscript.Continue
	}
	m.Dying = true
	m.Health = 0
	m.Stop()
	return mobscript.Continue
}

func runFinishDying(rc *mobscript.RunContext) mobscript.Signal {
	m := self(rc)
	if m == nil {
		return mobscript.Continue
	}
	for _, o := range m.Release() {
		m.World.Post(o, mob.OnReleased, m, nil)
	}
	m.ReleaseStored()
	m.Dying = false
	m.Dead = true
	m.World.Died(m)
	return mobscript.Continue
}
