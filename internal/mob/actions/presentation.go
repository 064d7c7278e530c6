// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package actions

import (
	"github.com/jakecoffman/cp"

	"github.com/Espyo/Pikifen-sub018/internal/mob"
	"github.com/Espyo/Pikifen-sub018/internal/mobscript"
	"github.com/Espyo/Pikifen-sub018/internal/mobscript/value"
)

var animationOptions = newEnum("options", "no_restart", "random_time", "random_time_on_spawn")

func presentationKinds() []*mobscript.InstructionKind {
	return []*mobscript.InstructionKind{
		{
			ID:         IDSetAnimation,
			Name:       "set_animation",
			Params:     []mobscript.Param{str("animation"), tail(enumParam("options"))},
			Help:       "Plays an animation. no_restart keeps a running animation going.",
			ExtraParse: chain(resourceAt(0, mobscript.ResourceAnimation), animationOptions.from(1)),
			FormatArg:  animationOptions.formatFrom(1),
			Run:        runSetAnimation,
		},
		{
			ID:         IDSetLimbAnimation,
			Name:       "set_limb_animation",
			Params:     []mobscript.Param{str("animation")},
			Help:       "Plays an animation on the limb linking this mob to its parent.",
			ExtraParse: chain(resourceAt(0, mobscript.ResourceAnimation)),
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				m := self(rc)
				if m == nil || m.Parent == nil {
					rc.Skip("no parent limb")
					return mobscript.Continue
				}
				m.LimbAnimation = rc.Arg(0)
				return mobscript.Continue
			},
		},
		{
			ID:         IDPlaySound,
			Name:       "play_sound",
			Params:     []mobscript.Param{str("sound"), tail(constStr("dest_var"))},
			Help:       "Plays a sound. The sound id is stored in dest_var when given.",
			ExtraParse: chain(resourceAt(0, mobscript.ResourceSound), atMost(2)),
			Run:        runPlaySound,
		},
		{
			ID:     IDStopSound,
			Name:   "stop_sound",
			Params: []mobscript.Param{integer("id")},
			Help:   "Stops a sound started by play_sound.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				m := self(rc)
				if m != nil && !m.World.StopSound(rc.Int(0)) {
					rc.Skip("sound not playing", "id", rc.Arg(0))
				}
				return mobscript.Continue
			},
		},
		{
			ID:         IDStartParticles,
			Name:       "start_particles",
			Params:     []mobscript.Param{str("generator"), tail(num("offset"))},
			Help:       "Starts a particle generator, optionally offset by x y z.",
			ExtraParse: chain(resourceAt(0, mobscript.ResourceParticle), atMost(4)),
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				if m := self(rc); m != nil && hasResource(rc, m, mobscript.ResourceParticle, rc.Arg(0)) {
					m.World.StartParticles(m, rc.Arg(0))
				}
				return mobscript.Continue
			},
		},
		{
			ID:   IDStopParticles,
			Name: "stop_particles",
			Help: "Stops every particle generator on the mob.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				if m := self(rc); m != nil {
					m.Particles = nil
				}
				return mobscript.Continue
			},
		},
		{
			ID:   IDStartHeightEffect,
			Name: "start_height_effect",
			Help: "Starts the falling-height visual effect.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				if m := self(rc); m != nil {
					m.HeightEffect = true
				}
				return mobscript.Continue
			},
		},
		{
			ID:   IDStopHeightEffect,
			Name: "stop_height_effect",
			Help: "Stops the falling-height visual effect.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				if m := self(rc); m != nil {
					m.HeightEffect = false
				}
				return mobscript.Continue
			},
		},
		{
			ID:         IDSpawn,
			Name:       "spawn",
			Params:     []mobscript.Param{str("spawn")},
			Help:       "Creates a mob from one of the type's spawn blocks.",
			ExtraParse: chain(resourceAt(0, mobscript.ResourceSpawn)),
			Run:        runSpawn,
		},
		{
			ID:   IDDrainLiquid,
			Name: "drain_liquid",
			Help: "Drains the liquid the mob stands in.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				if m := self(rc); m != nil && !m.World.DrainLiquidAt(m.Pos) {
					rc.Skip("no liquid here")
				}
				return mobscript.Continue
			},
		},
	}
}

func runSetAnimation(rc *mobscript.RunContext) mobscript.Signal {
	m := self(rc)
	if m == nil || !hasResource(rc, m, mobscript.ResourceAnimation, rc.Arg(0)) {
		return mobscript.Continue
	}
	for i := 1; i < len(rc.Args); i++ {
		if animationOptions.word(rc.Int(i)) == "no_restart" && m.Animation == rc.Arg(0) {
			return mobscript.Continue
		}
	}
	m.Animation = rc.Arg(0)
	return mobscript.Continue
}

func runPlaySound(rc *mobscript.RunContext) mobscript.Signal {
	m := self(rc)
	if m == nil || !hasResource(rc, m, mobscript.ResourceSound, rc.Arg(0)) {
		return mobscript.Continue
	}
	id := m.World.PlaySound(m, rc.Arg(0))
	if rc.Has(1) {
		rc.SetVar(rc.Arg(1), value.FormatInt(id))
	}
	return mobscript.Continue
}

func runSpawn(rc *mobscript.RunContext) mobscript.Signal {
	m := self(rc)
	if m == nil {
		return mobscript.Continue
	}
	s, ok := m.Type.Spawns[rc.Arg(0)]
	if !ok {
		rc.Skip("unknown spawn", "name", rc.Arg(0))
		return mobscript.Continue
	}
	t, ok := m.World.Types[s.TypeName]
	if !ok {
		rc.Skip("spawn type not loaded", "type", s.TypeName)
		return mobscript.Continue
	}
	pos := m.Pos.Add(s.Offset.Rotate(cp.ForAngle(m.Angle)))
	m.World.SpawnWith(t, pos, m.Angle+toRad(s.Angle), func(child *mob.Mob) {
		child.Z = m.Z + s.Z
		child.Parent = m
		if s.LinkParent {
			child.Link(m)
		}
		if s.LinkChild {
			m.Link(child)
		}
	})
	return mobscript.Continue
}
