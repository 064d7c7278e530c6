// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package actions

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/Espyo/Pikifen-sub018/internal/mob"
	"github.com/Espyo/Pikifen-sub018/internal/mobscript"
)

var (
	moveTargets = newEnum("target", "focused_mob", "focused_mob_position", "home", "away_from_focused_mob", "linked_mob_average")
	turnTargets = newEnum("target", "focused_mob", "home")
	stabilizeZ  = newEnum("mode", "lowest", "highest")
)

func movementKinds() []*mobscript.InstructionKind {
	return []*mobscript.InstructionKind{
		{
			ID:     IDMoveToAbsolute,
			Name:   "move_to_absolute",
			Params: []mobscript.Param{num("x"), num("y")},
			Help:   "Walks to a point of the area.",
			Run:    runMoveToAbsolute,
		},
		{
			ID:     IDMoveToRelative,
			Name:   "move_to_relative",
			Params: []mobscript.Param{num("x"), num("y")},
			Help:   "Walks to a point relative to the mob; x is forward.",
			Run:    runMoveToRelative,
		},
		{
			ID:         IDMoveToTarget,
			Name:       "move_to_target",
			Params:     []mobscript.Param{enumParam("target")},
			Help:       "Walks towards a target.",
			ExtraParse: chain(moveTargets.at(0)),
			FormatArg:  moveTargets.formatAt(0),
			Run:        runMoveToTarget,
		},
		{
			ID:   IDStop,
			Name: "stop",
			Help: "Stops moving.",
			Run:  runStop,
		},
		{
			ID:   IDStopVertically,
			Name: "stop_vertically",
			Help: "Stops vertical movement.",
			Run:  runStopVertically,
		},
		{
			ID:         IDStabilizeZ,
			Name:       "stabilize_z",
			Params:     []mobscript.Param{enumParam("mode"), num("offset")},
			Help:       "Sets Z to the lowest or highest Z among linked mobs, plus an offset.",
			ExtraParse: chain(stabilizeZ.at(0)),
			FormatArg:  stabilizeZ.formatAt(0),
			Run:        runStabilizeZ,
		},
		{
			ID:     IDTeleportToAbsolute,
			Name:   "teleport_to_absolute",
			Params: []mobscript.Param{num("x"), num("y"), num("z")},
			Help:   "Moves instantly to a point of the area.",
			Run:    runTeleportToAbsolute,
		},
		{
			ID:     IDTeleportToRelative,
			Name:   "teleport_to_relative",
			Params: []mobscript.Param{num("x"), num("y"), num("z")},
			Help:   "Moves instantly to a point relative to the mob; x is forward.",
			Run:    runTeleportToRelative,
		},
		{
			ID:     IDTurnToAbsolute,
			Name:   "turn_to_absolute",
			Params: []mobscript.Param{num("angle")},
			Help:   "Faces an angle in degrees.",
			Run:    runTurnToAbsolute,
		},
		{
			ID:     IDTurnToRelative,
			Name:   "turn_to_relative",
			Params: []mobscript.Param{num("angle")},
			Help:   "Turns by an angle in degrees.",
			Run:    runTurnToRelative,
		},
		{
			ID:         IDTurnToTarget,
			Name:       "turn_to_target",
			Params:     []mobscript.Param{enumParam("target")},
			Help:       "Faces a target.",
			ExtraParse: chain(turnTargets.at(0)),
			FormatArg:  turnTargets.formatAt(0),
			Run:        runTurnToTarget,
		},
		{
			ID:     IDFollowPathToAbsolute,
			Name:   "follow_path_to_absolute",
			Params: []mobscript.Param{num("x"), num("y")},
			Help:   "Follows the path graph to a point.",
			Run:    runFollowPathToAbsolute,
		},
		{
			ID:     IDFollowPathRandomly,
			Name:   "follow_path_randomly",
			Params: []mobscript.Param{tail(str("label"))},
			Help:   "Follows the path graph to a random stop, optionally one with a label.",
			Run:    runFollowPathRandomly,
		},
		{
			ID:     IDSetGravity,
			Name:   "set_gravity",
			Params: []mobscript.Param{num("multiplier")},
			Help:   "Sets the gravity multiplier.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				if m := self(rc); m != nil {
					m.Gravity = rc.Float(0)
				}
				return mobscript.Continue
			},
		},
		{
			ID:     IDSetHeight,
			Name:   "set_height",
			Params: []mobscript.Param{num("height")},
			Help:   "Sets the mob's height.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				if m := self(rc); m != nil {
					m.Height = math.Max(0, rc.Float(0))
				}
				return mobscript.Continue
			},
		},
		{
			ID:     IDSetRadius,
			Name:   "set_radius",
			Params: []mobscript.Param{num("radius")},
			Help:   "Sets the mob's radius.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				if m := self(rc); m != nil {
					m.Radius = math.Max(0, rc.Float(0))
				}
				return mobscript.Continue
			},
		},
		{
			ID:     IDSetFlying,
			Name:   "set_flying",
			Params: []mobscript.Param{boolean("flying")},
			Help:   "Makes the mob fly or walk.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				if m := self(rc); m != nil {
					m.Flying = rc.Bool(0)
				}
				return mobscript.Continue
			},
		},
		{
			ID:         IDSetNearReach,
			Name:       "set_near_reach",
			Params:     []mobscript.Param{str("reach")},
			Help:       "Sets the reach used for near detection.",
			ExtraParse: chain(resourceAt(0, mobscript.ResourceReach)),
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				if m := self(rc); m != nil && hasResource(rc, m, mobscript.ResourceReach, rc.Arg(0)) {
					m.NearReach = rc.Arg(0)
				}
				return mobscript.Continue
			},
		},
		{
			ID:         IDSetFarReach,
			Name:       "set_far_reach",
			Params:     []mobscript.Param{str("reach")},
			Help:       "Sets the reach used for far detection.",
			ExtraParse: chain(resourceAt(0, mobscript.ResourceReach)),
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				if m := self(rc); m != nil && hasResource(rc, m, mobscript.ResourceReach, rc.Arg(0)) {
					m.FarReach = rc.Arg(0)
				}
				return mobscript.Continue
			},
		},
		{
			ID:     IDSetSectorScroll,
			Name:   "set_sector_scroll",
			Params: []mobscript.Param{num("x"), num("y")},
			Help:   "Scrolls the texture of the sector under the mob.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				if m := self(rc); m != nil {
					m.SectorScroll = cp.Vector{X: rc.Float(0), Y: rc.Float(1)}
				}
				return mobscript.Continue
			},
		},
		{
			ID:     IDSetCanBlockPaths,
			Name:   "set_can_block_paths",
			Params: []mobscript.Param{boolean("blocks")},
			Help:   "Makes the mob block paths or not.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				if m := self(rc); m != nil {
					m.BlocksPaths = rc.Bool(0)
				}
				return mobscript.Continue
			},
		},
	}
}

// relative rotates a forward/sideways offset by the mob's facing.
func relative(m *mob.Mob, x, y float64) cp.Vector {
	return m.Pos.Add(cp.Vector{X: x, Y: y}.Rotate(cp.ForAngle(m.Angle)))
}

func runMoveToAbsolute(rc *mobscript.RunContext) mobscript.Signal {
	if m := self(rc); m != nil {
		m.MoveTo(cp.Vector{X: rc.Float(0), Y: rc.Float(1)})
	}
	return mobscript.Continue
}

func runMoveToRelative(rc *mobscript.RunContext) mobscript.Signal {
	if m := self(rc); m != nil {
		m.MoveTo(relative(m, rc.Float(0), rc.Float(1)))
	}
	return mobscript.Continue
}

func runMoveToTarget(rc *mobscript.RunContext) mobscript.Signal {
	m := self(rc)
	if m == nil {
		return mobscript.Continue
	}
	switch moveTargets.word(rc.Int(0)) {
	case "focused_mob":
		if t := focused(m); t != nil {
			m.Chase(t)
			return mobscript.Continue
		}
	case "focused_mob_position":
		if t := focused(m); t != nil {
			m.MoveTo(t.Pos)
			return mobscript.Continue
		}
	case "away_from_focused_mob":
		if t := focused(m); t != nil {
			away := m.Pos.Sub(t.Pos)
			if away.Length() == 0 {
				away = cp.ForAngle(m.Angle)
			}
			m.MoveTo(m.Pos.Add(away.Normalize().Mult(100)))
			return mobscript.Continue
		}
	case "home":
		m.MoveTo(m.Home)
		return mobscript.Continue
	case "linked_mob_average":
		var sum cp.Vector
		n := 0
		for _, l := range m.Links {
			if l.Alive() {
				sum = sum.Add(l.Pos)
				n++
			}
		}
		if n > 0 {
			m.MoveTo(sum.Mult(1 / float64(n)))
			return mobscript.Continue
		}
	}
	rc.Skip("no target")
	return mobscript.Continue
}

func runStop(rc *mobscript.RunContext) mobscript.Signal {
	if m := self(rc); m != nil {
		m.Stop()
	}
	return mobscript.Continue
}

func runStopVertically(rc *mobscript.RunContext) mobscript.Signal {
	if m := self(rc); m != nil {
		m.ZSpeed = 0
	}
	return mobscript.Continue
}

func runStabilizeZ(rc *mobscript.RunContext) mobscript.Signal {
	m := self(rc)
	if m == nil {
		return mobscript.Continue
	}
	highest := stabilizeZ.word(rc.Int(0)) == "highest"
	found := false
	best := 0.0
	for _, l := range m.Links {
		if !l.Alive() {
			continue
		}
		if !found || (highest && l.Z > best) || (!highest && l.Z < best) {
			best = l.Z
			found = true
		}
	}
	if !found {
		rc.Skip("no linked mobs")
		return mobscript.Continue
	}
	m.Z = best + rc.Float(1)
	return mobscript.Continue
}

func runTeleportToAbsolute(rc *mobscript.RunContext) mobscript.Signal {
	if m := self(rc); m != nil {
		m.Stop()
		m.Pos = cp.Vector{X: rc.Float(0), Y: rc.Float(1)}
		m.Z = rc.Float(2)
	}
	return mobscript.Continue
}

func runTeleportToRelative(rc *mobscript.RunContext) mobscript.Signal {
	if m := self(rc); m != nil {
		m.Stop()
		m.Pos = relative(m, rc.Float(0), rc.Float(1))
		m.Z += rc.Float(2)
	}
	return mobscript.Continue
}

func runTurnToAbsolute(rc *mobscript.RunContext) mobscript.Signal {
	if m := self(rc); m != nil {
		m.Angle = toRad(rc.Float(0))
	}
	return mobscript.Continue
}

func runTurnToRelative(rc *mobscript.RunContext) mobscript.Signal {
	if m := self(rc); m != nil {
		m.Angle += toRad(rc.Float(0))
	}
	return mobscript.Continue
}

func runTurnToTarget(rc *mobscript.RunContext) mobscript.Signal {
	m := self(rc)
	if m == nil {
		return mobscript.Continue
	}
	switch turnTargets.word(rc.Int(0)) {
	case "focused_mob":
		t := focused(m)
		if t == nil {
			rc.Skip("no focused mob")
			return mobscript.Continue
		}
		m.Angle = m.AngleTo(t)
	case "home":
		if m.Home != m.Pos {
			m.Angle = m.Home.Sub(m.Pos).ToAngle()
		}
	}
	return mobscript.Continue
}

func runFollowPathToAbsolute(rc *mobscript.RunContext) mobscript.Signal {
	m := self(rc)
	if m == nil {
		return mobscript.Continue
	}
	dest := cp.Vector{X: rc.Float(0), Y: rc.Float(1)}
	m.Stop()
	m.Path = append(pathVia(m.World.PathStops, m.Pos, dest), dest)
	return mobscript.Continue
}

// pathVia returns the first path stop lying on the segment from->to, if
// any. The reference world has no path graph beyond its stops.
func pathVia(stops []mob.PathStop, from, to cp.Vector) []cp.Vector {
	direct := from.Distance(to)
	for _, s := range stops {
		if from.Distance(s.Pos)+s.Pos.Distance(to) <= direct+1e-9 && s.Pos != to && s.Pos != from {
			return []cp.Vector{s.Pos}
		}
	}
	return nil
}

func runFollowPathRandomly(rc *mobscript.RunContext) mobscript.Signal {
	m := self(rc)
	if m == nil {
		return mobscript.Continue
	}
	labels := rc.Rest(0)
	var candidates []mob.PathStop
	for _, s := range m.World.PathStops {
		if len(labels) == 0 || hasAnyLabel(s, labels) {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		rc.Skip("no matching path stop")
		return mobscript.Continue
	}
	dest := candidates[m.World.Rand().Intn(len(candidates))].Pos
	m.Stop()
	m.Path = []cp.Vector{dest}
	return mobscript.Continue
}

func hasAnyLabel(s mob.PathStop, labels []string) bool {
	for _, have := range s.Labels {
		for _, want := range labels {
			if have == want {
				return true
			}
		}
	}
	return false
}
