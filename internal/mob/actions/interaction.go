// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package actions

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/Espyo/Pikifen-sub018/internal/mob"
	"github.com/Espyo/Pikifen-sub018/internal/mobscript"
)

// throwGravity is the downward acceleration used to size a throw.
const throwGravity = 1300.0

var (
	focusTargets = newEnum("target", "trigger", "linked_mob", "parent", "closest")
	holdOptions  = newEnum("options", "above")
)

func interactionKinds() []*mobscript.InstructionKind {
	return []*mobscript.InstructionKind{
		{
			ID:         IDFocus,
			Name:       "focus",
			Params:     []mobscript.Param{enumParam("target")},
			Help:       "Focuses on a mob.",
			ExtraParse: chain(focusTargets.at(0)),
			FormatArg:  focusTargets.formatAt(0),
			Run:        runFocus,
		},
		{
			ID:         IDHoldFocusedMob,
			Name:       "hold_focused_mob",
			Params:     []mobscript.Param{constStr("body_part"), tail(enumParam("options"))},
			Help:       "Holds the focused mob on a body part. Option above draws it above the holder.",
			ExtraParse: chain(resourceAt(0, mobscript.ResourceBodyPart), atMost(2), holdOptions.from(1)),
			FormatArg:  holdOptions.formatFrom(1),
			Run:        runHoldFocusedMob,
		},
		{
			ID:   IDRelease,
			Name: "release",
			Help: "Releases every held mob.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				if m := self(rc); m != nil {
					for _, o := range m.Release() {
						m.World.Post(o, mob.OnReleased, m, nil)
					}
				}
				return mobscript.Continue
			},
		},
		{
			ID:   IDReleaseStoredMobs,
			Name: "release_stored_mobs",
			Help: "Releases every mob stored inside.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				if m := self(rc); m != nil {
					for _, o := range m.ReleaseStored() {
						m.World.Post(o, mob.OnReleased, m, nil)
					}
				}
				return mobscript.Continue
			},
		},
		{
			ID:   IDStoreFocusedMobInside,
			Name: "store_focused_mob_inside",
			Help: "Stores the focused mob inside this one.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				m := self(rc)
				if m == nil {
					return mobscript.Continue
				}
				t := focused(m)
				if t == nil || t == m {
					rc.Skip("no focused mob")
					return mobscript.Continue
				}
				m.Store(t)
				return mobscript.Continue
			},
		},
		{
			ID:     IDThrowFocusedMob,
			Name:   "throw_focused_mob",
			Params: []mobscript.Param{num("x"), num("y"), num("z"), num("max_height")},
			Help:   "Throws the held focused mob towards a point.",
			Run:    runThrowFocusedMob,
		},
		{
			ID:   IDLinkWithFocusedMob,
			Name: "link_with_focused_mob",
			Help: "Links this mob to the focused mob.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				m := self(rc)
				if m == nil {
					return mobscript.Continue
				}
				if t := focused(m); t != nil && t != m {
					m.Link(t)
					return mobscript.Continue
				}
				rc.Skip("no focused mob")
				return mobscript.Continue
			},
		},
		{
			ID:   IDUnlinkFocusedMob,
			Name: "unlink_focused_mob",
			Help: "Removes the link to the focused mob.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				m := self(rc)
				if m == nil || m.Focus == nil {
					return mobscript.Continue
				}
				m.Unlink(m.Focus)
				return mobscript.Continue
			},
		},
		{
			ID:         IDStartChomping,
			Name:       "start_chomping",
			Params:     []mobscript.Param{integer("victims"), tail(str("body_parts"))},
			Help:       "Starts chomping up to victims mobs that touch the given body parts.",
			ExtraParse: chain(resourcesFrom(1, mobscript.ResourceBodyPart)),
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				if m := self(rc); m != nil {
					m.ChompMax = max(0, rc.Int(0))
					m.ChompParts = append([]string(nil), rc.Rest(1)...)
				}
				return mobscript.Continue
			},
		},
		{
			ID:   IDStopChomping,
			Name: "stop_chomping",
			Help: "Stops chomping; already chomped mobs stay in the mouth.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				if m := self(rc); m != nil {
					m.ChompMax = 0
					m.ChompParts = nil
				}
				return mobscript.Continue
			},
		},
		{
			ID:     IDSwallow,
			Name:   "swallow",
			Params: []mobscript.Param{integer("amount")},
			Help:   "Swallows up to amount chomped mobs.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				if m := self(rc); m != nil {
					swallow(m, rc.Int(0))
				}
				return mobscript.Continue
			},
		},
		{
			ID:   IDSwallowAll,
			Name: "swallow_all",
			Help: "Swallows every chomped mob.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				if m := self(rc); m != nil {
					swallow(m, len(m.Chomped))
				}
				return mobscript.Continue
			},
		},
		{
			ID:   IDGetChomped,
			Name: "get_chomped",
			Help: "Gets chomped by the mob that triggered the event, if it is chomping.",
			Run:  runGetChomped,
		},
		{
			ID:   IDOrderRelease,
			Name: "order_release",
			Help: "Asks the holder to release this mob through on_release_order.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				m := self(rc)
				if m == nil || !m.Holder.Alive() {
					return mobscript.Continue
				}
				m.World.Post(m.Holder, mob.OnReleaseOrder, m, nil)
				return mobscript.Continue
			},
		},
	}
}

func runFocus(rc *mobscript.RunContext) mobscript.Signal {
	m := self(rc)
	if m == nil {
		return mobscript.Continue
	}
	var target *mob.Mob
	switch focusTargets.word(rc.Int(0)) {
	case "trigger":
		target = trigger(rc)
	case "linked_mob":
		for _, l := range m.Links {
			if l.Alive() {
				target = l
				break
			}
		}
	case "parent":
		if m.Parent.Alive() {
			target = m.Parent
		}
	case "closest":
		target = m.World.Closest(m, func(o *mob.Mob) bool { return o.Tangible && !o.Hiding })
	}
	if target == nil {
		rc.Skip("focus target unavailable")
		return mobscript.Continue
	}
	m.Focus = target
	return mobscript.Continue
}

func runHoldFocusedMob(rc *mobscript.RunContext) mobscript.Signal {
	m := self(rc)
	if m == nil {
		return mobscript.Continue
	}
	t := focused(m)
	if t == nil || t == m {
		rc.Skip("no focused mob")
		return mobscript.Continue
	}
	if !hasResource(rc, m, mobscript.ResourceBodyPart, rc.Arg(0)) {
		return mobscript.Continue
	}
	above := len(rc.Args) > 1 && holdOptions.word(rc.Int(1)) == "above"
	m.Hold(t, rc.Arg(0), above)
	m.World.Post(t, mob.OnHeld, m, nil)
	return mobscript.Continue
}

func runThrowFocusedMob(rc *mobscript.RunContext) mobscript.Signal {
	m := self(rc)
	if m == nil {
		return mobscript.Continue
	}
	t := focused(m)
	if t == nil || !m.Drop(t) {
		rc.Skip("focused mob is not held")
		return mobscript.Continue
	}
	t.Pos = cp.Vector{X: rc.Float(0), Y: rc.Float(1)}
	t.Z = rc.Float(2)
	t.ZSpeed = math.Sqrt(2 * throwGravity * math.Max(0, rc.Float(3)-t.Z))
	m.World.Post(t, mob.OnReleased, m, nil)
	m.World.Post(t, mob.OnLanded, nil, nil)
	return mobscript.Continue
}

func swallow(m *mob.Mob, n int) {
	if n <= 0 {
		return
	}
	n = min(n, len(m.Chomped))
	eaten := m.Chomped[:n]
	m.Chomped = append([]*mob.Mob(nil), m.Chomped[n:]...)
	for _, o := range eaten {
		o.Holder = nil
		m.World.Post(o, mob.OnSwallowed, m, nil)
	}
}

func runGetChomped(rc *mobscript.RunContext) mobscript.Signal {
	m := self(rc)
	if m == nil {
		return mobscript.Continue
	}
	chomper := trigger(rc)
	if chomper == nil || chomper == m || len(chomper.Chomped) >= chomper.ChompMax {
		rc.Skip("trigger is not chomping")
		return mobscript.Continue
	}
	chomper.Chomped = append(chomper.Chomped, m)
	m.Holder = chomper
	m.Stop()
	return mobscript.Continue
}
