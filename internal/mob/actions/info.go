// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package actions

import (
	"fmt"

	"github.com/Espyo/Pikifen-sub018/internal/mob"
	"github.com/Espyo/Pikifen-sub018/internal/mobscript"
	"github.com/Espyo/Pikifen-sub018/internal/mobscript/value"
)

var mobInfo = newEnum("info",
	"angle", "chomp_count", "distance", "health", "health_ratio", "held_count",
	"id", "link_count", "mob_category", "mob_type", "state", "stored_count",
	"x", "y", "z",
)

var areaInfo = newEnum("info", "day_minutes", "mob_count", "time", "weather")

var eventInfo = newEnum("info", "message", "message_sender", "body_part", "other_body_part", "frame_signal")

// eventInfoSources lists the events that carry each get_event_info target.
var eventInfoSources = map[string][]mobscript.EventID{
	"message":         {mob.OnReceiveMessage},
	"message_sender":  {mob.OnReceiveMessage},
	"body_part":       {mob.OnDamage},
	"other_body_part": {mob.OnDamage},
	"frame_signal":    {mob.OnFrameSignal},
}

func infoKinds() []*mobscript.InstructionKind {
	return []*mobscript.InstructionKind{
		{
			ID:         IDGetInfo,
			Name:       "get_info",
			Params:     []mobscript.Param{constStr("dest"), enumParam("info")},
			Help:       "Stores information about this mob.",
			ExtraParse: chain(mobInfo.at(1)),
			FormatArg:  mobInfo.formatAt(1),
			Run:        runGetInfo,
		},
		{
			ID:         IDGetFocusedMobInfo,
			Name:       "get_focused_mob_info",
			Params:     []mobscript.Param{constStr("dest"), enumParam("info")},
			Help:       "Stores information about the focused mob. Does nothing without a focus.",
			ExtraParse: chain(mobInfo.at(1)),
			FormatArg:  mobInfo.formatAt(1),
			Run:        runGetFocusedMobInfo,
		},
		{
			ID:         IDGetEventInfo,
			Name:       "get_event_info",
			Params:     []mobscript.Param{constStr("dest"), enumParam("info")},
			Help:       "Stores information carried by the triggering event.",
			ExtraParse: chain(checkEventInfo, eventInfo.at(1)),
			FormatArg:  eventInfo.formatAt(1),
			Run:        runGetEventInfo,
		},
		{
			ID:         IDGetAreaInfo,
			Name:       "get_area_info",
			Params:     []mobscript.Param{constStr("dest"), enumParam("info")},
			Help:       "Stores information about the area.",
			ExtraParse: chain(areaInfo.at(1)),
			FormatArg:  areaInfo.formatAt(1),
			Run:        runGetAreaInfo,
		},
		{
			ID:     IDGetMobCount,
			Name:   "get_mob_count",
			Params: []mobscript.Param{constStr("dest"), str("category")},
			Help:   "Stores how many live mobs of a category exist.",
			Run:    runGetMobCount,
		},
	}
}

// checkEventInfo rejects targets the owning event never carries.
func checkEventInfo(call *mobscript.ActionCall) error {
	what, _ := call.LiteralAt(1)
	sources, ok := eventInfoSources[what]
	if !ok {
		return nil
	}
	for _, ev := range sources {
		if ev == call.Event {
			return nil
		}
	}
	return mobscript.ErrInvalidArgument(call, "info",
		fmt.Sprintf("%q is only available in %v, not in %s", what, sources, call.Event))
}

// mobInfoValue reads one mobInfo target of o as seen from m.
func mobInfoValue(m, o *mob.Mob, what string) string {
	switch what {
	case "angle":
		return f(toDeg(o.Angle))
	case "chomp_count":
		return value.FormatInt(len(o.Chomped))
	case "distance":
		return f(m.DistanceTo(o))
	case "health":
		return f(o.Health)
	case "health_ratio":
		if o.MaxHealth == 0 {
			return "0"
		}
		return f(o.Health / o.MaxHealth)
	case "held_count":
		return value.FormatInt(len(o.Held))
	case "id":
		return o.ID.String()
	case "link_count":
		return value.FormatInt(len(o.Links))
	case "mob_category":
		return o.Type.Category
	case "mob_type":
		return o.Type.Name
	case "state":
		return o.State
	case "stored_count":
		return value.FormatInt(len(o.Stored))
	case "x":
		return f(o.Pos.X)
	case "y":
		return f(o.Pos.Y)
	case "z":
		return f(o.Z)
	default:
		return ""
	}
}

func runGetInfo(rc *mobscript.RunContext) mobscript.Signal {
	if m := self(rc); m != nil {
		rc.SetVar(rc.Arg(0), mobInfoValue(m, m, mobInfo.word(rc.Int(1))))
	}
	return mobscript.Continue
}

func runGetFocusedMobInfo(rc *mobscript.RunContext) mobscript.Signal {
	m := self(rc)
	if m == nil {
		return mobscript.Continue
	}
	target := focused(m)
	if target == nil {
		rc.Skip("no focused mob")
		return mobscript.Continue
	}
	rc.SetVar(rc.Arg(0), mobInfoValue(m, target, mobInfo.word(rc.Int(1))))
	return mobscript.Continue
}

func runGetEventInfo(rc *mobscript.RunContext) mobscript.Signal {
	var out string
	switch eventInfo.word(rc.Int(1)) {
	case "message":
		s, ok := rc.Payload2.(string)
		if !ok {
			rc.Skip("event carries no message")
			return mobscript.Continue
		}
		out = s
	case "message_sender":
		sender, ok := rc.Payload1.(*mob.Mob)
		if !ok || sender == nil {
			rc.Skip("event carries no sender")
			return mobscript.Continue
		}
		out = sender.ID.String()
	case "body_part", "other_body_part":
		hit, ok := rc.Payload1.(mob.HitInfo)
		if !ok {
			rc.Skip("event carries no hit")
			return mobscript.Continue
		}
		out = hit.BodyPart
		if eventInfo.word(rc.Int(1)) == "other_body_part" {
			out = hit.OtherBodyPart
		}
	case "frame_signal":
		sig, ok := rc.Payload1.(int)
		if !ok {
			rc.Skip("event carries no frame signal")
			return mobscript.Continue
		}
		out = value.FormatInt(sig)
	}
	rc.SetVar(rc.Arg(0), out)
	return mobscript.Continue
}

func runGetAreaInfo(rc *mobscript.RunContext) mobscript.Signal {
	m := self(rc)
	if m == nil {
		return mobscript.Continue
	}
	w := m.World
	var out string
	switch areaInfo.word(rc.Int(1)) {
	case "day_minutes":
		out = f(w.DayMinutes)
	case "mob_count":
		out = value.FormatInt(len(w.Mobs()))
	case "time":
		out = f(w.Time)
	case "weather":
		out = w.Weather
	}
	rc.SetVar(rc.Arg(0), out)
	return mobscript.Continue
}

func runGetMobCount(rc *mobscript.RunContext) mobscript.Signal {
	if m := self(rc); m != nil {
		rc.SetVar(rc.Arg(0), value.FormatInt(m.World.CountCategory(rc.Arg(1))))
	}
	return mobscript.Continue
}
