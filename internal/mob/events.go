// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package mob

import "github.com/Espyo/Pikifen-sub018/internal/mobscript"

// Event ids understood by the reference FSM.
const (
	OnEnter            mobscript.EventID = "on_enter"
	OnLeave            mobscript.EventID = "on_leave"
	OnTick             mobscript.EventID = "on_tick"
	OnTimer            mobscript.EventID = "on_timer"
	OnReceiveMessage   mobscript.EventID = "on_receive_message"
	OnTouchObject      mobscript.EventID = "on_touch_object"
	OnTouchedByMob     mobscript.EventID = "on_touched_by_mob"
	OnDamage           mobscript.EventID = "on_damage"
	OnDeath            mobscript.EventID = "on_death"
	OnAnimationEnd     mobscript.EventID = "on_animation_end"
	OnFrameSignal      mobscript.EventID = "on_frame_signal"
	OnFocusOffReach    mobscript.EventID = "on_focus_off_reach"
	OnFarFromHome      mobscript.EventID = "on_far_from_home"
	OnReachDestination mobscript.EventID = "on_reach_destination"
	OnHeld             mobscript.EventID = "on_held"
	OnReleased         mobscript.EventID = "on_released"
	OnSwallowed        mobscript.EventID = "on_swallowed"
	OnLanded           mobscript.EventID = "on_landed"
	OnStartHiding      mobscript.EventID = "on_start_hiding"
	OnItch             mobscript.EventID = "on_itch"
	OnReleaseOrder     mobscript.EventID = "on_release_order"
)

var knownEvents = map[mobscript.EventID]bool{
	OnEnter: true, OnLeave: true, OnTick: true, OnTimer: true,
	OnReceiveMessage: true, OnTouchObject: true, OnTouchedByMob: true,
	OnDamage: true, OnDeath: true, OnAnimationEnd: true, OnFrameSignal: true,
	OnFocusOffReach: true, OnFarFromHome: true, OnReachDestination: true,
	OnHeld: true, OnReleased: true, OnSwallowed: true, OnLanded: true,
	OnStartHiding: true, OnItch: true, OnReleaseOrder: true,
}

// IsEvent reports whether id names a known event.
func IsEvent(id mobscript.EventID) bool { return knownEvents[id] }

// HitInfo is the payload of on_damage.
type HitInfo struct {
	Attacker      *Mob
	Damage        float64
	BodyPart      string // the part of the receiver that was hit
	OtherBodyPart string // the part of the attacker that hit
}
