// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package mob

import (
	"github.com/jakecoffman/cp"
	"github.com/oklog/ulid/v2"

	"github.com/Espyo/Pikifen-sub018/internal/mobscript"
)

// Mob is a live entity. All fields are owned by the World's simulation
// goroutine; scripts mutate them only through instruction handlers.
type Mob struct {
	ID    ulid.ULID
	Type  *Type
	World *World

	vars *mobscript.Vars

	Pos   cp.Vector
	Z     float64
	Angle float64
	Home  cp.Vector

	// Movement.
	Speed    float64
	ZSpeed   float64
	Target   *cp.Vector
	ChaseMob *Mob
	Path     []cp.Vector
	Gravity  float64
	Flying   bool

	Radius       float64
	Height       float64
	Health       float64
	MaxHealth    float64
	Dying        bool
	Dead         bool
	Deleted      bool
	Tangible     bool
	Hiding       bool
	Huntable     bool
	Holdable     []string
	Team         string
	ShadowHidden bool
	BlocksPaths  bool
	NearReach    string
	FarReach     string
	SectorScroll cp.Vector
	HeightEffect bool
	Statuses     map[string]bool

	State        string
	pendingState string

	Parent     *Mob
	Focus      *Mob
	Links      []*Mob
	Holder     *Mob
	Held       []*Mob
	HoldPart   string
	HoldAbove  bool
	Stored     []*Mob
	Memory     map[string]*Mob
	ChompParts []string
	ChompMax   int
	Chomped    []*Mob
	SwallowCap int

	// Timer counts down in seconds; zero is off.
	Timer float64

	Animation     string
	LimbAnimation string
	Particles     []string
}

func newMob(w *World, t *Type, pos cp.Vector, angle float64) *Mob {
	return &Mob{
		ID:        NewID(),
		Type:      t,
		World:     w,
		vars:      mobscript.NewVars(),
		Pos:       pos,
		Home:      pos,
		Angle:     angle,
		Speed:     t.Speed,
		Gravity:   1,
		Radius:    t.Radius,
		Height:    t.Height,
		Health:    t.MaxHealth,
		MaxHealth: t.MaxHealth,
		Tangible:  true,
		Huntable:  true,
		Statuses:  make(map[string]bool),
		Memory:    make(map[string]*Mob),
	}
}

// Vars implements mobscript.Entity.
func (m *Mob) Vars() *mobscript.Vars { return m.vars }

// Alive reports whether the mob still takes part in the simulation.
func (m *Mob) Alive() bool {
	return m != nil && !m.Dead && !m.Deleted
}

// DistanceTo returns the planar distance between two mobs.
func (m *Mob) DistanceTo(o *Mob) float64 {
	return m.Pos.Distance(o.Pos)
}

// AngleTo returns the angle from m to o.
func (m *Mob) AngleTo(o *Mob) float64 {
	return o.Pos.Sub(m.Pos).ToAngle()
}

// MoveTo starts a straight move towards pos.
func (m *Mob) MoveTo(pos cp.Vector) {
	m.ChaseMob = nil
	m.Path = nil
	m.Target = &pos
}

// Chase starts moving towards another mob; the target follows it.
func (m *Mob) Chase(o *Mob) {
	m.Path = nil
	m.ChaseMob = o
	pos := o.Pos
	m.Target = &pos
}

// Stop cancels any movement.
func (m *Mob) Stop() {
	m.Target = nil
	m.ChaseMob = nil
	m.Path = nil
}

// Link adds a one-way link to o.
func (m *Mob) Link(o *Mob) {
	for _, l := range m.Links {
		if l == o {
			return
		}
	}
	m.Links = append(m.Links, o)
}

// Unlink removes the link to o, if any.
func (m *Mob) Unlink(o *Mob) {
	m.Links = without(m.Links, o)
}

// Hold makes m hold o on body part part.
func (m *Mob) Hold(o *Mob, part string, above bool) {
	if o.Holder != nil {
		o.Holder.Held = without(o.Holder.Held, o)
	}
	o.Holder = m
	o.HoldPart = part
	o.HoldAbove = above
	m.Held = append(m.Held, o)
}

// Release drops everything m holds.
func (m *Mob) Release() []*Mob {
	released := m.Held
	for _, o := range released {
		o.Holder = nil
		o.HoldPart = ""
		o.Pos = m.Pos
	}
	m.Held = nil
	return released
}

// Drop releases only o, if m holds it.
func (m *Mob) Drop(o *Mob) bool {
	if o.Holder != m {
		return false
	}
	m.Held = without(m.Held, o)
	o.Holder = nil
	o.HoldPart = ""
	return true
}

// Store puts o inside m.
func (m *Mob) Store(o *Mob) {
	if o.Holder != nil {
		o.Holder.Held = without(o.Holder.Held, o)
		o.Holder = nil
	}
	o.Hiding = true
	o.Tangible = false
	m.Stored = append(m.Stored, o)
}

// ReleaseStored empties m's storage next to it.
func (m *Mob) ReleaseStored() []*Mob {
	out := m.Stored
	for _, o := range out {
		o.Hiding = false
		o.Tangible = true
		o.Pos = m.Pos
	}
	m.Stored = nil
	return out
}

func without(list []*Mob, o *Mob) []*Mob {
	out := list[:0]
	for _, l := range list {
		if l != o {
			out = append(out, l)
		}
	}
	return out
}
