// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package mob

import (
	"sort"

	"github.com/jakecoffman/cp"

	"github.com/Espyo/Pikifen-sub018/internal/mobscript"
)

// Spawn describes a spawn block: what the spawn instruction creates.
type Spawn struct {
	TypeName   string
	Offset     cp.Vector // relative to the spawner, rotated by its angle
	Z          float64
	Angle      float64
	LinkParent bool // the child links back to the spawner
	LinkChild  bool // the spawner links to the child
	Momentum   float64
}

// Reach is a named detection range.
type Reach struct {
	Radius float64
	Angle  float64 // full arc in radians, 0 for a full circle
}

// State is one FSM state of a type.
type State struct {
	Name   string
	Events map[mobscript.EventID]*mobscript.Program
}

// Type is a mob type: its named resources and its FSM. A Type satisfies
// mobscript.EntityType so scripts can check references while loading.
type Type struct {
	Name      string
	Category  string
	Requires  string
	MaxHealth float64
	Radius    float64
	Height    float64
	Speed     float64

	Spawns  map[string]Spawn
	Reaches map[string]Reach

	States       map[string]*State
	InitialState string
	Global       map[mobscript.EventID]*mobscript.Program

	resources map[mobscript.ResourceKind]map[string]bool
}

// NewType creates an empty type.
func NewType(name string) *Type {
	return &Type{
		Name:      name,
		Spawns:    make(map[string]Spawn),
		Reaches:   make(map[string]Reach),
		States:    make(map[string]*State),
		Global:    make(map[mobscript.EventID]*mobscript.Program),
		resources: make(map[mobscript.ResourceKind]map[string]bool),
	}
}

// TypeName implements mobscript.EntityType.
func (t *Type) TypeName() string { return t.Name }

// HasResource implements mobscript.EntityType.
func (t *Type) HasResource(kind mobscript.ResourceKind, name string) bool {
	switch kind {
	case mobscript.ResourceState:
		_, ok := t.States[name]
		return ok
	case mobscript.ResourceSpawn:
		_, ok := t.Spawns[name]
		return ok
	case mobscript.ResourceReach:
		_, ok := t.Reaches[name]
		return ok
	default:
		return t.resources[kind][name]
	}
}

// AddResources declares named resources of one kind.
func (t *Type) AddResources(kind mobscript.ResourceKind, names ...string) {
	set := t.resources[kind]
	if set == nil {
		set = make(map[string]bool, len(names))
		t.resources[kind] = set
	}
	for _, n := range names {
		set[n] = true
	}
}

// Resources lists the declared names of one kind, sorted.
func (t *Type) Resources(kind mobscript.ResourceKind) []string {
	var names []string
	switch kind {
	case mobscript.ResourceState:
		for n := range t.States {
			names = append(names, n)
		}
	case mobscript.ResourceSpawn:
		for n := range t.Spawns {
			names = append(names, n)
		}
	case mobscript.ResourceReach:
		for n := range t.Reaches {
			names = append(names, n)
		}
	default:
		for n := range t.resources[kind] {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// AddState declares a state. Its programs are attached later, once every
// state name is known.
func (t *Type) AddState(name string) *State {
	if s, ok := t.States[name]; ok {
		return s
	}
	s := &State{Name: name, Events: make(map[mobscript.EventID]*mobscript.Program)}
	t.States[name] = s
	if t.InitialState == "" {
		t.InitialState = name
	}
	return s
}

// Program returns the program run for ev in state. State programs win over
// global ones.
func (t *Type) Program(state string, ev mobscript.EventID) *mobscript.Program {
	if s, ok := t.States[state]; ok {
		if p := s.Events[ev]; p != nil {
			return p
		}
	}
	return t.Global[ev]
}
