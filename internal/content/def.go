// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

// Package content loads mob type definitions from YAML and data files,
// compiles their scripts and keeps them fresh on disk changes.
package content

import (
	"fmt"
	"regexp"
	"sort"
)

// TypeDef is the on-disk form of a mob type.
type TypeDef struct {
	Name         string                         `yaml:"name" json:"name" jsonschema:"minLength=1"`
	Category     string                         `yaml:"category,omitempty" json:"category,omitempty"`
	Requires     string                         `yaml:"requires,omitempty" json:"requires,omitempty" jsonschema:"description=Semver constraint on the engine version"`
	MaxHealth    float64                        `yaml:"max_health,omitempty" json:"max_health,omitempty" jsonschema:"minimum=0"`
	Radius       float64                        `yaml:"radius,omitempty" json:"radius,omitempty" jsonschema:"minimum=0"`
	Height       float64                        `yaml:"height,omitempty" json:"height,omitempty" jsonschema:"minimum=0"`
	Speed        float64                        `yaml:"speed,omitempty" json:"speed,omitempty" jsonschema:"minimum=0"`
	Animations   []string                       `yaml:"animations,omitempty" json:"animations,omitempty"`
	BodyParts    []string                       `yaml:"body_parts,omitempty" json:"body_parts,omitempty"`
	Sounds       []string                       `yaml:"sounds,omitempty" json:"sounds,omitempty"`
	Statuses     []string                       `yaml:"statuses,omitempty" json:"statuses,omitempty"`
	Particles    []string                       `yaml:"particles,omitempty" json:"particles,omitempty"`
	Reaches      map[string]ReachDef            `yaml:"reaches,omitempty" json:"reaches,omitempty"`
	Spawns       map[string]SpawnDef            `yaml:"spawns,omitempty" json:"spawns,omitempty"`
	InitialState string                         `yaml:"initial_state,omitempty" json:"initial_state,omitempty"`
	States       map[string]map[string][]string `yaml:"states,omitempty" json:"states,omitempty" jsonschema:"description=State name to event name to statements"`
	GlobalEvents map[string][]string            `yaml:"global_events,omitempty" json:"global_events,omitempty"`
	Lua          map[string]string              `yaml:"lua,omitempty" json:"lua,omitempty" jsonschema:"description=Custom code chunks referenced as lua:<name> statements"`

	// stateOrder keeps the declaration order of data files.
	stateOrder []string
	// lines maps lineKey(state, event) to the source line of each statement.
	lines map[string][]int
}

// ReachDef is a named detection range.
type ReachDef struct {
	Radius float64 `yaml:"radius" json:"radius" jsonschema:"minimum=0"`
	Angle  float64 `yaml:"angle,omitempty" json:"angle,omitempty" jsonschema:"minimum=0,maximum=360"`
}

// SpawnDef describes a mob created by the spawn instruction.
type SpawnDef struct {
	Type       string  `yaml:"type" json:"type" jsonschema:"minLength=1"`
	X          float64 `yaml:"x,omitempty" json:"x,omitempty"`
	Y          float64 `yaml:"y,omitempty" json:"y,omitempty"`
	Z          float64 `yaml:"z,omitempty" json:"z,omitempty"`
	Angle      float64 `yaml:"angle,omitempty" json:"angle,omitempty"`
	LinkParent bool    `yaml:"link_parent,omitempty" json:"link_parent,omitempty"`
	LinkChild  bool    `yaml:"link_child,omitempty" json:"link_child,omitempty"`
	Momentum   float64 `yaml:"momentum,omitempty" json:"momentum,omitempty"`
}

var eventPattern = regexp.MustCompile(`^on_[a-z_]+$`)

// Validate checks constraints the schema cannot express.
func (d *TypeDef) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(d.States) > 0 {
		if d.InitialState == "" {
			return fmt.Errorf("initial_state is required when states are declared")
		}
		if _, ok := d.States[d.InitialState]; !ok {
			return fmt.Errorf("initial_state %q is not a declared state", d.InitialState)
		}
	} else if d.InitialState != "" {
		return fmt.Errorf("initial_state %q is not a declared state", d.InitialState)
	}
	for state, events := range d.States {
		for ev := range events {
			if !eventPattern.MatchString(ev) {
				return fmt.Errorf("state %q: %q is not an event name", state, ev)
			}
		}
	}
	for ev := range d.GlobalEvents {
		if !eventPattern.MatchString(ev) {
			return fmt.Errorf("global_events: %q is not an event name", ev)
		}
	}
	for name, s := range d.Spawns {
		if s.Type == "" {
			return fmt.Errorf("spawn %q: type is required", name)
		}
	}
	return nil
}

// StateNames returns the states in declaration order when known, sorted
// otherwise, with the initial state first.
func (d *TypeDef) StateNames() []string {
	names := d.stateOrder
	if len(names) != len(d.States) {
		names = make([]string, 0, len(d.States))
		for s := range d.States {
			names = append(names, s)
		}
		sort.Strings(names)
	}
	out := make([]string, 0, len(names))
	if d.InitialState != "" {
		out = append(out, d.InitialState)
	}
	for _, s := range names {
		if s != d.InitialState {
			out = append(out, s)
		}
	}
	return out
}
