// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package content

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Espyo/Pikifen-sub018/internal/datafile"
	"github.com/Espyo/Pikifen-sub018/internal/mobscript"
	"github.com/Espyo/Pikifen-sub018/internal/mobscript/value"
)

// globalState keys global events in statement line tables.
const globalState = "*"

// lineKey names one event list in a line table.
func lineKey(state, event string) string { return state + "/" + event }

// fromDataFile converts a parsed data file into a TypeDef. Data files have
// no custom code.
func fromDataFile(f *datafile.File) (*TypeDef, error) {
	d := &TypeDef{lines: make(map[string][]int)}

	for _, n := range f.Nodes {
		var err error
		switch n.Name() {
		case "name":
			d.Name = n.Value()
		case "category":
			d.Category = n.Value()
		case "requires":
			d.Requires = n.Value()
		case "initial_state":
			d.InitialState = n.Value()
		case "max_health":
			d.MaxHealth, err = number(n)
		case "radius":
			d.Radius, err = number(n)
		case "height":
			d.Height, err = number(n)
		case "speed":
			d.Speed, err = number(n)
		case "animations":
			d.Animations = names(n)
		case "body_parts":
			d.BodyParts = names(n)
		case "sounds":
			d.Sounds = names(n)
		case "statuses":
			d.Statuses = names(n)
		case "particles":
			d.Particles = names(n)
		case "reaches":
			d.Reaches, err = reaches(n)
		case "spawns":
			d.Spawns, err = spawns(n)
		case "script":
			d.States = make(map[string]map[string][]string)
			for _, s := range n.Children() {
				d.stateOrder = append(d.stateOrder, s.Name())
				d.States[s.Name()] = events(d, s.Name(), s)
			}
		case "global_events":
			d.GlobalEvents = events(d, globalState, n)
		default:
			err = fmt.Errorf("unknown key %q", n.Name())
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line(), err)
		}
	}

	if d.InitialState == "" && len(d.stateOrder) > 0 {
		d.InitialState = d.stateOrder[0]
	}
	return d, nil
}

func number(n *datafile.Node) (float64, error) {
	f, ok := value.ParseFloat(n.Value())
	if !ok {
		return 0, fmt.Errorf("%s: %q is not a number", n.Name(), n.Value())
	}
	return f, nil
}

func boolean(n *datafile.Node) (bool, error) {
	b, ok := value.ParseBool(n.Value())
	if !ok {
		return false, fmt.Errorf("%s: %q is not true or false", n.Name(), n.Value())
	}
	return b, nil
}

func names(n *datafile.Node) []string {
	out := make([]string, 0, len(n.Children()))
	for _, c := range n.Children() {
		out = append(out, c.Name())
	}
	return out
}

func reaches(n *datafile.Node) (map[string]ReachDef, error) {
	out := make(map[string]ReachDef, len(n.Children()))
	for _, c := range n.Children() {
		var r ReachDef
		for _, p := range c.Children() {
			var err error
			switch p.Name() {
			case "radius":
				r.Radius, err = number(p)
			case "angle":
				r.Angle, err = number(p)
			default:
				err = fmt.Errorf("reach %q: unknown key %q", c.Name(), p.Name())
			}
			if err != nil {
				return nil, err
			}
		}
		out[c.Name()] = r
	}
	return out, nil
}

func spawns(n *datafile.Node) (map[string]SpawnDef, error) {
	out := make(map[string]SpawnDef, len(n.Children()))
	for _, c := range n.Children() {
		var s SpawnDef
		for _, p := range c.Children() {
			var err error
			switch p.Name() {
			case "type":
				s.Type = p.Value()
			case "x":
				s.X, err = number(p)
			case "y":
				s.Y, err = number(p)
			case "z":
				s.Z, err = number(p)
			case "angle":
				s.Angle, err = number(p)
			case "momentum":
				s.Momentum, err = number(p)
			case "link_parent":
				s.LinkParent, err = boolean(p)
			case "link_child":
				s.LinkChild, err = boolean(p)
			default:
				err = fmt.Errorf("spawn %q: unknown key %q", c.Name(), p.Name())
			}
			if err != nil {
				return nil, err
			}
		}
		out[c.Name()] = s
	}
	return out, nil
}

// events reads event blocks, recording each statement's file line.
func events(d *TypeDef, state string, n *datafile.Node) map[string][]string {
	out := make(map[string][]string, len(n.Children()))
	for _, ev := range n.Children() {
		var stmts []string
		var lines []int
		for _, s := range ev.Children() {
			stmts = append(stmts, s.Text())
			lines = append(lines, s.Line())
		}
		out[ev.Name()] = stmts
		d.lines[lineKey(state, ev.Name())] = lines
	}
	return out
}

// yamlLines records the line of every statement under states and
// global_events of a YAML document.
func yamlLines(doc *yaml.Node) map[string][]int {
	out := make(map[string][]int)
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if states := mappingValue(root, "states"); states != nil {
		eachPair(states, func(state string, events *yaml.Node) {
			eachPair(events, func(ev string, list *yaml.Node) {
				out[lineKey(state, ev)] = itemLines(list)
			})
		})
	}
	if global := mappingValue(root, "global_events"); global != nil {
		eachPair(global, func(ev string, list *yaml.Node) {
			out[lineKey(globalState, ev)] = itemLines(list)
		})
	}
	return out
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func eachPair(m *yaml.Node, fn func(key string, v *yaml.Node)) {
	if m == nil || m.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		fn(m.Content[i].Value, m.Content[i+1])
	}
}

func itemLines(seq *yaml.Node) []int {
	if seq == nil || seq.Kind != yaml.SequenceNode {
		return nil
	}
	lines := make([]int, len(seq.Content))
	for i, item := range seq.Content {
		lines[i] = item.Line
	}
	return lines
}

// statements returns an event list with the best known line numbers.
func (d *TypeDef) statements(state, event string, texts []string) []mobscript.Statement {
	lines := d.lines[lineKey(state, event)]
	out := make([]mobscript.Statement, len(texts))
	for i, text := range texts {
		line := i + 1
		if i < len(lines) {
			line = lines[i]
		}
		out[i] = mobscript.Statement{Text: strings.TrimSpace(text), Line: line}
	}
	return out
}
