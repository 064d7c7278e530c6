// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package mobscript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Espyo/Pikifen-sub018/internal/mobscript/value"
)

// fakeType is an entity type with a fixed set of sounds.
type fakeType struct {
	name   string
	sounds map[string]bool
}

func (f *fakeType) TypeName() string { return f.name }

func (f *fakeType) HasResource(kind ResourceKind, name string) bool {
	return kind == ResourceSound && f.sounds[name]
}

// fakeEntity records executed notes in order.
type fakeEntity struct {
	vars  *Vars
	trace []string
	state string
}

func newFakeEntity() *fakeEntity { return &fakeEntity{vars: NewVars()} }

func (f *fakeEntity) Vars() *Vars { return f.vars }

func (f *fakeEntity) Trace() string { return strings.Join(f.trace, " ") }

func entityOf(rc *RunContext) *fakeEntity {
	e, _ := rc.Entity.(*fakeEntity)
	return e
}

var testType = &fakeType{name: "grub", sounds: map[string]bool{"chirp": true}}

// newTestRegistry builds a registry with control flow and a few fake
// instructions.
func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	RegisterControlFlow(r)
	kinds := []*InstructionKind{
		{
			ID:     KindFirstHost,
			Name:   "note",
			Params: []Param{{Name: "text", Type: ParamString}},
			Run: func(rc *RunContext) Signal {
				if e := entityOf(rc); e != nil {
					e.trace = append(e.trace, rc.Arg(0))
				}
				return Continue
			},
		},
		{
			ID:     KindFirstHost + 1,
			Name:   "set_state",
			Params: []Param{{Name: "state", Type: ParamString, ConstOnly: true}},
			Flow:   FlowStateChange,
			Run: func(rc *RunContext) Signal {
				if e := entityOf(rc); e != nil {
					e.state = rc.Arg(0)
				}
				return Continue
			},
		},
		{
			ID:   KindFirstHost + 2,
			Name: "set_var",
			Params: []Param{
				{Name: "name", Type: ParamString, ConstOnly: true},
				{Name: "value", Type: ParamString},
			},
			Run: func(rc *RunContext) Signal {
				rc.SetVar(rc.Arg(0), rc.Arg(1))
				return Continue
			},
		},
		{
			ID:   KindFirstHost + 3,
			Name: "add",
			Params: []Param{
				{Name: "dest", Type: ParamString, ConstOnly: true},
				{Name: "amount", Type: ParamInt},
			},
			Run: func(rc *RunContext) Signal {
				total := value.Int(rc.Vars().Get(rc.Arg(0))) + rc.Int(1)
				rc.SetVar(rc.Arg(0), value.FormatInt(total))
				return Continue
			},
		},
		{
			ID:     KindFirstHost + 4,
			Name:   "say",
			Params: []Param{{Name: "words", Type: ParamString, Variadic: true}},
			Run: func(rc *RunContext) Signal {
				if e := entityOf(rc); e != nil {
					e.trace = append(e.trace, strings.Join(rc.Rest(0), "_"))
				}
				return Continue
			},
		},
		{
			ID:   KindFirstHost + 5,
			Name: "play_sound",
			Params: []Param{
				{Name: "sound", Type: ParamString},
				{Name: "loud", Type: ParamBool},
				{Name: "volume", Type: ParamFloat},
			},
			ExtraParse: func(call *ActionCall) error {
				name, ok := call.LiteralAt(0)
				if ok && !call.Owner.HasResource(ResourceSound, name) {
					return ErrUnknownResource(call, ResourceSound, name)
				}
				return nil
			},
			Run: func(rc *RunContext) Signal {
				if e := entityOf(rc); e != nil && rc.Bool(1) {
					e.trace = append(e.trace, "sound:"+rc.Arg(0))
				}
				return Continue
			},
		},
	}
	for _, k := range kinds {
		require.NoError(t, r.Register(k))
	}
	return r
}

// compile builds a program from one statement per line.
func compile(t *testing.T, r *Registry, lines ...string) (*Program, error) {
	t.Helper()
	stmts := make([]Statement, len(lines))
	for i, l := range lines {
		stmts[i] = Statement{Text: l, Line: i + 1}
	}
	return Compile(r, stmts, testType, "on_test")
}

func mustCompile(t *testing.T, r *Registry, lines ...string) *Program {
	t.Helper()
	p, err := compile(t, r, lines...)
	require.NoError(t, err)
	return p
}
