// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package mobscript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Espyo/Pikifen-sub018/pkg/errutil"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	kind := &InstructionKind{ID: KindFirstHost, Name: "wave", Run: noop}

	require.NoError(t, r.Register(kind))

	got, ok := r.Lookup("wave")
	require.True(t, ok)
	assert.Same(t, kind, got)

	byID, ok := r.ByID(KindFirstHost)
	require.True(t, ok)
	assert.Same(t, kind, byID)
}

func TestRegistry_CustomCodeSlot(t *testing.T) {
	r := NewRegistry()

	k, ok := r.ByID(KindCustomCode)
	require.True(t, ok)
	assert.Equal(t, FlowCustom, k.Flow)
	assert.Empty(t, k.Name)

	_, ok = r.Lookup("")
	assert.False(t, ok, "custom code must not be reachable by name")
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&InstructionKind{ID: 20, Name: "wave", Run: noop}))

	err := r.Register(&InstructionKind{ID: 21, Name: "wave", Run: noop})
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, CodeDuplicateInstruction)
	errutil.AssertErrorContext(t, err, "field", "name")
}

func TestRegistry_DuplicateID(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&InstructionKind{ID: 20, Name: "wave", Run: noop}))

	err := r.Register(&InstructionKind{ID: 20, Name: "nod", Run: noop})
	errutil.AssertErrorCode(t, err, CodeDuplicateInstruction)
	errutil.AssertErrorContext(t, err, "field", "id")

	err = r.Register(&InstructionKind{ID: KindCustomCode, Name: "sneaky", Run: noop})
	errutil.AssertErrorCode(t, err, CodeDuplicateInstruction)
}

func TestRegistry_RejectsMalformedKinds(t *testing.T) {
	tests := []struct {
		name string
		kind *InstructionKind
	}{
		{"nil kind", nil},
		{"empty name", &InstructionKind{ID: 30, Run: noop}},
		{"no run handler", &InstructionKind{ID: 30, Name: "x"}},
		{"variadic not last", &InstructionKind{ID: 30, Name: "x", Run: noop, Params: []Param{
			{Name: "a", Variadic: true},
			{Name: "b"},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errutil.AssertErrorCode(t, NewRegistry().Register(tt.kind), CodeMalformedInstruction)
		})
	}
}

func TestRegistry_MustRegisterPanicsOnDuplicate(t *testing.T) {
	r := NewRegistry()
	RegisterControlFlow(r)
	assert.Panics(t, func() { RegisterControlFlow(r) })
}

func TestRegistry_AllSortedByName(t *testing.T) {
	r := newTestRegistry(t)
	all := r.All()
	require.Len(t, all, r.Len())
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Name, all[i].Name)
	}
}

func TestInstructionKind_Arity(t *testing.T) {
	fixed := &InstructionKind{Name: "move", Params: []Param{{Name: "x"}, {Name: "y"}}}
	assert.False(t, fixed.Variadic())
	assert.Equal(t, 2, fixed.Mandatory())
	_, ok := fixed.ParamAt(2)
	assert.False(t, ok)
	assert.Equal(t, "move x y", fixed.Usage())

	tail := &InstructionKind{Name: "say", Params: []Param{{Name: "first"}, {Name: "rest", Variadic: true}}}
	assert.True(t, tail.Variadic())
	assert.Equal(t, 1, tail.Mandatory())
	p, ok := tail.ParamAt(7)
	require.True(t, ok)
	assert.Equal(t, "rest", p.Name)
	assert.Equal(t, "say first [rest...]", tail.Usage())
}
