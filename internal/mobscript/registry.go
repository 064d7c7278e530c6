// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package mobscript

import (
	"fmt"
	"sort"
	"sync"
)

// customCodeKind occupies KindCustomCode in every registry.
var customCodeKind = &InstructionKind{
	ID:   KindCustomCode,
	Flow: FlowCustom,
	Help: "Host-injected native callback.",
	Run: func(rc *RunContext) Signal {
		if rc.Call == nil || rc.Call.Custom == nil {
			return Continue
		}
		return rc.Call.Custom(rc)
	},
}

// Registry is the catalog of instruction kinds. It is filled once at
// startup and read-only afterwards; lookups are safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*InstructionKind
	byID   map[KindID]*InstructionKind
}

// NewRegistry creates a registry holding only the reserved custom-code slot.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*InstructionKind),
		byID:   map[KindID]*InstructionKind{KindCustomCode: customCodeKind},
	}
}

// Register adds kind to the registry. A repeated name or ID is a
// programming error and is reported as DUPLICATE_INSTRUCTION.
func (r *Registry) Register(kind *InstructionKind) error {
	if err := checkKind(kind); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[kind.Name]; ok {
		return errDuplicateInstruction(kind, "name")
	}
	if _, ok := r.byID[kind.ID]; ok {
		return errDuplicateInstruction(kind, "id")
	}
	r.byName[kind.Name] = kind
	r.byID[kind.ID] = kind
	return nil
}

func checkKind(kind *InstructionKind) error {
	if kind == nil || kind.Name == "" {
		return errMalformedInstruction(kind, "missing name")
	}
	if kind.Run == nil {
		return errMalformedInstruction(kind, "no run handler")
	}
	for i, p := range kind.Params {
		if p.Variadic && i != len(kind.Params)-1 {
			return errMalformedInstruction(kind, "only the last parameter may be variadic")
		}
	}
	return nil
}

// MustRegister registers every kind and panics on the first failure.
// It is meant for startup code where a failure is a programming error.
func (r *Registry) MustRegister(kinds ...*InstructionKind) {
	for _, k := range kinds {
		if err := r.Register(k); err != nil {
			panic(fmt.Sprintf("mobscript: %v", err))
		}
	}
}

// Lookup returns the kind registered under name.
func (r *Registry) Lookup(name string) (*InstructionKind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	k, ok := r.byName[name]
	return k, ok
}

// ByID returns the kind registered under id, including the custom slot.
func (r *Registry) ByID(id KindID) (*InstructionKind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	k, ok := r.byID[id]
	return k, ok
}

// All returns the named kinds sorted by name.
func (r *Registry) All() []*InstructionKind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*InstructionKind, 0, len(r.byName))
	for _, k := range r.byName {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of named kinds.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}
