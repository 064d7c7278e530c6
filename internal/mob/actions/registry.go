// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

// Package actions is the mob instruction catalog. Every handler operates on
// a *mob.Mob and degrades to a no-op when its precondition fails.
package actions

import "github.com/Espyo/Pikifen-sub018/internal/mobscript"

// NewRegistry builds the process-wide registry: control flow plus every
// mob instruction. It panics on a duplicate, which is a programming error.
func NewRegistry() *mobscript.Registry {
	r := mobscript.NewRegistry()
	mobscript.RegisterControlFlow(r)
	r.MustRegister(Kinds()...)
	return r
}

// Kinds returns the mob instruction kinds, excluding control flow.
func Kinds() []*mobscript.InstructionKind {
	var out []*mobscript.InstructionKind
	for _, group := range [][]*mobscript.InstructionKind{
		stateKinds(),
		varKinds(),
		infoKinds(),
		movementKinds(),
		healthKinds(),
		interactionKinds(),
		messageKinds(),
		presentationKinds(),
	} {
		out = append(out, group...)
	}
	return out
}
