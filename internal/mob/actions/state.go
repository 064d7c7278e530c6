// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package actions

import "github.com/Espyo/Pikifen-sub018/internal/mobscript"

func stateKinds() []*mobscript.InstructionKind {
	return []*mobscript.InstructionKind{
		{
			ID:         IDSetState,
			Name:       "set_state",
			Params:     []mobscript.Param{constStr("state")},
			Flow:       mobscript.FlowStateChange,
			Help:       "Changes the FSM state. Nothing after it runs.",
			ExtraParse: chain(resourceAt(0, mobscript.ResourceState)),
			Run:        runSetState,
		},
	}
}

func runSetState(rc *mobscript.RunContext) mobscript.Signal {
	if m := self(rc); m != nil {
		m.RequestState(rc.Arg(0))
	}
	return mobscript.Continue
}
