// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package actions

import "github.com/Espyo/Pikifen-sub018/internal/mobscript"

func messageKinds() []*mobscript.InstructionKind {
	return []*mobscript.InstructionKind{
		{
			ID:     IDSendMessageToFocus,
			Name:   "send_message_to_focus",
			Params: []mobscript.Param{str("message")},
			Help:   "Sends a message to the focused mob.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				m := self(rc)
				if m == nil {
					return mobscript.Continue
				}
				t := focused(m)
				if t == nil {
					rc.Skip("no focused mob")
					return mobscript.Continue
				}
				m.World.SendMessage(m, t, rc.Arg(0))
				return mobscript.Continue
			},
		},
		{
			ID:     IDSendMessageToLinks,
			Name:   "send_message_to_links",
			Params: []mobscript.Param{str("message")},
			Help:   "Sends a message to every linked mob.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				m := self(rc)
				if m == nil {
					return mobscript.Continue
				}
				for _, l := range m.Links {
					if l != m && l.Alive() {
						m.World.SendMessage(m, l, rc.Arg(0))
					}
				}
				return mobscript.Continue
			},
		},
		{
			ID:     IDSendMessageToNearby,
			Name:   "send_message_to_nearby",
			Params: []mobscript.Param{num("distance"), str("message")},
			Help:   "Sends a message to every mob within a distance.",
			Run: func(rc *mobscript.RunContext) mobscript.Signal {
				m := self(rc)
				if m == nil {
					return mobscript.Continue
				}
				for _, o := range m.World.Nearby(m, rc.Float(0)) {
					m.World.SendMessage(m, o, rc.Arg(1))
				}
				return mobscript.Continue
			},
		},
	}
}
