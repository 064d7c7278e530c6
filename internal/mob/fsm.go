// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package mob

import "github.com/Espyo/Pikifen-sub018/internal/mobscript"

// maxStateChain bounds how many state changes one event may trigger,
// since each on_enter may itself change state.
const maxStateChain = 32

// HandleEvent runs the program for ev in the mob's current state, then
// applies any state change it requested.
func (m *Mob) HandleEvent(ev mobscript.EventID, payload1, payload2 any) {
	if !m.Alive() {
		return
	}
	m.run(ev, payload1, payload2)
	m.applyPendingState()
}

// RequestState records a state change to apply once the running program
// halts. Unknown states are ignored.
func (m *Mob) RequestState(name string) {
	if _, ok := m.Type.States[name]; !ok {
		m.World.logger.Debug("ignoring change to unknown state",
			"mob", m.ID.String(), "type", m.Type.Name, "state", name)
		return
	}
	m.pendingState = name
}

// PendingState returns the requested but not yet applied state.
func (m *Mob) PendingState() string { return m.pendingState }

// SetState leaves the current state and enters name, running on_leave and
// on_enter.
func (m *Mob) SetState(name string) {
	m.RequestState(name)
	m.applyPendingState()
}

func (m *Mob) run(ev mobscript.EventID, payload1, payload2 any) {
	p := m.Type.Program(m.State, ev)
	if p == nil {
		return
	}
	m.World.interp.Run(p, m, payload1, payload2)
}

func (m *Mob) applyPendingState() {
	for i := 0; m.pendingState != ""; i++ {
		if i == maxStateChain {
			m.World.logger.Warn("state change chain too long, stopping",
				"mob", m.ID.String(), "type", m.Type.Name, "state", m.State, "next", m.pendingState)
			m.pendingState = ""
			return
		}
		next := m.pendingState
		m.pendingState = ""

		if m.State != "" {
			m.run(OnLeave, nil, nil)
			if m.pendingState != "" {
				m.World.logger.Debug("ignoring state change requested by on_leave",
					"mob", m.ID.String(), "state", m.pendingState)
				m.pendingState = ""
			}
		}
		prev := m.State
		m.State = next
		stateEntered(m, prev)
		m.run(OnEnter, nil, nil)
	}
}

func stateEntered(m *Mob, prev string) {
	m.World.emit(Record{
		Kind: RecordState,
		Mob:  m,
		Text: prev + " -> " + m.State,
	})
}
