// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package mob_test

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Espyo/Pikifen-sub018/internal/mob"
	"github.com/Espyo/Pikifen-sub018/internal/mob/actions"
	"github.com/Espyo/Pikifen-sub018/internal/mobscript"
)

var registry = actions.NewRegistry()

// script maps state -> event -> statements.
type script map[string]map[mobscript.EventID]string

// buildType declares every state, then compiles every program. The first
// state in sorted order is initial unless initial is set.
func buildType(t *testing.T, name, initial string, s script) *mob.Type {
	t.Helper()
	typ := mob.NewType(name)
	typ.MaxHealth = 100
	typ.Speed = 10
	typ.AddResources(mobscript.ResourceAnimation, "idle", "walk")
	typ.AddResources(mobscript.ResourceSound, "chirp")

	states := make([]string, 0, len(s))
	for st := range s {
		states = append(states, st)
	}
	sort.Strings(states)
	for _, st := range states {
		typ.AddState(st)
	}
	if initial != "" {
		typ.InitialState = initial
	}
	for st, events := range s {
		for ev, text := range events {
			p, err := mobscript.Compile(registry, statements(text), typ, ev)
			require.NoError(t, err, "%s/%s", st, ev)
			typ.States[st].Events[ev] = p
		}
	}
	return typ
}

// statements splits text on ';'.
func statements(text string) []mobscript.Statement {
	var out []mobscript.Statement
	for i, part := range strings.Split(text, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		out = append(out, mobscript.Statement{Text: part, Line: i + 1})
	}
	return out
}
