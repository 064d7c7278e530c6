// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Espyo/Pikifen-sub018/internal/datafile"
	"github.com/Espyo/Pikifen-sub018/internal/mobscript"
)

func TestTypeDef_Validate(t *testing.T) {
	tests := []struct {
		name    string
		def     TypeDef
		wantErr string
	}{
		{"ok", TypeDef{Name: "x"}, ""},
		{"no name", TypeDef{}, "name is required"},
		{"no initial state", TypeDef{Name: "x", States: map[string]map[string][]string{"idle": nil}}, "initial_state is required"},
		{"unknown initial state", TypeDef{Name: "x", InitialState: "run", States: map[string]map[string][]string{"idle": nil}}, "not a declared state"},
		{"initial state without states", TypeDef{Name: "x", InitialState: "idle"}, "not a declared state"},
		{"bad event", TypeDef{Name: "x", InitialState: "idle", States: map[string]map[string][]string{"idle": {"tick": nil}}}, "not an event name"},
		{"bad global event", TypeDef{Name: "x", GlobalEvents: map[string][]string{"OnDeath": nil}}, "not an event name"},
		{"spawn without type", TypeDef{Name: "x", Spawns: map[string]SpawnDef{"baby": {}}}, "type is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.def.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTypeDef_StateNames(t *testing.T) {
	d := TypeDef{
		InitialState: "walk",
		States:       map[string]map[string][]string{"idle": nil, "walk": nil, "attack": nil},
	}
	assert.Equal(t, []string{"walk", "attack", "idle"}, d.StateNames(), "sorted after the initial state")

	d.stateOrder = []string{"idle", "walk", "attack"}
	assert.Equal(t, []string{"walk", "idle", "attack"}, d.StateNames(), "declaration order after the initial state")
}

func TestFromDataFile(t *testing.T) {
	src := `name = Bulborb
category = enemy
requires = >=1.0
max_health = 450
radius = 32
height = 40
speed = 60
sounds {
    roar
}
body_parts {
    mouth
}
statuses {
    poison
}
particles {
    dust
}
reaches {
    near {
        radius = 50
        angle = 90
    }
}
spawns {
    baby {
        type = grub
        x = 10
        y = -5
        link_parent = true
    }
}
script {
    sleep {
        on_tick {
            if $hunger >= 3
                set_state hunt
            end_if
        }
    }
    hunt {
    }
}
global_events {
    on_death {
        play_sound roar
    }
}
`
	f, err := datafile.Parse("bulborb.txt", []byte(src))
	require.NoError(t, err)

	d, err := fromDataFile(f)
	require.NoError(t, err)

	assert.Equal(t, "Bulborb", d.Name)
	assert.Equal(t, "enemy", d.Category)
	assert.Equal(t, ">=1.0", d.Requires)
	assert.Equal(t, 450.0, d.MaxHealth)
	assert.Equal(t, 32.0, d.Radius)
	assert.Equal(t, 40.0, d.Height)
	assert.Equal(t, 60.0, d.Speed)
	assert.Equal(t, []string{"roar"}, d.Sounds)
	assert.Equal(t, []string{"mouth"}, d.BodyParts)
	assert.Equal(t, []string{"poison"}, d.Statuses)
	assert.Equal(t, []string{"dust"}, d.Particles)
	assert.Equal(t, ReachDef{Radius: 50, Angle: 90}, d.Reaches["near"])
	assert.Equal(t, SpawnDef{Type: "grub", X: 10, Y: -5, LinkParent: true}, d.Spawns["baby"])
	assert.Equal(t, "sleep", d.InitialState)
	assert.Equal(t, []string{"sleep", "hunt"}, d.StateNames())
	assert.Equal(t, []string{"if $hunger >= 3", "set_state hunt", "end_if"}, d.States["sleep"]["on_tick"])
	assert.Equal(t, []string{"play_sound roar"}, d.GlobalEvents["on_death"])

	stmts := d.statements("sleep", "on_tick", d.States["sleep"]["on_tick"])
	assert.Equal(t, mobscript.Statement{Text: "if $hunger >= 3", Line: 37}, stmts[0])
	assert.Equal(t, 39, stmts[2].Line)
	assert.Equal(t, 47, d.statements(globalState, "on_death", d.GlobalEvents["on_death"])[0].Line)
	require.NoError(t, d.Validate())
}

func TestFromDataFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown key", "colour = red\n"},
		{"bad number", "radius = wide\n"},
		{"bad bool", "spawns {\n    baby {\n        type = grub\n        link_child = maybe\n    }\n}\n"},
		{"unknown reach key", "reaches {\n    near {\n        width = 3\n    }\n}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := datafile.Parse("x.txt", []byte(tt.src))
			require.NoError(t, err)
			_, err = fromDataFile(f)
			assert.Error(t, err)
		})
	}
}

func TestStatements_FallbackLines(t *testing.T) {
	d := TypeDef{}
	stmts := d.statements("idle", "on_enter", []string{"  stop  ", "delete"})

	assert.Equal(t, []mobscript.Statement{{Text: "stop", Line: 1}, {Text: "delete", Line: 2}}, stmts)
}
