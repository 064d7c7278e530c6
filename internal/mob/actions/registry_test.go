// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package actions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Espyo/Pikifen-sub018/internal/mob"
	"github.com/Espyo/Pikifen-sub018/internal/mobscript"
	"github.com/Espyo/Pikifen-sub018/pkg/errutil"
)

func TestNewRegistry_Catalog(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, 85, r.Len())
	for _, name := range []string{
		"if", "else", "end_if", "label", "goto", "set_state",
		"calculate", "get_event_info", "hold_focused_mob", "send_message_to_nearby", "spawn",
	} {
		_, ok := r.Lookup(name)
		assert.True(t, ok, name)
	}

	for _, k := range r.All() {
		assert.NotEmpty(t, k.Help, k.Name)
		assert.NotNil(t, k.Run, k.Name)
		got, ok := r.ByID(k.ID)
		require.True(t, ok, k.Name)
		assert.Same(t, k, got)
	}
}

func TestNewRegistry_OnlySetStateChangesState(t *testing.T) {
	for _, k := range Kinds() {
		if k.Name == "set_state" {
			assert.Equal(t, mobscript.FlowStateChange, k.Flow)
			continue
		}
		assert.Equal(t, mobscript.FlowNone, k.Flow, k.Name)
	}
}

func TestArityForEveryKind(t *testing.T) {
	fx := newFixture(t)

	for _, k := range testRegistry.All() {
		t.Run(k.Name, func(t *testing.T) {
			if n := k.Mandatory(); n > 0 {
				_, err := fx.compile(mob.OnTick, strings.TrimSpace(k.Name+" "+strings.Repeat("x ", n-1)))
				errutil.AssertErrorCode(t, err, mobscript.CodeMissingArgument)
				errutil.AssertErrorContext(t, err, "param", k.Params[n-1].Name)
			}
			if !k.Variadic() {
				_, err := fx.compile(mob.OnTick, k.Name+strings.Repeat(" x", len(k.Params)+1))
				errutil.AssertErrorCode(t, err, mobscript.CodeTooManyArguments)
			}
		})
	}
}

// validStatements parse against newTestType and cover every kind.
var validStatements = []string{
	"set_state walk",
	"set_var mood very angry",
	"calculate total $a * 2",
	"get_random_int roll 1 6",
	"get_random_float roll 0 1",
	"get_angle a 0 0 1 1",
	"get_distance d 0 0 3 4",
	"get_coordinates_from_angle x y 90 10",
	"get_floor_z z 1 2",
	"get_info hp health",
	"get_focused_mob_info d distance",
	"get_event_info sender message_sender",
	"get_area_info t day_minutes",
	"get_mob_count n pikmin",
	"print hello there",
	"show_message_from_var mood",
	"save_focused_mob_memory 1",
	"load_focused_mob_memory 1",
	"set_timer 2.5",
	"move_to_absolute 1 2",
	"move_to_relative 1 $y",
	"move_to_target home",
	"stop",
	"stop_vertically",
	"stabilize_z highest 5",
	"teleport_to_absolute 1 2 3",
	"teleport_to_relative 1 2 3",
	"turn_to_absolute 90",
	"turn_to_relative -45",
	"turn_to_target focused_mob",
	"follow_path_to_absolute 100 100",
	"follow_path_randomly nest lake",
	"set_gravity 0.5",
	"set_height 40",
	"set_radius 20",
	"set_flying true",
	"set_near_reach near",
	"set_far_reach $reach",
	"set_sector_scroll 1 0",
	"set_can_block_paths false",
	"add_health -10",
	"set_health 50",
	"start_dying",
	"finish_dying",
	"delete",
	"receive_status poison",
	"remove_status poison",
	"set_tangible false",
	"set_hiding true",
	"set_huntable false",
	"set_holdable pikmin enemies",
	"set_team enemy_1",
	"set_shadow_visibility false",
	"focus trigger",
	"hold_focused_mob mouth above",
	"release",
	"release_stored_mobs",
	"store_focused_mob_inside",
	"throw_focused_mob 10 10 0 100",
	"link_with_focused_mob",
	"unlink_focused_mob",
	"start_chomping 3 mouth",
	"stop_chomping",
	"swallow 2",
	"swallow_all",
	"get_chomped",
	"order_release",
	"send_message_to_focus hi",
	"send_message_to_links $msg",
	"send_message_to_nearby 100 hi",
	"set_animation walk no_restart",
	"set_limb_animation idle",
	"play_sound roar sound_id",
	"stop_sound $sound_id",
	"start_particles dust 0 0 10",
	"stop_particles",
	"start_height_effect",
	"stop_height_effect",
	"spawn baby",
	"drain_liquid",
}

func TestValidStatements(t *testing.T) {
	fx := newFixture(t)
	covered := map[string]bool{}

	for _, text := range validStatements {
		t.Run(text, func(t *testing.T) {
			call, err := mobscript.Parse(testRegistry, mobscript.Statement{Text: text, Line: 1}, fx.typ, mob.OnReceiveMessage)
			require.NoError(t, err)
			covered[call.Kind.Name] = true

			again, err := mobscript.Parse(testRegistry,
				mobscript.Statement{Text: strings.Join(call.Tokens(), " ")}, fx.typ, mob.OnReceiveMessage)
			require.NoError(t, err)
			assert.Equal(t, call.Args, again.Args, "tokens re-parse to the same call")
			assert.Equal(t, text, strings.Join(call.Tokens(), " "))
		})
	}

	for _, k := range Kinds() {
		assert.True(t, covered[k.Name], "no valid statement for %s", k.Name)
	}
}

func TestLoadErrors(t *testing.T) {
	fx := newFixture(t)

	tests := []struct {
		name string
		ev   mobscript.EventID
		text string
		code string
	}{
		{"unknown state", mob.OnTick, "set_state flying", mobscript.CodeUnknownResource},
		{"state from variable", mob.OnTick, "set_state $next", mobscript.CodeVariableNotAllowed},
		{"unknown sound", mob.OnTick, "play_sound meow", mobscript.CodeUnknownResource},
		{"unknown animation", mob.OnTick, "set_animation dance", mobscript.CodeUnknownResource},
		{"unknown animation option", mob.OnTick, "set_animation walk loop", mobscript.CodeInvalidArgument},
		{"unknown body part", mob.OnTick, "hold_focused_mob tail", mobscript.CodeUnknownResource},
		{"hold option", mob.OnTick, "hold_focused_mob mouth below", mobscript.CodeInvalidArgument},
		{"too many hold options", mob.OnTick, "hold_focused_mob mouth above above", mobscript.CodeInvalidArgument},
		{"unknown chomp part", mob.OnTick, "start_chomping 2 mouth tail", mobscript.CodeUnknownResource},
		{"unknown spawn", mob.OnTick, "spawn twins", mobscript.CodeUnknownResource},
		{"unknown reach", mob.OnTick, "set_near_reach far", mobscript.CodeUnknownResource},
		{"unknown particle", mob.OnTick, "start_particles smoke", mobscript.CodeUnknownResource},
		{"unknown status", mob.OnTick, "receive_status sleepy", mobscript.CodeUnknownResource},
		{"unknown operator", mob.OnTick, "calculate x 1 ^ 2", mobscript.CodeInvalidArgument},
		{"unknown info", mob.OnTick, "get_info x mood", mobscript.CodeInvalidArgument},
		{"unknown team", mob.OnTick, "set_team blue", mobscript.CodeInvalidArgument},
		{"unknown focus target", mob.OnTick, "focus everyone", mobscript.CodeInvalidArgument},
		{"message outside message event", mob.OnTick, "get_event_info m message", mobscript.CodeInvalidArgument},
		{"body part outside damage event", mob.OnReceiveMessage, "get_event_info p body_part", mobscript.CodeInvalidArgument},
		{"frame signal outside its event", mob.OnDamage, "get_event_info s frame_signal", mobscript.CodeInvalidArgument},
		{"too many sound args", mob.OnTick, "play_sound roar a b", mobscript.CodeInvalidArgument},
		{"int literal", mob.OnTick, "get_random_int x one 6", mobscript.CodeInvalidArgument},
		{"bool literal", mob.OnTick, "set_flying maybe", mobscript.CodeInvalidArgument},
		{"float literal", mob.OnTick, "set_timer soon", mobscript.CodeInvalidArgument},
		{"unreachable after state change", mob.OnTick, "set_state walk; print never", mobscript.CodeUnreachable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := fx.compile(tt.ev, tt.text)
			require.Error(t, err)
			assert.Nil(t, p)
			errutil.AssertErrorCode(t, err, tt.code)
		})
	}
}

func TestGetEventInfo_AllowedInItsEvent(t *testing.T) {
	fx := newFixture(t)

	for ev, text := range map[mobscript.EventID]string{
		mob.OnReceiveMessage: "get_event_info m message",
		mob.OnDamage:         "get_event_info p other_body_part",
		mob.OnFrameSignal:    "get_event_info s frame_signal",
	} {
		_, err := fx.compile(ev, text)
		assert.NoError(t, err, text)
	}
}
