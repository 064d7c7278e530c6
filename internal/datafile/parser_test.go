// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package datafile_test

import (
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Espyo/Pikifen-sub018/internal/datafile"
	"github.com/Espyo/Pikifen-sub018/pkg/errutil"
)

const bulborb = `// Bulborb
name = Bulborb
max_health = 450

sounds {
    roar {}
}

script {
    idle {
        on_enter {
            set_animation idle
            if $hunger >= 3
                set_state hunt
            end_if
        }
        on_receive_message {
            get_event_info msg message
            if $msg = food // only food matters
                set_var hunger 0
            end_if
        }
    }
}
`

func TestParse_Structure(t *testing.T) {
	f, err := datafile.Parse("bulborb.mob", []byte(bulborb))
	require.NoError(t, err)

	name := f.Child("name")
	require.NotNil(t, name)
	assert.True(t, name.HasValue())
	assert.Equal(t, "Bulborb", name.Value())
	assert.Equal(t, 2, name.Line())
	assert.Equal(t, "450", f.Child("max_health").Value())

	sounds := f.Child("sounds")
	require.NotNil(t, sounds)
	require.Len(t, sounds.Children(), 1)
	roar := sounds.Children()[0]
	assert.Equal(t, "roar", roar.Name())
	assert.True(t, roar.IsBlock())
	assert.Empty(t, roar.Children())

	onEnter := f.Child("script").Child("idle").Child("on_enter")
	require.NotNil(t, onEnter)
	var lines []string
	for _, n := range onEnter.Children() {
		lines = append(lines, n.Text())
	}
	assert.Equal(t, []string{"set_animation idle", "if $hunger >= 3", "set_state hunt", "end_if"}, lines)
	assert.Equal(t, 12, onEnter.Children()[0].Line())
}

func TestParse_AssignmentInsideStatement(t *testing.T) {
	f, err := datafile.Parse("bulborb.mob", []byte(bulborb))
	require.NoError(t, err)

	ifLine := f.Child("script").Child("idle").Child("on_receive_message").Children()[1]

	assert.Equal(t, "if $msg", ifLine.Name())
	assert.Equal(t, "food", ifLine.Value())
	assert.Equal(t, "if $msg = food", ifLine.Text(), "comments are dropped")
}

func TestParse_ComparisonWordsStayWhole(t *testing.T) {
	for _, op := range []string{"==", "!=", "<=", ">=", "<", ">"} {
		f, err := datafile.Parse("x", []byte("if $a "+op+" 1\n"))
		require.NoError(t, err, op)
		require.Len(t, f.Nodes, 1)
		assert.False(t, f.Nodes[0].HasValue(), op)
		assert.Equal(t, "if $a "+op+" 1", f.Nodes[0].Text())
	}
}

func TestParse_EmptyValueAndWindowsNewlines(t *testing.T) {
	f, err := datafile.Parse("x", []byte("description =\r\nname = Grub\r\n"))
	require.NoError(t, err)

	require.Len(t, f.Nodes, 2)
	assert.True(t, f.Nodes[0].HasValue())
	assert.Empty(t, f.Nodes[0].Value())
	assert.Equal(t, "description =", f.Nodes[0].Text())
	assert.Equal(t, "Grub", f.Child("name").Value())
}

func TestParse_EmptyInput(t *testing.T) {
	f, err := datafile.Parse("x", []byte("\n// nothing here\n\n"))
	require.NoError(t, err)
	assert.Empty(t, f.Nodes)
	assert.Nil(t, f.Child("name"))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unclosed block", "script {\n  idle {\n  }\n"},
		{"stray close", "name = a\n}\n"},
		{"value after block", "a {\n} = 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := datafile.Parse("bad.mob", []byte(tt.src))
			require.Error(t, err)
			errutil.AssertErrorCode(t, err, datafile.CodeSyntax)
			errutil.AssertErrorContext(t, err, "file", "bad.mob")
			oopsErr, ok := oops.AsOops(err)
			require.True(t, ok)
			assert.Positive(t, oopsErr.Context()["line"])
		})
	}
}
