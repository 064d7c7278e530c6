// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package mobscript

import (
	"log/slog"

	"github.com/Espyo/Pikifen-sub018/internal/mobscript/value"
)

// RunContext is handed to a run handler for one call. It borrows the
// entity and payloads and must not be retained after the handler returns.
type RunContext struct {
	Entity   Entity
	Payload1 any
	Payload2 any

	Program *Program
	Call    *ActionCall
	// Args holds the call's arguments with variable references replaced by
	// their current values.
	Args []string

	// ReturnValue is read by the interpreter after an if handler runs.
	ReturnValue bool

	Logger *slog.Logger
}

// Arg returns resolved argument i, or "" when absent.
func (rc *RunContext) Arg(i int) string {
	if i < 0 || i >= len(rc.Args) {
		return ""
	}
	return rc.Args[i]
}

// Has reports whether argument i was supplied.
func (rc *RunContext) Has(i int) bool {
	return i >= 0 && i < len(rc.Args)
}

// Float returns argument i as a number, 0 when unparsable.
func (rc *RunContext) Float(i int) float64 { return value.Float(rc.Arg(i)) }

// Int returns argument i as an integer, 0 when unparsable.
func (rc *RunContext) Int(i int) int { return value.Int(rc.Arg(i)) }

// Bool returns argument i as a bool, false when unparsable.
func (rc *RunContext) Bool(i int) bool { return value.Bool(rc.Arg(i)) }

// Rest returns the arguments from position i on.
func (rc *RunContext) Rest(i int) []string {
	if i >= len(rc.Args) {
		return nil
	}
	return rc.Args[i:]
}

// Vars returns the entity's variable store, or nil without an entity.
func (rc *RunContext) Vars() *Vars {
	if rc.Entity == nil {
		return nil
	}
	return rc.Entity.Vars()
}

// SetVar writes a variable on the entity. It is a no-op without an entity
// or with an empty name.
func (rc *RunContext) SetVar(name, val string) {
	vars := rc.Vars()
	if vars == nil || name == "" {
		return
	}
	vars.Set(name, val)
}

// Skip logs a handler no-op at debug level.
func (rc *RunContext) Skip(reason string, args ...any) {
	if rc.Logger == nil {
		return
	}
	attrs := append([]any{
		"instruction", rc.Call.Name(),
		"line", rc.Call.Line,
		"reason", reason,
	}, args...)
	rc.Logger.Debug("instruction skipped", attrs...)
}
