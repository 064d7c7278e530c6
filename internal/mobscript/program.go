// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package mobscript

import "github.com/samber/oops"

// Program is the validated call list of one event with its jump targets
// resolved. Programs are immutable and may be shared by every entity of a
// type.
type Program struct {
	event EventID
	calls []*ActionCall
	// jumps[i] is the target pc for calls[i]: the false-branch target of an
	// if, the block exit of an else, the label index of a goto. Unused for
	// other kinds.
	jumps []int
}

// Event returns the event the program belongs to.
func (p *Program) Event() EventID { return p.event }

// Len returns the number of calls.
func (p *Program) Len() int {
	if p == nil {
		return 0
	}
	return len(p.calls)
}

// Call returns the call at index i.
func (p *Program) Call(i int) *ActionCall { return p.calls[i] }

// Jump returns the resolved jump target of the call at index i, or -1 when
// the call does not jump.
func (p *Program) Jump(i int) int {
	switch p.calls[i].Kind.Flow {
	case FlowIf, FlowElse, FlowGoto:
		return p.jumps[i]
	default:
		return -1
	}
}

// CustomParser offers a statement to a non-script source of calls, such
// as a custom code host. It reports false for ordinary script text.
type CustomParser func(stmt Statement, event EventID) (call *ActionCall, ok bool, err error)

// Compile parses every statement and validates the resulting list. The
// first error aborts the whole event.
func Compile(reg *Registry, stmts []Statement, owner EntityType, event EventID) (*Program, error) {
	return CompileWith(reg, stmts, owner, event, nil)
}

// CompileWith is Compile with every statement first offered to custom.
// Calls custom returns take the statement's line. Errors from either
// source count as load errors.
func CompileWith(reg *Registry, stmts []Statement, owner EntityType, event EventID, custom CustomParser) (*Program, error) {
	calls := make([]*ActionCall, 0, len(stmts))
	for _, s := range stmts {
		call, err := parseOne(reg, s, owner, event, custom)
		if err != nil {
			recordLoadError(err)
			return nil, err
		}
		calls = append(calls, call)
	}
	p, err := Validate(event, calls)
	if err != nil {
		recordLoadError(err)
		return nil, err
	}
	return p, nil
}

func parseOne(reg *Registry, s Statement, owner EntityType, event EventID, custom CustomParser) (*ActionCall, error) {
	if custom == nil {
		return Parse(reg, s, owner, event)
	}
	call, ok, err := custom(s, event)
	if err != nil {
		return nil, oops.In("mobscript").
			With("statement", s.Text).
			With("line", s.Line).
			With("event", string(event)).
			Wrap(err)
	}
	if !ok {
		return Parse(reg, s, owner, event)
	}
	call.Line = s.Line
	return call, nil
}
