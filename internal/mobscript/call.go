// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package mobscript

import "strings"

// ActionCall is one parsed statement bound to its instruction kind.
// Calls are owned by the Program that contains them and are immutable
// once the Program is built.
type ActionCall struct {
	Kind  *InstructionKind
	Args  []Arg
	Owner EntityType // load-time only
	Event EventID
	Line  int
	// Source is the statement text the call was parsed from.
	Source string

	// Custom is the native callback of a custom-code call.
	Custom func(rc *RunContext) Signal
	// CustomName labels a custom-code call in logs and metrics.
	CustomName string
}

// NewCustomCall wraps a native callback so it can be placed in a program
// next to parsed calls.
func NewCustomCall(name string, event EventID, fn func(rc *RunContext) Signal) *ActionCall {
	return &ActionCall{
		Kind:       customCodeKind,
		Event:      event,
		Custom:     fn,
		CustomName: name,
	}
}

// Name returns the instruction name, or the custom label for custom code.
func (c *ActionCall) Name() string {
	if c.Kind == nil {
		return ""
	}
	if c.Kind.Flow == FlowCustom {
		if c.CustomName != "" {
			return c.CustomName
		}
		return "custom_code"
	}
	return c.Kind.Name
}

// Tokens re-serializes the call: the instruction name followed by each
// argument in script form.
func (c *ActionCall) Tokens() []string {
	out := make([]string, 0, len(c.Args)+1)
	out = append(out, c.Name())
	for i, a := range c.Args {
		if lit, ok := a.(Literal); ok && c.Kind != nil && c.Kind.FormatArg != nil {
			a = Literal(c.Kind.FormatArg(i, string(lit)))
		}
		out = append(out, Token(a))
	}
	return out
}

// Statement returns the source text of the call, or its re-serialized
// form for calls built without one.
func (c *ActionCall) Statement() string {
	if c.Source != "" {
		return c.Source
	}
	return strings.Join(c.Tokens(), " ")
}

// LiteralAt returns the literal text at position i. ok is false when the
// slot is absent or holds a variable reference.
func (c *ActionCall) LiteralAt(i int) (string, bool) {
	if i < 0 || i >= len(c.Args) {
		return "", false
	}
	lit, ok := c.Args[i].(Literal)
	return string(lit), ok
}

// SetLiteral replaces the argument at position i with a literal.
func (c *ActionCall) SetLiteral(i int, text string) {
	if i >= 0 && i < len(c.Args) {
		c.Args[i] = Literal(text)
	}
}
