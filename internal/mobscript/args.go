// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package mobscript

import "strings"

const varMarker = "$"

// Arg is one argument slot of an ActionCall: a Literal or a VariableRef.
type Arg interface {
	isArg()
	// Text is the literal text or the variable name, without markers.
	Text() string
}

// Literal is argument text passed through verbatim.
type Literal string

// VariableRef reads the named variable from the entity's store at run time.
type VariableRef string

func (Literal) isArg()     {}
func (VariableRef) isArg() {}

// Text returns the literal value.
func (l Literal) Text() string { return string(l) }

// Text returns the variable name.
func (v VariableRef) Text() string { return string(v) }

// Token re-serializes an argument to its script form. Literals beginning
// with the marker are escaped with a second marker.
func Token(a Arg) string {
	switch v := a.(type) {
	case VariableRef:
		return varMarker + string(v)
	case Literal:
		if strings.HasPrefix(string(v), varMarker) {
			return varMarker + string(v)
		}
		return string(v)
	default:
		return ""
	}
}

// parseWord classifies one script word. ok is false for a bare marker.
func parseWord(word string) (arg Arg, ok bool) {
	switch {
	case strings.HasPrefix(word, varMarker+varMarker):
		return Literal(word[len(varMarker):]), true
	case strings.HasPrefix(word, varMarker):
		name := word[len(varMarker):]
		if name == "" {
			return nil, false
		}
		return VariableRef(name), true
	default:
		return Literal(word), true
	}
}
