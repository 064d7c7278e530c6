// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

// Package mobscript turns mob behavior scripts into validated programs and
// runs them against live entities.
//
// A script is a list of statements per FSM event. Each statement names an
// instruction kind from a Registry and supplies whitespace-separated
// arguments. Compile parses and validates a list into an immutable Program
// whose jump targets are resolved once; an Interpreter then walks that
// Program for each event firing.
package mobscript

// KindID is the stable tag of an instruction kind.
type KindID int

// KindCustomCode is the reserved slot for host-injected native callbacks.
// It has no textual name and cannot be referenced from scripts.
const KindCustomCode KindID = 0

// ParamType is the semantic type of a formal parameter.
type ParamType int

// Parameter types. Literal arguments of int, float and bool parameters are
// type-checked at load time; enum parameters are resolved by the kind's
// ExtraParse hook.
const (
	ParamString ParamType = iota
	ParamInt
	ParamFloat
	ParamBool
	ParamEnum
)

// String returns the lowercase name of the parameter type.
func (t ParamType) String() string {
	switch t {
	case ParamString:
		return "string"
	case ParamInt:
		return "int"
	case ParamFloat:
		return "float"
	case ParamBool:
		return "bool"
	case ParamEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Param describes one formal parameter of an instruction kind.
// Only the last parameter of a kind may be variadic.
type Param struct {
	Name      string
	Type      ParamType
	ConstOnly bool // a variable reference is rejected at load time
	Variadic  bool // accepts zero or more trailing arguments
}

// Flow classifies how the interpreter and validator treat a kind.
type Flow int

// Flow classes.
const (
	FlowNone Flow = iota
	FlowIf
	FlowElse
	FlowEndIf
	FlowLabel
	FlowGoto
	FlowStateChange
	FlowCustom
)

// Signal is returned by run handlers.
type Signal int

// Run handler signals.
const (
	// Continue advances to the next instruction.
	Continue Signal = iota
	// Halt stops the current program. Only custom code uses it; the
	// interpreter halts state-change kinds on its own.
	Halt
)

// InstructionKind is one registered instruction. Kinds are immutable once
// registered and shared by every program that uses them.
type InstructionKind struct {
	ID     KindID
	Name   string
	Params []Param
	Flow   Flow
	Help   string

	// ExtraParse runs once per call at load time after arity and argument
	// checks. It may rewrite literal arguments in place.
	ExtraParse func(call *ActionCall) error

	// FormatArg maps a literal rewritten by ExtraParse back to its script
	// word. Nil means literals are written out unchanged.
	FormatArg func(i int, text string) string

	// Run is invoked at run time with resolved arguments.
	Run func(rc *RunContext) Signal
}

// Variadic reports whether the last parameter accepts extra arguments.
func (k *InstructionKind) Variadic() bool {
	return len(k.Params) > 0 && k.Params[len(k.Params)-1].Variadic
}

// Mandatory returns the number of arguments every call must supply.
func (k *InstructionKind) Mandatory() int {
	if k.Variadic() {
		return len(k.Params) - 1
	}
	return len(k.Params)
}

// ParamAt returns the formal parameter bound to argument position i.
// Positions past the end map onto the variadic tail.
func (k *InstructionKind) ParamAt(i int) (Param, bool) {
	if i < len(k.Params) {
		return k.Params[i], true
	}
	if k.Variadic() {
		return k.Params[len(k.Params)-1], true
	}
	return Param{}, false
}

// Usage renders the kind's signature, e.g. "calculate dest lhs op rhs".
func (k *InstructionKind) Usage() string {
	out := k.Name
	for _, p := range k.Params {
		name := p.Name
		if p.Variadic {
			name = "[" + name + "...]"
		}
		out += " " + name
	}
	return out
}

// EventID names the FSM event a program belongs to.
type EventID string

// ResourceKind names a class of per-type resources that scripts may
// reference by name.
type ResourceKind int

// Resource kinds.
const (
	ResourceAnimation ResourceKind = iota
	ResourceBodyPart
	ResourceSound
	ResourceSpawn
	ResourceState
	ResourceStatus
	ResourceParticle
	ResourceReach
)

// String returns a human-readable resource kind name.
func (k ResourceKind) String() string {
	switch k {
	case ResourceAnimation:
		return "animation"
	case ResourceBodyPart:
		return "body part"
	case ResourceSound:
		return "sound"
	case ResourceSpawn:
		return "spawn"
	case ResourceState:
		return "state"
	case ResourceStatus:
		return "status"
	case ResourceParticle:
		return "particle generator"
	case ResourceReach:
		return "reach"
	default:
		return "resource"
	}
}

// EntityType is the load-time identity of an entity type. It is used only
// by ExtraParse hooks to check cross references.
type EntityType interface {
	TypeName() string
	HasResource(kind ResourceKind, name string) bool
}

// Entity is a live simulated object a program runs against.
type Entity interface {
	Vars() *Vars
}

// Statement is one raw script line as supplied by the content loader.
type Statement struct {
	Text string
	Line int
}
