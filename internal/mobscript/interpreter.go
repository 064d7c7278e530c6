// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package mobscript

import (
	"fmt"
	"log/slog"
)

// Outcome summarizes one interpreter pass.
type Outcome struct {
	Steps        int
	Halted       bool // stopped before running off the end
	StateChanged bool
	ReturnValue  bool
	StepLimitHit bool
}

// Interpreter runs programs. It holds no per-run state and is safe for
// concurrent use against different entities.
type Interpreter struct {
	stepLimit int
	logger    *slog.Logger
}

// InterpreterOption configures an Interpreter during construction.
type InterpreterOption func(*Interpreter)

// WithStepLimit stops a run after n executed calls. Zero means unlimited,
// which is the default: a goto cycle otherwise runs until the host stops
// calling. Enabling a limit changes script behavior.
func WithStepLimit(n int) InterpreterOption {
	return func(in *Interpreter) {
		if n > 0 {
			in.stepLimit = n
		}
	}
}

// WithLogger sets the logger handed to run handlers.
func WithLogger(l *slog.Logger) InterpreterOption {
	return func(in *Interpreter) {
		if l != nil {
			in.logger = l
		}
	}
}

// NewInterpreter creates an interpreter.
func NewInterpreter(opts ...InterpreterOption) *Interpreter {
	in := &Interpreter{logger: slog.Default()}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// StepLimit returns the configured step limit, 0 when unlimited.
func (in *Interpreter) StepLimit() int { return in.stepLimit }

// Run executes p against entity and returns the final return value.
func (in *Interpreter) Run(p *Program, entity Entity, payload1, payload2 any) bool {
	return in.Execute(p, entity, payload1, payload2).ReturnValue
}

// Execute executes p against entity.
//
// The pass ends when the program counter runs off the end, after a
// state-change call, or when custom code returns Halt. Handlers never
// fail; a panicking handler is logged and treated as a no-op.
func (in *Interpreter) Execute(p *Program, entity Entity, payload1, payload2 any) Outcome {
	var out Outcome
	if p.Len() == 0 {
		return out
	}
	programsRun.WithLabelValues(string(p.event)).Inc()
	defer func() { runSteps.Observe(float64(out.Steps)) }()

	rc := &RunContext{
		Entity:   entity,
		Payload1: payload1,
		Payload2: payload2,
		Program:  p,
		Logger:   in.logger,
	}

	pc := 0
	for pc < len(p.calls) {
		if in.stepLimit > 0 && out.Steps >= in.stepLimit {
			out.StepLimitHit = true
			out.Halted = true
			stepLimitHits.Inc()
			in.logger.Warn("step limit reached, halting program",
				"event", string(p.event),
				"limit", in.stepLimit,
				"pc", pc)
			break
		}

		call := p.calls[pc]
		out.Steps++
		instructionsExecuted.WithLabelValues(call.Name()).Inc()

		switch call.Kind.Flow {
		case FlowIf:
			rc.ReturnValue = false
			in.invoke(rc, call)
			if rc.ReturnValue {
				pc++
			} else {
				pc = p.jumps[pc]
			}
		case FlowElse, FlowGoto:
			pc = p.jumps[pc]
		case FlowEndIf, FlowLabel:
			pc++
		case FlowStateChange:
			in.invoke(rc, call)
			stateChanges.Inc()
			out.StateChanged = true
			out.Halted = true
			out.ReturnValue = rc.ReturnValue
			return out
		default:
			if in.invoke(rc, call) == Halt {
				out.Halted = true
				out.ReturnValue = rc.ReturnValue
				return out
			}
			pc++
		}
	}
	out.ReturnValue = rc.ReturnValue
	return out
}

// invoke resolves the call's arguments and runs its handler.
func (in *Interpreter) invoke(rc *RunContext, call *ActionCall) (sig Signal) {
	rc.Call = call
	rc.Args = resolveArgs(make([]string, 0, len(call.Args)), call.Args, rc.Vars())

	defer func() {
		if r := recover(); r != nil {
			in.logger.Error("instruction handler panicked",
				"instruction", call.Name(),
				"line", call.Line,
				"panic", fmt.Sprint(r))
			sig = Continue
		}
	}()
	return call.Kind.Run(rc)
}

// resolveArgs appends the run-time text of every argument to dst. A
// missing variable reads as "".
func resolveArgs(dst []string, args []Arg, vars *Vars) []string {
	for _, a := range args {
		switch a := a.(type) {
		case Literal:
			dst = append(dst, string(a))
		case VariableRef:
			dst = append(dst, vars.Get(string(a)))
		}
	}
	return dst
}
