// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package mobscript

import (
	"fmt"

	"github.com/samber/oops"
)

// Error codes for load-time failures. Run-time conditions never produce
// errors.
const (
	CodeEmptyStatement       = "EMPTY_STATEMENT"
	CodeUnknownInstruction   = "UNKNOWN_INSTRUCTION"
	CodeMissingArgument      = "MISSING_ARGUMENT"
	CodeTooManyArguments     = "TOO_MANY_ARGUMENTS"
	CodeVariableNotAllowed   = "VARIABLE_NOT_ALLOWED"
	CodeInvalidVariable      = "INVALID_VARIABLE"
	CodeInvalidArgument      = "INVALID_ARGUMENT"
	CodeUnknownResource      = "UNKNOWN_RESOURCE"
	CodeElseWithoutIf        = "ELSE_WITHOUT_IF"
	CodeEndIfWithoutIf       = "END_IF_WITHOUT_IF"
	CodeIfWithoutEndIf       = "IF_WITHOUT_END_IF"
	CodeDuplicateElse        = "DUPLICATE_ELSE"
	CodeDuplicateLabel       = "DUPLICATE_LABEL"
	CodeUnknownLabel         = "UNKNOWN_LABEL"
	CodeUnreachable          = "UNREACHABLE_STATEMENT"
	CodeDuplicateInstruction = "DUPLICATE_INSTRUCTION"
	CodeMalformedInstruction = "MALFORMED_INSTRUCTION"
)

// callError starts an oops builder carrying the statement context of call.
func callError(code string, call *ActionCall) oops.OopsErrorBuilder {
	b := oops.In("mobscript").Code(code)
	if call == nil {
		return b
	}
	b = b.With("statement", call.Statement()).With("line", call.Line)
	if call.Event != "" {
		b = b.With("event", string(call.Event))
	}
	return b
}

func errEmptyStatement(stmt Statement, event EventID) error {
	return oops.In("mobscript").Code(CodeEmptyStatement).
		With("line", stmt.Line).
		With("event", string(event)).
		Errorf("empty statement")
}

func errUnknownInstruction(stmt Statement, event EventID, name string) error {
	return oops.In("mobscript").Code(CodeUnknownInstruction).
		With("statement", stmt.Text).
		With("line", stmt.Line).
		With("event", string(event)).
		With("instruction", name).
		Errorf("unknown instruction %q", name)
}

func errInvalidVariable(call *ActionCall, index int) error {
	return callError(CodeInvalidVariable, call).
		With("index", index).
		Errorf("argument %d of %s is an empty variable name", index+1, call.Kind.Name)
}

func errMissingArgument(call *ActionCall, p Param) error {
	return callError(CodeMissingArgument, call).
		With("param", p.Name).
		With("usage", call.Kind.Usage()).
		Errorf("%s: missing argument %q", call.Kind.Name, p.Name)
}

func errTooManyArguments(call *ActionCall, got int) error {
	return callError(CodeTooManyArguments, call).
		With("max", len(call.Kind.Params)).
		With("got", got).
		With("usage", call.Kind.Usage()).
		Errorf("%s: too many arguments (max %d, got %d)", call.Kind.Name, len(call.Kind.Params), got)
}

func errVariableNotAllowed(call *ActionCall, p Param) error {
	return callError(CodeVariableNotAllowed, call).
		With("param", p.Name).
		Errorf("%s: argument %q must be a constant, not a variable", call.Kind.Name, p.Name)
}

// ErrInvalidArgument reports a literal argument that a load-time check
// rejected. ExtraParse hooks use it so the failure carries the statement.
func ErrInvalidArgument(call *ActionCall, param, reason string) error {
	return callError(CodeInvalidArgument, call).
		With("param", param).
		Errorf("%s: invalid %s: %s", call.Kind.Name, param, reason)
}

// ErrUnknownResource reports a reference to a resource the owning entity
// type does not define.
func ErrUnknownResource(call *ActionCall, kind ResourceKind, name string) error {
	typeName := ""
	if call.Owner != nil {
		typeName = call.Owner.TypeName()
	}
	return callError(CodeUnknownResource, call).
		With("resource_kind", kind.String()).
		With("resource", name).
		With("type", typeName).
		Errorf("%s: unknown %s %q on type %q", call.Kind.Name, kind, name, typeName)
}

func errElseWithoutIf(call *ActionCall) error {
	return callError(CodeElseWithoutIf, call).Errorf("else without if")
}

func errEndIfWithoutIf(call *ActionCall) error {
	return callError(CodeEndIfWithoutIf, call).Errorf("end_if without if")
}

func errIfWithoutEndIf(call *ActionCall) error {
	return callError(CodeIfWithoutEndIf, call).Errorf("if without matching end_if")
}

func errDuplicateElse(call *ActionCall) error {
	return callError(CodeDuplicateElse, call).Errorf("second else for the same if")
}

func errDuplicateLabel(call *ActionCall, name string, first int) error {
	return callError(CodeDuplicateLabel, call).
		With("label", name).
		With("first_index", first).
		Errorf("duplicate label %q", name)
}

func errUnknownLabel(call *ActionCall, name string) error {
	return callError(CodeUnknownLabel, call).
		With("label", name).
		Errorf("goto target label %q not found", name)
}

func errUnreachable(call, stateChange *ActionCall) error {
	return callError(CodeUnreachable, call).
		With("after", stateChange.Statement()).
		Errorf("unreachable statement after state change")
}

func errDuplicateInstruction(kind *InstructionKind, field string) error {
	return oops.In("mobscript").Code(CodeDuplicateInstruction).
		With("instruction", kind.Name).
		With("id", int(kind.ID)).
		With("field", field).
		Errorf("instruction %q (id %d) registered twice: duplicate %s", kind.Name, kind.ID, field)
}

func errMalformedInstruction(kind *InstructionKind, reason string) error {
	b := oops.In("mobscript").Code(CodeMalformedInstruction)
	if kind == nil {
		return b.New(reason)
	}
	return b.With("instruction", kind.Name).
		With("id", int(kind.ID)).
		Errorf("instruction %q: %s", kind.Name, reason)
}

// AuthorMessage turns a load error into a hint aimed at the script author.
func AuthorMessage(err error) string {
	if err == nil {
		return ""
	}
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return err.Error()
	}
	ctx := oopsErr.Context()
	where := ""
	if line, ok := ctx["line"].(int); ok && line > 0 {
		where = fmt.Sprintf("line %d: ", line)
	}

	switch oopsErr.Code() {
	case CodeUnknownInstruction:
		return where + fmt.Sprintf("%q is not an instruction. Check the spelling.", ctx["instruction"])
	case CodeMissingArgument, CodeTooManyArguments:
		if usage, ok := ctx["usage"].(string); ok && usage != "" {
			return where + oopsErr.Error() + ". Usage: " + usage
		}
	case CodeVariableNotAllowed:
		return where + oopsErr.Error() + ". Write the value directly."
	case CodeIfWithoutEndIf:
		return where + "this if is never closed. Add an end_if."
	case CodeElseWithoutIf, CodeEndIfWithoutIf:
		return where + oopsErr.Error() + ". Remove it or add the missing if."
	case CodeUnknownLabel:
		return where + oopsErr.Error() + ". Add a matching label."
	case CodeUnreachable:
		return where + "nothing after set_state can run. Move this statement before the state change."
	}
	return where + oopsErr.Error()
}
