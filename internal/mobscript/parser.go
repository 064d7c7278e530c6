// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package mobscript

import (
	"fmt"
	"strings"

	"github.com/Espyo/Pikifen-sub018/internal/mobscript/value"
)

// Parse turns one raw statement into an ActionCall.
//
// The statement is split on whitespace; the first word names the
// instruction and the rest are arguments. A leading "$" marks a variable
// reference and "$$" escapes a literal dollar sign. No entity state is
// touched.
func Parse(reg *Registry, stmt Statement, owner EntityType, event EventID) (*ActionCall, error) {
	words := strings.Fields(stmt.Text)
	if len(words) == 0 {
		return nil, errEmptyStatement(stmt, event)
	}

	kind, ok := reg.Lookup(words[0])
	if !ok {
		return nil, errUnknownInstruction(stmt, event, words[0])
	}

	call := &ActionCall{
		Kind:   kind,
		Args:   make([]Arg, 0, len(words)-1),
		Owner:  owner,
		Event:  event,
		Line:   stmt.Line,
		Source: strings.TrimSpace(stmt.Text),
	}
	for i, w := range words[1:] {
		arg, ok := parseWord(w)
		if !ok {
			return nil, errInvalidVariable(call, i)
		}
		call.Args = append(call.Args, arg)
	}

	if err := checkArity(call); err != nil {
		return nil, err
	}
	if err := checkArgs(call); err != nil {
		return nil, err
	}

	if kind.ExtraParse != nil {
		if err := kind.ExtraParse(call); err != nil {
			return nil, callError(CodeInvalidArgument, call).Wrap(err)
		}
	}
	return call, nil
}

func checkArity(call *ActionCall) error {
	k := call.Kind
	n := len(call.Args)
	if n < k.Mandatory() {
		return errMissingArgument(call, k.Params[n])
	}
	if !k.Variadic() && n > len(k.Params) {
		return errTooManyArguments(call, n)
	}
	return nil
}

// checkArgs enforces const-only parameters and the literal types of int,
// float and bool parameters.
func checkArgs(call *ActionCall) error {
	for i, arg := range call.Args {
		p, _ := call.Kind.ParamAt(i)
		switch a := arg.(type) {
		case VariableRef:
			if p.ConstOnly {
				return errVariableNotAllowed(call, p)
			}
		case Literal:
			if err := checkLiteralType(call, p, string(a)); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkLiteralType(call *ActionCall, p Param, text string) error {
	switch p.Type {
	case ParamInt:
		if _, ok := value.ParseInt(text); !ok {
			return ErrInvalidArgument(call, p.Name, fmt.Sprintf("%q is not an integer", text))
		}
	case ParamFloat:
		if _, ok := value.ParseFloat(text); !ok {
			return ErrInvalidArgument(call, p.Name, fmt.Sprintf("%q is not a number", text))
		}
	case ParamBool:
		if _, ok := value.ParseBool(text); !ok {
			return ErrInvalidArgument(call, p.Name, fmt.Sprintf("%q is not true or false", text))
		}
	}
	return nil
}
