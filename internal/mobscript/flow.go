// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package mobscript

import (
	"fmt"
	"strings"

	"github.com/Espyo/Pikifen-sub018/internal/mobscript/value"
)

// Kind ids of the control-flow instructions. Host catalogs must number
// their kinds from KindFirstHost on.
const (
	KindIf KindID = iota + 1
	KindElse
	KindEndIf
	KindLabel
	KindGoto

	KindFirstHost KindID = 16
)

// RegisterControlFlow registers if, else, end_if, label and goto.
func RegisterControlFlow(r *Registry) {
	r.MustRegister(
		&InstructionKind{
			ID:   KindIf,
			Name: "if",
			Params: []Param{
				{Name: "lhs", Type: ParamString},
				{Name: "op", Type: ParamEnum, ConstOnly: true},
				{Name: "rhs", Type: ParamString},
			},
			Flow:       FlowIf,
			Help:       "Runs the following block only when the comparison holds.",
			ExtraParse: parseIfOp,
			FormatArg:  formatIfOp,
			Run:        runIf,
		},
		&InstructionKind{
			ID:   KindElse,
			Name: "else",
			Flow: FlowElse,
			Help: "Starts the block run when the matching if is false.",
			Run:  noop,
		},
		&InstructionKind{
			ID:   KindEndIf,
			Name: "end_if",
			Flow: FlowEndIf,
			Help: "Closes an if block.",
			Run:  noop,
		},
		&InstructionKind{
			ID:     KindLabel,
			Name:   "label",
			Params: []Param{{Name: "name", Type: ParamString, ConstOnly: true}},
			Flow:   FlowLabel,
			Help:   "Marks a goto target.",
			Run:    noop,
		},
		&InstructionKind{
			ID:     KindGoto,
			Name:   "goto",
			Params: []Param{{Name: "label", Type: ParamString, ConstOnly: true}},
			Flow:   FlowGoto,
			Help:   "Continues at the named label.",
			Run:    noop,
		},
	)
}

func noop(*RunContext) Signal { return Continue }

// parseIfOp rewrites the operator word to its integer tag.
func parseIfOp(call *ActionCall) error {
	word, _ := call.LiteralAt(1)
	op, ok := value.ParseOp(word)
	if !ok {
		return ErrInvalidArgument(call, "op",
			fmt.Sprintf("unknown operator %q, expected one of %s", word, strings.Join(value.OpWords(), " ")))
	}
	call.SetLiteral(1, value.FormatInt(int(op)))
	return nil
}

func formatIfOp(i int, text string) string {
	if i != 1 {
		return text
	}
	return value.Op(value.Int(text)).String()
}

func runIf(rc *RunContext) Signal {
	rc.ReturnValue = value.Compare(rc.Arg(0), value.Op(rc.Int(1)), rc.Arg(2))
	return Continue
}
