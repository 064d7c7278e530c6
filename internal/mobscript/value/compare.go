// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package value

import "math"

// Op is a comparison operator of the if instruction.
type Op int

// Comparison operators. The zero value is not a valid operator.
const (
	OpEqual Op = iota + 1
	OpNotEqual
	OpLess
	OpGreater
	OpLessEqual
	OpGreaterEqual
)

var opWords = map[string]Op{
	"=":  OpEqual,
	"==": OpEqual,
	"!=": OpNotEqual,
	"<":  OpLess,
	">":  OpGreater,
	"<=": OpLessEqual,
	">=": OpGreaterEqual,
}

// ParseOp maps an operator word to its Op.
func ParseOp(word string) (Op, bool) {
	op, ok := opWords[word]
	return op, ok
}

// OpWords lists the accepted operator words.
func OpWords() []string {
	return []string{"=", "!=", "<", ">", "<=", ">="}
}

// String returns the canonical operator word.
func (o Op) String() string {
	switch o {
	case OpEqual:
		return "="
	case OpNotEqual:
		return "!="
	case OpLess:
		return "<"
	case OpGreater:
		return ">"
	case OpLessEqual:
		return "<="
	case OpGreaterEqual:
		return ">="
	default:
		return "?"
	}
}

// Compare applies op to lhs and rhs. When both sides parse as numbers the
// comparison is numeric; otherwise the strings are compared byte-wise.
// An invalid op is always false.
func Compare(lhs string, op Op, rhs string) bool {
	var c int
	l, lok := ParseFloat(lhs)
	r, rok := ParseFloat(rhs)
	switch {
	case lok && rok:
		c = cmpFloat(l, r)
	case lhs < rhs:
		c = -1
	case lhs > rhs:
		c = 1
	}

	switch op {
	case OpEqual:
		return c == 0
	case OpNotEqual:
		return c != 0
	case OpLess:
		return c < 0
	case OpGreater:
		return c > 0
	case OpLessEqual:
		return c <= 0
	case OpGreaterEqual:
		return c >= 0
	default:
		return false
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// ArithOp is an operator of the calculate instruction.
type ArithOp int

// Arithmetic operators.
const (
	ArithAdd ArithOp = iota + 1
	ArithSub
	ArithMul
	ArithDiv
	ArithMod
)

var arithWords = map[string]ArithOp{
	"+": ArithAdd,
	"-": ArithSub,
	"*": ArithMul,
	"/": ArithDiv,
	"%": ArithMod,
}

// ParseArithOp maps an operator word to its ArithOp.
func ParseArithOp(word string) (ArithOp, bool) {
	op, ok := arithWords[word]
	return op, ok
}

// String returns the operator word.
func (o ArithOp) String() string {
	for w, op := range arithWords {
		if op == o {
			return w
		}
	}
	return "?"
}

// ArithWords lists the accepted arithmetic operator words.
func ArithWords() []string {
	return []string{"+", "-", "*", "/", "%"}
}

// Apply computes lhs op rhs. Division and modulo by zero yield 0.
func (o ArithOp) Apply(lhs, rhs float64) float64 {
	switch o {
	case ArithAdd:
		return lhs + rhs
	case ArithSub:
		return lhs - rhs
	case ArithMul:
		return lhs * rhs
	case ArithDiv:
		if rhs == 0 {
			return 0
		}
		return lhs / rhs
	case ArithMod:
		if rhs == 0 {
			return 0
		}
		return math.Mod(lhs, rhs)
	default:
		return 0
	}
}
