// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package actions

import (
	"fmt"
	"math"
	"strings"

	"github.com/Espyo/Pikifen-sub018/internal/mob"
	"github.com/Espyo/Pikifen-sub018/internal/mobscript"
	"github.com/Espyo/Pikifen-sub018/internal/mobscript/value"
)

// Parameter constructors.

func str(name string) mobscript.Param {
	return mobscript.Param{Name: name, Type: mobscript.ParamString}
}

func constStr(name string) mobscript.Param {
	return mobscript.Param{Name: name, Type: mobscript.ParamString, ConstOnly: true}
}

func num(name string) mobscript.Param {
	return mobscript.Param{Name: name, Type: mobscript.ParamFloat}
}

func integer(name string) mobscript.Param {
	return mobscript.Param{Name: name, Type: mobscript.ParamInt}
}

func boolean(name string) mobscript.Param {
	return mobscript.Param{Name: name, Type: mobscript.ParamBool}
}

func enumParam(name string) mobscript.Param {
	return mobscript.Param{Name: name, Type: mobscript.ParamEnum, ConstOnly: true}
}

func tail(p mobscript.Param) mobscript.Param {
	p.Variadic = true
	return p
}

// enum maps the words of an enum parameter to integer tags starting at 1.
type enum struct {
	param string
	words []string
}

func newEnum(param string, words ...string) enum {
	return enum{param: param, words: words}
}

func (e enum) tag(word string) (int, bool) {
	for i, w := range e.words {
		if w == word {
			return i + 1, true
		}
	}
	return 0, false
}

func (e enum) word(tag int) string {
	if tag < 1 || tag > len(e.words) {
		return ""
	}
	return e.words[tag-1]
}

func (e enum) rewrite(call *mobscript.ActionCall, i int) error {
	w, ok := call.LiteralAt(i)
	if !ok {
		return nil
	}
	tag, ok := e.tag(w)
	if !ok {
		return mobscript.ErrInvalidArgument(call, e.param,
			fmt.Sprintf("unknown %s %q, expected one of %s", e.param, w, strings.Join(e.words, ", ")))
	}
	call.SetLiteral(i, value.FormatInt(tag))
	return nil
}

// at rewrites the enum word at position pos.
func (e enum) at(pos int) hook {
	return func(call *mobscript.ActionCall) error {
		return e.rewrite(call, pos)
	}
}

// from rewrites every enum word from position pos on.
func (e enum) from(pos int) hook {
	return func(call *mobscript.ActionCall) error {
		for i := pos; i < len(call.Args); i++ {
			if err := e.rewrite(call, i); err != nil {
				return err
			}
		}
		return nil
	}
}

// formatAt is the FormatArg counterpart of at.
func (e enum) formatAt(pos int) func(int, string) string {
	return func(i int, text string) string {
		if i != pos {
			return text
		}
		return e.word(value.Int(text))
	}
}

// formatFrom is the FormatArg counterpart of from.
func (e enum) formatFrom(pos int) func(int, string) string {
	return func(i int, text string) string {
		if i < pos {
			return text
		}
		return e.word(value.Int(text))
	}
}

// hook is one load-time check.
type hook func(call *mobscript.ActionCall) error

// chain runs hooks in order and stops at the first failure.
func chain(hooks ...hook) func(*mobscript.ActionCall) error {
	return func(call *mobscript.ActionCall) error {
		for _, h := range hooks {
			if err := h(call); err != nil {
				return err
			}
		}
		return nil
	}
}

// resourceAt checks that a literal at pos names a resource of the owning
// type. Variable arguments are checked at run time instead.
func resourceAt(pos int, kind mobscript.ResourceKind) hook {
	return func(call *mobscript.ActionCall) error {
		name, ok := call.LiteralAt(pos)
		if !ok || call.Owner == nil {
			return nil
		}
		if !call.Owner.HasResource(kind, name) {
			return mobscript.ErrUnknownResource(call, kind, name)
		}
		return nil
	}
}

// resourcesFrom applies resourceAt to every argument from pos on.
func resourcesFrom(pos int, kind mobscript.ResourceKind) hook {
	return func(call *mobscript.ActionCall) error {
		for i := pos; i < len(call.Args); i++ {
			if err := resourceAt(i, kind)(call); err != nil {
				return err
			}
		}
		return nil
	}
}

// atMost limits the arguments of a kind whose optional parameter is
// modeled as a variadic tail.
func atMost(n int) hook {
	return func(call *mobscript.ActionCall) error {
		if len(call.Args) > n {
			return mobscript.ErrInvalidArgument(call, call.Kind.Params[len(call.Kind.Params)-1].Name,
				fmt.Sprintf("takes at most %d arguments, got %d", n, len(call.Args)))
		}
		return nil
	}
}

// Run-time helpers. Every handler starts from self and returns Continue
// when a precondition fails.

func self(rc *mobscript.RunContext) *mob.Mob {
	m, ok := rc.Entity.(*mob.Mob)
	if !ok || !m.Alive() {
		return nil
	}
	return m
}

func focused(m *mob.Mob) *mob.Mob {
	if m.Focus == nil || !m.Focus.Alive() {
		return nil
	}
	return m.Focus
}

// trigger returns the mob that caused the current event, if any.
func trigger(rc *mobscript.RunContext) *mob.Mob {
	switch p := rc.Payload1.(type) {
	case *mob.Mob:
		if p.Alive() {
			return p
		}
	case mob.HitInfo:
		if p.Attacker.Alive() {
			return p.Attacker
		}
	}
	return nil
}

func hasResource(rc *mobscript.RunContext, m *mob.Mob, kind mobscript.ResourceKind, name string) bool {
	if m.Type.HasResource(kind, name) {
		return true
	}
	rc.Skip("unknown "+kind.String(), "name", name)
	return false
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

func toDeg(rad float64) float64 { return rad * 180 / math.Pi }

func f(x float64) string { return value.FormatFloat(x) }
