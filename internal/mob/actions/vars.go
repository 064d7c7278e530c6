// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package actions

import (
	"math"
	"math/rand"
	"strings"

	"github.com/jakecoffman/cp"

	"github.com/Espyo/Pikifen-sub018/internal/mobscript"
	"github.com/Espyo/Pikifen-sub018/internal/mobscript/value"
)

var arithOps = newEnum("operator", value.ArithWords()...)

func varKinds() []*mobscript.InstructionKind {
	return []*mobscript.InstructionKind{
		{
			ID:     IDSetVar,
			Name:   "set_var",
			Params: []mobscript.Param{constStr("name"), str("value"), tail(str("more"))},
			Help:   "Sets a variable. Extra words are joined with spaces.",
			Run:    runSetVar,
		},
		{
			ID:         IDCalculate,
			Name:       "calculate",
			Params:     []mobscript.Param{constStr("dest"), num("lhs"), enumParam("operator"), num("rhs")},
			Help:       "Stores lhs op rhs. Division by zero gives 0.",
			ExtraParse: chain(arithOps.at(2)),
			FormatArg:  arithOps.formatAt(2),
			Run:        runCalculate,
		},
		{
			ID:     IDGetRandomInt,
			Name:   "get_random_int",
			Params: []mobscript.Param{constStr("dest"), integer("min"), integer("max")},
			Help:   "Stores a random integer between min and max, inclusive.",
			Run:    runGetRandomInt,
		},
		{
			ID:     IDGetRandomFloat,
			Name:   "get_random_float",
			Params: []mobscript.Param{constStr("dest"), num("min"), num("max")},
			Help:   "Stores a random number between min and max.",
			Run:    runGetRandomFloat,
		},
		{
			ID:     IDGetAngle,
			Name:   "get_angle",
			Params: []mobscript.Param{constStr("dest"), num("center_x"), num("center_y"), num("target_x"), num("target_y")},
			Help:   "Stores the angle in degrees from the center to the target.",
			Run:    runGetAngle,
		},
		{
			ID:     IDGetDistance,
			Name:   "get_distance",
			Params: []mobscript.Param{constStr("dest"), num("center_x"), num("center_y"), num("target_x"), num("target_y")},
			Help:   "Stores the distance between two points.",
			Run:    runGetDistance,
		},
		{
			ID:     IDGetCoordinatesFromAngle,
			Name:   "get_coordinates_from_angle",
			Params: []mobscript.Param{constStr("dest_x"), constStr("dest_y"), num("angle"), num("magnitude")},
			Help:   "Stores the offset reached by going magnitude units at angle degrees.",
			Run:    runGetCoordinatesFromAngle,
		},
		{
			ID:     IDGetFloorZ,
			Name:   "get_floor_z",
			Params: []mobscript.Param{constStr("dest"), num("x"), num("y")},
			Help:   "Stores the floor height at a point.",
			Run:    runGetFloorZ,
		},
		{
			ID:     IDPrint,
			Name:   "print",
			Params: []mobscript.Param{tail(str("text"))},
			Help:   "Prints debug text.",
			Run:    runPrint,
		},
		{
			ID:     IDShowMessageFromVar,
			Name:   "show_message_from_var",
			Params: []mobscript.Param{constStr("var")},
			Help:   "Shows the contents of a variable in a message box.",
			Run:    runShowMessageFromVar,
		},
		{
			ID:     IDSaveFocusedMobMemory,
			Name:   "save_focused_mob_memory",
			Params: []mobscript.Param{str("slot")},
			Help:   "Remembers the focused mob in a memory slot.",
			Run:    runSaveFocusedMobMemory,
		},
		{
			ID:     IDLoadFocusedMobMemory,
			Name:   "load_focused_mob_memory",
			Params: []mobscript.Param{str("slot")},
			Help:   "Focuses the mob remembered in a memory slot.",
			Run:    runLoadFocusedMobMemory,
		},
		{
			ID:     IDSetTimer,
			Name:   "set_timer",
			Params: []mobscript.Param{num("seconds")},
			Help:   "Starts the timer. 0 stops it. on_timer fires when it runs out.",
			Run:    runSetTimer,
		},
	}
}

func runSetVar(rc *mobscript.RunContext) mobscript.Signal {
	rc.SetVar(rc.Arg(0), strings.Join(rc.Rest(1), " "))
	return mobscript.Continue
}

func runCalculate(rc *mobscript.RunContext) mobscript.Signal {
	op := value.ArithOp(rc.Int(2))
	rc.SetVar(rc.Arg(0), f(op.Apply(rc.Float(1), rc.Float(3))))
	return mobscript.Continue
}

func runGetRandomInt(rc *mobscript.RunContext) mobscript.Signal {
	m := self(rc)
	if m == nil {
		return mobscript.Continue
	}
	lo, hi := rc.Int(1), rc.Int(2)
	if hi < lo {
		lo, hi = hi, lo
	}
	rc.SetVar(rc.Arg(0), value.FormatInt(randomBetween(m.World.Rand(), lo, hi)))
	return mobscript.Continue
}

// randomBetween returns a uniform integer in [lo, hi] for any lo <= hi,
// including spans wider than the int range.
func randomBetween(r *rand.Rand, lo, hi int) int {
	span := uint64(hi) - uint64(lo)
	if span < math.MaxInt {
		return lo + r.Intn(int(span)+1)
	}
	for {
		if off := r.Uint64(); off <= span {
			return int(uint64(lo) + off)
		}
	}
}

func runGetRandomFloat(rc *mobscript.RunContext) mobscript.Signal {
	m := self(rc)
	if m == nil {
		return mobscript.Continue
	}
	lo, hi := rc.Float(1), rc.Float(2)
	if hi < lo {
		lo, hi = hi, lo
	}
	rc.SetVar(rc.Arg(0), f(lo+m.World.Rand().Float64()*(hi-lo)))
	return mobscript.Continue
}

func points(rc *mobscript.RunContext) (cp.Vector, cp.Vector) {
	return cp.Vector{X: rc.Float(1), Y: rc.Float(2)}, cp.Vector{X: rc.Float(3), Y: rc.Float(4)}
}

func runGetAngle(rc *mobscript.RunContext) mobscript.Signal {
	center, target := points(rc)
	rc.SetVar(rc.Arg(0), f(toDeg(target.Sub(center).ToAngle())))
	return mobscript.Continue
}

func runGetDistance(rc *mobscript.RunContext) mobscript.Signal {
	center, target := points(rc)
	rc.SetVar(rc.Arg(0), f(center.Distance(target)))
	return mobscript.Continue
}

func runGetCoordinatesFromAngle(rc *mobscript.RunContext) mobscript.Signal {
	v := cp.ForAngle(toRad(rc.Float(2))).Mult(rc.Float(3))
	rc.SetVar(rc.Arg(0), f(v.X))
	rc.SetVar(rc.Arg(1), f(v.Y))
	return mobscript.Continue
}

func runGetFloorZ(rc *mobscript.RunContext) mobscript.Signal {
	m := self(rc)
	if m == nil {
		return mobscript.Continue
	}
	rc.SetVar(rc.Arg(0), f(m.World.Floor(rc.Float(1), rc.Float(2))))
	return mobscript.Continue
}

func runPrint(rc *mobscript.RunContext) mobscript.Signal {
	if m := self(rc); m != nil {
		m.World.Print(m, strings.Join(rc.Rest(0), " "))
	}
	return mobscript.Continue
}

func runShowMessageFromVar(rc *mobscript.RunContext) mobscript.Signal {
	if m := self(rc); m != nil {
		m.World.ShowMessage(m, rc.Vars().Get(rc.Arg(0)))
	}
	return mobscript.Continue
}

func runSaveFocusedMobMemory(rc *mobscript.RunContext) mobscript.Signal {
	m := self(rc)
	if m == nil {
		return mobscript.Continue
	}
	target := focused(m)
	if target == nil {
		rc.Skip("no focused mob")
		return mobscript.Continue
	}
	m.Memory[rc.Arg(0)] = target
	return mobscript.Continue
}

func runLoadFocusedMobMemory(rc *mobscript.RunContext) mobscript.Signal {
	m := self(rc)
	if m == nil {
		return mobscript.Continue
	}
	remembered := m.Memory[rc.Arg(0)]
	if !remembered.Alive() {
		rc.Skip("memory slot empty", "slot", rc.Arg(0))
		return mobscript.Continue
	}
	m.Focus = remembered
	return mobscript.Continue
}

func runSetTimer(rc *mobscript.RunContext) mobscript.Signal {
	if m := self(rc); m != nil {
		m.Timer = max(0, rc.Float(0))
	}
	return mobscript.Continue
}
