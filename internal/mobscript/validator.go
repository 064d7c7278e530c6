// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package mobscript

// openBlock tracks an if whose end_if has not been seen yet.
type openBlock struct {
	ifIdx   int
	elseIdx int
}

// Validate checks the structure of one event's call list and bakes in its
// jump targets. It is pure and runs once per event at load time.
//
// Checks, in order: if/else/end_if balance, label uniqueness and goto
// resolution, and statements made unreachable by a state change.
func Validate(event EventID, calls []*ActionCall) (*Program, error) {
	jumps := make([]int, len(calls))
	for i := range jumps {
		jumps[i] = -1
	}

	if err := resolveBlocks(calls, jumps); err != nil {
		return nil, err
	}
	if err := resolveLabels(calls, jumps); err != nil {
		return nil, err
	}
	if err := checkReachability(calls); err != nil {
		return nil, err
	}

	return &Program{
		event: event,
		calls: append([]*ActionCall(nil), calls...),
		jumps: jumps,
	}, nil
}

// resolveBlocks pairs every if with its optional else and its end_if.
// A false if jumps into the else body (or past end_if); an else reached by
// falling out of the true body jumps past end_if.
func resolveBlocks(calls []*ActionCall, jumps []int) error {
	var stack []openBlock
	for i, c := range calls {
		switch c.Kind.Flow {
		case FlowIf:
			stack = append(stack, openBlock{ifIdx: i, elseIdx: -1})
		case FlowElse:
			if len(stack) == 0 {
				return errElseWithoutIf(c)
			}
			top := &stack[len(stack)-1]
			if top.elseIdx >= 0 {
				return errDuplicateElse(c)
			}
			top.elseIdx = i
			jumps[top.ifIdx] = i + 1
		case FlowEndIf:
			if len(stack) == 0 {
				return errEndIfWithoutIf(c)
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.elseIdx >= 0 {
				jumps[top.elseIdx] = i + 1
			} else {
				jumps[top.ifIdx] = i + 1
			}
		}
	}
	if len(stack) > 0 {
		return errIfWithoutEndIf(calls[stack[len(stack)-1].ifIdx])
	}
	return nil
}

func resolveLabels(calls []*ActionCall, jumps []int) error {
	labels := make(map[string]int)
	for i, c := range calls {
		if c.Kind.Flow != FlowLabel {
			continue
		}
		name, _ := c.LiteralAt(0)
		if first, dup := labels[name]; dup {
			return errDuplicateLabel(c, name, first)
		}
		labels[name] = i
	}

	for i, c := range calls {
		if c.Kind.Flow != FlowGoto {
			continue
		}
		name, _ := c.LiteralAt(0)
		target, ok := labels[name]
		if !ok {
			return errUnknownLabel(c, name)
		}
		jumps[i] = target
	}
	return nil
}

// checkReachability rejects statements that follow a state change on the
// same path. Only else, end_if and label can be entered by a jump, so only
// they make the following statements reachable again.
func checkReachability(calls []*ActionCall) error {
	var stateChange *ActionCall
	for _, c := range calls {
		switch c.Kind.Flow {
		case FlowElse, FlowEndIf, FlowLabel:
			stateChange = nil
			continue
		}
		if stateChange != nil {
			return errUnreachable(c, stateChange)
		}
		if c.Kind.Flow == FlowStateChange {
			stateChange = c
		}
	}
	return nil
}
