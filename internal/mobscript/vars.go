// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package mobscript

import "sort"

// Vars is an entity's named-variable store. Values are untyped strings;
// conversion happens where a value is used.
// The zero value is ready to use. Vars is not safe for concurrent use.
type Vars struct {
	values map[string]string
}

// NewVars creates an empty store.
func NewVars() *Vars {
	return &Vars{values: make(map[string]string)}
}

// Get returns the value of name, or "" when it was never set.
func (v *Vars) Get(name string) string {
	if v == nil {
		return ""
	}
	return v.values[name]
}

// Lookup returns the value of name and whether it is set.
func (v *Vars) Lookup(name string) (string, bool) {
	if v == nil {
		return "", false
	}
	val, ok := v.values[name]
	return val, ok
}

// Set stores value under name.
func (v *Vars) Set(name, value string) {
	if v.values == nil {
		v.values = make(map[string]string)
	}
	v.values[name] = value
}

// Delete removes name from the store.
func (v *Vars) Delete(name string) {
	delete(v.values, name)
}

// Len returns the number of variables set.
func (v *Vars) Len() int {
	if v == nil {
		return 0
	}
	return len(v.values)
}

// Names returns the variable names in sorted order.
func (v *Vars) Names() []string {
	if v == nil {
		return []string{}
	}
	names := make([]string, 0, len(v.values))
	for k := range v.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns a copy of the store contents.
func (v *Vars) Snapshot() map[string]string {
	out := make(map[string]string, v.Len())
	if v == nil {
		return out
	}
	for k, val := range v.values {
		out[k] = val
	}
	return out
}
