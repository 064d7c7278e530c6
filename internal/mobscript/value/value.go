// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

// Package value holds every string, number and bool coercion used by mob
// scripts. Variables are untyped strings; handlers convert at the point of
// use through this package only.
package value

import (
	"math"
	"strconv"
	"strings"
)

// ParseFloat parses s as a finite decimal number.
func ParseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseInt parses s as a base-10 integer.
func ParseInt(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}

// ParseBool accepts true/false, yes/no and 1/0, case-insensitively.
func ParseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1":
		return true, true
	case "false", "no", "0":
		return false, true
	default:
		return false, false
	}
}

// Float is the lenient form of ParseFloat: anything unparsable is 0.
func Float(s string) float64 {
	f, _ := ParseFloat(s)
	return f
}

// Int is the lenient form of ParseInt. A decimal number is truncated and
// numbers outside the int range saturate at its bounds.
func Int(s string) int {
	if i, ok := ParseInt(s); ok {
		return i
	}
	f, _ := ParseFloat(s)
	switch {
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	}
	return int(f)
}

// Bool is the lenient form of ParseBool: anything unparsable is false.
func Bool(s string) bool {
	b, _ := ParseBool(s)
	return b
}

// FormatFloat renders f with the fewest digits that round-trip.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatInt renders i in base 10.
func FormatInt(i int) string {
	return strconv.Itoa(i)
}

// FormatBool renders b as "true" or "false".
func FormatBool(b bool) string {
	return strconv.FormatBool(b)
}
