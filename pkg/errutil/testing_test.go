// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

package errutil_test

import (
	"testing"

	"github.com/samber/oops"

	"github.com/Espyo/Pikifen-sub018/pkg/errutil"
)

func TestAssertErrorCode_MatchingCode(t *testing.T) {
	errutil.AssertErrorCode(t, oops.Code("MISSING_ARGUMENT").Errorf("missing"), "MISSING_ARGUMENT")
}

func TestAssertErrorCode_DeepestCodeWins(t *testing.T) {
	inner := oops.Code("UNKNOWN_RESOURCE").Errorf("no such sound")
	errutil.AssertErrorCode(t, oops.Code("INVALID_ARGUMENT").Wrap(inner), "UNKNOWN_RESOURCE")
}

func TestAssertErrorContext_MatchingKeyValue(t *testing.T) {
	errutil.AssertErrorContext(t, oops.With("line", 3).Errorf("bad"), "line", 3)
}
