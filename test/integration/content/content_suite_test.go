// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pikifen Contributors

//go:build integration

package content_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
)

func TestContent(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Mob Content Integration Suite")
}
