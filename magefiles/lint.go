//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import "github.com/magefile/mage/sh"

const (
	binLint    = "golangci-lint"
	lintConfig = ".golangci.yml"
)

// Lint runs golangci-lint with the project's .golangci.yml.
func Lint() error {
	return sh.RunV(binLint, "run", "--config", lintConfig, "./...")
}
