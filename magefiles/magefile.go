//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for the clevis project using Mage.
//
// Usage:
//
//	mage build          Compile the clevis binary to bin/
//	mage test:all       Run all tests
//	mage test:unit      Run tests without the race detector or caching
//	mage test:cover     Run tests and write coverage.out
//	mage test:replay    Build, then replay testdata/session.txt through the binary
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install clevis to GOPATH/bin
//	mage stats          Print Go LOC and documentation word counts
package main
