//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	coverProfile = "coverage.out"
	replayScript = "testdata/session.txt"
	replayWant   = "testdata/session.golden"
)

// Test groups test targets (all, unit, cover, replay).
type Test mg.Namespace

// All runs all tests with the race detector.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Unit runs all tests verbosely without the test cache.
func (Test) Unit() error {
	return sh.RunV(binGo, "test", "-v", "-count=1", "./...")
}

// Cover runs all tests and writes a coverage profile.
func (Test) Cover() error {
	if err := sh.RunV(binGo, "test", "-coverprofile="+coverProfile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func="+coverProfile)
}

// Replay builds the binary, runs the sample session script through it,
// and compares standard output with the golden file.
func (Test) Replay() error {
	mg.Deps(Build)

	dir, err := os.MkdirTemp("", "clevis-replay-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	env := map[string]string{
		"CLEVIS_CONFIG_DIR": dir,
		"CLEVIS_DATA_DIR":   dir,
	}
	got, err := sh.OutputWith(env, filepath.Join(binaryDir, binaryName), "run", replayScript)
	if err != nil {
		return err
	}
	want, err := os.ReadFile(replayWant)
	if err != nil {
		return err
	}
	if strings.TrimSpace(got) != strings.TrimSpace(string(want)) {
		return fmt.Errorf("replay output mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
	fmt.Println("replay output matches", replayWant)
	return nil
}
