//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Test groups test targets (all, unit, cli, race).
type Test mg.Namespace

const cliPkg = "github.com/mesh-intelligence/kanban/internal/cli"

// All runs every package's tests.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-v", "./...")
}

// Unit runs the library tests, skipping the in-process CLI tests.
func (Test) Unit() error {
	pkgs, err := sh.Output(binGo, "list", "./...")
	if err != nil {
		return err
	}
	var unitPkgs []string
	for pkg := range strings.SplitSeq(pkgs, "\n") {
		if pkg != "" && pkg != cliPkg && !strings.HasSuffix(pkg, "/magefiles") {
			unitPkgs = append(unitPkgs, pkg)
		}
	}
	if len(unitPkgs) == 0 {
		fmt.Println("No unit test packages found.")
		return nil
	}
	args := append([]string{"test", "-v"}, unitPkgs...)
	return sh.RunV(binGo, args...)
}

// CLI runs the command tests against throwaway boards.
func (Test) CLI() error {
	return sh.RunV(binGo, "test", "-v", cliPkg)
}

// Race runs the board package tests with the race detector.
func (Test) Race() error {
	return sh.RunV(binGo, "test", "-race", "./internal/board/...")
}
