// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// prompt.go - Plain line-based choice prompt for dumb terminals.
//
// The full-screen picker needs a terminal that handles alternate screens and
// cursor addressing. TERM=dumb environments (emacs shells, some CI wrappers
// with a pty) get a numeric prompt instead.
package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/rigprep/internal/resolve"
)

// ErrPromptAborted is returned when the user cancels the choice prompt.
var ErrPromptAborted = errors.New("prompt aborted")

// promptChoiceLine reads a 1-based candidate number on a plain prompt.
// Re-prompts on invalid input; Ctrl-C or Ctrl-D aborts.
func promptChoiceLine(title string, warnings []string, candidates []resolve.BuildOption) (int, error) {
	fmt.Println(title)
	for _, w := range warnings {
		fmt.Println("! " + w)
	}
	fmt.Println()
	for i, opt := range candidates {
		pkgs := make([]string, len(opt.Packages))
		for j, p := range opt.Packages {
			pkgs[j] = p.String()
		}
		fmt.Printf("  %d. %s [%s]\n     %s\n     %s\n",
			i+1, opt.Label, opt.Tier, opt.Summary, strings.Join(pkgs, " "))
	}
	fmt.Println()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		input, err := line.Prompt(fmt.Sprintf("Choice [1-%d]: ", len(candidates)))
		if err != nil {
			// Ctrl-C or EOF
			return 0, ErrPromptAborted
		}

		n, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil || n < 1 || n > len(candidates) {
			fmt.Printf("enter a number between 1 and %d\n", len(candidates))
			continue
		}
		return n, nil
	}
}
