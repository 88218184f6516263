// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// plan.go - Plan command implementation for rigprep.
//
// Command: plan (default)
// Short:   Detect hardware and resolve a PyTorch build plan
// Aliases: resolve
//
// Flow:
//   1. Load config, collect hardware facts
//   2. Resolve facts to a build plan
//   3. If the plan needs a choice, show the interactive picker
//      (or fail cleanly when no terminal is available)
//   4. Record the resolution in history
//   5. Print the plan (styled text, --explain markdown, or --json)
//
// Exit Codes:
//   0   Plan resolved
//   1   Error during detection or resolution
//   2   Choice required but prompting not possible
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jeranaias/rigprep/internal/config"
	"github.com/jeranaias/rigprep/internal/detect"
	"github.com/jeranaias/rigprep/internal/history"
	"github.com/jeranaias/rigprep/internal/resolve"
	"github.com/jeranaias/rigprep/internal/ui/picker"
)

// RunPlan executes the plan command and returns the process exit code.
func RunPlan(args Args) int {
	cfg, err := loadConfig(args)
	if err != nil {
		return planError(args, err)
	}

	nonInteractive := args.NonInteractive || cfg.NonInteractive
	jsonMode := args.JSON || cfg.UI.JSON

	facts, err := collectFacts(cfg)
	if err != nil {
		return planError(args, fmt.Errorf("hardware detection failed: %w", err))
	}

	opts := resolve.Options{Choice: args.Choice, NonInteractive: nonInteractive}
	plan, err := resolve.Resolve(facts, opts)
	if errors.Is(err, resolve.ErrInvalidChoice) {
		planError(args, err)
		return 2
	}
	if err != nil {
		return planError(args, err)
	}

	// Resolve the pending choice interactively when we can.
	if plan.RequiresUserChoice {
		if jsonMode || nonInteractive || !canPromptForChoice() {
			// Hand the candidate list to the caller instead of blocking.
			emitPlan(jsonMode, facts, plan, args.Explain)
			if !jsonMode {
				fmt.Println(WarningStyle.Render("A choice is required; re-run with --choice N."))
			}
			return 2
		}

		choice, err := promptForChoice(facts, plan)
		if err != nil {
			return planError(args, err)
		}

		opts.Choice = choice
		plan, err = resolve.Resolve(facts, opts)
		if err != nil {
			return planError(args, err)
		}
	}

	if cfg.History.Enabled && !args.NoHistory {
		recordPlan(cfg, facts, plan, args.Quiet)
	}

	emitPlan(jsonMode, facts, plan, args.Explain)
	return 0
}

// loadConfig loads the config file named by --config or the default path.
func loadConfig(args Args) (*config.Config, error) {
	if args.ConfigPath != "" {
		return config.Load(args.ConfigPath)
	}
	return config.LoadDefault()
}

// collectFacts probes the machine, honoring a forced accelerator from config.
func collectFacts(cfg *config.Config) (detect.HardwareFacts, error) {
	if facts, forced := forcedFacts(cfg.ForceAccelerator); forced {
		return facts, nil
	}

	collector := detect.NewCollector(detect.WithProbeTimeout(cfg.ProbeTimeout()))
	ctx, cancel := context.WithTimeout(context.Background(), 3*cfg.ProbeTimeout())
	defer cancel()
	return collector.Collect(ctx)
}

// forcedFacts builds synthetic facts for a forced accelerator. A forced
// vendor carries no probe detail, so resolution takes that vendor's
// conservative row.
func forcedFacts(force string) (detect.HardwareFacts, bool) {
	switch force {
	case "none":
		return detect.HardwareFacts{Accelerator: detect.AcceleratorNone}, true
	case "nvidia":
		return detect.HardwareFacts{
			Accelerator: detect.AcceleratorNvidia,
			Nvidia:      &detect.NvidiaInfo{Name: "NVIDIA GPU (forced)"},
		}, true
	case "amd":
		return detect.HardwareFacts{
			Accelerator: detect.AcceleratorAmd,
			Amd:         &detect.AmdInfo{Variant: detect.AmdOther, Name: "AMD GPU (forced)"},
		}, true
	default:
		return detect.HardwareFacts{}, false
	}
}

// canPromptForChoice reports whether an interactive choice is possible.
func canPromptForChoice() bool {
	return CanPrompt()
}

// promptForChoice asks the user to pick a candidate. Uses the full-screen
// picker on capable terminals and a plain numeric prompt on dumb ones.
func promptForChoice(facts detect.HardwareFacts, plan *resolve.BuildPlan) (int, error) {
	title := "Multiple builds are viable for " + facts.String()

	var warnings []string
	for _, d := range plan.Warnings() {
		warnings = append(warnings, d.Message)
	}

	if os.Getenv("TERM") == "dumb" {
		return promptChoiceLine(title, warnings, plan.Candidates)
	}
	return picker.Run(title, warnings, plan.Candidates)
}

// recordPlan stores the resolution; failures are reported but never block
// the plan output.
func recordPlan(cfg *config.Config, facts detect.HardwareFacts, plan *resolve.BuildPlan, quiet bool) {
	path, err := cfg.HistoryPath()
	if err != nil {
		if !quiet {
			StderrPrintln("warning: cannot determine history path: %v", err)
		}
		return
	}

	store, err := history.Open(path)
	if err != nil {
		if !quiet {
			StderrPrintln("warning: cannot open history: %v", err)
		}
		return
	}
	defer store.Close()

	if _, err := store.Record(context.Background(), facts, plan); err != nil {
		if !quiet {
			StderrPrintln("warning: cannot record plan: %v", err)
		}
	}
}

// emitPlan prints the plan in the requested format.
func emitPlan(jsonMode bool, facts detect.HardwareFacts, plan *resolve.BuildPlan, explain bool) {
	if jsonMode {
		NewJSONResponse("plan", newPlanData(facts, plan)).Print()
		return
	}
	if explain {
		fmt.Print(renderExplainMarkdown(facts, plan))
		return
	}
	fmt.Print(renderPlanText(facts, plan))
}

// planError reports a plan failure in the right format and returns exit code 1.
func planError(args Args, err error) int {
	if args.JSON {
		NewJSONErrorResponse("plan", err).Print()
	} else {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("error: ")+err.Error())
	}
	return 1
}
