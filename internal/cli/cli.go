// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for rigprep.
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdPlan Command = iota
	CmdDetect
	CmdDoctor
	CmdHistory
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	JSON           bool
	Quiet          bool
	NonInteractive bool
	ConfigPath     string

	// Plan command
	Choice    int  // 1-based candidate choice; 0 means unset
	Explain   bool // render the plan rationale as formatted markdown
	NoHistory bool // skip recording the plan

	// History command
	Confirm bool
	Limit   int

	// Command-specific
	Subcommand string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `rigprep - PyTorch environment resolver for local GPU rigs

Rigprep probes the machine it runs on, figures out which accelerator is
present, and maps it to an installable PyTorch build: packages, version
constraints, and the right wheel index.

It handles the awkward hardware too:
  - Brand-new NVIDIA generations where stable wheels carry trade-offs
  - AMD Strix Halo APUs that need community-built gfx1151 wheels
  - WSL2, where GPU passthrough changes what works
  - CPU-only boxes that just need the lean build

Usage:
  rigprep                      Resolve a build plan (default)
  rigprep plan                 Resolve a build plan
  rigprep detect               Show detected hardware facts
  rigprep doctor               Run system health checks
  rigprep history [subcommand] Review past resolutions
  rigprep version              Show version information
  rigprep help                 Show this help

Plan Command:
  rigprep plan                 Detect hardware and resolve a build plan
    --choice N                 Pick candidate N (1-based) without prompting
    --non-interactive          Never prompt; auto-select where safe
    --explain                  Show the full rationale for the plan
    --no-history               Do not record this resolution
    --json                     Output the plan as JSON

History Commands:
  rigprep history              List recent resolutions (default: 20)
  rigprep history list         Same as above
    --limit N                  Show last N entries
  rigprep history show <id>    Show one entry (ID prefix accepted)
  rigprep history clear        Delete all entries
    --confirm                  Required confirmation flag

Doctor Command:
  rigprep doctor               Run all health checks
    --json                     Health check results in JSON

Global Flags:
  --json                       Machine-readable JSON output
  --quiet                      Suppress informational output
  --config PATH                Use an alternate config file

Environment:
  RIGPREP_NON_INTERACTIVE      Same as --non-interactive
  RIGPREP_PROBE_TIMEOUT        Probe timeout in seconds (1-30)
  RIGPREP_FORCE_ACCELERATOR    Skip probing: nvidia, amd, or none
  NO_COLOR                     Disable colored output

Examples:
  rigprep                              Resolve and record a plan
  rigprep plan --choice 2              Take the second candidate
  rigprep plan --json | jq .data       Feed the plan to another tool
  rigprep plan --non-interactive       CI-safe resolution
  rigprep detect                       Just show what was found
  rigprep doctor                       Check probes, groups, config
  rigprep history show 3f2a            Review a past resolution

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("rigprep version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return parseArgs(os.Args[1:])
}

// parseArgs is the testable core of Parse.
func parseArgs(argv []string) (Command, Args) {
	remaining, args := parseFlags(argv)

	// No command defaults to plan
	if len(remaining) == 0 {
		return CmdPlan, args
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	args.Raw = remaining

	switch cmd {
	case "plan", "resolve":
		return CmdPlan, args

	case "detect", "probe":
		return CmdDetect, args

	case "doctor", "diag", "diagnose":
		return CmdDoctor, args

	case "history", "log":
		if len(remaining) > 0 {
			args.Subcommand = remaining[0]
			args.Raw = remaining[1:]
		}
		return CmdHistory, args

	case "version", "-v", "--version":
		return CmdVersion, args

	case "help", "-h", "--help":
		return CmdHelp, args

	default:
		fmt.Fprintf(os.Stderr, "rigprep: unknown command %q\n\n", cmd)
		return CmdHelp, args
	}
}

// parseFlags extracts flags from argv and returns the remaining positional
// arguments. Flags may appear before or after the command word.
func parseFlags(argv []string) ([]string, Args) {
	var remaining []string
	args := Args{Limit: 20}

	i := 0
	for i < len(argv) {
		arg := argv[i]

		switch arg {
		case "--json":
			args.JSON = true
		case "--quiet", "-q":
			args.Quiet = true
		case "--non-interactive", "-n":
			args.NonInteractive = true
		case "--explain":
			args.Explain = true
		case "--no-history":
			args.NoHistory = true
		case "--confirm":
			args.Confirm = true
		case "--config":
			if i+1 < len(argv) {
				i++
				args.ConfigPath = argv[i]
			}
		case "--choice":
			if i+1 < len(argv) {
				i++
				if n, err := strconv.Atoi(argv[i]); err == nil && n > 0 {
					args.Choice = n
				}
			}
		case "--limit":
			if i+1 < len(argv) {
				i++
				if n, err := strconv.Atoi(argv[i]); err == nil && n > 0 {
					args.Limit = n
				}
			}
		default:
			remaining = append(remaining, arg)
		}
		i++
	}

	return remaining, args
}
