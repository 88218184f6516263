// rigprep - PyTorch environment resolver for local GPU rigs.
//
// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"os"

	"github.com/jeranaias/rigprep/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdPlan:
		os.Exit(cli.RunPlan(args))
	case cli.CmdDetect:
		os.Exit(cli.RunDetect(args))
	case cli.CmdDoctor:
		os.Exit(cli.RunDoctor(args))
	case cli.CmdHistory:
		os.Exit(cli.RunHistory(args))
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	default:
		cli.PrintUsage()
		os.Exit(1)
	}
}
