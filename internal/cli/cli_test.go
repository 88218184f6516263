// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"
	"testing"

	"github.com/jeranaias/rigprep/internal/detect"
	"github.com/jeranaias/rigprep/internal/resolve"
)

// =============================================================================
// ARGUMENT PARSING
// =============================================================================

func TestParseArgs_Commands(t *testing.T) {
	tests := []struct {
		argv []string
		want Command
	}{
		{nil, CmdPlan},
		{[]string{"plan"}, CmdPlan},
		{[]string{"resolve"}, CmdPlan},
		{[]string{"detect"}, CmdDetect},
		{[]string{"probe"}, CmdDetect},
		{[]string{"doctor"}, CmdDoctor},
		{[]string{"diag"}, CmdDoctor},
		{[]string{"history"}, CmdHistory},
		{[]string{"log"}, CmdHistory},
		{[]string{"version"}, CmdVersion},
		{[]string{"--version"}, CmdVersion},
		{[]string{"help"}, CmdHelp},
		{[]string{"bogus"}, CmdHelp},
	}

	for _, tc := range tests {
		cmd, _ := parseArgs(tc.argv)
		if cmd != tc.want {
			t.Errorf("parseArgs(%v) = %v, want %v", tc.argv, cmd, tc.want)
		}
	}
}

func TestParseArgs_Flags(t *testing.T) {
	cmd, args := parseArgs([]string{"plan", "--json", "--choice", "2", "--non-interactive", "--no-history"})
	if cmd != CmdPlan {
		t.Fatalf("cmd = %v, want CmdPlan", cmd)
	}
	if !args.JSON || !args.NonInteractive || !args.NoHistory {
		t.Errorf("flags not parsed: %+v", args)
	}
	if args.Choice != 2 {
		t.Errorf("choice = %d, want 2", args.Choice)
	}
}

func TestParseArgs_FlagsBeforeCommand(t *testing.T) {
	cmd, args := parseArgs([]string{"--json", "detect"})
	if cmd != CmdDetect {
		t.Errorf("cmd = %v, want CmdDetect", cmd)
	}
	if !args.JSON {
		t.Error("--json before command not parsed")
	}
}

func TestParseArgs_InvalidChoiceIgnored(t *testing.T) {
	_, args := parseArgs([]string{"plan", "--choice", "zero"})
	if args.Choice != 0 {
		t.Errorf("choice = %d, want 0 for non-numeric input", args.Choice)
	}

	_, args = parseArgs([]string{"plan", "--choice", "-3"})
	if args.Choice != 0 {
		t.Errorf("choice = %d, want 0 for negative input", args.Choice)
	}
}

func TestParseArgs_HistorySubcommand(t *testing.T) {
	cmd, args := parseArgs([]string{"history", "show", "3f2a"})
	if cmd != CmdHistory {
		t.Fatalf("cmd = %v, want CmdHistory", cmd)
	}
	if args.Subcommand != "show" {
		t.Errorf("subcommand = %q, want %q", args.Subcommand, "show")
	}
	if len(args.Raw) != 1 || args.Raw[0] != "3f2a" {
		t.Errorf("raw = %v, want [3f2a]", args.Raw)
	}
}

func TestParseArgs_HistoryClearConfirm(t *testing.T) {
	_, args := parseArgs([]string{"history", "clear", "--confirm"})
	if args.Subcommand != "clear" || !args.Confirm {
		t.Errorf("clear --confirm not parsed: %+v", args)
	}
}

func TestParseArgs_ConfigPath(t *testing.T) {
	_, args := parseArgs([]string{"plan", "--config", "/tmp/alt.toml"})
	if args.ConfigPath != "/tmp/alt.toml" {
		t.Errorf("config path = %q", args.ConfigPath)
	}
}

// =============================================================================
// FORCED ACCELERATOR
// =============================================================================

func TestForcedFacts(t *testing.T) {
	facts, ok := forcedFacts("none")
	if !ok || facts.Accelerator != detect.AcceleratorNone {
		t.Errorf("forced none: ok=%v facts=%+v", ok, facts)
	}

	facts, ok = forcedFacts("nvidia")
	if !ok || facts.Accelerator != detect.AcceleratorNvidia || facts.Nvidia == nil {
		t.Fatalf("forced nvidia: ok=%v facts=%+v", ok, facts)
	}
	// Forced vendor has no capability data, so resolution must take the
	// conservative row rather than failing.
	plan, err := resolve.Resolve(facts, resolve.Options{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if plan.Selected == nil || plan.Selected.Label != "cuda-12.1-stable" {
		t.Errorf("forced nvidia selected %+v, want conservative cu121 build", plan.Selected)
	}

	if _, ok := forcedFacts(""); ok {
		t.Error("empty force string should not produce facts")
	}
	if _, ok := forcedFacts("intel"); ok {
		t.Error("unknown force string should not produce facts")
	}
}

// =============================================================================
// RENDERING
// =============================================================================

func cpuPlan(t *testing.T) (detect.HardwareFacts, *resolve.BuildPlan) {
	t.Helper()
	facts := detect.HardwareFacts{Accelerator: detect.AcceleratorNone}
	plan, err := resolve.Resolve(facts, resolve.Options{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	return facts, plan
}

func TestRenderPlanText_Selected(t *testing.T) {
	facts, plan := cpuPlan(t)
	out := renderPlanText(facts, plan)

	for _, want := range []string{"Build Plan", "cpu-stable", "pip install"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderPlanText_PendingChoice(t *testing.T) {
	facts := detect.HardwareFacts{
		Accelerator: detect.AcceleratorNvidia,
		Nvidia: &detect.NvidiaInfo{
			Name:       "NVIDIA GeForce RTX 5090",
			Capability: detect.ComputeCapability{Major: 12, Minor: 0, Known: true},
		},
	}
	plan, err := resolve.Resolve(facts, resolve.Options{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !plan.RequiresUserChoice {
		t.Fatal("expected pending choice")
	}

	out := renderPlanText(facts, plan)
	if !strings.Contains(out, "Candidates") {
		t.Errorf("pending plan output missing candidate list:\n%s", out)
	}
	if !strings.Contains(out, "1.") || !strings.Contains(out, "3.") {
		t.Errorf("expected three numbered candidates:\n%s", out)
	}
}

func TestPipCommand(t *testing.T) {
	opt := resolve.BuildOption{
		Prerelease:  true,
		SourceIndex: "https://example.invalid/whl/nightly",
		Packages: []resolve.Package{
			{Name: "torch", Constraint: ""},
			{Name: "torchvision", Constraint: ""},
		},
	}

	cmd := pipCommand(opt)
	for _, want := range []string{"pip install", "--pre", `"torch"`, "--index-url https://example.invalid/whl/nightly"} {
		if !strings.Contains(cmd, want) {
			t.Errorf("pip command missing %q: %s", want, cmd)
		}
	}
}

func TestExplainMarkdown(t *testing.T) {
	facts, plan := cpuPlan(t)
	md := explainMarkdown(facts, plan)

	for _, want := range []string{"# Build Plan", "## Selected: cpu-stable", "```sh"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestNewPlanData(t *testing.T) {
	facts := detect.HardwareFacts{
		Platform:    detect.PlatformHostedVM,
		Accelerator: detect.AcceleratorAmd,
		Amd: &detect.AmdInfo{
			Variant: detect.AmdStrixHalo,
			GfxArch: "gfx1151",
			Name:    "AMD Radeon 8060S Graphics",
		},
		Groups: &detect.GroupMembership{HasRenderGroup: true, HasVideoGroup: true},
	}
	plan, err := resolve.Resolve(facts, resolve.Options{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	data := newPlanData(facts, plan)
	if data.Hardware.Accelerator != "amd" || data.Hardware.GfxArch != "gfx1151" {
		t.Errorf("hardware data = %+v", data.Hardware)
	}
	if !data.RequiresUserChoice {
		t.Error("requires_user_choice not carried over")
	}
	if len(data.Candidates) != len(plan.Candidates) {
		t.Errorf("candidates = %d, want %d", len(data.Candidates), len(plan.Candidates))
	}
	if len(data.Diagnostics) == 0 {
		t.Error("diagnostics missing")
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func TestShortID(t *testing.T) {
	if got := shortID("3f2a8c1d-1111-2222-3333-444455556666"); got != "3f2a8c1d" {
		t.Errorf("shortID = %q", got)
	}
	if got := shortID("nodashes"); got != "nodashes" {
		t.Errorf("shortID = %q", got)
	}
}
