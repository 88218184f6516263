// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// render.go - Plan rendering for terminal and JSON output.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/rigprep/internal/detect"
	"github.com/jeranaias/rigprep/internal/resolve"
)

// =============================================================================
// JSON DATA SHAPES
// =============================================================================

// PlanData is the JSON shape of a resolved (or pending) plan.
type PlanData struct {
	Hardware           HardwareData  `json:"hardware"`
	Selected           *OptionData   `json:"selected,omitempty"`
	Candidates         []OptionData  `json:"candidates"`
	Diagnostics        []DiagData    `json:"diagnostics,omitempty"`
	RequiresUserChoice bool          `json:"requires_user_choice"`
}

// HardwareData is the JSON shape of the detected hardware.
type HardwareData struct {
	Platform    string `json:"platform"`
	Accelerator string `json:"accelerator"`
	DeviceName  string `json:"device_name,omitempty"`
	Capability  string `json:"compute_capability,omitempty"`
	GfxArch     string `json:"gfx_arch,omitempty"`
}

// OptionData is the JSON shape of one build option.
type OptionData struct {
	Label       string        `json:"label"`
	Summary     string        `json:"summary"`
	Tier        string        `json:"tier"`
	Prerelease  bool          `json:"prerelease,omitempty"`
	SourceIndex string        `json:"source_index,omitempty"`
	Packages    []PackageData `json:"packages"`
}

// PackageData is the JSON shape of one package requirement.
type PackageData struct {
	Name       string `json:"name"`
	Constraint string `json:"constraint,omitempty"`
}

// DiagData is the JSON shape of a diagnostic.
type DiagData struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// newPlanData converts facts and a plan into the JSON shape.
func newPlanData(facts detect.HardwareFacts, plan *resolve.BuildPlan) PlanData {
	data := PlanData{
		Hardware:           newHardwareData(facts),
		RequiresUserChoice: plan.RequiresUserChoice,
	}

	if plan.Selected != nil {
		sel := newOptionData(*plan.Selected)
		data.Selected = &sel
	}
	for _, c := range plan.Candidates {
		data.Candidates = append(data.Candidates, newOptionData(c))
	}
	for _, d := range plan.Diagnostics {
		data.Diagnostics = append(data.Diagnostics, DiagData{
			Severity: d.Severity.String(),
			Message:  d.Message,
		})
	}

	return data
}

func newHardwareData(facts detect.HardwareFacts) HardwareData {
	data := HardwareData{
		Platform:    facts.Platform.String(),
		Accelerator: facts.Accelerator.String(),
	}
	switch facts.Accelerator {
	case detect.AcceleratorNvidia:
		if facts.Nvidia != nil {
			data.DeviceName = facts.Nvidia.Name
			data.Capability = facts.Nvidia.Capability.String()
		}
	case detect.AcceleratorAmd:
		if facts.Amd != nil {
			data.DeviceName = facts.Amd.Name
			data.GfxArch = facts.Amd.GfxArch
		}
	}
	return data
}

func newOptionData(opt resolve.BuildOption) OptionData {
	data := OptionData{
		Label:       opt.Label,
		Summary:     opt.Summary,
		Tier:        opt.Tier.String(),
		Prerelease:  opt.Prerelease,
		SourceIndex: opt.SourceIndex,
	}
	for _, p := range opt.Packages {
		data.Packages = append(data.Packages, PackageData{Name: p.Name, Constraint: p.Constraint})
	}
	return data
}

// =============================================================================
// TEXT RENDERING
// =============================================================================

// renderPlanText renders the plan as styled terminal output.
func renderPlanText(facts detect.HardwareFacts, plan *resolve.BuildPlan) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Build Plan"))
	b.WriteString("\n")
	b.WriteString(RenderLabel("Hardware:"))
	b.WriteString(ValueStyle.Render(facts.String()))
	b.WriteString("\n")

	for _, d := range plan.Diagnostics {
		style := InfoStyle
		prefix := "i "
		if d.Severity == resolve.SeverityWarning {
			style = WarningStyle
			prefix = "! "
		}
		b.WriteString(style.Render(prefix + d.Message))
		b.WriteString("\n")
	}

	if plan.Selected != nil {
		b.WriteString("\n")
		b.WriteString(RenderLabel("Selected:"))
		b.WriteString(HighlightStyle.Render(plan.Selected.Label))
		b.WriteString(DimStyle.Render(" [" + plan.Selected.Tier.String() + "]"))
		b.WriteString("\n")
		b.WriteString(renderInstallLines(*plan.Selected))
		return b.String()
	}

	// Pending choice: show the candidate menu
	b.WriteString("\n")
	b.WriteString(SectionStyle.Render("Candidates"))
	b.WriteString("\n")
	for i, opt := range plan.Candidates {
		b.WriteString(fmt.Sprintf("  %d. %s %s\n", i+1,
			HighlightStyle.Render(opt.Label),
			DimStyle.Render("["+opt.Tier.String()+"]")))
		b.WriteString(DimStyle.Render("     " + opt.Summary))
		b.WriteString("\n")
	}
	return b.String()
}

// renderInstallLines renders the pip invocation for an option.
func renderInstallLines(opt resolve.BuildOption) string {
	var b strings.Builder

	pkgs := make([]string, len(opt.Packages))
	for i, p := range opt.Packages {
		pkgs[i] = p.String()
	}

	b.WriteString(RenderLabel("Packages:"))
	b.WriteString(ValueStyle.Render(strings.Join(pkgs, " ")))
	b.WriteString("\n")

	if opt.SourceIndex != "" {
		b.WriteString(RenderLabel("Index:"))
		b.WriteString(ValueStyle.Render(opt.SourceIndex))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(DimStyle.Render("  " + pipCommand(opt)))
	b.WriteString("\n")
	return b.String()
}

// pipCommand builds the pip install command line for an option.
func pipCommand(opt resolve.BuildOption) string {
	parts := []string{"pip", "install"}
	if opt.Prerelease {
		parts = append(parts, "--pre")
	}
	for _, p := range opt.Packages {
		parts = append(parts, fmt.Sprintf("%q", p.String()))
	}
	if opt.SourceIndex != "" {
		parts = append(parts, "--index-url", opt.SourceIndex)
	}
	return strings.Join(parts, " ")
}

// =============================================================================
// MARKDOWN RENDERING (--explain)
// =============================================================================

// markdownRenderer is the glamour renderer for --explain output.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fall back to plain markdown if the renderer cannot initialize
		markdownRenderer = nil
	}
}

// renderExplainMarkdown renders the full plan rationale as formatted
// markdown. Falls back to raw markdown on renderer failure or piped output.
func renderExplainMarkdown(facts detect.HardwareFacts, plan *resolve.BuildPlan) string {
	md := explainMarkdown(facts, plan)
	if markdownRenderer == nil || !IsStdoutTTY() {
		return md
	}
	rendered, err := markdownRenderer.Render(md)
	if err != nil {
		return md
	}
	return rendered
}

// explainMarkdown builds the markdown source for the plan rationale.
func explainMarkdown(facts detect.HardwareFacts, plan *resolve.BuildPlan) string {
	var b strings.Builder

	b.WriteString("# Build Plan\n\n")
	b.WriteString("**Hardware:** " + facts.String() + "\n\n")

	if len(plan.Diagnostics) > 0 {
		b.WriteString("## Notes\n\n")
		for _, d := range plan.Diagnostics {
			b.WriteString("- **" + d.Severity.String() + ":** " + d.Message + "\n")
		}
		b.WriteString("\n")
	}

	if plan.Selected != nil {
		b.WriteString("## Selected: " + plan.Selected.Label + "\n\n")
		b.WriteString(plan.Selected.Summary + "\n\n")
		writeOptionDetail(&b, *plan.Selected)
	}

	if len(plan.Candidates) > 1 || plan.Selected == nil {
		b.WriteString("## All Candidates\n\n")
		for i, opt := range plan.Candidates {
			b.WriteString(fmt.Sprintf("### %d. %s (%s)\n\n", i+1, opt.Label, opt.Tier))
			b.WriteString(opt.Summary + "\n\n")
			writeOptionDetail(&b, opt)
		}
	}

	return b.String()
}

func writeOptionDetail(b *strings.Builder, opt resolve.BuildOption) {
	pkgs := make([]string, len(opt.Packages))
	for i, p := range opt.Packages {
		pkgs[i] = p.String()
	}
	b.WriteString("- Packages: `" + strings.Join(pkgs, " ") + "`\n")
	if opt.SourceIndex != "" {
		b.WriteString("- Index: `" + opt.SourceIndex + "`\n")
	}
	if opt.Prerelease {
		b.WriteString("- Pre-release builds\n")
	}
	b.WriteString("\n```sh\n" + pipCommand(opt) + "\n```\n\n")
}
