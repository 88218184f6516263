// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package resolve

import (
	"errors"
	"fmt"

	"github.com/jeranaias/rigprep/internal/detect"
)

// ErrInvalidChoice is returned when Options.Choice is outside the candidate
// range. This is the only hard error Resolve produces: it signals caller
// misuse, and the caller is expected to re-prompt.
var ErrInvalidChoice = errors.New("choice index out of range")

// Options carries the caller's decisions into resolution. The zero value
// means "interactive caller, no choice made yet".
type Options struct {
	// Choice is the 1-based index into the candidate list from a previous
	// RequiresUserChoice result; 0 means no choice supplied.
	Choice int
	// NonInteractive selects the first (lowest-risk) candidate instead of
	// requesting a choice. This is an explicit opt-in, never a default.
	// It does not override the confirmation required for incomplete
	// device-group membership.
	NonInteractive bool
}

// Resolve maps hardware facts to a build plan. It is pure and total for all
// expected hardware variation: unknown capabilities degrade to conservative
// builds with a diagnostic, and the zeroed-sentinel shape some drivers
// produce for "no GPU" routes to the CPU path, never to a real NVIDIA row.
func Resolve(facts detect.HardwareFacts, opts Options) (*BuildPlan, error) {
	switch facts.Accelerator {
	case detect.AcceleratorNvidia:
		if nvidiaRecordEmpty(facts.Nvidia) {
			// Sentinel shape from a failed probe; treat as no GPU.
			return resolveCPU(), nil
		}
		return resolveNvidia(facts.Nvidia, opts)
	case detect.AcceleratorAmd:
		if facts.Amd == nil {
			return resolveCPU(), nil
		}
		return resolveAmd(facts.Amd, facts.Groups, opts)
	default:
		return resolveCPU(), nil
	}
}

// nvidiaRecordEmpty reports whether an NVIDIA record is the zeroed sentinel
// ("none", 0, 0) rather than a real device. A genuine GPU always has a name;
// capability 0.0 does not exist.
func nvidiaRecordEmpty(info *detect.NvidiaInfo) bool {
	if info == nil {
		return true
	}
	if info.Name == "" || info.Name == "none" {
		return true
	}
	return info.Capability.Known && info.Capability.Major == 0 && info.Capability.Minor == 0
}

// =============================================================================
// NVIDIA BRANCH
// =============================================================================

// resolveNvidia walks the NVIDIA decision rows. Comparisons are integer,
// first match wins.
func resolveNvidia(info *detect.NvidiaInfo, opts Options) (*BuildPlan, error) {
	cc := info.Capability

	if !cc.Known {
		return finalize(&BuildPlan{
			Candidates: []BuildOption{ampereOption()},
			Diagnostics: []Diagnostic{{
				Severity: SeverityInfo,
				Message:  "capability unrecognized, defaulting to conservative build",
			}},
		}, opts, false)
	}

	switch {
	case cc.Major >= 12:
		// Blackwell-class: three viable builds with real trade-offs, so
		// the caller must pick (or explicitly run non-interactively).
		return finalize(&BuildPlan{
			Candidates: blackwellOptions(),
			Diagnostics: []Diagnostic{{
				Severity: SeverityInfo,
				Message:  fmt.Sprintf("%s (compute %s) is Blackwell-class hardware; multiple builds are viable", info.Name, cc),
			}},
		}, opts, false)

	case cc.Major >= 9:
		return finalize(&BuildPlan{Candidates: []BuildOption{adaOption()}}, opts, false)

	case cc.Major >= 8:
		return finalize(&BuildPlan{Candidates: []BuildOption{ampereOption()}}, opts, false)

	default:
		return finalize(&BuildPlan{
			Candidates: []BuildOption{legacyNvidiaOption()},
			Diagnostics: []Diagnostic{{
				Severity: SeverityInfo,
				Message:  fmt.Sprintf("compute %s predates Ampere; build will run with reduced optimization", cc),
			}},
		}, opts, false)
	}
}

// =============================================================================
// AMD BRANCH
// =============================================================================

func resolveAmd(info *detect.AmdInfo, groups *detect.GroupMembership, opts Options) (*BuildPlan, error) {
	if info.Variant == detect.AmdStrixHalo {
		plan := &BuildPlan{
			Candidates: strixHaloOptions(),
			Diagnostics: []Diagnostic{{
				Severity: SeverityWarning,
				Message:  "standard ROCm builds are incompatible with this architecture (gfx1151); community builds required for acceleration",
			}},
		}

		// Missing device groups need explicit confirmation even in
		// non-interactive mode; acceleration will not work without them.
		forceChoice := false
		if groups == nil || !groups.Complete() {
			forceChoice = true
			plan.Diagnostics = append([]Diagnostic{groupDiagnostic(groups)}, plan.Diagnostics...)
		}

		return finalize(plan, opts, forceChoice)
	}

	plan := &BuildPlan{Candidates: amdOptions()}
	if groups != nil && !groups.Complete() {
		plan.Diagnostics = append(plan.Diagnostics, groupDiagnostic(groups))
	}
	return finalize(plan, opts, false)
}

// groupDiagnostic describes which device groups the current user is missing.
func groupDiagnostic(groups *detect.GroupMembership) Diagnostic {
	missing := "render and video groups"
	if groups != nil {
		switch {
		case !groups.HasRenderGroup && groups.HasVideoGroup:
			missing = "render group"
		case groups.HasRenderGroup && !groups.HasVideoGroup:
			missing = "video group"
		}
	}
	return Diagnostic{
		Severity: SeverityWarning,
		Message:  fmt.Sprintf("current user is not in the %s; GPU access will fail until membership is added", missing),
	}
}

// =============================================================================
// CPU BRANCH
// =============================================================================

func resolveCPU() *BuildPlan {
	opt := cpuOption()
	return &BuildPlan{
		Selected:   &opt,
		Candidates: []BuildOption{opt},
	}
}

// =============================================================================
// SELECTION
// =============================================================================

// finalize applies the tie-break rules to a row's candidates:
//   - explicit Choice wins (validated against the candidate range)
//   - a single candidate selects itself unless confirmation is forced
//   - multiple candidates require a choice, unless NonInteractive picks the
//     first (lowest-risk) one
//   - forceChoice demands an explicit Choice regardless of NonInteractive
func finalize(plan *BuildPlan, opts Options, forceChoice bool) (*BuildPlan, error) {
	if opts.Choice != 0 {
		if opts.Choice < 1 || opts.Choice > len(plan.Candidates) {
			return nil, fmt.Errorf("%w: %d of %d candidates", ErrInvalidChoice, opts.Choice, len(plan.Candidates))
		}
		sel := plan.Candidates[opts.Choice-1]
		plan.Selected = &sel
		return plan, nil
	}

	if forceChoice {
		plan.RequiresUserChoice = true
		return plan, nil
	}

	if len(plan.Candidates) == 1 {
		sel := plan.Candidates[0]
		plan.Selected = &sel
		return plan, nil
	}

	if opts.NonInteractive {
		sel := plan.Candidates[0]
		plan.Selected = &sel
		return plan, nil
	}

	plan.RequiresUserChoice = true
	return plan, nil
}
