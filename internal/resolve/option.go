// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package resolve

import (
	"fmt"
	"strings"
)

// =============================================================================
// STABILITY TIER
// =============================================================================

// StabilityTier classifies how battle-tested a build option is.
type StabilityTier int

const (
	// TierStable - vendor-published stable wheels.
	TierStable StabilityTier = iota
	// TierExperimental - very new hardware; stable wheels exist but carry
	// real trade-offs against nightlies.
	TierExperimental
	// TierCommunitySupported - wheels maintained by third parties rather
	// than the primary vendor.
	TierCommunitySupported
)

// String returns the string representation of the tier.
func (t StabilityTier) String() string {
	switch t {
	case TierStable:
		return "stable"
	case TierExperimental:
		return "experimental"
	case TierCommunitySupported:
		return "community-supported"
	default:
		return "unknown"
	}
}

// =============================================================================
// PACKAGE
// =============================================================================

// Package is a single package requirement within a build option.
type Package struct {
	// Name of the package (e.g. "torch")
	Name string
	// Constraint is the version constraint in requirement syntax; empty
	// means "latest the index offers"
	Constraint string
}

// String returns the requirement in pip syntax.
func (p Package) String() string {
	return p.Name + p.Constraint
}

// =============================================================================
// BUILD OPTION
// =============================================================================

// BuildOption is one installable candidate for the detected hardware.
type BuildOption struct {
	// Label is a short human-readable identifier (e.g. "cuda-12.8-stable")
	Label string
	// Summary is a one-line description shown when choosing between options
	Summary string
	// Packages to install, in order
	Packages []Package
	// SourceIndex is the package index URL; empty means the default index
	SourceIndex string
	// Prerelease marks nightly/pre-release builds
	Prerelease bool
	// Tier is the stability classification
	Tier StabilityTier
}

// String returns a formatted representation of the option.
func (o BuildOption) String() string {
	pkgs := make([]string, len(o.Packages))
	for i, p := range o.Packages {
		pkgs[i] = p.String()
	}
	s := fmt.Sprintf("%s [%s]: %s", o.Label, o.Tier, strings.Join(pkgs, " "))
	if o.SourceIndex != "" {
		s += " @ " + o.SourceIndex
	}
	return s
}

// =============================================================================
// DIAGNOSTICS
// =============================================================================

// Severity of a diagnostic attached to a plan.
type Severity int

const (
	// SeverityInfo - informational note, no action needed.
	SeverityInfo Severity = iota
	// SeverityWarning - the installer or user should pay attention.
	SeverityWarning
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Diagnostic is an advisory note attached to a BuildPlan. Diagnostics never
// fail resolution; the surrounding installer decides whether to block.
type Diagnostic struct {
	Severity Severity
	Message  string
}

// String returns "severity: message".
func (d Diagnostic) String() string {
	return d.Severity.String() + ": " + d.Message
}

// =============================================================================
// BUILD PLAN
// =============================================================================

// BuildPlan is the resolver's output: either a selected option ready for the
// installer, or a candidate list awaiting the caller's choice.
type BuildPlan struct {
	// Selected is the chosen option; nil while RequiresUserChoice is true
	Selected *BuildOption
	// Candidates are all viable options for the matched decision row,
	// ordered lowest-risk first
	Candidates []BuildOption
	// Diagnostics collected during resolution, in emission order
	Diagnostics []Diagnostic
	// RequiresUserChoice is true when the caller must pick a candidate
	// (or confirm proceeding) and re-invoke Resolve with that index
	RequiresUserChoice bool
}

// Warnings returns only the warning-severity diagnostics.
func (p *BuildPlan) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, d := range p.Diagnostics {
		if d.Severity == SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}

// HasWarnings returns true if any warning diagnostics are attached.
func (p *BuildPlan) HasWarnings() bool {
	return len(p.Warnings()) > 0
}
