// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// PLATFORM
// =============================================================================

// Platform identifies whether the system runs on bare metal or under a
// translation layer hosted by a non-Linux OS (WSL and friends).
type Platform int

const (
	// PlatformNative - running directly on the host kernel.
	PlatformNative Platform = iota
	// PlatformHostedVM - running under a hosted translation layer (e.g. WSL2).
	PlatformHostedVM
)

// String returns the string representation of the platform.
func (p Platform) String() string {
	switch p {
	case PlatformNative:
		return "native"
	case PlatformHostedVM:
		return "hosted-vm"
	default:
		return "unknown"
	}
}

// =============================================================================
// ACCELERATOR
// =============================================================================

// Accelerator represents the accelerator vendor bucket a machine falls into.
// A machine is classified into exactly one bucket; probes are ordered and the
// first successful probe wins.
type Accelerator int

const (
	// AcceleratorNone indicates no usable accelerator, CPU-only mode.
	AcceleratorNone Accelerator = iota
	// AcceleratorNvidia indicates a CUDA-capable NVIDIA GPU.
	AcceleratorNvidia
	// AcceleratorAmd indicates a ROCm-capable AMD GPU.
	AcceleratorAmd
)

// String returns the string representation of the accelerator.
func (a Accelerator) String() string {
	switch a {
	case AcceleratorNvidia:
		return "nvidia"
	case AcceleratorAmd:
		return "amd"
	case AcceleratorNone:
		return "none"
	default:
		return "unknown"
	}
}

// =============================================================================
// COMPUTE CAPABILITY
// =============================================================================

// ComputeCapability is an NVIDIA compute capability split into integer parts.
// Comparisons are always integer-wise; "8.6" is major 8, minor 6, never the
// float 8.6. Known is false when the vendor string could not be parsed.
type ComputeCapability struct {
	Major int
	Minor int
	Known bool
}

// String returns the capability in "major.minor" form, or "unknown".
func (c ComputeCapability) String() string {
	if !c.Known {
		return "unknown"
	}
	return fmt.Sprintf("%d.%d", c.Major, c.Minor)
}

// ParseComputeCapability parses a vendor capability string such as "8.6".
// Unparseable or negative input yields Known=false rather than an error so
// that a bad driver string degrades to the conservative build path instead of
// aborting detection.
func ParseComputeCapability(s string) ComputeCapability {
	s = strings.TrimSpace(s)
	parts := strings.SplitN(s, ".", 2)
	if len(parts) == 0 || parts[0] == "" {
		return ComputeCapability{}
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil || major < 0 {
		return ComputeCapability{}
	}

	minor := 0
	if len(parts) == 2 {
		minor, err = strconv.Atoi(parts[1])
		if err != nil || minor < 0 {
			return ComputeCapability{}
		}
	}

	return ComputeCapability{Major: major, Minor: minor, Known: true}
}

// =============================================================================
// NVIDIA INFO
// =============================================================================

// NvidiaInfo describes a detected NVIDIA GPU.
type NvidiaInfo struct {
	// Name of the GPU (e.g. "NVIDIA GeForce RTX 4090")
	Name string
	// Capability is the parsed compute capability
	Capability ComputeCapability
}

// String returns a formatted representation of the GPU.
func (n *NvidiaInfo) String() string {
	return fmt.Sprintf("%s (compute %s)", n.Name, n.Capability)
}

// =============================================================================
// AMD INFO
// =============================================================================

// AmdVariant is the closed set of AMD hardware classes the resolver
// distinguishes. Strix Halo parts need community-built wheels; everything
// else takes the standard ROCm path.
type AmdVariant int

const (
	// AmdOther - any AMD GPU without special build requirements.
	AmdOther AmdVariant = iota
	// AmdStrixHalo - Strix Halo APU (gfx1151); standard ROCm wheels do not work.
	AmdStrixHalo
)

// String returns the string representation of the variant.
func (v AmdVariant) String() string {
	switch v {
	case AmdStrixHalo:
		return "strix-halo"
	case AmdOther:
		return "other"
	default:
		return "unknown"
	}
}

// AmdInfo describes a detected AMD GPU.
type AmdInfo struct {
	// Variant is the classified hardware class
	Variant AmdVariant
	// GfxArch is the ISA token reported by rocminfo (e.g. "gfx1151"), may be empty
	GfxArch string
	// Name is the marketing name (e.g. "AMD Radeon 8060S Graphics")
	Name string
}

// String returns a formatted representation of the GPU.
func (a *AmdInfo) String() string {
	if a.GfxArch != "" {
		return fmt.Sprintf("%s [%s]", a.Name, a.GfxArch)
	}
	return a.Name
}

// strixHaloGfxArch is the ISA token shared by all Strix Halo parts.
const strixHaloGfxArch = "gfx1151"

// strixHaloNameMarkers are marketing-name fragments that identify Strix Halo
// hardware. Matching is case-insensitive substring matching, same as the
// model-name tables used for VRAM inference in rigrun.
var strixHaloNameMarkers = []string{
	"strix halo",
	"ryzen ai max",
	"radeon 8060s",
	"radeon 8050s",
}

// ClassifyAmd classifies an AMD GPU from two independent signals: the
// marketing name and the gfx ISA token. Either signal alone is sufficient to
// identify Strix Halo; this keeps classification working when rocminfo is
// present but rocm-smi is not (or vice versa).
func ClassifyAmd(name, gfxArch string) AmdVariant {
	if strings.EqualFold(strings.TrimSpace(gfxArch), strixHaloGfxArch) {
		return AmdStrixHalo
	}

	nameLower := strings.ToLower(name)
	for _, marker := range strixHaloNameMarkers {
		if strings.Contains(nameLower, marker) {
			return AmdStrixHalo
		}
	}

	return AmdOther
}

// =============================================================================
// GROUP MEMBERSHIP
// =============================================================================

// GroupMembership records whether the current user belongs to the device
// groups ROCm needs. Missing membership is advisory - the resolver surfaces
// it as a warning, the installer decides whether to block.
type GroupMembership struct {
	HasRenderGroup bool
	HasVideoGroup  bool
}

// Complete returns true when both required groups are present.
func (g GroupMembership) Complete() bool {
	return g.HasRenderGroup && g.HasVideoGroup
}

// =============================================================================
// HARDWARE FACTS
// =============================================================================

// HardwareFacts is the normalized fact record produced once per run and
// handed to the resolver. Exactly one of Nvidia/Amd is non-nil, matching
// Accelerator; Groups is only collected for AMD hardware.
type HardwareFacts struct {
	Platform    Platform
	Accelerator Accelerator
	Nvidia      *NvidiaInfo
	Amd         *AmdInfo
	Groups      *GroupMembership
}

// String returns a one-line summary of the facts.
func (f HardwareFacts) String() string {
	switch f.Accelerator {
	case AcceleratorNvidia:
		if f.Nvidia != nil {
			return fmt.Sprintf("%s on %s", f.Nvidia, f.Platform)
		}
	case AcceleratorAmd:
		if f.Amd != nil {
			return fmt.Sprintf("%s on %s", f.Amd, f.Platform)
		}
	}
	return fmt.Sprintf("cpu-only on %s", f.Platform)
}
