// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package resolve

// Wheel index URLs. Stable indexes are vendor-published; the gfx1151 index
// is community-maintained (TheRock nightlies) because vendor ROCm wheels do
// not support Strix Halo.
const (
	indexCPU          = "https://download.pytorch.org/whl/cpu"
	indexCUDA121      = "https://download.pytorch.org/whl/cu121"
	indexCUDA124      = "https://download.pytorch.org/whl/cu124"
	indexCUDA128      = "https://download.pytorch.org/whl/cu128"
	indexCUDA128Night = "https://download.pytorch.org/whl/nightly/cu128"
	indexROCm62       = "https://download.pytorch.org/whl/rocm6.2"
	indexROCm64Night  = "https://download.pytorch.org/whl/nightly/rocm6.4"
	indexGfx1151      = "https://rocm.nightlies.amd.com/v2/gfx1151/"
)

// torchStack returns the standard torch package trio with the given torch
// constraint. torchvision/torchaudio track whatever the index pairs with the
// selected torch build, so they stay unconstrained.
func torchStack(torchConstraint string) []Package {
	return []Package{
		{Name: "torch", Constraint: torchConstraint},
		{Name: "torchvision"},
		{Name: "torchaudio"},
	}
}

// =============================================================================
// NVIDIA OPTIONS
// =============================================================================

// blackwellOptions are the candidates for compute capability 12+ hardware.
// All three have real trade-offs: stable cu128 wheels are newest-but-tested,
// nightlies track upstream fixes for the newest kernels, and the cu121
// fallback is the most battle-tested but misses Blackwell optimizations.
func blackwellOptions() []BuildOption {
	return []BuildOption{
		{
			Label:       "cuda-12.8-stable",
			Summary:     "Stable wheels built against CUDA 12.8 (recommended)",
			Packages:    torchStack(""),
			SourceIndex: indexCUDA128,
			Tier:        TierExperimental,
		},
		{
			Label:       "cuda-12.8-nightly",
			Summary:     "Nightly wheels with the latest Blackwell kernel fixes",
			Packages:    torchStack(""),
			SourceIndex: indexCUDA128Night,
			Prerelease:  true,
			Tier:        TierExperimental,
		},
		{
			Label:       "cuda-12.1-fallback",
			Summary:     "Older stable CUDA build; most tested, least optimized",
			Packages:    torchStack(""),
			SourceIndex: indexCUDA121,
			Tier:        TierExperimental,
		},
	}
}

// adaOption is the single stable candidate for compute capability 9-11.
func adaOption() BuildOption {
	return BuildOption{
		Label:       "cuda-12.4-stable",
		Summary:     "Stable wheels built against CUDA 12.4",
		Packages:    torchStack(""),
		SourceIndex: indexCUDA124,
		Tier:        TierStable,
	}
}

// ampereOption is the single stable candidate for compute capability 8.x.
// The torch constraint pins the major but leaves the minor free.
func ampereOption() BuildOption {
	return BuildOption{
		Label:       "cuda-12.1-stable",
		Summary:     "Stable wheels built against CUDA 12.1",
		Packages:    torchStack(">=2.4,<3"),
		SourceIndex: indexCUDA121,
		Tier:        TierStable,
	}
}

// legacyNvidiaOption serves pre-Ampere hardware; same index as the Ampere
// path, flagged by an Info diagnostic at the call site.
func legacyNvidiaOption() BuildOption {
	opt := ampereOption()
	opt.Label = "cuda-12.1-legacy"
	opt.Summary = "Stable CUDA build for pre-Ampere hardware"
	return opt
}

// =============================================================================
// AMD OPTIONS
// =============================================================================

// strixHaloOptions are the candidates for Strix Halo APUs, ordered by how
// well they are known to work on gfx1151.
func strixHaloOptions() []BuildOption {
	return []BuildOption{
		{
			Label:       "gfx1151-community-nightly",
			Summary:     "Community gfx1151 nightlies (recommended; only builds with full support)",
			Packages:    torchStack(""),
			SourceIndex: indexGfx1151,
			Prerelease:  true,
			Tier:        TierCommunitySupported,
		},
		{
			Label:       "rocm-6.2-stable",
			Summary:     "Vendor stable ROCm wheels; limited gfx1151 coverage",
			Packages:    torchStack(""),
			SourceIndex: indexROCm62,
			Tier:        TierCommunitySupported,
		},
		{
			Label:       "rocm-6.4-nightly",
			Summary:     "Vendor ROCm nightlies; experimental on this hardware",
			Packages:    torchStack(""),
			SourceIndex: indexROCm64Night,
			Prerelease:  true,
			Tier:        TierCommunitySupported,
		},
		{
			Label:       "cpu-fallback",
			Summary:     "CPU-only wheels; always works, no acceleration",
			Packages:    torchStack(""),
			SourceIndex: indexCPU,
			Tier:        TierCommunitySupported,
		},
	}
}

// amdOptions are the candidates for standard ROCm-capable AMD GPUs.
func amdOptions() []BuildOption {
	return []BuildOption{
		{
			Label:       "rocm-6.2-stable",
			Summary:     "Stable wheels built against ROCm 6.2",
			Packages:    torchStack(""),
			SourceIndex: indexROCm62,
			Tier:        TierStable,
		},
		{
			Label:       "cpu-fallback",
			Summary:     "CPU-only wheels; always works, no acceleration",
			Packages:    torchStack(""),
			SourceIndex: indexCPU,
			Tier:        TierStable,
		},
	}
}

// =============================================================================
// CPU OPTION
// =============================================================================

// cpuOption is the single candidate when no accelerator is present.
func cpuOption() BuildOption {
	return BuildOption{
		Label:       "cpu-stable",
		Summary:     "Stable CPU-only wheels",
		Packages:    torchStack(""),
		SourceIndex: indexCPU,
		Tier:        TierStable,
	}
}
