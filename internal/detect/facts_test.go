// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import "testing"

// =============================================================================
// COMPUTE CAPABILITY TESTS
// =============================================================================

func TestParseComputeCapability(t *testing.T) {
	tests := []struct {
		input string
		want  ComputeCapability
	}{
		{"8.6", ComputeCapability{Major: 8, Minor: 6, Known: true}},
		{"9.0", ComputeCapability{Major: 9, Minor: 0, Known: true}},
		{"12.0", ComputeCapability{Major: 12, Minor: 0, Known: true}},
		{" 7.5 ", ComputeCapability{Major: 7, Minor: 5, Known: true}},
		{"8", ComputeCapability{Major: 8, Minor: 0, Known: true}},
		{"", ComputeCapability{}},
		{"garbage", ComputeCapability{}},
		{"8.x", ComputeCapability{}},
		{"-1.0", ComputeCapability{}},
		{"8.-6", ComputeCapability{}},
	}

	for _, tc := range tests {
		got := ParseComputeCapability(tc.input)
		if got != tc.want {
			t.Errorf("ParseComputeCapability(%q) = %+v, want %+v", tc.input, got, tc.want)
		}
	}
}

func TestComputeCapability_String(t *testing.T) {
	tests := []struct {
		cap  ComputeCapability
		want string
	}{
		{ComputeCapability{Major: 8, Minor: 6, Known: true}, "8.6"},
		{ComputeCapability{}, "unknown"},
	}

	for _, tc := range tests {
		if got := tc.cap.String(); got != tc.want {
			t.Errorf("ComputeCapability.String() = %q, want %q", got, tc.want)
		}
	}
}

// =============================================================================
// ENUM STRING TESTS
// =============================================================================

func TestEnumStrings(t *testing.T) {
	if got := AcceleratorNvidia.String(); got != "nvidia" {
		t.Errorf("AcceleratorNvidia.String() = %q", got)
	}
	if got := AcceleratorAmd.String(); got != "amd" {
		t.Errorf("AcceleratorAmd.String() = %q", got)
	}
	if got := AcceleratorNone.String(); got != "none" {
		t.Errorf("AcceleratorNone.String() = %q", got)
	}
	if got := Accelerator(99).String(); got != "unknown" {
		t.Errorf("Accelerator(99).String() = %q", got)
	}
	if got := PlatformHostedVM.String(); got != "hosted-vm" {
		t.Errorf("PlatformHostedVM.String() = %q", got)
	}
	if got := AmdStrixHalo.String(); got != "strix-halo" {
		t.Errorf("AmdStrixHalo.String() = %q", got)
	}
}

// =============================================================================
// AMD CLASSIFIER TESTS
// =============================================================================

func TestClassifyAmd(t *testing.T) {
	tests := []struct {
		name    string
		gfxArch string
		want    AmdVariant
	}{
		// Marketing-name signal alone is sufficient
		{"AMD Ryzen AI Max+ 395 w/ Radeon 8060S", "", AmdStrixHalo},
		{"AMD Radeon 8060S Graphics", "", AmdStrixHalo},
		{"AMD Radeon 8050S Graphics", "", AmdStrixHalo},
		{"Strix Halo [Radeon Graphics]", "", AmdStrixHalo},

		// gfx token alone is sufficient
		{"AMD Radeon Graphics", "gfx1151", AmdStrixHalo},
		{"", "gfx1151", AmdStrixHalo},
		{"AMD Radeon Graphics", "GFX1151", AmdStrixHalo},

		// Both signals agree
		{"AMD Ryzen AI Max 390", "gfx1151", AmdStrixHalo},

		// Everything else is OtherAmd
		{"AMD Radeon RX 7900 XTX", "gfx1100", AmdOther},
		{"AMD Radeon RX 6800 XT", "gfx1030", AmdOther},
		{"AMD Instinct MI300X", "gfx942", AmdOther},
		{"AMD Radeon Graphics", "", AmdOther},
	}

	for _, tc := range tests {
		got := ClassifyAmd(tc.name, tc.gfxArch)
		if got != tc.want {
			t.Errorf("ClassifyAmd(%q, %q) = %v, want %v", tc.name, tc.gfxArch, got, tc.want)
		}
	}
}

// =============================================================================
// FACTS SUMMARY TESTS
// =============================================================================

func TestHardwareFacts_String(t *testing.T) {
	nvidia := HardwareFacts{
		Platform:    PlatformNative,
		Accelerator: AcceleratorNvidia,
		Nvidia: &NvidiaInfo{
			Name:       "NVIDIA GeForce RTX 3080",
			Capability: ComputeCapability{Major: 8, Minor: 6, Known: true},
		},
	}
	want := "NVIDIA GeForce RTX 3080 (compute 8.6) on native"
	if got := nvidia.String(); got != want {
		t.Errorf("facts.String() = %q, want %q", got, want)
	}

	cpu := HardwareFacts{Platform: PlatformHostedVM, Accelerator: AcceleratorNone}
	if got := cpu.String(); got != "cpu-only on hosted-vm" {
		t.Errorf("facts.String() = %q", got)
	}
}
