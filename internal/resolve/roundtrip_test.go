// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package resolve

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/rigprep/internal/detect"
)

// stubInstaller records the plan it was handed, standing in for the real
// plan consumer.
type stubInstaller struct {
	installed *BuildPlan
}

func (s *stubInstaller) Install(_ context.Context, plan *BuildPlan) error {
	s.installed = plan
	return nil
}

// classifyInstalledBackend plays the validator role: re-derive the backend
// class from what the stub installer received, the way a post-install check
// would inspect torch.version.cuda / torch.version.hip.
func classifyInstalledBackend(plan *BuildPlan) string {
	idx := plan.Selected.SourceIndex
	switch {
	case strings.Contains(idx, "/cu"):
		return "nvidia"
	case strings.Contains(idx, "rocm"):
		return "amd"
	default:
		return "cpu"
	}
}

// TestRoundTrip_InstalledBackendMatchesSelection feeds each resolved plan
// through the stub installer and checks the validator's classification agrees
// with the selected option. Selecting an AMD community build must never be
// re-classified as an NVIDIA install, and so on.
func TestRoundTrip_InstalledBackendMatchesSelection(t *testing.T) {
	tests := []struct {
		name        string
		facts       detect.HardwareFacts
		opts        Options
		wantBackend string
	}{
		{"ampere", nvidiaFacts(8, 6), Options{}, "nvidia"},
		{"ada", nvidiaFacts(9, 0), Options{}, "nvidia"},
		{"blackwell nightly", nvidiaFacts(12, 0), Options{Choice: 2}, "nvidia"},
		{"blackwell fallback", nvidiaFacts(12, 0), Options{Choice: 3}, "nvidia"},
		{"strix halo community", strixHaloFacts(true, true), Options{Choice: 1}, "amd"},
		{"strix halo cpu fallback", strixHaloFacts(true, true), Options{Choice: 4}, "cpu"},
		{"other amd", otherAmdFacts(), Options{Choice: 1}, "amd"},
		{"cpu only", cpuFacts(), Options{}, "cpu"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			plan, err := Resolve(tc.facts, tc.opts)
			require.NoError(t, err)
			require.NotNil(t, plan.Selected)

			installer := &stubInstaller{}
			require.NoError(t, installer.Install(context.Background(), plan))
			require.NotNil(t, installer.installed)

			assert.Equal(t, tc.wantBackend, classifyInstalledBackend(installer.installed),
				"installed backend must agree with selected option %q", plan.Selected.Label)
		})
	}
}
