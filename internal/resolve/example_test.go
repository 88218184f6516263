// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package resolve_test

import (
	"fmt"

	"github.com/jeranaias/rigprep/internal/detect"
	"github.com/jeranaias/rigprep/internal/resolve"
)

// Example shows the two-call contract: the first call reports that a choice
// is required, the second call carries the chosen index and yields a final
// plan.
func Example() {
	facts := detect.HardwareFacts{
		Platform:    detect.PlatformNative,
		Accelerator: detect.AcceleratorNvidia,
		Nvidia: &detect.NvidiaInfo{
			Name:       "NVIDIA GeForce RTX 5090",
			Capability: detect.ComputeCapability{Major: 12, Minor: 0, Known: true},
		},
	}

	plan, _ := resolve.Resolve(facts, resolve.Options{})
	fmt.Println("choice required:", plan.RequiresUserChoice)
	for i, opt := range plan.Candidates {
		fmt.Printf("  %d. %s\n", i+1, opt.Label)
	}

	// The caller picked option 2.
	plan, _ = resolve.Resolve(facts, resolve.Options{Choice: 2})
	fmt.Println("selected:", plan.Selected.Label)

	// Output:
	// choice required: true
	//   1. cuda-12.8-stable
	//   2. cuda-12.8-nightly
	//   3. cuda-12.1-fallback
	// selected: cuda-12.8-nightly
}

// Example_nonInteractive shows the explicit opt-in that lets automation take
// the lowest-risk candidate without prompting.
func Example_nonInteractive() {
	facts := detect.HardwareFacts{
		Accelerator: detect.AcceleratorAmd,
		Amd: &detect.AmdInfo{
			Variant: detect.AmdOther,
			Name:    "AMD Radeon RX 7900 XTX",
			GfxArch: "gfx1100",
		},
		Groups: &detect.GroupMembership{HasRenderGroup: true, HasVideoGroup: true},
	}

	plan, _ := resolve.Resolve(facts, resolve.Options{NonInteractive: true})
	fmt.Println("selected:", plan.Selected.Label)

	// Output:
	// selected: rocm-6.2-stable
}
