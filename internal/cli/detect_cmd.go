// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// detect_cmd.go - Detect command implementation for rigprep.
//
// Command: detect
// Short:   Probe the machine and print the hardware facts
// Aliases: probe
//
// Examples:
//   rigprep detect               Show detected hardware
//   rigprep detect --json        Facts as JSON for scripting
package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/rigprep/internal/detect"
)

// RunDetect executes the detect command and returns the process exit code.
func RunDetect(args Args) int {
	cfg, err := loadConfig(args)
	if err != nil {
		if args.JSON {
			NewJSONErrorResponse("detect", err).Print()
		} else {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("error: ")+err.Error())
		}
		return 1
	}

	facts, err := collectFacts(cfg)
	if err != nil {
		if args.JSON {
			NewJSONErrorResponse("detect", err).Print()
		} else {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("error: ")+err.Error())
		}
		return 1
	}

	if args.JSON || cfg.UI.JSON {
		NewJSONResponse("detect", newHardwareData(facts)).Print()
		return 0
	}

	printFacts(facts)
	return 0
}

// printFacts renders the fact record as labeled lines.
func printFacts(facts detect.HardwareFacts) {
	fmt.Println(TitleStyle.Render("Hardware Facts"))
	fmt.Println(RenderLabel("Platform:") + ValueStyle.Render(facts.Platform.String()))
	fmt.Println(RenderLabel("Accelerator:") + ValueStyle.Render(facts.Accelerator.String()))

	switch facts.Accelerator {
	case detect.AcceleratorNvidia:
		if facts.Nvidia != nil {
			fmt.Println(RenderLabel("Device:") + ValueStyle.Render(facts.Nvidia.Name))
			fmt.Println(RenderLabel("Compute:") + ValueStyle.Render(facts.Nvidia.Capability.String()))
		}
	case detect.AcceleratorAmd:
		if facts.Amd != nil {
			fmt.Println(RenderLabel("Device:") + ValueStyle.Render(facts.Amd.Name))
			if facts.Amd.GfxArch != "" {
				fmt.Println(RenderLabel("ISA:") + ValueStyle.Render(facts.Amd.GfxArch))
			}
			fmt.Println(RenderLabel("Variant:") + ValueStyle.Render(facts.Amd.Variant.String()))
			if facts.Groups != nil {
				fmt.Println(RenderLabel("Render group:") + renderBool(facts.Groups.HasRenderGroup))
				fmt.Println(RenderLabel("Video group:") + renderBool(facts.Groups.HasVideoGroup))
			}
		}
	default:
		fmt.Println(DimStyle.Render("No GPU acceleration available; CPU build will be used."))
	}
}

func renderBool(ok bool) string {
	if ok {
		return SuccessStyle.Render("yes")
	}
	return WarningStyle.Render("no")
}
