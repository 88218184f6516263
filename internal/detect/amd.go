// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import (
	"context"
	"strings"
)

// probeAmd queries rocminfo for the GPU agent, with rocm-smi as a fallback
// for the marketing name. Returns nil when no AMD GPU agent is found.
func (c *Collector) probeAmd(ctx context.Context) *AmdInfo {
	name, gfx := c.rocminfoAgent(ctx)
	if name == "" && gfx == "" {
		// rocminfo absent or no GPU agent; try rocm-smi before giving up.
		name = c.rocmSmiProductName(ctx)
		if name == "" {
			return nil
		}
	}

	if name == "" {
		name = "AMD GPU"
	}

	return &AmdInfo{
		Variant: ClassifyAmd(name, gfx),
		GfxArch: gfx,
		Name:    name,
	}
}

// rocminfoAgent extracts the first GPU agent's marketing name and gfx ISA
// token from rocminfo output. rocminfo lists CPU agents too; only agents
// whose Name field starts with "gfx" are GPUs.
func (c *Collector) rocminfoAgent(ctx context.Context) (name, gfx string) {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	output, err := c.runner.Run(ctx, "rocminfo")
	if err != nil || len(output) == 0 {
		return "", ""
	}

	// Within an agent block rocminfo prints Name (the ISA token for GPUs)
	// before Marketing Name. Track the most recent GPU Name and pair it
	// with the Marketing Name that follows; CPU agents reset the state.
	var isa string
	for _, line := range strings.Split(string(output), "\n") {
		key, value, ok := splitRocmField(line)
		if !ok {
			continue
		}

		switch key {
		case "Name":
			if strings.HasPrefix(value, "gfx") {
				isa = value
			} else {
				isa = ""
			}
		case "Marketing Name":
			if isa != "" {
				return value, isa
			}
		}
	}

	// GPU agent without a marketing name; the ISA token still classifies.
	return "", isa
}

// rocmSmiProductName extracts the card series from rocm-smi output.
func (c *Collector) rocmSmiProductName(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	output, err := c.runner.Run(ctx, "rocm-smi", "--showproductname")
	if err != nil || len(output) == 0 {
		return ""
	}

	// rocm-smi lines look like "GPU[0]  : Card series:  Navi 31 [...]";
	// the value follows the last colon.
	for _, line := range strings.Split(string(output), "\n") {
		if !strings.Contains(line, "Card series") && !strings.Contains(line, "Card Series") {
			continue
		}
		if idx := strings.LastIndex(line, ":"); idx >= 0 {
			if value := strings.TrimSpace(line[idx+1:]); value != "" {
				return value
			}
		}
	}
	return ""
}

// splitRocmField splits a "Key:   Value" line from ROCm tool output.
func splitRocmField(line string) (key, value string, ok bool) {
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}
