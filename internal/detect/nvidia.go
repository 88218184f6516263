// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import (
	"context"
	"strings"
)

// probeNvidia queries nvidia-smi for the device name and compute capability.
// Returns nil when the tool is absent, errors, or produces unusable output -
// the caller treats nil as "no NVIDIA GPU", never as a zeroed record.
func (c *Collector) probeNvidia(ctx context.Context) *NvidiaInfo {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	output, err := c.runner.Run(ctx, "nvidia-smi",
		"--query-gpu=name,compute_cap",
		"--format=csv,noheader")
	if err != nil || len(output) == 0 {
		return nil
	}

	// nvidia-smi emits one CSV line per GPU with ", " as delimiter; the
	// first device drives the build choice on multi-GPU machines.
	line := strings.TrimSpace(strings.Split(strings.TrimSpace(string(output)), "\n")[0])
	parts := strings.Split(line, ", ")
	if len(parts) < 2 {
		return nil
	}

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return nil
	}

	return &NvidiaInfo{
		Name:       name,
		Capability: ParseComputeCapability(parts[1]),
	}
}
