// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import (
	"context"
	"os/exec"
	"os/user"
	"strings"
	"time"
)

// DefaultProbeTimeout bounds each external tool invocation.
// CANCELLATION: Context enables timeout and cancellation
const DefaultProbeTimeout = 4 * time.Second

// =============================================================================
// RUNNER
// =============================================================================

// Runner executes an external read-only probe and returns its stdout.
// The real implementation shells out; tests substitute canned outputs.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs probes through os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// =============================================================================
// COLLECTOR
// =============================================================================

// Collector gathers HardwareFacts from the environment. All dependencies are
// injectable so the collection logic is testable without real hardware.
type Collector struct {
	runner        Runner
	probeTimeout  time.Duration
	kernelRelease func() string
	groupNames    func() ([]string, error)
}

// CollectorOption customizes a Collector.
type CollectorOption func(*Collector)

// WithRunner substitutes the probe runner (used by tests).
func WithRunner(r Runner) CollectorOption {
	return func(c *Collector) { c.runner = r }
}

// WithProbeTimeout overrides the per-probe timeout.
func WithProbeTimeout(d time.Duration) CollectorOption {
	return func(c *Collector) {
		if d > 0 {
			c.probeTimeout = d
		}
	}
}

// WithKernelRelease substitutes the kernel release source (used by tests).
func WithKernelRelease(fn func() string) CollectorOption {
	return func(c *Collector) { c.kernelRelease = fn }
}

// WithGroupNames substitutes the user group listing (used by tests).
func WithGroupNames(fn func() ([]string, error)) CollectorOption {
	return func(c *Collector) { c.groupNames = fn }
}

// NewCollector creates a collector backed by the real system tools.
func NewCollector(opts ...CollectorOption) *Collector {
	c := &Collector{
		runner:        execRunner{},
		probeTimeout:  DefaultProbeTimeout,
		kernelRelease: kernelRelease,
		groupNames:    currentUserGroups,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect produces a HardwareFacts record. Probes run in a fixed order and
// the first successful one wins: NVIDIA, then AMD, else CPU-only. A missing
// or failing vendor tool is a valid "not present" signal, not an error.
//
// Collection is all-or-nothing: if the context is cancelled mid-probe the
// error is returned and no partial facts escape.
func (c *Collector) Collect(ctx context.Context) (HardwareFacts, error) {
	facts := HardwareFacts{
		Platform:    c.detectPlatform(),
		Accelerator: AcceleratorNone,
	}

	if nv := c.probeNvidia(ctx); nv != nil {
		facts.Accelerator = AcceleratorNvidia
		facts.Nvidia = nv
	} else if amd := c.probeAmd(ctx); amd != nil {
		facts.Accelerator = AcceleratorAmd
		facts.Amd = amd
		facts.Groups = c.probeGroups()
	}

	// Discard everything if the run was interrupted; a plan derived from
	// partial facts is worse than no plan.
	if err := ctx.Err(); err != nil {
		return HardwareFacts{}, err
	}

	return facts, nil
}

// detectPlatform classifies native vs hosted-VM from the kernel release
// string. WSL kernels carry a "microsoft" marker in the release field, e.g.
// "5.15.167.4-microsoft-standard-WSL2".
func (c *Collector) detectPlatform() Platform {
	if strings.Contains(strings.ToLower(c.kernelRelease()), "microsoft") {
		return PlatformHostedVM
	}
	return PlatformNative
}

// probeGroups checks the current user's membership in the device groups ROCm
// requires. Lookup failure reports both groups missing - advisory only.
func (c *Collector) probeGroups() *GroupMembership {
	names, err := c.groupNames()
	if err != nil {
		return &GroupMembership{}
	}

	gm := &GroupMembership{}
	for _, name := range names {
		switch name {
		case "render":
			gm.HasRenderGroup = true
		case "video":
			gm.HasVideoGroup = true
		}
	}
	return gm
}

// currentUserGroups returns the group names of the current user.
func currentUserGroups() ([]string, error) {
	u, err := user.Current()
	if err != nil {
		return nil, err
	}

	ids, err := u.GroupIds()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		g, err := user.LookupGroupId(id)
		if err != nil {
			// Stale gid with no passwd entry; skip it.
			continue
		}
		names = append(names, g.Name)
	}
	return names, nil
}
