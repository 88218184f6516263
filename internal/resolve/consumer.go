// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package resolve

import "context"

// Consumer is the boundary to whatever installs a resolved plan. rigprep
// itself never installs anything; the consumer receives the finished plan
// and owns everything from there (venv creation, pip/uv invocation).
type Consumer interface {
	// Install consumes a finalized plan. The plan's Selected option is
	// guaranteed non-nil and RequiresUserChoice false.
	Install(ctx context.Context, plan *BuildPlan) error
}
