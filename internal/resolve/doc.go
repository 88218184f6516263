// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package resolve maps hardware facts to a concrete PyTorch build plan.
//
// Resolve is a pure function: no I/O, no prompting, no ambient state. When
// several builds are viable for the detected hardware it does not guess - it
// returns the candidate list with RequiresUserChoice set and expects a
// follow-up call carrying the chosen 1-based index. Non-interactive callers
// opt into the lowest-risk default explicitly via Options.NonInteractive.
//
// The decision table is ordered and first-match-wins within each accelerator
// branch. Expected hardware variation (missing tools, unparseable capability
// strings) never produces an error; only caller misuse (an out-of-range
// choice) does.
package resolve
