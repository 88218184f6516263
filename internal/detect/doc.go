// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package detect collects hardware facts for build resolution.
//
// The collector probes vendor tooling (nvidia-smi, rocminfo) with bounded
// timeouts and produces a normalized, immutable HardwareFacts record. Probe
// failures are never fatal: a missing or broken tool simply means that
// accelerator is not present. Fact collection is all-or-nothing - a cancelled
// run returns an error, never a partially-filled record.
//
// Supported accelerators:
//   - NVIDIA (via nvidia-smi)
//   - AMD (via rocminfo, with rocm-smi as a name fallback)
//   - None (CPU-only fallback)
package detect
