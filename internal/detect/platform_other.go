// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !linux

package detect

// kernelRelease is unavailable off Linux; the hosted-VM distinction only
// exists for WSL-style kernels anyway.
func kernelRelease() string {
	return ""
}
