// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history persists resolved build plans so users can review what
// rigprep recommended on a machine over time. Entries are stored in a local
// SQLite database, one row per resolution.
package history
