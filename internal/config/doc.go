// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for rigprep.
//
// Configuration is TOML with sensible defaults and environment variable
// overrides. The loaded Config is an explicit value passed into the collector
// and resolver call sites; nothing in the decision path reads ambient state.
//
// Configuration file location:
//   - ~/.rigprep/config.toml
//   - Built-in defaults when the file is absent
package config
