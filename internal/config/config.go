// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/rigprep/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete rigprep configuration.
type Config struct {
	// NonInteractive selects the lowest-risk build without prompting when
	// several are viable. Explicit flag per the resolver contract; it is
	// never inferred from the absence of a TTY.
	NonInteractive bool `toml:"non_interactive"`

	// ProbeTimeoutSecs bounds each hardware probe (nvidia-smi, rocminfo).
	// Valid range 1-30; out-of-range values are clamped.
	ProbeTimeoutSecs int `toml:"probe_timeout_secs"`

	// ForceAccelerator overrides detection for debugging: "", "nvidia",
	// "amd", "none".
	ForceAccelerator string `toml:"force_accelerator"`

	// History configures the resolution history store.
	History HistoryConfig `toml:"history"`

	// UI configures console output.
	UI UIConfig `toml:"ui"`
}

// HistoryConfig configures the resolution history store.
type HistoryConfig struct {
	// Enabled records completed resolutions when true.
	Enabled bool `toml:"enabled"`
	// Path to the SQLite database (empty = ~/.rigprep/history.db).
	Path string `toml:"path"`
}

// UIConfig configures console output behavior.
type UIConfig struct {
	// Color is "auto", "always", or "never".
	Color string `toml:"color"`
	// JSON emits machine-readable output by default.
	JSON bool `toml:"json"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	minProbeTimeoutSecs = 1
	maxProbeTimeoutSecs = 30
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		NonInteractive:   false,
		ProbeTimeoutSecs: 4,
		ForceAccelerator: "",
		History: HistoryConfig{
			Enabled: true,
		},
		UI: UIConfig{
			Color: "auto",
		},
	}
}

// ConfigDir returns the rigprep configuration directory (~/.rigprep).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".rigprep"), nil
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads configuration from path, applies environment overrides, and
// validates the result. A missing file is not an error - defaults apply.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault loads configuration from the default location.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// applyEnvOverrides applies RIGPREP_* environment variables on top of the
// file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("RIGPREP_NON_INTERACTIVE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.NonInteractive = b
		}
	}
	if v := os.Getenv("RIGPREP_PROBE_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.ProbeTimeoutSecs = secs
		}
	}
	if v := os.Getenv("RIGPREP_FORCE_ACCELERATOR"); v != "" {
		c.ForceAccelerator = v
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks field values and clamps the probe timeout into its valid
// range rather than failing on it.
func (c *Config) Validate() error {
	if c.ProbeTimeoutSecs < minProbeTimeoutSecs {
		c.ProbeTimeoutSecs = minProbeTimeoutSecs
	}
	if c.ProbeTimeoutSecs > maxProbeTimeoutSecs {
		c.ProbeTimeoutSecs = maxProbeTimeoutSecs
	}

	switch c.ForceAccelerator {
	case "", "nvidia", "amd", "none":
	default:
		return fmt.Errorf("invalid force_accelerator %q (want nvidia, amd, or none)", c.ForceAccelerator)
	}

	switch c.UI.Color {
	case "auto", "always", "never":
	case "":
		c.UI.Color = "auto"
	default:
		return fmt.Errorf("invalid ui.color %q (want auto, always, or never)", c.UI.Color)
	}

	return nil
}

// ProbeTimeout returns the probe timeout as a duration.
func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutSecs) * time.Second
}

// HistoryPath returns the configured history database path, falling back to
// the default under the config directory.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to path atomically.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
