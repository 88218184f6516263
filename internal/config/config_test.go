// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.NonInteractive)
	assert.Equal(t, 4, cfg.ProbeTimeoutSecs)
	assert.Equal(t, 4*time.Second, cfg.ProbeTimeout())
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "auto", cfg.UI.Color)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
non_interactive = true
probe_timeout_secs = 10
force_accelerator = "amd"

[history]
enabled = false

[ui]
color = "never"
json = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.NonInteractive)
	assert.Equal(t, 10, cfg.ProbeTimeoutSecs)
	assert.Equal(t, "amd", cfg.ForceAccelerator)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "never", cfg.UI.Color)
	assert.True(t, cfg.UI.JSON)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("non_interactive = {"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RIGPREP_NON_INTERACTIVE", "true")
	t.Setenv("RIGPREP_PROBE_TIMEOUT", "7")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.True(t, cfg.NonInteractive)
	assert.Equal(t, 7, cfg.ProbeTimeoutSecs)
}

func TestValidate_ClampsProbeTimeout(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 1},
		{-5, 1},
		{31, 30},
		{999, 30},
		{15, 15},
	}

	for _, tc := range tests {
		cfg := DefaultConfig()
		cfg.ProbeTimeoutSecs = tc.in
		require.NoError(t, cfg.Validate())
		assert.Equal(t, tc.want, cfg.ProbeTimeoutSecs, "input %d", tc.in)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ForceAccelerator = "intel"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.UI.Color = "sometimes"
	assert.Error(t, cfg.Validate())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	cfg.NonInteractive = true
	cfg.ProbeTimeoutSecs = 9
	cfg.History.Enabled = false
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestHistoryPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.History.Path = "/tmp/custom.db"

	path, err := cfg.HistoryPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", path)

	cfg.History.Path = ""
	path, err = cfg.HistoryPath()
	require.NoError(t, err)
	assert.Contains(t, path, ".rigprep")
}
