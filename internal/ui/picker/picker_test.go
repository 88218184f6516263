// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package picker

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/rigprep/internal/resolve"
)

func testCandidates() []resolve.BuildOption {
	return []resolve.BuildOption{
		{
			Label:   "cuda-12.8-stable",
			Summary: "Stable CUDA 12.8 wheels",
			Tier:    resolve.TierStable,
			Packages: []resolve.Package{
				{Name: "torch", Constraint: ">=2.7,<3"},
			},
		},
		{
			Label:   "cuda-12.8-nightly",
			Summary: "Nightly CUDA 12.8 wheels",
			Tier:    resolve.TierExperimental,
			Packages: []resolve.Package{
				{Name: "torch", Constraint: ""},
			},
		},
		{
			Label:   "cuda-12.1-fallback",
			Summary: "Conservative fallback",
			Tier:    resolve.TierStable,
			Packages: []resolve.Package{
				{Name: "torch", Constraint: ">=2.4,<3"},
			},
		},
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func update(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update returned unexpected model type %T", next)
		}
	}
	return m
}

func TestSelectFirstCandidate(t *testing.T) {
	m := New("Pick a build", nil, testCandidates())
	m = update(t, m, "enter")

	if m.Aborted() {
		t.Fatal("unexpectedly aborted")
	}
	if m.Choice() != 1 {
		t.Errorf("choice = %d, want 1", m.Choice())
	}
}

func TestNavigateAndSelect(t *testing.T) {
	m := New("Pick a build", nil, testCandidates())
	m = update(t, m, "down", "down", "enter")

	if m.Choice() != 3 {
		t.Errorf("choice = %d, want 3", m.Choice())
	}
}

func TestNavigationWraps(t *testing.T) {
	m := New("Pick a build", nil, testCandidates())

	// Up from the first entry wraps to the last
	m = update(t, m, "up", "enter")
	if m.Choice() != 3 {
		t.Errorf("choice after wrap-up = %d, want 3", m.Choice())
	}

	// Down past the last entry wraps to the first
	m = New("Pick a build", nil, testCandidates())
	m = update(t, m, "down", "down", "down", "enter")
	if m.Choice() != 1 {
		t.Errorf("choice after wrap-down = %d, want 1", m.Choice())
	}
}

func TestVimKeys(t *testing.T) {
	m := New("Pick a build", nil, testCandidates())
	m = update(t, m, "j", "enter")

	if m.Choice() != 2 {
		t.Errorf("choice = %d, want 2", m.Choice())
	}
}

func TestAbort(t *testing.T) {
	m := New("Pick a build", nil, testCandidates())
	m = update(t, m, "esc")

	if !m.Aborted() {
		t.Error("expected aborted state")
	}
	if m.Choice() != 0 {
		t.Errorf("choice = %d, want 0", m.Choice())
	}
}

func TestView_ShowsCandidatesAndWarnings(t *testing.T) {
	warnings := []string{"standard ROCm builds are incompatible with this hardware"}
	m := New("Pick a build", warnings, testCandidates())
	view := m.View()

	for _, want := range []string{"Pick a build", "cuda-12.8-stable", "cuda-12.8-nightly", "torch>=2.7,<3", "incompatible"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
