// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package picker provides an interactive terminal picker for choosing
// between candidate build options.
package picker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rigprep/internal/resolve"
)

// ErrAborted is returned when the user quits the picker without choosing.
var ErrAborted = errors.New("selection aborted")

// =============================================================================
// STYLES
// =============================================================================

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")) // Cyan

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // Yellow/Orange

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	tierStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	packagesStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242")).
			PaddingLeft(4)

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("57")). // Purple
			Foreground(lipgloss.Color("255"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242")).
			MarginTop(1)
)

// =============================================================================
// KEY MAP
// =============================================================================

// KeyMap defines keyboard bindings for the picker.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default picker key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "next"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "select"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "q", "ctrl+c"),
			key.WithHelp("Esc/q", "abort"),
		),
	}
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the bubbletea model for the candidate picker.
type Model struct {
	title      string
	warnings   []string
	candidates []resolve.BuildOption
	keys       KeyMap

	cursor  int
	choice  int // 1-based; 0 until a selection is made
	aborted bool
	width   int
}

// New creates a picker over the given candidates.
func New(title string, warnings []string, candidates []resolve.BuildOption) Model {
	return Model{
		title:      title,
		warnings:   warnings,
		candidates: candidates,
		keys:       DefaultKeyMap(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(m.candidates) - 1
			}

		case key.Matches(msg, m.keys.Down):
			m.cursor++
			if m.cursor >= len(m.candidates) {
				m.cursor = 0
			}

		case key.Matches(msg, m.keys.Select):
			m.choice = m.cursor + 1
			return m, tea.Quit

		case key.Matches(msg, m.keys.Quit):
			m.aborted = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	for _, w := range m.warnings {
		b.WriteString(warningStyle.Render("! " + w))
		b.WriteString("\n")
	}
	if len(m.warnings) > 0 {
		b.WriteString("\n")
	}

	for i, opt := range m.candidates {
		b.WriteString(m.renderCandidate(i, opt))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("up/down navigate | Enter select | Esc abort"))
	b.WriteString("\n")

	return b.String()
}

// renderCandidate renders one candidate row with its package detail line.
func (m Model) renderCandidate(i int, opt resolve.BuildOption) string {
	indicator := "  "
	if i == m.cursor {
		indicator = "> "
	}

	header := fmt.Sprintf("%s%d. %s %s",
		indicator, i+1,
		labelStyle.Render(opt.Label),
		tierStyle.Render("["+opt.Tier.String()+"]"))
	if i == m.cursor {
		header = selectedStyle.Render(fmt.Sprintf("%s%d. %s [%s]", indicator, i+1, opt.Label, opt.Tier))
	}

	pkgs := make([]string, len(opt.Packages))
	for j, p := range opt.Packages {
		pkgs[j] = p.String()
	}

	detail := summaryStyle.Render("    " + opt.Summary)
	pkgLine := packagesStyle.Render(strings.Join(pkgs, " "))

	return header + "\n" + detail + "\n" + pkgLine
}

// Choice returns the 1-based selection, or 0 if none was made.
func (m Model) Choice() int {
	return m.choice
}

// Aborted returns true if the user quit without selecting.
func (m Model) Aborted() bool {
	return m.aborted
}

// =============================================================================
// RUN HELPER
// =============================================================================

// Run shows the picker and blocks until the user selects a candidate or
// aborts. Returns the 1-based choice index.
func Run(title string, warnings []string, candidates []resolve.BuildOption) (int, error) {
	p := tea.NewProgram(New(title, warnings, candidates))
	final, err := p.Run()
	if err != nil {
		return 0, fmt.Errorf("picker failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok || m.Aborted() || m.Choice() == 0 {
		return 0, ErrAborted
	}
	return m.Choice(), nil
}
