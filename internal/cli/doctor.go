// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// doctor.go - Doctor command implementation for rigprep.
//
// Command: doctor
// Short:   Run system health checks and diagnostics
// Aliases: diag, diagnose
//
// Health Checks Performed:
//   1. NVIDIA Tools      - nvidia-smi available on PATH
//   2. ROCm Tools        - rocminfo or rocm-smi available on PATH
//   3. GPU Detected      - Probes find a usable accelerator
//   4. Device Groups     - render/video membership (AMD only)
//   5. Config Valid      - Config file loads and validates
//   6. History Writable  - History database can be opened
//
// Exit Codes:
//   0   All checks passed (warnings allowed)
//   1   One or more checks failed
package cli

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rigprep/internal/config"
	"github.com/jeranaias/rigprep/internal/detect"
	"github.com/jeranaias/rigprep/internal/history"
)

// =============================================================================
// DOCTOR STYLES
// =============================================================================

var (
	checkPassStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)

	checkWarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	checkFailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	checkMsgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	fixStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true).
			PaddingLeft(2)

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// =============================================================================
// HEALTH CHECK TYPES
// =============================================================================

// CheckStatus represents the status of a health check.
type CheckStatus int

const (
	// CheckPass indicates the check passed successfully.
	CheckPass CheckStatus = iota
	// CheckWarn indicates a non-critical issue.
	CheckWarn
	// CheckFail indicates a critical issue.
	CheckFail
)

// String returns the string representation of the check status.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "Pass"
	case CheckWarn:
		return "Warn"
	case CheckFail:
		return "Fail"
	default:
		return "Unknown"
	}
}

// Symbol returns the styled status marker.
func (s CheckStatus) Symbol() string {
	switch s {
	case CheckPass:
		return checkPassStyle.Render("[OK]")
	case CheckWarn:
		return checkWarnStyle.Render("[!!]")
	case CheckFail:
		return checkFailStyle.Render("[FAIL]")
	default:
		return "?"
	}
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	Name    string      `json:"name"`
	Status  CheckStatus `json:"-"`
	State   string      `json:"status"`
	Message string      `json:"message"`
	Fix     string      `json:"fix,omitempty"`
}

// Render returns a formatted line for the health check.
func (c *HealthCheck) Render() string {
	result := fmt.Sprintf("%s %s", c.Status.Symbol(), checkMsgStyle.Render(c.Message))
	if c.Status != CheckPass && c.Fix != "" {
		result += "\n" + fixStyle.Render("-> "+c.Fix)
	}
	return result
}

// =============================================================================
// DOCTOR COMMAND
// =============================================================================

// RunDoctor executes the doctor command and returns the process exit code.
func RunDoctor(args Args) int {
	checks := runHealthChecks(args)

	failed := 0
	warned := 0
	for i := range checks {
		checks[i].State = checks[i].Status.String()
		switch checks[i].Status {
		case CheckFail:
			failed++
		case CheckWarn:
			warned++
		}
	}

	if args.JSON {
		NewJSONResponse("doctor", checks).Print()
	} else {
		fmt.Println(TitleStyle.Render("rigprep doctor"))
		for i := range checks {
			fmt.Println(checks[i].Render())
		}
		fmt.Println()
		fmt.Println(summaryStyle.Render(fmt.Sprintf(
			"%d checks, %d passed, %d warnings, %d failures",
			len(checks), len(checks)-failed-warned, warned, failed)))
	}

	if failed > 0 {
		return 1
	}
	return 0
}

// runHealthChecks runs every check in order.
func runHealthChecks(args Args) []HealthCheck {
	var checks []HealthCheck

	checks = append(checks, checkNvidiaTools())
	checks = append(checks, checkRocmTools())

	factsCheck, facts := checkGPUDetection()
	checks = append(checks, factsCheck)

	if facts != nil && facts.Accelerator == detect.AcceleratorAmd {
		checks = append(checks, checkDeviceGroups(facts))
	}

	cfgCheck, cfg := checkConfig(args)
	checks = append(checks, cfgCheck)

	if cfg != nil {
		checks = append(checks, checkHistory(cfg))
	}

	return checks
}

func checkNvidiaTools() HealthCheck {
	if _, err := exec.LookPath("nvidia-smi"); err != nil {
		return HealthCheck{
			Name:    "nvidia-tools",
			Status:  CheckWarn,
			Message: "nvidia-smi not found (fine unless this machine has an NVIDIA GPU)",
			Fix:     "install the NVIDIA driver package for your distribution",
		}
	}
	return HealthCheck{
		Name:    "nvidia-tools",
		Status:  CheckPass,
		Message: "nvidia-smi is available",
	}
}

func checkRocmTools() HealthCheck {
	if _, err := exec.LookPath("rocminfo"); err == nil {
		return HealthCheck{
			Name:    "rocm-tools",
			Status:  CheckPass,
			Message: "rocminfo is available",
		}
	}
	if _, err := exec.LookPath("rocm-smi"); err == nil {
		return HealthCheck{
			Name:    "rocm-tools",
			Status:  CheckPass,
			Message: "rocm-smi is available (rocminfo missing; ISA detection degraded)",
		}
	}
	return HealthCheck{
		Name:    "rocm-tools",
		Status:  CheckWarn,
		Message: "no ROCm tools found (fine unless this machine has an AMD GPU)",
		Fix:     "install the rocm package for your distribution",
	}
}

// checkGPUDetection runs the full probe pipeline and reports what it found.
func checkGPUDetection() (HealthCheck, *detect.HardwareFacts) {
	collector := detect.NewCollector()
	ctx, cancel := context.WithTimeout(context.Background(), detect.DefaultProbeTimeout*3)
	defer cancel()

	facts, err := collector.Collect(ctx)
	if err != nil {
		return HealthCheck{
			Name:    "gpu-detection",
			Status:  CheckFail,
			Message: "hardware detection failed: " + err.Error(),
		}, nil
	}

	msg := facts.String()
	status := CheckPass
	if facts.Accelerator == detect.AcceleratorNone {
		status = CheckWarn
		msg = "no GPU detected; CPU builds only"
	}
	if facts.Platform == detect.PlatformHostedVM {
		msg += " (WSL2: GPU passthrough depends on the Windows driver)"
	}

	return HealthCheck{
		Name:    "gpu-detection",
		Status:  status,
		Message: msg,
	}, &facts
}

func checkDeviceGroups(facts *detect.HardwareFacts) HealthCheck {
	if facts.Groups == nil || !facts.Groups.Complete() {
		return HealthCheck{
			Name:    "device-groups",
			Status:  CheckWarn,
			Message: "current user is missing render/video group membership",
			Fix:     "sudo usermod -aG render,video $USER (then log out and back in)",
		}
	}
	return HealthCheck{
		Name:    "device-groups",
		Status:  CheckPass,
		Message: "render and video group membership present",
	}
}

func checkConfig(args Args) (HealthCheck, *config.Config) {
	cfg, err := loadConfig(args)
	if err != nil {
		return HealthCheck{
			Name:    "config",
			Status:  CheckFail,
			Message: "config is invalid: " + err.Error(),
			Fix:     "fix or remove the config file and re-run",
		}, nil
	}
	return HealthCheck{
		Name:    "config",
		Status:  CheckPass,
		Message: "config loads and validates",
	}, cfg
}

func checkHistory(cfg *config.Config) HealthCheck {
	if !cfg.History.Enabled {
		return HealthCheck{
			Name:    "history",
			Status:  CheckPass,
			Message: "history disabled in config",
		}
	}

	path, err := cfg.HistoryPath()
	if err != nil {
		return HealthCheck{
			Name:    "history",
			Status:  CheckFail,
			Message: "cannot determine history path: " + err.Error(),
		}
	}

	store, err := history.Open(path)
	if err != nil {
		return HealthCheck{
			Name:    "history",
			Status:  CheckFail,
			Message: "history database not writable: " + err.Error(),
			Fix:     "check permissions on " + path,
		}
	}
	store.Close()

	return HealthCheck{
		Name:    "history",
		Status:  CheckPass,
		Message: "history database writable at " + path,
	}
}
