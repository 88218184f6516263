// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history_cmd.go - History command implementation for rigprep.
//
// Command: history [subcommand]
// Short:   Review past resolutions
// Aliases: log
//
// Subcommands:
//   (default), list     List recent resolutions
//   show <id>           Show one entry (ID prefix accepted)
//   clear --confirm     Delete all entries
//
// Examples:
//   rigprep history                  List recent resolutions
//   rigprep history --limit 5        Show the last 5
//   rigprep history show 3f2a        Show entry by ID prefix
//   rigprep history clear --confirm  Wipe the history database
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/rigprep/internal/history"
	"github.com/jeranaias/rigprep/internal/util"
)

// RunHistory executes the history command and returns the process exit code.
func RunHistory(args Args) int {
	cfg, err := loadConfig(args)
	if err != nil {
		return historyError(args, err)
	}

	path, err := cfg.HistoryPath()
	if err != nil {
		return historyError(args, err)
	}

	store, err := history.Open(path)
	if err != nil {
		return historyError(args, fmt.Errorf("cannot open history: %w", err))
	}
	defer store.Close()

	ctx := context.Background()

	switch args.Subcommand {
	case "", "list", "ls":
		return historyList(ctx, store, args)

	case "show":
		if len(args.Raw) == 0 {
			return historyError(args, errors.New("usage: rigprep history show <id>"))
		}
		return historyShow(ctx, store, args, args.Raw[0])

	case "clear":
		if !args.Confirm {
			fmt.Println(WarningStyle.Render("This deletes all recorded resolutions."))
			fmt.Println("Re-run with --confirm to proceed.")
			return 1
		}
		if err := store.Clear(ctx); err != nil {
			return historyError(args, err)
		}
		if !args.Quiet {
			fmt.Println(SuccessStyle.Render("History cleared."))
		}
		return 0

	default:
		return historyError(args, fmt.Errorf("unknown history subcommand %q", args.Subcommand))
	}
}

// historyList prints recent entries in a table.
func historyList(ctx context.Context, store *history.Store, args Args) int {
	entries, err := store.List(ctx, args.Limit)
	if err != nil {
		return historyError(args, err)
	}

	if args.JSON {
		NewJSONResponse("history", entries).Print()
		return 0
	}

	if len(entries) == 0 {
		fmt.Println(DimStyle.Render("No resolutions recorded yet."))
		return 0
	}

	fmt.Println(TitleStyle.Render("Resolution History"))
	fmt.Printf("%s %s %s %s\n",
		pad("ID", 10), pad("When", 17), pad("Hardware", 26), "Build")
	fmt.Println(RenderSeparator(72))

	for _, e := range entries {
		hw := e.Accelerator
		if e.DeviceName != "" {
			hw = util.TruncateRunes(e.DeviceName, 26)
		}
		fmt.Printf("%s %s %s %s\n",
			pad(shortID(e.ID), 10),
			pad(e.CreatedAt.Local().Format("2006-01-02 15:04"), 17),
			pad(hw, 26),
			HighlightStyle.Render(e.OptionLabel))
	}
	return 0
}

// historyShow prints one entry in full.
func historyShow(ctx context.Context, store *history.Store, args Args, id string) int {
	entry, err := store.Get(ctx, id)
	if errors.Is(err, history.ErrEntryNotFound) {
		return historyError(args, fmt.Errorf("no entry matches %q", id))
	}
	if err != nil {
		return historyError(args, err)
	}

	if args.JSON {
		NewJSONResponse("history", entry).Print()
		return 0
	}

	pkgs := make([]string, len(entry.Packages))
	for i, p := range entry.Packages {
		pkgs[i] = p.String()
	}

	fmt.Println(TitleStyle.Render("Resolution " + shortID(entry.ID)))
	fmt.Println(RenderLabel("When:") + ValueStyle.Render(entry.CreatedAt.Local().Format("2006-01-02 15:04:05")))
	fmt.Println(RenderLabel("Platform:") + ValueStyle.Render(entry.Platform))
	fmt.Println(RenderLabel("Accelerator:") + ValueStyle.Render(entry.Accelerator))
	if entry.DeviceName != "" {
		fmt.Println(RenderLabel("Device:") + ValueStyle.Render(entry.DeviceName))
	}
	fmt.Println(RenderLabel("Build:") + HighlightStyle.Render(entry.OptionLabel) + DimStyle.Render(" ["+entry.Tier+"]"))
	fmt.Println(RenderLabel("Packages:") + ValueStyle.Render(strings.Join(pkgs, " ")))
	if entry.SourceIndex != "" {
		fmt.Println(RenderLabel("Index:") + ValueStyle.Render(entry.SourceIndex))
	}
	if entry.Warnings > 0 {
		fmt.Println(RenderLabel("Warnings:") + WarningStyle.Render(fmt.Sprintf("%d at resolution time", entry.Warnings)))
	}
	return 0
}

// shortID returns the first UUID segment, enough to disambiguate locally.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// pad pads a string to width with spaces, rune-aware.
func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(runes))
}

func historyError(args Args, err error) int {
	if args.JSON {
		NewJSONErrorResponse("history", err).Print()
	} else {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("error: ")+err.Error())
	}
	return 1
}
