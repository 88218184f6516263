// Copyright (c) 2025-2026 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/rigprep/internal/detect"
	"github.com/jeranaias/rigprep/internal/resolve"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEntryNotFound is returned when no entry matches the given ID or prefix.
	ErrEntryNotFound = errors.New("history entry not found")
	// ErrAmbiguousPrefix is returned when an ID prefix matches more than one entry.
	ErrAmbiguousPrefix = errors.New("ambiguous entry prefix")
	// ErrNoSelection is returned when recording a plan with no selected option.
	ErrNoSelection = errors.New("plan has no selected option")
)

// =============================================================================
// ENTRY
// =============================================================================

// Entry is one recorded resolution: the hardware that was detected and the
// build option that was selected for it.
type Entry struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Hardware summary
	Accelerator string `json:"accelerator"`
	DeviceName  string `json:"device_name,omitempty"`
	Platform    string `json:"platform"`

	// Selected option
	OptionLabel string            `json:"option_label"`
	SourceIndex string            `json:"source_index,omitempty"`
	Tier        string            `json:"tier"`
	Packages    []resolve.Package `json:"packages"`

	// Warning count at resolution time
	Warnings int `json:"warnings,omitempty"`
}

// =============================================================================
// STORE
// =============================================================================

// Store persists resolution history in a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if necessary) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	s := &Store{db: db, path: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

// initSchema creates the database schema.
func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS entries (
			id           TEXT PRIMARY KEY,
			created_at   INTEGER NOT NULL,
			accelerator  TEXT NOT NULL,
			device_name  TEXT NOT NULL DEFAULT '',
			platform     TEXT NOT NULL,
			option_label TEXT NOT NULL,
			source_index TEXT NOT NULL DEFAULT '',
			tier         TEXT NOT NULL,
			packages     TEXT NOT NULL,
			warnings     INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_entries_created_at ON entries(created_at DESC);
	`)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// =============================================================================
// RECORD
// =============================================================================

// Record stores a finalized plan for the given facts and returns the new
// entry. The plan must have a selected option; recording an unresolved plan is
// a programming error surfaced as ErrNoSelection.
func (s *Store) Record(ctx context.Context, facts detect.HardwareFacts, plan *resolve.BuildPlan) (*Entry, error) {
	if plan == nil || plan.Selected == nil {
		return nil, ErrNoSelection
	}

	entry := &Entry{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		Accelerator: facts.Accelerator.String(),
		DeviceName:  deviceName(facts),
		Platform:    facts.Platform.String(),
		OptionLabel: plan.Selected.Label,
		SourceIndex: plan.Selected.SourceIndex,
		Tier:        plan.Selected.Tier.String(),
		Packages:    plan.Selected.Packages,
		Warnings:    len(plan.Warnings()),
	}

	pkgs, err := json.Marshal(entry.Packages)
	if err != nil {
		return nil, fmt.Errorf("failed to encode packages: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO entries (id, created_at, accelerator, device_name, platform,
			option_label, source_index, tier, packages, warnings)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.CreatedAt.Unix(), entry.Accelerator, entry.DeviceName,
		entry.Platform, entry.OptionLabel, entry.SourceIndex, entry.Tier,
		string(pkgs), entry.Warnings)
	if err != nil {
		return nil, fmt.Errorf("failed to record entry: %w", err)
	}

	return entry, nil
}

// deviceName extracts a display name from the facts.
func deviceName(facts detect.HardwareFacts) string {
	switch facts.Accelerator {
	case detect.AcceleratorNvidia:
		if facts.Nvidia != nil {
			return facts.Nvidia.Name
		}
	case detect.AcceleratorAmd:
		if facts.Amd != nil {
			return facts.Amd.Name
		}
	}
	return ""
}

// =============================================================================
// QUERY
// =============================================================================

// List returns the most recent entries, newest first. limit <= 0 means all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `
		SELECT id, created_at, accelerator, device_name, platform,
			option_label, source_index, tier, packages, warnings
		FROM entries ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// Get retrieves an entry by full ID or unique prefix.
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	if id == "" {
		return nil, ErrEntryNotFound
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, accelerator, device_name, platform,
			option_label, source_index, tier, packages, warnings
		FROM entries WHERE id LIKE ? || '%' LIMIT 2
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query entry: %w", err)
	}
	defer rows.Close()

	var matches []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, ErrEntryNotFound
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrAmbiguousPrefix, id)
	}
}

// Clear removes all recorded entries.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM entries")
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// scanEntry reads one row into an Entry.
func scanEntry(rows *sql.Rows) (*Entry, error) {
	var entry Entry
	var createdAt int64
	var pkgs string

	err := rows.Scan(&entry.ID, &createdAt, &entry.Accelerator, &entry.DeviceName,
		&entry.Platform, &entry.OptionLabel, &entry.SourceIndex, &entry.Tier,
		&pkgs, &entry.Warnings)
	if err != nil {
		return nil, fmt.Errorf("failed to scan entry: %w", err)
	}

	entry.CreatedAt = time.Unix(createdAt, 0).UTC()
	if err := json.Unmarshal([]byte(pkgs), &entry.Packages); err != nil {
		return nil, fmt.Errorf("failed to decode packages: %w", err)
	}

	return &entry, nil
}
