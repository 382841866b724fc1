// Package snapshot provides the SQLite persistence layer for editor content
// snapshots: serialized HTML plus the selection path and mode captured with
// it. Undo policy lives with the host; this is capture/restore storage only.
package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/SimonW97/roosterjs/dbopen"
	"github.com/SimonW97/roosterjs/idgen"
)

// Snapshot is one persisted content capture.
type Snapshot struct {
	ID            string `json:"id"`
	HTML          string `json:"html"`
	SelectionJSON string `json:"selection_json,omitempty"`
	IsDarkMode    bool   `json:"is_dark_mode"`
	CreatedAt     int64  `json:"created_at"`
}

// Store is the snapshot database handle.
type Store struct {
	DB    *sql.DB
	NewID idgen.Generator
}

// Open opens (or creates) the snapshot database at path, applies the
// production pragmas and the schema.
func Open(path string, opts ...dbopen.Option) (*Store, error) {
	allOpts := append([]dbopen.Option{
		dbopen.WithMkdirAll(),
		dbopen.WithSchema(Schema),
	}, opts...)

	db, err := dbopen.Open(path, allOpts...)
	if err != nil {
		return nil, err
	}
	return &Store{DB: db, NewID: idgen.Prefixed("snap_", idgen.Default)}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.DB.Close()
}

// Insert stores a snapshot, assigning ID and CreatedAt when unset.
func (s *Store) Insert(ctx context.Context, snap *Snapshot) error {
	if snap.ID == "" {
		newID := s.NewID
		if newID == nil {
			newID = idgen.Default
		}
		snap.ID = newID()
	}
	if snap.CreatedAt == 0 {
		snap.CreatedAt = time.Now().UnixMilli()
	}

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO snapshots (id, html, selection_json, is_dark_mode, created_at)
		VALUES (?,?,?,?,?)`,
		snap.ID, snap.HTML, snap.SelectionJSON, boolToInt(snap.IsDarkMode), snap.CreatedAt)
	return err
}

// Get retrieves a snapshot by ID. Returns nil, nil when absent.
func (s *Store) Get(ctx context.Context, id string) (*Snapshot, error) {
	snap := &Snapshot{}
	var dark int
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, html, selection_json, is_dark_mode, created_at
		FROM snapshots WHERE id = ?`, id).Scan(
		&snap.ID, &snap.HTML, &snap.SelectionJSON, &dark, &snap.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	snap.IsDarkMode = dark != 0
	return snap, nil
}

// List returns snapshots newest first, up to limit (default 20).
func (s *Store) List(ctx context.Context, limit int) ([]*Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, html, selection_json, is_dark_mode, created_at
		FROM snapshots ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Snapshot
	for rows.Next() {
		snap := &Snapshot{}
		var dark int
		if err := rows.Scan(&snap.ID, &snap.HTML, &snap.SelectionJSON, &dark, &snap.CreatedAt); err != nil {
			return nil, err
		}
		snap.IsDarkMode = dark != 0
		out = append(out, snap)
	}
	return out, rows.Err()
}

// Count returns the number of stored snapshots.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots`).Scan(&n)
	return n, err
}

// Prune deletes all but the newest keep snapshots and returns the number
// removed. keep <= 0 removes everything.
func (s *Store) Prune(ctx context.Context, keep int) (int, error) {
	removed := 0
	err := dbopen.RunTx(ctx, s.DB, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			DELETE FROM snapshots WHERE id NOT IN (
				SELECT id FROM snapshots ORDER BY created_at DESC, id DESC LIMIT ?
			)`, max(keep, 0))
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		removed = int(n)
		return nil
	})
	return removed, err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
