package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	json "github.com/goccy/go-json"
	"github.com/homecare-ojt/ltcsim/internal/domain"
)

// ErrEmptyBackup is returned when a backup carries neither progress nor settings
var ErrEmptyBackup = errors.New("backup holds no progress or settings")

// BackupFileName names an export taken at now
func BackupFileName(now time.Time) string {
	return "ojt-backup-" + now.Format("2006-01-02") + ".json"
}

// ExportProgress snapshots the stored progress and its settings
func ExportProgress(ctx context.Context, ps ProgressStore, now time.Time) (*domain.ProgressBackup, error) {
	state, err := ps.Load(ctx)
	if err != nil {
		return nil, err
	}
	settings := state.Settings
	return &domain.ProgressBackup{
		Progress:  state,
		Settings:  &settings,
		Timestamp: now.UTC(),
	}, nil
}

// ImportProgress restores a backup. Progress replaces the stored document
// but keeps the current user id; settings, when present, win over the ones
// inside the imported progress.
func ImportProgress(ctx context.Context, ps ProgressStore, b *domain.ProgressBackup) (*domain.ProgressState, error) {
	if b == nil || (b.Progress == nil && b.Settings == nil) {
		return nil, ErrEmptyBackup
	}
	current, err := ps.Load(ctx)
	if err != nil {
		return nil, err
	}

	next := current
	if b.Progress != nil {
		next = b.Progress
		next.UserID = current.UserID
		next.EnsureMaps()
	}
	if b.Settings != nil {
		next.Settings = *b.Settings
	}
	if err := ps.Save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// ResetProgress replaces the stored progress with a fresh state. Saved
// simulations are left alone.
func ResetProgress(ctx context.Context, ps ProgressStore) error {
	current, err := ps.Load(ctx)
	if err != nil {
		return err
	}
	return ps.Save(ctx, freshState(current.UserID))
}

// WriteBackup encodes a backup as indented JSON
func WriteBackup(w io.Writer, b *domain.ProgressBackup) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

// ReadBackup decodes a backup written by WriteBackup
func ReadBackup(r io.Reader) (*domain.ProgressBackup, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}
	var b domain.ProgressBackup
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("invalid backup file: %w", err)
	}
	return &b, nil
}
