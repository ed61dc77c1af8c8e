package store

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/homecare-ojt/ltcsim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededFileStore(t *testing.T, userID string) *FileStore {
	t.Helper()
	s := NewFileStore(filepath.Join(t.TempDir(), "progress.json"), userID)
	state, err := s.Load(context.Background())
	require.NoError(t, err)
	state.Chapters["ch0"] = domain.ChapterProgress{Completed: true, Progress: 100, LastAccessed: testTime}
	state.QuizScores["ch0"] = domain.QuizScore{Score: 5, MaxScore: 5, CompletedAt: testTime}
	state.Settings.DarkMode = true
	require.NoError(t, s.Save(context.Background(), state))
	return s
}

func TestBackupFileName(t *testing.T) {
	assert.Equal(t, "ojt-backup-2025-03-14.json", BackupFileName(testTime))
}

func TestExportImport_RoundTripAcrossUsers(t *testing.T) {
	ctx := context.Background()
	src := seededFileStore(t, "user-1")

	b, err := ExportProgress(ctx, src, testTime)
	require.NoError(t, err)
	require.NotNil(t, b.Settings)
	assert.True(t, b.Settings.DarkMode)
	assert.True(t, testTime.Equal(b.Timestamp))

	var buf bytes.Buffer
	require.NoError(t, WriteBackup(&buf, b))
	assert.Contains(t, buf.String(), `"timestamp": "2025-03-14T09:30:00Z"`)

	read, err := ReadBackup(&buf)
	require.NoError(t, err)

	dst := NewFileStore(filepath.Join(t.TempDir(), "progress.json"), "user-2")
	restored, err := ImportProgress(ctx, dst, read)
	require.NoError(t, err)
	assert.Equal(t, "user-2", restored.UserID, "Should keep the importing user's id")

	loaded, err := dst.Load(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.Chapters["ch0"].Completed)
	assert.Equal(t, 5, loaded.QuizScores["ch0"].Score)
	assert.True(t, loaded.Settings.DarkMode)
}

func TestImportProgress_SettingsOnly(t *testing.T) {
	ctx := context.Background()
	s := seededFileStore(t, "user-1")

	settings := domain.UserSettings{DarkMode: false, Notifications: false, AutoSave: false}
	_, err := ImportProgress(ctx, s, &domain.ProgressBackup{Settings: &settings})
	require.NoError(t, err)

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings, loaded.Settings)
	assert.True(t, loaded.Chapters["ch0"].Completed, "Should leave progress untouched")
}

func TestImportProgress_SettingsOverrideEmbedded(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(filepath.Join(t.TempDir(), "progress.json"), "user-1")

	progress := domain.NewProgressState("someone")
	progress.Settings.DarkMode = true
	settings := domain.UserSettings{DarkMode: false, AutoSave: true}

	restored, err := ImportProgress(ctx, s, &domain.ProgressBackup{Progress: progress, Settings: &settings})
	require.NoError(t, err)
	assert.False(t, restored.Settings.DarkMode)
	assert.Equal(t, "user-1", restored.UserID)
}

func TestImportProgress_Rejects(t *testing.T) {
	ctx := context.Background()
	s := seededFileStore(t, "user-1")

	_, err := ImportProgress(ctx, s, &domain.ProgressBackup{Timestamp: time.Now()})
	assert.ErrorIs(t, err, ErrEmptyBackup)
	_, err = ImportProgress(ctx, s, nil)
	assert.ErrorIs(t, err, ErrEmptyBackup)

	_, err = ReadBackup(strings.NewReader("{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid backup file")

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.Chapters["ch0"].Completed, "Should not touch stored progress on a rejected import")
}

func TestResetProgress(t *testing.T) {
	ctx := context.Background()
	s := seededFileStore(t, "user-1")
	ws := domain.Worksheet{CustomerName: "홍길동", CareGradeID: "grade3"}
	require.NoError(t, s.SaveSimulation(ctx, NewSavedSimulation(ws, nil, testTime)))

	require.NoError(t, ResetProgress(ctx, s))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-1", loaded.UserID)
	assert.Empty(t, loaded.Chapters)
	assert.Empty(t, loaded.QuizScores)
	assert.Equal(t, domain.DefaultSettings(), loaded.Settings)

	sims, err := s.ListSimulations(ctx)
	require.NoError(t, err)
	assert.Len(t, sims, 1, "Should keep saved simulations")
}
