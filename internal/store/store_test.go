package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/homecare-ojt/ltcsim/internal/config"
	"github.com/homecare-ojt/ltcsim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// exerciseStore runs the behaviour every backend must share
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	state, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.Chapters, "nothing saved yet")
	assert.NotNil(t, state.QuizScores)
	assert.True(t, state.Settings.AutoSave)

	state.Chapters["ch0"] = domain.ChapterProgress{Completed: true, Progress: 100, LastAccessed: testTime}
	state.QuizScores["ch0"] = domain.QuizScore{Score: 4, MaxScore: 5, CompletedAt: testTime, WrongAnswers: []string{"ch0-q2"}}
	state.WrongAnswers = append(state.WrongAnswers, domain.WrongAnswer{ID: "wrong-ch0-q2", QuestionID: "ch0-q2", Timestamp: testTime})
	require.NoError(t, s.Save(ctx, state))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.Chapters["ch0"].Completed)
	assert.Equal(t, 4, loaded.QuizScores["ch0"].Score)
	assert.True(t, testTime.Equal(loaded.QuizScores["ch0"].CompletedAt))
	require.Len(t, loaded.WrongAnswers, 1)

	loaded.Chapters["ch1"] = domain.ChapterProgress{Progress: 50}
	require.NoError(t, s.Save(ctx, loaded))
	again, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, again.Chapters, 2, "save replaces the document")

	sims, err := s.ListSimulations(ctx)
	require.NoError(t, err)
	assert.Empty(t, sims)

	ws := domain.Worksheet{
		CustomerName: "홍길동",
		CareGradeID:  "grade3",
		Lines:        []domain.LineItem{{ServiceID: "visit-1", Quantity: 4, BurdenTierID: "normal"}},
	}
	older := NewSavedSimulation(ws, &domain.SimulationResult{Aggregate: domain.Aggregate{TotalCost: 36000, TotalUserBurden: 5400, TotalInsuranceCoverage: 30600}}, testTime)
	newer := NewSavedSimulation(ws, nil, testTime.Add(time.Hour))
	require.NoError(t, s.SaveSimulation(ctx, older))
	require.NoError(t, s.SaveSimulation(ctx, newer))

	sims, err = s.ListSimulations(ctx)
	require.NoError(t, err)
	require.Len(t, sims, 2)
	assert.Equal(t, newer.ID, sims[0].ID, "newest first")
	assert.Equal(t, older.ID, sims[1].ID)
	assert.Equal(t, domain.Won(36000), sims[1].TotalCost)
	assert.Equal(t, domain.Won(5400), sims[1].TotalUserBurden)
	assert.Equal(t, "visit-1", sims[1].Worksheet.Lines[0].ServiceID)
	assert.Equal(t, "홍길동", sims[1].CustomerName)
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "progress.json")
	s := NewFileStore(path, "user-1")
	defer s.Close()

	exerciseStore(t, s)
	assert.FileExists(t, path)
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	s := NewFileStore(path, "user-1")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := s.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "ltcsim.db"), "user-1")
	require.NoError(t, err)
	defer s.Close()

	exerciseStore(t, s)
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ltcsim.db")

	s, err := OpenSQLite(ctx, path, "user-1")
	require.NoError(t, err)
	state := domain.NewProgressState("user-1")
	state.Chapters["ch0"] = domain.ChapterProgress{Completed: true}
	require.NoError(t, s.Save(ctx, state))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(ctx, path, "user-1")
	require.NoError(t, err, "migrations are idempotent")
	defer s.Close()

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.Chapters["ch0"].Completed)

	other, err := OpenSQLite(ctx, path, "user-2")
	require.NoError(t, err)
	defer other.Close()
	fresh, err := other.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, fresh.Chapters, "progress is per user")
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStore(client, "user-1")
	defer s.Close()

	exerciseStore(t, s)
	assert.True(t, mr.Exists("ltcsim:progress:user-1"))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(ctx, &config.Settings{Store: config.StoreFile, StorePath: filepath.Join(dir, "p.json")})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = Open(ctx, &config.Settings{Store: config.StoreSQLite, StorePath: filepath.Join(dir, "p.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	s.Close()

	mr := miniredis.RunT(t)
	s, err = Open(ctx, &config.Settings{Store: config.StoreRedis, RedisAddr: mr.Addr()})
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, s)
	s.Close()

	_, err = Open(ctx, &config.Settings{Store: "etcd"})
	assert.Error(t, err)
}
