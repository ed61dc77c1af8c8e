package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/homecare-ojt/ltcsim/internal/domain"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const sqliteDialect = "sqlite3"

// SQLiteStore keeps progress as a JSON document row and saved simulations
// as one row each
type SQLiteStore struct {
	db     *sql.DB
	userID string
}

// OpenSQLite opens the database at path, applies pragmas and runs pending
// migrations
func OpenSQLite(ctx context.Context, path, userID string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// one connection keeps the single-writer model explicit
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `
		PRAGMA journal_mode = WAL;
		PRAGMA foreign_keys = ON;
		PRAGMA busy_timeout = 5000;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set sqlite pragmas: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	if err := migrateUp(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db, userID: userID}, nil
}

func migrateUp(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(sqliteDialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run goose up migrations: %w", err)
	}
	return nil
}

// Load returns the saved progress, or a fresh state when nothing is saved
func (s *SQLiteStore) Load(ctx context.Context) (*domain.ProgressState, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM progress WHERE user_id = ?`, s.user()).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return freshState(s.user()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}

	var state domain.ProgressState
	if err := json.Unmarshal([]byte(doc), &state); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	state.EnsureMaps()
	return &state, nil
}

// Save upserts the progress document
func (s *SQLiteStore) Save(ctx context.Context, state *domain.ProgressState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO progress (user_id, document, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		s.user(), string(data), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// SaveSimulation inserts a saved simulation
func (s *SQLiteStore) SaveSimulation(ctx context.Context, rec domain.SavedSimulation) error {
	ws, err := json.Marshal(rec.Worksheet)
	if err != nil {
		return fmt.Errorf("encode worksheet: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO simulations (id, customer_name, saved_at, worksheet, total_cost, total_user_burden, total_insurance_coverage)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CustomerName, rec.SavedAt.UTC().Format(time.RFC3339Nano), string(ws),
		int64(rec.TotalCost), int64(rec.TotalUserBurden), int64(rec.TotalInsuranceCoverage))
	if err != nil {
		return fmt.Errorf("save simulation %s: %w", rec.ID, err)
	}
	return nil
}

// ListSimulations returns saved simulations, newest first
func (s *SQLiteStore) ListSimulations(ctx context.Context) ([]domain.SavedSimulation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, customer_name, saved_at, worksheet, total_cost, total_user_burden, total_insurance_coverage
		FROM simulations ORDER BY saved_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list simulations: %w", err)
	}
	defer rows.Close()

	var out []domain.SavedSimulation
	for rows.Next() {
		var (
			rec              domain.SavedSimulation
			savedAt, ws      string
			total, user, ins int64
		)
		if err := rows.Scan(&rec.ID, &rec.CustomerName, &savedAt, &ws, &total, &user, &ins); err != nil {
			return nil, fmt.Errorf("scan simulation: %w", err)
		}
		if rec.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt); err != nil {
			return nil, fmt.Errorf("simulation %s: bad saved_at: %w", rec.ID, err)
		}
		if err := json.Unmarshal([]byte(ws), &rec.Worksheet); err != nil {
			return nil, fmt.Errorf("simulation %s: decode worksheet: %w", rec.ID, err)
		}
		rec.TotalCost = domain.Won(total)
		rec.TotalUserBurden = domain.Won(user)
		rec.TotalInsuranceCoverage = domain.Won(ins)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close releases the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) user() string {
	if s.userID == "" {
		return "local"
	}
	return s.userID
}
