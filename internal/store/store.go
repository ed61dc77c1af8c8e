// Package store persists learner progress and saved simulations. The engine
// never touches it; callers load state, run pure functions over it, and save.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/homecare-ojt/ltcsim/internal/config"
	"github.com/homecare-ojt/ltcsim/internal/domain"
)

// ProgressStore loads and saves one learner's progress document
type ProgressStore interface {
	Load(ctx context.Context) (*domain.ProgressState, error)
	Save(ctx context.Context, state *domain.ProgressState) error
}

// SimulationStore keeps simulations saved for a customer
type SimulationStore interface {
	SaveSimulation(ctx context.Context, rec domain.SavedSimulation) error
	ListSimulations(ctx context.Context) ([]domain.SavedSimulation, error)
}

// Store is a backend serving both concerns
type Store interface {
	ProgressStore
	SimulationStore
	Close() error
}

// Open selects a backend from the settings
func Open(ctx context.Context, s *config.Settings) (Store, error) {
	switch s.Store {
	case config.StoreFile, "":
		return NewFileStore(s.StorePath, s.UserID), nil
	case config.StoreSQLite:
		return OpenSQLite(ctx, s.StorePath, s.UserID)
	case config.StoreRedis:
		return OpenRedis(ctx, RedisOptions{
			Addr:     s.RedisAddr,
			Password: s.RedisPassword,
			DB:       s.RedisDB,
			UserID:   s.UserID,
		})
	}
	return nil, fmt.Errorf("unknown store backend %q", s.Store)
}

// NewSavedSimulation snapshots a worksheet and its totals under a fresh id
func NewSavedSimulation(ws domain.Worksheet, result *domain.SimulationResult, now time.Time) domain.SavedSimulation {
	rec := domain.SavedSimulation{
		ID:           uuid.NewString(),
		CustomerName: ws.CustomerName,
		SavedAt:      now.UTC(),
		Worksheet:    ws,
	}
	if result != nil {
		rec.TotalCost = result.Aggregate.TotalCost
		rec.TotalUserBurden = result.Aggregate.TotalUserBurden
		rec.TotalInsuranceCoverage = result.Aggregate.TotalInsuranceCoverage
	}
	return rec
}

func freshState(userID string) *domain.ProgressState {
	if userID == "" {
		userID = "local"
	}
	return domain.NewProgressState(userID)
}
