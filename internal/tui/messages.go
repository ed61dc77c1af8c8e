package tui

import "github.com/homecare-ojt/ltcsim/internal/domain"

// SimulatedMsg carries a fresh computation of the worksheet
type SimulatedMsg struct {
	Result          *domain.SimulationResult
	Recommendations []domain.Recommendation
}

// SavedMsg reports a stored simulation
type SavedMsg struct {
	ID string
}

// ErrorMsg reports a failed command
type ErrorMsg struct {
	Err error
}
