// Package tui is the interactive worksheet editor
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/homecare-ojt/ltcsim/internal/calculation"
	"github.com/homecare-ojt/ltcsim/internal/domain"
	"github.com/homecare-ojt/ltcsim/internal/store"
)

// Pane is the list that has keyboard focus
type Pane int

const (
	PaneCatalog Pane = iota
	PaneWorksheet
)

func (p Pane) String() string {
	switch p {
	case PaneCatalog:
		return "Catalog"
	case PaneWorksheet:
		return "Worksheet"
	default:
		return "Unknown"
	}
}

// Model is the editor state. The worksheet is edited in place and
// recomputed after every change.
type Model struct {
	engine *calculation.Engine
	sims   store.SimulationStore

	worksheet domain.Worksheet
	result    *domain.SimulationResult
	recs      []domain.Recommendation

	pane         Pane
	catalogIndex int
	lineIndex    int

	keys     keyMap
	help     help.Model
	showHelp bool

	width  int
	height int

	status string
	err    error
}

// NewModel creates an editor over ws. sims may be nil to disable saving.
func NewModel(engine *calculation.Engine, ws domain.Worksheet, sims store.SimulationStore) Model {
	if ws.DefaultDayType == "" {
		ws.DefaultDayType = domain.DayWeekday
	}
	if ws.DefaultBurden == "" && len(engine.Tariff.BurdenTiers) > 0 {
		ws.DefaultBurden = engine.Tariff.BurdenTiers[0].ID
	}
	if ws.CareGradeID == "" && len(engine.Tariff.CareGrades) > 0 {
		ws.CareGradeID = engine.Tariff.CareGrades[0].ID
	}
	return Model{
		engine:    engine,
		sims:      sims,
		worksheet: ws,
		keys:      defaultKeyMap(),
		help:      help.New(),
		width:     100,
		height:    30,
	}
}

// Worksheet returns the worksheet being edited
func (m Model) Worksheet() domain.Worksheet {
	return m.worksheet
}

// Result returns the latest computation, nil before the first one completes
func (m Model) Result() *domain.SimulationResult {
	return m.result
}

// Init starts the first computation
func (m Model) Init() tea.Cmd {
	return simulateCmd(m.engine, m.worksheet)
}

func simulateCmd(engine *calculation.Engine, ws domain.Worksheet) tea.Cmd {
	ws = ws.Clone()
	return func() tea.Msg {
		result, err := engine.Simulate(context.Background(), ws)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return SimulatedMsg{Result: result, Recommendations: engine.Recommend(ws, result)}
	}
}

func saveCmd(sims store.SimulationStore, ws domain.Worksheet, result *domain.SimulationResult) tea.Cmd {
	ws = ws.Clone()
	return func() tea.Msg {
		rec := store.NewSavedSimulation(ws, result, time.Now())
		if err := sims.SaveSimulation(context.Background(), rec); err != nil {
			return ErrorMsg{Err: err}
		}
		return SavedMsg{ID: rec.ID}
	}
}
