package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/homecare-ojt/ltcsim/internal/domain"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case SimulatedMsg:
		m.result = msg.Result
		m.recs = msg.Recommendations
		m.err = nil
		return m, nil

	case SavedMsg:
		m.status = fmt.Sprintf("saved simulation %s", msg.ID)
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Switch):
		if m.pane == PaneCatalog {
			m.pane = PaneWorksheet
		} else {
			m.pane = PaneCatalog
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.move(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.move(1)
		return m, nil

	case key.Matches(msg, m.keys.Grade):
		m.worksheet.CareGradeID = m.nextGrade(m.worksheet.CareGradeID)
		return m, simulateCmd(m.engine, m.worksheet)

	case key.Matches(msg, m.keys.Save):
		if m.sims == nil {
			m.status = "no store configured"
			return m, nil
		}
		if m.result == nil {
			return m, nil
		}
		return m, saveCmd(m.sims, m.worksheet, m.result)
	}

	if m.pane == PaneCatalog {
		if key.Matches(msg, m.keys.Add) {
			cmd := m.addSelectedService()
			return m, cmd
		}
		return m, nil
	}
	return m.handleLineKey(msg)
}

func (m Model) handleLineKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.lineIndex < 0 || m.lineIndex >= len(m.worksheet.Lines) {
		return m, nil
	}
	m.worksheet = m.worksheet.Clone()
	line := &m.worksheet.Lines[m.lineIndex]

	switch {
	case key.Matches(msg, m.keys.Inc):
		line.Quantity++
	case key.Matches(msg, m.keys.Dec):
		if line.Quantity <= 1 {
			m.status = "quantity cannot go below 1"
			return m, nil
		}
		line.Quantity--
	case key.Matches(msg, m.keys.Day):
		line.DayType = nextDayType(m.lineDay(*line))
	case key.Matches(msg, m.keys.Tier):
		line.BurdenTierID = m.nextTier(m.lineTier(*line))
	case key.Matches(msg, m.keys.Remove):
		m.worksheet.RemoveLine(m.lineIndex)
		if m.lineIndex >= len(m.worksheet.Lines) && m.lineIndex > 0 {
			m.lineIndex--
		}
	default:
		return m, nil
	}
	m.status = ""
	return m, simulateCmd(m.engine, m.worksheet)
}

func (m *Model) move(delta int) {
	if m.pane == PaneCatalog {
		m.catalogIndex = clamp(m.catalogIndex+delta, 0, len(m.engine.Tariff.Services)-1)
		return
	}
	m.lineIndex = clamp(m.lineIndex+delta, 0, len(m.worksheet.Lines)-1)
}

func (m *Model) addSelectedService() tea.Cmd {
	services := m.engine.Tariff.Services
	if m.catalogIndex < 0 || m.catalogIndex >= len(services) {
		return nil
	}
	svc := services[m.catalogIndex]
	line, err := domain.NewLineItem(svc.ID, 1, m.worksheet.DefaultBurden, m.worksheet.DefaultDayType, "")
	if err != nil {
		m.err = err
		return nil
	}
	m.worksheet = m.worksheet.Clone()
	m.worksheet.AddLine(line)
	m.lineIndex = len(m.worksheet.Lines) - 1
	m.status = fmt.Sprintf("added %s", svc.Name)
	return simulateCmd(m.engine, m.worksheet)
}

func (m Model) lineDay(l domain.LineItem) domain.DayType {
	if l.DayType == "" {
		return m.worksheet.DefaultDayType
	}
	return domain.NormalizeDayType(string(l.DayType))
}

func (m Model) lineTier(l domain.LineItem) string {
	if l.BurdenTierID == "" {
		return m.worksheet.DefaultBurden
	}
	return l.BurdenTierID
}

func nextDayType(current domain.DayType) domain.DayType {
	for i, dt := range domain.DayTypes {
		if dt == current {
			return domain.DayTypes[(i+1)%len(domain.DayTypes)]
		}
	}
	return domain.DayTypes[0]
}

func (m Model) nextTier(current string) string {
	tiers := m.engine.Tariff.BurdenTiers
	if len(tiers) == 0 {
		return current
	}
	for i, t := range tiers {
		if t.ID == current {
			return tiers[(i+1)%len(tiers)].ID
		}
	}
	return tiers[0].ID
}

func (m Model) nextGrade(current string) string {
	grades := m.engine.Tariff.CareGrades
	if len(grades) == 0 {
		return current
	}
	for i, g := range grades {
		if g.ID == current {
			return grades[(i+1)%len(grades)].ID
		}
	}
	return grades[0].ID
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
