package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/homecare-ojt/ltcsim/internal/domain"
	"github.com/homecare-ojt/ltcsim/internal/output"
	"github.com/homecare-ojt/ltcsim/internal/tui/components"
)

// View renders the editor
func (m Model) View() string {
	title := TitleStyle.Render("LTCSIM - 장기요양 비용 시뮬레이션")
	subtitle := SubtitleStyle.Render(m.headline())

	paneWidth := max(30, m.width/2-2)
	catalog := m.renderCatalog(paneWidth)
	lines := m.renderLines(paneWidth)
	body := lipgloss.JoinHorizontal(lipgloss.Top, catalog, " ", lines)

	sections := []string{title, subtitle, body, m.renderTotals()}
	if recs := m.renderRecommendations(); recs != "" {
		sections = append(sections, recs)
	}
	if m.err != nil {
		sections = append(sections, ErrorStyle.Render("Error: "+m.err.Error()))
	}
	if m.status != "" {
		sections = append(sections, StatusBarStyle.Render(m.status))
	}
	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) headline() string {
	parts := []string{}
	if m.worksheet.CustomerName != "" {
		parts = append(parts, m.worksheet.CustomerName)
	}
	grade := m.worksheet.CareGradeID
	if g, ok := m.engine.Tariff.Grade(grade); ok {
		grade = g.Name
	}
	parts = append(parts, grade, "focus: "+m.pane.String())
	return strings.Join(parts, " / ")
}

func (m Model) renderCatalog(width int) string {
	var sb strings.Builder
	sb.WriteString(CategoryStyle.Render("Catalog") + "\n")

	var lastCategory domain.Category
	for i, svc := range m.engine.Tariff.Services {
		if svc.Category != lastCategory {
			sb.WriteString(MetricLabelStyle.Render(output.CategoryLabel(svc.Category)) + "\n")
			lastCategory = svc.Category
		}
		text := fmt.Sprintf("%-22s %10s", truncate(svc.Name, 22), svc.UnitPrice.Grouped())
		if m.worksheet.HasService(svc.ID) {
			text += " ✓"
		}
		if m.pane == PaneCatalog && i == m.catalogIndex {
			sb.WriteString(SelectedItemStyle.Render("▶ "+text) + "\n")
		} else {
			sb.WriteString(UnselectedItemStyle.Render("  "+text) + "\n")
		}
	}

	style := PaneStyle
	if m.pane == PaneCatalog {
		style = ActivePaneStyle
	}
	return style.Width(width).Render(strings.TrimRight(sb.String(), "\n"))
}

func (m Model) renderLines(width int) string {
	var sb strings.Builder
	sb.WriteString(CategoryStyle.Render("Worksheet") + "\n")

	if len(m.worksheet.Lines) == 0 {
		sb.WriteString(SubtitleStyle.Render("No services yet. Select one in the catalog and press enter."))
	}
	for i, l := range m.worksheet.Lines {
		name := l.ServiceID
		if svc, ok := m.engine.Tariff.Service(l.ServiceID); ok {
			name = svc.Name
		}
		text := fmt.Sprintf("%-18s ×%-3d %-16s %-11s", truncate(name, 18), l.Quantity, m.lineDay(l), m.lineTier(l))
		if o := m.outcome(i); o != nil {
			if o.Resolved() {
				text += " " + o.Result.TotalCost.Grouped()
				if o.Result.IsOverLimit {
					text += WarningStyle.Render(" over")
				}
			} else {
				text += ErrorStyle.Render(" ! " + o.Error)
			}
		}
		if m.pane == PaneWorksheet && i == m.lineIndex {
			sb.WriteString(SelectedItemStyle.Render("▶ "+text) + "\n")
		} else {
			sb.WriteString(UnselectedItemStyle.Render("  "+text) + "\n")
		}
	}

	style := PaneStyle
	if m.pane == PaneWorksheet {
		style = ActivePaneStyle
	}
	return style.Width(width).Render(strings.TrimRight(sb.String(), "\n"))
}

func (m Model) outcome(i int) *domain.LineOutcome {
	if m.result == nil || i >= len(m.result.Lines) {
		return nil
	}
	return &m.result.Lines[i]
}

func (m Model) renderTotals() string {
	if m.result == nil {
		return SubtitleStyle.Render("Calculating...")
	}
	agg := m.result.Aggregate
	metric := func(label string, v domain.Won) string {
		return MetricLabelStyle.Render(label+": ") + MetricValueStyle.Render(output.FormatWon(v))
	}
	row := strings.Join([]string{
		metric("Total", agg.TotalCost),
		metric("User", agg.TotalUserBurden),
		metric("Insurance", agg.TotalInsuranceCoverage),
	}, "   ")

	if !agg.LimitConfigured {
		return row + "\n" + WarningStyle.Render("No monthly limit configured for "+agg.CareGradeID)
	}
	bar := components.NewLimitBar(int64(agg.TotalCost), int64(agg.MonthlyLimit)).WithWidth(40).Render()
	status := WithinLimitStyle.Render("remaining " + output.FormatWon(agg.RemainingLimit))
	if agg.IsOverMonthlyLimit {
		status = OverLimitStyle.Render("OVER LIMIT by " + output.FormatPercent(agg.OverLimitPercent))
	}
	return row + "\n" + MetricLabelStyle.Render("Limit "+output.FormatWon(agg.MonthlyLimit)+" ") + bar + " " + status
}

func (m Model) renderRecommendations() string {
	if len(m.recs) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(CategoryStyle.Render("Recommendations"))
	for _, r := range m.recs {
		sb.WriteString("\n• " + r.Title + ": " + output.DescribeRecommendation(r))
	}
	return PaneStyle.Render(sb.String())
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
