// Package components holds reusable TUI widgets
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// LimitBar shows how much of the monthly limit a worksheet uses
type LimitBar struct {
	Used  int64
	Limit int64
	Width int

	FillColor  lipgloss.Color
	OverColor  lipgloss.Color
	EmptyColor lipgloss.Color
}

// NewLimitBar creates a bar for used out of limit
func NewLimitBar(used, limit int64) *LimitBar {
	return &LimitBar{
		Used:       used,
		Limit:      limit,
		Width:      40,
		FillColor:  lipgloss.Color("#04B575"),
		OverColor:  lipgloss.Color("#FF5F87"),
		EmptyColor: lipgloss.Color("#3C3C3C"),
	}
}

// WithWidth sets the bar width
func (b *LimitBar) WithWidth(width int) *LimitBar {
	b.Width = width
	return b
}

// Percentage returns used as a percentage of the limit; 0 when no limit is set
func (b *LimitBar) Percentage() float64 {
	if b.Limit <= 0 {
		return 0
	}
	return float64(b.Used) / float64(b.Limit) * 100
}

// IsOver reports whether usage exceeds the limit
func (b *LimitBar) IsOver() bool {
	return b.Limit > 0 && b.Used > b.Limit
}

// Filled returns the number of filled cells, capped at Width
func (b *LimitBar) Filled() int {
	filled := int(float64(b.Width) * b.Percentage() / 100)
	if filled > b.Width {
		filled = b.Width
	}
	if filled < 0 {
		filled = 0
	}
	return filled
}

// Render returns the styled bar
func (b *LimitBar) Render() string {
	filled := b.Filled()
	empty := b.Width - filled

	color := b.FillColor
	if b.IsOver() {
		color = b.OverColor
	}
	barStyle := lipgloss.NewStyle().Foreground(color)
	emptyStyle := lipgloss.NewStyle().Foreground(b.EmptyColor)

	var sb strings.Builder
	sb.WriteString("[")
	if filled > 0 {
		sb.WriteString(barStyle.Render(strings.Repeat("█", filled)))
	}
	if empty > 0 {
		sb.WriteString(emptyStyle.Render(strings.Repeat("░", empty)))
	}
	sb.WriteString("]")
	sb.WriteString(fmt.Sprintf(" %.1f%%", b.Percentage()))
	return sb.String()
}
