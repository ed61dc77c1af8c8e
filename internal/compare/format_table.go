package compare

import (
	"fmt"
	"strings"

	"github.com/homecare-ojt/ltcsim/internal/domain"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format renders the comparison as a fixed-width table
func (tf *TableFormatter) Format(set *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("CARE PLAN COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base: %s\n", set.BaseName))
	if set.WorksheetPath != "" {
		sb.WriteString(fmt.Sprintf("Worksheet: %s\n", set.WorksheetPath))
	}
	sb.WriteString("\n")

	nameWidth := 24
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Variant",
		numWidth, "Total",
		numWidth, "User Burden",
		numWidth, "Insurance",
		numWidth, "Limit"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if set.BaseResult != nil {
		sb.WriteString(tf.formatRow(set.BaseResult, nameWidth, numWidth, true))
	}
	if len(set.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range set.AlternativeResults {
			sb.WriteString(tf.formatRow(&set.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(set.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range set.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s: %s\n", alt.Name, alt.Description))
			sb.WriteString(fmt.Sprintf("  Total Cost:   %s\n", signedWon(alt.CostDiffFromBase)))
			sb.WriteString(fmt.Sprintf("  User Burden:  %s (%s%%)\n", signedWon(alt.BurdenDiffFromBase), alt.BurdenPctFromBase.StringFixed(1)))
			if alt.UnresolvedLines > 0 {
				sb.WriteString(fmt.Sprintf("  %d line(s) could not be priced\n", alt.UnresolvedLines))
			}
		}
		sb.WriteString("\n")
	}

	if len(set.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range set.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(r *VariantResult, nameWidth, numWidth int, isBase bool) string {
	name := r.Name
	if isBase {
		name += " (base)"
	}

	limit := "n/a"
	if r.LimitConfigured {
		limit = "within"
		if r.IsOverMonthlyLimit {
			limit = "OVER"
		}
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, r.TotalCost.Grouped(),
		numWidth, r.UserBurden.Grouped(),
		numWidth, r.InsuranceCoverage.Grouped(),
		numWidth, limit)
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

// FormatCompact creates a single-line summary of burden changes
func (tf *TableFormatter) FormatCompact(set *ComparisonSet) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Base: %s | ", set.BaseName))
	for i, alt := range set.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.BurdenDiffFromBase != 0 {
			change = signedWon(alt.BurdenDiffFromBase)
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.Name, change))
	}
	return sb.String()
}

func signedWon(w domain.Won) string {
	if w > 0 {
		return "+" + w.String()
	}
	return w.String()
}
