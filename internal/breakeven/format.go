package breakeven

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/homecare-ojt/ltcsim/internal/output"
)

// TableFormatter renders solver results as console text
type TableFormatter struct{}

// Format renders a single result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("SERVICE CAPACITY\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Service:             %s (%s)\n", result.ServiceName, result.ServiceID))
	sb.WriteString(fmt.Sprintf("Target:              %s\n", tf.targetLabel(result.Target)))
	sb.WriteString(fmt.Sprintf("Ceiling:             %s\n", output.FormatWon(result.Ceiling)))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Feasible)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("RESULT\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Units that fit:      %d\n", result.Quantity))
	sb.WriteString(fmt.Sprintf("Added cost:          %s\n", output.FormatWon(result.AddedCost())))
	sb.WriteString(fmt.Sprintf("Added user burden:   %s\n", output.FormatWon(result.AddedBurden())))
	sb.WriteString(fmt.Sprintf("Total cost:          %s\n", output.FormatWon(result.TotalCost)))
	sb.WriteString(fmt.Sprintf("User burden:         %s\n", output.FormatWon(result.UserBurden)))
	sb.WriteString(fmt.Sprintf("Headroom left:       %s\n", output.FormatWon(result.Headroom)))
	return sb.String()
}

// FormatMulti renders one row per service
func (tf *TableFormatter) FormatMulti(mr *MultiResult) string {
	var sb strings.Builder

	sb.WriteString("SERVICE CAPACITY\n")
	sb.WriteString(strings.Repeat("=", 78) + "\n")
	sb.WriteString(fmt.Sprintf("Target: %s\n\n", tf.targetLabel(mr.Target)))
	sb.WriteString(fmt.Sprintf("%-14s %-26s %6s %14s %14s\n", "Service", "Name", "Units", "Added Cost", "Headroom"))
	sb.WriteString(strings.Repeat("-", 78) + "\n")
	for _, r := range mr.Results {
		sb.WriteString(fmt.Sprintf("%-14s %-26s %6d %14s %14s\n",
			r.ServiceID, truncate(r.ServiceName, 26), r.Quantity,
			output.FormatWon(r.AddedCost()), output.FormatWon(r.Headroom)))
	}

	if len(mr.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		for _, rec := range mr.Recommendations {
			sb.WriteString("• " + rec + "\n")
		}
	}
	return sb.String()
}

func (tf *TableFormatter) formatStatus(feasible bool) string {
	if feasible {
		return "✓ fits"
	}
	return "✗ does not fit"
}

func (tf *TableFormatter) targetLabel(t Target) string {
	switch t {
	case TargetMonthlyLimit:
		return "monthly limit"
	case TargetCostBudget:
		return "total cost budget"
	case TargetBurdenBudget:
		return "user burden budget"
	}
	return string(t)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

// JSONFormatter formats solver results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format marshals a single result or a MultiResult
func (jf *JSONFormatter) Format(v any) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal capacity result: %w", err)
	}
	return string(data) + "\n", nil
}
