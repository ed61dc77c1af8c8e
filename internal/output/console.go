package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/homecare-ojt/ltcsim/internal/domain"
)

// ConsoleFormatter renders the plain-text worksheet report
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("report has no simulation result")
	}
	var buf bytes.Buffer
	rule := strings.Repeat("=", 72)

	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, "LONG-TERM CARE FEE SIMULATION")
	fmt.Fprintln(&buf, rule)
	if report.CustomerName != "" {
		fmt.Fprintf(&buf, "Customer:     %s\n", report.CustomerName)
	}
	fmt.Fprintf(&buf, "Care grade:   %s\n", report.Worksheet.CareGradeID)
	if report.TariffYear > 0 {
		fmt.Fprintf(&buf, "Tariff year:  %d\n", report.TariffYear)
	}
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(&buf, "Generated:    %s\n", report.GeneratedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "SERVICE LINES")
	fmt.Fprintln(&buf, strings.Repeat("-", 72))
	fmt.Fprintf(&buf, "%-3s %-22s %4s %-16s %12s %12s\n", "#", "Service", "Qty", "Day", "Total", "Burden")
	for _, o := range report.Result.Lines {
		if !o.Resolved() {
			fmt.Fprintf(&buf, "%-3d %-22s %4d %-16s %s\n", o.Index+1, o.Item.ServiceID, o.Item.Quantity, o.Item.DayType, "ERROR: "+lineError(o))
			continue
		}
		r := o.Result
		fmt.Fprintf(&buf, "%-3d %-22s %4d %-16s %12s %12s\n",
			o.Index+1, r.ServiceName, r.Quantity, string(r.DayType)+" "+FormatMultiplier(r.DayMultiplierApplied),
			FormatWon(r.TotalCost), FormatWon(r.UserBurden))
		if r.IsOverLimit {
			fmt.Fprintf(&buf, "    over allowance: base %s + overage %s\n", FormatWon(r.BaseCost), FormatWon(r.OverageCost))
		}
	}
	fmt.Fprintln(&buf)

	agg := report.Result.Aggregate
	fmt.Fprintln(&buf, "TOTALS")
	fmt.Fprintln(&buf, strings.Repeat("-", 72))
	fmt.Fprintf(&buf, "  Total cost:          %s\n", FormatWon(agg.TotalCost))
	fmt.Fprintf(&buf, "  User burden:         %s\n", FormatWon(agg.TotalUserBurden))
	fmt.Fprintf(&buf, "  Insurance coverage:  %s\n", FormatWon(agg.TotalInsuranceCoverage))
	if agg.LimitConfigured {
		fmt.Fprintf(&buf, "  Monthly limit:       %s\n", FormatWon(agg.MonthlyLimit))
		if agg.IsOverMonthlyLimit {
			fmt.Fprintf(&buf, "  OVER LIMIT by %s\n", FormatPercent(agg.OverLimitPercent))
		} else {
			fmt.Fprintf(&buf, "  Remaining limit:     %s\n", FormatWon(agg.RemainingLimit))
		}
	} else {
		fmt.Fprintln(&buf, "  Monthly limit:       not configured")
	}

	if len(report.Result.Issues) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "ISSUES")
		fmt.Fprintln(&buf, strings.Repeat("-", 72))
		for _, is := range report.Result.Issues {
			if is.LineIndex >= 0 {
				fmt.Fprintf(&buf, "  [line %d] %s\n", is.LineIndex+1, is.Message)
			} else {
				fmt.Fprintf(&buf, "  %s\n", is.Message)
			}
		}
	}

	if len(report.Recommendations) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "RECOMMENDATIONS")
		fmt.Fprintln(&buf, strings.Repeat("-", 72))
		for _, rec := range report.Recommendations {
			fmt.Fprintf(&buf, "  * %s\n    %s\n", rec.Title, DescribeRecommendation(rec))
		}
	}

	for _, note := range report.Notes {
		fmt.Fprintf(&buf, "\nNote: %s\n", note)
	}
	return buf.Bytes(), nil
}

func lineError(o domain.LineOutcome) string {
	if o.Err != nil {
		return o.Err.Error()
	}
	if o.Error != "" {
		return o.Error
	}
	return "unresolved"
}
