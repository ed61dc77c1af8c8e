package compare

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/homecare-ojt/ltcsim/internal/domain"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(set *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Variant",
		"Type",
		"Total Cost",
		"User Burden",
		"Insurance Coverage",
		"Over Limit",
		"Cost Diff from Base",
		"Burden Diff from Base",
		"Burden % Change",
		"Unresolved Lines",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}
	if set.BaseResult != nil {
		if err := writer.Write(cf.formatRow(set.BaseResult, "base")); err != nil {
			return "", err
		}
	}
	for i := range set.AlternativeResults {
		if err := writer.Write(cf.formatRow(&set.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(r *VariantResult, kind string) []string {
	return []string{
		r.Name,
		kind,
		won(r.TotalCost),
		won(r.UserBurden),
		won(r.InsuranceCoverage),
		strconv.FormatBool(r.IsOverMonthlyLimit),
		won(r.CostDiffFromBase),
		won(r.BurdenDiffFromBase),
		r.BurdenPctFromBase.StringFixed(1),
		strconv.Itoa(r.UnresolvedLines),
	}
}

func won(w domain.Won) string {
	return strconv.FormatInt(int64(w), 10)
}
