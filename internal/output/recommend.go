package output

import (
	"fmt"
	"strings"

	"github.com/homecare-ojt/ltcsim/internal/domain"
)

// DescribeRecommendation renders the advisory text for a recommendation
func DescribeRecommendation(rec domain.Recommendation) string {
	switch rec.Kind {
	case domain.RecommendBudget:
		return fmt.Sprintf("%s of the monthly limit is unused. These services fit within it: %s.",
			FormatWon(rec.Amount), strings.Join(rec.ServiceIDs, ", "))
	case domain.RecommendCostSaving:
		return fmt.Sprintf("%d service(s) carry a user burden above %s: %s. Consider an alternative service or a reduced burden tier if the beneficiary qualifies.",
			len(rec.ServiceIDs), FormatWon(rec.Amount), strings.Join(rec.ServiceIDs, ", "))
	case domain.RecommendLimit:
		return fmt.Sprintf("Total %s exceeds the %s monthly limit by %s. The excess is paid in full by the beneficiary.",
			FormatWon(rec.Amount), FormatWon(rec.Limit), FormatPercent(rec.Percent))
	}
	return rec.Title
}
