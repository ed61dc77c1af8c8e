package output

import (
	json "github.com/goccy/go-json"

	"github.com/homecare-ojt/ltcsim/internal/domain"
)

// JSONFormatter emits the report as JSON. Amounts stay plain integers.
type JSONFormatter struct {
	Indent bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.Report) ([]byte, error) {
	if j.Indent {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}
