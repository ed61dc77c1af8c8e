package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/homecare-ojt/ltcsim/internal/domain"
)

// HTMLFormatter produces a standalone HTML report
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"won":      FormatWon,
	"pct":      FormatPercent,
	"rate":     FormatRate,
	"mult":     FormatMultiplier,
	"category": CategoryLabel,
	"inc":      func(i int) int { return i + 1 },
	"lineErr":  lineError,
	"describe": DescribeRecommendation,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("report has no simulation result")
	}
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, report); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
