package output

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/homecare-ojt/ltcsim/internal/domain"
)

// Formatter renders a simulation report into bytes
type Formatter interface {
	Name() string
	Format(report *domain.Report) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(*domain.Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *domain.Report) ([]byte, error) { return f.F(report) }

var formatters = map[string]Formatter{
	"console": ConsoleFormatter{},
	"json":    JSONFormatter{Indent: true},
	"csv":     CSVFormatter{},
	"html":    HTMLFormatter{},
	"xlsx":    XLSXFormatter{},
}

var formatAliases = map[string]string{
	"text":  "console",
	"txt":   "console",
	"excel": "xlsx",
}

// FileExtension maps a formatter name to the extension used when writing files
func FileExtension(name string) string {
	switch name {
	case "console":
		return "txt"
	default:
		return name
	}
}

// GetFormatterByName returns the formatter registered under name or alias,
// or nil when none matches
func GetFormatterByName(name string) Formatter {
	if canonical, ok := formatAliases[name]; ok {
		name = canonical
	}
	return formatters[name]
}

// AvailableFormatterNames lists the registered formatter names in sorted order
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases in sorted order
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// WriteFormatted formats the report and writes it to path. When path is empty
// a timestamped care_report_<ts>.<ext> file is created in the working directory.
// The written filename is returned.
func WriteFormatted(f Formatter, report *domain.Report, path string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", fmt.Errorf("failed to format %s report: %w", f.Name(), err)
	}
	if path == "" {
		path = fmt.Sprintf("care_report_%s.%s", time.Now().Format("20060102_150405"), FileExtension(f.Name()))
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
