package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/homecare-ojt/ltcsim/internal/domain"
)

// TemplateRegistry holds named comparison variants
type TemplateRegistry struct {
	templates map[string]Template
}

// Template is a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []WorksheetTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns the registered template names in sorted order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TemplateName turns a tariff id into a template-name fragment: reduced-40 -> reduced_40
func TemplateName(prefix, id string) string {
	return prefix + "_" + strings.ReplaceAll(strings.ToLower(id), "-", "_")
}

// CreateBuiltInTemplates registers the day-type variants plus one template per
// burden tier (tier_<id>) and care grade (grade_<id>) defined by the tariff
func CreateBuiltInTemplates(tariff *domain.Tariff) *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "all_weekday",
		Description: "Deliver every service on weekdays",
		Transforms:  []WorksheetTransform{&SetDayType{DayType: domain.DayWeekday}},
	})
	registry.Register(Template{
		Name:        "all_weekend",
		Description: "Deliver every service on weekends",
		Transforms:  []WorksheetTransform{&SetDayType{DayType: domain.DayWeekend}},
	})
	registry.Register(Template{
		Name:        "all_holiday",
		Description: "Deliver every service on public holidays",
		Transforms:  []WorksheetTransform{&SetDayType{DayType: domain.DayHoliday}},
	})

	if tariff == nil {
		return registry
	}
	for _, tier := range tariff.BurdenTiers {
		registry.Register(Template{
			Name:        TemplateName("tier", tier.ID),
			Description: fmt.Sprintf("Apply the %s burden tier (%s%%)", tier.Name, tier.Rate.Shift(2).String()),
			Transforms:  []WorksheetTransform{&SetBurdenTier{TierID: tier.ID}},
		})
	}
	for _, grade := range tariff.CareGrades {
		registry.Register(Template{
			Name:        TemplateName("grade", grade.ID),
			Description: fmt.Sprintf("Evaluate against the %s limit (%s)", grade.Name, grade.MonthlyLimit),
			Transforms:  []WorksheetTransform{&SetCareGrade{GradeID: grade.ID}},
		})
	}
	return registry
}

// ApplyTemplate applies a template to a base worksheet
func ApplyTemplate(base *domain.Worksheet, template Template) (*domain.Worksheet, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}
