package compare

import (
	"context"
	"fmt"

	"github.com/homecare-ojt/ltcsim/internal/calculation"
	"github.com/homecare-ojt/ltcsim/internal/domain"
	"github.com/homecare-ojt/ltcsim/internal/transform"
)

// Engine prices a base worksheet and template variants of it
type Engine struct {
	Calc      *calculation.Engine
	Templates *transform.TemplateRegistry
}

// NewEngine creates a comparison engine with the built-in templates of the
// calculation engine's tariff
func NewEngine(calc *calculation.Engine) *Engine {
	return &Engine{
		Calc:      calc,
		Templates: transform.CreateBuiltInTemplates(calc.Tariff),
	}
}

// Options configures a comparison
type Options struct {
	BaseName      string   // label for the unmodified worksheet
	Templates     []string // template names to apply
	Transforms    []string // ad-hoc transform specs, each priced as its own variant
	WorksheetPath string
}

// Compare prices the base worksheet and one variant per template or transform spec
func (ce *Engine) Compare(ctx context.Context, ws domain.Worksheet, opts Options) (*ComparisonSet, error) {
	if opts.BaseName == "" {
		opts.BaseName = "base"
	}

	baseResult, err := ce.Calc.Simulate(ctx, ws)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base worksheet: %w", err)
	}
	base := Metrics(opts.BaseName, "As entered", ws, baseResult)

	alternatives := []VariantResult{}
	for _, name := range opts.Templates {
		tmpl, ok := ce.Templates.Get(name)
		if !ok {
			return nil, fmt.Errorf("template %s not found", name)
		}
		modified, err := transform.ApplyTemplate(&ws, tmpl)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", name, err)
		}
		alt, err := ce.price(ctx, tmpl.Name, tmpl.Description, *modified, base)
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, alt)
	}

	registry := transform.NewTransformRegistry()
	for _, spec := range opts.Transforms {
		t, err := registry.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		modified, err := transform.ApplyTransforms(&ws, []transform.WorksheetTransform{t})
		if err != nil {
			return nil, err
		}
		alt, err := ce.price(ctx, spec, t.Description(), *modified, base)
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, alt)
	}

	set := &ComparisonSet{
		BaseName:           opts.BaseName,
		BaseResult:         &base,
		AlternativeResults: alternatives,
		WorksheetPath:      opts.WorksheetPath,
	}
	set.Recommendations = GenerateRecommendations(set)
	return set, nil
}

func (ce *Engine) price(ctx context.Context, name, description string, ws domain.Worksheet, base VariantResult) (VariantResult, error) {
	result, err := ce.Calc.Simulate(ctx, ws)
	if err != nil {
		return VariantResult{}, fmt.Errorf("failed to calculate variant %s: %w", name, err)
	}
	return WithDeltas(Metrics(name, description, ws, result), base), nil
}
