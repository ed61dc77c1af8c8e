package config

import (
	"embed"
	"fmt"
	"os"

	"github.com/homecare-ojt/ltcsim/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed tariffs/*.yaml
var tariffFS embed.FS

// DefaultTariffYear is the fee schedule compiled into the binary
const DefaultTariffYear = 2025

// MaxBurdenRate is the statutory ceiling on the beneficiary's share
var MaxBurdenRate = decimal.RequireFromString("0.15")

// TariffParser loads and validates fee schedules
type TariffParser struct{}

// NewTariffParser creates a new tariff parser
func NewTariffParser() *TariffParser {
	return &TariffParser{}
}

// LoadDefault returns the embedded fee schedule
func (tp *TariffParser) LoadDefault() (*domain.Tariff, error) {
	return tp.LoadYear(DefaultTariffYear)
}

// LoadYear returns an embedded fee schedule by year
func (tp *TariffParser) LoadYear(year int) (*domain.Tariff, error) {
	name := fmt.Sprintf("tariffs/tariff_%d.yaml", year)
	data, err := tariffFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("no embedded tariff for %d: %w", year, err)
	}
	return tp.Parse(data)
}

// LoadFromFile loads a fee schedule from a YAML file
func (tp *TariffParser) LoadFromFile(filename string) (*domain.Tariff, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return tp.Parse(data)
}

// Load returns the file's tariff when filename is set and the embedded one otherwise
func (tp *TariffParser) Load(filename string) (*domain.Tariff, error) {
	if filename == "" {
		return tp.LoadDefault()
	}
	return tp.LoadFromFile(filename)
}

// Parse decodes and validates a fee schedule
func (tp *TariffParser) Parse(data []byte) (*domain.Tariff, error) {
	var tariff domain.Tariff
	if err := yaml.Unmarshal(data, &tariff); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	for i := range tariff.DayPricing {
		tariff.DayPricing[i].DayType = domain.NormalizeDayType(string(tariff.DayPricing[i].DayType))
	}

	if err := tp.ValidateTariff(&tariff); err != nil {
		return nil, fmt.Errorf("tariff validation failed: %w", err)
	}
	return &tariff, nil
}

// ValidateTariff checks the fee schedule for internal consistency
func (tp *TariffParser) ValidateTariff(t *domain.Tariff) error {
	if len(t.Services) == 0 {
		return fmt.Errorf("tariff has no services")
	}

	seen := make(map[string]bool, len(t.Services))
	for i, s := range t.Services {
		if s.ID == "" {
			return fmt.Errorf("service %d: id is required", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("service %s: duplicate id", s.ID)
		}
		seen[s.ID] = true
		if s.UnitPrice <= 0 {
			return fmt.Errorf("service %s: price must be positive", s.ID)
		}
		if !s.Category.Valid() {
			return fmt.Errorf("service %s: unknown category %q", s.ID, s.Category)
		}
	}

	for i, r := range t.TierRules {
		if err := tp.validateRule(t, r); err != nil {
			return fmt.Errorf("tier rule %d: %w", i, err)
		}
	}

	days := make(map[domain.DayType]bool, len(t.DayPricing))
	for _, d := range t.DayPricing {
		if d.DayType == "" {
			return fmt.Errorf("day pricing entry without day_type")
		}
		if days[d.DayType] {
			return fmt.Errorf("day type %s: duplicate entry", d.DayType)
		}
		days[d.DayType] = true
		if d.Multiplier.LessThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("day type %s: multiplier must be at least 1", d.DayType)
		}
	}
	for _, dt := range domain.DayTypes {
		if !days[dt] {
			return fmt.Errorf("day pricing must include %s", dt)
		}
	}

	for _, g := range t.CareGrades {
		if g.ID == "" {
			return fmt.Errorf("care grade without id")
		}
		if g.MonthlyLimit <= 0 {
			return fmt.Errorf("care grade %s: monthly limit must be positive", g.ID)
		}
	}

	if len(t.BurdenTiers) == 0 {
		return fmt.Errorf("tariff has no burden tiers")
	}
	for _, b := range t.BurdenTiers {
		if b.ID == "" {
			return fmt.Errorf("burden tier without id")
		}
		if b.Rate.IsNegative() || b.Rate.GreaterThan(MaxBurdenRate) {
			return fmt.Errorf("burden tier %s: rate must be between 0 and %s", b.ID, MaxBurdenRate)
		}
	}

	return nil
}

func (tp *TariffParser) validateRule(t *domain.Tariff, r domain.TieredLimitRule) error {
	switch {
	case r.ServiceID == "" && r.Category == "":
		return fmt.Errorf("service_id or category is required")
	case r.ServiceID != "" && r.Category != "":
		return fmt.Errorf("service_id and category are mutually exclusive")
	}
	if r.ServiceID != "" {
		if _, ok := t.Service(r.ServiceID); !ok {
			return fmt.Errorf("unknown service %s", r.ServiceID)
		}
	}
	if r.Category != "" && !r.Category.Valid() {
		return fmt.Errorf("unknown category %q", r.Category)
	}
	if r.BaseAllowance < 0 {
		return fmt.Errorf("base_allowance cannot be negative")
	}
	if r.HasOverage() {
		if _, ok := t.Service(r.OverageServiceID); !ok {
			return fmt.Errorf("unknown overage service %s", r.OverageServiceID)
		}
	}
	return nil
}
