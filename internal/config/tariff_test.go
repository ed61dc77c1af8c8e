package config

import (
	"testing"

	"github.com/homecare-ojt/ltcsim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTariffParser_LoadDefault(t *testing.T) {
	tariff, err := NewTariffParser().LoadDefault()
	require.NoError(t, err)

	assert.Equal(t, 2025, tariff.Metadata.Year)
	assert.Len(t, tariff.Services, 18)
	assert.Len(t, tariff.DayPricing, 5)
	assert.Len(t, tariff.BurdenTiers, 4)
	assert.NotEmpty(t, tariff.Metadata.LegalReferences["primary"])

	visit, ok := tariff.Service("visit-1")
	require.True(t, ok)
	assert.Equal(t, domain.Won(8500), visit.UnitPrice)

	rule, ok := tariff.RuleFor(visit)
	require.True(t, ok)
	assert.Equal(t, 3, rule.BaseAllowance)
	assert.Equal(t, "visit-5", rule.OverageServiceID)

	wheelchair, _ := tariff.Service("equipment-2")
	rule, ok = tariff.RuleFor(wheelchair)
	require.True(t, ok, "equipment is capped by a category rule")
	assert.Equal(t, 1, rule.BaseAllowance)
	assert.False(t, rule.HasOverage())

	day, ok := tariff.DayRule(domain.DayWeekendHoliday)
	require.True(t, ok)
	assert.True(t, day.Multiplier.Equal(decimal.RequireFromString("1.8")))

	grade, ok := tariff.Grade("grade3")
	require.True(t, ok)
	assert.Equal(t, domain.Won(1550000), grade.MonthlyLimit)

	tier, ok := tariff.BurdenTier("reduced-40")
	require.True(t, ok)
	assert.True(t, tier.Rate.Equal(decimal.RequireFromString("0.09")))
}

func TestTariffParser_LoadYear_Missing(t *testing.T) {
	_, err := NewTariffParser().LoadYear(1999)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no embedded tariff")
}

func TestTariffParser_LoadFromFile_FileNotFound(t *testing.T) {
	_, err := NewTariffParser().LoadFromFile("nonexistent.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestTariffParser_ValidateTariff(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(t *domain.Tariff)
		wantErr string
	}{
		{
			name:    "duplicate service",
			mutate:  func(t *domain.Tariff) { t.Services = append(t.Services, t.Services[0]) },
			wantErr: "duplicate id",
		},
		{
			name:    "zero price",
			mutate:  func(t *domain.Tariff) { t.Services[0].UnitPrice = 0 },
			wantErr: "price must be positive",
		},
		{
			name:    "unknown category",
			mutate:  func(t *domain.Tariff) { t.Services[0].Category = "spa" },
			wantErr: "unknown category",
		},
		{
			name:    "rule references missing overage service",
			mutate:  func(t *domain.Tariff) { t.TierRules[0].OverageServiceID = "visit-99" },
			wantErr: "unknown overage service",
		},
		{
			name: "rule with service and category",
			mutate: func(t *domain.Tariff) {
				t.TierRules[0].Category = domain.CategoryVisit
			},
			wantErr: "mutually exclusive",
		},
		{
			name:    "missing day type",
			mutate:  func(t *domain.Tariff) { t.DayPricing = t.DayPricing[:4] },
			wantErr: "day pricing must include",
		},
		{
			name:    "discount multiplier",
			mutate:  func(t *domain.Tariff) { t.DayPricing[1].Multiplier = decimal.RequireFromString("0.9") },
			wantErr: "multiplier must be at least 1",
		},
		{
			name:    "grade without limit",
			mutate:  func(t *domain.Tariff) { t.CareGrades[0].MonthlyLimit = 0 },
			wantErr: "monthly limit must be positive",
		},
		{
			name:    "burden rate above ceiling",
			mutate:  func(t *domain.Tariff) { t.BurdenTiers[0].Rate = decimal.RequireFromString("0.2") },
			wantErr: "rate must be between 0 and 0.15",
		},
	}

	parser := NewTariffParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tariff, err := parser.LoadDefault()
			require.NoError(t, err)
			tt.mutate(tariff)

			err = parser.ValidateTariff(tariff)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTariffParser_Parse_NormalizesDayAlias(t *testing.T) {
	data := []byte(`
services:
  - {id: a, name: A, unit: "1회", price: 1000, category: visit}
day_pricing:
  - {day_type: weekday, multiplier: 1.0}
  - {day_type: weekend, multiplier: 1.2}
  - {day_type: holiday, multiplier: 1.5}
  - {day_type: weekend-holiday, multiplier: 1.8}
  - {day_type: extended-weekend, multiplier: 2.0}
care_grades:
  - {id: grade1, monthly_limit: 100000}
burden_tiers:
  - {id: normal, rate: 0.15}
`)
	tariff, err := NewTariffParser().Parse(data)
	require.NoError(t, err)

	rule, ok := tariff.DayRule(domain.DayExtendedHoliday)
	require.True(t, ok)
	assert.Equal(t, "2", rule.Multiplier.String())
}
