package transform

import (
	"testing"

	"github.com/homecare-ojt/ltcsim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTariff() *domain.Tariff {
	return &domain.Tariff{
		CareGrades: []domain.CareGrade{
			{ID: "grade1", Name: "1등급", MonthlyLimit: 1740000},
			{ID: "grade3", Name: "3등급", MonthlyLimit: 1550000},
		},
		BurdenTiers: []domain.BurdenTier{
			{ID: "normal", Name: "일반", Rate: decimal.RequireFromString("0.15")},
			{ID: "reduced-40", Name: "감경 40%", Rate: decimal.RequireFromString("0.09")},
			{ID: "medical-aid", Name: "의료급여", Rate: decimal.RequireFromString("0.06")},
		},
	}
}

func TestTemplateRegistry_RegisterAndGet(t *testing.T) {
	registry := NewTemplateRegistry()
	registry.Register(Template{Name: "test_template", Description: "A test template"})

	got, ok := registry.Get("TEST_TEMPLATE")
	require.True(t, ok, "lookup is case-insensitive")
	assert.Equal(t, "test_template", got.Name)

	_, ok = registry.Get("nonexistent")
	assert.False(t, ok)
}

func TestCreateBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates(testTariff())

	assert.Equal(t, []string{
		"all_holiday", "all_weekday", "all_weekend",
		"grade_grade1", "grade_grade3",
		"tier_medical_aid", "tier_normal", "tier_reduced_40",
	}, registry.List())

	tier, ok := registry.Get("tier_reduced_40")
	require.True(t, ok)
	assert.Contains(t, tier.Description, "9%")

	grade, ok := registry.Get("grade_grade1")
	require.True(t, ok)
	assert.Contains(t, grade.Description, "1,740,000원")
}

func TestCreateBuiltInTemplates_NilTariff(t *testing.T) {
	registry := CreateBuiltInTemplates(nil)
	assert.Len(t, registry.List(), 3)
}

func TestApplyTemplate(t *testing.T) {
	registry := CreateBuiltInTemplates(testTariff())
	tmpl, ok := registry.Get("all_weekend")
	require.True(t, ok)

	out, err := ApplyTemplate(baseWorksheet(), tmpl)
	require.NoError(t, err)
	assert.Equal(t, domain.DayWeekend, out.DefaultDayType)
	for _, l := range out.Lines {
		assert.Equal(t, domain.DayWeekend, l.DayType)
	}
}

func TestParseTemplateList(t *testing.T) {
	assert.Nil(t, ParseTemplateList(""))
	assert.Equal(t, []string{"all_weekend", "tier_normal"}, ParseTemplateList(" all_weekend, ,tier_normal "))
}
