package compare

import (
	"context"
	"strings"
	"testing"

	"github.com/homecare-ojt/ltcsim/internal/calculation"
	"github.com/homecare-ojt/ltcsim/internal/config"
	"github.com/homecare-ojt/ltcsim/internal/domain"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	tariff, err := config.NewTariffParser().LoadDefault()
	if err != nil {
		t.Fatalf("failed to load tariff: %v", err)
	}
	return NewEngine(calculation.NewEngine(tariff))
}

func twoVisits() domain.Worksheet {
	return domain.Worksheet{
		CustomerName:   "홍길동",
		CareGradeID:    "grade3",
		DefaultDayType: domain.DayWeekday,
		DefaultBurden:  "normal",
		Lines:          []domain.LineItem{{ServiceID: "visit-1", Quantity: 2}},
	}
}

func TestEngine_Compare_Templates(t *testing.T) {
	ce := newTestEngine(t)

	set, err := ce.Compare(context.Background(), twoVisits(), Options{
		Templates: []string{"all_weekend", "tier_medical_aid", "grade_grade5"},
	})
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if set.BaseName != "base" {
		t.Errorf("Expected default base name, got %s", set.BaseName)
	}
	if set.BaseResult.TotalCost != 17000 || set.BaseResult.UserBurden != 2550 {
		t.Fatalf("Unexpected base totals: %d / %d", set.BaseResult.TotalCost, set.BaseResult.UserBurden)
	}
	if len(set.AlternativeResults) != 3 {
		t.Fatalf("Expected 3 alternatives, got %d", len(set.AlternativeResults))
	}

	weekend := set.AlternativeResults[0]
	if weekend.TotalCost != 20400 {
		t.Errorf("Expected weekend total 20400, got %d", weekend.TotalCost)
	}
	if weekend.CostDiffFromBase != 3400 || weekend.BurdenDiffFromBase != 510 {
		t.Errorf("Unexpected weekend deltas: %d / %d", weekend.CostDiffFromBase, weekend.BurdenDiffFromBase)
	}
	if weekend.BurdenPctFromBase.StringFixed(1) != "20.0" {
		t.Errorf("Expected 20.0%% burden change, got %s", weekend.BurdenPctFromBase.StringFixed(1))
	}

	aid := set.AlternativeResults[1]
	if aid.UserBurden != 0 || aid.TotalCost != 17000 {
		t.Errorf("Medical aid should keep the cost and remove the burden, got %d / %d", aid.TotalCost, aid.UserBurden)
	}

	grade5 := set.AlternativeResults[2]
	if grade5.MonthlyLimit != 1070000 {
		t.Errorf("Expected grade5 limit, got %d", grade5.MonthlyLimit)
	}

	if len(set.Recommendations) != 1 || !strings.Contains(set.Recommendations[0], "tier_medical_aid saves 2,550원") {
		t.Errorf("Unexpected recommendations: %v", set.Recommendations)
	}
}

func TestEngine_Compare_Transforms(t *testing.T) {
	ce := newTestEngine(t)

	set, err := ce.Compare(context.Background(), twoVisits(), Options{
		BaseName:   "current",
		Transforms: []string{"set_quantity:service=visit-1,quantity=1"},
	})
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	alt := set.AlternativeResults[0]
	if alt.TotalCost != 8500 || alt.CostDiffFromBase != -8500 {
		t.Errorf("Unexpected transform result: %d / %d", alt.TotalCost, alt.CostDiffFromBase)
	}
	if !strings.Contains(set.Recommendations[0], "Lowest Burden") {
		t.Errorf("Expected burden recommendation, got %v", set.Recommendations)
	}
}

func TestEngine_Compare_Errors(t *testing.T) {
	ce := newTestEngine(t)
	ctx := context.Background()

	if _, err := ce.Compare(ctx, twoVisits(), Options{Templates: []string{"no_such_template"}}); err == nil {
		t.Error("Expected error for unknown template")
	}
	if _, err := ce.Compare(ctx, twoVisits(), Options{Transforms: []string{"bogus"}}); err == nil {
		t.Error("Expected error for malformed transform spec")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := ce.Compare(cancelled, twoVisits(), Options{}); err == nil {
		t.Error("Expected error for cancelled context")
	}
}

func TestGenerateRecommendations_LimitWarning(t *testing.T) {
	set := &ComparisonSet{
		BaseResult: &VariantResult{Name: "base", TotalCost: 100, UserBurden: 15},
		AlternativeResults: []VariantResult{
			{Name: "grade_grade5", TotalCost: 100, UserBurden: 15, IsOverMonthlyLimit: true, MonthlyLimit: 50},
		},
	}
	recs := GenerateRecommendations(set)
	if len(recs) != 1 || !strings.HasPrefix(recs[0], "Limit Warning: grade_grade5") {
		t.Errorf("Unexpected recommendations: %v", recs)
	}

	if got := GenerateRecommendations(&ComparisonSet{BaseResult: set.BaseResult}); len(got) != 0 {
		t.Errorf("Expected no recommendations without alternatives, got %v", got)
	}
}
