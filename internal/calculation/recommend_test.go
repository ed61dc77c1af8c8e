package calculation

import (
	"context"
	"testing"

	"github.com/homecare-ojt/ltcsim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recommend(t *testing.T, engine *Engine, ws domain.Worksheet) []domain.Recommendation {
	t.Helper()
	result, err := engine.Simulate(context.Background(), ws)
	require.NoError(t, err)
	return engine.Recommend(ws, result)
}

func findRecommendation(recs []domain.Recommendation, kind domain.RecommendationKind) (domain.Recommendation, bool) {
	for _, r := range recs {
		if r.Kind == kind {
			return r, true
		}
	}
	return domain.Recommendation{}, false
}

func TestRecommend_BudgetSuggestion(t *testing.T) {
	engine := newTestEngine(t)

	// 1,040,000 + 18,000 leaves 12,000 of the grade5 limit
	nearLimit := []domain.LineItem{
		{ServiceID: "daycare-1", Quantity: 20, DayType: domain.DayWeekday},
		{ServiceID: "shortstay-1", Quantity: 12, DayType: domain.DayWeekday},
		{ServiceID: "visit-2", Quantity: 4, DayType: domain.DayWeekday},
	}

	tests := []struct {
		name      string
		ws        domain.Worksheet
		remaining domain.Won
		want      []string
	}{
		{
			name: "capped at three in catalog order",
			ws: domain.Worksheet{
				CareGradeID:   "grade5",
				DefaultBurden: "normal",
				Lines:         []domain.LineItem{{ServiceID: "visit-1", Quantity: 1}},
			},
			remaining: 1061500,
			want:      []string{"visit-2", "visit-3", "visit-4"},
		},
		{
			name: "weekday prices against the remaining limit",
			ws: domain.Worksheet{
				CareGradeID:    "grade5",
				DefaultDayType: domain.DayWeekday,
				DefaultBurden:  "normal",
				Lines:          nearLimit,
			},
			remaining: 12000,
			want:      []string{"visit-1", "visit-3", "visit-4"},
		},
		{
			name: "weekend surcharge applied",
			ws: domain.Worksheet{
				CareGradeID:    "grade5",
				DefaultDayType: domain.DayWeekend,
				DefaultBurden:  "normal",
				Lines:          nearLimit,
			},
			remaining: 12000,
			want:      []string{"visit-1", "daycare-2", "equipment-2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := findRecommendation(recommend(t, engine, tt.ws), domain.RecommendBudget)
			require.True(t, ok, "Should suggest services for the unused limit")
			assert.Equal(t, tt.remaining, rec.Amount)
			assert.Equal(t, tt.want, rec.ServiceIDs)
			for _, id := range rec.ServiceIDs {
				assert.False(t, tt.ws.HasService(id), "Should skip %s, already on the worksheet", id)
			}
		})
	}
}

func TestRecommend_NoBudgetSuggestionWhenNothingFits(t *testing.T) {
	engine := newTestEngine(t)

	// 1,068,500 leaves 1,500 of the grade5 limit, below every unused price
	ws := domain.Worksheet{
		CareGradeID:   "grade5",
		DefaultBurden: "normal",
		Lines: []domain.LineItem{
			{ServiceID: "daycare-1", Quantity: 20},
			{ServiceID: "shortstay-1", Quantity: 12},
			{ServiceID: "visit-2", Quantity: 4},
			{ServiceID: "daycare-2", Quantity: 3},
		},
	}
	_, ok := findRecommendation(recommend(t, engine, ws), domain.RecommendBudget)
	assert.False(t, ok)
}

func TestRecommend_CostSavingThreshold(t *testing.T) {
	tariff := &domain.Tariff{
		Services: []domain.ServiceItem{
			{ID: "care-a", Name: "A", UnitPrice: 500000, Category: domain.CategoryVisit},
			{ID: "care-b", Name: "B", UnitPrice: 500010, Category: domain.CategoryVisit},
		},
		DayPricing:  []domain.DayPricingRule{{DayType: domain.DayWeekday, Multiplier: decimal.NewFromInt(1)}},
		BurdenTiers: []domain.BurdenTier{{ID: "ten", Rate: decimal.RequireFromString("0.10")}},
	}
	engine := NewEngine(tariff)

	tests := []struct {
		name    string
		service string
		flagged bool
	}{
		{name: "exactly 50,000 is not flagged", service: "care-a", flagged: false},
		{name: "50,001 is flagged", service: "care-b", flagged: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := domain.Worksheet{
				CareGradeID:   "none",
				DefaultBurden: "ten",
				Lines:         []domain.LineItem{{ServiceID: tt.service, Quantity: 1}},
			}
			rec, ok := findRecommendation(recommend(t, engine, ws), domain.RecommendCostSaving)
			assert.Equal(t, tt.flagged, ok)
			if tt.flagged {
				assert.Equal(t, []string{tt.service}, rec.ServiceIDs)
				assert.Equal(t, CostSavingThreshold, rec.Amount)
			}
		})
	}
}

func TestRecommend_LimitWarning(t *testing.T) {
	engine := newTestEngine(t)

	// 1,350,000 + 250,000 against the grade3 limit of 1,550,000
	ws := domain.Worksheet{
		CareGradeID:   "grade3",
		DefaultBurden: "normal",
		Lines: []domain.LineItem{
			{ServiceID: "visit-2", Quantity: 300},
			{ServiceID: "daycare-1", Quantity: 10},
		},
	}
	recs := recommend(t, engine, ws)

	rec, ok := findRecommendation(recs, domain.RecommendLimit)
	require.True(t, ok)
	assert.Equal(t, domain.Won(1600000), rec.Amount)
	assert.Equal(t, domain.Won(1550000), rec.Limit)
	assert.Equal(t, "3.2", rec.Percent.StringFixed(1))

	_, ok = findRecommendation(recs, domain.RecommendBudget)
	assert.False(t, ok, "Should not suggest services when over the limit")

	saving, ok := findRecommendation(recs, domain.RecommendCostSaving)
	require.True(t, ok)
	assert.Equal(t, []string{"visit-2"}, saving.ServiceIDs)
}

func TestRecommend_EmptyInput(t *testing.T) {
	engine := newTestEngine(t)
	ws := domain.Worksheet{CareGradeID: "grade3", DefaultBurden: "normal"}

	assert.Nil(t, engine.Recommend(ws, nil))
	assert.Nil(t, engine.Recommend(ws, &domain.SimulationResult{}))

	unresolved := domain.Worksheet{
		CareGradeID:   "grade3",
		DefaultBurden: "normal",
		Lines:         []domain.LineItem{{ServiceID: "ghost", Quantity: 1}},
	}
	assert.Nil(t, recommend(t, engine, unresolved), "Should not advise on a worksheet with no priced lines")
}

func TestRecommend_NoLimitConfigured(t *testing.T) {
	engine := newTestEngine(t)
	ws := domain.Worksheet{
		CareGradeID:   "grade9",
		DefaultBurden: "normal",
		Lines:         []domain.LineItem{{ServiceID: "visit-1", Quantity: 1}},
	}
	assert.Nil(t, recommend(t, engine, ws))
}
