package output

import (
	"github.com/homecare-ojt/ltcsim/internal/domain"
	"github.com/shopspring/decimal"
)

// FormatWon renders an amount with thousands separators and the won suffix
func FormatWon(amount domain.Won) string {
	return amount.String()
}

// FormatRate renders a burden rate such as 0.15 as "15%"
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).Round(1).String() + "%"
}

// FormatPercent renders an already scaled percentage with one decimal
func FormatPercent(pct decimal.Decimal) string {
	return pct.StringFixed(1) + "%"
}

// FormatMultiplier renders a day multiplier as ×1.3
func FormatMultiplier(m decimal.Decimal) string {
	return "×" + m.String()
}

var categoryLabels = map[domain.Category]string{
	domain.CategoryVisit:     "방문요양",
	domain.CategoryDaycare:   "주야간보호",
	domain.CategoryShortStay: "단기보호",
	domain.CategoryEquipment: "복지용구",
	domain.CategorySpecial:   "특수서비스",
}

// CategoryLabel returns the display name of a service category
func CategoryLabel(c domain.Category) string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}
