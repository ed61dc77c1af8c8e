package calculation

import (
	"github.com/homecare-ojt/ltcsim/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// roundWon rounds to the nearest whole won, halves away from zero.
// Every amount the engine produces is non-negative, so this is round-half-up.
func roundWon(d decimal.Decimal) domain.Won {
	return domain.Won(d.Round(0).IntPart())
}

// priceUnits returns round(quantity × unitPrice × multiplier). The product is
// exact in decimal and rounded exactly once.
func priceUnits(quantity int, unitPrice domain.Won, multiplier decimal.Decimal) domain.Won {
	if quantity <= 0 {
		return 0
	}
	return roundWon(decimal.NewFromInt(int64(quantity)).
		Mul(decimal.NewFromInt(int64(unitPrice))).
		Mul(multiplier))
}

// clampRate keeps a burden rate inside [0, 1]
func clampRate(rate decimal.Decimal) decimal.Decimal {
	if rate.IsNegative() {
		return decimal.Zero
	}
	if rate.GreaterThan(one) {
		return one
	}
	return rate
}
