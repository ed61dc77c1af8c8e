package domain

import (
	"github.com/shopspring/decimal"
)

// Won is an amount of Korean won. The currency has no minor unit, so every
// monetary value in the engine is a whole number.
type Won int64

// Category groups catalog services by kind of care
type Category string

const (
	CategoryVisit     Category = "visit"
	CategoryDaycare   Category = "daycare"
	CategoryShortStay Category = "shortstay"
	CategoryEquipment Category = "equipment"
	CategorySpecial   Category = "special"
)

// Categories lists the categories in display order
var Categories = []Category{CategoryVisit, CategoryDaycare, CategoryShortStay, CategoryEquipment, CategorySpecial}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// DayType classifies the day a service is delivered on for surcharge purposes
type DayType string

const (
	DayWeekday         DayType = "weekday"
	DayWeekend         DayType = "weekend"
	DayHoliday         DayType = "holiday"
	DayWeekendHoliday  DayType = "weekend-holiday"
	DayExtendedHoliday DayType = "extended-holiday"
)

// DayTypes lists every day classification the tariff must price
var DayTypes = []DayType{DayWeekday, DayWeekend, DayHoliday, DayWeekendHoliday, DayExtendedHoliday}

// NormalizeDayType maps accepted aliases onto canonical day types.
// Unknown values are returned unchanged so the engine can report them.
func NormalizeDayType(s string) DayType {
	switch s {
	case "", "weekday":
		return DayWeekday
	case "extended-weekend", "extended_holiday", "extended":
		return DayExtendedHoliday
	case "weekend_holiday":
		return DayWeekendHoliday
	}
	return DayType(s)
}

// ServiceItem is one purchasable unit of care from the fee schedule
type ServiceItem struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	UnitLabel   string   `yaml:"unit" json:"unit"`
	UnitPrice   Won      `yaml:"price" json:"price"`
	Category    Category `yaml:"category" json:"category"`
	Description string   `yaml:"description" json:"description"`
}

// TieredLimitRule caps the quantity billable at the base price. Quantity
// beyond BaseAllowance is billed at the overage service's price, or not at
// all when OverageServiceID is empty.
//
// A rule applies either to a single service (ServiceID) or to every service
// of a category (Category). Service rules take precedence.
type TieredLimitRule struct {
	ServiceID        string   `yaml:"service_id,omitempty" json:"service_id,omitempty"`
	Category         Category `yaml:"category,omitempty" json:"category,omitempty"`
	BaseAllowance    int      `yaml:"base_allowance" json:"base_allowance"`
	OverageServiceID string   `yaml:"overage_service_id,omitempty" json:"overage_service_id,omitempty"`
	Period           string   `yaml:"period,omitempty" json:"period,omitempty"`
}

// HasOverage reports whether excess quantity is billed at all
func (r TieredLimitRule) HasOverage() bool {
	return r.OverageServiceID != ""
}

// DayPricingRule is the surcharge multiplier for a day classification
type DayPricingRule struct {
	DayType     DayType         `yaml:"day_type" json:"day_type"`
	Name        string          `yaml:"name" json:"name"`
	Multiplier  decimal.Decimal `yaml:"multiplier" json:"multiplier"`
	Description string          `yaml:"description" json:"description"`
}

// CareGrade is a clinical classification. It sets the monthly spending
// ceiling; it does not affect the burden rate.
type CareGrade struct {
	ID           string `yaml:"id" json:"id"`
	Name         string `yaml:"name" json:"name"`
	Description  string `yaml:"description" json:"description"`
	MonthlyLimit Won    `yaml:"monthly_limit" json:"monthly_limit"`
}

// BurdenTier is an income-based classification setting the share of cost
// the beneficiary pays out of pocket
type BurdenTier struct {
	ID          string          `yaml:"id" json:"id"`
	Name        string          `yaml:"name" json:"name"`
	Rate        decimal.Decimal `yaml:"rate" json:"rate"`
	Description string          `yaml:"description" json:"description"`
}

// TariffMetadata describes where a fee schedule comes from
type TariffMetadata struct {
	Year            int               `yaml:"year" json:"year"`
	Description     string            `yaml:"description" json:"description"`
	LegalReferences map[string]string `yaml:"legal_references,omitempty" json:"legal_references,omitempty"`
}

// Tariff bundles the static lookup tables the engine reads. It is loaded
// once and never mutated afterwards.
type Tariff struct {
	Metadata    TariffMetadata    `yaml:"metadata" json:"metadata"`
	Services    []ServiceItem     `yaml:"services" json:"services"`
	TierRules   []TieredLimitRule `yaml:"tier_rules" json:"tier_rules"`
	DayPricing  []DayPricingRule  `yaml:"day_pricing" json:"day_pricing"`
	CareGrades  []CareGrade       `yaml:"care_grades" json:"care_grades"`
	BurdenTiers []BurdenTier      `yaml:"burden_tiers" json:"burden_tiers"`
}

// Service looks up a catalog entry by id
func (t *Tariff) Service(id string) (ServiceItem, bool) {
	for _, s := range t.Services {
		if s.ID == id {
			return s, true
		}
	}
	return ServiceItem{}, false
}

// RuleFor returns the tiered limit rule governing a service, if any
func (t *Tariff) RuleFor(service ServiceItem) (TieredLimitRule, bool) {
	for _, r := range t.TierRules {
		if r.ServiceID != "" && r.ServiceID == service.ID {
			return r, true
		}
	}
	for _, r := range t.TierRules {
		if r.ServiceID == "" && r.Category != "" && r.Category == service.Category {
			return r, true
		}
	}
	return TieredLimitRule{}, false
}

// DayRule looks up the pricing rule for a day type
func (t *Tariff) DayRule(dayType DayType) (DayPricingRule, bool) {
	for _, d := range t.DayPricing {
		if d.DayType == dayType {
			return d, true
		}
	}
	return DayPricingRule{}, false
}

// Grade looks up a care grade by id
func (t *Tariff) Grade(id string) (CareGrade, bool) {
	for _, g := range t.CareGrades {
		if g.ID == id {
			return g, true
		}
	}
	return CareGrade{}, false
}

// BurdenTier looks up a burden tier by id
func (t *Tariff) BurdenTier(id string) (BurdenTier, bool) {
	for _, b := range t.BurdenTiers {
		if b.ID == id {
			return b, true
		}
	}
	return BurdenTier{}, false
}

// ServicesByCategory returns the catalog entries of one category in catalog order
func (t *Tariff) ServicesByCategory(c Category) []ServiceItem {
	var out []ServiceItem
	for _, s := range t.Services {
		if s.Category == c {
			out = append(out, s)
		}
	}
	return out
}
