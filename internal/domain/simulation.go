package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineCost is the priced portion of a line before the burden split
type LineCost struct {
	BaseCost             Won             `json:"baseCost"`
	OverageCost          Won             `json:"overageCost"`
	TotalCost            Won             `json:"totalCost"`
	DayMultiplierApplied decimal.Decimal `json:"dayMultiplierApplied"`
	IsOverLimit          bool            `json:"isOverLimit"`
}

// BurdenSplit divides a cost between the beneficiary and the insurer
type BurdenSplit struct {
	UserBurden        Won `json:"userBurden"`
	InsuranceCoverage Won `json:"insuranceCoverage"`
}

// LineResult is the computed breakdown for one worksheet line
type LineResult struct {
	ServiceID            string          `json:"serviceId"`
	ServiceName          string          `json:"serviceName"`
	Category             Category        `json:"category"`
	Quantity             int             `json:"quantity"`
	UnitPrice            Won             `json:"unitPrice"`
	DayType              DayType         `json:"dayType"`
	BurdenTierID         string          `json:"burdenTierId"`
	BaseCost             Won             `json:"baseCost"`
	OverageCost          Won             `json:"overageCost"`
	TotalCost            Won             `json:"totalCost"`
	DayMultiplierApplied decimal.Decimal `json:"dayMultiplierApplied"`
	BurdenRateApplied    decimal.Decimal `json:"burdenRateApplied"`
	UserBurden           Won             `json:"userBurden"`
	InsuranceCoverage    Won             `json:"insuranceCoverage"`
	IsOverLimit          bool            `json:"isOverLimit"`
}

// LineOutcome pairs a worksheet line with either its result or the error
// that kept it out of the totals
type LineOutcome struct {
	Index  int         `json:"index"`
	Item   LineItem    `json:"item"`
	Result *LineResult `json:"result,omitempty"`
	Err    error       `json:"-"`
	Error  string      `json:"error,omitempty"`
}

// Resolved reports whether the line produced a result
func (o LineOutcome) Resolved() bool {
	return o.Err == nil && o.Result != nil
}

// Aggregate is the worksheet total and monthly-limit check
type Aggregate struct {
	TotalCost              Won             `json:"totalCost"`
	TotalUserBurden        Won             `json:"totalUserBurden"`
	TotalInsuranceCoverage Won             `json:"totalInsuranceCoverage"`
	CareGradeID            string          `json:"careGradeId"`
	LimitConfigured        bool            `json:"limitConfigured"`
	MonthlyLimit           Won             `json:"monthlyLimit"`
	IsOverMonthlyLimit     bool            `json:"isOverMonthlyLimit"`
	RemainingLimit         Won             `json:"remainingLimit"`
	OverLimitPercent       decimal.Decimal `json:"overLimitPercent"`
}

// IssueKind classifies a soft failure reported alongside results
type IssueKind string

const (
	IssueUnknownService    IssueKind = "unknown_service"
	IssueUnknownBurdenTier IssueKind = "unknown_burden_tier"
	IssueInvalidQuantity   IssueKind = "invalid_quantity"
	IssueUnrecognizedDay   IssueKind = "unrecognized_day_type"
	IssueUnrecognizedGrade IssueKind = "unrecognized_grade"
)

// Issue is a reportable condition found during a computation pass.
// LineIndex is -1 for worksheet-level issues.
type Issue struct {
	Kind      IssueKind `json:"kind"`
	LineIndex int       `json:"lineIndex"`
	Message   string    `json:"message"`
}

// RecommendationKind names an advisory rule
type RecommendationKind string

const (
	RecommendBudget     RecommendationKind = "budget_optimization"
	RecommendCostSaving RecommendationKind = "cost_saving"
	RecommendLimit      RecommendationKind = "limit_warning"
)

// Recommendation is an advisory produced from already computed results.
// The figures are raw; rendering them as text is left to the output layer.
//
// Amount holds the unused limit for budget_optimization, the burden
// threshold for cost_saving and the worksheet total for limit_warning.
type Recommendation struct {
	Kind       RecommendationKind `json:"kind"`
	Title      string             `json:"title"`
	ServiceIDs []string           `json:"serviceIds,omitempty"`
	Amount     Won                `json:"amount"`
	Limit      Won                `json:"limit,omitempty"`
	Percent    decimal.Decimal    `json:"percent"`
}

// SimulationResult is the full output of one computation pass
type SimulationResult struct {
	Lines     []LineOutcome `json:"lines"`
	Aggregate Aggregate     `json:"aggregate"`
	Issues    []Issue       `json:"issues,omitempty"`
}

// Results returns the resolved line results in worksheet order
func (r *SimulationResult) Results() []LineResult {
	out := make([]LineResult, 0, len(r.Lines))
	for _, o := range r.Lines {
		if o.Resolved() {
			out = append(out, *o.Result)
		}
	}
	return out
}

// Unresolved returns the lines that failed
func (r *SimulationResult) Unresolved() []LineOutcome {
	var out []LineOutcome
	for _, o := range r.Lines {
		if !o.Resolved() {
			out = append(out, o)
		}
	}
	return out
}

// Report is what export formatters consume: the worksheet, its results and
// the advisories, with no presentation applied
type Report struct {
	CustomerName    string            `json:"customerName"`
	GeneratedAt     time.Time         `json:"generatedAt"`
	TariffYear      int               `json:"tariffYear"`
	Worksheet       Worksheet         `json:"worksheet"`
	Result          *SimulationResult `json:"result"`
	Recommendations []Recommendation  `json:"recommendations,omitempty"`
	Notes           []string          `json:"notes,omitempty"`
}

// SavedSimulation is a simulation stored for later review
type SavedSimulation struct {
	ID                     string    `json:"id"`
	CustomerName           string    `json:"customerName"`
	SavedAt                time.Time `json:"savedAt"`
	Worksheet              Worksheet `json:"worksheet"`
	TotalCost              Won       `json:"totalCost"`
	TotalUserBurden        Won       `json:"totalUserBurden"`
	TotalInsuranceCoverage Won       `json:"totalInsuranceCoverage"`
}
