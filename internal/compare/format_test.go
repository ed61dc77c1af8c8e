package compare

import (
	"encoding/csv"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

func testSet() *ComparisonSet {
	return &ComparisonSet{
		BaseName:      "base",
		WorksheetPath: "worksheet.yaml",
		BaseResult: &VariantResult{
			Name: "base", TotalCost: 1200000, UserBurden: 180000, InsuranceCoverage: 1020000,
			LimitConfigured: true, MonthlyLimit: 1550000,
		},
		AlternativeResults: []VariantResult{
			{
				Name: "tier_reduced_60", Description: "Apply the 60% 감경 tier",
				TotalCost: 1200000, UserBurden: 72000, InsuranceCoverage: 1128000,
				LimitConfigured: true, MonthlyLimit: 1550000,
				BurdenDiffFromBase: -108000, BurdenPctFromBase: decimal.RequireFromString("-60"),
			},
		},
		Recommendations: []string{"Lowest Burden: tier_reduced_60 saves 108,000원 per month out of pocket"},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	out := (&TableFormatter{}).Format(testSet())

	for _, want := range []string{
		"CARE PLAN COMPARISON",
		"Base: base",
		"Worksheet: worksheet.yaml",
		"base (base)",
		"1,200,000",
		"tier_reduced_60",
		"User Burden:  -108,000원 (-60.0%)",
		"RECOMMENDATIONS",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestTableFormatter_Format_EmptyAlternatives(t *testing.T) {
	set := testSet()
	set.AlternativeResults = nil
	set.Recommendations = nil

	out := (&TableFormatter{}).Format(set)
	if strings.Contains(out, "COMPARISON TO BASE") {
		t.Error("Should not have a comparison section without alternatives")
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	out := (&TableFormatter{}).FormatCompact(testSet())
	if out != "Base: base | tier_reduced_60: -108,000원" {
		t.Errorf("Unexpected compact output: %s", out)
	}
}

func TestTableFormatter_truncate(t *testing.T) {
	tf := &TableFormatter{}
	if got := tf.truncate("short", 10); got != "short" {
		t.Errorf("Expected unchanged string, got %s", got)
	}
	if got := tf.truncate("방문요양서비스비교", 6); got != "방문요..." {
		t.Errorf("Expected rune-safe truncation, got %s", got)
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	out, err := (&JSONFormatter{Pretty: true}).Format(testSet())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	var decoded ComparisonSet
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if decoded.AlternativeResults[0].UserBurden != 72000 {
		t.Errorf("Expected burden 72000, got %d", decoded.AlternativeResults[0].UserBurden)
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(testSet())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected header plus two rows, got %d", len(records))
	}
	if records[1][1] != "base" || records[2][1] != "alternative" {
		t.Errorf("Unexpected row types: %v / %v", records[1], records[2])
	}
	if records[2][7] != "-108000" || records[2][8] != "-60.0" {
		t.Errorf("Unexpected deltas: %v", records[2])
	}
}
