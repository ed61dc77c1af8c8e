package output

import (
	"bytes"
	"fmt"

	"github.com/homecare-ojt/ltcsim/internal/domain"
	"github.com/xuri/excelize/v2"
)

// XLSXFormatter produces an Excel workbook with a Lines sheet and a Summary sheet
type XLSXFormatter struct{}

func (x XLSXFormatter) Name() string { return "xlsx" }

const (
	linesSheet   = "Lines"
	summarySheet = "Summary"
)

var xlsxLineHeader = []string{
	"#", "Service", "Category", "Quantity", "Day", "Multiplier", "Burden Tier", "Rate",
	"Base", "Overage", "Total", "User Burden", "Insurance", "Error",
}

var xlsxColumnWidths = []float64{5, 24, 12, 10, 18, 11, 14, 8, 12, 12, 12, 14, 14, 30}

func (x XLSXFormatter) Format(report *domain.Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("report has no simulation result")
	}
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(linesSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	// #,##0
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		return nil, fmt.Errorf("failed to create number style: %w", err)
	}

	for col, header := range xlsxLineHeader {
		if err := setCell(f, linesSheet, col+1, 1, header); err != nil {
			return nil, err
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(linesSheet, name, name, xlsxColumnWidths[col]); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}
	if err := f.SetCellStyle(linesSheet, "A1", "N1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}

	row := 2
	for _, o := range report.Result.Lines {
		var values []interface{}
		if o.Resolved() {
			r := o.Result
			rate, _ := r.BurdenRateApplied.Float64()
			mult, _ := r.DayMultiplierApplied.Float64()
			values = []interface{}{
				o.Index + 1, r.ServiceName, CategoryLabel(r.Category), r.Quantity, string(r.DayType), mult,
				r.BurdenTierID, rate,
				int64(r.BaseCost), int64(r.OverageCost), int64(r.TotalCost), int64(r.UserBurden), int64(r.InsuranceCoverage),
				"",
			}
		} else {
			values = []interface{}{
				o.Index + 1, o.Item.ServiceID, "", o.Item.Quantity, string(o.Item.DayType), "",
				o.Item.BurdenTierID, "", "", "", "", "", "", lineError(o),
			}
		}
		for col, v := range values {
			if err := setCell(f, linesSheet, col+1, row, v); err != nil {
				return nil, err
			}
		}
		row++
	}
	if row > 2 {
		if err := f.SetCellStyle(linesSheet, "I2", fmt.Sprintf("M%d", row-1), moneyStyle); err != nil {
			return nil, fmt.Errorf("failed to set number style: %w", err)
		}
	}
	if err := f.SetPanes(linesSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	if err := writeSummarySheet(f, report, headerStyle, moneyStyle); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, report *domain.Report, headerStyle, moneyStyle int) error {
	agg := report.Result.Aggregate
	rows := [][]interface{}{
		{"Customer", report.CustomerName},
		{"Care Grade", report.Worksheet.CareGradeID},
		{"Tariff Year", report.TariffYear},
		{"Total Cost", int64(agg.TotalCost)},
		{"User Burden", int64(agg.TotalUserBurden)},
		{"Insurance Coverage", int64(agg.TotalInsuranceCoverage)},
	}
	if agg.LimitConfigured {
		over, _ := agg.OverLimitPercent.Float64()
		rows = append(rows,
			[]interface{}{"Monthly Limit", int64(agg.MonthlyLimit)},
			[]interface{}{"Remaining Limit", int64(agg.RemainingLimit)},
			[]interface{}{"Over Limit", agg.IsOverMonthlyLimit},
			[]interface{}{"Over Limit %", over},
		)
	}
	for i, r := range rows {
		for col, v := range r {
			if err := setCell(f, summarySheet, col+1, i+1, v); err != nil {
				return err
			}
		}
		if _, ok := r[1].(int64); ok {
			cell, _ := excelize.CoordinatesToCellName(2, i+1)
			if err := f.SetCellStyle(summarySheet, cell, cell, moneyStyle); err != nil {
				return fmt.Errorf("failed to set number style: %w", err)
			}
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", fmt.Sprintf("A%d", len(rows)), headerStyle); err != nil {
		return fmt.Errorf("failed to set header style: %w", err)
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 20); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 20); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	next := len(rows) + 2
	for i, rec := range report.Recommendations {
		if err := setCell(f, summarySheet, 1, next+i, rec.Title); err != nil {
			return err
		}
		if err := setCell(f, summarySheet, 2, next+i, DescribeRecommendation(rec)); err != nil {
			return err
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("failed to set cell %s: %w", cell, err)
	}
	return nil
}
