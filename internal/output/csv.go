package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/homecare-ojt/ltcsim/internal/domain"
)

// CSVFormatter writes one row per worksheet line followed by a TOTAL row
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

var csvHeader = []string{
	"Line", "ServiceID", "ServiceName", "Category", "Quantity", "DayType", "DayMultiplier",
	"BurdenTier", "BurdenRate", "UnitPrice", "BaseCost", "OverageCost", "TotalCost",
	"UserBurden", "InsuranceCoverage", "OverAllowance", "Error",
}

func (c CSVFormatter) Format(report *domain.Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("report has no simulation result")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, o := range report.Result.Lines {
		var row []string
		if o.Resolved() {
			r := o.Result
			row = []string{
				strconv.Itoa(o.Index + 1),
				r.ServiceID,
				r.ServiceName,
				string(r.Category),
				strconv.Itoa(r.Quantity),
				string(r.DayType),
				r.DayMultiplierApplied.String(),
				r.BurdenTierID,
				r.BurdenRateApplied.String(),
				wonCell(r.UnitPrice),
				wonCell(r.BaseCost),
				wonCell(r.OverageCost),
				wonCell(r.TotalCost),
				wonCell(r.UserBurden),
				wonCell(r.InsuranceCoverage),
				strconv.FormatBool(r.IsOverLimit),
				"",
			}
		} else {
			row = []string{
				strconv.Itoa(o.Index + 1),
				o.Item.ServiceID, "", "",
				strconv.Itoa(o.Item.Quantity),
				string(o.Item.DayType), "",
				o.Item.BurdenTierID, "",
				"", "", "", "", "", "", "",
				lineError(o),
			}
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	agg := report.Result.Aggregate
	total := make([]string, len(csvHeader))
	total[0] = "TOTAL"
	total[12] = wonCell(agg.TotalCost)
	total[13] = wonCell(agg.TotalUserBurden)
	total[14] = wonCell(agg.TotalInsuranceCoverage)
	if agg.LimitConfigured {
		total[15] = strconv.FormatBool(agg.IsOverMonthlyLimit)
	}
	if err := w.Write(total); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func wonCell(w domain.Won) string {
	return strconv.FormatInt(int64(w), 10)
}
