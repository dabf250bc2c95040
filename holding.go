package rappen

import (
	"github.com/sfehr/rappen/date"
)

// HoldingRow is the valuation of one account in a holding report.
type HoldingRow struct {
	Account     int64
	Name        string
	Currency    string
	Quantity    Quantity
	NativeValue Money
	MarketValue Money // in the home currency
}

// HoldingReport lists every account shown in the balance with its valuation
// as of a single date.
type HoldingReport struct {
	On       date.Date
	Currency string
	Rows     []HoldingRow
	Total    Money
}

// NewHoldingReport values all show-in-balance accounts on the given date.
func (as *AccountingSystem) NewHoldingReport(on date.Date) *HoldingReport {
	s := as.SnapshotOn(on)
	report := &HoldingReport{
		On:       on,
		Currency: as.ReportingCurrency(),
		Total:    M(0, as.ReportingCurrency()),
	}
	for a := range as.Ledger.Accounts() {
		if !a.ShowInBalance {
			continue
		}
		row := HoldingRow{
			Account:     a.ID,
			Name:        a.Name,
			Currency:    a.Currency,
			Quantity:    s.Holding(a.ID).Quantity,
			NativeValue: s.NativeValue(a.ID),
			MarketValue: s.MarketValue(a.ID),
		}
		report.Rows = append(report.Rows, row)
		report.Total = report.Total.Add(row.MarketValue)
	}
	return report
}
