package rappen

import (
	"fmt"

	"github.com/sfehr/rappen/date"
)

// AccountingSystem combines the transactional data with the rate and
// valuation tables, and serves as the central point of access for the report
// layer. All inputs are immutable snapshots passed in explicitly; every
// figure is recomputed on demand, so concurrent reports need no locking.
type AccountingSystem struct {
	Ledger  *Ledger
	Rates   *RateTable
	Marks   *MarkTable
	journal *Journal
}

// NewAccountingSystem builds the system, expanding (and thereby validating)
// the ledger into its journal.
func NewAccountingSystem(ledger *Ledger, rates *RateTable, marks *MarkTable) (*AccountingSystem, error) {
	if err := ValidateCurrency(rates.Home()); err != nil {
		return nil, fmt.Errorf("invalid home currency: %w", err)
	}
	journal, err := NewJournal(ledger)
	if err != nil {
		return nil, fmt.Errorf("could not expand ledger: %w", err)
	}
	return &AccountingSystem{Ledger: ledger, Rates: rates, Marks: marks, journal: journal}, nil
}

// ReportingCurrency returns the home currency all aggregates are expressed in.
func (as *AccountingSystem) ReportingCurrency() string { return as.Rates.Home() }

// SnapshotOn returns a point-in-time view of the ledger.
func (as *AccountingSystem) SnapshotOn(on date.Date) *Snapshot {
	return NewSnapshot(as.journal, as.Rates, as.Marks, on)
}

// MarketValue returns the home-currency value of an account as of a date.
func (as *AccountingSystem) MarketValue(account int64, on date.Date) Money {
	return as.SnapshotOn(on).MarketValue(account)
}

// NewReview returns a period analysis between the two boundary snapshots.
func (as *AccountingSystem) NewReview(period date.Range) *Review {
	return NewReview(as.journal, as.Rates, as.Marks, period)
}

// Decompose computes the period gain/loss decomposition for a set of accounts.
func (as *AccountingSystem) Decompose(accounts []int64, period date.Range) *GainReport {
	return as.NewReview(period).Decompose(accounts)
}

// NetWorthPoint is one dated total in the net-worth series.
type NetWorthPoint struct {
	On    date.Date
	Value Money
}

// NetWorthReport is a monthly series of the total value of all accounts shown
// in the balance.
type NetWorthReport struct {
	Currency string
	Points   []NetWorthPoint
}

// NetWorthSeries sums the market value of all show-in-balance accounts at
// each calendar month boundary in the range, one data point per month.
func (as *AccountingSystem) NetWorthSeries(period date.Range) *NetWorthReport {
	report := &NetWorthReport{Currency: as.ReportingCurrency()}
	for on := range period.Ends(date.Monthly) {
		report.Points = append(report.Points, NetWorthPoint{
			On:    on,
			Value: as.SnapshotOn(on).NetWorth(),
		})
	}
	return report
}

// accountFlows converts journal flows to solver cash points, capital invested
// negative. In native currency when home is false, converted at each flow's
// own date otherwise.
func (as *AccountingSystem) accountFlows(account int64, after, until date.Date, home bool) []CashPoint {
	var points []CashPoint
	for _, f := range as.journal.Flows(account, after, until) {
		amount := f.Amount
		if home {
			rate, ok := as.Rates.RateAsOf(amount.Currency(), f.On)
			if !ok {
				continue
			}
			amount = amount.convert(rate, as.Rates.Home())
		}
		points = append(points, CashPoint{On: f.On, Value: -amount.AsFloat()})
	}
	return points
}

// valueHistory samples an account's value at every date where something is
// known to change: the range boundaries, the account's valuation marks, and
// its flow dates.
func (as *AccountingSystem) valueHistory(account int64, period date.Range, home bool) *date.History[float64] {
	sample := func(on date.Date) float64 {
		s := as.SnapshotOn(on)
		if home {
			return s.MarketValue(account).AsFloat()
		}
		return s.NativeValue(account).AsFloat()
	}
	var values date.History[float64]
	values.Append(period.From, sample(period.From))
	values.Append(period.To, sample(period.To))
	if h := as.Marks.History(account); h != nil {
		for on := range h.Values() {
			if period.Contains(on) {
				values.Append(on, sample(on))
			}
		}
	}
	for _, f := range as.journal.Flows(account, period.From, period.To) {
		values.Append(f.On, sample(f.On))
	}
	return &values
}

// AccountXIRR computes the money-weighted annualized return of an investment
// account since inception, in its native currency. The terminal valuation is
// appended as the final synthetic flow. It reports false when undetermined.
func (as *AccountingSystem) AccountXIRR(account int64, on date.Date) (float64, bool) {
	flows := as.accountFlows(account, date.Date{}, on, false)
	if len(flows) == 0 {
		return 0, false
	}
	terminal := as.SnapshotOn(on).NativeValue(account)
	flows = append(flows, CashPoint{On: on, Value: terminal.AsFloat()})
	return XIRR(flows)
}

// AccountTWR computes the time-weighted return of an investment account over
// a period, in its native currency.
func (as *AccountingSystem) AccountTWR(account int64, period date.Range) (float64, bool) {
	values := as.valueHistory(account, period, false)
	flows := as.accountFlows(account, period.From, period.To, false)
	// Solvers want capital added positive for boundary adjustment.
	for i := range flows {
		flows[i].Value = -flows[i].Value
	}
	return TWR(values, flows)
}

// PortfolioXIRR pools all investment accounts' home-currency flows and
// terminal values into one series and solves it as a whole.
func (as *AccountingSystem) PortfolioXIRR(on date.Date) (float64, bool) {
	var flows []CashPoint
	terminal := 0.0
	for a := range as.Ledger.InvestmentAccounts() {
		flows = append(flows, as.accountFlows(a.ID, date.Date{}, on, true)...)
		terminal += as.SnapshotOn(on).MarketValue(a.ID).AsFloat()
	}
	if len(flows) == 0 {
		return 0, false
	}
	flows = append(flows, CashPoint{On: on, Value: terminal})
	return XIRR(flows)
}

// PortfolioTWR pools all investment accounts' home-currency value histories
// and flows into one series before chaining.
func (as *AccountingSystem) PortfolioTWR(period date.Range) (float64, bool) {
	sample := func(on date.Date) float64 {
		s := as.SnapshotOn(on)
		total := 0.0
		for a := range as.Ledger.InvestmentAccounts() {
			total += s.MarketValue(a.ID).AsFloat()
		}
		return total
	}
	var values date.History[float64]
	values.Append(period.From, sample(period.From))
	values.Append(period.To, sample(period.To))
	var flows []CashPoint
	for a := range as.Ledger.InvestmentAccounts() {
		if h := as.Marks.History(a.ID); h != nil {
			for on := range h.Values() {
				if period.Contains(on) {
					values.Append(on, sample(on))
				}
			}
		}
		for _, f := range as.accountFlows(a.ID, period.From, period.To, true) {
			flows = append(flows, CashPoint{On: f.On, Value: -f.Value})
			values.Append(f.On, sample(f.On))
		}
	}
	return TWR(&values, flows)
}
