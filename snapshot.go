package rappen

import (
	"github.com/sfehr/rappen/date"
)

// Snapshot represents a view of the ledger at a single point in time. It is a
// stateless calculator that derives every value on the fly from the journal
// and the rate/mark tables, so snapshots for different dates can be used from
// parallel goroutines without locking.
type Snapshot struct {
	journal *Journal
	rates   *RateTable
	marks   *MarkTable
	on      date.Date
}

// NewSnapshot creates a snapshot of the ledger on a given date.
func NewSnapshot(journal *Journal, rates *RateTable, marks *MarkTable, on date.Date) *Snapshot {
	return &Snapshot{journal: journal, rates: rates, marks: marks, on: on}
}

// On returns the date of the snapshot.
func (s *Snapshot) On() date.Date { return s.on }

// Holding returns the replayed (balance, quantity) state of an account.
func (s *Snapshot) Holding(account int64) HoldingState {
	return s.journal.StateAt(account, s.on)
}

// ExchangeRate returns the worth of one unit of a currency in the home
// currency on the snapshot date.
func (s *Snapshot) ExchangeRate(currency string) (float64, bool) {
	return s.rates.RateAsOf(currency, s.on)
}

// Convert converts a monetary amount into the home currency at the snapshot
// date's rate. An amount in a currency with no rate history converts to zero;
// missing data degrades, it never fails.
func (s *Snapshot) Convert(amount Money) Money {
	home := s.rates.Home()
	if amount.Currency() == home {
		return M(amount.value, home)
	}
	rate, ok := s.ExchangeRate(amount.Currency())
	if !ok {
		return M(0, home)
	}
	return amount.convert(rate, home)
}

// NativeValue returns the value of an account in its native currency,
// according to its valuation strategy:
//
//   - PricePerUnit: quantity times the unit price as of the snapshot date.
//   - TotalValue: the valuation mark as of the snapshot date.
//   - NoValuation: the replayed balance.
//
// When no mark exists at all, both mark-based strategies fall back to the
// replayed balance as a cost proxy. The result is zero only for an account
// with no holding and no marks.
func (s *Snapshot) NativeValue(account int64) Money {
	a, ok := s.journal.ledger.Account(account)
	if !ok {
		return Money{}
	}
	state := s.Holding(account)
	switch a.Strategy {
	case PricePerUnit:
		price, ok := s.marks.MarkAsOf(account, s.on)
		if !ok {
			return state.Balance
		}
		return M(price, a.Currency).Mul(state.Quantity)
	case TotalValue:
		value, ok := s.marks.MarkAsOf(account, s.on)
		if !ok {
			return state.Balance
		}
		return M(value, a.Currency)
	default:
		return state.Balance
	}
}

// MarketValue returns the value of an account in the home currency as of the
// snapshot date.
func (s *Snapshot) MarketValue(account int64) Money {
	return s.Convert(s.NativeValue(account))
}

// NetWorth sums the market value of every account shown in the balance.
func (s *Snapshot) NetWorth() Money {
	total := M(0, s.rates.Home())
	for a := range s.journal.ledger.Accounts() {
		if !a.ShowInBalance {
			continue
		}
		total = total.Add(s.MarketValue(a.ID))
	}
	return total
}

// CostBasis returns the net capital contributed to an investment account since
// inception, in the home currency, each flow converted at its own date's rate.
func (s *Snapshot) CostBasis(account int64) Money {
	total := M(0, s.rates.Home())
	for _, f := range s.journal.Flows(account, date.Date{}, s.on) {
		rate, ok := s.rates.RateAsOf(f.Amount.Currency(), f.On)
		if !ok {
			continue
		}
		total = total.Add(f.Amount.convert(rate, s.rates.Home()))
	}
	return total
}
