package rappen

import (
	"github.com/sfehr/rappen/date"
)

// noiseFloor is the gain/loss attribution threshold in home-currency units.
// Gains strictly inside (-noiseFloor, +noiseFloor) are rounding noise and are
// dropped from the winners/losers breakdown.
const noiseFloor = 0.001

// Review represents an analysis of the ledger over a period. It compares two
// snapshots, one at the period start and one at the period end, and isolates
// market performance from capital movement.
type Review struct {
	start *Snapshot // on period.From (end of day)
	end   *Snapshot // on period.To
}

// NewReview creates a review over the given period.
func NewReview(journal *Journal, rates *RateTable, marks *MarkTable, period date.Range) *Review {
	return &Review{
		start: NewSnapshot(journal, rates, marks, period.From),
		end:   NewSnapshot(journal, rates, marks, period.To),
	}
}

// Start returns the snapshot at the beginning of the review period.
func (r *Review) Start() *Snapshot { return r.start }

// End returns the snapshot at the end of the review period.
func (r *Review) End() *Snapshot { return r.end }

// Range returns the period of the review.
func (r *Review) Range() date.Range {
	return date.Range{From: r.start.On(), To: r.end.On()}
}

// AccountGain decomposes one account's value change over a period into
// capital movement and pure market performance, in the home currency.
type AccountGain struct {
	Account    int64
	Name       string
	StartValue Money
	EndValue   Money
	NetFlow    Money // capital added positive, each flow converted at its own date
	Income     Money // attributed dividends, converted at their own dates
	Fees       Money // attributed fees, converted at their own dates
	Gain       Money // (end - start) - net flow: value change not explained by capital
}

// homeSum converts each dated amount at its own date's rate and sums.
func (r *Review) homeSum(flows []Flow) Money {
	home := r.end.rates.Home()
	total := M(0, home)
	for _, f := range flows {
		rate, ok := r.end.rates.RateAsOf(f.Amount.Currency(), f.On)
		if !ok {
			continue
		}
		total = total.Add(f.Amount.convert(rate, home))
	}
	return total
}

// Gain decomposes the period value change of a single account.
//
// Flows, income and fees are taken strictly within the period: after the start
// snapshot's day, up to and including the end day. The identity
// StartValue + NetFlow + Gain == EndValue holds by construction.
func (r *Review) Gain(account int64) AccountGain {
	a, _ := r.end.journal.ledger.Account(account)
	j := r.end.journal
	after, until := r.start.On(), r.end.On()

	g := AccountGain{
		Account:    account,
		Name:       a.Name,
		StartValue: r.start.MarketValue(account),
		EndValue:   r.end.MarketValue(account),
		NetFlow:    r.homeSum(j.Flows(account, after, until)),
		Income:     r.homeSum(j.AttributedIncome(account, after, until)),
		Fees:       r.homeSum(j.AttributedFees(account, after, until)),
	}
	g.Gain = g.EndValue.Sub(g.StartValue).Sub(g.NetFlow)
	return g
}

// GainReport is the result of decomposing a set of accounts over a period.
type GainReport struct {
	Range    date.Range
	Currency string
	Accounts []AccountGain
	// Winners and Losers bucket per-account gains by name, past the noise floor.
	Winners map[string]Money
	Losers  map[string]Money
	// Aggregates over all requested accounts.
	StartValue Money
	EndValue   Money
	NetFlow    Money
	Income     Money
	Fees       Money
	Net        Money // sum of winners plus losers
}

// Decompose computes the period gain/loss decomposition for a set of accounts.
func (r *Review) Decompose(accounts []int64) *GainReport {
	home := r.end.rates.Home()
	report := &GainReport{
		Range:      r.Range(),
		Currency:   home,
		Winners:    make(map[string]Money),
		Losers:     make(map[string]Money),
		StartValue: M(0, home),
		EndValue:   M(0, home),
		NetFlow:    M(0, home),
		Income:     M(0, home),
		Fees:       M(0, home),
		Net:        M(0, home),
	}
	for _, id := range accounts {
		g := r.Gain(id)
		report.Accounts = append(report.Accounts, g)
		report.StartValue = report.StartValue.Add(g.StartValue)
		report.EndValue = report.EndValue.Add(g.EndValue)
		report.NetFlow = report.NetFlow.Add(g.NetFlow)
		report.Income = report.Income.Add(g.Income)
		report.Fees = report.Fees.Add(g.Fees)

		switch gain := g.Gain.AsFloat(); {
		case gain >= noiseFloor:
			report.Winners[g.Name] = g.Gain
			report.Net = report.Net.Add(g.Gain)
		case gain <= -noiseFloor:
			report.Losers[g.Name] = g.Gain
			report.Net = report.Net.Add(g.Gain)
		}
	}
	return report
}
