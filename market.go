package rappen

import (
	"iter"
	"maps"
	"slices"

	"github.com/sfehr/rappen/date"
)

// TieBreak decides which of two marks recorded for the same key and day wins.
//
// The historical behavior of ledger tools is that the later-inserted mark
// silently replaces the earlier one; that stays the default, but it is an
// explicit configuration here rather than an insertion-order artifact.
type TieBreak int

const (
	// LastWins keeps the most recently recorded mark.
	LastWins TieBreak = iota
	// PreferMax keeps the largest mark.
	PreferMax
)

func (t TieBreak) resolve(old float64, exists bool, v float64) float64 {
	if exists && t == PreferMax && old > v {
		return old
	}
	return v
}

// RateTable is an immutable-once-loaded snapshot of exchange rates to the home
// currency, one sorted series per foreign currency. The home currency itself
// never needs an observation, it resolves to 1.0 without lookup.
type RateTable struct {
	home  string
	tie   TieBreak
	rates map[string]*date.History[float64]
}

// NewRateTable creates an empty rate table reporting in the given home currency.
func NewRateTable(home string) *RateTable {
	return &RateTable{home: home, rates: make(map[string]*date.History[float64])}
}

// Home returns the home (reporting) currency.
func (t *RateTable) Home() string { return t.home }

// SetTieBreak configures the same-day duplicate policy.
func (t *RateTable) SetTieBreak(tb TieBreak) { t.tie = tb }

// Add records the worth of one unit of a foreign currency in the home currency
// on a given date.
func (t *RateTable) Add(on date.Date, currency string, rate float64) {
	h, ok := t.rates[currency]
	if !ok {
		h = &date.History[float64]{}
		t.rates[currency] = h
	}
	h.Update(on, func(old float64, exists bool) float64 {
		return t.tie.resolve(old, exists, rate)
	})
}

// RateAsOf returns the most recent rate on or before the query date. A query
// before any history returns the earliest known rate rather than failing;
// only a currency with no observations at all reports false.
func (t *RateTable) RateAsOf(currency string, on date.Date) (float64, bool) {
	if currency == t.home {
		return 1.0, true
	}
	h, ok := t.rates[currency]
	if !ok || h.Len() == 0 {
		return 0, false
	}
	if rate, ok := h.ValueAsOf(on); ok {
		return rate, true
	}
	_, earliest := h.First()
	return earliest, true
}

// Currencies iterates over all foreign currencies with observations, sorted.
func (t *RateTable) Currencies() iter.Seq[string] {
	return func(yield func(string) bool) {
		currencies := slices.Collect(maps.Keys(t.rates))
		slices.Sort(currencies)
		for _, c := range currencies {
			if !yield(c) {
				return
			}
		}
	}
}

// History returns the rate series of a currency, or nil when unknown.
func (t *RateTable) History(currency string) *date.History[float64] {
	return t.rates[currency]
}

// MarkTable is a snapshot of valuation marks, one sorted series per account.
// Whether a mark is a total value or a unit price depends on the account's
// valuation strategy; the table only stores and resolves observations.
type MarkTable struct {
	tie   TieBreak
	marks map[int64]*date.History[float64]
}

// NewMarkTable creates an empty valuation mark table.
func NewMarkTable() *MarkTable {
	return &MarkTable{marks: make(map[int64]*date.History[float64])}
}

// SetTieBreak configures the same-day duplicate policy.
func (t *MarkTable) SetTieBreak(tb TieBreak) { t.tie = tb }

// Add records a valuation mark for an account on a given date.
func (t *MarkTable) Add(on date.Date, account int64, value float64) {
	h, ok := t.marks[account]
	if !ok {
		h = &date.History[float64]{}
		t.marks[account] = h
	}
	h.Update(on, func(old float64, exists bool) float64 {
		return t.tie.resolve(old, exists, value)
	})
}

// MarkAsOf returns the most recent mark on or before the query date, falling
// back to the earliest mark for queries before any history. An account with no
// marks at all reports false.
func (t *MarkTable) MarkAsOf(account int64, on date.Date) (float64, bool) {
	h, ok := t.marks[account]
	if !ok || h.Len() == 0 {
		return 0, false
	}
	if v, ok := h.ValueAsOf(on); ok {
		return v, true
	}
	_, earliest := h.First()
	return earliest, true
}

// HasMarks reports whether any mark exists for the account.
func (t *MarkTable) HasMarks(account int64) bool {
	h, ok := t.marks[account]
	return ok && h.Len() > 0
}

// MarkedAccounts iterates over all accounts with marks, in id order.
func (t *MarkTable) MarkedAccounts() iter.Seq[int64] {
	return func(yield func(int64) bool) {
		ids := slices.Collect(maps.Keys(t.marks))
		slices.Sort(ids)
		for _, id := range ids {
			if !yield(id) {
				return
			}
		}
	}
}

// History returns the mark series of an account, or nil when unknown.
func (t *MarkTable) History(account int64) *date.History[float64] {
	return t.marks[account]
}
