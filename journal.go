package rappen

import (
	"fmt"
	"iter"

	"github.com/sfehr/rappen/date"
)

// event represents a single, atomic operation derived from a ledger entry.
// It is the lowest-level, immutable fact from which all states are derived.
type event interface {
	when() date.Date
}

// balanceChange moves the holding of one account by a signed amount/quantity.
// Both halves of a transfer become two balanceChange events appended in one
// step, so a replay either sees the complete transfer or none of it.
type balanceChange struct {
	on       date.Date
	tx       int64 // source transaction id
	account  int64
	amount   Money    // signed, in the account's native currency
	quantity Quantity // signed
	flow     bool     // true when this is external capital crossing an investment boundary
}

func (e balanceChange) when() date.Date { return e.on }

// attributeIncome records a dividend credited elsewhere but attributable to an
// investment account. It does not change any balance.
type attributeIncome struct {
	on      date.Date
	tx      int64
	account int64 // the linked investment account
	amount  Money
}

func (e attributeIncome) when() date.Date { return e.on }

// attributeFee records a fee paid elsewhere but attributable to an investment
// account. It does not change any balance.
type attributeFee struct {
	on      date.Date
	tx      int64
	account int64
	amount  Money
}

func (e attributeFee) when() date.Date { return e.on }

// Journal holds the ledger's transactions expanded into atomic events, in
// (date, transaction id) order.
type Journal struct {
	ledger *Ledger
	events []event
}

// NewJournal expands a ledger of high-level transactions into a journal of
// low-level atomic events. Every transaction must validate against the
// ledger's account registry.
func NewJournal(ledger *Ledger) (*Journal, error) {
	j := &Journal{
		ledger: ledger,
		events: make([]event, 0, len(ledger.transactions)*2),
	}
	for _, raw := range ledger.Transactions() {
		tx, err := ledger.Validate(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s transaction %d on %s: %w", raw.Type, raw.ID, raw.Date, err)
		}
		switch tx.Type {
		case Income:
			j.events = append(j.events, balanceChange{
				on: tx.Date, tx: tx.ID, account: tx.From,
				amount: tx.Amount, quantity: tx.Quantity,
			})
			if tx.Linked != 0 {
				j.events = append(j.events, attributeIncome{on: tx.Date, tx: tx.ID, account: tx.Linked, amount: tx.Amount})
			}
		case Expense:
			j.events = append(j.events, balanceChange{
				on: tx.Date, tx: tx.ID, account: tx.From,
				amount: tx.Amount.Neg(), quantity: tx.Quantity.Neg(),
			})
			if tx.Linked != 0 {
				j.events = append(j.events, attributeFee{on: tx.Date, tx: tx.ID, account: tx.Linked, amount: tx.Amount})
			}
		case Transfer:
			from, _ := ledger.Account(tx.From)
			to, _ := ledger.Account(tx.To)
			// Both halves in a single append: all-or-nothing, even when the
			// source and destination are the same account.
			j.events = append(j.events,
				balanceChange{
					on: tx.Date, tx: tx.ID, account: tx.From,
					amount: tx.Amount.Neg(), quantity: tx.Quantity.Neg(),
					flow: from.IsInvestment,
				},
				balanceChange{
					on: tx.Date, tx: tx.ID, account: tx.To,
					amount: tx.destinationAmount(), quantity: tx.Quantity,
					flow: to.IsInvestment,
				},
			)
		}
	}
	// The ledger is sorted by (date, id) and expansion preserves order, so the
	// events are already chronological.
	return j, nil
}

// Ledger returns the ledger this journal was built from.
func (j *Journal) Ledger() *Ledger { return j.ledger }

// upTo returns an iterator over events dated on or before 'on'.
func (j *Journal) upTo(on date.Date) iter.Seq[event] {
	return func(yield func(event) bool) {
		for _, e := range j.events {
			if e.when().After(on) {
				break
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Delta is one signed balance/quantity contribution of a ledger entry to an
// account, in replay order.
type Delta struct {
	On       date.Date
	TxID     int64
	Amount   Money
	Quantity Quantity
}

// Deltas returns the ordered-by-(date, id) sequence of balance/quantity deltas
// for one account.
func (j *Journal) Deltas(account int64) iter.Seq[Delta] {
	return func(yield func(Delta) bool) {
		for _, e := range j.events {
			v, ok := e.(balanceChange)
			if !ok || v.account != account {
				continue
			}
			if !yield(Delta{On: v.on, TxID: v.tx, Amount: v.amount, Quantity: v.quantity}) {
				return
			}
		}
	}
}

// HoldingState is the derived (balance, quantity) pair for an account as of a
// specific date.
type HoldingState struct {
	Balance  Money
	Quantity Quantity
}

// StateAt replays all entries dated on or before 'on' and returns the
// resulting holding state of the account. Replaying is order-independent:
// any permutation of the same ledger yields the same state.
func (j *Journal) StateAt(account int64, on date.Date) HoldingState {
	a, _ := j.ledger.Account(account)
	state := HoldingState{Balance: M(0, a.Currency)}
	for e := range j.upTo(on) {
		if v, ok := e.(balanceChange); ok && v.account == account {
			state.Balance = state.Balance.Add(v.amount)
			state.Quantity = state.Quantity.Add(v.quantity)
		}
	}
	return state
}

// Flow is a dated amount of external capital, capital added positive.
type Flow struct {
	On     date.Date
	Amount Money
}

// Flows returns the capital moved into or out of an investment account via
// transfers, with dates in (after, until]. Income and expense entries are not
// capital flows, they affect operating balances or are attributed separately.
func (j *Journal) Flows(account int64, after, until date.Date) []Flow {
	var flows []Flow
	for e := range j.upTo(until) {
		v, ok := e.(balanceChange)
		if !ok || v.account != account || !v.flow {
			continue
		}
		if !after.IsZero() && !v.on.After(after) {
			continue
		}
		flows = append(flows, Flow{On: v.on, Amount: v.amount})
	}
	return flows
}

// AttributedIncome returns the dividends attributable to an investment account
// with dates in (after, until].
func (j *Journal) AttributedIncome(account int64, after, until date.Date) []Flow {
	var flows []Flow
	for e := range j.upTo(until) {
		v, ok := e.(attributeIncome)
		if !ok || v.account != account {
			continue
		}
		if !after.IsZero() && !v.on.After(after) {
			continue
		}
		flows = append(flows, Flow{On: v.on, Amount: v.amount})
	}
	return flows
}

// AttributedFees returns the fees attributable to an investment account with
// dates in (after, until].
func (j *Journal) AttributedFees(account int64, after, until date.Date) []Flow {
	var flows []Flow
	for e := range j.upTo(until) {
		v, ok := e.(attributeFee)
		if !ok || v.account != account {
			continue
		}
		if !after.IsZero() && !v.on.After(after) {
			continue
		}
		flows = append(flows, Flow{On: v.on, Amount: v.amount})
	}
	return flows
}
