package rappen

import (
	"iter"
	"maps"
	"slices"

	"github.com/sfehr/rappen/date"
)

// Ledger holds the account registry and the append-only set of transactions.
//
// Transactions are kept sorted by (date, id) so that replay order is a
// deterministic total order regardless of insertion order.
type Ledger struct {
	accounts     map[int64]Account
	transactions []Transaction
	nextID       int64
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{accounts: make(map[int64]Account), nextID: 1}
}

// DeclareAccount registers an account. Redeclaring an existing id is an error.
func (l *Ledger) DeclareAccount(a Account) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if _, exists := l.accounts[a.ID]; exists {
		return errAccountRedeclared(a.ID)
	}
	l.accounts[a.ID] = a
	return nil
}

// Account returns the account declared with this id.
func (l *Ledger) Account(id int64) (Account, bool) {
	a, ok := l.accounts[id]
	return a, ok
}

// Accounts iterates over all declared accounts in id order.
func (l *Ledger) Accounts() iter.Seq[Account] {
	return func(yield func(Account) bool) {
		ids := slices.Collect(maps.Keys(l.accounts))
		slices.Sort(ids)
		for _, id := range ids {
			if !yield(l.accounts[id]) {
				return
			}
		}
	}
}

// InvestmentAccounts iterates over declared investment accounts in id order.
func (l *Ledger) InvestmentAccounts() iter.Seq[Account] {
	return func(yield func(Account) bool) {
		for a := range l.Accounts() {
			if !a.IsInvestment {
				continue
			}
			if !yield(a) {
				return
			}
		}
	}
}

// Append adds transactions to the ledger and maintains the (date, id) order.
// A transaction with a zero id is assigned the next free id.
func (l *Ledger) Append(txs ...Transaction) {
	for _, tx := range txs {
		if tx.ID == 0 {
			tx.ID = l.nextID
		}
		if tx.ID >= l.nextID {
			l.nextID = tx.ID + 1
		}
		l.transactions = append(l.transactions, tx)
	}
	l.sort()
}

// sort restores the (date, id) total order. The sort is stable, but ids make
// the order unique anyway.
func (l *Ledger) sort() {
	slices.SortStableFunc(l.transactions, Transaction.compare)
}

// Transactions returns an iterator over all transactions in replay order.
func (l *Ledger) Transactions() iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			if !yield(i, tx) {
				return
			}
		}
	}
}

// ByAccount returns a predicate matching transactions that touch an account.
func ByAccount(id int64) func(Transaction) bool {
	return func(tx Transaction) bool {
		return tx.From == id || (tx.Type == Transfer && tx.To == id) || tx.Linked == id
	}
}

// OldestTransactionDate returns the date of the earliest transaction,
// or the zero date when the ledger is empty.
func (l *Ledger) OldestTransactionDate() date.Date {
	if len(l.transactions) == 0 {
		return date.Date{}
	}
	return l.transactions[0].Date
}

// NewestTransactionDate returns the date of the latest transaction,
// or the zero date when the ledger is empty.
func (l *Ledger) NewestTransactionDate() date.Date {
	if len(l.transactions) == 0 {
		return date.Date{}
	}
	return l.transactions[len(l.transactions)-1].Date
}
