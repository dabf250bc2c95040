package rappen

import (
	"fmt"

	"github.com/sfehr/rappen/date"
)

// TransactionType identifies the kind of a ledger entry.
type TransactionType int

const (
	// Income increases the balance of its account.
	Income TransactionType = iota
	// Expense decreases the balance of its account.
	Expense
	// Transfer moves value from a source account to a destination account.
	Transfer
)

func (t TransactionType) String() string {
	switch t {
	case Income:
		return "income"
	case Expense:
		return "expense"
	case Transfer:
		return "transfer"
	default:
		return "unknown"
	}
}

// ParseTransactionType parses a string into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch s {
	case "income":
		return Income, nil
	case "expense":
		return Expense, nil
	case "transfer":
		return Transfer, nil
	default:
		return 0, fmt.Errorf("unknown transaction type: %q", s)
	}
}

// Transaction is an immutable ledger entry. Amounts are non negative; the sign
// of their effect is given by the type. Replay always re-derives state from
// the full set of entries, so edits mean appending corrected facts.
type Transaction struct {
	ID       int64
	Date     date.Date
	Type     TransactionType
	Amount   Money    // in the source account's native currency
	Quantity Quantity // units transacted, investment accounts only
	From     int64    // source account
	To       int64    // destination account, Transfer only
	ToAmount Money    // destination-side amount, defaults to Amount
	Linked   int64    // investment account a dividend or fee is attributable to
	Memo     string
}

// NewIncome records money received on an account.
func NewIncome(on date.Date, account int64, amount Money) Transaction {
	return Transaction{Date: on, Type: Income, From: account, Amount: amount}
}

// NewExpense records money spent from an account.
func NewExpense(on date.Date, account int64, amount Money) Transaction {
	return Transaction{Date: on, Type: Expense, From: account, Amount: amount}
}

// NewTransfer records value moved between two accounts.
func NewTransfer(on date.Date, from, to int64, amount Money) Transaction {
	return Transaction{Date: on, Type: Transfer, From: from, To: to, Amount: amount}
}

// WithQuantity returns a copy with the number of units transacted.
func (t Transaction) WithQuantity(q Quantity) Transaction {
	t.Quantity = q
	return t
}

// WithToAmount returns a copy with an explicit destination-side amount, for
// transfers between accounts of different currencies.
func (t Transaction) WithToAmount(m Money) Transaction {
	t.ToAmount = m
	return t
}

// WithLinked returns a copy attributing this entry to an investment account.
func (t Transaction) WithLinked(account int64) Transaction {
	t.Linked = account
	return t
}

// destinationAmount is the amount credited to the destination of a transfer.
func (t Transaction) destinationAmount() Money {
	if t.ToAmount.IsZero() {
		return t.Amount
	}
	return t.ToAmount
}

// compare orders transactions by (date, id), the deterministic replay order.
func (t Transaction) compare(u Transaction) int {
	if c := t.Date.Compare(u.Date); c != 0 {
		return c
	}
	switch {
	case t.ID < u.ID:
		return -1
	case t.ID > u.ID:
		return 1
	default:
		return 0
	}
}
