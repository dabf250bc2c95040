package rappen

import "fmt"

// Structural inconsistencies are caller-input errors: they are rejected here,
// before a transaction reaches the engine. Valuation and metric code assumes
// validated input and never checks referential integrity again.

func errAccountRedeclared(id int64) error {
	return fmt.Errorf("account %d already declared", id)
}

func (l *Ledger) errUnknownAccount(role string, id int64) error {
	return fmt.Errorf("%s account %d is not declared", role, id)
}

// Validate checks a transaction for structural correctness against the account
// registry and applies quick fixes where applicable (assigning the default
// destination amount). It returns the validated (and potentially modified)
// transaction or an error detailing the failure.
func (l *Ledger) Validate(tx Transaction) (Transaction, error) {
	if tx.Date.IsZero() {
		return tx, fmt.Errorf("transaction has no date")
	}
	if tx.Amount.IsNegative() {
		return tx, fmt.Errorf("amount must not be negative, sign is given by the type")
	}
	if tx.Quantity.IsNegative() {
		return tx, fmt.Errorf("quantity must not be negative, holdings are long-only")
	}

	from, ok := l.accounts[tx.From]
	if !ok {
		return tx, l.errUnknownAccount("source", tx.From)
	}
	switch tx.Amount.Currency() {
	case "":
		tx.Amount = M(tx.Amount.value, from.Currency)
	case from.Currency:
	default:
		return tx, fmt.Errorf("amount in %s on account %q held in %s", tx.Amount.Currency(), from.Name, from.Currency)
	}
	if !tx.Quantity.IsZero() {
		// The quantity field belongs to the investment side of the entry.
		qtyAccount := from
		if tx.Type == Transfer {
			to, ok := l.accounts[tx.To]
			if !ok {
				return tx, l.errUnknownAccount("destination", tx.To)
			}
			if !from.IsInvestment && !to.IsInvestment {
				return tx, fmt.Errorf("quantity on a transfer between non-investment accounts %q and %q", from.Name, to.Name)
			}
		} else if !qtyAccount.IsInvestment {
			return tx, fmt.Errorf("quantity on non-investment account %q", qtyAccount.Name)
		}
	}

	switch tx.Type {
	case Income, Expense:
		if tx.To != 0 {
			return tx, fmt.Errorf("%s must not name a destination account", tx.Type)
		}
	case Transfer:
		to, ok := l.accounts[tx.To]
		if !ok {
			return tx, l.errUnknownAccount("destination", tx.To)
		}
		if tx.ToAmount.IsZero() {
			// Same-currency assumption: the destination receives the source amount.
			tx.ToAmount = M(tx.Amount.value, to.Currency)
		} else if tx.ToAmount.IsNegative() {
			return tx, fmt.Errorf("destination amount must not be negative")
		} else {
			switch tx.ToAmount.Currency() {
			case "":
				tx.ToAmount = M(tx.ToAmount.value, to.Currency)
			case to.Currency:
			default:
				return tx, fmt.Errorf("destination amount in %s on account %q held in %s", tx.ToAmount.Currency(), to.Name, to.Currency)
			}
		}
	default:
		return tx, fmt.Errorf("unknown transaction type %d", tx.Type)
	}

	if tx.Linked != 0 {
		if tx.Type == Transfer {
			return tx, fmt.Errorf("a transfer cannot be linked to an investment account, it is a capital flow")
		}
		linked, ok := l.accounts[tx.Linked]
		if !ok {
			return tx, l.errUnknownAccount("linked investment", tx.Linked)
		}
		if !linked.IsInvestment {
			return tx, fmt.Errorf("linked account %q is not an investment account", linked.Name)
		}
	}
	return tx, nil
}
