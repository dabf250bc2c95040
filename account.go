package rappen

import (
	"fmt"
	"regexp"
)

// ValuationStrategy defines how an account's native value is established.
type ValuationStrategy int

const (
	// NoValuation values the account at its replayed balance.
	NoValuation ValuationStrategy = iota
	// TotalValue values the account at the most recent total-value mark.
	TotalValue
	// PricePerUnit values the account at quantity times the most recent unit price.
	PricePerUnit
)

func (s ValuationStrategy) String() string {
	switch s {
	case NoValuation:
		return "none"
	case TotalValue:
		return "total-value"
	case PricePerUnit:
		return "price-per-unit"
	default:
		return "unknown"
	}
}

// ParseValuationStrategy parses a string into a ValuationStrategy.
func ParseValuationStrategy(s string) (ValuationStrategy, error) {
	switch s {
	case "none", "":
		return NoValuation, nil
	case "total-value":
		return TotalValue, nil
	case "price-per-unit":
		return PricePerUnit, nil
	default:
		return 0, fmt.Errorf("unknown valuation strategy: %q", s)
	}
}

// Account is a bookkeeping account holding cash or an investment position in
// its native currency. Accounts are immutable once referenced by a transaction.
type Account struct {
	ID            int64
	Name          string
	Currency      string
	IsInvestment  bool
	Strategy      ValuationStrategy
	ShowInBalance bool
}

var currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateCurrency checks that a string is a plausible ISO 4217 currency code.
func ValidateCurrency(code string) error {
	if !currencyCodeRegex.MatchString(code) {
		return fmt.Errorf("invalid currency code %q: must be 3 uppercase letters", code)
	}
	return nil
}

// Validate checks the account record for structural consistency.
func (a Account) Validate() error {
	if a.ID <= 0 {
		return fmt.Errorf("account id must be positive, got %d", a.ID)
	}
	if a.Name == "" {
		return fmt.Errorf("account %d has no name", a.ID)
	}
	if err := ValidateCurrency(a.Currency); err != nil {
		return fmt.Errorf("account %q: %w", a.Name, err)
	}
	if !a.IsInvestment && a.Strategy != NoValuation {
		return fmt.Errorf("account %q: valuation strategy %s requires an investment account", a.Name, a.Strategy)
	}
	return nil
}
