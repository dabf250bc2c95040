package rappen

import (
	"testing"

	"github.com/sfehr/rappen/date"
)

// CHF is a helper for tests to create home-currency money from const.
func CHF(v float64) Money { return M(v, "CHF") }

// USD is a helper for tests to create dollar money from const.
func USD(v float64) Money { return M(v, "USD") }

// EUR is a helper for tests to create euro money from const.
func EUR(v float64) Money { return M(v, "EUR") }

// NO is a helper for tests to create money with no currency set.
func NO(v float64) Money { return M(v, "") }

const (
	checkingID = int64(1)
	fundAID    = int64(2)
)

// fundASystem builds the reference scenario used throughout the engine tests:
// a CHF checking account funding "Fund A", a price-per-unit USD fund opened on
// 2023-01-01 with 10 units at a price mark of 100, re-marked at 110 on
// 2023-06-30, with a flat USD->CHF rate of 0.90.
func fundASystem(t *testing.T) *AccountingSystem {
	t.Helper()

	ledger := NewLedger()
	accounts := []Account{
		{ID: checkingID, Name: "Checking", Currency: "CHF", ShowInBalance: true},
		{ID: fundAID, Name: "Fund A", Currency: "USD", IsInvestment: true, Strategy: PricePerUnit, ShowInBalance: true},
	}
	for _, a := range accounts {
		if err := ledger.DeclareAccount(a); err != nil {
			t.Fatalf("DeclareAccount(%q) error = %v", a.Name, err)
		}
	}
	ledger.Append(
		NewIncome(date.New(2022, 12, 1), checkingID, CHF(2000)),
		NewTransfer(date.New(2023, 1, 1), checkingID, fundAID, CHF(900)).
			WithToAmount(USD(1000)).
			WithQuantity(Q(10)),
	)

	rates := NewRateTable("CHF")
	rates.Add(date.New(2023, 1, 1), "USD", 0.90)

	marks := NewMarkTable()
	marks.Add(date.New(2023, 1, 1), fundAID, 100)
	marks.Add(date.New(2023, 6, 30), fundAID, 110)

	as, err := NewAccountingSystem(ledger, rates, marks)
	if err != nil {
		t.Fatalf("NewAccountingSystem() error = %v", err)
	}
	return as
}
