package rappen

import (
	"math"
	"testing"

	"github.com/sfehr/rappen/date"
)

func TestReview_FundAGainDecomposition(t *testing.T) {
	as := fundASystem(t)
	period := date.NewRange(date.New(2023, 1, 1), date.New(2023, 6, 30))
	report := as.Decompose([]int64{fundAID}, period)

	// The opening transfer lands on the period start, so it is part of the
	// start value (10 * 100 * 0.90 = 900 CHF) and not of the period flow.
	// gain = (990 - 900) - 0 = 90 CHF: pure market performance.
	g := report.Accounts[0]
	if got, want := g.StartValue, CHF(900); !got.Equal(want) {
		t.Errorf("StartValue = %v, want %v", got, want)
	}
	if got, want := g.EndValue, CHF(990); !got.Equal(want) {
		t.Errorf("EndValue = %v, want %v", got, want)
	}
	if !g.NetFlow.IsZero() {
		t.Errorf("NetFlow = %v, want zero", g.NetFlow)
	}
	if got, want := g.Gain, CHF(90); !got.Equal(want) {
		t.Errorf("Gain = %v, want %v", got, want)
	}
	if got, want := report.Winners["Fund A"], CHF(90); !got.Equal(want) {
		t.Errorf("Winners[Fund A] = %v, want %v", got, want)
	}
	if len(report.Losers) != 0 {
		t.Errorf("Losers = %v, want empty", report.Losers)
	}
}

func TestReview_MidPeriodFlowIsNotGain(t *testing.T) {
	as := fundASystem(t)
	// Move another 450 CHF into the fund mid-period, buying 5 units at the
	// carried-forward price of 100 USD.
	as.Ledger.Append(
		NewTransfer(date.New(2023, 4, 1), checkingID, fundAID, CHF(450)).
			WithToAmount(USD(500)).
			WithQuantity(Q(5)),
	)
	rebuilt, err := NewAccountingSystem(as.Ledger, as.Rates, as.Marks)
	if err != nil {
		t.Fatalf("NewAccountingSystem() error = %v", err)
	}

	period := date.NewRange(date.New(2023, 1, 1), date.New(2023, 6, 30))
	g := rebuilt.NewReview(period).Gain(fundAID)

	// Start: 10 * 100 * 0.90 = 900. End: 15 * 110 * 0.90 = 1485.
	// Flow: +500 USD * 0.90 = 450. Gain: 1485 - 900 - 450 = 135.
	if got, want := g.NetFlow, CHF(450); !got.Equal(want) {
		t.Errorf("NetFlow = %v, want %v", got, want)
	}
	if got, want := g.Gain, CHF(135); !got.Equal(want) {
		t.Errorf("Gain = %v, want %v", got, want)
	}
}

func TestReview_DecompositionIdentity(t *testing.T) {
	as := fundASystem(t)
	as.Ledger.Append(
		NewTransfer(date.New(2023, 2, 10), checkingID, fundAID, CHF(90)).
			WithToAmount(USD(100)).
			WithQuantity(Q(1)),
		NewTransfer(date.New(2023, 5, 20), fundAID, checkingID, USD(330)).
			WithToAmount(CHF(297)).
			WithQuantity(Q(3)),
	)
	rebuilt, err := NewAccountingSystem(as.Ledger, as.Rates, as.Marks)
	if err != nil {
		t.Fatalf("NewAccountingSystem() error = %v", err)
	}

	periods := []date.Range{
		date.NewRange(date.New(2023, 1, 1), date.New(2023, 6, 30)),
		date.NewRange(date.New(2023, 2, 1), date.New(2023, 3, 1)),
		date.NewRange(date.New(2023, 1, 15), date.New(2023, 12, 31)),
	}
	for _, period := range periods {
		for _, id := range []int64{checkingID, fundAID} {
			g := rebuilt.NewReview(period).Gain(id)
			identity := g.StartValue.Add(g.NetFlow).Add(g.Gain)
			if diff := math.Abs(identity.AsFloat() - g.EndValue.AsFloat()); diff > 1e-6 {
				t.Errorf("account %d over %v: start+flow+gain = %v, end = %v",
					id, period, identity, g.EndValue)
			}
		}
	}
}

func TestReview_NoiseFloorBuckets(t *testing.T) {
	ledger := NewLedger()
	for _, a := range []Account{
		{ID: 1, Name: "Cash", Currency: "CHF", ShowInBalance: true},
		{ID: 2, Name: "Quiet", Currency: "CHF", IsInvestment: true, Strategy: TotalValue, ShowInBalance: true},
		{ID: 3, Name: "Loser", Currency: "CHF", IsInvestment: true, Strategy: TotalValue, ShowInBalance: true},
	} {
		if err := ledger.DeclareAccount(a); err != nil {
			t.Fatalf("DeclareAccount() error = %v", err)
		}
	}
	start := date.New(2024, 1, 1)
	end := date.New(2024, 12, 31)
	ledger.Append(
		NewIncome(start, 1, CHF(1000)),
		NewTransfer(start, 1, 2, CHF(100)),
		NewTransfer(start, 1, 3, CHF(100)),
	)
	marks := NewMarkTable()
	marks.Add(start, 2, 100)
	marks.Add(end, 2, 100.0005) // inside the noise floor
	marks.Add(start, 3, 100)
	marks.Add(end, 3, 92)
	as, err := NewAccountingSystem(ledger, NewRateTable("CHF"), marks)
	if err != nil {
		t.Fatalf("NewAccountingSystem() error = %v", err)
	}

	report := as.Decompose([]int64{2, 3}, date.NewRange(start, end))
	if _, ok := report.Winners["Quiet"]; ok {
		t.Error("sub-noise gain bucketed as winner")
	}
	if _, ok := report.Losers["Quiet"]; ok {
		t.Error("sub-noise gain bucketed as loser")
	}
	if got, want := report.Losers["Loser"], CHF(-8); !got.Equal(want) {
		t.Errorf("Losers[Loser] = %v, want %v", got, want)
	}
	if got, want := report.Net, CHF(-8); !got.Equal(want) {
		t.Errorf("Net = %v, want %v", got, want)
	}
}

func TestReview_AttributedIncomeAndFees(t *testing.T) {
	as := fundASystem(t)
	// A dividend credited to checking and a custody fee paid from checking,
	// both attributed to the fund.
	as.Ledger.Append(
		NewIncome(date.New(2023, 3, 10), checkingID, CHF(27)).WithLinked(fundAID),
		NewExpense(date.New(2023, 4, 10), checkingID, CHF(9)).WithLinked(fundAID),
	)
	rebuilt, err := NewAccountingSystem(as.Ledger, as.Rates, as.Marks)
	if err != nil {
		t.Fatalf("NewAccountingSystem() error = %v", err)
	}

	period := date.NewRange(date.New(2023, 1, 1), date.New(2023, 6, 30))
	g := rebuilt.NewReview(period).Gain(fundAID)
	if got, want := g.Income, CHF(27); !got.Equal(want) {
		t.Errorf("Income = %v, want %v", got, want)
	}
	if got, want := g.Fees, CHF(9); !got.Equal(want) {
		t.Errorf("Fees = %v, want %v", got, want)
	}
	// Attribution does not move balances: the fund's gain is still pure
	// market performance.
	if got, want := g.Gain, CHF(90); !got.Equal(want) {
		t.Errorf("Gain = %v, want %v", got, want)
	}
}
