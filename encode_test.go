package rappen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sfehr/rappen/date"
)

func TestEncodeDecodeLedger(t *testing.T) {
	original := NewLedger()
	for _, a := range []Account{
		{ID: 1, Name: "Checking", Currency: "CHF", ShowInBalance: true},
		{ID: 2, Name: "Fund A", Currency: "USD", IsInvestment: true, Strategy: PricePerUnit, ShowInBalance: true},
	} {
		if err := original.DeclareAccount(a); err != nil {
			t.Fatalf("DeclareAccount() error = %v", err)
		}
	}
	original.Append(
		NewIncome(date.New(2023, 1, 1), 1, CHF(2000)).WithLinked(2),
		NewTransfer(date.New(2023, 1, 2), 1, 2, CHF(900)).
			WithToAmount(USD(1000)).
			WithQuantity(Q(10)),
		NewExpense(date.New(2023, 2, 1), 1, CHF(12.50)),
	)

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, original); err != nil {
		t.Fatalf("EncodeLedger() error = %v", err)
	}

	decoded, err := DecodeLedger(&buf)
	if err != nil {
		t.Fatalf("DecodeLedger() error = %v", err)
	}

	a, ok := decoded.Account(2)
	if !ok {
		t.Fatal("decoded ledger is missing account 2")
	}
	if a.Name != "Fund A" || a.Currency != "USD" || !a.IsInvestment || a.Strategy != PricePerUnit || !a.ShowInBalance {
		t.Errorf("decoded account = %+v", a)
	}

	// The decoded ledger must replay to the same state.
	j1, err := NewJournal(original)
	if err != nil {
		t.Fatalf("NewJournal(original) error = %v", err)
	}
	j2, err := NewJournal(decoded)
	if err != nil {
		t.Fatalf("NewJournal(decoded) error = %v", err)
	}
	on := date.New(2023, 3, 1)
	for _, id := range []int64{1, 2} {
		s1, s2 := j1.StateAt(id, on), j2.StateAt(id, on)
		if !s1.Balance.Equal(s2.Balance) || !s1.Quantity.Equal(s2.Quantity) {
			t.Errorf("account %d: original state %+v, decoded state %+v", id, s1, s2)
		}
	}
}

func TestEncodeTransaction_FieldOrder(t *testing.T) {
	var buf bytes.Buffer
	tx := NewExpense(date.New(2023, 2, 1), 1, CHF(12.50))
	tx.ID = 3
	if err := EncodeTransaction(&buf, tx); err != nil {
		t.Fatalf("EncodeTransaction() error = %v", err)
	}
	got := strings.TrimSpace(buf.String())
	want := `{"record":"tx","id":3,"date":"2023-02-01","type":"expense","amount":12.5,"from":1}`
	if got != want {
		t.Errorf("encoded line:\n got %s\nwant %s", got, want)
	}
}

func TestEncodeDecodeMarket(t *testing.T) {
	rates := NewRateTable("CHF")
	rates.Add(date.New(2023, 1, 1), "USD", 0.90)
	rates.Add(date.New(2023, 6, 30), "USD", 0.88)
	rates.Add(date.New(2023, 1, 1), "EUR", 0.98)
	marks := NewMarkTable()
	marks.Add(date.New(2023, 1, 1), 2, 100)
	marks.Add(date.New(2023, 6, 30), 2, 110)

	var buf bytes.Buffer
	if err := EncodeMarket(&buf, rates, marks); err != nil {
		t.Fatalf("EncodeMarket() error = %v", err)
	}

	gotRates, gotMarks, err := DecodeMarket("CHF", &buf)
	if err != nil {
		t.Fatalf("DecodeMarket() error = %v", err)
	}
	if rate, _ := gotRates.RateAsOf("USD", date.New(2023, 3, 1)); rate != 0.90 {
		t.Errorf("decoded RateAsOf(USD) = %v, want 0.90", rate)
	}
	if rate, _ := gotRates.RateAsOf("EUR", date.New(2023, 3, 1)); rate != 0.98 {
		t.Errorf("decoded RateAsOf(EUR) = %v, want 0.98", rate)
	}
	if mark, _ := gotMarks.MarkAsOf(2, date.New(2023, 6, 30)); mark != 110 {
		t.Errorf("decoded MarkAsOf(2) = %v, want 110", mark)
	}
}

func TestDecodeLedger_SkipsBlankLinesAndRejectsUnknownRecords(t *testing.T) {
	input := `{"record":"account","id":1,"name":"Checking","currency":"CHF"}

{"record":"tx","id":1,"date":"2023-01-01","type":"income","amount":10,"from":1}
`
	ledger, err := DecodeLedger(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeLedger() error = %v", err)
	}
	if _, ok := ledger.Account(1); !ok {
		t.Error("decoded ledger is missing the declared account")
	}

	if _, err := DecodeLedger(strings.NewReader(`{"record":"price","id":1}`)); err == nil {
		t.Error("DecodeLedger() accepted an unknown record kind")
	}
}
