package rappen

import (
	"strings"
	"testing"

	"github.com/sfehr/rappen/date"
)

// ecbSpec matches the shape of the SDMX-style JSON feeds used for daily
// reference rates.
var ecbSpec = RateImportSpec{
	Rows:     "$.observations",
	Date:     "$.date",
	Currency: "$.currency",
	Rate:     "$.rate",
}

func TestImportRates(t *testing.T) {
	doc := `{
		"observations": [
			{"date": "2023-01-02", "currency": "USD", "rate": 0.9241},
			{"date": "2023-01-02", "currency": "EUR", "rate": 0.9847},
			{"date": "2023-01-03", "currency": "USD", "rate": "0,9215"}
		]
	}`
	rt := NewRateTable("CHF")
	n, err := ImportRates(rt, strings.NewReader(doc), ecbSpec)
	if err != nil {
		t.Fatalf("ImportRates() error = %v", err)
	}
	if n != 3 {
		t.Errorf("ImportRates() recorded %d rates, want 3", n)
	}
	if got, _ := rt.RateAsOf("USD", date.New(2023, 1, 2)); got != 0.9241 {
		t.Errorf("RateAsOf(USD, 01-02) = %v, want 0.9241", got)
	}
	// The last observation is a comma-decimal string, still parsed.
	if got, _ := rt.RateAsOf("USD", date.New(2023, 1, 3)); got != 0.9215 {
		t.Errorf("RateAsOf(USD, 01-03) = %v, want 0.9215", got)
	}
	if got, _ := rt.RateAsOf("EUR", date.New(2023, 2, 1)); got != 0.9847 {
		t.Errorf("RateAsOf(EUR, 02-01) = %v, want 0.9847", got)
	}
}

func TestImportRates_Rejects(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"invalid json", `{"observations": [`},
		{"rows not a list", `{"observations": 42}`},
		{"bad currency", `{"observations": [{"date": "2023-01-02", "currency": "usd", "rate": 0.9}]}`},
		{"bad date", `{"observations": [{"date": "02.01.2023", "currency": "USD", "rate": 0.9}]}`},
		{"non-positive rate", `{"observations": [{"date": "2023-01-02", "currency": "USD", "rate": 0}]}`},
		{"rate not a number", `{"observations": [{"date": "2023-01-02", "currency": "USD", "rate": true}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rt := NewRateTable("CHF")
			if _, err := ImportRates(rt, strings.NewReader(tc.doc), ecbSpec); err == nil {
				t.Errorf("ImportRates(%s) accepted, want error", tc.doc)
			}
		})
	}
}
