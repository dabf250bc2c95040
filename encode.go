package rappen

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/sfehr/rappen/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The ledger and the market tables persist as JSONL: one self-describing
// record per line, discriminated by a "record" field. Account declarations
// and transactions share the ledger file; rates and valuation marks share the
// market file.

type recordKind string

const (
	recAccount recordKind = "account"
	recTx      recordKind = "tx"
	recRate    recordKind = "rate"
	recMark    recordKind = "mark"
)

// accountRecord is the wire form of an Account.
type accountRecord struct {
	Record        recordKind `json:"record"`
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Currency      string     `json:"currency"`
	Investment    bool       `json:"investment,omitempty"`
	Strategy      string     `json:"strategy,omitempty"`
	ShowInBalance bool       `json:"showInBalance,omitempty"`
}

// txRecord is the wire form of a Transaction.
type txRecord struct {
	Record   recordKind      `json:"record"`
	ID       int64           `json:"id"`
	Date     date.Date       `json:"date"`
	Type     string          `json:"type"`
	Amount   decimal.Decimal `json:"amount"`
	Quantity Quantity        `json:"quantity,omitempty"`
	From     int64           `json:"from"`
	To       int64           `json:"to,omitempty"`
	ToAmount decimal.Decimal `json:"toAmount,omitempty"`
	Linked   int64           `json:"linked,omitempty"`
	Memo     string          `json:"memo,omitempty"`
}

// marketRecord is the wire form of a rate or a valuation mark.
type marketRecord struct {
	Record   recordKind `json:"record"`
	Date     date.Date  `json:"date"`
	Currency string     `json:"currency,omitempty"`
	Account  int64      `json:"account,omitempty"`
	Value    float64    `json:"value"`
}

// EncodeAccount writes one account declaration line.
func EncodeAccount(w io.Writer, a Account) error {
	var o jsonObjectWriter
	o.Append("record", recAccount)
	o.Append("id", a.ID)
	o.Append("name", a.Name)
	o.Append("currency", a.Currency)
	o.Optional("investment", a.IsInvestment)
	if a.Strategy != NoValuation {
		o.Append("strategy", a.Strategy.String())
	}
	o.Optional("showInBalance", a.ShowInBalance)
	return writeLine(w, &o)
}

// EncodeTransaction writes one transaction line.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	var o jsonObjectWriter
	o.Append("record", recTx)
	o.Append("id", tx.ID)
	o.Append("date", tx.Date)
	o.Append("type", tx.Type.String())
	o.Append("amount", tx.Amount.value)
	if !tx.Quantity.IsZero() {
		o.Append("quantity", tx.Quantity)
	}
	o.Append("from", tx.From)
	o.Optional("to", tx.To)
	if !tx.ToAmount.IsZero() {
		o.Append("toAmount", tx.ToAmount.value)
	}
	o.Optional("linked", tx.Linked)
	o.Optional("memo", tx.Memo)
	return writeLine(w, &o)
}

// EncodeLedger writes all account declarations followed by all transactions.
func EncodeLedger(w io.Writer, l *Ledger) error {
	for a := range l.Accounts() {
		if err := EncodeAccount(w, a); err != nil {
			return err
		}
	}
	for _, tx := range l.Transactions() {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}

// DecodeLedger reads account and transaction lines into a sorted Ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var identifier struct {
			Record recordKind `json:"record"`
		}
		if err := json.Unmarshal(line, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify record in line %q: %w", string(line), err)
		}
		switch identifier.Record {
		case recAccount:
			var rec accountRecord
			if err := json.Unmarshal(line, &rec); err != nil {
				return nil, err
			}
			strategy, err := ParseValuationStrategy(rec.Strategy)
			if err != nil {
				return nil, err
			}
			a := Account{
				ID: rec.ID, Name: rec.Name, Currency: rec.Currency,
				IsInvestment: rec.Investment, Strategy: strategy,
				ShowInBalance: rec.ShowInBalance,
			}
			if err := ledger.DeclareAccount(a); err != nil {
				return nil, err
			}
		case recTx:
			var rec txRecord
			if err := json.Unmarshal(line, &rec); err != nil {
				return nil, err
			}
			kind, err := ParseTransactionType(rec.Type)
			if err != nil {
				return nil, err
			}
			tx := Transaction{
				ID: rec.ID, Date: rec.Date, Type: kind,
				Amount: M(rec.Amount, ""), Quantity: rec.Quantity,
				From: rec.From, To: rec.To, Linked: rec.Linked, Memo: rec.Memo,
			}
			if !rec.ToAmount.IsZero() {
				tx.ToAmount = M(rec.ToAmount, "")
			}
			ledger.Append(tx)
		default:
			return nil, fmt.Errorf("unknown record kind %q in ledger file", identifier.Record)
		}
	}
	return ledger, scanner.Err()
}

// EncodeMarket writes all exchange rates followed by all valuation marks.
func EncodeMarket(w io.Writer, rates *RateTable, marks *MarkTable) error {
	for currency := range rates.Currencies() {
		for on, rate := range rates.History(currency).Values() {
			var o jsonObjectWriter
			o.Append("record", recRate)
			o.Append("date", on)
			o.Append("currency", currency)
			o.Append("value", rate)
			if err := writeLine(w, &o); err != nil {
				return err
			}
		}
	}
	for account := range marks.MarkedAccounts() {
		for on, value := range marks.History(account).Values() {
			var o jsonObjectWriter
			o.Append("record", recMark)
			o.Append("date", on)
			o.Append("account", account)
			o.Append("value", value)
			if err := writeLine(w, &o); err != nil {
				return err
			}
		}
	}
	return nil
}

// DecodeMarket reads rate and mark lines into fresh tables reporting in the
// given home currency.
func DecodeMarket(home string, r io.Reader) (*RateTable, *MarkTable, error) {
	rates := NewRateTable(home)
	marks := NewMarkTable()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec marketRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, nil, fmt.Errorf("invalid market line %q: %w", string(line), err)
		}
		switch rec.Record {
		case recRate:
			rates.Add(rec.Date, rec.Currency, rec.Value)
		case recMark:
			marks.Add(rec.Date, rec.Account, rec.Value)
		default:
			return nil, nil, fmt.Errorf("unknown record kind %q in market file", rec.Record)
		}
	}
	return rates, marks, scanner.Err()
}

func writeLine(w io.Writer, o *jsonObjectWriter) error {
	data, err := o.MarshalJSON()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n"))
	return err
}
