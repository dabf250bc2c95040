// Package cmd implements the CLI application to manage the ledger and its
// valuation reports.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/sfehr/rappen"
)

// Commands lists every subcommand of the application. A main package
// registers them all and executes the user-selected one.
var Commands = []subcommands.Command{
	&declareCmd{},
	&incomeCmd{},
	&expenseCmd{},
	&transferCmd{},
	&rateCmd{},
	&markCmd{},
	&importRatesCmd{},
	&holdingCmd{},
	&reviewCmd{},
	&networthCmd{},
	&returnsCmd{},
	&topicCmd{},
}

// Register registers all subcommands on a commander.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, "")
	}
}

// As a CLI application it has a very short-lived lifecycle, so it is ok to
// use global variables for app-wide flags.

var ledgerFile = flag.String("ledger-file", "ledger.jsonl", "Path to the ledger file containing accounts and transactions (JSONL format)")
var marketFile = flag.String("market-file", "market.jsonl", "Path to the market file containing exchange rates and valuation marks (JSONL format)")
var homeCurrency = flag.String("currency", "CHF", "Home currency all aggregates are reported in")

// DecodeLedger loads the app ledger file, starting empty when it does not
// exist yet.
func DecodeLedger() (*rappen.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, ledger file %q does not exist, starting with an empty ledger", *ledgerFile)
		return rappen.NewLedger(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return rappen.DecodeLedger(f)
}

// DecodeMarket loads the app market file, starting empty when it does not
// exist yet.
func DecodeMarket() (*rappen.RateTable, *rappen.MarkTable, error) {
	f, err := os.Open(*marketFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, market file %q does not exist, starting with empty tables", *marketFile)
		return rappen.NewRateTable(*homeCurrency), rappen.NewMarkTable(), nil
	}
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return rappen.DecodeMarket(*homeCurrency, f)
}

// LoadSystem loads both files and builds the accounting system.
func LoadSystem() (*rappen.AccountingSystem, error) {
	ledger, err := DecodeLedger()
	if err != nil {
		return nil, fmt.Errorf("decoding ledger: %w", err)
	}
	rates, marks, err := DecodeMarket()
	if err != nil {
		return nil, fmt.Errorf("decoding market data: %w", err)
	}
	return rappen.NewAccountingSystem(ledger, rates, marks)
}

// SaveLedger rewrites the ledger file in its canonical sorted form.
func SaveLedger(ledger *rappen.Ledger) error {
	f, err := os.Create(*ledgerFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return rappen.EncodeLedger(f, ledger)
}

// SaveMarket rewrites the market file.
func SaveMarket(rates *rappen.RateTable, marks *rappen.MarkTable) error {
	f, err := os.Create(*marketFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return rappen.EncodeMarket(f, rates, marks)
}

// appendTransaction validates a transaction against the ledger, appends it
// and saves back the canonical file.
func appendTransaction(tx rappen.Transaction) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: decoding ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if _, err := ledger.Validate(tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid transaction: %v\n", err)
		return subcommands.ExitUsageError
	}
	ledger.Append(tx)
	if err := SaveLedger(ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Appended %s transaction on %s to %s\n", tx.Type, tx.Date, *ledgerFile)
	return subcommands.ExitSuccess
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the renderer cannot be set up.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
