package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/sfehr/rappen/date"
)

// rateCmd records an exchange rate observation.
type rateCmd struct {
	date     string
	currency string
	rate     float64
}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "record an exchange rate observation" }
func (*rateCmd) Usage() string {
	return `rpn rate -c <currency> -r <rate> [-d <date>]

  Record the worth of one unit of a foreign currency in the home currency.

Usage Examples:
$ rpn rate -c USD -r 0.90 -d 2023-01-01

`
}

func (c *rateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the observation, defaults to today")
	f.StringVar(&c.currency, "c", "", "Quoted currency (ISO 4217)")
	f.Float64Var(&c.rate, "r", 0, "Home currency per one unit of the quoted currency")
}

func (c *rateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDateOrToday(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.rate <= 0 {
		fmt.Fprintf(os.Stderr, "Error: rate must be positive, got %v\n", c.rate)
		return subcommands.ExitUsageError
	}
	rates, marks, err := DecodeMarket()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: decoding market data: %v\n", err)
		return subcommands.ExitFailure
	}
	rates.Add(on, c.currency, c.rate)
	if err := SaveMarket(rates, marks); err != nil {
		fmt.Fprintf(os.Stderr, "Error: saving market data: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded %s rate %v on %s\n", c.currency, c.rate, on)
	return subcommands.ExitSuccess
}

// markCmd records a valuation mark observation.
type markCmd struct {
	date    string
	account int64
	value   float64
}

func (*markCmd) Name() string     { return "mark" }
func (*markCmd) Synopsis() string { return "record a valuation mark for an account" }
func (*markCmd) Usage() string {
	return `rpn mark -on <account> -v <value> [-d <date>]

  Record a valuation mark. For a price-per-unit account the mark is the unit
  price; for a total-value account it is the whole account value. Both are in
  the account's native currency.

Usage Examples:
$ rpn mark -on 2 -v 110 -d 2023-06-30

`
}

func (c *markCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the observation, defaults to today")
	f.Int64Var(&c.account, "on", 0, "Account id the mark applies to")
	f.Float64Var(&c.value, "v", 0, "Observed value, in the account's native currency")
}

func (c *markCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDateOrToday(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	rates, marks, err := DecodeMarket()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: decoding market data: %v\n", err)
		return subcommands.ExitFailure
	}
	marks.Add(on, c.account, c.value)
	if err := SaveMarket(rates, marks); err != nil {
		fmt.Fprintf(os.Stderr, "Error: saving market data: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded mark %v for account %d on %s\n", c.value, c.account, on)
	return subcommands.ExitSuccess
}

func parseDateOrToday(s string) (date.Date, error) {
	if s == "" {
		return date.Today(), nil
	}
	return date.Parse(s)
}
