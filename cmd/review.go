package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/google/subcommands"
	"github.com/sfehr/rappen"
	"github.com/sfehr/rappen/date"
	"github.com/sfehr/rappen/renderer"
)

// periodFlags holds the flags selecting a reporting period.
type periodFlags struct {
	date   string
	period string
	start  string
}

func (c *periodFlags) set(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "End date of the reporting period, defaults to today")
	f.StringVar(&c.period, "p", date.Monthly.String(), "Reporting period (day, week, month, quarter, year)")
	f.StringVar(&c.start, "start", "", "Start date of the reporting period. Overrides -p.")
}

// rng resolves the flags into a concrete date range.
func (c *periodFlags) rng() (date.Range, error) {
	end, err := parseDateOrToday(c.date)
	if err != nil {
		return date.Range{}, fmt.Errorf("parsing end date: %w", err)
	}
	if c.start != "" {
		start, err := date.Parse(c.start)
		if err != nil {
			return date.Range{}, fmt.Errorf("parsing start date: %w", err)
		}
		return date.NewRange(start, end), nil
	}
	p, err := date.ParsePeriod(c.period)
	if err != nil {
		return date.Range{}, fmt.Errorf("parsing period: %w", err)
	}
	return p.Range(end), nil
}

// reviewCmd renders the gain/loss decomposition of a period.
type reviewCmd struct {
	periodFlags
}

func (*reviewCmd) Name() string     { return "review" }
func (*reviewCmd) Synopsis() string { return "decompose the period value change per account" }
func (*reviewCmd) Usage() string {
	return `rpn review [-p <period> | -start <date>] [-d <date>]

  Decompose each account's value change over the period into capital flow,
  attributed income and fees, and pure market gain, then bucket the accounts
  into winners and losers.

Usage Examples:
$ rpn review -p month
$ rpn review -start 2023-01-01 -d 2023-06-30

`
}

func (c *reviewCmd) SetFlags(f *flag.FlagSet) { c.set(f) }

func (c *reviewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period, err := c.rng()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	as, err := LoadSystem()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	accounts := shownAccounts(as)
	if len(accounts) == 0 {
		fmt.Fprintln(os.Stderr, "Warning: no accounts to review.")
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.GainsMarkdown(as.Decompose(accounts, period)))
	return subcommands.ExitSuccess
}

// shownAccounts returns the ids of all show-in-balance accounts, in id order.
func shownAccounts(as *rappen.AccountingSystem) []int64 {
	return slices.Collect(func(yield func(int64) bool) {
		for a := range as.Ledger.Accounts() {
			if !a.ShowInBalance {
				continue
			}
			if !yield(a.ID) {
				return
			}
		}
	})
}
