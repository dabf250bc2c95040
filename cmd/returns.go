package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/sfehr/rappen"
	"github.com/sfehr/rappen/renderer"
)

// returnsCmd renders XIRR and TWR per investment account and for the pooled
// portfolio.
type returnsCmd struct {
	periodFlags
}

func (*returnsCmd) Name() string     { return "returns" }
func (*returnsCmd) Synopsis() string { return "money- and time-weighted returns" }
func (*returnsCmd) Usage() string {
	return `rpn returns [-p <period> | -start <date>] [-d <date>]

  Compute the annualized money-weighted return (XIRR, since inception up to
  the end date) and the time-weighted return (TWR, over the period) for each
  investment account, and for the whole portfolio pooled in the home currency.

Usage Examples:
$ rpn returns -p year
$ rpn returns -start 2023-01-01 -d 2023-06-30

`
}

func (c *returnsCmd) SetFlags(f *flag.FlagSet) { c.set(f) }

func (c *returnsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var rows []renderer.ReturnRow
	for a := range as.Ledger.InvestmentAccounts() {
		xirr, xirrOk := as.AccountXIRR(a.ID, period.To)
		twr, twrOk := as.AccountTWR(a.ID, period)
		rows = append(rows, renderer.ReturnRow{
			Name:   a.Name,
			XIRR:   rappen.Percent(100 * xirr),
			XIRROk: xirrOk,
			TWR:    rappen.Percent(100 * twr),
			TWROk:  twrOk,
		})
	}
	xirr, xirrOk := as.PortfolioXIRR(period.To)
	twr, twrOk := as.PortfolioTWR(period)
	portfolio := renderer.ReturnRow{
		XIRR:   rappen.Percent(100 * xirr),
		XIRROk: xirrOk,
		TWR:    rappen.Percent(100 * twr),
		TWROk:  twrOk,
	}

	printMarkdown(renderer.ReturnsMarkdown(period, rows, portfolio))
	return subcommands.ExitSuccess
}
