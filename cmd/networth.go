package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/sfehr/rappen/renderer"
)

// networthCmd renders the monthly net-worth series.
type networthCmd struct {
	periodFlags
}

func (*networthCmd) Name() string     { return "networth" }
func (*networthCmd) Synopsis() string { return "net worth at each month end of a period" }
func (*networthCmd) Usage() string {
	return `rpn networth [-p <period> | -start <date>] [-d <date>]

  Sum the home-currency value of all accounts shown in the balance at each
  calendar month end of the period.

Usage Examples:
$ rpn networth -p year
$ rpn networth -start 2023-01-01 -d 2023-06-30

`
}

func (c *networthCmd) SetFlags(f *flag.FlagSet) { c.set(f) }

func (c *networthCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	printMarkdown(renderer.NetWorthMarkdown(as.NetWorthSeries(period)))
	return subcommands.ExitSuccess
}
