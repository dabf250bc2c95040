package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/sfehr/rappen/renderer"
)

// holdingCmd renders the valuation of every account on a date.
type holdingCmd struct {
	date string
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "value all accounts on a given date" }
func (*holdingCmd) Usage() string {
	return `rpn holding [-d <date>]

  Value every account shown in the balance on the given date, in native and
  home currency, and total them.

Usage Examples:
$ rpn holding
$ rpn holding -d 2023-06-30

`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Valuation date, defaults to today")
}

func (c *holdingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDateOrToday(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	as, err := LoadSystem()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.HoldingMarkdown(as.NewHoldingReport(on)))
	return subcommands.ExitSuccess
}
