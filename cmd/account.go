package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/sfehr/rappen"
)

// declareCmd declares a new account in the ledger.
type declareCmd struct {
	id         int64
	name       string
	currency   string
	investment bool
	strategy   string
	hidden     bool
}

func (*declareCmd) Name() string     { return "declare" }
func (*declareCmd) Synopsis() string { return "declare a new account" }
func (*declareCmd) Usage() string {
	return `rpn declare -id <id> -name <name> [-c <currency>] [-investment] [-strategy <s>] [-hidden]

  Declare an account. Investment accounts can hold unit quantities and carry a
  valuation strategy (none, total-value, price-per-unit).

Usage Examples:
$ rpn declare -id 1 -name Checking -c CHF
$ rpn declare -id 2 -name "Fund A" -c USD -investment -strategy price-per-unit

`
}

func (c *declareCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Unique numeric id of the account")
	f.StringVar(&c.name, "name", "", "Human-readable name of the account")
	f.StringVar(&c.currency, "c", *homeCurrency, "Native currency of the account (ISO 4217)")
	f.BoolVar(&c.investment, "investment", false, "The account holds investments")
	f.StringVar(&c.strategy, "strategy", "none", "Valuation strategy (none, total-value, price-per-unit)")
	f.BoolVar(&c.hidden, "hidden", false, "Exclude the account from the net-worth balance")
}

func (c *declareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	strategy, err := rappen.ParseValuationStrategy(c.strategy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	account := rappen.Account{
		ID:            c.id,
		Name:          c.name,
		Currency:      c.currency,
		IsInvestment:  c.investment,
		Strategy:      strategy,
		ShowInBalance: !c.hidden,
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: decoding ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := ledger.DeclareAccount(account); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := SaveLedger(ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Declared account %d %q (%s)\n", account.ID, account.Name, account.Currency)
	return subcommands.ExitSuccess
}
