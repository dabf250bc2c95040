package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/sfehr/rappen"
	"github.com/sfehr/rappen/date"
)

// txFlags holds the flags shared by all transaction subcommands.
type txFlags struct {
	date     string
	amount   float64
	account  int64
	linked   int64
	memo     string
	quantity float64
}

func (c *txFlags) set(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the transaction, defaults to today")
	f.Float64Var(&c.amount, "a", 0, "Amount in the source account's currency")
	f.Int64Var(&c.account, "on", 0, "Account id the transaction applies to")
	f.StringVar(&c.memo, "memo", "", "Free-form note")
}

func (c *txFlags) parseDate() (date.Date, error) {
	return parseDateOrToday(c.date)
}

// incomeCmd appends an income transaction.
type incomeCmd struct{ txFlags }

func (*incomeCmd) Name() string     { return "income" }
func (*incomeCmd) Synopsis() string { return "record money coming into an account" }
func (*incomeCmd) Usage() string {
	return `rpn income -on <account> -a <amount> [-d <date>] [-linked <investment>] [-memo <note>]

  Record an income. With -linked, the income is a dividend attributable to an
  investment account while being credited to the named account.

Usage Examples:
$ rpn income -on 1 -a 5000 -memo "Salary"
$ rpn income -on 1 -a 27 -linked 2 -memo "Fund A dividend"

`
}

func (c *incomeCmd) SetFlags(f *flag.FlagSet) {
	c.set(f)
	f.Int64Var(&c.linked, "linked", 0, "Investment account this dividend is attributable to")
}

func (c *incomeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := c.parseDate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	tx := rappen.NewIncome(on, c.account, rappen.M(c.amount, ""))
	tx.Memo = c.memo
	if c.linked != 0 {
		tx = tx.WithLinked(c.linked)
	}
	return appendTransaction(tx)
}

// expenseCmd appends an expense transaction.
type expenseCmd struct{ txFlags }

func (*expenseCmd) Name() string     { return "expense" }
func (*expenseCmd) Synopsis() string { return "record money leaving an account" }
func (*expenseCmd) Usage() string {
	return `rpn expense -on <account> -a <amount> [-d <date>] [-linked <investment>] [-memo <note>]

  Record an expense. With -linked, the expense is a fee attributable to an
  investment account while being paid from the named account.

Usage Examples:
$ rpn expense -on 1 -a 12.50 -memo "Lunch"
$ rpn expense -on 1 -a 9 -linked 2 -memo "Custody fee"

`
}

func (c *expenseCmd) SetFlags(f *flag.FlagSet) {
	c.set(f)
	f.Int64Var(&c.linked, "linked", 0, "Investment account this fee is attributable to")
}

func (c *expenseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := c.parseDate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	tx := rappen.NewExpense(on, c.account, rappen.M(c.amount, ""))
	tx.Memo = c.memo
	if c.linked != 0 {
		tx = tx.WithLinked(c.linked)
	}
	return appendTransaction(tx)
}

// transferCmd appends a transfer transaction.
type transferCmd struct {
	txFlags
	to       int64
	toAmount float64
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "move value between two accounts" }
func (*transferCmd) Usage() string {
	return `rpn transfer -on <source> -to <destination> -a <amount> [-to-amount <amount>] [-q <units>] [-d <date>]

  Move value between two accounts. For a cross-currency move, -to-amount gives
  the amount received in the destination currency. When the destination is an
  investment account, -q records the units bought (or sold, from the source
  side).

Usage Examples:
$ rpn transfer -on 1 -to 2 -a 900 -to-amount 1000 -q 10 -memo "Buy Fund A"

`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	c.set(f)
	f.Int64Var(&c.to, "to", 0, "Destination account id")
	f.Float64Var(&c.toAmount, "to-amount", 0, "Amount received, in the destination account's currency")
	f.Float64Var(&c.quantity, "q", 0, "Units moved on the investment side")
}

func (c *transferCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := c.parseDate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	tx := rappen.NewTransfer(on, c.account, c.to, rappen.M(c.amount, ""))
	tx.Memo = c.memo
	if c.toAmount != 0 {
		ledger, err := DecodeLedger()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: decoding ledger: %v\n", err)
			return subcommands.ExitFailure
		}
		to, ok := ledger.Account(c.to)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: destination account %d is not declared\n", c.to)
			return subcommands.ExitUsageError
		}
		tx = tx.WithToAmount(rappen.M(c.toAmount, to.Currency))
	}
	if c.quantity != 0 {
		tx = tx.WithQuantity(rappen.Q(c.quantity))
	}
	return appendTransaction(tx)
}
