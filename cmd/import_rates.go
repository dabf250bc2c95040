package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/sfehr/rappen"
)

// importRatesCmd imports exchange rates from a JSON feed.
type importRatesCmd struct {
	file     string
	rows     string
	date     string
	currency string
	rate     string
}

func (*importRatesCmd) Name() string     { return "import-rates" }
func (*importRatesCmd) Synopsis() string { return "import exchange rates from a JSON document" }
func (*importRatesCmd) Usage() string {
	return `rpn import-rates -f <file> [-rows <path>] [-date <path>] [-c <path>] [-r <path>]

  Import exchange rate observations from a JSON document. The -rows JSONPath
  selects the list of observations; the other paths are evaluated on each row.
  Defaults fit a flat {"observations": [{date, currency, rate}, ...]} feed.

Usage Examples:
$ rpn import-rates -f rates.json
$ rpn import-rates -f snb.json -rows '$.payload' -date '$.d' -c '$.ccy' -r '$.value'

`
}

func (c *importRatesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "JSON document to import, '-' for stdin")
	f.StringVar(&c.rows, "rows", "$.observations", "JSONPath selecting the list of observations")
	f.StringVar(&c.date, "date", "$.date", "JSONPath to the observation date, within a row")
	f.StringVar(&c.currency, "c", "$.currency", "JSONPath to the quoted currency, within a row")
	f.StringVar(&c.rate, "r", "$.rate", "JSONPath to the rate, within a row")
}

func (c *importRatesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in := os.Stdin
	if c.file != "" && c.file != "-" {
		file, err := os.Open(c.file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening %q: %v\n", c.file, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		in = file
	}

	rates, marks, err := DecodeMarket()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: decoding market data: %v\n", err)
		return subcommands.ExitFailure
	}
	spec := rappen.RateImportSpec{Rows: c.rows, Date: c.date, Currency: c.currency, Rate: c.rate}
	n, err := rappen.ImportRates(rates, in, spec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: importing rates: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := SaveMarket(rates, marks); err != nil {
		fmt.Fprintf(os.Stderr, "Error: saving market data: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Imported %d rates into %s\n", n, *marketFile)
	return subcommands.ExitSuccess
}
