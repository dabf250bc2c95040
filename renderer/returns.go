package renderer

import (
	"fmt"
	"strings"

	"github.com/sfehr/rappen"
	"github.com/sfehr/rappen/date"
)

// ReturnRow is the pair of performance figures for one account. An
// undetermined metric (too few flows, no valuations) renders as "n/a".
type ReturnRow struct {
	Name   string
	XIRR   rappen.Percent
	XIRROk bool
	TWR    rappen.Percent
	TWROk  bool
}

// ReturnsMarkdown renders money-weighted and time-weighted returns per
// account, with the pooled portfolio figures last.
func ReturnsMarkdown(period date.Range, rows []ReturnRow, portfolio ReturnRow) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Returns from %s to %s\n\n", period.From, period.To)
	fmt.Fprintln(&b, "| Account | XIRR (annualized) | TWR (period) |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	for _, row := range rows {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", row.Name, percentCell(row.XIRR, row.XIRROk), percentCell(row.TWR, row.TWROk))
	}
	fmt.Fprintf(&b, "| **Portfolio** | **%s** | **%s** |\n",
		percentCell(portfolio.XIRR, portfolio.XIRROk),
		percentCell(portfolio.TWR, portfolio.TWROk),
	)

	return b.String()
}

func percentCell(p rappen.Percent, ok bool) string {
	if !ok {
		return "n/a"
	}
	return p.SignedString()
}
