package renderer

import (
	"fmt"
	"strings"

	"github.com/sfehr/rappen"
)

// HoldingMarkdown renders the valuation of every account shown in the balance
// on a single date.
func HoldingMarkdown(report *rappen.HoldingReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Holdings on %s\n\n", report.On)
	fmt.Fprintln(&b, "| Account | Currency | Quantity | Native Value | Value |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|")
	for _, row := range report.Rows {
		quantity := ""
		if !row.Quantity.IsZero() {
			quantity = row.Quantity.String()
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			row.Name,
			row.Currency,
			quantity,
			row.NativeValue,
			row.MarketValue,
		)
	}
	fmt.Fprintf(&b, "| **Total** | %s | | | **%s** |\n", report.Currency, report.Total)

	return b.String()
}
