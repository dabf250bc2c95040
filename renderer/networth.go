package renderer

import (
	"fmt"
	"strings"

	"github.com/sfehr/rappen"
)

// NetWorthMarkdown renders the monthly net-worth series with the change
// between consecutive points.
func NetWorthMarkdown(report *rappen.NetWorthReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Net Worth (%s)\n\n", report.Currency)
	fmt.Fprintln(&b, "| Month End | Net Worth | Change |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	for i, p := range report.Points {
		change := ""
		if i > 0 {
			change = p.Value.Sub(report.Points[i-1].Value).SignedString()
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", p.On, p.Value, change)
	}

	return b.String()
}
