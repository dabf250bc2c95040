package renderer

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sfehr/rappen"
)

// GainsMarkdown renders the gain/loss decomposition of a period.
func GainsMarkdown(report *rappen.GainReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Gain Report from %s to %s\n\n", report.Range.From, report.Range.To)
	fmt.Fprintf(&b, "All values in %s.\n\n", report.Currency)

	fmt.Fprintln(&b, "| Account | Start | Flow | Income | Fees | Gain | End |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|")
	for _, g := range report.Accounts {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			g.Name,
			g.StartValue,
			g.NetFlow.SignedString(),
			g.Income.SignedString(),
			g.Fees.SignedString(),
			g.Gain.SignedString(),
			g.EndValue,
		)
	}
	fmt.Fprintf(&b, "| **Total** | **%s** | **%s** | **%s** | **%s** | **%s** | **%s** |\n\n",
		report.StartValue,
		report.NetFlow.SignedString(),
		report.Income.SignedString(),
		report.Fees.SignedString(),
		report.Net.SignedString(),
		report.EndValue,
	)

	ConditionalBlock(&b, func(w io.Writer) bool {
		return renderBucket(w, "Winners", report.Winners)
	})
	ConditionalBlock(&b, func(w io.Writer) bool {
		return renderBucket(w, "Losers", report.Losers)
	})

	return b.String()
}

// renderBucket prints one winners/losers section, largest absolute gain first.
// It reports whether anything was written.
func renderBucket(w io.Writer, title string, bucket map[string]rappen.Money) bool {
	if len(bucket) == 0 {
		return false
	}
	names := make([]string, 0, len(bucket))
	for name := range bucket {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		gi, gj := bucket[names[i]].AsFloat(), bucket[names[j]].AsFloat()
		if abs(gi) != abs(gj) {
			return abs(gi) > abs(gj)
		}
		return names[i] < names[j]
	})

	fmt.Fprintf(w, "## %s\n\n", title)
	for _, name := range names {
		fmt.Fprintf(w, "- %s: %s\n", name, bucket[name].SignedString())
	}
	fmt.Fprintln(w)
	return true
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
