package formatter

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/younsl/logsweep/pkg/pricing"
)

// PrintPricingAPIStats prints the statistics of pricing API calls
func PrintPricingAPIStats(out io.Writer) {
	stats := pricing.GetAPIStats()
	if len(stats) == 0 {
		return
	}

	fmt.Fprintln(out, "\n## AWS Pricing API Call Statistics")

	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "SERVICE\tREGION\tAPI CALLS\tSUCCESS\tFAILURE\tCACHE HITS\tSUCCESS RATE")

	for _, stat := range stats {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%.1f%%\n",
			stat.Service,
			stat.Region,
			stat.Total(),
			stat.Success,
			stat.Failure,
			stat.CacheHits,
			stat.SuccessRate(),
		)
	}

	w.Flush()
}
