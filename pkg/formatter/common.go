package formatter

import (
	"fmt"
	"io"
	"time"

	"github.com/younsl/logsweep/pkg/pricing"
)

// printTimestamp prints the scan timestamp and duration
func printTimestamp(w io.Writer, scanStartTime time.Time, scanDuration time.Duration) {
	timeStr := scanStartTime.Format("2006-01-02 15:04:05")
	durationStr := fmt.Sprintf("%.2fs", scanDuration.Seconds())

	fmt.Fprintf(w, "Scan completed at %s (took %s)\n", timeStr, durationStr)
}

// GetPricingMarker returns the short label shown in the PRICING column.
func GetPricingMarker(source string) string {
	switch pricing.PricingSource(source) {
	case pricing.PricingSourceAPI:
		return "API"
	case pricing.PricingSourceCache:
		return "CACHE"
	case pricing.PricingSourceNA:
		return "N/A"
	default:
		return "-"
	}
}
