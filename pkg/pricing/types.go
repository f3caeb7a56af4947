package pricing

import (
	"sync"
)

// PricingSource represents the source of pricing information
type PricingSource string

const (
	// PricingSourceAPI indicates pricing data came from AWS API
	PricingSourceAPI PricingSource = "API"

	// PricingSourceCache indicates pricing data came from cache
	PricingSourceCache PricingSource = "Cache"

	// PricingSourceDefault indicates pricing data came from hardcoded defaults
	PricingSourceDefault PricingSource = "Default"

	// PricingSourceNA indicates pricing data is not available
	PricingSourceNA PricingSource = "N/A"
)

// DefaultLogsStoragePrice is the archived log storage price in USD per GB-month
// used when the Pricing API cannot be reached.
const DefaultLogsStoragePrice = 0.03

// bytesPerGB is the binary gigabyte AWS bills storage in.
const bytesPerGB = 1 << 30

// Stats tracking for pricing API calls
var (
	// pricingAPIStats tracks API call statistics by service and region
	pricingAPIStats = make(map[string]map[string]*APIStat)

	// pricingAPIStatsLock protects the stats map from concurrent access
	pricingAPIStatsLock sync.RWMutex
)

// APIStat counts Pricing API lookups for one service in one region.
type APIStat struct {
	Service   string
	Region    string
	Success   int
	Failure   int
	CacheHits int
}

// Total is the number of API calls made, excluding cache hits.
func (s APIStat) Total() int {
	return s.Success + s.Failure
}

// SuccessRate is the percentage of API calls that succeeded.
func (s APIStat) SuccessRate() float64 {
	if s.Total() == 0 {
		return 0
	}
	return float64(s.Success) / float64(s.Total()) * 100.0
}
