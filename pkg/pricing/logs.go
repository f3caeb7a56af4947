package pricing

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
	"github.com/younsl/logsweep/pkg/utils"
)

const (
	logsServiceCode   = "AmazonCloudWatch"
	logsServiceLabel  = "CloudWatch Logs"
	logsStorageUsage  = "TimedStorage-ByteHrs"
	logsStorageUnit   = "GB-Mo"
	logsLookupTimeout = 10 * time.Second
)

// LogsStorageEstimator estimates the monthly storage cost of log groups. Prices
// are looked up once per region and fall back to DefaultLogsStoragePrice.
type LogsStorageEstimator struct {
	newClient   func(ctx context.Context) (ProductsAPI, string, error)
	showSpinner bool

	initOnce    sync.Once
	client      ProductsAPI
	initMessage string

	mu    sync.RWMutex
	cache map[string]float64
}

// NewLogsStorageEstimator creates an estimator backed by the AWS Pricing API.
func NewLogsStorageEstimator(showSpinner bool) *LogsStorageEstimator {
	return &LogsStorageEstimator{
		newClient:   newPricingClient,
		showSpinner: showSpinner,
		cache:       make(map[string]float64),
	}
}

// NewLogsStorageEstimatorWithClient creates an estimator using client for lookups.
func NewLogsStorageEstimatorWithClient(client ProductsAPI) *LogsStorageEstimator {
	return &LogsStorageEstimator{
		newClient: func(context.Context) (ProductsAPI, string, error) {
			return client, "", nil
		},
		cache: make(map[string]float64),
	}
}

func (e *LogsStorageEstimator) init(ctx context.Context) {
	e.initOnce.Do(func() {
		client, msg, err := e.newClient(ctx)
		e.initMessage = msg
		if err == nil {
			e.client = client
		}
	})
}

// InitMessage returns the API initialization message and clears it.
func (e *LogsStorageEstimator) InitMessage() string {
	msg := e.initMessage
	e.initMessage = ""
	return msg
}

// PricePerGBMonth returns the archived storage price in region.
func (e *LogsStorageEstimator) PricePerGBMonth(ctx context.Context, region string) (float64, PricingSource) {
	e.init(ctx)

	e.mu.RLock()
	price, found := e.cache[region]
	e.mu.RUnlock()
	if found {
		UpdateCacheHitStats(logsServiceLabel, region)
		return price, PricingSourceCache
	}

	if e.client == nil {
		UpdateAPIFailureStats(logsServiceLabel, region)
		return DefaultLogsStoragePrice, PricingSourceDefault
	}

	price, err := e.fetchPrice(ctx, region)
	if err != nil {
		UpdateAPIFailureStats(logsServiceLabel, region)
		price = DefaultLogsStoragePrice
	} else {
		UpdateAPISuccessStats(logsServiceLabel, region)
	}

	e.mu.Lock()
	e.cache[region] = price
	e.mu.Unlock()

	if err != nil {
		return price, PricingSourceDefault
	}
	return price, PricingSourceAPI
}

// MonthlyCost estimates what storedBytes of archived logs cost per month in region.
func (e *LogsStorageEstimator) MonthlyCost(ctx context.Context, region string, storedBytes int64) (float64, PricingSource) {
	price, source := e.PricePerGBMonth(ctx, region)
	return float64(storedBytes) / bytesPerGB * price, source
}

func (e *LogsStorageEstimator) fetchPrice(ctx context.Context, region string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, logsLookupTimeout)
	defer cancel()

	if e.showSpinner {
		startServiceSpinner(logsServiceLabel, "log storage", GetRegionDescriptiveName(region))
		defer stopServiceSpinner(logsServiceLabel)
	}

	filters := []types.Filter{
		{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String("regionCode"),
			Value: aws.String(region),
		},
		{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String("productFamily"),
			Value: aws.String("Storage Snapshot"),
		},
	}

	products, err := getPricingProducts(ctx, e.client, logsServiceCode, filters)
	if err != nil {
		return 0, err
	}

	for _, product := range products {
		data, err := utils.ParseJSON(product)
		if err != nil {
			continue
		}
		usageType, err := utils.GetNestedString(data, "product", "attributes", "usagetype")
		if err != nil || !strings.HasSuffix(usageType, logsStorageUsage) {
			continue
		}
		return ExtractOnDemandPrice(product, logsStorageUnit)
	}

	return 0, fmt.Errorf("no %s storage price found in region %s", logsServiceLabel, region)
}
