package pricing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
	"github.com/briandowns/spinner"
	awsclient "github.com/younsl/logsweep/pkg/aws"
)

// The AWS Pricing API is only available in us-east-1 and ap-south-1.
const pricingRegion = "us-east-1"

// maxPricingPages bounds how many GetProducts pages one lookup reads.
const maxPricingPages = 5

// ProductsAPI is the subset of the Pricing client used for lookups.
type ProductsAPI interface {
	GetProducts(ctx context.Context, params *pricing.GetProductsInput, optFns ...func(*pricing.Options)) (*pricing.GetProductsOutput, error)
}

var (
	pricingSpinners   = make(map[string]*spinner.Spinner)
	pricingSpinnersMu sync.Mutex
)

// newPricingClient creates the Pricing API client and the message shown to the user
// once scanning finishes.
func newPricingClient(ctx context.Context) (ProductsAPI, string, error) {
	cfg, err := awsclient.LoadConfig(ctx, pricingRegion)
	if err != nil {
		return nil, fmt.Sprintf("Error loading AWS config for pricing API: %v. Using fallback pricing.", err), err
	}
	msg := fmt.Sprintf("AWS Pricing API initialized in %s region (https://api.pricing.%s.amazonaws.com)", pricingRegion, pricingRegion)
	return pricing.NewFromConfig(cfg), msg, nil
}

// startServiceSpinner starts the spinner for a service with appropriate text
func startServiceSpinner(service, resourceType, region string) {
	pricingSpinnersMu.Lock()
	defer pricingSpinnersMu.Unlock()

	s, exists := pricingSpinners[service]
	if !exists {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Color("green")
		pricingSpinners[service] = s
	}
	s.Suffix = fmt.Sprintf(" Retrieving %s pricing for %s in %s", service, resourceType, region)
	s.Start()
}

// stopServiceSpinner stops the spinner for a service
func stopServiceSpinner(service string) {
	pricingSpinnersMu.Lock()
	defer pricingSpinnersMu.Unlock()

	if s, exists := pricingSpinners[service]; exists {
		s.Stop()
	}
}

// getPricingProducts returns price list entries matching filters, reading at most
// maxPricingPages pages.
func getPricingProducts(ctx context.Context, client ProductsAPI, serviceCode string, filters []types.Filter) ([]string, error) {
	paginator := pricing.NewGetProductsPaginator(client, &pricing.GetProductsInput{
		ServiceCode: aws.String(serviceCode),
		Filters:     filters,
		MaxResults:  aws.Int32(100),
	})

	var products []string
	for page := 0; paginator.HasMorePages() && page < maxPricingPages; page++ {
		resp, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error calling AWS Pricing API: %w", err)
		}
		products = append(products, resp.PriceList...)
	}
	return products, nil
}
