package pricing

import (
	"fmt"
	"strconv"

	"github.com/younsl/logsweep/pkg/utils"
)

type statKind int

const (
	statSuccess statKind = iota
	statFailure
	statCache
)

// UpdateCacheHitStats updates stats when a cache hit occurs
func UpdateCacheHitStats(service, region string) {
	updatePricingAPIStats(service, region, statCache)
}

// UpdateAPISuccessStats updates stats when an API call succeeds
func UpdateAPISuccessStats(service, region string) {
	updatePricingAPIStats(service, region, statSuccess)
}

// UpdateAPIFailureStats updates stats when an API call fails
func UpdateAPIFailureStats(service, region string) {
	updatePricingAPIStats(service, region, statFailure)
}

func updatePricingAPIStats(service, region string, kind statKind) {
	pricingAPIStatsLock.Lock()
	defer pricingAPIStatsLock.Unlock()

	if _, exists := pricingAPIStats[service]; !exists {
		pricingAPIStats[service] = make(map[string]*APIStat)
	}
	stat, exists := pricingAPIStats[service][region]
	if !exists {
		stat = &APIStat{Service: service, Region: region}
		pricingAPIStats[service][region] = stat
	}

	switch kind {
	case statSuccess:
		stat.Success++
	case statFailure:
		stat.Failure++
	case statCache:
		stat.CacheHits++
	}
}

// GetRegionDescriptiveName returns the human-readable region name used in AWS Pricing API
func GetRegionDescriptiveName(region string) string {
	if name, ok := utils.GetRegionDescriptiveName(region); ok {
		return name
	}
	return region
}

// ExtractOnDemandPrice extracts the on-demand price per unit from a price list entry,
// requiring the dimension to be billed in unit.
func ExtractOnDemandPrice(priceJSON, unit string) (float64, error) {
	priceData, err := utils.ParseJSON(priceJSON)
	if err != nil {
		return 0, fmt.Errorf("error parsing pricing data: %w", err)
	}

	terms, ok := priceData["terms"].(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("terms field not found or invalid")
	}

	onDemand, ok := terms["OnDemand"].(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("OnDemand field not found or invalid")
	}

	skuOffer, err := utils.GetFirstMapValue(onDemand)
	if err != nil {
		return 0, fmt.Errorf("no SKU offer found")
	}

	skuOfferMap, ok := skuOffer.(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("SKU offer is not a map")
	}

	priceDimensions, ok := skuOfferMap["priceDimensions"].(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("priceDimensions field not found or invalid")
	}

	dimension, err := utils.GetFirstMapValue(priceDimensions)
	if err != nil {
		return 0, fmt.Errorf("no price dimension found")
	}

	dimensionMap, ok := dimension.(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("price dimension is not a map")
	}

	if got, _ := utils.GetNestedString(dimensionMap, "unit"); got != unit {
		return 0, fmt.Errorf("unexpected pricing unit %q, want %q", got, unit)
	}

	usd, err := utils.GetNestedString(dimensionMap, "pricePerUnit", "USD")
	if err != nil {
		return 0, fmt.Errorf("USD price not found or invalid: %w", err)
	}

	price, err := strconv.ParseFloat(usd, 64)
	if err != nil {
		return 0, fmt.Errorf("error parsing price: %w", err)
	}

	return price, nil
}
