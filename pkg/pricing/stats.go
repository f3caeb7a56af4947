package pricing

import "sort"

// GetAPIStats returns a snapshot of the pricing API statistics ordered by service and region.
func GetAPIStats() []APIStat {
	pricingAPIStatsLock.RLock()
	defer pricingAPIStatsLock.RUnlock()

	var stats []APIStat
	for _, regions := range pricingAPIStats {
		for _, stat := range regions {
			stats = append(stats, *stat)
		}
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Service != stats[j].Service {
			return stats[i].Service < stats[j].Service
		}
		return stats[i].Region < stats[j].Region
	})
	return stats
}

// ResetAPIStats clears the collected statistics.
func ResetAPIStats() {
	pricingAPIStatsLock.Lock()
	defer pricingAPIStatsLock.Unlock()
	pricingAPIStats = make(map[string]map[string]*APIStat)
}
