package normalizer

import (
	"math"

	"brandscraper/internal/models"
)

var productLeadTimePaths = []path{{"shipping", "lead_time_days"}, {"lead_time_days"}}

// ExtractProducts normalizes the product payload shapes the API returns:
// a bare array, or an object holding the array under "products" or "data".
func ExtractProducts(payload any) []any {
	switch val := payload.(type) {
	case []any:
		return val
	case map[string]any:
		if products, ok := val["products"].([]any); ok {
			return products
		}

		if data, ok := val["data"].([]any); ok {
			return data
		}
	}

	return nil
}

// Aggregate computes product statistics for a brand. Entries that are not
// objects are skipped; statistics that cannot be computed stay nil.
func Aggregate(payload any) models.ProductAggregate {
	var (
		agg       models.ProductAggregate
		seen      int
		active    int
		leadSum   float64
		leadCount int
		latest    string
	)

	for _, entry := range ExtractProducts(payload) {
		product, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		seen++

		if isActive(product) {
			active++
		}

		if days := toInt(firstValue(product, productLeadTimePaths...)); days != nil {
			leadSum += float64(*days)
			leadCount++
		}

		if created, ok := product["created_at"].(string); ok && created != "" && created > latest {
			latest = created
		}
	}

	if seen > 0 {
		agg.ActiveProductsCount = &active
	}

	if leadCount > 0 {
		agg.LeadTimeDays = truncateFloat(math.RoundToEven(leadSum / float64(leadCount)))
	}

	if latest != "" {
		agg.LastProductAddedAt = &latest
	}

	return agg
}

// isActive treats a missing "active" key as active. Any value other than
// JSON true, including null, strings and objects, counts as inactive.
func isActive(product map[string]any) bool {
	v, present := product["active"]
	if !present {
		return true
	}

	b, ok := v.(bool)

	return ok && b
}
