// Package normalizer maps loosely structured storefront payloads onto fixed records.
package normalizer

import (
	"brandscraper/internal/models"
)

// Fallback chains, evaluated in order. The first path with a value wins.
var (
	namePaths            = []path{{"name"}, {"brand_name"}}
	urlPaths             = []path{{"url"}}
	instagramPaths       = []path{{"instagram_handle"}, {"social", "instagram"}}
	countryPaths         = []path{{"based_in"}, {"country"}}
	activeCountPaths     = []path{{"active_products_count"}, {"products_summary", "active_count"}}
	brandLeadTimePaths   = []path{{"lead_time_days"}, {"shipping", "lead_time_days"}}
	reviewsSummaryPaths  = []path{{"brand_reviews_summary"}, {"reviews_summary"}}
	minimumAmountNested  = path{"first_order_minimum", "amount"}
	minimumAmountFlat    = path{"first_order_minimum_amount"}
	vacationStartPath    = path{"vacation", "start_date"}
	vacationEndPath      = path{"vacation", "end_date"}
	vacationBannerPath   = path{"vacation", "banner_text"}
	firstOrderMinimumKey = "first_order_minimum"
)

// UnwrapBrand returns raw["brand"] when it is an object, raw otherwise.
func UnwrapBrand(raw map[string]any) map[string]any {
	if inner, ok := raw["brand"].(map[string]any); ok {
		return inner
	}

	return raw
}

// NormalizeBrand builds a BrandRecord from a raw brand payload.
// requestedURL is used when the payload carries no url of its own.
// Missing or malformed values become nil; this function never fails.
func NormalizeBrand(token, requestedURL string, raw map[string]any) models.BrandRecord {
	src := UnwrapBrand(raw)
	if src == nil {
		src = map[string]any{}
	}

	url := firstString(src, urlPaths...)
	if url == nil {
		url = &requestedURL
	}

	return models.BrandRecord{
		Token:                   token,
		Name:                    firstString(src, namePaths...),
		Description:             stringField(src, path{"description"}),
		ShortDescription:        stringField(src, path{"short_description"}),
		URL:                     url,
		InstagramHandle:         firstString(src, instagramPaths...),
		Country:                 firstString(src, countryPaths...),
		MadeIn:                  stringField(src, path{"made_in"}),
		ActiveProductsCount:     toInt(firstValue(src, activeCountPaths...)),
		LeadTimeDays:            toInt(firstValue(src, brandLeadTimePaths...)),
		FirstOrderMinimumAmount: firstOrderMinimum(src),
		AcceptedTerms:           toBool(firstValue(src, path{"accepted_terms"})),
		EcoFriendly:             toBool(firstValue(src, path{"eco_friendly"})),
		WomenOwned:              toBool(firstValue(src, path{"women_owned"})),
		SoldOnAmazon:            toBool(firstValue(src, path{"sold_on_amazon"})),
		Badges:                  toList(firstValue(src, path{"badges"})),
		BusinessIdentifiers:     toList(firstValue(src, path{"business_identifiers"})),
		StoryImages:             toList(firstValue(src, path{"story_images"})),
		VideoURL:                stringField(src, path{"video_url"}),
		BrandReviewsSummary:     toMap(firstValue(src, reviewsSummaryPaths...)),
		VacationStartDate:       dateField(src, vacationStartPath),
		VacationEndDate:         dateField(src, vacationEndPath),
		VacationBannerText:      stringField(src, vacationBannerPath),
		SourceError:             nil,
	}
}

// firstOrderMinimum prefers the nested amount when first_order_minimum is an
// object and only then looks at the flat key.
func firstOrderMinimum(src map[string]any) *float64 {
	if _, nested := src[firstOrderMinimumKey].(map[string]any); nested {
		return toFloat(firstValue(src, minimumAmountNested))
	}

	return toFloat(firstValue(src, minimumAmountFlat))
}
