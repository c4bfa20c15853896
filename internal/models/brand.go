// Package models defines the records produced by the scraper and normalizer.
package models

// BrandRecord is the flat, fixed-shape view of a single brand.
// Nil pointers are written as JSON null so every record carries the same keys.
type BrandRecord struct {
	Token                   string         `json:"token"`
	Name                    *string        `json:"name"`
	Description             *string        `json:"description"`
	ShortDescription        *string        `json:"short_description"`
	URL                     *string        `json:"url"`
	InstagramHandle         *string        `json:"instagram_handle"`
	Country                 *string        `json:"country"`
	MadeIn                  *string        `json:"made_in"`
	ActiveProductsCount     *int           `json:"active_products_count"`
	LeadTimeDays            *int           `json:"lead_time_days"`
	FirstOrderMinimumAmount *float64       `json:"first_order_minimum_amount"`
	AcceptedTerms           *bool          `json:"accepted_terms"`
	EcoFriendly             *bool          `json:"eco_friendly"`
	WomenOwned              *bool          `json:"women_owned"`
	SoldOnAmazon            *bool          `json:"sold_on_amazon"`
	Badges                  []any          `json:"badges"`
	BusinessIdentifiers     []any          `json:"business_identifiers"`
	StoryImages             []any          `json:"story_images"`
	VideoURL                *string        `json:"video_url"`
	BrandReviewsSummary     map[string]any `json:"brand_reviews_summary"`
	VacationStartDate       *string        `json:"vacation_start_date"`
	VacationEndDate         *string        `json:"vacation_end_date"`
	VacationBannerText      *string        `json:"vacation_banner_text"`
	SourceError             *string        `json:"source_error"`
}

// NewDegradedBrand returns a record that only carries the token, the requested
// URL and the reason the brand could not be fetched.
func NewDegradedBrand(token, url, reason string) BrandRecord {
	return BrandRecord{
		Token:       token,
		URL:         &url,
		SourceError: &reason,
	}
}

// IsDegraded reports whether the record was produced from a failed fetch.
func (b *BrandRecord) IsDegraded() bool {
	return b.SourceError != nil
}

// ProductAggregate holds statistics derived from a brand's product list.
// A nil field could not be computed and must not overwrite brand data.
type ProductAggregate struct {
	ActiveProductsCount *int    `json:"active_products_count,omitempty"`
	LeadTimeDays        *int    `json:"lead_time_days,omitempty"`
	LastProductAddedAt  *string `json:"last_product_added_at,omitempty"`
}

// IsEmpty reports whether no statistic could be computed.
func (a ProductAggregate) IsEmpty() bool {
	return a.ActiveProductsCount == nil && a.LeadTimeDays == nil && a.LastProductAddedAt == nil
}

// MergedRecord is a BrandRecord overlaid with the present aggregate fields.
type MergedRecord struct {
	BrandRecord
	LastProductAddedAt *string `json:"last_product_added_at,omitempty"`
}
