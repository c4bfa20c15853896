package normalizer

import (
	"errors"
	"fmt"

	"brandscraper/internal/models"
)

// Validation errors.
var (
	ErrMissingURL            = errors.New("brand record has no url")
	ErrDegradedRecordHasData = errors.New("degraded brand record carries business fields")
	ErrNilList               = errors.New("brand record list field is nil")
)

// Validator checks the structural invariants of brand records.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks that a degraded record carries only token, url and
// source_error, and that a healthy record has its list fields initialized.
func (v *Validator) Validate(b models.BrandRecord) error {
	if b.URL == nil {
		return ErrMissingURL
	}

	if b.IsDegraded() {
		if field := populatedBusinessField(b); field != "" {
			return fmt.Errorf("%w: %s", ErrDegradedRecordHasData, field)
		}

		return nil
	}

	switch {
	case b.Badges == nil:
		return fmt.Errorf("%w: badges", ErrNilList)
	case b.BusinessIdentifiers == nil:
		return fmt.Errorf("%w: business_identifiers", ErrNilList)
	case b.StoryImages == nil:
		return fmt.Errorf("%w: story_images", ErrNilList)
	}

	return nil
}

// populatedBusinessField returns the JSON name of the first non-null field
// other than token, url and source_error.
func populatedBusinessField(b models.BrandRecord) string {
	checks := []struct {
		name string
		set  bool
	}{
		{"name", b.Name != nil},
		{"description", b.Description != nil},
		{"short_description", b.ShortDescription != nil},
		{"instagram_handle", b.InstagramHandle != nil},
		{"country", b.Country != nil},
		{"made_in", b.MadeIn != nil},
		{"active_products_count", b.ActiveProductsCount != nil},
		{"lead_time_days", b.LeadTimeDays != nil},
		{"first_order_minimum_amount", b.FirstOrderMinimumAmount != nil},
		{"accepted_terms", b.AcceptedTerms != nil},
		{"eco_friendly", b.EcoFriendly != nil},
		{"women_owned", b.WomenOwned != nil},
		{"sold_on_amazon", b.SoldOnAmazon != nil},
		{"badges", b.Badges != nil},
		{"business_identifiers", b.BusinessIdentifiers != nil},
		{"story_images", b.StoryImages != nil},
		{"video_url", b.VideoURL != nil},
		{"brand_reviews_summary", b.BrandReviewsSummary != nil},
		{"vacation_start_date", b.VacationStartDate != nil},
		{"vacation_end_date", b.VacationEndDate != nil},
		{"vacation_banner_text", b.VacationBannerText != nil},
	}

	for _, c := range checks {
		if c.set {
			return c.name
		}
	}

	return ""
}
