package normalizer

import (
	"brandscraper/internal/models"
)

// Merge overlays every present aggregate field onto the brand record.
// Aggregate values win on collision; nil aggregate fields leave the brand untouched.
func Merge(brand models.BrandRecord, agg models.ProductAggregate) models.MergedRecord {
	merged := models.MergedRecord{BrandRecord: brand}

	if agg.ActiveProductsCount != nil {
		count := *agg.ActiveProductsCount
		merged.ActiveProductsCount = &count
	}

	if agg.LeadTimeDays != nil {
		days := *agg.LeadTimeDays
		merged.LeadTimeDays = &days
	}

	if agg.LastProductAddedAt != nil {
		addedAt := *agg.LastProductAddedAt
		merged.LastProductAddedAt = &addedAt
	}

	return merged
}

// Processor turns the two raw payloads of one brand into a merged record.
type Processor struct {
	validator *Validator
}

// NewProcessor creates a new processor instance.
func NewProcessor() *Processor {
	return &Processor{
		validator: NewValidator(),
	}
}

// Process checks the brand record and merges the product aggregate into it.
func (p *Processor) Process(brand models.BrandRecord, agg models.ProductAggregate) (models.MergedRecord, error) {
	if err := p.validator.Validate(brand); err != nil {
		return models.MergedRecord{}, err
	}

	return Merge(brand, agg), nil
}
