// Package worker drives a scrape run: identifiers in, merged records out.
package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"brandscraper/internal/crawler"
	"brandscraper/internal/logger"
	"brandscraper/internal/models"
	"brandscraper/internal/normalizer"
)

// ErrInterrupted is returned by Run when the context is canceled mid-run.
var ErrInterrupted = errors.New("scrape run interrupted")

// BrandClient fetches the two payloads of one brand.
type BrandClient interface {
	FetchBrand(ctx context.Context, token string) (models.BrandRecord, error)
	FetchProductStats(ctx context.Context, token string) models.ProductAggregate
}

// Ensure crawler.Client implements BrandClient.
var _ BrandClient = (*crawler.Client)(nil)

// Runner processes identifiers sequentially, one brand at a time.
type Runner struct {
	client    BrandClient
	processor *normalizer.Processor
	logger    *logger.Logger
}

// NewRunner creates a runner that fetches through client.
func NewRunner(client BrandClient, log *logger.Logger) *Runner {
	if log == nil {
		log = logger.NewNop()
	}

	return &Runner{
		client:    client,
		processor: normalizer.NewProcessor(),
		logger:    log,
	}
}

// Run scrapes every identifier in order and returns one merged record per
// identifier that could be processed. Failed fetches still yield a degraded
// record; identifiers that fail unexpectedly are logged and dropped.
func (r *Runner) Run(ctx context.Context, identifiers []string) ([]models.MergedRecord, error) {
	runID := uuid.NewString()
	log := r.logger.With("run_id", runID)
	startTime := time.Now()
	total := len(identifiers)

	log.Info("🚀 Starting scrape run", "total", total)

	records := make([]models.MergedRecord, 0, total)
	degraded, dropped := 0, 0

	for i, identifier := range identifiers {
		if ctx.Err() != nil {
			log.Warn("Run interrupted", "processed", i, "total", total)
			return nil, fmt.Errorf("%w after %d of %d identifiers", ErrInterrupted, i, total)
		}

		log.Info("Processing", "index", i+1, "total", total, "identifier", identifier)

		record, err := r.processOne(ctx, identifier)
		if err != nil {
			if ctx.Err() != nil {
				log.Warn("Run interrupted", "processed", i, "total", total)
				return nil, fmt.Errorf("%w after %d of %d identifiers", ErrInterrupted, i, total)
			}

			log.Error("❌ Failed to process identifier", "identifier", identifier, "error", err)
			dropped++

			continue
		}

		if record.IsDegraded() {
			degraded++
		}

		records = append(records, record)
	}

	log.Info("✨ Scrape run complete",
		"records", len(records),
		"degraded", degraded,
		"dropped", dropped,
		"duration", time.Since(startTime),
	)

	return records, nil
}

// processOne runs the fetch, aggregate and merge steps for one identifier.
// A panic inside normalization is converted into an error.
func (r *Runner) processOne(ctx context.Context, identifier string) (record models.MergedRecord, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic while processing %q: %v", identifier, rec)
		}
	}()

	token := crawler.ExtractToken(identifier)

	brand, err := r.client.FetchBrand(ctx, token)
	if err != nil {
		return models.MergedRecord{}, fmt.Errorf("failed to fetch brand %s: %w", token, err)
	}

	agg := r.client.FetchProductStats(ctx, token)

	record, err = r.processor.Process(brand, agg)
	if err != nil {
		return models.MergedRecord{}, fmt.Errorf("failed to merge brand %s: %w", token, err)
	}

	return record, nil
}
