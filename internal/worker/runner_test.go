package worker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandscraper/internal/crawler"
	"brandscraper/internal/logger"
	"brandscraper/internal/models"
)

func newAPIServer(t *testing.T, routes map[string]string, statuses map[string]int) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status, ok := statuses[r.URL.Path]; ok {
			w.WriteHeader(status)
			return
		}

		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server
}

func newRunner(server *httptest.Server) *Runner {
	client := crawler.NewClient(crawler.NewScraper(), server.URL, logger.NewNop())

	return NewRunner(client, logger.NewNop())
}

func TestRunner_Run_EndToEnd(t *testing.T) {
	server := newAPIServer(t,
		map[string]string{
			"/brands/b_GOOD": `{"brand": {"name": "Good Co", "lead_time_days": 3, "active_products_count": 1}}`,
			"/brands/b_GOOD/products": `[
				{"active": true, "lead_time_days": 9, "created_at": "2024-05-01T10:00:00Z"},
				{"active": true, "lead_time_days": 11}
			]`,
		},
		map[string]int{"/brands/b_FAIL": http.StatusInternalServerError},
	)

	records, err := newRunner(server).Run(context.Background(), []string{
		"b_FAIL",
		"https://site.example/brand/b_GOOD?ref=1",
	})
	require.NoError(t, err)
	require.Len(t, records, 2)

	failed := records[0]
	assert.Equal(t, "b_FAIL", failed.Token)
	require.NotNil(t, failed.SourceError)
	assert.Equal(t, "HTTP 500", *failed.SourceError)
	require.NotNil(t, failed.URL)
	assert.Equal(t, server.URL+"/brands/b_FAIL", *failed.URL)
	assert.Nil(t, failed.Name)
	assert.Nil(t, failed.LastProductAddedAt)

	good := records[1]
	assert.Equal(t, "b_GOOD", good.Token)
	assert.Nil(t, good.SourceError)
	require.NotNil(t, good.Name)
	assert.Equal(t, "Good Co", *good.Name)
	require.NotNil(t, good.ActiveProductsCount)
	assert.Equal(t, 2, *good.ActiveProductsCount)
	require.NotNil(t, good.LeadTimeDays)
	assert.Equal(t, 10, *good.LeadTimeDays)
	require.NotNil(t, good.LastProductAddedAt)
	assert.Equal(t, "2024-05-01T10:00:00Z", *good.LastProductAddedAt)
}

func TestRunner_Run_KeepsBrandValuesWhenProductsFail(t *testing.T) {
	server := newAPIServer(t,
		map[string]string{"/brands/b_A1": `{"name": "A", "lead_time_days": 4}`},
		map[string]int{"/brands/b_A1/products": http.StatusServiceUnavailable},
	)

	records, err := newRunner(server).Run(context.Background(), []string{"b_A1"})
	require.NoError(t, err)
	require.Len(t, records, 1)

	require.NotNil(t, records[0].LeadTimeDays)
	assert.Equal(t, 4, *records[0].LeadTimeDays)
	assert.Nil(t, records[0].ActiveProductsCount)
	assert.Nil(t, records[0].LastProductAddedAt)
}

func TestRunner_Run_DropsUnexpectedPayload(t *testing.T) {
	server := newAPIServer(t,
		map[string]string{
			"/brands/b_LIST": `["not", "a", "brand"]`,
			"/brands/b_OK":   `{"name": "Ok"}`,
		},
		nil,
	)

	records, err := newRunner(server).Run(context.Background(), []string{"b_LIST", "b_OK"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "b_OK", records[0].Token)
}

type panickingClient struct{}

func (panickingClient) FetchBrand(_ context.Context, token string) (models.BrandRecord, error) {
	if token == "b_BOOM" {
		panic("normalization exploded")
	}

	name := "fine"

	return models.BrandRecord{
		Token:               token,
		Name:                &name,
		URL:                 &name,
		Badges:              []any{},
		BusinessIdentifiers: []any{},
		StoryImages:         []any{},
	}, nil
}

func (panickingClient) FetchProductStats(context.Context, string) models.ProductAggregate {
	return models.ProductAggregate{}
}

func TestRunner_Run_RecoversFromPanic(t *testing.T) {
	records, err := NewRunner(panickingClient{}, nil).Run(context.Background(), []string{"b_BOOM", "b_FINE"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "b_FINE", records[0].Token)
}

func TestRunner_Run_Empty(t *testing.T) {
	records, err := NewRunner(panickingClient{}, nil).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestRunner_Run_Interrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records, err := NewRunner(panickingClient{}, nil).Run(ctx, []string{"b_FINE"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInterrupted)
	assert.Nil(t, records)
}

func TestRunner_Run_DegradedBrandKeepsProductStats(t *testing.T) {
	server := newAPIServer(t,
		map[string]string{
			"/brands/b_HALF/products": `{"products": [
				{"active": true, "lead_time_days": 6, "created_at": "2024-02-01T00:00:00Z"},
				{"active": false, "lead_time_days": 8}
			]}`,
		},
		map[string]int{"/brands/b_HALF": http.StatusInternalServerError},
	)

	records, err := newRunner(server).Run(context.Background(), []string{"b_HALF"})
	require.NoError(t, err)
	require.Len(t, records, 1)

	record := records[0]
	require.NotNil(t, record.SourceError)
	assert.Equal(t, "HTTP 500", *record.SourceError)
	assert.Nil(t, record.Name)
	assert.Nil(t, record.Badges)

	// Product statistics overlay the degraded brand.
	require.NotNil(t, record.ActiveProductsCount)
	assert.Equal(t, 1, *record.ActiveProductsCount)
	require.NotNil(t, record.LeadTimeDays)
	assert.Equal(t, 7, *record.LeadTimeDays)
	require.NotNil(t, record.LastProductAddedAt)
	assert.Equal(t, "2024-02-01T00:00:00Z", *record.LastProductAddedAt)
}
