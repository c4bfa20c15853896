package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandscraper/internal/exporter"
	"brandscraper/internal/models"
	"brandscraper/pkg/metadata"
)

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	records := []models.MergedRecord{
		{BrandRecord: models.NewDegradedBrand("b_DOWN", "https://api.example/brands/b_DOWN", "HTTP 500")},
	}
	require.NoError(t, exporter.Export(records, path))

	hash, err := metadata.FileHash(path)
	require.NoError(t, err)

	assert.Equal(t, 0, run([]string{"--log-level", "error", path}))
	assert.Equal(t, 0, run([]string{"--log-level", "error", "--sha256", hash, path}))
	assert.Equal(t, 1, run([]string{"--log-level", "error", "--sha256", metadata.CalculateHash(nil), path}))
}

func TestRun_InvalidFile(t *testing.T) {
	dir := t.TempDir()

	assert.Equal(t, 1, run([]string{"--log-level", "error", filepath.Join(dir, "missing.json")}))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("not json"), 0644))
	assert.Equal(t, 1, run([]string{"--log-level", "error", bad}))
}
