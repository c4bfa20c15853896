// Package exporter writes merged brand records to disk.
package exporter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"brandscraper/internal/models"
)

// Exporter errors.
var (
	ErrWriteOutput = errors.New("failed to write output")
	ErrReadOutput  = errors.New("failed to read output")
)

const indent = "  "

// Marshal encodes records as an indented JSON array with raw UTF-8 and a
// trailing newline. A nil slice encodes as [].
func Marshal(records []models.MergedRecord) ([]byte, error) {
	if records == nil {
		records = []models.MergedRecord{}
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)

	// Encode appends the trailing newline.
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return buf.Bytes(), nil
}

// Export writes records to destination, creating parent directories.
func Export(records []models.MergedRecord, destination string) error {
	data, err := Marshal(records)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(destination); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: failed to create directory %s: %w", ErrWriteOutput, dir, err)
		}
	}

	if err := os.WriteFile(destination, data, 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}

// Load reads records previously written by Export.
func Load(source string) ([]models.MergedRecord, error) {
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadOutput, err)
	}

	var records []models.MergedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s is not a record array: %w", ErrReadOutput, source, err)
	}

	return records, nil
}
