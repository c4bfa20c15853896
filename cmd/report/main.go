// Package main provides the report command: verify and summarize an exported file.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"brandscraper/internal/config"
	"brandscraper/internal/exporter"
	"brandscraper/internal/formatter"
	"brandscraper/internal/logger"
	"brandscraper/pkg/metadata"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := pflag.NewFlagSet("report", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: report [flags] [output_file]\n\nFlags:\n")
		fs.PrintDefaults()
	}

	expected := fs.String("sha256", "", "Expected SHA-256 of the file; the report fails on mismatch")
	logLevel := fs.String(config.FlagLogLevel, config.DefaultLogLevel, "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}

		return 1
	}

	log := logger.NewLogger(*logLevel, config.DefaultLogEncoding)

	defer func() {
		_ = log.Sync()
	}()

	path := config.DefaultOutputFile
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}

	meta, err := metadata.Describe(path)
	if err != nil {
		log.Error("❌ Cannot read export", "path", path, "error", err)
		return 1
	}

	if *expected != "" {
		if err := metadata.Verify(path, *expected); err != nil {
			log.Error("❌ Checksum verification failed", "path", path, "error", err)
			return 1
		}

		log.Info("✅ Checksum verified", "path", path)
	}

	records, err := exporter.Load(path)
	if err != nil {
		log.Error("❌ Export is not a record array", "path", path, "error", err)
		return 1
	}

	degraded := 0

	for i := range records {
		if records[i].IsDegraded() {
			degraded++
		}
	}

	fmt.Print(formatter.SummaryTable(records))
	fmt.Printf("\nRecords: %d (degraded: %d)\nSHA-256: %s\nModified: %s\n",
		len(records), degraded, meta.Hash, meta.LastModify.Format("2006-01-02 15:04:05 MST"))

	return 0
}
