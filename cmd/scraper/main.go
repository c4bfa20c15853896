// Package main provides the brand scraper command: identifiers in, JSON out.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"brandscraper/internal/config"
	"brandscraper/internal/crawler"
	"brandscraper/internal/exporter"
	"brandscraper/internal/formatter"
	"brandscraper/internal/logger"
	"brandscraper/internal/worker"
	"brandscraper/pkg/metadata"
	"brandscraper/pkg/sigctx"
)

const (
	exitOK    = 0
	exitError = 1

	dotEnvFile      = ".env"
	flagWriteConfig = "write-config"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// 1. Define Command-Line Flags
	// ---------------------------
	fs := pflag.NewFlagSet("scraper", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: scraper [flags] [input_file [output_file]]\n\nFlags:\n")
		fs.PrintDefaults()
	}

	config.RegisterFlags(fs)
	writeConfig := fs.String(flagWriteConfig, "", "Write the effective configuration to this path and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}

		return exitError
	}

	if fs.NArg() > 2 {
		fmt.Fprintf(os.Stderr, "too many arguments: %v\n", fs.Args())
		fs.Usage()

		return exitError
	}

	// 2. Load Configuration
	// ---------------------
	if err := config.LoadDotEnv(dotEnvFile); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		return exitError
	}

	configPath := config.ResolveConfigPath(fs)

	cfg, err := config.LoadConfig(configPath, fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config from %s: %v\n", configPath, err)
		return exitError
	}

	cfg.ApplyOverrides(fs.Arg(0), fs.Arg(1))

	log := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Encoding)

	defer func() {
		_ = log.Sync()
	}()

	if *writeConfig != "" {
		if err := cfg.SaveConfig(*writeConfig); err != nil {
			log.Error("❌ Failed to write config", "path", *writeConfig, "error", err)
			return exitError
		}

		log.Info("✅ Configuration written", "path", *writeConfig)

		return exitOK
	}

	log.Info("🚀 Starting brand scraper", "config", configPath, "settings", cfg.String())

	// 3. Read Identifiers
	// -------------------
	identifiers, err := worker.LoadIdentifiers(cfg.InputFile)
	if err != nil {
		if errors.Is(err, worker.ErrInputNotFound) {
			log.Warn("⚠️  Input file not found; nothing to do", "path", cfg.InputFile)
			return exitOK
		}

		log.Error("❌ Failed to read identifiers", "path", cfg.InputFile, "error", err)

		return exitError
	}

	if len(identifiers) == 0 {
		log.Warn("⚠️  No identifiers to process", "path", cfg.InputFile)
		return exitOK
	}

	// 4. Scrape
	// ---------
	ctx, stop := sigctx.NotifyContext(context.Background())
	defer stop()

	startTime := time.Now()

	scraper := crawler.NewScraperWithConfig(&cfg.Scraper)
	client := crawler.NewClient(scraper, cfg.Scraper.BaseURL, log)
	runner := worker.NewRunner(client, log)

	records, err := runner.Run(ctx, identifiers)
	if err != nil {
		log.Error("❌ Scrape aborted; no output written", "error", err)
		return exitError
	}

	// 5. Export
	// ---------
	if err := exporter.Export(records, cfg.OutputFile); err != nil {
		log.Error("❌ Export failed", "path", cfg.OutputFile, "error", err)
		return exitError
	}

	hash, err := metadata.FileHash(cfg.OutputFile)
	if err != nil {
		log.Warn("⚠️  Could not hash output file", "path", cfg.OutputFile, "error", err)
	}

	log.Info("✅ Records saved",
		"count", len(records),
		"path", cfg.OutputFile,
		"sha256", hash,
		"duration", time.Since(startTime),
	)

	// 6. Final Report
	// ---------------
	if cfg.Report.Summary {
		fmt.Print(formatter.SummaryTable(records))
	}

	return exitOK
}
