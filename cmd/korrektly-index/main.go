// Command korrektly-index walks a documentation tree (and optionally an
// OpenAPI specification), converts it into chunk records, and uploads them to
// a Korrektly dataset.
//
// The API token comes from the KORREKTLY_API_KEY environment variable; the
// dataset id from -dataset-id or KORREKTLY_DATASET_ID. Missing configuration
// exits with code 1 before any work starts. A run that completes, even with
// abandoned batches, exits 0.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	korrektly "github.com/korrektly/korrektly-go"
	"github.com/korrektly/korrektly-go/internal/config"
	"github.com/korrektly/korrektly-go/internal/docs"
	"github.com/korrektly/korrektly-go/internal/gitignore"
	"github.com/korrektly/korrektly-go/internal/openapi"
	"github.com/korrektly/korrektly-go/internal/uploader"
)

func main() {
	os.Exit(run())
}

func run() int {
	var cfg config.Config
	flag.StringVar(&cfg.DocsPath, "docs-path", "", "path to the documentation root (required)")
	flag.StringVar(&cfg.DatasetID, "dataset-id", "", "target dataset id (defaults to "+config.EnvDatasetID+")")
	flag.StringVar(&cfg.RootURL, "root-url", "", "site root prefixed to generated page URLs")
	flag.StringVar(&cfg.OpenAPIURL, "openapi-url", "", "URL of an OpenAPI spec to index alongside the docs")
	flag.StringVar(&cfg.APIRefPath, "api-ref-path", "api-reference", "path prefix of the rendered API reference")
	flag.IntVar(&cfg.BatchSize, "batch-size", uploader.DefaultBatchSize, "records per upload batch")
	flag.BoolVar(&cfg.Upsert, "upsert", true, "refresh chunks that already exist by tracking id")
	flag.BoolVar(&cfg.RespectGitignore, "respect-gitignore", true, "honor .gitignore patterns during discovery")
	flag.StringVar(&cfg.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flag.StringVar(&cfg.LogFormat, "log-format", "text", "log format (text or json)")
	flag.Parse()

	if err := cfg.Finalize(); err != nil {
		fmt.Fprintf(os.Stderr, "korrektly-index: %v\n", err)
		flag.Usage()
		return 1
	}

	logger := buildLogger(cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	clientOpts := []korrektly.Option{
		korrektly.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}),
	}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, korrektly.WithBaseURL(cfg.BaseURL))
	}
	client := korrektly.NewClient(cfg.APIKey, clientOpts...)

	var records []korrektly.ChunkData

	if cfg.OpenAPIURL != "" {
		extractor := &openapi.Extractor{
			SpecURL:    cfg.OpenAPIURL,
			RootURL:    cfg.RootURL,
			APIRefPath: cfg.APIRefPath,
			Upsert:     cfg.Upsert,
			Logger:     logger,
		}
		records = append(records, extractor.Extract(ctx)...)
	}

	markdownRecords, err := indexMarkdown(cfg, logger)
	if err != nil {
		logger.Error("reading docs directory failed", "path", cfg.DocsPath, "error", err)
		return 1
	}
	records = append(records, markdownRecords...)

	if len(records) == 0 {
		logger.Info("no records to upload")
		return 0
	}

	up := uploader.New(client, cfg.DatasetID,
		uploader.WithBatchSize(cfg.BatchSize),
		uploader.WithLogger(logger),
	)
	up.Upload(ctx, records)

	return 0
}

// indexMarkdown discovers and chunks every markdown/MDX file under the docs
// root. Per-file failures are logged inside the chunker; only a failure to
// read the root itself comes back as an error.
func indexMarkdown(cfg config.Config, logger *slog.Logger) ([]korrektly.ChunkData, error) {
	var matcher *gitignore.Matcher
	if cfg.RespectGitignore {
		var err error
		matcher, err = gitignore.Load(cfg.DocsPath)
		if err != nil {
			logger.Warn("could not read .gitignore, continuing without it", "error", err)
			matcher = nil
		}
	}

	scanner := &docs.Scanner{Root: cfg.DocsPath, Matcher: matcher, Logger: logger}
	files, err := scanner.Discover()
	if err != nil {
		return nil, err
	}
	logger.Info("discovered markdown files", "count", len(files), "path", cfg.DocsPath)

	chunker := docs.NewChunker(cfg.DocsPath, cfg.RootURL, cfg.Upsert, logger)

	var records []korrektly.ChunkData
	for _, rel := range files {
		records = append(records, chunker.ChunkFile(rel)...)
	}
	logger.Info("built markdown records", "records", len(records), "files", len(files))
	return records, nil
}

func buildLogger(level, format string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: l}
	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
