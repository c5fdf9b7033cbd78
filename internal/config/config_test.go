package config

import (
	"strings"
	"testing"

	"github.com/korrektly/korrektly-go/internal/uploader"
)

func TestFinalize_RequiresAPIKey(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvDatasetID, "ds-env")

	cfg := Config{DocsPath: "./docs"}
	err := cfg.Finalize()
	if err == nil || !strings.Contains(err.Error(), EnvAPIKey) {
		t.Fatalf("Finalize() = %v, want missing API key error", err)
	}
}

func TestFinalize_RequiresDocsPath(t *testing.T) {
	t.Setenv(EnvAPIKey, "key")

	cfg := Config{}
	if err := cfg.Finalize(); err == nil {
		t.Fatal("expected error for missing docs path")
	}
}

func TestFinalize_DatasetIDFromEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "key")
	t.Setenv(EnvDatasetID, "ds-env")

	cfg := Config{DocsPath: "./docs"}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	if cfg.DatasetID != "ds-env" {
		t.Errorf("DatasetID = %q, want env fallback", cfg.DatasetID)
	}
}

func TestFinalize_FlagBeatsEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "key")
	t.Setenv(EnvDatasetID, "ds-env")

	cfg := Config{DocsPath: "./docs", DatasetID: "ds-flag"}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	if cfg.DatasetID != "ds-flag" {
		t.Errorf("DatasetID = %q, want the flag value", cfg.DatasetID)
	}
}

func TestFinalize_BatchSizeDefault(t *testing.T) {
	t.Setenv(EnvAPIKey, "key")
	t.Setenv(EnvDatasetID, "ds")

	cfg := Config{DocsPath: "./docs", BatchSize: 0}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	if cfg.BatchSize != uploader.DefaultBatchSize {
		t.Errorf("BatchSize = %d, want %d", cfg.BatchSize, uploader.DefaultBatchSize)
	}
}

func TestFinalize_MissingDatasetID(t *testing.T) {
	t.Setenv(EnvAPIKey, "key")
	t.Setenv(EnvDatasetID, "")

	cfg := Config{DocsPath: "./docs"}
	if err := cfg.Finalize(); err == nil {
		t.Fatal("expected error for missing dataset id")
	}
}
