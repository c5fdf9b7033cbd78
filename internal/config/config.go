// Package config builds the single configuration struct the indexer runs on.
// Flags are parsed by the caller; Finalize fills the env-backed fields and
// validates, so no other package reads the environment.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/korrektly/korrektly-go/internal/uploader"
)

// Environment variable names.
const (
	EnvAPIKey    = "KORREKTLY_API_KEY"
	EnvDatasetID = "KORREKTLY_DATASET_ID"
	EnvBaseURL   = "KORREKTLY_BASE_URL"
)

// Config holds every knob of an indexing run.
type Config struct {
	DocsPath         string
	DatasetID        string
	RootURL          string
	OpenAPIURL       string
	APIRefPath       string
	BatchSize        int
	Upsert           bool
	RespectGitignore bool

	APIKey  string
	BaseURL string

	LogLevel  string
	LogFormat string
}

// Finalize loads a .env file when present, fills env-backed fields that flags
// left empty, applies defaults, and validates the required fields. It must
// succeed before any filesystem or network work starts.
func (c *Config) Finalize() error {
	// Environment variables already set win over .env values.
	_ = godotenv.Load()

	c.APIKey = os.Getenv(EnvAPIKey)
	if c.DatasetID == "" {
		c.DatasetID = os.Getenv(EnvDatasetID)
	}
	if c.BaseURL == "" {
		c.BaseURL = os.Getenv(EnvBaseURL)
	}
	if c.BatchSize <= 0 {
		c.BatchSize = uploader.DefaultBatchSize
	}

	if c.DocsPath == "" {
		return fmt.Errorf("docs path is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("%s environment variable is required", EnvAPIKey)
	}
	if c.DatasetID == "" {
		return fmt.Errorf("dataset id is required (flag or %s)", EnvDatasetID)
	}
	return nil
}
