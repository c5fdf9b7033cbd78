// Package uploader deduplicates, validates, batches, and sends chunk records
// to the API. Failed batches are retried with capped exponential backoff and
// then abandoned; a run never aborts because one batch could not land.
package uploader

import (
	"context"
	"log/slog"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	korrektly "github.com/korrektly/korrektly-go"
)

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_submitter.go -package=mocks github.com/korrektly/korrektly-go/internal/uploader ChunkSubmitter

const (
	// DefaultBatchSize is the configuration default.
	DefaultBatchSize = 80
	// LegacyBatchSize mirrors the older default; callers that want the old
	// behavior opt in explicitly.
	LegacyBatchSize = 120
	// DefaultMaxRetries bounds attempts per batch.
	DefaultMaxRetries = 3

	baseBackoff = time.Second
	maxBackoff  = 10 * time.Second
)

// failedIndexPattern pulls a record index out of an API error body so the
// offending record can be named in the failure log.
var failedIndexPattern = regexp.MustCompile(`(?i)index[^0-9]{0,4}(\d+)`)

// ChunkSubmitter is the client seam the uploader drives.
type ChunkSubmitter interface {
	CreateChunks(ctx context.Context, datasetID string, chunks []korrektly.ChunkData) ([]korrektly.ChunkSummary, error)
}

// Uploader sends chunk records in sequential batches.
type Uploader struct {
	client       ChunkSubmitter
	datasetID    string
	batchSize    int
	maxRetries   int
	validateURLs bool
	logger       *slog.Logger
	sleep        func(context.Context, time.Duration) error
}

// Option configures an Uploader.
type Option func(*Uploader)

// WithBatchSize overrides the batch size; values below 1 are ignored.
func WithBatchSize(size int) Option {
	return func(u *Uploader) {
		if size > 0 {
			u.batchSize = size
		}
	}
}

// WithMaxRetries overrides the per-batch attempt cap; values below 1 are ignored.
func WithMaxRetries(retries int) Option {
	return func(u *Uploader) {
		if retries > 0 {
			u.maxRetries = retries
		}
	}
}

// WithURLValidation toggles dropping records whose link is malformed.
func WithURLValidation(enabled bool) Option {
	return func(u *Uploader) {
		u.validateURLs = enabled
	}
}

// WithLogger sets the uploader's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(u *Uploader) {
		u.logger = logger
	}
}

// New creates an uploader targeting one dataset.
func New(client ChunkSubmitter, datasetID string, opts ...Option) *Uploader {
	u := &Uploader{
		client:       client,
		datasetID:    datasetID,
		batchSize:    DefaultBatchSize,
		maxRetries:   DefaultMaxRetries,
		validateURLs: true,
		logger:       slog.Default(),
		sleep:        sleepWithContext,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Upload deduplicates records by tracking id (last occurrence wins), drops
// malformed links when validation is on, and sends the remainder in order,
// one batch at a time. It returns run statistics; partial failure is not an
// error.
func (u *Uploader) Upload(ctx context.Context, records []korrektly.ChunkData) Stats {
	runID := uuid.NewString()
	logger := u.logger.With("run_id", runID)

	stats := Stats{Records: len(records)}

	unique := dedupe(records)
	stats.Deduped = len(records) - len(unique)

	if u.validateURLs {
		kept := unique[:0]
		for _, record := range unique {
			if validLink(record.Link) {
				kept = append(kept, record)
				continue
			}
			stats.Dropped++
			logger.Warn("dropping record with invalid link", "tracking_id", record.TrackingID, "link", record.Link)
		}
		unique = kept
	}

	if len(unique) == 0 {
		logger.Info("nothing to upload")
		return stats
	}

	for start := 0; start < len(unique); start += u.batchSize {
		end := min(start+u.batchSize, len(unique))
		batch := unique[start:end]
		stats.Batches++

		if u.sendBatch(ctx, logger, batch, stats.Batches) {
			stats.Uploaded += len(batch)
		} else {
			stats.Failed++
		}
	}

	logger.Info("upload complete",
		"records", stats.Records,
		"deduplicated", stats.Deduped,
		"dropped", stats.Dropped,
		"batches", stats.Batches,
		"uploaded", stats.Uploaded,
		"failed_batches", stats.Failed,
	)
	return stats
}

// sendBatch attempts one batch with retries. It reports whether the batch
// landed; an abandoned batch is logged and the run moves on.
func (u *Uploader) sendBatch(ctx context.Context, logger *slog.Logger, batch []korrektly.ChunkData, number int) bool {
	var lastErr error
	for attempt := 1; attempt <= u.maxRetries; attempt++ {
		if attempt > 1 {
			delay := backoffDelay(attempt - 1)
			logger.Warn("retrying batch", "batch", number, "attempt", attempt, "delay", delay, "error", lastErr)
			if err := u.sleep(ctx, delay); err != nil {
				logger.Error("abandoning batch: canceled during backoff", "batch", number, "error", err)
				return false
			}
		}

		_, err := u.client.CreateChunks(ctx, u.datasetID, batch)
		if err == nil {
			logger.Info("batch uploaded", "batch", number, "size", len(batch), "attempts", attempt)
			return true
		}
		lastErr = err
	}

	args := []any{"batch", number, "size", len(batch), "attempts", u.maxRetries, "error", lastErr}
	if idx, ok := failedRecordIndex(lastErr, len(batch)); ok {
		args = append(args, "failed_tracking_id", batch[idx].TrackingID, "failed_link", batch[idx].Link)
	}
	logger.Error("abandoning batch after retries", args...)
	return false
}

// backoffDelay returns min(1s * 2^(failures-1), 10s).
func backoffDelay(failures int) time.Duration {
	delay := baseBackoff << (failures - 1)
	if delay > maxBackoff || delay <= 0 {
		return maxBackoff
	}
	return delay
}

// dedupe keeps one record per tracking id with map-overwrite semantics: the
// first occurrence fixes the position, the last occurrence supplies the value.
func dedupe(records []korrektly.ChunkData) []korrektly.ChunkData {
	order := make([]string, 0, len(records))
	byID := make(map[string]korrektly.ChunkData, len(records))
	for _, record := range records {
		if _, seen := byID[record.TrackingID]; !seen {
			order = append(order, record.TrackingID)
		}
		byID[record.TrackingID] = record
	}

	out := make([]korrektly.ChunkData, 0, len(order))
	for _, id := range order {
		out = append(out, byID[id])
	}
	return out
}

// validLink accepts an empty link, otherwise requires a parseable URL with no
// whitespace and no double slash beyond the scheme separator.
func validLink(link string) bool {
	if link == "" {
		return true
	}
	if strings.ContainsAny(link, " \t\n\r") {
		return false
	}
	if _, err := url.Parse(link); err != nil {
		return false
	}
	rest := link
	if idx := strings.Index(link, "://"); idx >= 0 {
		rest = link[idx+3:]
	}
	return !strings.Contains(rest, "//")
}

func failedRecordIndex(err error, batchSize int) (int, bool) {
	if err == nil {
		return 0, false
	}
	match := failedIndexPattern.FindStringSubmatch(err.Error())
	if match == nil {
		return 0, false
	}
	idx, convErr := strconv.Atoi(match[1])
	if convErr != nil || idx < 0 || idx >= batchSize {
		return 0, false
	}
	return idx, true
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
