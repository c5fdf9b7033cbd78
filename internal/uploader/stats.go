package uploader

import "log/slog"

// Stats summarizes one upload run. It exists for log visibility only; batch
// failures never turn into an error for the caller.
type Stats struct {
	// Records is the count of records handed to Upload, pre-dedup.
	Records int `json:"records"`
	// Deduped is how many records were dropped as duplicate tracking ids.
	Deduped int `json:"deduplicated"`
	// Dropped is how many records failed link validation.
	Dropped int `json:"dropped"`
	// Batches is the number of send batches formed.
	Batches int `json:"batches"`
	// Uploaded is the count of records in successfully sent batches.
	Uploaded int `json:"uploaded"`
	// Failed is the number of batches abandoned after retries.
	Failed int `json:"failed_batches"`
}

// LogValue lets a Stats value be logged as one structured group.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("records", s.Records),
		slog.Int("deduplicated", s.Deduped),
		slog.Int("dropped", s.Dropped),
		slog.Int("batches", s.Batches),
		slog.Int("uploaded", s.Uploaded),
		slog.Int("failed_batches", s.Failed),
	)
}
