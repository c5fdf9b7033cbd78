package korrektly

// ChunkData describes one searchable unit of content to create or upsert in a
// dataset. TrackingID enables stable upsert-by-id semantics server-side and
// must be non-empty.
type ChunkData struct {
	ChunkHTML          string         `json:"chunk_html"`
	TrackingID         string         `json:"tracking_id"`
	Link               string         `json:"link,omitempty"`
	TagSet             []string       `json:"tag_set,omitempty"`
	Metadata           map[string]any `json:"metadata,omitempty"`
	SemanticContent    string         `json:"semantic_content,omitempty"`
	FulltextContent    string         `json:"fulltext_content,omitempty"`
	Weight             float64        `json:"weight,omitempty"`
	UpsertByTrackingID bool           `json:"upsert_by_tracking_id,omitempty"`
	GroupTrackingIDs   []string       `json:"group_tracking_ids,omitempty"`
}

// CreateChunksRequest is the payload for the chunk creation endpoint. The API
// accepts up to a batch of chunks per call.
type CreateChunksRequest struct {
	Chunks []ChunkData `json:"chunks"`
}

// ChunkSummary is the server's view of a created or upserted chunk.
type ChunkSummary struct {
	ID         string `json:"id"`
	TrackingID string `json:"tracking_id"`
	Link       string `json:"link,omitempty"`
	Updated    bool   `json:"updated,omitempty"`
}

// CreateChunksResponse wraps the summaries returned by chunk creation.
type CreateChunksResponse struct {
	ChunkMetadata []ChunkSummary `json:"chunk_metadata"`
}
