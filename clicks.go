package korrektly

// ClickRequest records that a user clicked one search result. QueryID ties
// the click back to a tracked search; Position is the zero-based rank of the
// clicked result.
type ClickRequest struct {
	QueryID    string `json:"query_id,omitempty"`
	Query      string `json:"query,omitempty"`
	TrackingID string `json:"tracking_id"`
	Position   int    `json:"position"`
}

// ClickResponse acknowledges a recorded click.
type ClickResponse struct {
	Recorded bool `json:"recorded"`
}
