package korrektly

// AutocompleteRequest is the payload for the autocomplete endpoint.
type AutocompleteRequest struct {
	Query      string     `json:"query"`
	SearchType SearchType `json:"search_type,omitempty"`
	Limit      int        `json:"limit,omitempty"`
}

// Suggestion is one autocomplete candidate.
type Suggestion struct {
	Text       string  `json:"text"`
	TrackingID string  `json:"tracking_id,omitempty"`
	Score      float64 `json:"score"`
}

// AutocompleteResponse is the autocomplete endpoint's reply.
type AutocompleteResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}
