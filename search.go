package korrektly

// SearchType selects the retrieval strategy used by the search endpoint.
type SearchType string

const (
	SearchTypeHybrid   SearchType = "hybrid"
	SearchTypeSemantic SearchType = "semantic"
	SearchTypeFulltext SearchType = "fulltext"
)

// IsValid reports whether t is one of the supported search types.
func (t SearchType) IsValid() bool {
	switch t {
	case SearchTypeHybrid, SearchTypeSemantic, SearchTypeFulltext:
		return true
	}
	return false
}

// FieldMatch matches a metadata or tag field against one or more values.
// MatchAny succeeds when any value matches; MatchAll requires every value.
type FieldMatch struct {
	Field    string `json:"field"`
	MatchAny []any  `json:"match_any,omitempty"`
	MatchAll []any  `json:"match_all,omitempty"`
}

// Range filters a numeric field. Bounds are pointers so that zero remains a
// usable bound value.
type Range struct {
	GT  *float64 `json:"gt,omitempty"`
	GTE *float64 `json:"gte,omitempty"`
	LT  *float64 `json:"lt,omitempty"`
	LTE *float64 `json:"lte,omitempty"`
}

// TimestampRange filters a timestamp field using RFC3339 strings.
type TimestampRange struct {
	GT  string `json:"gt,omitempty"`
	GTE string `json:"gte,omitempty"`
	LT  string `json:"lt,omitempty"`
	LTE string `json:"lte,omitempty"`
}

// FilterClause is a single condition inside a boolean filter group. Exactly
// one of the match/range members should be set alongside Field.
type FilterClause struct {
	Field     string          `json:"field"`
	MatchAny  []any           `json:"match_any,omitempty"`
	MatchAll  []any           `json:"match_all,omitempty"`
	Range     *Range          `json:"range,omitempty"`
	DateRange *TimestampRange `json:"date_range,omitempty"`
}

// Filters combines clause groups with boolean semantics: every Must clause
// and at least one Should clause must hold, and no MustNot clause may hold.
type Filters struct {
	Must    []FilterClause `json:"must,omitempty"`
	Should  []FilterClause `json:"should,omitempty"`
	MustNot []FilterClause `json:"must_not,omitempty"`
}

// SearchRequest is the payload for the search endpoint. Either the legacy
// flat TagSet filter or the advanced Filters group may be supplied.
type SearchRequest struct {
	Query      string     `json:"query"`
	SearchType SearchType `json:"search_type"`
	Limit      int        `json:"limit,omitempty"`
	TrackQuery bool       `json:"track_query,omitempty"`
	TagSet     []string   `json:"tag_set,omitempty"`
	Filters    *Filters   `json:"filters,omitempty"`
}

// Scores carries the per-strategy relevance scores of one result.
type Scores struct {
	Hybrid   float64 `json:"hybrid,omitempty"`
	Dense    float64 `json:"dense,omitempty"`
	Sparse   float64 `json:"sparse,omitempty"`
	Fulltext float64 `json:"fulltext,omitempty"`
}

// SearchResult is one ranked hit.
type SearchResult struct {
	TrackingID string         `json:"tracking_id"`
	Content    string         `json:"content"`
	Link       string         `json:"link,omitempty"`
	TagSet     []string       `json:"tag_set,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Scores     Scores         `json:"scores"`
	Rank       int            `json:"rank"`
	GroupID    string         `json:"group_id,omitempty"`
}

// SearchResponse is the search endpoint's reply. QueryID is present when the
// request asked for query tracking and is what click tracking refers back to.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`
	QueryID string         `json:"query_id,omitempty"`
}
