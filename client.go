// Package korrektly is a typed client for the Korrektly hosted search API.
// It covers the dataset endpoints for chunk ingestion, search, autocomplete,
// and click tracking. The client performs no retries; callers that batch
// uploads own their own retry policy.
package korrektly

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// DefaultBaseURL is the production API host. Override with WithBaseURL.
const DefaultBaseURL = "https://api.korrektly.com"

// snippetLimit caps how much of a non-JSON body is carried in an APIError.
const snippetLimit = 512

// Client talks to the Korrektly API on behalf of one API key.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a non-production host.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient swaps the underlying HTTP client, e.g. to set timeouts.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client authenticated with the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateChunks creates or upserts a batch of chunks in the dataset and
// returns the server's summaries in request order.
func (c *Client) CreateChunks(ctx context.Context, datasetID string, chunks []ChunkData) ([]ChunkSummary, error) {
	var resp CreateChunksResponse
	payload := CreateChunksRequest{Chunks: chunks}
	if err := c.post(ctx, datasetPath(datasetID, "chunks"), payload, &resp); err != nil {
		return nil, err
	}
	return resp.ChunkMetadata, nil
}

// Search runs a search query against the dataset.
func (c *Client) Search(ctx context.Context, datasetID string, req SearchRequest) (*SearchResponse, error) {
	if req.SearchType != "" && !req.SearchType.IsValid() {
		return nil, fmt.Errorf("korrektly: invalid search type %q", req.SearchType)
	}
	var resp SearchResponse
	if err := c.post(ctx, datasetPath(datasetID, "search"), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Autocomplete returns prefix suggestions for a partial query.
func (c *Client) Autocomplete(ctx context.Context, datasetID string, req AutocompleteRequest) (*AutocompleteResponse, error) {
	var resp AutocompleteResponse
	if err := c.post(ctx, datasetPath(datasetID, "autocomplete"), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TrackClick records a result click for relevance feedback.
func (c *Client) TrackClick(ctx context.Context, datasetID string, req ClickRequest) (*ClickResponse, error) {
	var resp ClickResponse
	if err := c.post(ctx, datasetPath(datasetID, "clicks"), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func datasetPath(datasetID, endpoint string) string {
	return fmt.Sprintf("/api/v1/datasets/%s/%s", datasetID, endpoint)
}

// post sends an authenticated JSON request and decodes the JSON response into
// out. Non-2xx statuses and non-JSON success bodies surface as *APIError.
func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	isJSON := hasJSONContentType(resp.Header.Get("Content-Type"))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
		if isJSON {
			var parsed any
			if err := json.NewDecoder(resp.Body).Decode(&parsed); err == nil {
				apiErr.Body = parsed
			}
		} else {
			apiErr.Snippet = readSnippet(resp.Body)
		}
		return apiErr
	}

	if !isJSON {
		return &APIError{
			StatusCode:        resp.StatusCode,
			Status:            resp.Status,
			Snippet:           readSnippet(resp.Body),
			ProtocolViolation: true,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func hasJSONContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func readSnippet(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, snippetLimit))
	return strings.TrimSpace(string(raw))
}
