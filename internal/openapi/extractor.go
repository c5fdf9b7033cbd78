// Package openapi turns a hosted OpenAPI specification into one chunk record
// per (path, method) operation, ready for upload alongside markdown chunks.
package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	korrektly "github.com/korrektly/korrektly-go"
	"github.com/korrektly/korrektly-go/internal/docs"
)

// MarkerTag labels every operation record and is excluded from hierarchy
// derivation when it appears as a path-prefix segment.
const MarkerTag = "openapi-route"

// httpMethods lists the recognized operation keys of a path item, in the
// order operations are emitted.
var httpMethods = []string{"get", "post", "put", "patch", "delete", "options", "head"}

// Extractor fetches and flattens one specification document.
type Extractor struct {
	SpecURL    string
	RootURL    string
	APIRefPath string
	Upsert     bool
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Extract returns one record per operation. Fetch and parse failures are not
// fatal to the caller: the error is logged and whatever records were built so
// far come back, possibly none.
func (e *Extractor) Extract(ctx context.Context) []korrektly.ChunkData {
	doc, err := e.fetch(ctx)
	if err != nil {
		e.Logger.Error("openapi extraction failed", "url", e.SpecURL, "error", err)
		return nil
	}

	doc = Dereference(doc)

	paths, ok := doc["paths"].(map[string]any)
	if !ok || len(paths) == 0 {
		e.Logger.Warn("openapi document has no paths", "url", e.SpecURL)
		return nil
	}

	pathKeys := make([]string, 0, len(paths))
	for key := range paths {
		pathKeys = append(pathKeys, key)
	}
	sort.Strings(pathKeys)

	hierarchy := e.hierarchy()

	var records []korrektly.ChunkData
	for _, apiPath := range pathKeys {
		item, ok := paths[apiPath].(map[string]any)
		if !ok {
			continue
		}
		for _, method := range httpMethods {
			op, ok := item[method].(map[string]any)
			if !ok {
				continue
			}
			records = append(records, e.operationRecord(apiPath, method, op, hierarchy))
		}
	}

	e.Logger.Info("extracted openapi operations", "url", e.SpecURL, "records", len(records))
	return records
}

func (e *Extractor) fetch(ctx context.Context) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.SpecURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	client := e.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch spec: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch spec: status %s", resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read spec: %w", err)
	}

	doc := map[string]any{}
	if isYAMLURL(e.SpecURL) {
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml spec: %w", err)
		}
	} else {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parse json spec: %w", err)
		}
	}
	return doc, nil
}

func isYAMLURL(specURL string) bool {
	path := specURL
	if u, err := url.Parse(specURL); err == nil && u.Path != "" {
		path = u.Path
	}
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}

func (e *Extractor) operationRecord(apiPath, method string, op map[string]any, hierarchy []string) korrektly.ChunkData {
	summary, _ := op["summary"].(string)
	description, _ := op["description"].(string)

	trackingID, _ := op["operationId"].(string)
	if trackingID == "" {
		trackingID = docs.GenerateTrackingID(method, apiPath)
	}

	label := endpointLabel(summary, apiPath)
	pageURL := joinURL(e.RootURL, e.APIRefPath, trackingID)

	headingText := strings.ToUpper(method) + " " + firstNonEmpty(summary, apiPath)
	if label != "" {
		headingText += " " + label
	}

	heading := fmt.Sprintf(`<h2><span class="openapi-method">%s</span> %s <span class="endpoint-label">%s</span></h2>`,
		strings.ToUpper(method), firstNonEmpty(summary, apiPath), label)
	chunkHTML := heading
	cleanDesc := docs.CleanText(description)
	if cleanDesc != "" {
		chunkHTML += "\n<p>" + cleanDesc + "</p>"
	}

	content := docs.CleanText(headingText)
	if cleanDesc != "" {
		content += "\n" + cleanDesc
	}

	metadata := map[string]any{
		"operation_id": trackingID,
		"method":       strings.ToUpper(method),
		"path":         apiPath,
		"endpoint":     label,
		"url":          pageURL,
		"hierarchy":    hierarchy,
	}
	if summary != "" {
		metadata["summary"] = summary
	}
	if description != "" {
		metadata["description"] = description
	}

	tags := []string{MarkerTag, trackingID, method}
	if rawTags, ok := op["tags"].([]any); ok {
		for _, tag := range rawTags {
			if s, ok := tag.(string); ok && s != "" {
				tags = append(tags, s)
			}
		}
		metadata["tags"] = tags[3:]
	}

	return korrektly.ChunkData{
		ChunkHTML:          chunkHTML,
		TrackingID:         trackingID,
		Link:               pageURL,
		TagSet:             tags,
		Metadata:           metadata,
		SemanticContent:    content,
		FulltextContent:    content,
		Weight:             1.0,
		UpsertByTrackingID: e.Upsert,
		GroupTrackingIDs:   []string{apiPath},
	}
}

// hierarchy splits the API-reference path prefix into segments, excluding the
// reserved marker segment.
func (e *Extractor) hierarchy() []string {
	var segments []string
	for _, segment := range strings.Split(e.APIRefPath, "/") {
		if segment == "" || segment == "." || segment == MarkerTag {
			continue
		}
		segments = append(segments, segment)
	}
	return segments
}

// endpointLabel derives a readable label from an operation summary: the first
// token names the namespace and the remainder is pluralized. An empty summary
// falls back to the raw path.
func endpointLabel(summary, apiPath string) string {
	words := strings.Fields(summary)
	if len(words) == 0 {
		return apiPath
	}
	namespace := strings.ToLower(words[0])
	if len(words) == 1 {
		return namespace
	}
	rest := strings.ToLower(strings.Join(words[1:], " "))
	if !strings.HasSuffix(rest, "s") {
		rest += "s"
	}
	return namespace + " " + rest
}

func joinURL(parts ...string) string {
	var kept []string
	for _, part := range parts {
		part = strings.Trim(part, "/")
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, "/")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
