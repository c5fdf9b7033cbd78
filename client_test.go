package korrektly

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClient_CreateChunks(t *testing.T) {
	var gotAuth, gotContentType, gotPath string
	var gotBody CreateChunksRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(CreateChunksResponse{
			ChunkMetadata: []ChunkSummary{{ID: "c1", TrackingID: "docs/intro-getting-started"}},
		})
	}))
	defer server.Close()

	client := NewClient("secret-key", WithBaseURL(server.URL))
	summaries, err := client.CreateChunks(context.Background(), "ds-1", []ChunkData{
		{ChunkHTML: "<h1>Intro</h1>", TrackingID: "docs/intro-getting-started"},
	})
	if err != nil {
		t.Fatalf("CreateChunks() error: %v", err)
	}

	if gotAuth != "Bearer secret-key" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if want := "/api/v1/datasets/ds-1/chunks"; gotPath != want {
		t.Errorf("path = %q, want %q", gotPath, want)
	}
	if len(gotBody.Chunks) != 1 {
		t.Fatalf("server received %d chunks, want 1", len(gotBody.Chunks))
	}
	if len(summaries) != 1 || summaries[0].TrackingID != "docs/intro-getting-started" {
		t.Errorf("summaries = %+v", summaries)
	}
}

func TestClient_NotFoundWithoutJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("no such dataset"))
	}))
	defer server.Close()

	client := NewClient("key", WithBaseURL(server.URL))
	_, err := client.CreateChunks(context.Background(), "missing", nil)
	if err == nil {
		t.Fatal("expected error for 404 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d", apiErr.StatusCode)
	}
	msg := err.Error()
	if !strings.Contains(msg, "404") || !strings.Contains(msg, "Not Found") {
		t.Errorf("message %q should contain the code and status text", msg)
	}
	if !strings.Contains(msg, "no such dataset") {
		t.Errorf("message %q should carry the body snippet", msg)
	}
}

func TestClient_FailureWithJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"chunk at index 3 has no tracking id"}`))
	}))
	defer server.Close()

	client := NewClient("key", WithBaseURL(server.URL))
	_, err := client.CreateChunks(context.Background(), "ds-1", nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is %T, want *APIError", err)
	}
	body, ok := apiErr.Body.(map[string]any)
	if !ok {
		t.Fatalf("Body is %T, want decoded JSON object", apiErr.Body)
	}
	if body["message"] != "chunk at index 3 has no tracking id" {
		t.Errorf("Body = %v", body)
	}
	if !strings.Contains(err.Error(), "index 3") {
		t.Errorf("message %q should include the parsed body", err.Error())
	}
}

func TestClient_NonJSONSuccessIsProtocolViolation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>login page</html>"))
	}))
	defer server.Close()

	client := NewClient("key", WithBaseURL(server.URL))
	_, err := client.Search(context.Background(), "ds-1", SearchRequest{Query: "q", SearchType: SearchTypeHybrid})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is %T, want *APIError", err)
	}
	if !apiErr.ProtocolViolation {
		t.Error("expected ProtocolViolation to be set")
	}
}

func TestClient_SearchRejectsUnknownType(t *testing.T) {
	client := NewClient("key")
	_, err := client.Search(context.Background(), "ds-1", SearchRequest{Query: "q", SearchType: "fuzzy"})
	if err == nil {
		t.Fatal("expected error for invalid search type")
	}
}

func TestSearchType_IsValid(t *testing.T) {
	for _, valid := range []SearchType{SearchTypeHybrid, SearchTypeSemantic, SearchTypeFulltext} {
		if !valid.IsValid() {
			t.Errorf("%q should be valid", valid)
		}
	}
	if SearchType("keyword").IsValid() {
		t.Error("unknown search type reported valid")
	}
}
