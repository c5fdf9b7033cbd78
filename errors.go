package korrektly

import "fmt"

// APIError is returned for any response the client cannot treat as success:
// a non-2xx status, or a 2xx response whose body is not JSON.
type APIError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int
	// Status is the HTTP status text (e.g. "404 Not Found").
	Status string
	// Body holds the decoded JSON error payload when the response declared
	// a JSON content type; nil otherwise.
	Body any
	// Snippet holds a truncated text excerpt of a non-JSON body.
	Snippet string
	// ProtocolViolation is set when the status was 2xx but the body was not
	// JSON, so the response could not be decoded into the expected shape.
	ProtocolViolation bool
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.ProtocolViolation {
		return fmt.Sprintf("korrektly: unexpected non-JSON response (%s): %s", e.Status, e.Snippet)
	}
	if e.Body != nil {
		return fmt.Sprintf("korrektly: request failed with status %d %s: %v", e.StatusCode, statusText(e.Status, e.StatusCode), e.Body)
	}
	return fmt.Sprintf("korrektly: request failed with status %d %s: %s", e.StatusCode, statusText(e.Status, e.StatusCode), e.Snippet)
}

// statusText strips the leading numeric code the http package embeds in
// Status so messages read "404 Not Found" rather than "404 404 Not Found".
func statusText(status string, code int) string {
	prefix := fmt.Sprintf("%d ", code)
	if len(status) > len(prefix) && status[:len(prefix)] == prefix {
		return status[len(prefix):]
	}
	return status
}
