// Package responses writes JSON and RFC 7807 problem bodies.
package responses

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	contentTypeJSON    = "application/json"
	contentTypeProblem = "application/problem+json"
)

// ProblemDetail is an RFC 7807 Problem Details body.
type ProblemDetail struct {
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Status    int       `json:"status"`
	Detail    string    `json:"detail"`
	Instance  string    `json:"instance"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// NewProblem fills Type, Title and Timestamp from the status code.
func NewProblem(code int, detail, instance string) ProblemDetail {
	return ProblemDetail{
		Type:      fmt.Sprintf("https://httpstatuses.com/%d", code),
		Title:     http.StatusText(code),
		Status:    code,
		Detail:    detail,
		Instance:  instance,
		Timestamp: time.Now().UTC(),
	}
}

// JSON writes data with statusCode. The body is encoded before the header is
// written, so an unencodable value yields a 500 problem instead of a truncated body.
func JSON(w http.ResponseWriter, statusCode int, data any) {
	write(w, statusCode, contentTypeJSON, data)
}

// Problem writes p using p.Status as the status code.
func Problem(w http.ResponseWriter, p ProblemDetail) {
	write(w, p.Status, contentTypeProblem, p)
}

// NoContent writes a 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func write(w http.ResponseWriter, statusCode int, contentType string, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		w.Header().Set("Content-Type", contentTypeProblem)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(NewProblem(http.StatusInternalServerError, "failed to encode response", ""))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
}
