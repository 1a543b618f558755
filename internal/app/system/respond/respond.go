// Package respond writes JSON responses for the admin API.
package respond

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the error body of every admin endpoint. Message is the
// raw error text; this is an internal tool.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes {"error": message}.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Error: message})
}

// FieldError writes {"error": message, "fields": {...}}.
func FieldError(w http.ResponseWriter, status int, message string, fields map[string]string) {
	JSON(w, status, ErrorResponse{Error: message, Fields: fields})
}
