package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/minedash/backend/internal/models"
)

// RecordValidator checks an add-record payload against its kind's schema.
type RecordValidator interface {
	ValidateRecord(ctx context.Context, kind models.RecordKind, payload json.RawMessage) error
}

// ValidateRecord rejects invalid add-record payloads before any mutation is
// attempted, so a failed submission leaves no partial state. Reads the body
// and replaces r.Body so downstream handlers can re-read it.
func ValidateRecord(v RecordValidator, kind models.RecordKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bodyBytes, err := io.ReadAll(r.Body)
			r.Body.Close()
			if err != nil {
				http.Error(w, `{"error":"failed to read body"}`, http.StatusBadRequest)
				return
			}
			// Restore body for the handler.
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))

			if err := v.ValidateRecord(r.Context(), kind, bodyBytes); err != nil {
				http.Error(w, `{"error":"invalid record"}`, http.StatusBadRequest)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
