package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bandnine/ielts-platform/internal/ingest"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeParseError maps ingestion failures to client errors; anything else
// is a server fault.
func writeParseError(w http.ResponseWriter, err error) {
	var pe *ingest.ParseError
	if errors.As(err, &pe) {
		writeError(w, http.StatusBadRequest, pe.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
