// Package handler implements the HTTP API. Handlers validate at the
// boundary, delegate to the composer and stores, and return JSON bodies
// with an "error" key on failure.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ownerParam reads the owner id from the ?owner query parameter.
func ownerParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.URL.Query().Get("owner"), 10, 64)
}
