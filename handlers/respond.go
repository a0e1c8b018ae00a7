package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"cinevault/services/catalog"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// catalogStatus maps catalog errors onto HTTP status codes.
func catalogStatus(err error) int {
	switch {
	case errors.Is(err, catalog.ErrValidation), errors.Is(err, catalog.ErrInvalidQuery):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
