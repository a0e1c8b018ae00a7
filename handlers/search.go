package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"cinevault/models"
	"cinevault/services/catalog"
)

type searchService interface {
	Search(ctx context.Context, query string, limit int) ([]models.Film, error)
}

var _ searchService = (*catalog.Service)(nil)

type SearchHandler struct {
	Service searchService
}

func NewSearchHandler(service searchService) *SearchHandler {
	return &SearchHandler{Service: service}
}

type searchResponse struct {
	Films   []models.Film `json:"films"`
	Total   int           `json:"total"`
	Query   string        `json:"query"`
	Message string        `json:"message,omitempty"`
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	// A malformed or absent limit falls back to the catalog default.
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	films, err := h.Service.Search(r.Context(), query, limit)
	if err != nil {
		writeError(w, catalogStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Films:   films,
		Total:   len(films),
		Query:   strings.TrimSpace(query),
		Message: "Search completed successfully",
	})
}
