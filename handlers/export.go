package handlers

import (
	"context"
	"net/http"
	"time"

	"cinevault/models"
	"cinevault/services/catalog"
)

type exportService interface {
	List(ctx context.Context, criteria catalog.Criteria) ([]models.Film, error)
}

var _ exportService = (*catalog.Service)(nil)

// ExportHandler serves a downloadable dump of the whole collection.
type ExportHandler struct {
	Service exportService
}

func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{Service: service}
}

type exportResponse struct {
	ExportedAt string        `json:"exportedAt"`
	Total      int           `json:"total"`
	Films      []models.Film `json:"films"`
}

func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	films, err := h.Service.List(r.Context(), catalog.Criteria{})
	if err != nil {
		writeError(w, catalogStatus(err), err.Error())
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="films-export.json"`)
	writeJSON(w, http.StatusOK, exportResponse{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Total:      len(films),
		Films:      films,
	})
}
