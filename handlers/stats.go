package handlers

import (
	"context"
	"net/http"

	"cinevault/models"
	"cinevault/services/catalog"
)

type statsService interface {
	Stats(ctx context.Context) (models.Stats, error)
}

var _ statsService = (*catalog.Service)(nil)

type StatsHandler struct {
	Service statsService
}

func NewStatsHandler(service statsService) *StatsHandler {
	return &StatsHandler{Service: service}
}

type statsResponse struct {
	models.Stats
	Message string `json:"message"`
}

func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		writeError(w, catalogStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		Stats:   stats,
		Message: "Statistics retrieved successfully",
	})
}
