package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"cinevault/models"
	"cinevault/services/catalog"
)

type catalogService interface {
	List(ctx context.Context, criteria catalog.Criteria) ([]models.Film, error)
	Get(ctx context.Context, id string) (models.Film, error)
	Create(ctx context.Context, fields models.FilmUpsert) (models.Film, bool, error)
	Update(ctx context.Context, id string, fields models.FilmUpsert) (models.Film, error)
	Delete(ctx context.Context, id string) error
}

var _ catalogService = (*catalog.Service)(nil)

type FilmsHandler struct {
	Service catalogService
}

func NewFilmsHandler(service catalogService) *FilmsHandler {
	return &FilmsHandler{Service: service}
}

type filmListResponse struct {
	Films   []models.Film `json:"films"`
	Total   int           `json:"total"`
	Message string        `json:"message,omitempty"`
}

type filmResponse struct {
	Message string      `json:"message"`
	FilmID  string      `json:"filmId,omitempty"`
	Film    models.Film `json:"film"`
}

// List serves the filtered, ordered collection. The browsing UI's
// "All Genres" style sentinels arrive here and collapse to no filter.
func (h *FilmsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := catalog.Criteria{
		Genre:         stripSentinel(q.Get("genre"), "All Genres"),
		Year:          stripSentinel(q.Get("year"), "All Years"),
		Country:       stripSentinel(q.Get("country"), "All Countries"),
		TitleContains: q.Get("search"),
	}

	films, err := h.Service.List(r.Context(), criteria)
	if err != nil {
		writeError(w, catalogStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, filmListResponse{
		Films:   films,
		Total:   len(films),
		Message: "Films retrieved successfully",
	})
}

func (h *FilmsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(mux.Vars(r)["id"])
	if id == "" {
		writeError(w, http.StatusBadRequest, "film id is required")
		return
	}

	film, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeError(w, catalogStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, filmResponse{Message: "Film retrieved successfully", Film: film})
}

// Create resolves the payload against the collection: a film with the same
// title and year is updated, anything else is inserted. 201 signals a new
// record, 200 an update of an existing one.
func (h *FilmsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var fields models.FilmUpsert
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	film, created, err := h.Service.Create(r.Context(), fields)
	if err != nil {
		writeError(w, catalogStatus(err), err.Error())
		return
	}

	status := http.StatusOK
	message := "Film updated successfully"
	if created {
		status = http.StatusCreated
		message = "Film added successfully"
	}
	writeJSON(w, status, filmResponse{Message: message, FilmID: film.ID, Film: film})
}

func (h *FilmsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(mux.Vars(r)["id"])
	if id == "" {
		writeError(w, http.StatusBadRequest, "film id is required")
		return
	}

	var fields models.FilmUpsert
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	film, err := h.Service.Update(r.Context(), id, fields)
	if err != nil {
		writeError(w, catalogStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, filmResponse{Message: "Film updated successfully", Film: film})
}

func (h *FilmsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(mux.Vars(r)["id"])
	if id == "" {
		writeError(w, http.StatusBadRequest, "film id is required")
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		writeError(w, catalogStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Film deleted successfully",
		"filmId":  id,
	})
}

func stripSentinel(value, sentinel string) string {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, sentinel) {
		return ""
	}
	return value
}
