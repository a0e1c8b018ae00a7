package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"cinevault/models"
	"cinevault/services/catalog"
	"cinevault/services/posters"
)

// maxPosterBytes caps a single poster upload.
const maxPosterBytes = 10 << 20

type posterStore interface {
	Save(filmID string, data []byte) (string, error)
}

type posterCatalog interface {
	Get(ctx context.Context, id string) (models.Film, error)
	SetPoster(ctx context.Context, id, posterURL string) (models.Film, error)
}

var (
	_ posterStore   = (*posters.Service)(nil)
	_ posterCatalog = (*catalog.Service)(nil)
)

type PostersHandler struct {
	Posters posterStore
	Catalog posterCatalog
}

func NewPostersHandler(posterSvc posterStore, catalogSvc posterCatalog) *PostersHandler {
	return &PostersHandler{Posters: posterSvc, Catalog: catalogSvc}
}

// Upload accepts a multipart "poster" file for an existing film, stores the
// blob and records its served URL on the record.
func (h *PostersHandler) Upload(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(mux.Vars(r)["id"])
	if id == "" {
		writeError(w, http.StatusBadRequest, "film id is required")
		return
	}

	if _, err := h.Catalog.Get(r.Context(), id); err != nil {
		writeError(w, catalogStatus(err), err.Error())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPosterBytes)
	if err := r.ParseMultipartForm(maxPosterBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart payload: "+err.Error())
		return
	}

	file, _, err := r.FormFile("poster")
	if err != nil {
		writeError(w, http.StatusBadRequest, "poster file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read poster: "+err.Error())
		return
	}

	name, err := h.Posters.Save(id, data)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, posters.ErrEmptyPoster) || errors.Is(err, posters.ErrNotAnImage) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	film, err := h.Catalog.SetPoster(r.Context(), id, "/posters/"+name)
	if err != nil {
		writeError(w, catalogStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, filmResponse{Message: "Poster uploaded successfully", Film: film})
}
