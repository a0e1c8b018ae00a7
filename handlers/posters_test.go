package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/spf13/afero"

	"cinevault/handlers"
	"cinevault/models"
	"cinevault/services/posters"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}

func posterRequest(t *testing.T, id string, payload []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("poster", "poster.png")
	if err != nil {
		t.Fatalf("failed to build multipart body: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("failed to write multipart body: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/films/"+id+"/poster", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return mux.SetURLVars(req, map[string]string{"id": id})
}

func TestPosterUpload(t *testing.T) {
	svc := newCatalog(t)
	films := handlers.NewFilmsHandler(svc)
	film := createFilm(t, films, samplePayload("Arrival", "2016"))

	fs := afero.NewMemMapFs()
	posterSvc, err := posters.NewService(fs, "posters")
	if err != nil {
		t.Fatalf("failed to create poster service: %v", err)
	}
	h := handlers.NewPostersHandler(posterSvc, svc)

	rec := httptest.NewRecorder()
	h.Upload(rec, posterRequest(t, film.ID, pngBytes))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Film models.Film `json:"film"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode upload response: %v", err)
	}
	if !strings.HasPrefix(resp.Film.Poster, "/posters/"+film.ID) {
		t.Fatalf("expected poster url recorded on the film, got %q", resp.Film.Poster)
	}

	stored, err := afero.Glob(fs, "posters/"+film.ID+".*")
	if err != nil || len(stored) != 1 {
		t.Fatalf("expected one stored poster file, got %v (err %v)", stored, err)
	}
}

func TestPosterUploadUnknownFilmReturns404(t *testing.T) {
	svc := newCatalog(t)
	posterSvc, err := posters.NewService(afero.NewMemMapFs(), "posters")
	if err != nil {
		t.Fatalf("failed to create poster service: %v", err)
	}
	h := handlers.NewPostersHandler(posterSvc, svc)

	rec := httptest.NewRecorder()
	h.Upload(rec, posterRequest(t, "ghost", pngBytes))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestPosterUploadRejectsNonImage(t *testing.T) {
	svc := newCatalog(t)
	films := handlers.NewFilmsHandler(svc)
	film := createFilm(t, films, samplePayload("Arrival", "2016"))

	posterSvc, err := posters.NewService(afero.NewMemMapFs(), "posters")
	if err != nil {
		t.Fatalf("failed to create poster service: %v", err)
	}
	h := handlers.NewPostersHandler(posterSvc, svc)

	rec := httptest.NewRecorder()
	h.Upload(rec, posterRequest(t, film.ID, []byte("not an image at all")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}
}
