package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"cinevault/handlers"
	"cinevault/internal/store"
	"cinevault/models"
	"cinevault/services/catalog"
)

func newCatalog(t *testing.T) *catalog.Service {
	t.Helper()
	return catalog.NewService(store.NewMemory(), time.Second)
}

func createFilm(t *testing.T, h *handlers.FilmsHandler, payload models.FilmUpsert) models.Film {
	t.Helper()

	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/films", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated && rec.Code != http.StatusOK {
		t.Fatalf("create returned status %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Film models.Film `json:"film"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	return resp.Film
}

func samplePayload(title, year string) models.FilmUpsert {
	return models.FilmUpsert{
		Title:    title,
		Year:     year,
		Rating:   "8.0",
		Genres:   []string{"Sci-Fi"},
		Country:  "USA",
		Embed:    "abc123",
		Synopsis: "A film.",
		Duration: "1h 56m",
	}
}

func TestFilmsCreateAndGet(t *testing.T) {
	h := handlers.NewFilmsHandler(newCatalog(t))

	body, _ := json.Marshal(samplePayload("Arrival", "2016"))
	req := httptest.NewRequest(http.MethodPost, "/api/films", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		FilmID string      `json:"filmId"`
		Film   models.Film `json:"film"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	if created.FilmID == "" || created.Film.ID != created.FilmID {
		t.Fatalf("expected assigned id echoed in response, got %+v", created)
	}
	if created.Film.UploadedAt == "" {
		t.Fatal("expected uploadedAt to be stamped")
	}
	if created.Film.Embed != "https://www.youtube.com/embed/abc123" {
		t.Fatalf("expected canonical embed url, got %q", created.Film.Embed)
	}

	reqGet := httptest.NewRequest(http.MethodGet, "/api/films/"+created.FilmID, nil)
	reqGet = mux.SetURLVars(reqGet, map[string]string{"id": created.FilmID})
	recGet := httptest.NewRecorder()
	h.Get(recGet, reqGet)

	if recGet.Code != http.StatusOK {
		t.Fatalf("expected get status 200, got %d", recGet.Code)
	}
}

func TestFilmsCreateDuplicateResolvesToUpdate(t *testing.T) {
	h := handlers.NewFilmsHandler(newCatalog(t))

	createFilm(t, h, samplePayload("Dune", "2021"))

	second := samplePayload("Dune", "2021")
	second.Rating = "9.0"
	body, _ := json.Marshal(second)
	req := httptest.NewRequest(http.MethodPost, "/api/films", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected duplicate create to return 200, got %d", rec.Code)
	}

	reqList := httptest.NewRequest(http.MethodGet, "/api/films", nil)
	recList := httptest.NewRecorder()
	h.List(recList, reqList)

	var list struct {
		Films []models.Film `json:"films"`
		Total int           `json:"total"`
	}
	if err := json.Unmarshal(recList.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if list.Total != 1 {
		t.Fatalf("expected one stored record after duplicate create, got %d", list.Total)
	}
	if list.Films[0].Rating != "9.0" {
		t.Fatalf("expected second write's rating to win, got %q", list.Films[0].Rating)
	}
}

func TestFilmsCreateMissingFieldReturns400(t *testing.T) {
	h := handlers.NewFilmsHandler(newCatalog(t))

	payload := samplePayload("Dune", "2021")
	payload.Synopsis = ""
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/films", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp["error"] == "" {
		t.Fatal("expected error message in response body")
	}
}

func TestFilmsListAppliesFiltersAndSorting(t *testing.T) {
	h := handlers.NewFilmsHandler(newCatalog(t))

	a := samplePayload("Arrival", "2016")
	b := samplePayload("Arrival of a Train", "2016")
	b.Genres = []string{"Documentary"}
	b.Country = "France"
	c := samplePayload("Parasite", "2019")
	c.Genres = []string{"Thriller"}
	c.Country = "South Korea"
	for _, p := range []models.FilmUpsert{a, b, c} {
		createFilm(t, h, p)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/films?genre=Sci-Fi&year=All+Years&country=All+Countries", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	var list struct {
		Films []models.Film `json:"films"`
		Total int           `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if list.Total != 1 || list.Films[0].Title != "Arrival" {
		t.Fatalf("unexpected filter result: %+v", list)
	}

	reqAll := httptest.NewRequest(http.MethodGet, "/api/films", nil)
	recAll := httptest.NewRecorder()
	h.List(recAll, reqAll)
	if err := json.Unmarshal(recAll.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	want := []string{"Parasite", "Arrival", "Arrival of a Train"}
	for i, title := range want {
		if list.Films[i].Title != title {
			t.Fatalf("expected order %v, got %+v", want, list.Films)
		}
	}
}

func TestFilmsUpdate(t *testing.T) {
	h := handlers.NewFilmsHandler(newCatalog(t))
	film := createFilm(t, h, samplePayload("Arrival", "2016"))

	body, _ := json.Marshal(map[string]string{"rating": "8.5"})
	req := httptest.NewRequest(http.MethodPut, "/api/films/"+film.ID, bytes.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": film.ID})
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Film models.Film `json:"film"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode update response: %v", err)
	}
	if resp.Film.Rating != "8.5" || resp.Film.Title != "Arrival" {
		t.Fatalf("unexpected updated record: %+v", resp.Film)
	}
	if resp.Film.UpdatedAt == "" {
		t.Fatal("expected updatedAt to be stamped")
	}
}

func TestFilmsDeleteMissingReturns404(t *testing.T) {
	h := handlers.NewFilmsHandler(newCatalog(t))
	createFilm(t, h, samplePayload("Arrival", "2016"))

	req := httptest.NewRequest(http.MethodDelete, "/api/films/ghost", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "ghost"})
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	reqList := httptest.NewRequest(http.MethodGet, "/api/films", nil)
	recList := httptest.NewRecorder()
	h.List(recList, reqList)

	var list struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(recList.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if list.Total != 1 {
		t.Fatalf("failed delete must leave the collection unchanged, got total %d", list.Total)
	}
}

func TestFilmsDelete(t *testing.T) {
	h := handlers.NewFilmsHandler(newCatalog(t))
	film := createFilm(t, h, samplePayload("Arrival", "2016"))

	req := httptest.NewRequest(http.MethodDelete, "/api/films/"+film.ID, nil)
	req = mux.SetURLVars(req, map[string]string{"id": film.ID})
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	reqGet := httptest.NewRequest(http.MethodGet, "/api/films/"+film.ID, nil)
	reqGet = mux.SetURLVars(reqGet, map[string]string{"id": film.ID})
	recGet := httptest.NewRecorder()
	h.Get(recGet, reqGet)

	if recGet.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", recGet.Code)
	}
}
