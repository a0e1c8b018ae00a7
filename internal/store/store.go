package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cinevault/models"
)

// ErrNotFound is returned when an id has no matching record.
var ErrNotFound = errors.New("film not found")

// Store is the persistence boundary for film records. Keys are assigned by
// the store on insert. MergeUpdate only overwrites fields that are present
// in the payload; absent fields keep their stored value.
//
// Write timestamps are stamped here: Insert sets uploadedAt, MergeUpdate
// sets updatedAt. Callers never supply either.
type Store interface {
	GetAll(ctx context.Context) ([]models.Film, error)
	GetByID(ctx context.Context, id string) (models.Film, error)
	Insert(ctx context.Context, fields models.FilmUpsert) (string, error)
	MergeUpdate(ctx context.Context, id string, fields models.FilmUpsert) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// Open constructs a store for the configured driver.
func Open(driver, dsn string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite", "sqlite3":
		return OpenSQLite(dsn)
	case "postgres":
		return OpenPostgres(dsn)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// newFilm materialises an inserted record from its payload.
func newFilm(id string, fields models.FilmUpsert) models.Film {
	film := models.Film{
		ID:         id,
		Title:      fields.Title,
		Year:       fields.Year,
		Rating:     fields.Rating,
		Country:    fields.Country,
		Embed:      fields.Embed,
		Synopsis:   fields.Synopsis,
		Duration:   fields.Duration,
		Poster:     fields.Poster,
		UploadedAt: timestamp(),
	}
	if fields.Genres != nil {
		film.Genres = append([]string(nil), fields.Genres...)
	}
	return film
}

// applyUpsert merges the provided fields into an existing record. Empty
// strings and a nil genre list mean "not provided" and leave the stored
// value untouched.
func applyUpsert(film *models.Film, fields models.FilmUpsert) {
	if strings.TrimSpace(fields.Title) != "" {
		film.Title = fields.Title
	}
	if strings.TrimSpace(fields.Year) != "" {
		film.Year = fields.Year
	}
	if strings.TrimSpace(fields.Rating) != "" {
		film.Rating = fields.Rating
	}
	if fields.Genres != nil {
		film.Genres = append([]string(nil), fields.Genres...)
	}
	if strings.TrimSpace(fields.Country) != "" {
		film.Country = fields.Country
	}
	if strings.TrimSpace(fields.Embed) != "" {
		film.Embed = fields.Embed
	}
	if strings.TrimSpace(fields.Synopsis) != "" {
		film.Synopsis = fields.Synopsis
	}
	if strings.TrimSpace(fields.Duration) != "" {
		film.Duration = fields.Duration
	}
	if strings.TrimSpace(fields.Poster) != "" {
		film.Poster = fields.Poster
	}
	film.UpdatedAt = timestamp()
}
