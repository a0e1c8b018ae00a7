package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cinevault/internal/store"
	"cinevault/models"
	"cinevault/utils/normalize"
)

// DefaultStoreTimeout bounds a single store call when no timeout is
// configured.
const DefaultStoreTimeout = 5 * time.Second

// Service implements the catalog operations over a per-request snapshot of
// the film collection. It keeps no state between requests beyond the keyed
// upsert locks; reads from concurrent requests never interfere.
type Service struct {
	store   store.Store
	timeout time.Duration
	upserts keyedMutex
}

// NewService wraps the provided store. Every store call is bounded by
// timeout; non-positive values fall back to DefaultStoreTimeout.
func NewService(st store.Store, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}
	return &Service{store: st, timeout: timeout}
}

// Get returns a single film by id.
func (s *Service) Get(ctx context.Context, id string) (models.Film, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Film{}, fmt.Errorf("%w: id is required", ErrValidation)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	film, err := s.store.GetByID(ctx, id)
	if err != nil {
		return models.Film{}, s.storeErr("fetch film", err)
	}
	return film, nil
}

// Delete removes a film by id. The collection is left untouched when the id
// does not exist.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrValidation)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.store.Delete(ctx, id); err != nil {
		return s.storeErr("delete film", err)
	}
	return nil
}

// Update merges the provided fields into the film with the given id and
// echoes the resulting record. Absent fields keep their stored value; a
// provided embed value is canonicalized first.
func (s *Service) Update(ctx context.Context, id string, fields models.FilmUpsert) (models.Film, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Film{}, fmt.Errorf("%w: id is required", ErrValidation)
	}
	fields.Embed = normalize.EmbedURL(fields.Embed)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.store.MergeUpdate(ctx, id, fields); err != nil {
		return models.Film{}, s.storeErr("update film", err)
	}

	film, err := s.store.GetByID(ctx, id)
	if err != nil {
		return models.Film{}, s.storeErr("fetch updated film", err)
	}
	return film, nil
}

// SetPoster records the poster URL for a film and echoes the updated record.
func (s *Service) SetPoster(ctx context.Context, id, posterURL string) (models.Film, error) {
	if strings.TrimSpace(posterURL) == "" {
		return models.Film{}, fmt.Errorf("%w: poster url is required", ErrValidation)
	}
	return s.Update(ctx, id, models.FilmUpsert{Poster: posterURL})
}

// snapshot fetches the full collection once for the current request.
func (s *Service) snapshot(ctx context.Context) ([]models.Film, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	films, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, s.storeErr("fetch snapshot", err)
	}
	return films, nil
}

// storeErr maps adapter failures onto the catalog error taxonomy.
func (s *Service) storeErr(op string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}
