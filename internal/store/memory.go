package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"cinevault/models"
)

// Memory is an in-process store used for tests and demo mode. It has no
// durability and no uniqueness constraint beyond the primary key.
type Memory struct {
	mu    sync.RWMutex
	films map[string]models.Film
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{films: make(map[string]models.Film)}
}

func (m *Memory) GetAll(ctx context.Context) ([]models.Film, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	films := make([]models.Film, 0, len(m.films))
	for _, film := range m.films {
		film.Genres = append([]string(nil), film.Genres...)
		films = append(films, film)
	}
	return films, nil
}

func (m *Memory) GetByID(ctx context.Context, id string) (models.Film, error) {
	if err := ctx.Err(); err != nil {
		return models.Film{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	film, ok := m.films[id]
	if !ok {
		return models.Film{}, ErrNotFound
	}
	film.Genres = append([]string(nil), film.Genres...)
	return film, nil
}

func (m *Memory) Insert(ctx context.Context, fields models.FilmUpsert) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	m.films[id] = newFilm(id, fields)
	return id, nil
}

func (m *Memory) MergeUpdate(ctx context.Context, id string, fields models.FilmUpsert) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	film, ok := m.films[id]
	if !ok {
		return ErrNotFound
	}
	applyUpsert(&film, fields)
	m.films[id] = film
	return nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.films[id]; !ok {
		return ErrNotFound
	}
	delete(m.films, id)
	return nil
}

func (m *Memory) Close() error { return nil }
