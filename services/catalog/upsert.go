package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"cinevault/models"
	"cinevault/utils/normalize"
)

// Create resolves a candidate payload against the current collection. A film
// with the same identity key (folded title plus verbatim year) is updated in
// place; otherwise a new record is inserted. The returned flag reports
// whether a new record was created.
//
// The read-then-write sequence is serialized per identity key within this
// process. Two writers behind separate processes can still race the store
// and insert duplicates; when a later upsert finds several matches it picks
// the lowest id and logs the anomaly instead of touching multiple records.
func (s *Service) Create(ctx context.Context, fields models.FilmUpsert) (models.Film, bool, error) {
	if err := validateUpsert(fields); err != nil {
		return models.Film{}, false, err
	}
	fields.Embed = normalize.EmbedURL(fields.Embed)

	folded := normalize.Title(fields.Title)
	unlock := s.upserts.lock(folded + "\x00" + fields.Year)
	defer unlock()

	films, err := s.snapshot(ctx)
	if err != nil {
		return models.Film{}, false, err
	}

	target := ""
	matches := 0
	for _, film := range films {
		if normalize.Title(film.Title) != folded || film.Year != fields.Year {
			continue
		}
		matches++
		if target == "" || film.ID < target {
			target = film.ID
		}
	}

	if matches > 1 {
		slog.Warn("duplicate identity key in film store, updating lowest id",
			"title", fields.Title,
			"year", fields.Year,
			"matches", matches,
			"target", target,
		)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if target == "" {
		id, err := s.store.Insert(ctx, fields)
		if err != nil {
			return models.Film{}, false, s.storeErr("insert film", err)
		}
		film, err := s.store.GetByID(ctx, id)
		if err != nil {
			return models.Film{}, false, s.storeErr("fetch inserted film", err)
		}
		return film, true, nil
	}

	if err := s.store.MergeUpdate(ctx, target, fields); err != nil {
		return models.Film{}, false, s.storeErr("update film", err)
	}
	film, err := s.store.GetByID(ctx, target)
	if err != nil {
		return models.Film{}, false, s.storeErr("fetch updated film", err)
	}
	return film, false, nil
}

func validateUpsert(fields models.FilmUpsert) error {
	required := []struct {
		name  string
		value string
	}{
		{"title", fields.Title},
		{"year", fields.Year},
		{"rating", fields.Rating},
		{"country", fields.Country},
		{"embed", fields.Embed},
		{"synopsis", fields.Synopsis},
		{"duration", fields.Duration},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: missing required field: %s", ErrValidation, f.name)
		}
	}
	return nil
}

// keyedMutex hands out one mutex per identity key. Entries are dropped once
// the last holder releases, so the map stays bounded by in-flight upserts.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*keyedLock)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
