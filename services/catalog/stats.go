package catalog

import (
	"context"
	"math"
	"strconv"
	"strings"

	"cinevault/models"
)

// Stats aggregates the full collection into frequency tables by genre,
// country, year and rating bucket. A film with several genres counts once
// per genre. Films missing a field are skipped for that table only; they
// still count toward the total.
func (s *Service) Stats(ctx context.Context) (models.Stats, error) {
	films, err := s.snapshot(ctx)
	if err != nil {
		return models.Stats{}, err
	}

	stats := models.Stats{
		TotalFilms: len(films),
		Genres:     make(map[string]int),
		Countries:  make(map[string]int),
		Years:      make(map[string]int),
		Ratings:    make(map[int]int),
	}

	for _, film := range films {
		for _, genre := range film.Genres {
			stats.Genres[genre]++
		}
		if film.Country != "" {
			stats.Countries[film.Country]++
		}
		if film.Year != "" {
			stats.Years[film.Year]++
		}
		if r := strings.TrimSpace(film.Rating); r != "" {
			if v, err := strconv.ParseFloat(r, 64); err == nil {
				stats.Ratings[int(math.Floor(v))]++
			}
		}
	}

	return stats, nil
}
