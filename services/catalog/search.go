package catalog

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"cinevault/models"
)

// DefaultSearchLimit caps search results when the caller does not supply a
// limit.
const DefaultSearchLimit = 10

// Search ranks the collection against a free-text query. A film scores +3
// for a title match, +2 for a match on any genre and +1 for a country match
// (all case-insensitive substring tests); films scoring zero are dropped.
// Results are ordered by score descending, then year descending, then title
// ascending so that equal-score, equal-year films come back in a stable
// order. The score itself never leaves this package.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]models.Film, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidQuery
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	films, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	type scoredFilm struct {
		film  models.Film
		score int
	}

	needle := strings.ToLower(query)
	scored := make([]scoredFilm, 0, len(films))
	for _, film := range films {
		if score := relevance(film, needle); score > 0 {
			scored = append(scored, scoredFilm{film: film, score: score})
		}
	}

	coll := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		if scored[i].film.Year != scored[j].film.Year {
			return yearLess(scored[j].film.Year, scored[i].film.Year)
		}
		return coll.CompareString(scored[i].film.Title, scored[j].film.Title) < 0
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	results := make([]models.Film, len(scored))
	for i, sf := range scored {
		results[i] = sf.film
	}
	return results, nil
}

func relevance(film models.Film, needle string) int {
	score := 0
	if strings.Contains(strings.ToLower(film.Title), needle) {
		score += 3
	}
	for _, genre := range film.Genres {
		if strings.Contains(strings.ToLower(genre), needle) {
			score += 2
			break
		}
	}
	if strings.Contains(strings.ToLower(film.Country), needle) {
		score++
	}
	return score
}
