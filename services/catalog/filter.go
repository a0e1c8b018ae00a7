package catalog

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"cinevault/models"
)

// matchAll is the sentinel criterion value that disables a filter. The
// browsing UI sends it for its "All Genres" / "All Years" / "All Countries"
// options; an empty value means the same thing.
const matchAll = "all"

// Criteria narrows a listing. All supplied criteria must hold (AND
// semantics). Genre and country are exact matches against the stored
// values; TitleContains is a case-insensitive substring test.
type Criteria struct {
	Genre         string
	Year          string
	Country       string
	TitleContains string
}

func (c Criteria) matches(film models.Film) bool {
	if !wildcard(c.Genre) && !containsString(film.Genres, c.Genre) {
		return false
	}
	if !wildcard(c.Year) && film.Year != c.Year {
		return false
	}
	if !wildcard(c.Country) && film.Country != c.Country {
		return false
	}
	if q := strings.TrimSpace(c.TitleContains); q != "" {
		if !strings.Contains(strings.ToLower(film.Title), strings.ToLower(q)) {
			return false
		}
	}
	return true
}

func wildcard(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, matchAll)
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

// List returns the films matching the criteria, newest year first and ties
// broken by title. The ordering is applied even when no criteria are set.
func (s *Service) List(ctx context.Context, criteria Criteria) ([]models.Film, error) {
	films, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]models.Film, 0, len(films))
	for _, film := range films {
		if criteria.matches(film) {
			matched = append(matched, film)
		}
	}

	sortByYearDescTitleAsc(matched)
	return matched, nil
}

// sortByYearDescTitleAsc orders films by year descending with equal years
// ordered by title ascending under locale-aware collation.
func sortByYearDescTitleAsc(films []models.Film) {
	coll := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(films, func(i, j int) bool {
		if films[i].Year != films[j].Year {
			return yearLess(films[j].Year, films[i].Year)
		}
		return coll.CompareString(films[i].Title, films[j].Title) < 0
	})
}

// yearLess compares year strings numerically when both parse, falling back
// to lexicographic order for free-form values.
func yearLess(a, b string) bool {
	na, errA := strconv.Atoi(strings.TrimSpace(a))
	nb, errB := strconv.Atoi(strings.TrimSpace(b))
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}
