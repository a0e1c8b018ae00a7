package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"cinevault/models"
)

func seededCatalog() (*fakeStore, *Service) {
	fs := &fakeStore{}
	fs.seed(models.Film{ID: "f1", Title: "Arrival", Year: "2016", Genres: []string{"Sci-Fi"}, Country: "USA", Rating: "8.0"})
	fs.seed(models.Film{ID: "f2", Title: "Arrival of a Train", Year: "2016", Genres: []string{"Documentary"}, Country: "France", Rating: "6.5"})
	fs.seed(models.Film{ID: "f3", Title: "Parasite", Year: "2019", Genres: []string{"Thriller", "Drama"}, Country: "South Korea", Rating: "8.6"})
	fs.seed(models.Film{ID: "f4", Title: "Amelie", Year: "2001", Genres: []string{"Comedy", "Romance"}, Country: "France", Rating: "8.3"})
	return fs, newTestService(fs)
}

func titles(films []models.Film) []string {
	out := make([]string, len(films))
	for i, f := range films {
		out[i] = f.Title
	}
	return out
}

func TestListWithoutCriteriaReturnsFullSortedSnapshot(t *testing.T) {
	_, svc := seededCatalog()

	films, err := svc.List(context.Background(), Criteria{})
	require.NoError(t, err)
	require.Equal(t, []string{"Parasite", "Arrival", "Arrival of a Train", "Amelie"}, titles(films),
		"year descending, equal years by title ascending")
}

func TestListTreatsAllSentinelAsWildcard(t *testing.T) {
	_, svc := seededCatalog()

	films, err := svc.List(context.Background(), Criteria{Genre: "all", Year: "All", Country: "ALL"})
	require.NoError(t, err)
	require.Len(t, films, 4)
}

func TestListFiltersByGenreMembership(t *testing.T) {
	_, svc := seededCatalog()

	films, err := svc.List(context.Background(), Criteria{Genre: "Sci-Fi"})
	require.NoError(t, err)
	require.Equal(t, []string{"Arrival"}, titles(films))

	// Membership, not equality: Parasite carries Drama as its second genre.
	films, err = svc.List(context.Background(), Criteria{Genre: "Drama"})
	require.NoError(t, err)
	require.Equal(t, []string{"Parasite"}, titles(films))
}

func TestListCombinesCriteriaConjunctively(t *testing.T) {
	_, svc := seededCatalog()

	films, err := svc.List(context.Background(), Criteria{Country: "France", Year: "2016"})
	require.NoError(t, err)
	require.Equal(t, []string{"Arrival of a Train"}, titles(films))

	films, err = svc.List(context.Background(), Criteria{Country: "France", Year: "1999"})
	require.NoError(t, err)
	require.Empty(t, films)
}

func TestListTitleSubstringIsCaseInsensitive(t *testing.T) {
	_, svc := seededCatalog()

	films, err := svc.List(context.Background(), Criteria{TitleContains: "aRRiv"})
	require.NoError(t, err)
	require.Equal(t, []string{"Arrival", "Arrival of a Train"}, titles(films))
}

func TestListOrdersNonNumericYearsLexicographically(t *testing.T) {
	fs := &fakeStore{}
	fs.seed(models.Film{ID: "f1", Title: "A", Year: "unknown"})
	fs.seed(models.Film{ID: "f2", Title: "B", Year: "tba"})
	svc := newTestService(fs)

	films, err := svc.List(context.Background(), Criteria{})
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B"}, titles(films), `"unknown" > "tba" lexicographically`)
}

func TestListEmptyCollection(t *testing.T) {
	svc := newTestService(&fakeStore{})

	films, err := svc.List(context.Background(), Criteria{})
	require.NoError(t, err)
	require.NotNil(t, films)
	require.Empty(t, films)
}
