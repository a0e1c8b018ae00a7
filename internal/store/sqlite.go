package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"cinevault/models"
)

const filmColumns = "id, title, year, rating, genres, country, embed, synopsis, duration, poster, uploaded_at, updated_at"

// SQLite persists films in a local SQLite database. Genres are stored as a
// JSON array in a single column.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// OpenSQLite opens (creating if necessary) a SQLite-backed store at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}

	// A single writer avoids SQLITE_BUSY churn under concurrent upserts.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite store: %w", err)
	}

	if err := migrate(db, "sqlite3"); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) GetAll(ctx context.Context) ([]models.Film, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+filmColumns+" FROM films")
	if err != nil {
		return nil, fmt.Errorf("query films: %w", err)
	}
	defer rows.Close()

	films := make([]models.Film, 0)
	for rows.Next() {
		film, err := scanFilm(rows)
		if err != nil {
			return nil, err
		}
		films = append(films, film)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate films: %w", err)
	}
	return films, nil
}

func (s *SQLite) GetByID(ctx context.Context, id string) (models.Film, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+filmColumns+" FROM films WHERE id = ?", id)
	film, err := scanFilm(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Film{}, ErrNotFound
	}
	return film, err
}

func (s *SQLite) Insert(ctx context.Context, fields models.FilmUpsert) (string, error) {
	film := newFilm(uuid.NewString(), fields)
	genres, err := json.Marshal(film.Genres)
	if err != nil {
		return "", fmt.Errorf("encode genres: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO films ("+filmColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		film.ID, film.Title, film.Year, film.Rating, string(genres), film.Country,
		film.Embed, film.Synopsis, film.Duration, film.Poster, film.UploadedAt, film.UpdatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert film: %w", err)
	}
	return film.ID, nil
}

func (s *SQLite) MergeUpdate(ctx context.Context, id string, fields models.FilmUpsert) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin merge update: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, "SELECT "+filmColumns+" FROM films WHERE id = ?", id)
	film, err := scanFilm(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	applyUpsert(&film, fields)
	genres, err := json.Marshal(film.Genres)
	if err != nil {
		return fmt.Errorf("encode genres: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE films SET title = ?, year = ?, rating = ?, genres = ?, country = ?,
		 embed = ?, synopsis = ?, duration = ?, poster = ?, updated_at = ? WHERE id = ?`,
		film.Title, film.Year, film.Rating, string(genres), film.Country,
		film.Embed, film.Synopsis, film.Duration, film.Poster, film.UpdatedAt, id,
	)
	if err != nil {
		return fmt.Errorf("update film: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit merge update: %w", err)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM films WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete film: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete film: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) Close() error { return s.db.Close() }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFilm(row rowScanner) (models.Film, error) {
	var film models.Film
	var genres string
	err := row.Scan(&film.ID, &film.Title, &film.Year, &film.Rating, &genres,
		&film.Country, &film.Embed, &film.Synopsis, &film.Duration, &film.Poster,
		&film.UploadedAt, &film.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Film{}, err
	}
	if err != nil {
		return models.Film{}, fmt.Errorf("scan film: %w", err)
	}
	if genres != "" {
		if err := json.Unmarshal([]byte(genres), &film.Genres); err != nil {
			return models.Film{}, fmt.Errorf("decode genres for film %s: %w", film.ID, err)
		}
	}
	return film, nil
}
