package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"cinevault/models"
)

// Postgres persists films in a PostgreSQL database, sharing the schema and
// genre encoding of the SQLite backend.
type Postgres struct {
	db *sql.DB
}

var _ Store = (*Postgres)(nil)

// OpenPostgres connects to the database named by dsn and applies migrations.
func OpenPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres store: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(15 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres store: %w", err)
	}

	if err := migrate(db, "postgres"); err != nil {
		db.Close()
		return nil, err
	}

	return &Postgres{db: db}, nil
}

func (p *Postgres) GetAll(ctx context.Context) ([]models.Film, error) {
	rows, err := p.db.QueryContext(ctx, "SELECT "+filmColumns+" FROM films")
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

func (p *Postgres) GetByID(ctx context.Context, id string) (models.Film, error) {
	row := p.db.QueryRowContext(ctx, "SELECT "+filmColumns+" FROM films WHERE id = $1", id)
	film, err := scanFilm(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Film{}, ErrNotFound
	}
	return film, err
}

func (p *Postgres) Insert(ctx context.Context, fields models.FilmUpsert) (string, error) {
	film := newFilm(uuid.NewString(), fields)
	genres, err := json.Marshal(film.Genres)
	if err != nil {
		return "", fmt.Errorf("encode genres: %w", err)
	}

	_, err = p.db.ExecContext(ctx,
		"INSERT INTO films ("+filmColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)",
		film.ID, film.Title, film.Year, film.Rating, string(genres), film.Country,
		film.Embed, film.Synopsis, film.Duration, film.Poster, film.UploadedAt, film.UpdatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert film: %w", err)
	}
	return film.ID, nil
}

func (p *Postgres) MergeUpdate(ctx context.Context, id string, fields models.FilmUpsert) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin merge update: %w", err)
	}
	defer tx.Rollback()

	// Row lock keeps concurrent merges against the same film serialized.
	row := tx.QueryRowContext(ctx, "SELECT "+filmColumns+" FROM films WHERE id = $1 FOR UPDATE", id)
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
		`UPDATE films SET title = $1, year = $2, rating = $3, genres = $4, country = $5,
		 embed = $6, synopsis = $7, duration = $8, poster = $9, updated_at = $10 WHERE id = $11`,
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

func (p *Postgres) Delete(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, "DELETE FROM films WHERE id = $1", id)
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

func (p *Postgres) Close() error { return p.db.Close() }
