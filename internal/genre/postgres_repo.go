package genre

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookshare/internal/platform/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Create(ctx context.Context, g *Genre) error {
	const query = `
	INSERT INTO genres (name)
	VALUES ($1)
	RETURNING id, created_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, g.Name).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err, "genres_name_key") {
			return ErrAlreadyExists
		}
		return fmt.Errorf("insert genre: %w", err)
	}
	return nil
}

func (r *PostgresRepo) List(ctx context.Context) ([]Genre, error) {
	const query = `SELECT id, name, created_at FROM genres ORDER BY name ASC`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	defer rows.Close()

	var genres []Genre
	for rows.Next() {
		var g Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt); err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

func (r *PostgresRepo) GetByName(ctx context.Context, name string) (Genre, error) {
	const query = `SELECT id, name, created_at FROM genres WHERE name = $1`
	var g Genre
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, name).Scan(&g.ID, &g.Name, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Genre{}, ErrNotFound
		}
		return Genre{}, fmt.Errorf("get genre: %w", err)
	}
	return g, nil
}

func (r *PostgresRepo) DeleteByName(ctx context.Context, name string) (Genre, error) {
	const query = `DELETE FROM genres WHERE name = $1 RETURNING id, name, created_at`
	var g Genre
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, name).Scan(&g.ID, &g.Name, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Genre{}, ErrNotFound
		}
		return Genre{}, fmt.Errorf("delete genre: %w", err)
	}
	return g, nil
}
