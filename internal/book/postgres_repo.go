package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookshare/internal/platform/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const selectBook = `
	SELECT b.id, b.title, b.author, b.description, b.image_url, b.quote,
	       COALESCE(g.name, ''), u.id, COALESCE(u.username, ''), COALESCE(u.profile_photo, ''),
	       b.created_at, b.updated_at
	FROM books b
	JOIN users u ON u.id = b.user_id
	LEFT JOIN genres g ON g.id = b.genre_id
	`

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

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

func scanBook(row pgx.Row) (Book, error) {
	var b Book
	err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.Description, &b.ImageURL, &b.Quote,
		&b.Genre, &b.PostedBy.ID, &b.PostedBy.Username, &b.PostedBy.ProfilePhoto,
		&b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

func getBook(ctx context.Context, q querier, id string) (Book, error) {
	b, err := scanBook(q.QueryRow(ctx, selectBook+" WHERE b.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, fmt.Errorf("get book: %w", err)
	}
	return b, nil
}

func listBooks(ctx context.Context, q querier, sql string, args ...any) ([]Book, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func genreID(ctx context.Context, tx pgx.Tx, name string) (string, error) {
	var id string
	err := tx.QueryRow(ctx, `SELECT id FROM genres WHERE name = $1 FOR SHARE`, name).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrGenreNotFound
		}
		return "", fmt.Errorf("resolve genre: %w", err)
	}
	return id, nil
}

func (r *PostgresRepo) Create(ctx context.Context, b *Book) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	return postgres.WithTx(timeoutCtx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(timeoutCtx,
			`SELECT COALESCE(username, ''), COALESCE(profile_photo, '') FROM users WHERE id = $1 FOR SHARE`,
			b.PostedBy.ID,
		).Scan(&b.PostedBy.Username, &b.PostedBy.ProfilePhoto)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrUserNotFound
			}
			return fmt.Errorf("resolve poster: %w", err)
		}

		gid, err := genreID(timeoutCtx, tx, b.Genre)
		if err != nil {
			return err
		}

		const query = `
		INSERT INTO books (title, author, description, image_url, quote, genre_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
		`
		err = tx.QueryRow(timeoutCtx, query,
			b.Title, b.Author, b.Description, b.ImageURL, b.Quote, gid, b.PostedBy.ID,
		).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert book: %w", err)
		}
		return nil
	})
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return getBook(timeoutCtx, r.db, id)
}

func (r *PostgresRepo) List(ctx context.Context, q Query) ([]Book, int, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total int
	if err := r.db.QueryRow(timeoutCtx, `SELECT count(*) FROM books`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	sql := selectBook + " ORDER BY b.created_at DESC, b.id"
	args := []any{}
	if q.Limit > 0 {
		sql += " LIMIT $1 OFFSET $2"
		args = append(args, q.Limit, q.Offset)
	}
	books, err := listBooks(timeoutCtx, r.db, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

func (r *PostgresRepo) ListByGenre(ctx context.Context, genre string) ([]Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var exists bool
	if err := r.db.QueryRow(timeoutCtx, `SELECT EXISTS (SELECT 1 FROM genres WHERE name = $1)`, genre).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check genre: %w", err)
	}
	if !exists {
		return nil, ErrGenreNotFound
	}
	return listBooks(timeoutCtx, r.db, selectBook+" WHERE g.name = $1 ORDER BY b.created_at DESC, b.id", genre)
}

func (r *PostgresRepo) ListByUser(ctx context.Context, userID string) ([]Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var exists bool
	if err := r.db.QueryRow(timeoutCtx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}
	return listBooks(timeoutCtx, r.db, selectBook+" WHERE b.user_id = $1 ORDER BY b.created_at DESC, b.id", userID)
}

func (r *PostgresRepo) Update(ctx context.Context, id string, patch Patch) (Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var out Book
	err := postgres.WithTx(timeoutCtx, r.db, func(tx pgx.Tx) error {
		var gid *string
		if patch.Genre != nil {
			resolved, err := genreID(timeoutCtx, tx, *patch.Genre)
			if err != nil {
				return err
			}
			gid = &resolved
		}

		const query = `
		UPDATE books SET
			title       = COALESCE($2::text, title),
			author      = COALESCE($3::text, author),
			description = COALESCE($4::text, description),
			image_url   = COALESCE($5::text, image_url),
			quote       = COALESCE($6::text, quote),
			genre_id    = COALESCE($7::uuid, genre_id),
			updated_at  = now()
		WHERE id = $1
		`
		tag, err := tx.Exec(timeoutCtx, query,
			id, patch.Title, patch.Author, patch.Description, patch.ImageURL, patch.Quote, gid,
		)
		if err != nil {
			return fmt.Errorf("update book: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}

		out, err = getBook(timeoutCtx, tx, id)
		return err
	})
	if err != nil {
		return Book{}, err
	}
	return out, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) (Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var out Book
	err := postgres.WithTx(timeoutCtx, r.db, func(tx pgx.Tx) error {
		b, err := getBook(timeoutCtx, tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(timeoutCtx, `DELETE FROM books WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete book: %w", err)
		}
		out = b
		return nil
	})
	if err != nil {
		return Book{}, err
	}
	return out, nil
}
