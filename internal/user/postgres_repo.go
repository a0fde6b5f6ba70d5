package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookshare/internal/entity"
	"bookshare/internal/platform/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, COALESCE(username, ''), COALESCE(email, ''), COALESCE(profile_photo, ''), COALESCE(location, ''), created_at`

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

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.ProfilePhoto, &u.Location, &u.CreatedAt)
	return u, err
}

func (r *PostgresRepo) Create(ctx context.Context, u *User, passwordHash string) error {
	const query = `
	INSERT INTO users (username, password_hash, email, profile_photo, location)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, created_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query,
		u.Username, passwordHash, nullIfEmpty(u.Email), nullIfEmpty(u.ProfilePhoto), nullIfEmpty(u.Location),
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err, "") {
			return ErrAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *PostgresRepo) List(ctx context.Context) ([]User, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, `
	SELECT id, COALESCE(username, ''), COALESCE(profile_photo, ''), COALESCE(location, ''), created_at
	FROM users
	ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	// Emails are private and only appear on the profile.
	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.ProfilePhoto, &u.Location, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func listSummaries(ctx context.Context, tx pgx.Tx, query, id string) ([]entity.BookSummary, error) {
	rows, err := tx.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []entity.BookSummary
	for rows.Next() {
		var b entity.BookSummary
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.ImageURL, &b.Quote, &b.Genre); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *PostgresRepo) GetProfile(ctx context.Context, id string) (Profile, error) {
	const bookmarked = `
	SELECT b.id, b.title, b.author, b.description, b.image_url, b.quote, COALESCE(g.name, '')
	FROM bookmarks bm
	JOIN books b ON b.id = bm.book_id
	LEFT JOIN genres g ON g.id = b.genre_id
	WHERE bm.user_id = $1
	ORDER BY bm.created_at, b.id
	`
	const posted = `
	SELECT b.id, b.title, b.author, b.description, b.image_url, b.quote, COALESCE(g.name, '')
	FROM books b
	LEFT JOIN genres g ON g.id = b.genre_id
	WHERE b.user_id = $1
	ORDER BY b.created_at, b.id
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(timeoutCtx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return Profile{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(timeoutCtx)

	u, err := scanUser(tx.QueryRow(timeoutCtx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, fmt.Errorf("get user: %w", err)
	}
	p := Profile{User: u}
	if p.BookmarkedBooks, err = listSummaries(timeoutCtx, tx, bookmarked, id); err != nil {
		return Profile{}, fmt.Errorf("list bookmarks: %w", err)
	}
	if p.PostedBooks, err = listSummaries(timeoutCtx, tx, posted, id); err != nil {
		return Profile{}, fmt.Errorf("list posted books: %w", err)
	}
	return p, tx.Commit(timeoutCtx)
}

func (r *PostgresRepo) ListFriends(ctx context.Context, id string) ([]entity.UserSummary, error) {
	const query = `
	SELECT u.id, COALESCE(u.username, ''), COALESCE(u.profile_photo, '')
	FROM friendships f
	JOIN users u ON u.id = f.friend_id
	WHERE f.user_id = $1
	ORDER BY f.created_at, u.id
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var exists bool
	if err := r.db.QueryRow(timeoutCtx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	rows, err := r.db.Query(timeoutCtx, query, id)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	defer rows.Close()

	var friends []entity.UserSummary
	for rows.Next() {
		var f entity.UserSummary
		if err := rows.Scan(&f.ID, &f.Username, &f.ProfilePhoto); err != nil {
			return nil, err
		}
		friends = append(friends, f)
	}
	return friends, rows.Err()
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) (User, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	u, err := scanUser(r.db.QueryRow(timeoutCtx, `DELETE FROM users WHERE id = $1 RETURNING `+userColumns, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("delete user: %w", err)
	}
	return u, nil
}
