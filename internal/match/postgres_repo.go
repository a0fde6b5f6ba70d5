package match

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

func (r *PostgresRepo) RunInTx(ctx context.Context, fn func(Store) error) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return postgres.WithTx(timeoutCtx, r.db, func(tx pgx.Tx) error {
		return fn(&txStore{tx: tx})
	})
}

type txStore struct {
	tx pgx.Tx
}

func (s *txStore) user(ctx context.Context, where string, arg string) (entity.UserSummary, error) {
	var u entity.UserSummary
	err := s.tx.QueryRow(ctx,
		`SELECT id, COALESCE(username, ''), COALESCE(profile_photo, '') FROM users WHERE `+where, arg,
	).Scan(&u.ID, &u.Username, &u.ProfilePhoto)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.UserSummary{}, ErrUserNotFound
		}
		return entity.UserSummary{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *txStore) UserByID(ctx context.Context, id string) (entity.UserSummary, error) {
	return s.user(ctx, "id = $1", id)
}

func (s *txStore) UserByUsername(ctx context.Context, username string) (entity.UserSummary, error) {
	return s.user(ctx, "username = $1", username)
}

const selectPostedBook = `
	SELECT b.id, b.title, b.author, b.description, b.image_url, b.quote, COALESCE(g.name, ''),
	       u.id, COALESCE(u.username, ''), COALESCE(u.profile_photo, '')
	FROM books b
	JOIN users u ON u.id = b.user_id
	LEFT JOIN genres g ON g.id = b.genre_id
	`

func scanPostedBook(row pgx.Row) (PostedBook, error) {
	var pb PostedBook
	err := row.Scan(
		&pb.Book.ID, &pb.Book.Title, &pb.Book.Author, &pb.Book.Description, &pb.Book.ImageURL,
		&pb.Book.Quote, &pb.Book.Genre, &pb.Poster.ID, &pb.Poster.Username, &pb.Poster.ProfilePhoto,
	)
	return pb, err
}

func (s *txStore) Book(ctx context.Context, id string) (PostedBook, error) {
	pb, err := scanPostedBook(s.tx.QueryRow(ctx, selectPostedBook+" WHERE b.id = $1 FOR SHARE OF b", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PostedBook{}, ErrBookNotFound
		}
		return PostedBook{}, fmt.Errorf("get book: %w", err)
	}
	return pb, nil
}

func (s *txStore) LockPair(ctx context.Context, a, b string) error {
	if b < a {
		a, b = b, a
	}
	_, err := s.tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1::text || ':' || $2::text))`, a, b)
	return err
}

func (s *txStore) AddBookmark(ctx context.Context, userID, bookID string) (bool, error) {
	tag, err := s.tx.Exec(ctx,
		`INSERT INTO bookmarks (user_id, book_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, userID, bookID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *txStore) Bookmarks(ctx context.Context, userID string) ([]PostedBook, error) {
	rows, err := s.tx.Query(ctx, `
	SELECT b.id, b.title, b.author, b.description, b.image_url, b.quote, COALESCE(g.name, ''),
	       u.id, COALESCE(u.username, ''), COALESCE(u.profile_photo, '')
	FROM bookmarks bm
	JOIN books b ON b.id = bm.book_id
	JOIN users u ON u.id = b.user_id
	LEFT JOIN genres g ON g.id = b.genre_id
	WHERE bm.user_id = $1
	ORDER BY bm.created_at, b.id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []PostedBook
	for rows.Next() {
		pb, err := scanPostedBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, pb)
	}
	return books, rows.Err()
}

func (s *txStore) AddFriendship(ctx context.Context, a, b string) error {
	_, err := s.tx.Exec(ctx,
		`INSERT INTO friendships (user_id, friend_id) VALUES ($1, $2), ($2, $1) ON CONFLICT DO NOTHING`, a, b,
	)
	return err
}
