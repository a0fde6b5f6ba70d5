package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookshare/internal/platform/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `id, COALESCE(email, ''), COALESCE(username, ''), password_hash`

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

func (r *PostgresRepo) Create(ctx context.Context, a *Account, s StoredSession) error {
	const query = `
	INSERT INTO users (id, email, username, password_hash, session_token_hash, session_expires_at, update_token_hash)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, query,
		a.ID, a.Email, nullIfEmpty(a.Username), a.PasswordHash,
		s.SessionHash, s.ExpiresAt, s.UpdateHash,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err, "users_email_key") || postgres.IsUniqueViolation(err, "users_username_key") {
			return ErrAlreadyExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *PostgresRepo) getOne(ctx context.Context, where string, args ...any) (Account, error) {
	var a Account
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, `SELECT `+accountColumns+` FROM users WHERE `+where, args...).
		Scan(&a.ID, &a.Email, &a.Username, &a.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

func (r *PostgresRepo) GetByEmail(ctx context.Context, email string) (Account, error) {
	return r.getOne(ctx, "email = $1", email)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Account, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *PostgresRepo) GetByUpdateHash(ctx context.Context, hash string) (Account, error) {
	return r.getOne(ctx, "update_token_hash = $1", hash)
}

func (r *PostgresRepo) GetBySessionHash(ctx context.Context, hash string, now time.Time) (Account, error) {
	return r.getOne(ctx, "session_token_hash = $1 AND session_expires_at > $2", hash, now)
}

func (r *PostgresRepo) ReplaceSession(ctx context.Context, userID, expectedUpdateHash string, s StoredSession) error {
	const query = `
	UPDATE users
	SET session_token_hash = $2, session_expires_at = $3, update_token_hash = $4, updated_at = now()
	WHERE id = $1 AND ($5::text IS NULL OR update_token_hash = $5)
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, userID, s.SessionHash, s.ExpiresAt, s.UpdateHash, nullIfEmpty(expectedUpdateHash))
	if err != nil {
		return fmt.Errorf("replace session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) ExpireSession(ctx context.Context, hash string, now time.Time) error {
	const query = `
	UPDATE users
	SET session_expires_at = $2, updated_at = now()
	WHERE session_token_hash = $1 AND session_expires_at > $2
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, hash, now)
	if err != nil {
		return fmt.Errorf("expire session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
