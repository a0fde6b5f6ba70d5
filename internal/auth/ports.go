package auth

import (
	"context"
	"time"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=auth

type Repository interface {
	Create(ctx context.Context, a *Account, s StoredSession) error
	GetByEmail(ctx context.Context, email string) (Account, error)
	GetByID(ctx context.Context, id string) (Account, error)
	GetByUpdateHash(ctx context.Context, hash string) (Account, error)
	// GetBySessionHash only matches sessions that expire after now.
	GetBySessionHash(ctx context.Context, hash string, now time.Time) (Account, error)
	// ReplaceSession overwrites the stored tokens. When expectedUpdateHash is
	// set the row must still carry it, otherwise ErrNotFound is returned.
	ReplaceSession(ctx context.Context, userID, expectedUpdateHash string, s StoredSession) error
	// ExpireSession ends the active session with the given hash at now.
	ExpireSession(ctx context.Context, hash string, now time.Time) error
}
