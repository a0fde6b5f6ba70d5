package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookshare/internal/platform/crypto"

	"github.com/google/uuid"
)

type Service struct {
	repo   Repository
	secret string
	ttl    time.Duration
	now    func() time.Time
}

func NewService(repo Repository, secret string, ttl time.Duration) *Service {
	return &Service{
		repo:   repo,
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *Service) issue(userID string) (Session, StoredSession, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)

	sessionToken, err := crypto.GenerateSessionToken(s.secret, userID, issuedAt, expiresAt)
	if err != nil {
		return Session{}, StoredSession{}, err
	}
	updateToken, err := crypto.NewUpdateToken()
	if err != nil {
		return Session{}, StoredSession{}, err
	}

	return Session{
			SessionToken:      sessionToken,
			SessionExpiration: expiresAt.UTC(),
			UpdateToken:       updateToken,
		}, StoredSession{
			SessionHash: crypto.HashToken(sessionToken),
			ExpiresAt:   expiresAt,
			UpdateHash:  crypto.HashToken(updateToken),
		}, nil
}

// Register creates an account and opens its first session.
func (s *Service) Register(ctx context.Context, email, password, username string) (Session, error) {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}
	a := &Account{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Username:     strings.TrimSpace(username),
		PasswordHash: hash,
	}

	// The id is chosen here so the row and its first session are written by
	// one insert.
	sess, stored, err := s.issue(a.ID)
	if err != nil {
		return Session{}, err
	}
	if err := s.repo.Create(ctx, a, stored); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Login verifies the credentials and rotates both tokens.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	a, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, ErrUnauthorized
		}
		return Session{}, err
	}
	if !crypto.VerifyPassword(a.PasswordHash, password) {
		return Session{}, ErrUnauthorized
	}

	sess, stored, err := s.issue(a.ID)
	if err != nil {
		return Session{}, err
	}
	if err := s.repo.ReplaceSession(ctx, a.ID, "", stored); err != nil {
		return Session{}, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

// RenewSession trades an update token for a new session. Each update token
// works once.
func (s *Service) RenewSession(ctx context.Context, updateToken string) (Session, error) {
	oldHash := crypto.HashToken(updateToken)
	a, err := s.repo.GetByUpdateHash(ctx, oldHash)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, ErrUnauthorized
		}
		return Session{}, err
	}

	sess, stored, err := s.issue(a.ID)
	if err != nil {
		return Session{}, err
	}
	if err := s.repo.ReplaceSession(ctx, a.ID, oldHash, stored); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, ErrUnauthorized
		}
		return Session{}, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

// AuthenticateToken returns the id of the user owning an active session token.
func (s *Service) AuthenticateToken(ctx context.Context, token string) (string, error) {
	claims, err := crypto.ParseSessionToken(s.secret, token)
	if err != nil {
		return "", ErrUnauthorized
	}
	a, err := s.repo.GetBySessionHash(ctx, crypto.HashToken(token), s.now())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrUnauthorized
		}
		return "", err
	}
	if a.ID != claims.Sub {
		return "", ErrUnauthorized
	}
	return a.ID, nil
}

// Logout expires the session immediately.
func (s *Service) Logout(ctx context.Context, token string) error {
	if _, err := crypto.ParseSessionToken(s.secret, token); err != nil {
		return ErrUnauthorized
	}
	if err := s.repo.ExpireSession(ctx, crypto.HashToken(token), s.now()); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrUnauthorized
		}
		return err
	}
	return nil
}

func (s *Service) Account(ctx context.Context, userID string) (Account, error) {
	a, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Account{}, ErrUnauthorized
		}
		return Account{}, err
	}
	return a, nil
}
