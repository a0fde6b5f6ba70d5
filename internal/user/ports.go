package user

import (
	"context"

	"bookshare/internal/entity"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=user

type Repository interface {
	Create(ctx context.Context, u *User, passwordHash string) error
	List(ctx context.Context) ([]User, error)
	// GetProfile reads the user and both book collections in one snapshot.
	GetProfile(ctx context.Context, id string) (Profile, error)
	ListFriends(ctx context.Context, id string) ([]entity.UserSummary, error)
	Delete(ctx context.Context, id string) (User, error)
}
