package genre

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=genre

// Repository defines the contract for genre storage.
type Repository interface {
	Create(ctx context.Context, g *Genre) error
	List(ctx context.Context) ([]Genre, error)
	GetByName(ctx context.Context, name string) (Genre, error)
	// DeleteByName removes the genre and, through the schema cascade, its books.
	DeleteByName(ctx context.Context, name string) (Genre, error)
}
