package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for book data storage.
type Repository interface {
	// Create checks the poster and the genre and inserts the book in one
	// transaction. The poster and id fields of b are filled in.
	Create(ctx context.Context, b *Book) error
	GetByID(ctx context.Context, id string) (Book, error)
	List(ctx context.Context, q Query) ([]Book, int, error)
	ListByGenre(ctx context.Context, genre string) ([]Book, error)
	ListByUser(ctx context.Context, userID string) ([]Book, error)
	Update(ctx context.Context, id string, patch Patch) (Book, error)
	Delete(ctx context.Context, id string) (Book, error)
}

// CoverFinder looks up a cover image for a book.
type CoverFinder interface {
	FindCover(ctx context.Context, title, author string) (string, error)
}
