package match

import (
	"context"

	"bookshare/internal/entity"
)

// Store is the view of storage available inside a like transaction.
type Store interface {
	UserByID(ctx context.Context, id string) (entity.UserSummary, error)
	UserByUsername(ctx context.Context, username string) (entity.UserSummary, error)
	Book(ctx context.Context, id string) (PostedBook, error)
	// LockPair serializes concurrent likes between the same two users.
	LockPair(ctx context.Context, a, b string) error
	// AddBookmark reports whether a new bookmark row was written.
	AddBookmark(ctx context.Context, userID, bookID string) (bool, error)
	// Bookmarks lists the user's bookmarked books, oldest bookmark first.
	Bookmarks(ctx context.Context, userID string) ([]PostedBook, error)
	// AddFriendship writes both directions of the edge. Existing edges are kept.
	AddFriendship(ctx context.Context, a, b string) error
}

// Repository runs fn in a single transaction.
type Repository interface {
	RunInTx(ctx context.Context, fn func(Store) error) error
}
