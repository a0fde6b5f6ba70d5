// Package match records likes and turns mutual likes into friendships.
//
// A like from L on book B posted by O is a match when O has bookmarked any
// book whose poster is L. The comparison is between users, never between
// books.
package match

import (
	"errors"

	"bookshare/internal/entity"
)

var (
	// ErrUserNotFound is returned when the liker cannot be resolved.
	ErrUserNotFound = errors.New("user not found")
	// ErrBookNotFound is returned when the liked book does not exist.
	ErrBookNotFound = errors.New("book not found")
)

// PostedBook is a book together with its poster.
type PostedBook struct {
	Book   entity.BookSummary
	Poster entity.UserSummary
}

// Result describes the outcome of a like.
type Result struct {
	Matched      bool                `json:"matched"`
	AlreadyLiked bool                `json:"already_liked"`
	Liker        entity.UserSummary  `json:"liker"`
	Owner        entity.UserSummary  `json:"owner"`
	LikedBook    entity.BookSummary  `json:"liked_book"`
	MatchedBook  *entity.BookSummary `json:"matched_book,omitempty"`
}
