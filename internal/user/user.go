package user

import (
	"errors"
	"time"

	"bookshare/internal/entity"
)

var (
	// ErrNotFound is returned when a user is not found.
	ErrNotFound = errors.New("user not found")
	// ErrAlreadyExists is returned when the username or email is taken.
	ErrAlreadyExists = errors.New("user already exists")
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	ProfilePhoto string    `json:"profile_photo,omitempty"`
	Location     string    `json:"location,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is a user together with the books they bookmarked and posted.
type Profile struct {
	User
	BookmarkedBooks []entity.BookSummary `json:"bookmarked_books"`
	PostedBooks     []entity.BookSummary `json:"posted_books"`
}

type NewUser struct {
	Username     string `json:"username" validate:"notblank,max=50"`
	Password     string `json:"password" validate:"required,min=6,max=72"`
	Email        string `json:"email" validate:"omitempty,email"`
	ProfilePhoto string `json:"profile_photo" validate:"omitempty,max=2048"`
	Location     string `json:"location" validate:"max=200"`
}
