package book

import (
	"errors"
	"time"

	"bookshare/internal/entity"
)

var (
	// ErrNotFound is returned when a book is not found.
	ErrNotFound = errors.New("book not found")
	// ErrUserNotFound is returned when the poster does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrGenreNotFound is returned when the named genre does not exist.
	ErrGenreNotFound = errors.New("genre not found")
)

// Book is a posted book with its genre name and poster.
type Book struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Author      string             `json:"author"`
	Description string             `json:"description"`
	ImageURL    string             `json:"image_url"`
	Quote       string             `json:"quote"`
	Genre       string             `json:"genre"`
	PostedBy    entity.UserSummary `json:"posted_by"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// Summary drops the poster.
func (b Book) Summary() entity.BookSummary {
	return entity.BookSummary{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		ImageURL:    b.ImageURL,
		Quote:       b.Quote,
		Genre:       b.Genre,
	}
}

// NewBook is the input for posting a book.
type NewBook struct {
	Title       string `json:"title" validate:"notblank,max=300"`
	Author      string `json:"author" validate:"max=200"`
	Description string `json:"description" validate:"max=5000"`
	ImageURL    string `json:"image_url" validate:"omitempty,url,max=2048"`
	Quote       string `json:"quote" validate:"max=1000"`
	Genre       string `json:"genre" validate:"notblank"`
}

// Patch holds a partial update. Nil fields are left untouched.
type Patch struct {
	Title       *string `json:"title" validate:"omitempty,notblank,max=300"`
	Author      *string `json:"author" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url,max=2048"`
	Quote       *string `json:"quote" validate:"omitempty,max=1000"`
	Genre       *string `json:"genre" validate:"omitempty,notblank"`
}

// Query defines pagination for listing books. A zero Limit lists everything.
type Query struct {
	Limit  int
	Offset int
}
