package genre

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no genre has the requested name.
	ErrNotFound = errors.New("genre not found")
	// ErrAlreadyExists is returned when the genre name is taken.
	ErrAlreadyExists = errors.New("genre already exists")
)

type Genre struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
