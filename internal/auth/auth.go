package auth

import (
	"errors"
	"time"
)

var (
	// ErrUnauthorized covers bad credentials and unknown or expired tokens.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrAlreadyExists is returned when registering a taken email or username.
	ErrAlreadyExists = errors.New("account already exists")
	// ErrNotFound is returned by the repository when no account matches.
	ErrNotFound = errors.New("account not found")
)

// Account is the credential side of a user row.
type Account struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username,omitempty"`
	PasswordHash string `json:"-"`
}

// Session is returned to the client on register, login and renewal.
type Session struct {
	SessionToken      string    `json:"session_token"`
	SessionExpiration time.Time `json:"session_expiration"`
	UpdateToken       string    `json:"update_token"`
}

// StoredSession is what the repository persists for a Session.
type StoredSession struct {
	SessionHash string
	ExpiresAt   time.Time
	UpdateHash  string
}
