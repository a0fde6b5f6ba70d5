package user

import (
	"context"
	"fmt"
	"strings"

	"bookshare/internal/entity"
	"bookshare/internal/platform/crypto"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Create stores a new user with a hashed password. No session is issued.
func (s *Service) Create(ctx context.Context, in NewUser) (User, error) {
	hash, err := crypto.HashPassword(in.Password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	u := &User{
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		ProfilePhoto: in.ProfilePhoto,
		Location:     strings.TrimSpace(in.Location),
	}
	if err := s.repo.Create(ctx, u, hash); err != nil {
		return User{}, err
	}
	return *u, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}

func (s *Service) Profile(ctx context.Context, id string) (Profile, error) {
	if !validID(id) {
		return Profile{}, ErrNotFound
	}
	p, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	if p.BookmarkedBooks == nil {
		p.BookmarkedBooks = []entity.BookSummary{}
	}
	if p.PostedBooks == nil {
		p.PostedBooks = []entity.BookSummary{}
	}
	return p, nil
}

func (s *Service) Friends(ctx context.Context, id string) ([]entity.UserSummary, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	friends, err := s.repo.ListFriends(ctx, id)
	if err != nil {
		return nil, err
	}
	if friends == nil {
		friends = []entity.UserSummary{}
	}
	return friends, nil
}

// Delete removes the user. Posted books, bookmarks and friendship edges go
// with it.
func (s *Service) Delete(ctx context.Context, id string) (User, error) {
	if !validID(id) {
		return User{}, ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
