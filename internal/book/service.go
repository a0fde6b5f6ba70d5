package book

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const coverLookupTimeout = 3 * time.Second

// Service provides book-related business logic.
type Service struct {
	repo   Repository
	covers CoverFinder
	log    logrus.FieldLogger
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// WithCoverFinder enables cover lookup for books posted without an image.
func (s *Service) WithCoverFinder(covers CoverFinder, log logrus.FieldLogger) *Service {
	s.covers = covers
	s.log = log
	return s
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Create posts a book on behalf of userID.
func (s *Service) Create(ctx context.Context, userID string, in NewBook) (Book, error) {
	if !validID(userID) {
		return Book{}, ErrUserNotFound
	}
	b := &Book{
		Title:       strings.TrimSpace(in.Title),
		Author:      strings.TrimSpace(in.Author),
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Quote:       in.Quote,
		Genre:       strings.TrimSpace(in.Genre),
	}
	b.PostedBy.ID = userID
	if b.ImageURL == "" {
		b.ImageURL = s.lookupCover(ctx, b.Title, b.Author)
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return Book{}, err
	}
	return *b, nil
}

func (s *Service) lookupCover(ctx context.Context, title, author string) string {
	if s.covers == nil {
		return ""
	}
	lookupCtx, cancel := context.WithTimeout(ctx, coverLookupTimeout)
	defer cancel()
	cover, err := s.covers.FindCover(lookupCtx, title, author)
	if err != nil {
		if s.log != nil {
			s.log.WithError(err).WithField("title", title).Debug("cover lookup failed")
		}
		return ""
	}
	return cover
}

// Get returns a book by id.
func (s *Service) Get(ctx context.Context, id string) (Book, error) {
	if !validID(id) {
		return Book{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// List returns books newest first, optionally paginated.
func (s *Service) List(ctx context.Context, q Query) ([]Book, int, error) {
	books, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return nonNil(books), total, nil
}

// ListByGenre returns the books of the named genre.
func (s *Service) ListByGenre(ctx context.Context, genre string) ([]Book, error) {
	books, err := s.repo.ListByGenre(ctx, genre)
	if err != nil {
		return nil, err
	}
	return nonNil(books), nil
}

// ListByUser returns the books posted by userID.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Book, error) {
	if !validID(userID) {
		return nil, ErrUserNotFound
	}
	books, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return nonNil(books), nil
}

// Edit applies a partial update.
func (s *Service) Edit(ctx context.Context, id string, patch Patch) (Book, error) {
	if !validID(id) {
		return Book{}, ErrNotFound
	}
	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		patch.Title = &t
	}
	if patch.Genre != nil {
		g := strings.TrimSpace(*patch.Genre)
		patch.Genre = &g
	}
	return s.repo.Update(ctx, id, patch)
}

// Delete removes a book and returns it.
func (s *Service) Delete(ctx context.Context, id string) (Book, error) {
	if !validID(id) {
		return Book{}, ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func nonNil(books []Book) []Book {
	if books == nil {
		return []Book{}
	}
	return books
}
