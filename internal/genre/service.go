package genre

import (
	"context"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, name string) (Genre, error) {
	g := &Genre{Name: strings.TrimSpace(name)}
	if err := s.repo.Create(ctx, g); err != nil {
		return Genre{}, err
	}
	return *g, nil
}

func (s *Service) List(ctx context.Context) ([]Genre, error) {
	genres, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if genres == nil {
		genres = []Genre{}
	}
	return genres, nil
}

func (s *Service) Delete(ctx context.Context, name string) (Genre, error) {
	return s.repo.DeleteByName(ctx, name)
}
