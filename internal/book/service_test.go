package book

import (
	"context"
	"errors"
	"testing"

	"bookshare/internal/platform/logger"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_CreateCoverLookup(t *testing.T) {
	ctx := context.Background()

	t.Run("fills missing image from cover finder", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := NewMockRepository(ctrl)
		covers := NewMockCoverFinder(ctrl)
		svc := NewService(repo).WithCoverFinder(covers, logger.Discard())

		covers.EXPECT().FindCover(gomock.Any(), "Dune", "Frank Herbert").Return("https://covers.example/dune.jpg", nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, b *Book) error {
			assert.Equal(t, "https://covers.example/dune.jpg", b.ImageURL)
			return nil
		})

		b, err := svc.Create(ctx, testUserID, NewBook{Title: " Dune ", Author: "Frank Herbert", Genre: "scifi"})
		require.NoError(t, err)
		assert.Equal(t, "Dune", b.Title)
	})

	t.Run("lookup failure is ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := NewMockRepository(ctrl)
		covers := NewMockCoverFinder(ctrl)
		svc := NewService(repo).WithCoverFinder(covers, logger.Discard())

		covers.EXPECT().FindCover(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("timeout"))
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		b, err := svc.Create(ctx, testUserID, NewBook{Title: "Dune", Genre: "scifi"})
		require.NoError(t, err)
		assert.Empty(t, b.ImageURL)
	})

	t.Run("supplied image skips lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := NewMockRepository(ctrl)
		covers := NewMockCoverFinder(ctrl)
		svc := NewService(repo).WithCoverFinder(covers, logger.Discard())

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		b, err := svc.Create(ctx, testUserID, NewBook{Title: "Dune", Genre: "scifi", ImageURL: "https://img.example/d.jpg"})
		require.NoError(t, err)
		assert.Equal(t, "https://img.example/d.jpg", b.ImageURL)
	})
}

func TestService_EditTrimsFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	svc := NewService(repo)

	title := "  Dune Messiah "
	repo.EXPECT().Update(gomock.Any(), testBookID, gomock.Any()).DoAndReturn(func(ctx context.Context, id string, p Patch) (Book, error) {
		assert.Equal(t, "Dune Messiah", *p.Title)
		return Book{ID: id, Title: *p.Title}, nil
	})

	b, err := svc.Edit(context.Background(), testBookID, Patch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", b.Title)
}

func TestService_MalformedIDs(t *testing.T) {
	svc := NewService(NewMockRepository(gomock.NewController(t)))
	ctx := context.Background()

	_, err := svc.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Delete(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.ListByUser(ctx, "abc")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
