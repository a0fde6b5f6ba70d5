package genre

import (
	"context"
	"testing"
	"time"

	"bookshare/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRepo_Lifecycle(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresRepo(db, 3*time.Second)
	ctx := context.Background()

	g := &Genre{Name: "scifi"}
	require.NoError(t, repo.Create(ctx, g))
	require.NotEmpty(t, g.ID)

	assert.ErrorIs(t, repo.Create(ctx, &Genre{Name: "scifi"}), ErrAlreadyExists)

	got, err := repo.GetByName(ctx, "scifi")
	require.NoError(t, err)
	assert.Equal(t, g.ID, got.ID)

	genres, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, genres, 1)

	deleted, err := repo.DeleteByName(ctx, "scifi")
	require.NoError(t, err)
	assert.Equal(t, g.ID, deleted.ID)

	_, err = repo.DeleteByName(ctx, "scifi")
	assert.ErrorIs(t, err, ErrNotFound)
}
