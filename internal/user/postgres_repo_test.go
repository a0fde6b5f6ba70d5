package user

import (
	"context"
	"testing"
	"time"

	"bookshare/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRepo_CreateAndDuplicate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresRepo(db, 3*time.Second)
	ctx := context.Background()

	u := &User{Username: "alice"}
	require.NoError(t, repo.Create(ctx, u, "hash"))
	require.NotEmpty(t, u.ID)

	assert.ErrorIs(t, repo.Create(ctx, &User{Username: "alice"}, "hash"), ErrAlreadyExists)

	// Accounts without email do not collide with each other.
	require.NoError(t, repo.Create(ctx, &User{Username: "bob"}, "hash"))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestPostgresRepo_ListHidesEmail(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresRepo(db, 3*time.Second)
	ctx := context.Background()

	u := &User{Username: "carol", Email: "carol@example.com", Location: "Oslo"}
	require.NoError(t, repo.Create(ctx, u, "hash"))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "carol", users[0].Username)
	assert.Equal(t, "Oslo", users[0].Location)
	assert.Empty(t, users[0].Email)

	p, err := repo.GetProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", p.Email)
}

func TestPostgresRepo_GetProfile(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresRepo(db, 3*time.Second)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	scifi := testutil.CreateGenre(t, db, "scifi")
	dune := testutil.CreateBook(t, db, "Dune", alice, scifi)
	hyperion := testutil.CreateBook(t, db, "Hyperion", bob, scifi)
	testutil.Bookmark(t, db, alice, hyperion)

	p, err := repo.GetProfile(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)
	require.Len(t, p.PostedBooks, 1)
	assert.Equal(t, dune, p.PostedBooks[0].ID)
	require.Len(t, p.BookmarkedBooks, 1)
	assert.Equal(t, hyperion, p.BookmarkedBooks[0].ID)
	assert.Equal(t, "scifi", p.BookmarkedBooks[0].Genre)

	_, err = repo.GetProfile(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresRepo_DeleteCascades(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostgresRepo(db, 3*time.Second)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	scifi := testutil.CreateGenre(t, db, "scifi")
	testutil.CreateBook(t, db, "Dune", alice, scifi)
	_, err := db.Exec(ctx, `INSERT INTO friendships (user_id, friend_id) VALUES ($1, $2), ($2, $1)`, alice, bob)
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "alice", deleted.Username)

	var books int
	require.NoError(t, db.QueryRow(ctx, `SELECT count(*) FROM books`).Scan(&books))
	assert.Zero(t, books)

	friends, err := repo.ListFriends(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, friends)

	_, err = repo.ListFriends(ctx, alice)
	assert.ErrorIs(t, err, ErrNotFound)
}
