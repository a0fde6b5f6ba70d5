package match

import (
	"context"
	"sort"
	"testing"

	"bookshare/internal/entity"
	"bookshare/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	aliceID = "11111111-1111-4111-8111-111111111111"
	bobID   = "22222222-2222-4222-8222-222222222222"
	carolID = "33333333-3333-4333-8333-333333333333"

	duneID     = "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa"
	hyperionID = "bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbbb"
	foundID    = "cccccccc-cccc-4ccc-8ccc-cccccccccccc"
)

// memStore keeps bookmarks in insertion order and friendships as directed edges.
type memStore struct {
	users     map[string]entity.UserSummary
	books     map[string]PostedBook
	bookmarks map[string][]string
	friends   map[[2]string]bool
}

func newMemStore() *memStore {
	s := &memStore{
		users:     map[string]entity.UserSummary{},
		books:     map[string]PostedBook{},
		bookmarks: map[string][]string{},
		friends:   map[[2]string]bool{},
	}
	for _, u := range []entity.UserSummary{
		{ID: aliceID, Username: "alice"},
		{ID: bobID, Username: "bob"},
		{ID: carolID, Username: "carol"},
	} {
		s.users[u.ID] = u
	}
	s.addBook(duneID, "Dune", aliceID)
	s.addBook(hyperionID, "Hyperion", bobID)
	s.addBook(foundID, "Foundation", carolID)
	return s
}

func (s *memStore) addBook(id, title, posterID string) {
	s.books[id] = PostedBook{Book: entity.BookSummary{ID: id, Title: title}, Poster: s.users[posterID]}
}

func (s *memStore) RunInTx(ctx context.Context, fn func(Store) error) error {
	return fn(s)
}

func (s *memStore) UserByID(ctx context.Context, id string) (entity.UserSummary, error) {
	u, ok := s.users[id]
	if !ok {
		return entity.UserSummary{}, ErrUserNotFound
	}
	return u, nil
}

func (s *memStore) UserByUsername(ctx context.Context, username string) (entity.UserSummary, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return entity.UserSummary{}, ErrUserNotFound
}

func (s *memStore) Book(ctx context.Context, id string) (PostedBook, error) {
	b, ok := s.books[id]
	if !ok {
		return PostedBook{}, ErrBookNotFound
	}
	return b, nil
}

func (s *memStore) LockPair(ctx context.Context, a, b string) error { return nil }

func (s *memStore) AddBookmark(ctx context.Context, userID, bookID string) (bool, error) {
	for _, id := range s.bookmarks[userID] {
		if id == bookID {
			return false, nil
		}
	}
	s.bookmarks[userID] = append(s.bookmarks[userID], bookID)
	return true, nil
}

func (s *memStore) Bookmarks(ctx context.Context, userID string) ([]PostedBook, error) {
	var out []PostedBook
	for _, id := range s.bookmarks[userID] {
		out = append(out, s.books[id])
	}
	return out, nil
}

func (s *memStore) AddFriendship(ctx context.Context, a, b string) error {
	s.friends[[2]string{a, b}] = true
	s.friends[[2]string{b, a}] = true
	return nil
}

func (s *memStore) friendsOf(id string) []string {
	var out []string
	for edge := range s.friends {
		if edge[0] == id {
			out = append(out, edge[1])
		}
	}
	sort.Strings(out)
	return out
}

func TestService_Like(t *testing.T) {
	ctx := context.Background()

	t.Run("no match when owner has not bookmarked liker's books", func(t *testing.T) {
		st := newMemStore()
		svc := NewService(st, logger.Discard())

		res, err := svc.Like(ctx, aliceID, hyperionID)
		require.NoError(t, err)
		assert.False(t, res.Matched)
		assert.False(t, res.AlreadyLiked)
		assert.Nil(t, res.MatchedBook)
		assert.Equal(t, bobID, res.Owner.ID)
		assert.Equal(t, []string{hyperionID}, st.bookmarks[aliceID])
		assert.Empty(t, st.friends)
	})

	t.Run("reciprocal like creates symmetric friendship", func(t *testing.T) {
		st := newMemStore()
		svc := NewService(st, logger.Discard())

		_, err := svc.Like(ctx, bobID, duneID)
		require.NoError(t, err)

		res, err := svc.Like(ctx, "alice", hyperionID)
		require.NoError(t, err)
		assert.True(t, res.Matched)
		require.NotNil(t, res.MatchedBook)
		assert.Equal(t, duneID, res.MatchedBook.ID)
		assert.Equal(t, hyperionID, res.LikedBook.ID)
		assert.Equal(t, []string{bobID}, st.friendsOf(aliceID))
		assert.Equal(t, []string{aliceID}, st.friendsOf(bobID))
	})

	t.Run("match is on poster identity not book identity", func(t *testing.T) {
		st := newMemStore()
		svc := NewService(st, logger.Discard())

		// Bob bookmarked Carol's book, which is not posted by Alice.
		_, err := svc.Like(ctx, bobID, foundID)
		require.NoError(t, err)

		res, err := svc.Like(ctx, aliceID, hyperionID)
		require.NoError(t, err)
		assert.False(t, res.Matched)
		assert.Empty(t, st.friendsOf(aliceID))
	})

	t.Run("liking twice is idempotent", func(t *testing.T) {
		st := newMemStore()
		svc := NewService(st, logger.Discard())

		_, err := svc.Like(ctx, bobID, duneID)
		require.NoError(t, err)
		first, err := svc.Like(ctx, aliceID, hyperionID)
		require.NoError(t, err)
		second, err := svc.Like(ctx, aliceID, hyperionID)
		require.NoError(t, err)

		assert.False(t, first.AlreadyLiked)
		assert.True(t, second.AlreadyLiked)
		assert.True(t, second.Matched)
		assert.Len(t, st.bookmarks[aliceID], 1)
		assert.Equal(t, []string{bobID}, st.friendsOf(aliceID))
	})

	t.Run("liking own book never matches", func(t *testing.T) {
		st := newMemStore()
		svc := NewService(st, logger.Discard())

		res, err := svc.Like(ctx, aliceID, duneID)
		require.NoError(t, err)
		assert.False(t, res.Matched)
		assert.Empty(t, st.friends)
	})

	t.Run("unknown liker", func(t *testing.T) {
		svc := NewService(newMemStore(), logger.Discard())

		_, err := svc.Like(ctx, "mallory", hyperionID)
		assert.ErrorIs(t, err, ErrUserNotFound)

		_, err = svc.Like(ctx, "44444444-4444-4444-8444-444444444444", hyperionID)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("unknown book", func(t *testing.T) {
		svc := NewService(newMemStore(), logger.Discard())

		_, err := svc.Like(ctx, aliceID, "dddddddd-dddd-4ddd-8ddd-dddddddddddd")
		assert.ErrorIs(t, err, ErrBookNotFound)

		_, err = svc.Like(ctx, aliceID, "not-a-uuid")
		assert.ErrorIs(t, err, ErrBookNotFound)
	})
}
