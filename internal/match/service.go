package match

import (
	"context"
	"fmt"

	"bookshare/internal/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Service struct {
	repo Repository
	log  logrus.FieldLogger
}

func NewService(repo Repository, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, log: log}
}

// Like records that likerRef (a user id or username) bookmarks bookID and
// befriends the book's poster when the poster already bookmarked one of the
// liker's books.
func (s *Service) Like(ctx context.Context, likerRef, bookID string) (Result, error) {
	if _, err := uuid.Parse(bookID); err != nil {
		return Result{}, ErrBookNotFound
	}

	var res Result
	err := s.repo.RunInTx(ctx, func(st Store) error {
		var err error
		res, err = like(ctx, st, likerRef, bookID)
		return err
	})
	if err != nil {
		return Result{}, err
	}

	if res.Matched && !res.AlreadyLiked {
		s.log.WithFields(logrus.Fields{
			"liker_id": res.Liker.ID,
			"owner_id": res.Owner.ID,
		}).Info("match created")
	}
	return res, nil
}

func like(ctx context.Context, st Store, likerRef, bookID string) (Result, error) {
	liker, err := resolveLiker(ctx, st, likerRef)
	if err != nil {
		return Result{}, err
	}
	liked, err := st.Book(ctx, bookID)
	if err != nil {
		return Result{}, err
	}
	res := Result{Liker: liker, Owner: liked.Poster, LikedBook: liked.Book}

	if err := st.LockPair(ctx, liker.ID, liked.Poster.ID); err != nil {
		return Result{}, fmt.Errorf("lock pair: %w", err)
	}

	inserted, err := st.AddBookmark(ctx, liker.ID, bookID)
	if err != nil {
		return Result{}, fmt.Errorf("add bookmark: %w", err)
	}
	res.AlreadyLiked = !inserted

	if liked.Poster.ID == liker.ID {
		return res, nil
	}

	ownerBookmarks, err := st.Bookmarks(ctx, liked.Poster.ID)
	if err != nil {
		return Result{}, fmt.Errorf("owner bookmarks: %w", err)
	}
	for _, b := range ownerBookmarks {
		if b.Poster.ID != liker.ID {
			continue
		}
		matched := b.Book
		res.Matched = true
		res.MatchedBook = &matched
		break
	}
	if !res.Matched {
		return res, nil
	}

	if err := st.AddFriendship(ctx, liker.ID, liked.Poster.ID); err != nil {
		return Result{}, fmt.Errorf("add friendship: %w", err)
	}
	return res, nil
}

func resolveLiker(ctx context.Context, st Store, ref string) (entity.UserSummary, error) {
	if _, perr := uuid.Parse(ref); perr == nil {
		return st.UserByID(ctx, ref)
	}
	return st.UserByUsername(ctx, ref)
}
