package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"

	"bookshare/internal/book"
	"bookshare/internal/config"
	"bookshare/internal/genre"
	"bookshare/internal/match"
	"bookshare/internal/platform/logger"
	"bookshare/internal/platform/postgres"
	"bookshare/internal/user"

	"github.com/sirupsen/logrus"
)

var genreNames = []string{"scifi", "fantasy", "mystery", "history", "romance", "poetry", "philosophy", "biography"}

func main() {
	var (
		users        = flag.Int("users", 5, "number of demo users")
		booksPerUser = flag.Int("books", 3, "books posted per user")
		likes        = flag.Int("likes", 10, "random likes between demo users")
	)
	flag.Parse()

	config.LoadEnvFiles()
	cfg := config.Load()
	log := logger.New(cfg.AppName+"-seed", cfg.Env)
	cfg.LogWarnings(log)
	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DBDSN, 4, 0)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer pool.Close()

	genreRepo := genre.NewPostgresRepo(pool, cfg.DBQueryTimeout)
	s := seeder{
		log:     log,
		genres:  genre.NewService(genreRepo),
		lookup:  genreRepo,
		users:   user.NewService(user.NewPostgresRepo(pool, cfg.DBQueryTimeout)),
		books:   book.NewService(book.NewPostgresRepo(pool, cfg.DBQueryTimeout)),
		matches: match.NewService(match.NewPostgresRepo(pool, cfg.DBQueryTimeout), log),
	}
	if err := s.run(ctx, *users, *booksPerUser, *likes); err != nil {
		log.WithError(err).Fatal("seed failed")
	}
}

type seeder struct {
	log     logrus.FieldLogger
	genres  *genre.Service
	lookup  genre.Repository
	users   *user.Service
	books   *book.Service
	matches *match.Service
}

func (s seeder) run(ctx context.Context, users, booksPerUser, likes int) error {
	for _, name := range genreNames {
		if err := s.ensureGenre(ctx, name); err != nil {
			return err
		}
	}

	var userIDs, bookIDs []string
	for i := 0; i < users; i++ {
		u, err := s.users.Create(ctx, user.NewUser{
			Username: fmt.Sprintf("reader%d", i+1),
			Password: "password123",
			Location: getRandomWord(),
		})
		if errors.Is(err, user.ErrAlreadyExists) {
			s.log.WithField("username", fmt.Sprintf("reader%d", i+1)).Info("user exists, skipping")
			continue
		}
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		userIDs = append(userIDs, u.ID)

		for j := 0; j < booksPerUser; j++ {
			b, err := s.books.Create(ctx, u.ID, book.NewBook{
				Title:       fmt.Sprintf("The %s of %s", getRandomWord(), getRandomWord()),
				Author:      fmt.Sprintf("Author %d", rand.Intn(100)+1),
				Description: fmt.Sprintf("A book about %s.", getRandomWord()),
				Quote:       fmt.Sprintf("%s is everything.", getRandomWord()),
				Genre:       genreNames[rand.Intn(len(genreNames))],
			})
			if err != nil {
				return fmt.Errorf("create book: %w", err)
			}
			bookIDs = append(bookIDs, b.ID)
		}
	}
	s.log.WithFields(logrus.Fields{"users": len(userIDs), "books": len(bookIDs)}).Info("seeded users and books")

	if len(userIDs) == 0 || len(bookIDs) == 0 {
		return nil
	}
	matched := 0
	for i := 0; i < likes; i++ {
		res, err := s.matches.Like(ctx, userIDs[rand.Intn(len(userIDs))], bookIDs[rand.Intn(len(bookIDs))])
		if err != nil {
			return fmt.Errorf("like: %w", err)
		}
		if res.Matched && !res.AlreadyLiked {
			matched++
		}
	}
	s.log.WithFields(logrus.Fields{"likes": likes, "matches": matched}).Info("seeded likes")
	return nil
}

func (s seeder) ensureGenre(ctx context.Context, name string) error {
	if _, err := s.lookup.GetByName(ctx, name); err == nil {
		return nil
	} else if !errors.Is(err, genre.ErrNotFound) {
		return fmt.Errorf("get genre: %w", err)
	}
	if _, err := s.genres.Create(ctx, name); err != nil && !errors.Is(err, genre.ErrAlreadyExists) {
		return fmt.Errorf("create genre: %w", err)
	}
	return nil
}

func getRandomWord() string {
	words := []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
	return words[rand.Intn(len(words))]
}
