package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookshare/internal/auth"
	"bookshare/internal/book"
	"bookshare/internal/config"
	"bookshare/internal/genre"
	"bookshare/internal/httpx"
	"bookshare/internal/match"
	"bookshare/internal/platform/logger"
	"bookshare/internal/platform/openlibrary"
	"bookshare/internal/platform/postgres"
	"bookshare/internal/user"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadEnvFiles()
	cfg := config.Load()
	log := logger.New(cfg.AppName, cfg.Env)
	cfg.LogWarnings(log)

	if cfg.JWTSecret == "" {
		log.Fatal("missing required environment variable: JWT_SECRET")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := postgres.NewPool(ctx, cfg.DBDSN, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		log.WithError(err).WithField("dsn", cfg.RedactedDSN()).Fatal("cannot open database")
	}
	defer dbPool.Close()
	log.Info("database connection OK")

	authService := auth.NewService(auth.NewPostgresRepo(dbPool, cfg.DBQueryTimeout), cfg.JWTSecret, cfg.SessionTTL)
	h := buildHandlers(cfg, dbPool, authService, log)
	router := newRouter(h, authService, dbPool.Ping)

	handler := withMiddleware(ctx, cfg, router, log)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Addr).Info("starting server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.WithError(err).Error("server error")
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

// withMiddleware wraps the router in the server's middleware chain, outermost
// first.
func withMiddleware(ctx context.Context, cfg *config.Config, router http.Handler, log logrus.FieldLogger) http.Handler {
	rateLimiter := httpx.NewRateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustProxyHeaders)
	return httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(log),
		httpx.RecoveryMiddleware(log),
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.CORSOrigins()),
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
		rateLimiter.Middleware,
	)
}

func buildHandlers(cfg *config.Config, dbPool *pgxpool.Pool, authService *auth.Service, log *logrus.Logger) handlers {
	timeout := cfg.DBQueryTimeout

	bookService := book.NewService(book.NewPostgresRepo(dbPool, timeout))
	if cfg.OpenLibraryEnabled {
		covers := openlibrary.NewClient(cfg.AppName+"/1.0", float64(cfg.OpenLibraryRPS), 1)
		bookService.WithCoverFinder(covers, log.WithField("component", "openlibrary"))
	}

	return handlers{
		auth:  auth.NewHTTPHandler(authService, log),
		users: user.NewHTTPHandler(user.NewService(user.NewPostgresRepo(dbPool, timeout)), log),
		genre: genre.NewHTTPHandler(genre.NewService(genre.NewPostgresRepo(dbPool, timeout)), log),
		books: book.NewHTTPHandler(bookService, log),
		likes: match.NewHTTPHandler(match.NewService(match.NewPostgresRepo(dbPool, timeout), log), log),
	}
}
