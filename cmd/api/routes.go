package main

import (
	"context"
	"net/http"
	"time"

	"bookshare/internal/auth"
	"bookshare/internal/book"
	"bookshare/internal/genre"
	"bookshare/internal/httpx"
	"bookshare/internal/match"
	"bookshare/internal/user"
)

type handlers struct {
	auth  *auth.HTTPHandler
	users *user.HTTPHandler
	genre *genre.HTTPHandler
	books *book.HTTPHandler
	likes *match.HTTPHandler
}

type pinger func(ctx context.Context) error

func newRouter(h handlers, authn httpx.Authenticator, ping pinger) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	// Auth
	router.HandleFunc("POST /register/{$}", h.auth.Register)
	router.HandleFunc("POST /login/{$}", h.auth.Login)
	router.HandleFunc("POST /session/{$}", h.auth.RenewSession)
	router.HandleFunc("POST /logout/{$}", h.auth.Logout)
	router.Handle("GET /secret/{$}", httpx.AuthMiddleware(authn)(http.HandlerFunc(h.auth.Secret)))

	// Users
	router.HandleFunc("GET /users/{$}", h.users.List)
	router.HandleFunc("POST /user/{$}", h.users.Create)
	router.HandleFunc("GET /user/{id}/profile/{$}", h.users.Profile)
	router.HandleFunc("GET /user/{id}/friends/{$}", h.users.Friends)
	router.HandleFunc("GET /user/{id}/books/{$}", h.books.ListByUser)
	router.HandleFunc("DELETE /user/{id}/{$}", h.users.Delete)

	// Genres
	router.HandleFunc("GET /genres/{$}", h.genre.List)
	router.HandleFunc("POST /genre/{$}", h.genre.Create)
	router.HandleFunc("GET /genre/{name}/books/{$}", h.books.ListByGenre)
	router.HandleFunc("DELETE /genre/{name}/{$}", h.genre.Delete)

	// Books
	router.HandleFunc("GET /books/{$}", h.books.List)
	router.HandleFunc("GET /book/{id}/{$}", h.books.Get)
	router.HandleFunc("POST /book/{userId}/{$}", h.books.Create)
	router.HandleFunc("POST /book/{id}/edit/{$}", h.books.Edit)
	router.HandleFunc("POST /book/{user}/{bookId}/like/{$}", h.likes.Like)
	router.HandleFunc("DELETE /book/{id}/{$}", h.books.Delete)

	return router
}
