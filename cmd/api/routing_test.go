package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bookshare/internal/auth"
	"bookshare/internal/book"
	"bookshare/internal/config"
	"bookshare/internal/genre"
	"bookshare/internal/match"
	"bookshare/internal/platform/logger"
	"bookshare/internal/user"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

type stubMatchRepo struct{ err error }

func (s stubMatchRepo) RunInTx(ctx context.Context, fn func(match.Store) error) error {
	return s.err
}

type mocks struct {
	genres *genre.MockRepository
	books  *book.MockRepository
	users  *user.MockRepository
	auth   *auth.MockRepository
}

func newTestRouter(t *testing.T, ping pinger) (http.Handler, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		genres: genre.NewMockRepository(ctrl),
		books:  book.NewMockRepository(ctrl),
		users:  user.NewMockRepository(ctrl),
		auth:   auth.NewMockRepository(ctrl),
	}
	log := logger.Discard()
	authService := auth.NewService(m.auth, "test-secret", time.Hour)
	h := handlers{
		auth:  auth.NewHTTPHandler(authService, log),
		users: user.NewHTTPHandler(user.NewService(m.users), log),
		genre: genre.NewHTTPHandler(genre.NewService(m.genres), log),
		books: book.NewHTTPHandler(book.NewService(m.books), log),
		likes: match.NewHTTPHandler(match.NewService(stubMatchRepo{err: match.ErrUserNotFound}, log), log),
	}
	return newRouter(h, authService, ping), m
}

func okPing(ctx context.Context) error { return nil }

func TestRouter_Dispatch(t *testing.T) {
	router, m := newTestRouter(t, okPing)
	const id = "7b3a6f0e-2f4c-4b8e-9c1d-2e5f6a7b8c9d"

	m.genres.EXPECT().List(gomock.Any()).Return(nil, nil)
	m.books.EXPECT().ListByGenre(gomock.Any(), "scifi").Return(nil, nil)
	m.books.EXPECT().ListByUser(gomock.Any(), id).Return(nil, nil)
	m.books.EXPECT().Update(gomock.Any(), id, gomock.Any()).Return(book.Book{ID: id}, nil)
	m.users.EXPECT().ListFriends(gomock.Any(), id).Return(nil, nil)
	m.users.EXPECT().Delete(gomock.Any(), id).Return(user.User{ID: id}, nil)
	m.genres.EXPECT().DeleteByName(gomock.Any(), "scifi").Return(genre.Genre{Name: "scifi"}, nil)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/readyz", http.StatusOK},
		{http.MethodGet, "/genres/", http.StatusOK},
		{http.MethodGet, "/genre/scifi/books/", http.StatusOK},
		{http.MethodGet, "/user/" + id + "/books/", http.StatusOK},
		{http.MethodPost, "/book/" + id + "/edit/", http.StatusOK},
		{http.MethodGet, "/user/" + id + "/friends/", http.StatusOK},
		{http.MethodDelete, "/user/" + id + "/", http.StatusOK},
		{http.MethodDelete, "/genre/scifi/", http.StatusOK},
		{http.MethodPost, "/book/alice/" + id + "/like/", http.StatusNotFound},
		{http.MethodGet, "/secret/", http.StatusBadRequest},
		{http.MethodPost, "/session/", http.StatusBadRequest},
		{http.MethodGet, "/nowhere/", http.StatusNotFound},
		{http.MethodPut, "/genres/", http.StatusMethodNotAllowed},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.method == http.MethodPost {
				req = httptest.NewRequest(tc.method, tc.path, strings.NewReader(`{}`))
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestRouter_ReadyzReportsDatabase(t *testing.T) {
	router, _ := newTestRouter(t, func(ctx context.Context) error { return errors.New("down") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestServer_CreateEndpoints(t *testing.T) {
	router, m := newTestRouter(t, okPing)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cfg := &config.Config{RateLimitRPS: 1000, RateLimitBurst: 1000, MaxBodyBytes: 1 << 20}
	server := withMiddleware(ctx, cfg, router, logger.Discard())

	m.users.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, u *user.User, hash string) error {
		u.ID = "7b3a6f0e-2f4c-4b8e-9c1d-2e5f6a7b8c9d"
		return nil
	})
	m.genres.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, g *genre.Genre) error {
		g.ID = "0f1e2d3c-4b5a-4968-8776-a5b4c3d2e1f0"
		return nil
	})
	m.auth.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"user created", "/user/", `{"username":"alice","password":"secret123"}`, http.StatusCreated},
		{"user blank username", "/user/", `{"username":"   ","password":"secret123"}`, http.StatusBadRequest},
		{"genre created", "/genre/", `{"name":"scifi"}`, http.StatusCreated},
		{"genre blank name", "/genre/", `{"name":" "}`, http.StatusBadRequest},
		{"register", "/register/", `{"email":"alice@example.com","password":"secret123"}`, http.StatusCreated},
		{"register blank username", "/register/", `{"email":"bob@example.com","password":"secret123","username":" "}`, http.StatusBadRequest},
		{"book blank title", "/book/7b3a6f0e-2f4c-4b8e-9c1d-2e5f6a7b8c9d/", `{"title":" ","genre":"scifi"}`, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			server.ServeHTTP(w, req)

			assert.Equal(t, tc.want, w.Code, w.Body.String())
			assert.NotContains(t, w.Body.String(), "INTERNAL_ERROR")
			assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
		})
	}
}
