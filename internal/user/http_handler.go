package user

import (
	"errors"
	"net/http"

	"bookshare/internal/httpx"

	"github.com/sirupsen/logrus"
)

type HTTPHandler struct {
	service *Service
	log     logrus.FieldLogger
}

func NewHTTPHandler(service *Service, log logrus.FieldLogger) *HTTPHandler {
	return &HTTPHandler{service: service, log: log}
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.NotFound(w, r, "User not found")
	case errors.Is(err, ErrAlreadyExists):
		httpx.JSONError(w, r, http.StatusConflict, "ALREADY_EXISTS", "Username or email already exists", nil)
	default:
		httpx.InternalError(w, r, h.log, err)
	}
}

// Create handles POST /user/
// @Summary Create a user
// @Description Create a user with a username and password. No session is issued.
// @Tags users
// @Accept json
// @Produce json
// @Param request body NewUser true "User"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /user/ [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req NewUser
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	u, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONCreated(w, r, u)
}

// List handles GET /users/
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Router /users/ [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, users, nil)
}

// Profile handles GET /user/{id}/profile/
// @Summary Get a user profile
// @Description User with bookmarked and posted books
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /user/{id}/profile/ [get]
func (h *HTTPHandler) Profile(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Profile(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, p, nil)
}

// Friends handles GET /user/{id}/friends/
// @Summary List a user's friends
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /user/{id}/friends/ [get]
func (h *HTTPHandler) Friends(w http.ResponseWriter, r *http.Request) {
	friends, err := h.service.Friends(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, friends, nil)
}

// Delete handles DELETE /user/{id}/
// @Summary Delete a user
// @Description Deletes the user with their books, bookmarks and friendships
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /user/{id}/ [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, u, nil)
}
