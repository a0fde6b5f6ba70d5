package book

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

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
		httpx.NotFound(w, r, "Book not found")
	case errors.Is(err, ErrUserNotFound):
		httpx.NotFound(w, r, "User not found")
	case errors.Is(err, ErrGenreNotFound):
		httpx.NotFound(w, r, "Genre not found")
	default:
		httpx.InternalError(w, r, h.log, err)
	}
}

// List handles GET /books/
// @Summary List books
// @Description All books, or one page when page or page_size is given
// @Tags books
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /books/ [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var q Query
	var meta map[string]any
	if query.Has("page") || query.Has("page_size") {
		page, _ := strconv.Atoi(query.Get("page"))
		if page < 1 {
			page = 1
		}
		pageSize, _ := strconv.Atoi(query.Get("page_size"))
		if pageSize <= 0 || pageSize > 100 {
			pageSize = 20
		}
		q.Limit = pageSize
		q.Offset = (page - 1) * pageSize
		meta = map[string]any{"page": page, "page_size": pageSize}
	}

	books, total, err := h.service.List(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if meta != nil {
		meta["total"] = total
		meta["total_pages"] = (total + q.Limit - 1) / q.Limit
	}
	httpx.JSONSuccess(w, r, books, meta)
}

// Get handles GET /book/{id}/
// @Summary Get a book
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /book/{id}/ [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// ListByGenre handles GET /genre/{name}/books/
// @Summary List books in a genre
// @Tags books
// @Produce json
// @Param name path string true "Genre name"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /genre/{name}/books/ [get]
func (h *HTTPHandler) ListByGenre(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.ListByGenre(r.Context(), r.PathValue("name"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, books, nil)
}

// ListByUser handles GET /user/{id}/books/
// @Summary List books posted by a user
// @Tags books
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /user/{id}/books/ [get]
func (h *HTTPHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.ListByUser(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, books, nil)
}

// Create handles POST /book/{userId}/
// @Summary Post a book
// @Description Create a book owned by the user and filed under an existing genre
// @Tags books
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param request body NewBook true "Book"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /book/{userId}/ [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req NewBook
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	b, err := h.service.Create(r.Context(), r.PathValue("userId"), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONCreated(w, r, b)
}

// Edit handles POST /book/{id}/edit/
// @Summary Edit a book
// @Description Only the fields present in the body are changed
// @Tags books
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Param request body Patch true "Changed fields"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /book/{id}/edit/ [post]
func (h *HTTPHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req Patch
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}
	if details := req.blankRequired(); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	b, err := h.service.Edit(r.Context(), r.PathValue("id"), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Delete handles DELETE /book/{id}/
// @Summary Delete a book
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /book/{id}/ [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// blankRequired reports a title or genre explicitly set to a blank value.
func (p Patch) blankRequired() []httpx.ErrorDetail {
	var details []httpx.ErrorDetail
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		details = append(details, httpx.ErrorDetail{Field: "title", Message: "title is required"})
	}
	if p.Genre != nil && strings.TrimSpace(*p.Genre) == "" {
		details = append(details, httpx.ErrorDetail{Field: "genre", Message: "genre is required"})
	}
	return details
}
