package match

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

// Like handles POST /book/{user}/{bookId}/like/
// @Summary Like a book
// @Description Bookmark a book and befriend its poster on a mutual like. {user} is a user id or username.
// @Tags books
// @Produce json
// @Param user path string true "User ID or username"
// @Param bookId path string true "Book ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /book/{user}/{bookId}/like/ [post]
func (h *HTTPHandler) Like(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Like(r.Context(), r.PathValue("user"), r.PathValue("bookId"))
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			httpx.NotFound(w, r, "User not found")
		case errors.Is(err, ErrBookNotFound):
			httpx.NotFound(w, r, "Book not found")
		default:
			httpx.InternalError(w, r, h.log, err)
		}
		return
	}
	httpx.JSONSuccess(w, r, res, nil)
}
