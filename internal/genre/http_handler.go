package genre

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

type createReq struct {
	Name string `json:"name" validate:"notblank,max=100"`
}

// Create handles POST /genre/
// @Summary Create a genre
// @Tags genres
// @Accept json
// @Produce json
// @Param request body createReq true "Genre"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /genre/ [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	g, err := h.service.Create(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			httpx.JSONError(w, r, http.StatusConflict, "ALREADY_EXISTS", "Genre already exists", nil)
			return
		}
		httpx.InternalError(w, r, h.log, err)
		return
	}
	httpx.JSONCreated(w, r, g)
}

// List handles GET /genres/
// @Summary List genres
// @Tags genres
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Router /genres/ [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	genres, err := h.service.List(r.Context())
	if err != nil {
		httpx.InternalError(w, r, h.log, err)
		return
	}
	httpx.JSONSuccess(w, r, genres, nil)
}

// Delete handles DELETE /genre/{name}/
// @Summary Delete a genre
// @Description Deletes the genre and every book filed under it
// @Tags genres
// @Produce json
// @Param name path string true "Genre name"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /genre/{name}/ [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	g, err := h.service.Delete(r.Context(), r.PathValue("name"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.NotFound(w, r, "Genre not found")
			return
		}
		httpx.InternalError(w, r, h.log, err)
		return
	}
	httpx.JSONSuccess(w, r, g, nil)
}
