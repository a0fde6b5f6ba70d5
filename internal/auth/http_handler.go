package auth

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

type RegisterReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Username string `json:"username" validate:"omitempty,notblank,max=50"`
}

type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles POST /register/
// @Summary Register an account
// @Description Create an account and receive a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterReq true "Registration request"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /register/ [post]
func (h *HTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterReq
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	sess, err := h.service.Register(r.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			httpx.JSONError(w, r, http.StatusConflict, "ALREADY_EXISTS", "User already exists", nil)
			return
		}
		httpx.InternalError(w, r, h.log, err)
		return
	}
	httpx.JSONCreated(w, r, sess)
}

// Login handles POST /login/
// @Summary Log in
// @Description Verify credentials and receive a fresh session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginReq true "Login request"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /login/ [post]
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginReq
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	sess, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			httpx.WriteUnauthorized(w, r, "Incorrect username or password")
			return
		}
		httpx.InternalError(w, r, h.log, err)
		return
	}
	httpx.JSONSuccess(w, r, sess, nil)
}

// RenewSession handles POST /session/
// @Summary Renew a session
// @Description Exchange the update token (bearer) for a new session
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /session/ [post]
func (h *HTTPHandler) RenewSession(w http.ResponseWriter, r *http.Request) {
	token, err := httpx.BearerToken(r)
	if err != nil {
		httpx.WriteMissingToken(w, r)
		return
	}

	sess, err := h.service.RenewSession(r.Context(), token)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			httpx.WriteUnauthorized(w, r, "Invalid update token")
			return
		}
		httpx.InternalError(w, r, h.log, err)
		return
	}
	httpx.JSONSuccess(w, r, sess, nil)
}

// Logout handles POST /logout/
// @Summary Log out
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /logout/ [post]
func (h *HTTPHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, err := httpx.BearerToken(r)
	if err != nil {
		httpx.WriteMissingToken(w, r)
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			httpx.WriteUnauthorized(w, r, "Invalid session token")
			return
		}
		httpx.InternalError(w, r, h.log, err)
		return
	}
	httpx.JSONSuccess(w, r, map[string]string{"message": "You have been logged out"}, nil)
}

// Secret handles GET /secret/. It sits behind httpx.AuthMiddleware.
func (h *HTTPHandler) Secret(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.Account(r.Context(), httpx.UserIDFrom(r))
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			httpx.WriteUnauthorized(w, r, "Unauthorized")
			return
		}
		httpx.InternalError(w, r, h.log, err)
		return
	}
	httpx.JSONSuccess(w, r, map[string]any{
		"message": "Hello " + displayName(a),
		"user":    a,
	}, nil)
}

func displayName(a Account) string {
	if a.Username != "" {
		return a.Username
	}
	return a.Email
}
