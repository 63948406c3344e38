package auth

import (
	"log/slog"
	"net/http"

	"orientation-service/internal/apperr"
	"orientation-service/internal/httputil"
	"orientation-service/internal/user"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  Service
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router, requireAuth func(http.Handler) http.Handler) {
	router.Post("/auth/signup", h.Signup)
	router.Post("/auth/login", h.Login)
	router.With(requireAuth).Put("/auth/reset-password/{username}", h.ResetPassword)
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := httputil.DecodeAndValidate(r, h.validate, &req); err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	profile, err := h.service.Signup(r.Context(), req)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "user signed up", "username", profile.Username)
	httputil.RespondWithJSON(w, http.StatusCreated, profile)
}

// Login reads an OAuth2 password grant form.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, apperr.Validation("Invalid form body"))
		return
	}

	req := LoginRequest{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, apperr.Validation("username and password are required"))
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "user logged in", "username", req.Username)
	httputil.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := httputil.DecodeAndValidate(r, h.validate, &req); err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	caller, _ := user.FromContext(r.Context())
	username := chi.URLParam(r, "username")
	if err := h.service.ResetPassword(r.Context(), caller, username, req.NewPassword); err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "password reset", "username", username)
	httputil.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}
