package careerpath

import (
	"log/slog"
	"net/http"

	"orientation-service/internal/httputil"

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
	router.Get("/career-paths", h.GetAllCareerPaths)
	router.Get("/career-paths/{id}", h.GetCareerPath)
	router.With(requireAuth).Post("/career-paths", h.CreateCareerPath)
	router.With(requireAuth).Delete("/career-paths/{id}", h.DeleteCareerPath)
}

func (h *Handler) CreateCareerPath(w http.ResponseWriter, r *http.Request) {
	var req CreateCareerPathRequest
	if err := httputil.DecodeAndValidate(r, h.validate, &req); err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	careerPath, err := h.service.CreateCareerPath(r.Context(), req)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "career path created", "id", careerPath.ID)
	httputil.RespondWithJSON(w, http.StatusCreated, careerPath)
}

func (h *Handler) GetAllCareerPaths(w http.ResponseWriter, r *http.Request) {
	careerPaths, err := h.service.GetAllCareerPaths(r.Context())
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, careerPaths)
}

func (h *Handler) GetCareerPath(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IntParam(r, "id")
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	careerPath, err := h.service.GetCareerPathByID(r.Context(), id)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, careerPath)
}

func (h *Handler) DeleteCareerPath(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IntParam(r, "id")
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	if err := h.service.DeleteCareerPath(r.Context(), id); err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "career path deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}
