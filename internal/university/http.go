package university

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
	router.Get("/universities", h.GetAllUniversities)
	router.Get("/universities/{id}", h.GetUniversity)

	router.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/universities", h.CreateUniversity)
		r.Put("/universities/{id}", h.UpdateUniversity)
		r.Delete("/universities/{id}", h.DeleteUniversity)
	})
}

func (h *Handler) CreateUniversity(w http.ResponseWriter, r *http.Request) {
	var req UniversityRequest
	if err := httputil.DecodeAndValidate(r, h.validate, &req); err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "creating university", "name", req.Name)
	university, err := h.service.CreateUniversity(r.Context(), req)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusCreated, university)
}

func (h *Handler) GetAllUniversities(w http.ResponseWriter, r *http.Request) {
	universities, err := h.service.GetAllUniversities(r.Context())
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, universities)
}

func (h *Handler) GetUniversity(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IntParam(r, "id")
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	university, err := h.service.GetUniversityByID(r.Context(), id)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, university)
}

func (h *Handler) UpdateUniversity(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IntParam(r, "id")
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	var req UniversityRequest
	if err := httputil.DecodeAndValidate(r, h.validate, &req); err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "updating university", "id", id)
	university, err := h.service.UpdateUniversity(r.Context(), id, req)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, university)
}

func (h *Handler) DeleteUniversity(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IntParam(r, "id")
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "deleting university", "id", id)
	if err := h.service.DeleteUniversity(r.Context(), id); err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
