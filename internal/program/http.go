package program

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
	router.Get("/programs", h.GetAllPrograms)
	router.Get("/programs/{id}", h.GetProgram)
	router.Get("/programs/career-path/{id}", h.GetProgramsByCareerPath)
	router.With(requireAuth).Post("/programs", h.CreateProgram)
	router.With(requireAuth).Delete("/programs/{id}", h.DeleteProgram)
}

func (h *Handler) CreateProgram(w http.ResponseWriter, r *http.Request) {
	var req CreateProgramRequest
	if err := httputil.DecodeAndValidate(r, h.validate, &req); err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "creating program", "name", req.ProgramName, "career_path_id", req.CareerPathID)
	program, err := h.service.CreateProgram(r.Context(), req)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusCreated, program)
}

func (h *Handler) GetAllPrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := h.service.GetAllPrograms(r.Context())
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, programs)
}

func (h *Handler) GetProgram(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IntParam(r, "id")
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	program, err := h.service.GetProgramByID(r.Context(), id)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, program)
}

func (h *Handler) GetProgramsByCareerPath(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IntParam(r, "id")
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	programs, err := h.service.GetProgramsByCareerPath(r.Context(), id)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, programs)
}

func (h *Handler) DeleteProgram(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IntParam(r, "id")
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "deleting program", "id", id)
	if err := h.service.DeleteProgram(r.Context(), id); err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
