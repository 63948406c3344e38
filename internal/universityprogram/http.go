package universityprogram

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"orientation-service/internal/apperr"
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
	router.Get("/universities/{id}/programs", h.GetProgramsOffered)
	router.With(requireAuth).Post("/universities/{id}/programs/{program_id}", h.LinkProgram)
	router.With(requireAuth).Delete("/universities/{id}/programs/{program_id}", h.UnlinkProgram)

	router.Route("/university-programs", func(r chi.Router) {
		r.Get("/", h.GetAllLinks)
		r.Get("/university/{id}", h.GetLinksByUniversity)
		r.Get("/program/{id}", h.GetLinksByProgram)
		r.Get("/eligibility", h.CheckEligibility)
		r.Get("/eligible", h.GetEligiblePrograms)
	})
}

func (h *Handler) GetProgramsOffered(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IntParam(r, "id")
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	offered, err := h.service.GetProgramsOffered(r.Context(), id)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, offered)
}

// LinkProgram accepts an optional JSON body with the five minimum scores.
func (h *Handler) LinkProgram(w http.ResponseWriter, r *http.Request) {
	universityID, err := httputil.IntParam(r, "id")
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}
	programID, err := httputil.IntParam(r, "program_id")
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	var req LinkProgramRequest
	if err := httputil.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		httputil.RespondWithServiceError(w, r, h.logger, apperr.Validation("Invalid request body"))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, apperr.Validation(err.Error()))
		return
	}

	h.logger.InfoContext(r.Context(), "linking program to university", "university_id", universityID, "program_id", programID)
	link, err := h.service.LinkProgram(r.Context(), universityID, programID, req.Thresholds)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusCreated, link)
}

func (h *Handler) UnlinkProgram(w http.ResponseWriter, r *http.Request) {
	universityID, err := httputil.IntParam(r, "id")
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}
	programID, err := httputil.IntParam(r, "program_id")
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "unlinking program from university", "university_id", universityID, "program_id", programID)
	if err := h.service.UnlinkProgram(r.Context(), universityID, programID); err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetAllLinks(w http.ResponseWriter, r *http.Request) {
	links, err := h.service.GetAllLinks(r.Context())
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, links)
}

func (h *Handler) GetLinksByUniversity(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IntParam(r, "id")
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	links, err := h.service.GetLinksByUniversity(r.Context(), id)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, links)
}

func (h *Handler) GetLinksByProgram(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IntParam(r, "id")
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	links, err := h.service.GetLinksByProgram(r.Context(), id)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, links)
}

func (h *Handler) CheckEligibility(w http.ResponseWriter, r *http.Request) {
	score, err := httputil.FloatQuery(r, "student_score")
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}
	programID, err := httputil.IntQuery(r, "program_id")
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}
	universityID, err := httputil.IntQuery(r, "university_id")
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	result, err := h.service.CheckEligibility(r.Context(), EligibilityQuery{
		Score:        score,
		Section:      r.URL.Query().Get("student_section"),
		ProgramID:    programID,
		UniversityID: universityID,
	})
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, result)
}

func (h *Handler) GetEligiblePrograms(w http.ResponseWriter, r *http.Request) {
	score, err := httputil.FloatQuery(r, "score")
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	programs, err := h.service.GetEligiblePrograms(r.Context(), r.URL.Query().Get("section"), score)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, programs)
}
