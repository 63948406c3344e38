package insight

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
	router.Route("/insights", func(r chi.Router) {
		r.Get("/employability", h.GetEmployabilityRates)
		r.Get("/salaries", h.GetAverageSalaries)
		r.Get("/records", h.GetAllInsights)
		r.Get("/records/{id}", h.GetInsight)
		r.Get("/{career_path_id}", h.GetCareerPathInsight)

		r.With(requireAuth).Post("/", h.CreateInsight)
		r.With(requireAuth).Delete("/records/{id}", h.DeleteInsight)
	})
}

func (h *Handler) CreateInsight(w http.ResponseWriter, r *http.Request) {
	var req CreateInsightRequest
	if err := httputil.DecodeAndValidate(r, h.validate, &req); err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	insight, err := h.service.CreateInsight(r.Context(), req)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "insight created", "id", insight.ID, "career_path_id", insight.CareerPathID)
	httputil.RespondWithJSON(w, http.StatusCreated, insight)
}

func (h *Handler) GetAllInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := h.service.GetAllInsights(r.Context())
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, insights)
}

func (h *Handler) GetInsight(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IntParam(r, "id")
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	insight, err := h.service.GetInsightByID(r.Context(), id)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, insight)
}

func (h *Handler) DeleteInsight(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IntParam(r, "id")
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	if err := h.service.DeleteInsight(r.Context(), id); err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetEmployabilityRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.service.GetEmployabilityRates(r.Context())
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, rates)
}

func (h *Handler) GetAverageSalaries(w http.ResponseWriter, r *http.Request) {
	salaries, err := h.service.GetAverageSalaries(r.Context())
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, salaries)
}

func (h *Handler) GetCareerPathInsight(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.IntParam(r, "career_path_id")
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	report, err := h.service.GetCareerPathInsight(r.Context(), id)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, report)
}
