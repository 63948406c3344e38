package user

import (
	"log/slog"
	"net/http"
	"strconv"

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

// RegisterRoutes mounts the user routes; every one of them needs a bearer token.
func (h *Handler) RegisterRoutes(router chi.Router, requireAuth func(http.Handler) http.Handler) {
	router.Route("/users", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", h.ListUsers)
		r.Get("/profile/{username}", h.GetProfile)
		r.Get("/user/career_path", h.SuggestCareerPaths)
		r.Get("/user/university_programs", h.GetEligiblePrograms)
		r.Put("/user/preferences", h.UpdatePreferences)
	})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, users)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetProfile(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, profile)
}

func (h *Handler) SuggestCareerPaths(w http.ResponseWriter, r *http.Request) {
	standing, err := standingFromQuery(r)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	caller, _ := FromContext(r.Context())
	paths, err := h.service.SuggestCareerPaths(r.Context(), caller, standing)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, paths)
}

func (h *Handler) GetEligiblePrograms(w http.ResponseWriter, r *http.Request) {
	standing, err := standingFromQuery(r)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	caller, _ := FromContext(r.Context())
	programs, err := h.service.GetEligiblePrograms(r.Context(), caller, standing)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, programs)
}

func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	caller, ok := FromContext(r.Context())
	if !ok {
		httputil.RespondWithServiceError(w, r, h.logger, apperr.Auth("Could not validate credentials"))
		return
	}

	var req PreferencesRequest
	if err := httputil.DecodeAndValidate(r, h.validate, &req); err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	profile, err := h.service.UpdatePreferences(r.Context(), caller, req)
	if err != nil {
		httputil.RespondWithServiceError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "preferences updated", "username", caller.Username, "career_path_id", req.CareerPathID)
	httputil.RespondWithJSON(w, http.StatusOK, profile)
}

func standingFromQuery(r *http.Request) (Standing, error) {
	var standing Standing
	q := r.URL.Query()
	if section := q.Get("baccalaureate_section"); section != "" {
		standing.Section = &section
	}
	if raw := q.Get("baccalaureate_score"); raw != "" {
		score, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return standing, apperr.Validation("Invalid query parameter baccalaureate_score")
		}
		standing.Score = &score
	}
	return standing, nil
}
