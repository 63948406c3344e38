package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"orientation-service/internal/httputil"
	"orientation-service/internal/metrics"

	"github.com/go-chi/chi/v5"
)

// DatabaseDependency is the dependency name used in readiness metrics.
const DatabaseDependency = "postgres"

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	db      Pinger
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewHandler(db Pinger, m *metrics.Metrics, logger *slog.Logger) *Handler {
	return &Handler{db: db, metrics: m, logger: logger}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.Health)
	router.Get("/ready", h.Ready)
}

type Response struct {
	Status string `json:"status"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.RespondWithJSON(w, http.StatusOK, Response{Status: "ok"})
}

// Ready reports whether the database answers a ping within two seconds.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.PingContext(ctx)
	h.metrics.Health.RecordDependencyCheck(r.Context(), DatabaseDependency, time.Since(start), err)
	if err != nil {
		h.logger.WarnContext(r.Context(), "readiness check failed", "dependency", DatabaseDependency, "error", err)
		httputil.RespondWithJSON(w, http.StatusServiceUnavailable, Response{Status: "unavailable"})
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, Response{Status: "ready"})
}
