package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"session-server/internal/platform/metrics"
	"session-server/internal/platform/middleware"
)

// NewRouter wires all public endpoints behind the shared middleware chain.
func NewRouter(auth *AuthHandler, appsHandler *AppsHandler, logger *slog.Logger, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.Latency(m))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Session Server is running!"))
	})
	r.Handle("/metrics", promhttp.Handler())

	auth.Register(r)
	appsHandler.Register(r)

	return r
}
