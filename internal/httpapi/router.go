// Package httpapi exposes the candidate workflows over HTTP.
//
// Routes:
//
//	GET  /health            → liveness + version
//	GET  /candidates        → paginated candidates with their job offers
//	POST /candidates        → create a candidate
//	GET  /candidates/stats  → live per-status counts
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"jobmate/recruitment-service/internal/logger"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "recruitment-service"

// NewRouter builds the chi router with middleware and all API routes.
func NewRouter(svc CandidateService, version string, log *zap.Logger) *chi.Mux {
	log = logger.Component(log, "http")
	h := NewHandler(svc, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		jsonOK(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"service": ServiceName,
			"version": version,
		})
	})

	r.Route("/candidates", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/stats", h.Stats)
	})

	return r
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Debug("request",
				zap.String(logger.FieldMethod, r.Method),
				zap.String(logger.FieldPath, r.URL.Path),
				zap.Int(logger.FieldStatus, ww.Status()),
				zap.String(logger.FieldRequestID, middleware.GetReqID(r.Context())),
				zap.Duration("elapsed", time.Since(start)),
			)
		})
	}
}
