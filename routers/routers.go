package routers

import (
	"net/http"
	"strconv"
	"time"

	"depin-monitor/handlers"
	"depin-monitor/logger"
	"depin-monitor/metrics"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// RegisterRoutes sets up all the HTTP routes for the dashboard API
func RegisterRoutes(r *mux.Router, h *handlers.Handler, m *metrics.Registry) {
	r.Use(requestID, instrument(m))

	// Nodes ranked by distance from ?lat=&lon=, store order without them
	r.HandleFunc("/nodes", h.GetNearbyNodes).Methods("GET")

	// Single node with health tier and optional distance
	r.HandleFunc("/nodes/{id}", h.GetNode).Methods("GET")

	// Reward windows active right now
	r.HandleFunc("/opportunities/active", h.GetActiveOpportunities).Methods("GET")

	r.HandleFunc("/earnings", h.GetEarnings).Methods("GET")
	r.HandleFunc("/protocols", h.GetProtocols).Methods("GET")

	// Headline dashboard metrics
	r.HandleFunc("/overview", h.GetOverview).Methods("GET")

	// Opportunity, health and maintenance notifications
	r.HandleFunc("/alerts", h.GetAlerts).Methods("GET")

	r.HandleFunc("/health/classify", h.ClassifyHealth).Methods("GET")
	r.HandleFunc("/distance", h.GetDistance).Methods("GET")

	r.HandleFunc("/healthz", h.Healthz).Methods("GET")
	r.Handle("/metrics", m.Handler()).Methods("GET")
}

const requestIDHeader = "X-Request-ID"

// requestID keeps a caller supplied X-Request-ID or generates one
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// instrument logs every request and records it in m, labelled by route template
func instrument(m *metrics.Registry) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			elapsed := time.Since(start)

			path := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tmpl, err := route.GetPathTemplate(); err == nil {
					path = tmpl
				}
			}
			m.RecordHTTPRequest(r.Method, path, strconv.Itoa(rec.status), elapsed)

			logger.Logger.Info("Handled request",
				zap.String("request_id", r.Header.Get(requestIDHeader)),
				zap.String("method", r.Method),
				zap.String("path", path),
				zap.Int("status", rec.status),
				zap.Duration("duration", elapsed))
		})
	}
}
