package api

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/aashig53/InsiderThreatDetector/internal/api/handlers"
	"github.com/aashig53/InsiderThreatDetector/internal/auth"
)

// Router wires the collector's HTTP surface. The ingest route stays public
// (the alerting channel is unauthenticated by design); the query surface
// sits behind JWT auth.
func Router(alertSvc *handlers.AlertService, authSvc *auth.Service, gatherer prometheus.Gatherer, logger *zap.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(SecurityHeadersMiddleware)
	router.Use(RequestIDMiddleware)

	public := router.PathPrefix("/api").Subrouter()
	public.HandleFunc("/health", handlers.HealthHandler).Methods("GET")
	public.HandleFunc("/log", handlers.IngestHandler(alertSvc)).Methods("POST")

	login := router.PathPrefix("/api").Subrouter()
	login.Use(RateLimitMiddleware(rate.Limit(1), 5))
	login.HandleFunc("/login", handlers.LoginHandler(authSvc, logger)).Methods("POST")

	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(authSvc.AuthMiddleware)
	protected.HandleFunc("/alerts", handlers.ListAlertsHandler(alertSvc)).Methods("GET")
	protected.HandleFunc("/dashboard/stats", handlers.DashboardStatsHandler(alertSvc)).Methods("GET")

	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods("GET")

	return router
}
