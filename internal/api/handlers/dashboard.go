package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/aashig53/InsiderThreatDetector/internal/aggregate"
)

// DashboardStatsHandler serves the aggregation report.
func DashboardStatsHandler(svc *AlertService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		alerts, err := svc.Store.All()
		if err != nil {
			svc.Logger.Error("failed to load alerts for aggregation", zap.Error(err))
			http.Error(w, "Failed to build report", http.StatusInternalServerError)
			return
		}

		report := aggregate.BuildReport(alerts, svc.now(), svc.Zone)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(report)
	}
}

// HealthHandler is a simple liveness endpoint.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"service": "insider-sentry-collector",
	})
}
