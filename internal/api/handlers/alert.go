package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/aashig53/InsiderThreatDetector/internal/classify"
	"github.com/aashig53/InsiderThreatDetector/internal/metrics"
	"github.com/aashig53/InsiderThreatDetector/internal/models"
	"github.com/aashig53/InsiderThreatDetector/internal/store"
)

// AlertService handles ingestion and retrieval of alert records.
type AlertService struct {
	Store      store.AlertStore
	Classifier *classify.Classifier
	Metrics    *metrics.Metrics
	Logger     *zap.Logger
	// Zone is the business timezone used by the aggregation report.
	Zone *time.Location
	// now is swappable in tests.
	now func() time.Time
}

// NewAlertService creates an alert service.
func NewAlertService(st store.AlertStore, cl *classify.Classifier, zone *time.Location, m *metrics.Metrics, logger *zap.Logger) *AlertService {
	return &AlertService{
		Store:      st,
		Classifier: cl,
		Metrics:    m,
		Logger:     logger,
		Zone:       zone,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// IngestHandler receives one forwarded event per request. The suspicion
// level is always recomputed here with the collector's own capture instant;
// nothing client-sent reaches the persisted record's level or timestamp.
func IngestHandler(svc *AlertService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var event models.Event
		if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
			svc.Metrics.InvalidEvents.Inc()
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := event.Validate(); err != nil {
			svc.Metrics.InvalidEvents.Inc()
			svc.Logger.Warn("rejected malformed event", zap.Error(err))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		now := svc.now()
		level := svc.Classifier.Classify(event.FileName, now)

		alert := models.Alert{
			Timestamp:      now,
			Action:         string(event.Action),
			FilePath:       event.FilePath,
			FileName:       event.FileName,
			User:           event.User,
			SuspicionLevel: int(level),
		}

		if err := svc.Store.Create(&alert); err != nil {
			svc.Logger.Error("failed to persist alert", zap.Error(err))
			http.Error(w, "Failed to persist alert", http.StatusInternalServerError)
			return
		}

		svc.Metrics.AlertsIngested.WithLabelValues(level.String()).Inc()
		svc.Logger.Info("alert logged",
			zap.Uint("id", alert.ID),
			zap.String("user", alert.User),
			zap.String("action", alert.Action),
			zap.String("file", alert.FileName),
			zap.String("level", level.String()),
		)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "success",
			"message": "Log received",
		})
	}
}

// ListAlertsHandler returns the full alert list, newest first.
func ListAlertsHandler(svc *AlertService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		alerts, err := svc.Store.ListDesc()
		if err != nil {
			svc.Logger.Error("failed to list alerts", zap.Error(err))
			http.Error(w, "Failed to retrieve alerts", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(alerts)
	}
}
