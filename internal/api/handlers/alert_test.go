package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/aashig53/InsiderThreatDetector/internal/aggregate"
	"github.com/aashig53/InsiderThreatDetector/internal/classify"
	"github.com/aashig53/InsiderThreatDetector/internal/metrics"
	"github.com/aashig53/InsiderThreatDetector/internal/models"
	"github.com/aashig53/InsiderThreatDetector/internal/store"
)

// ingestedAt is 15:30 IST, inside business hours.
var ingestedAt = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func newTestService(st store.AlertStore) *AlertService {
	svc := NewAlertService(
		st,
		classify.New(classify.DefaultZone()),
		classify.DefaultZone(),
		metrics.New(prometheus.NewRegistry()),
		zap.NewNop(),
	)
	svc.now = func() time.Time { return ingestedAt }
	return svc
}

func postLog(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/log", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestIngestRecomputesSuspicionLevel(t *testing.T) {
	st := store.NewMemoryStore()
	handler := IngestHandler(newTestService(st))

	// A client-sent level must be ignored, the keyword rule decides.
	rec := postLog(t, handler, `{
		"action": "created",
		"file_path": "/watched/Q3_salary_report.xlsx",
		"file_name": "Q3_salary_report.xlsx",
		"user": "alice",
		"suspicion_level": 0
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	alerts, _ := st.All()
	if len(alerts) != 1 {
		t.Fatalf("expected 1 persisted alert, got %d", len(alerts))
	}
	alert := alerts[0]
	if alert.SuspicionLevel != int(classify.Suspicious) {
		t.Errorf("expected recomputed level %d, got %d", classify.Suspicious, alert.SuspicionLevel)
	}
	if !alert.Timestamp.Equal(ingestedAt) {
		t.Errorf("timestamp must be the collector's capture instant, got %v", alert.Timestamp)
	}
	if alert.ID == 0 {
		t.Error("store must assign an id")
	}
}

func TestIngestDecoyTouchIsCritical(t *testing.T) {
	st := store.NewMemoryStore()
	handler := IngestHandler(newTestService(st))

	rec := postLog(t, handler, `{
		"action": "modified",
		"file_path": "/watched/legacy_credentials_alice.bak",
		"file_name": "legacy_credentials_alice.bak",
		"user": "mallory"
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	alerts, _ := st.All()
	if alerts[0].SuspicionLevel != int(classify.Critical) {
		t.Errorf("decoy touch must persist as Critical, got %d", alerts[0].SuspicionLevel)
	}
}

func TestIngestValidation(t *testing.T) {
	st := store.NewMemoryStore()
	handler := IngestHandler(newTestService(st))

	cases := map[string]string{
		"bad json":       `{not json`,
		"missing user":   `{"action":"created","file_path":"/a/b.txt","file_name":"b.txt"}`,
		"missing name":   `{"action":"created","file_path":"/a/b.txt","user":"alice"}`,
		"missing path":   `{"action":"created","file_name":"b.txt","user":"alice"}`,
		"unknown action": `{"action":"renamed","file_path":"/a/b.txt","file_name":"b.txt","user":"alice"}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := postLog(t, handler, body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}

	alerts, _ := st.All()
	if len(alerts) != 0 {
		t.Errorf("invalid events must not be persisted, found %d", len(alerts))
	}
}

func TestListAlertsNewestFirst(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newTestService(st)

	st.Create(&models.Alert{Timestamp: ingestedAt.Add(-time.Hour), FileName: "old.txt", Action: "created"})
	st.Create(&models.Alert{Timestamp: ingestedAt, FileName: "new.txt", Action: "deleted"})

	req := httptest.NewRequest(http.MethodGet, "/api/alerts", nil)
	rec := httptest.NewRecorder()
	ListAlertsHandler(svc)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var alerts []models.Alert
	if err := json.Unmarshal(rec.Body.Bytes(), &alerts); err != nil {
		t.Fatal(err)
	}
	if len(alerts) != 2 || alerts[0].FileName != "new.txt" {
		t.Errorf("expected newest-first ordering, got %+v", alerts)
	}
}

func TestDashboardStats(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newTestService(st)
	handler := IngestHandler(svc)

	for _, body := range []string{
		`{"action":"created","file_path":"/w/a.DOCX","file_name":"a.DOCX","user":"alice"}`,
		`{"action":"created","file_path":"/w/b.doc","file_name":"b.doc","user":"alice"}`,
		`{"action":"deleted","file_path":"/w/salary.xlsx","file_name":"salary.xlsx","user":"alice"}`,
	} {
		if rec := postLog(t, handler, body); rec.Code != http.StatusOK {
			t.Fatalf("setup ingest failed: %d", rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
	rec := httptest.NewRecorder()
	DashboardStatsHandler(svc)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var report aggregate.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatal(err)
	}

	if report.TotalAlerts != 3 {
		t.Errorf("total = %d, want 3", report.TotalAlerts)
	}
	if report.SuspiciousAlerts != 1 {
		t.Errorf("suspicious = %d, want 1 (salary keyword)", report.SuspiciousAlerts)
	}
	if report.ActionCounts["created"] != 2 || report.ActionCounts["deleted"] != 1 {
		t.Errorf("unexpected action counts %v", report.ActionCounts)
	}
	if report.FileTypeCounts["doc"] != 2 {
		t.Errorf(`FileTypeCounts["doc"] = %d, want 2`, report.FileTypeCounts["doc"])
	}
	if len(report.HourlySeries) != aggregate.SeriesHours {
		t.Errorf("series length = %d, want %d", len(report.HourlySeries), aggregate.SeriesHours)
	}
}
