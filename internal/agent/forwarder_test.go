package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aashig53/InsiderThreatDetector/internal/models"
)

func TestHTTPForwarderSendsWireFieldsOnly(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/log" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	fwd := NewHTTPForwarder(server.URL, 5*time.Second)
	event := models.NewEvent(models.ActionCreated, "/watched/salary.xlsx", "alice", time.Now())

	if err := fwd.Forward(context.Background(), event); err != nil {
		t.Fatalf("forward failed: %v", err)
	}

	if received["action"] != "created" || received["file_name"] != "salary.xlsx" || received["user"] != "alice" {
		t.Errorf("unexpected wire payload %v", received)
	}
	// Classification and timestamp are collector-authoritative and must not
	// appear on the wire.
	if _, ok := received["suspicion_level"]; ok {
		t.Error("suspicion level must not be sent")
	}
	if _, ok := received["captured_at"]; ok {
		t.Error("capture instant must not be sent")
	}
}

func TestHTTPForwarderNon2xxIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer server.Close()

	fwd := NewHTTPForwarder(server.URL, 5*time.Second)
	err := fwd.Forward(context.Background(), models.NewEvent(models.ActionDeleted, "/x/y.txt", "alice", time.Now()))
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

func TestHTTPForwarderUnreachableIsError(t *testing.T) {
	fwd := NewHTTPForwarder("http://127.0.0.1:1", time.Second)
	err := fwd.Forward(context.Background(), models.NewEvent(models.ActionCreated, "/x/y.txt", "alice", time.Now()))
	if err == nil {
		t.Fatal("expected error for unreachable collector")
	}
}
