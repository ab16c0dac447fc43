package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aashig53/InsiderThreatDetector/internal/models"
)

// Forwarder ships one event to the collector. Delivery is fire-and-forget:
// an error means the event was dropped.
type Forwarder interface {
	Forward(ctx context.Context, event models.Event) error
}

// HTTPForwarder posts events to the collector's ingest endpoint.
type HTTPForwarder struct {
	url    string
	client *http.Client
}

// NewHTTPForwarder creates a forwarder for serverURL (base URL without the
// ingest path) with the given per-request timeout.
func NewHTTPForwarder(serverURL string, timeout time.Duration) *HTTPForwarder {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &HTTPForwarder{
		url:    serverURL + "/api/log",
		client: &http.Client{Timeout: timeout},
	}
}

// Forward sends the event. Only the wire fields are serialized; the local
// classification and capture instant never leave the host.
func (f *HTTPForwarder) Forward(ctx context.Context, event models.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("could not reach collector: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("collector rejected event: status %d", resp.StatusCode)
	}
	return nil
}
