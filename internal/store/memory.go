package store

import (
	"sort"
	"sync"

	"github.com/aashig53/InsiderThreatDetector/internal/models"
)

// MemoryStore is a thread-safe in-memory AlertStore used by handler and
// aggregation tests.
type MemoryStore struct {
	mu     sync.RWMutex
	alerts []models.Alert
	nextID uint
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) Create(alert *models.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	alert.ID = s.nextID
	s.nextID++
	s.alerts = append(s.alerts, *alert)
	return nil
}

func (s *MemoryStore) ListDesc() ([]models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Alert, len(s.alerts))
	copy(out, s.alerts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (s *MemoryStore) All() ([]models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Alert, len(s.alerts))
	copy(out, s.alerts)
	return out, nil
}
