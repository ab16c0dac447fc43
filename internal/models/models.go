package models

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Action is the kind of filesystem activity an event describes.
type Action string

const (
	ActionCreated  Action = "created"
	ActionModified Action = "modified"
	ActionDeleted  Action = "deleted"
)

// Valid reports whether the action is one of the known kinds.
func (a Action) Valid() bool {
	switch a {
	case ActionCreated, ActionModified, ActionDeleted:
		return true
	}
	return false
}

// Event is one observed filesystem action, built by the agent at the moment
// the notification fires and immutable afterward. This is also the wire
// shape sent to the collector: classification and timestamp are deliberately
// absent, both are collector-authoritative.
type Event struct {
	Action     Action    `json:"action"`
	FilePath   string    `json:"file_path"`
	FileName   string    `json:"file_name"`
	User       string    `json:"user"`
	CapturedAt time.Time `json:"-"`
}

// NewEvent builds an Event for a path, deriving the base file name and
// stamping the canonical UTC capture instant.
func NewEvent(action Action, path, user string, capturedAt time.Time) Event {
	return Event{
		Action:     action,
		FilePath:   path,
		FileName:   filepath.Base(path),
		User:       user,
		CapturedAt: capturedAt.UTC(),
	}
}

// Validate checks the structural invariants of an ingested event.
func (e Event) Validate() error {
	if !e.Action.Valid() {
		return fmt.Errorf("action must be one of: created, modified, deleted")
	}
	if strings.TrimSpace(e.FilePath) == "" {
		return fmt.Errorf("file_path is required")
	}
	if strings.TrimSpace(e.FileName) == "" {
		return fmt.Errorf("file_name is required")
	}
	if strings.TrimSpace(e.User) == "" {
		return fmt.Errorf("user is required")
	}
	return nil
}

// Alert is the persisted record for an ingested event. Timestamp is the
// collector's capture instant and SuspicionLevel is recomputed server-side;
// nothing client-supplied reaches either column. Records are insert-only.
type Alert struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Timestamp      time.Time `json:"timestamp" gorm:"index"`
	Action         string    `json:"action" gorm:"size:50"`
	FilePath       string    `json:"file_path" gorm:"size:500"`
	FileName       string    `json:"file_name" gorm:"size:255"`
	User           string    `json:"user" gorm:"size:100"`
	SuspicionLevel int       `json:"suspicion_level"` // 0=Normal, 1=Suspicious, 2=Critical
}

// User is a dashboard account. The alerting channel itself is
// unauthenticated; users only guard the query surface.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"` // bcrypt hash
	Role      string    `json:"role" gorm:"default:'admin'"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
}
