// Package classify contains the rule-based risk classifier shared by the
// agent and the collector. Both sides run the exact same rules: the agent's
// verdict only drives local decoy deployment, while the collector's verdict
// is the one that gets persisted.
package classify

import (
	"strings"
	"time"
)

// Level is the ordinal suspicion level assigned to an event.
type Level int

const (
	Normal     Level = 0
	Suspicious Level = 1
	Critical   Level = 2
)

// String returns a human-readable name for the level.
func (l Level) String() string {
	switch l {
	case Critical:
		return "critical"
	case Suspicious:
		return "suspicious"
	default:
		return "normal"
	}
}

// DecoyMarker is the canonical substring identifying a planted honeyfile.
// Any file name containing it classifies as Critical, and the decoy
// controller refuses to plant next to one.
const DecoyMarker = "legacy_credentials_"

// sensitiveKeywords are matched as substrings against the lower-cased file
// name. Substring matching is intentional: it catches variants like
// "confidential_report_final.xlsx".
var sensitiveKeywords = []string{"confidential", "salary", "private", "password"}

// Classifier evaluates events against the detection rules. The business
// timezone is injected at construction so time-of-day rules are testable
// independent of the host clock.
type Classifier struct {
	loc *time.Location
}

// New returns a Classifier evaluating off-hours rules in loc.
func New(loc *time.Location) *Classifier {
	return &Classifier{loc: loc}
}

// Classify returns the suspicion level for a file name observed at
// capturedAt. capturedAt must be the canonical UTC capture instant; the
// conversion to business local time happens here and nowhere else.
//
// Rule order is a contract: a decoy name also contains the "credentials"
// keyword, so the marker rule must win.
func (c *Classifier) Classify(fileName string, capturedAt time.Time) Level {
	lower := strings.ToLower(fileName)

	if strings.Contains(lower, DecoyMarker) {
		return Critical
	}

	hour := capturedAt.In(c.loc).Hour()
	if hour < 7 || hour >= 22 {
		return Suspicious
	}

	for _, keyword := range sensitiveKeywords {
		if strings.Contains(lower, keyword) {
			return Suspicious
		}
	}

	return Normal
}

// IsDecoyName reports whether a file name matches the decoy marker. Used by
// the agent pipeline for loop prevention.
func IsDecoyName(fileName string) bool {
	return strings.Contains(strings.ToLower(fileName), DecoyMarker)
}
