package classify

import "time"

// Business timezone of the monitored deployment (IST, UTC+05:30).
const (
	DefaultZoneName   = "IST"
	DefaultZoneOffset = 5*60*60 + 30*60
)

// FixedOffsetZone builds a named fixed-offset location from hours and
// minutes east of UTC. Negative offsets pass negative hours and minutes.
func FixedOffsetZone(name string, hours, minutes int) *time.Location {
	return time.FixedZone(name, hours*3600+minutes*60)
}

// DefaultZone returns the default business timezone.
func DefaultZone() *time.Location {
	return time.FixedZone(DefaultZoneName, DefaultZoneOffset)
}
