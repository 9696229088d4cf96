package prompts

import (
	"time"
	_ "time/tzdata"
)

const defaultTimezone = "America/Phoenix"

// loadLocation resolves an IANA timezone name, falling back to the default
// and finally UTC. tzdata is embedded so this works without a zoneinfo dir.
func loadLocation(name string) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation(defaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// localDate formats an instant as the calendar date in the given location.
func localDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
