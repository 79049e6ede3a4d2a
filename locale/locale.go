// Package locale holds the lookup tables the parser consumes by string key:
// the month-name table and the timezone abbreviation table.
//
// The timezone table in tzdata.go is generated once from the system timezone
// database by internal/cmd/tzgen; it is data, not logic, and the parser only
// ever queries it through Zone and ZoneNames.
package locale

import (
	"sort"
	"strings"
	"time"
)

var months = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
	"jan":       time.January,
	"feb":       time.February,
	"mar":       time.March,
	"apr":       time.April,
	"jun":       time.June,
	"jul":       time.July,
	"aug":       time.August,
	"sep":       time.September,
	"sept":      time.September,
	"oct":       time.October,
	"nov":       time.November,
	"dec":       time.December,
}

// Month maps a month name or 3-letter abbreviation (case-insensitive,
// tolerant of a trailing period as in "Jan.") to its month number.
func Month(name string) (time.Month, bool) {
	m, ok := months[strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), ".")]
	return m, ok
}

var locations map[string]*time.Location

func init() {
	locations = make(map[string]*time.Location, len(zones))
	for abbr, z := range zones {
		if z.offset == 0 {
			locations[abbr] = time.UTC
		} else {
			locations[abbr] = time.FixedZone(z.name, z.offset)
		}
	}
}

// Zone resolves a timezone abbreviation to a fixed-offset location.
// The abbreviation is matched case-insensitively.
func Zone(name string) (*time.Location, bool) {
	loc, ok := locations[strings.ToUpper(strings.TrimSpace(name))]
	return loc, ok
}

// ZoneNames returns every known abbreviation, longest first so that a
// regular expression alternation built from the list prefers the longest
// match ("CEST" before "CET").
func ZoneNames() []string {
	names := make([]string, 0, len(zones))
	for abbr := range zones {
		names = append(names, abbr)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}
