package locale

import (
	"testing"
	"time"
)

func TestMonth(t *testing.T) {
	tests := []struct {
		in   string
		want time.Month
		ok   bool
	}{
		{"january", time.January, true},
		{"January", time.January, true},
		{"JAN", time.January, true},
		{"jan.", time.January, true},
		{"sept", time.September, true},
		{"may", time.May, true},
		{"janu", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := Month(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Month(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestZone(t *testing.T) {
	tests := []struct {
		in     string
		offset int
	}{
		{"PST", -8 * 3600},
		{"pst", -8 * 3600},
		{"PDT", -7 * 3600},
		{"EST", -5 * 3600},
		{"IST", 5*3600 + 1800},
		{"JST", 9 * 3600},
		{"UTC", 0},
		{"Z", 0},
	}
	for _, tt := range tests {
		loc, ok := Zone(tt.in)
		if !ok {
			t.Errorf("Zone(%q) not found", tt.in)
			continue
		}
		_, offset := time.Date(2024, time.January, 15, 12, 0, 0, 0, loc).Zone()
		if offset != tt.offset {
			t.Errorf("Zone(%q) offset = %d, want %d", tt.in, offset, tt.offset)
		}
	}
	if _, ok := Zone("XXX"); ok {
		t.Error("Zone(XXX) found, want miss")
	}
}

func TestZoneNamesLongestFirst(t *testing.T) {
	names := ZoneNames()
	if len(names) == 0 {
		t.Fatal("no zone names")
	}
	for i := 1; i < len(names); i++ {
		if len(names[i]) > len(names[i-1]) {
			t.Fatalf("names not sorted longest first: %q after %q", names[i], names[i-1])
		}
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			t.Errorf("duplicate name %q", n)
		}
		seen[n] = true
	}
}
