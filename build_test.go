package whentext

import (
	"testing"
	"time"
)

func TestCompileGrammar(t *testing.T) {
	if _, err := compileGrammar(); err != nil {
		t.Fatalf("compileGrammar: %v", err)
	}
}

func TestExpandYear(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{18, 2018},
		{0, 2000},
		{49, 2049},
		{50, 1950},
		{99, 1999},
		{100, 100},
		{2024, 2024},
	}
	for _, tt := range tests {
		if got := expandYear(tt.in); got != tt.want {
			t.Errorf("expandYear(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestWordNumber(t *testing.T) {
	tests := []struct {
		in   []string
		want int
	}{
		{[]string{"five"}, 5},
		{[]string{"thirty", "two"}, 32},
		{[]string{"hundred"}, 100},
		{[]string{"one", "hundred", "twenty"}, 120},
		{[]string{"nineteen"}, 19},
		{[]string{"an"}, 1},
	}
	for _, tt := range tests {
		if got := wordNumber(tt.in); got != tt.want {
			t.Errorf("wordNumber(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSplitSeconds(t *testing.T) {
	tests := []struct {
		in      string
		sec, ms int
	}{
		{"45", 45, 0},
		{"45.5", 45, 500},
		{"45.25", 45, 250},
		{"45.125", 45, 125},
		{"0.5", 0, 500},
	}
	for _, tt := range tests {
		sec, ms := splitSeconds(tt.in)
		if sec != tt.sec || ms != tt.ms {
			t.Errorf("splitSeconds(%q) = (%d, %d), want (%d, %d)", tt.in, sec, ms, tt.sec, tt.ms)
		}
	}
}

func TestQuantityMillis(t *testing.T) {
	tests := []struct {
		qty    string
		unitMs int64
		want   int64
	}{
		{"30", 60000, 1800000},
		{"1.5", 3600000, 5400000},
		{"0.5", 1000, 500},
		{"2", 86400000, 172800000},
	}
	for _, tt := range tests {
		got, err := quantityMillis(tt.qty, tt.unitMs)
		if err != nil {
			t.Fatalf("quantityMillis(%q, %d): %v", tt.qty, tt.unitMs, err)
		}
		if got != tt.want {
			t.Errorf("quantityMillis(%q, %d) = %d, want %d", tt.qty, tt.unitMs, got, tt.want)
		}
	}
}

func TestWeekdayDate(t *testing.T) {
	// Saturday.
	now := time.Date(2018, time.August, 4, 14, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		wd   time.Weekday
		mods []string
		dir  Direction
		want string
	}{
		{"bare next", time.Monday, nil, DirectionNext, "2018-08-06"},
		{"bare previous", time.Monday, nil, DirectionPrevious, "2018-07-30"},
		{"same day next", time.Saturday, nil, DirectionNext, "2018-08-11"},
		{"same day this", time.Saturday, nil, DirectionThis, "2018-08-04"},
		{"modifier next", time.Monday, []string{"next"}, DirectionPrevious, "2018-08-06"},
		{"modifier last", time.Monday, []string{"last"}, DirectionNext, "2018-07-30"},
		{"stacked next", time.Monday, []string{"next", "next"}, DirectionNext, "2018-08-13"},
		{"stacked last", time.Monday, []string{"last", "last"}, DirectionNext, "2018-07-23"},
		{"this weekday", time.Saturday, []string{"this"}, DirectionNext, "2018-08-04"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &builder{cfg: Config{Direction: tt.dir}, now: now}
			y, m, d := b.weekdayDate(tt.wd, tt.mods)
			got := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
			if got != tt.want {
				t.Errorf("weekdayDate(%v, %v) = %s, want %s", tt.wd, tt.mods, got, tt.want)
			}
		})
	}
}

func TestClockHour(t *testing.T) {
	pm := meridiemPM
	am := meridiemAM
	tests := []struct {
		h    int
		mer  *meridiem
		want int
	}{
		{3, &pm, 15},
		{12, &pm, 12},
		{3, &am, 3},
		{12, &am, 0},
		{3, nil, 3},
		{12, nil, 12},
		{17, nil, 17},
		{17, &pm, 17}, // 24-hour literal wins over a stray meridiem
		{0, nil, 0},
	}
	for _, tt := range tests {
		if got := clockHour(tt.h, tt.mer); got != tt.want {
			t.Errorf("clockHour(%d, %v) = %d, want %d", tt.h, tt.mer, got, tt.want)
		}
	}
}

func TestNthWeekdayDay(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		nth   nthWeekday
		want  int
	}{
		{2018, time.December, nthWeekday{time.Wednesday, -1}, 26},
		{2018, time.December, nthWeekday{time.Wednesday, 1}, 5},
		{2018, time.December, nthWeekday{time.Saturday, 1}, 1},
		{2018, time.December, nthWeekday{time.Monday, -1}, 31},
		{2018, time.February, nthWeekday{time.Wednesday, 4}, 28},
	}
	for _, tt := range tests {
		got, err := nthWeekdayDay(tt.year, tt.month, tt.nth)
		if err != nil {
			t.Fatalf("nthWeekdayDay(%d, %v, %+v): %v", tt.year, tt.month, tt.nth, err)
		}
		if got != tt.want {
			t.Errorf("nthWeekdayDay(%d, %v, %+v) = %d, want %d", tt.year, tt.month, tt.nth, got, tt.want)
		}
	}
	if _, err := nthWeekdayDay(2018, time.February, nthWeekday{time.Wednesday, 5}); err == nil {
		t.Error("fifth Wednesday of February 2018 resolved, want error")
	}
}
