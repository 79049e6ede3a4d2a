package whentext

import (
	"fmt"
	"strings"
	"time"

	"zombiezen.com/go/gregorian"
)

// Value is a concrete result produced by the renderer: a DateTime, Date,
// Time, Duration, Range, or List.
type Value interface {
	fmt.Stringer
	isValue()
}

// DateTime is a fully resolved calendar instant.
type DateTime struct {
	Value time.Time
}

func (DateTime) isValue() {}

func (d DateTime) String() string {
	return d.Value.Format("2006-01-02 15:04")
}

// Date is a calendar date with no time of day attached. It is returned for
// date-only expressions when Config.InferDatetimes is false.
type Date struct {
	Value gregorian.Date
}

func (Date) isValue() {}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Value.Year(), int(d.Value.Month()), d.Value.Day())
}

// Time is a resolved 24-hour time of day with no date attached. It is
// returned for time-only expressions when Config.InferDatetimes is false.
type Time struct {
	Hour        int
	Minute      int
	Second      int
	Millisecond int
	Location    *time.Location
}

func (Time) isValue() {}

func (t Time) String() string {
	s := fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
	if t.Second != 0 || t.Millisecond != 0 {
		s += fmt.Sprintf(":%02d", t.Second)
	}
	if t.Location != nil && t.Location != time.Local {
		s += " " + t.Location.String()
	}
	return s
}

// Duration is an elapsed amount of time. Unit preserves the unit the text
// was written in ("min", "h").
type Duration struct {
	Value time.Duration
	Unit  string
}

func (Duration) isValue() {}

func (d Duration) String() string {
	return d.Value.String()
}

// Range is an ordered start/end pair ("3-4 pm", "June 3rd to 5th").
type Range struct {
	Start, End Value
}

func (Range) isValue() {}

func (r Range) String() string {
	return r.Start.String() + " - " + r.End.String()
}

// List is an ordered set of alternatives ("7/17 or 7/18"). Nested lists
// appear when an expression offers choices of ranges.
type List []Value

func (List) isValue() {}

func (l List) String() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Match pairs a rendered value with the exact input substring it was parsed
// from, reported as byte offsets into the original text.
type Match struct {
	Text  string
	Start int
	End   int
	Value Value
}
