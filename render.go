package whentext

import (
	"time"

	"zombiezen.com/go/gregorian"
)

// render resolves a semantic node into a concrete Value. Rendering is pure:
// every "now"-relative decision takes the instant passed in, so the same
// node renders identically for the same configuration.
func render(n node, cfg Config, now time.Time) (Value, error) {
	switch v := n.(type) {
	case *datetimeNode:
		return renderDatetime(v, cfg, now)
	case *dateNode:
		return renderDatetime(&datetimeNode{d: v, at: v.at}, cfg, now)
	case *timeNode:
		return renderDatetime(&datetimeNode{t: v, at: v.at}, cfg, now)
	case *deltaNode:
		return renderDelta(v, now), nil
	case *rangeNode:
		return renderRange(v, cfg, now)
	case *listNode:
		out := make(List, 0, len(v.elems))
		for _, el := range v.elems {
			val, err := render(el, cfg, now)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil
	case *ambiguousNode:
		return nil, &AmbiguityError{Text: v.text}
	case *unknownNode:
		return nil, &ParseError{Rule: "render", Text: v.text}
	}
	return nil, &ParseError{Rule: "render", Text: ""}
}

// renderDelta keeps forward durations symbolic and anchors "ago" phrases at
// now.
func renderDelta(d *deltaNode, now time.Time) Value {
	if d.ago {
		return DateTime{Value: now.Add(-d.duration())}
	}
	return Duration{Value: d.duration(), Unit: d.unit}
}

func renderRange(r *rangeNode, cfg Config, now time.Time) (Value, error) {
	sd, startIsDelta := r.start.(*deltaNode)
	ed, endIsDelta := r.end.(*deltaNode)
	if startIsDelta && endIsDelta && !sd.ago && !ed.ago && cfg.InferDatetimes {
		// "30-40 mins" means an appointment window measured from now.
		return Range{
			Start: DateTime{Value: now.Add(sd.duration())},
			End:   DateTime{Value: now.Add(ed.duration())},
		}, nil
	}
	start, err := render(r.start, cfg, now)
	if err != nil {
		return nil, err
	}
	end, err := render(r.end, cfg, now)
	if err != nil {
		return nil, err
	}
	// "11 PM to 1 AM" crosses midnight: when the end got its date only by
	// borrowing, push it to the next day instead of ending before it
	// starts.
	if sdt, ok := start.(DateTime); ok {
		if edt, ok := end.(DateTime); ok && edt.Value.Before(sdt.Value) {
			if endNode, ok := r.end.(*datetimeNode); !ok || endNode.d == nil || endNode.dateInferred {
				end = DateTime{Value: edt.Value.AddDate(0, 0, 1)}
			}
		}
	}
	return Range{Start: start, End: end}, nil
}

func renderDatetime(dt *datetimeNode, cfg Config, now time.Time) (Value, error) {
	d, t := dt.d, dt.t
	hasDate := d != nil && (d.year != nil || d.month != nil || d.day != nil || d.nth != nil)
	hasTime := t != nil && t.hour != nil

	loc := now.Location()
	if t != nil && t.loc != nil {
		loc = t.loc
	}

	var hour, minute, second, millis int
	if hasTime {
		hour = clockHour(*t.hour, t.mer)
		if hour > 23 {
			return nil, &RenderError{Field: "hour", Value: *t.hour}
		}
		minute = intOrZero(t.minute)
		if minute > 59 {
			return nil, &RenderError{Field: "minute", Value: minute}
		}
		second = intOrZero(t.second)
		if second > 59 {
			return nil, &RenderError{Field: "second", Value: second}
		}
		millis = intOrZero(t.millis)
	}

	var year, month, day int
	if hasDate {
		year = now.Year()
		if d.year != nil {
			year = *d.year
		}
		month = int(now.Month())
		if d.month != nil {
			month = *d.month
		}
		if month < 1 || month > 12 {
			return nil, &RenderError{Field: "month", Value: month}
		}
		day = 1
		switch {
		case d.nth != nil:
			var err error
			day, err = nthWeekdayDay(year, time.Month(month), *d.nth)
			if err != nil {
				return nil, err
			}
		case d.day != nil:
			day = *d.day
		}
		// Reject impossible dates instead of letting time.Date normalize
		// them into the next month.
		check := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if check.Year() != year || check.Month() != time.Month(month) || check.Day() != day {
			return nil, &RenderError{Field: "day", Value: day}
		}
	}

	switch {
	case hasDate && hasTime:
		return DateTime{Value: time.Date(year, time.Month(month), day, hour, minute, second, millis*1e6, loc)}, nil
	case hasDate:
		if cfg.InferDatetimes {
			return DateTime{Value: time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)}, nil
		}
		return Date{Value: gregorian.NewDate(year, time.Month(month), day)}, nil
	case hasTime:
		if cfg.InferDatetimes {
			cand := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, second, millis*1e6, loc)
			switch cfg.Direction {
			case DirectionNext:
				if cand.Before(now) {
					cand = cand.AddDate(0, 0, 1)
				}
			case DirectionPrevious:
				if cand.After(now) {
					cand = cand.AddDate(0, 0, -1)
				}
			}
			return DateTime{Value: cand}, nil
		}
		var tloc *time.Location
		if t != nil {
			tloc = t.loc
		}
		return Time{Hour: hour, Minute: minute, Second: second, Millisecond: millis, Location: tloc}, nil
	}
	return nil, &ParseError{Rule: "render", Text: ""}
}

// clockHour converts a written hour to the 24-hour clock. Hours of 0 or
// above 12 are 24-hour literals; a bare 12 is noon.
func clockHour(h int, mer *meridiem) int {
	if h == 0 || h > 12 {
		return h
	}
	if mer != nil {
		switch *mer {
		case meridiemPM:
			if h < 12 {
				return h + 12
			}
			return 12
		case meridiemAM:
			if h == 12 {
				return 0
			}
			return h
		}
	}
	return h
}

// nthWeekdayDay resolves "the n-th <weekday> of the month"; negative n
// counts back from the month's end.
func nthWeekdayDay(year int, month time.Month, nth nthWeekday) (int, error) {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	if nth.n > 0 {
		first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		day := 1 + (int(nth.weekday)-int(first.Weekday())+7)%7 + (nth.n-1)*7
		if day > last.Day() {
			return 0, &RenderError{Field: "day", Value: day}
		}
		return day, nil
	}
	day := last.Day() - (int(last.Weekday())-int(nth.weekday)+7)%7 + (nth.n+1)*7
	if day < 1 {
		return 0, &RenderError{Field: "day", Value: day}
	}
	return day, nil
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
