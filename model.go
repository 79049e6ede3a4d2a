package whentext

import (
	"time"
)

// meridiem is the AM/PM designator attached to a 12-hour clock reading.
type meridiem int

const (
	meridiemAM meridiem = iota + 1
	meridiemPM
)

// span is the byte extent of a parsed node in the input text.
type span struct {
	start, end int
}

var noSpan = span{-1, -1}

func (s span) valid() bool {
	return s.start >= 0 && s.end > s.start
}

func (s span) union(o span) span {
	if !s.valid() {
		return o
	}
	if !o.valid() {
		return s
	}
	if o.start < s.start {
		s.start = o.start
	}
	if o.end > s.end {
		s.end = o.end
	}
	return s
}

// node is any semantic value produced by the builder. Nodes live for a
// single Parse call; nothing is shared between calls.
type node interface {
	span() span
}

// datelike is the capability set shared by every node that can carry
// calendar fields. Getters return nil for absent fields; setters fill a
// field in. Range and list nodes implement reads as first-non-nil over
// their items and writes as a broadcast to all items.
type datelike interface {
	node
	DatePart() *dateNode
	SetDatePart(*dateNode, bool)
	TimePart() *timeNode
	SetTimePart(*timeNode)
	Year() *int
	SetYear(int)
	Month() *int
	SetMonth(int)
	Day() *int
	Meridiem() *meridiem
	SetMeridiem(meridiem)
	Zone() *time.Location
	SetZone(*time.Location)
}

// nthWeekday is a calendar delta selecting the n-th occurrence of a weekday
// within a month ("first Wednesday of December"). A negative n counts from
// the end of the month ("last Wednesday of December" is -1). The delta is
// applied at render time, once the year is known.
type nthWeekday struct {
	weekday time.Weekday
	n       int
}

// dateNode is a partial calendar date. Absent fields default against "now"
// at render time (day defaults to 1).
type dateNode struct {
	year, month, day *int
	nth              *nthWeekday
	at               span
}

func (d *dateNode) span() span { return d.at }

func (d *dateNode) clone() *dateNode {
	if d == nil {
		return nil
	}
	c := *d
	c.year = cloneInt(d.year)
	c.month = cloneInt(d.month)
	c.day = cloneInt(d.day)
	return &c
}

// timeNode is a partial time of day. The hour stays in its written 1-12
// "relative" form (values 0 or >12 are taken as 24-hour literals); the
// 12h -> 24h conversion happens only at render time.
type timeNode struct {
	hour, minute, second, millis *int
	mer                          *meridiem
	loc                          *time.Location
	at                           span
}

func (t *timeNode) span() span { return t.at }

func (t *timeNode) clone() *timeNode {
	if t == nil {
		return nil
	}
	c := *t
	c.hour = cloneInt(t.hour)
	c.minute = cloneInt(t.minute)
	c.second = cloneInt(t.second)
	c.millis = cloneInt(t.millis)
	if t.mer != nil {
		m := *t.mer
		c.mer = &m
	}
	return &c
}

// datetimeNode owns an optional date and an optional time. Its accessors
// delegate to the owned parts nil-safely. dateInferred marks a date that
// was borrowed from a sibling during inference rather than written in the
// text; the range day-rollover rule keys off it.
type datetimeNode struct {
	d            *dateNode
	t            *timeNode
	dateInferred bool
	at           span
}

func (dt *datetimeNode) span() span { return dt.at }

func (dt *datetimeNode) DatePart() *dateNode { return dt.d }

func (dt *datetimeNode) SetDatePart(d *dateNode, inferred bool) {
	dt.d = d
	dt.dateInferred = inferred
}

func (dt *datetimeNode) TimePart() *timeNode { return dt.t }

func (dt *datetimeNode) SetTimePart(t *timeNode) { dt.t = t }

func (dt *datetimeNode) Year() *int {
	if dt.d == nil {
		return nil
	}
	return dt.d.year
}

func (dt *datetimeNode) SetYear(y int) {
	if dt.d == nil {
		dt.d = &dateNode{at: noSpan}
	}
	dt.d.year = &y
}

func (dt *datetimeNode) Month() *int {
	if dt.d == nil {
		return nil
	}
	return dt.d.month
}

func (dt *datetimeNode) SetMonth(m int) {
	if dt.d == nil {
		dt.d = &dateNode{at: noSpan}
	}
	dt.d.month = &m
}

func (dt *datetimeNode) Day() *int {
	if dt.d == nil {
		return nil
	}
	return dt.d.day
}

func (dt *datetimeNode) Meridiem() *meridiem {
	if dt.t == nil {
		return nil
	}
	return dt.t.mer
}

func (dt *datetimeNode) SetMeridiem(m meridiem) {
	if dt.t == nil {
		dt.t = &timeNode{at: noSpan}
	}
	dt.t.mer = &m
}

func (dt *datetimeNode) Zone() *time.Location {
	if dt.t == nil {
		return nil
	}
	return dt.t.loc
}

func (dt *datetimeNode) SetZone(loc *time.Location) {
	if dt.t == nil {
		dt.t = &timeNode{at: noSpan}
	}
	dt.t.loc = loc
}

// rangeNode is an ordered start/end pair.
type rangeNode struct {
	start, end node
	at         span
}

func (r *rangeNode) span() span { return r.at }

func (r *rangeNode) items() []node { return []node{r.start, r.end} }

func (r *rangeNode) setItems(items []node) {
	r.start, r.end = items[0], items[1]
}

// listNode is an ordered sequence of alternatives ("7/17 or 7/18").
type listNode struct {
	elems []node
	at    span
}

func (l *listNode) span() span { return l.at }

func (l *listNode) items() []node { return l.elems }

func (l *listNode) setItems(items []node) { l.elems = items }

// group is the shared shape of range and list nodes: inference rewrites
// their items in place.
type group interface {
	datelike
	items() []node
	setItems([]node)
}

// Range and list reads scan items first-non-nil; writes broadcast.

func (r *rangeNode) DatePart() *dateNode {
	for _, it := range r.items() {
		if d, ok := it.(datelike); ok {
			if p := d.DatePart(); p != nil {
				return p
			}
		}
	}
	return nil
}

func (r *rangeNode) SetDatePart(d *dateNode, inferred bool) {
	broadcastDate(r, d, inferred)
}

func (r *rangeNode) TimePart() *timeNode { return groupTime(r) }

func (r *rangeNode) SetTimePart(t *timeNode) { broadcastTime(r, t) }

func (r *rangeNode) Year() *int { return groupYear(r) }

func (r *rangeNode) SetYear(y int) { broadcastYear(r, y) }

func (r *rangeNode) Month() *int { return groupMonth(r) }

func (r *rangeNode) SetMonth(m int) { broadcastMonth(r, m) }

func (r *rangeNode) Day() *int { return groupDay(r) }

func (r *rangeNode) Meridiem() *meridiem { return groupMeridiem(r) }

func (r *rangeNode) SetMeridiem(m meridiem) { broadcastMeridiem(r, m) }

func (r *rangeNode) Zone() *time.Location { return groupZone(r) }

func (r *rangeNode) SetZone(loc *time.Location) { broadcastZone(r, loc) }

func (l *listNode) DatePart() *dateNode {
	for _, it := range l.items() {
		if d, ok := it.(datelike); ok {
			if p := d.DatePart(); p != nil {
				return p
			}
		}
	}
	return nil
}

func (l *listNode) SetDatePart(d *dateNode, inferred bool) {
	broadcastDate(l, d, inferred)
}

func (l *listNode) TimePart() *timeNode { return groupTime(l) }

func (l *listNode) SetTimePart(t *timeNode) { broadcastTime(l, t) }

func (l *listNode) Year() *int { return groupYear(l) }

func (l *listNode) SetYear(y int) { broadcastYear(l, y) }

func (l *listNode) Month() *int { return groupMonth(l) }

func (l *listNode) SetMonth(m int) { broadcastMonth(l, m) }

func (l *listNode) Day() *int { return groupDay(l) }

func (l *listNode) Meridiem() *meridiem { return groupMeridiem(l) }

func (l *listNode) SetMeridiem(m meridiem) { broadcastMeridiem(l, m) }

func (l *listNode) Zone() *time.Location { return groupZone(l) }

func (l *listNode) SetZone(loc *time.Location) { broadcastZone(l, loc) }

func groupTime(g group) *timeNode {
	for _, it := range g.items() {
		if d, ok := it.(datelike); ok {
			if t := d.TimePart(); t != nil {
				return t
			}
		}
	}
	return nil
}

func groupYear(g group) *int {
	for _, it := range g.items() {
		if d, ok := it.(datelike); ok {
			if y := d.Year(); y != nil {
				return y
			}
		}
	}
	return nil
}

func groupMonth(g group) *int {
	for _, it := range g.items() {
		if d, ok := it.(datelike); ok {
			if m := d.Month(); m != nil {
				return m
			}
		}
	}
	return nil
}

func groupDay(g group) *int {
	for _, it := range g.items() {
		if d, ok := it.(datelike); ok {
			if v := d.Day(); v != nil {
				return v
			}
		}
	}
	return nil
}

func groupMeridiem(g group) *meridiem {
	for _, it := range g.items() {
		if d, ok := it.(datelike); ok {
			if m := d.Meridiem(); m != nil {
				return m
			}
		}
	}
	return nil
}

func groupZone(g group) *time.Location {
	for _, it := range g.items() {
		if d, ok := it.(datelike); ok {
			if z := d.Zone(); z != nil {
				return z
			}
		}
	}
	return nil
}

func broadcastDate(g group, d *dateNode, inferred bool) {
	for _, it := range g.items() {
		if dl, ok := it.(datelike); ok {
			dl.SetDatePart(d.clone(), inferred)
		}
	}
}

func broadcastTime(g group, t *timeNode) {
	for _, it := range g.items() {
		if dl, ok := it.(datelike); ok {
			dl.SetTimePart(t.clone())
		}
	}
}

func broadcastYear(g group, y int) {
	for _, it := range g.items() {
		if dl, ok := it.(datelike); ok {
			dl.SetYear(y)
		}
	}
}

func broadcastMonth(g group, m int) {
	for _, it := range g.items() {
		if dl, ok := it.(datelike); ok {
			dl.SetMonth(m)
		}
	}
}

func broadcastMeridiem(g group, m meridiem) {
	for _, it := range g.items() {
		if dl, ok := it.(datelike); ok {
			dl.SetMeridiem(m)
		}
	}
}

func broadcastZone(g group, loc *time.Location) {
	for _, it := range g.items() {
		if dl, ok := it.(datelike); ok {
			dl.SetZone(loc)
		}
	}
}

// deltaNode is a signed duration magnitude. Sub-day precision is kept in
// milliseconds; the originally written unit survives so a bare quantity
// next to it ("30-40 mins") can be read in the same unit. ago marks
// phrases like "2h30m ago" that anchor at "now" and point backward.
type deltaNode struct {
	days int64
	ms   int64
	unit string
	ago  bool
	at   span
}

func (d *deltaNode) span() span { return d.at }

func (d *deltaNode) duration() time.Duration {
	return time.Duration(d.days)*24*time.Hour + time.Duration(d.ms)*time.Millisecond
}

// ambiguousNode is a bare integer with no type information yet: it could be
// an hour, day, month, year, or a quantity. It carries no datelike fields;
// inference reinterprets it from neighbor context.
type ambiguousNode struct {
	text  string
	value int
	at    span
}

func (a *ambiguousNode) span() span { return a.at }

// unknownNode is an unrecognized span of input, kept for diagnostics and
// filtered out of results.
type unknownNode struct {
	text string
	at   span
}

func (u *unknownNode) span() span { return u.at }

// fields is the partial record each grammar rule contributes while a single
// expression is assembled. Merging is first-non-nil-wins.
type fields struct {
	year, month, day             *int
	nth                          *nthWeekday
	hour, minute, second, millis *int
	mer                          *meridiem
	loc                          *time.Location
}

func (f fields) merge(o fields) fields {
	if f.year == nil {
		f.year = o.year
	}
	if f.month == nil {
		f.month = o.month
	}
	if f.day == nil {
		f.day = o.day
	}
	if f.nth == nil {
		f.nth = o.nth
	}
	if f.hour == nil {
		f.hour = o.hour
	}
	if f.minute == nil {
		f.minute = o.minute
	}
	if f.second == nil {
		f.second = o.second
	}
	if f.millis == nil {
		f.millis = o.millis
	}
	if f.mer == nil {
		f.mer = o.mer
	}
	if f.loc == nil {
		f.loc = o.loc
	}
	return f
}

func (f fields) hasDate() bool {
	return f.year != nil || f.month != nil || f.day != nil || f.nth != nil
}

func (f fields) hasTime() bool {
	return f.hour != nil || f.minute != nil || f.second != nil || f.millis != nil
}

// datetime assembles a datetime node from the collected fields.
func (f fields) datetime(at span) *datetimeNode {
	dt := &datetimeNode{at: at}
	if f.hasDate() {
		dt.d = &dateNode{year: f.year, month: f.month, day: f.day, nth: f.nth, at: at}
	}
	if f.hasTime() || f.mer != nil || f.loc != nil {
		dt.t = &timeNode{
			hour: f.hour, minute: f.minute, second: f.second, millis: f.millis,
			mer: f.mer, loc: f.loc, at: at,
		}
	}
	return dt
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func intp(v int) *int { return &v }
