package whentext

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ava12/llx/lexer"
	"github.com/ava12/llx/source"
	"github.com/ava12/llx/tree"
	"github.com/cockroachdb/apd/v3"

	"github.com/whentext/whentext/locale"
)

// builder walks the parse tree bottom-up and assembles semantic nodes.
// Grammar rules only shape the token stream; everything that needs judgment
// (two-digit years, day-or-year integers, weekday arithmetic) happens here.
type builder struct {
	cfg Config
	now time.Time
	src *source.Source
}

// tokSpan converts a token position to byte offsets. Token columns count
// runes, Source offsets count bytes, so the column is walked rune by rune.
func (b *builder) tokSpan(t *lexer.Token) span {
	if t == nil || t.Source() == nil {
		return noSpan
	}
	content := t.Source().Content()
	line, col := t.LineCol()
	start := t.Source().Pos(line, 1)
	for i := 1; i < col && start < len(content); i++ {
		_, size := utf8.DecodeRune(content[start:])
		start += size
	}
	return span{start, start + len(t.Text())}
}

func (b *builder) nodeSpan(n tree.Element) span {
	first := tree.FirstTokenElement(n)
	last := tree.LastTokenElement(n)
	if first == nil || last == nil {
		return noSpan
	}
	return b.tokSpan(first.Token()).union(b.tokSpan(last.Token()))
}

func nodeText(b *builder, n tree.Element) string {
	at := b.nodeSpan(n)
	if !at.valid() {
		return ""
	}
	return string(b.src.Content()[at.start:at.end])
}

func tokenText(t *lexer.Token) string {
	return strings.TrimSuffix(strings.ToLower(t.Text()), ".")
}

// phrase turns the root parse node into the ordered top-level semantic
// nodes, unknowns included.
func (b *builder) phrase(root tree.Element) ([]node, error) {
	var out []node
	for _, el := range tree.Children(root) {
		if !el.IsNode() {
			continue
		}
		child := tree.Children(el)
		if len(child) == 0 {
			continue
		}
		switch child[0].TypeName() {
		case "expression":
			n, err := b.expression(child[0])
			if err != nil {
				return nil, err
			}
			if n != nil {
				out = append(out, n)
			}
		default:
			// unknown
			tn := tree.FirstTokenElement(child[0])
			if tn != nil {
				out = append(out, &unknownNode{text: tn.Token().Text(), at: b.tokSpan(tn.Token())})
			}
		}
	}
	return out, nil
}

type sepKind int

const (
	sepNone sepKind = iota
	sepRange
	sepList
)

// expression groups the singles of one expression into ranges and lists and
// runs field inference over the result.
func (b *builder) expression(n tree.Element) (node, error) {
	type seqItem struct {
		n   node
		sep sepKind
	}
	var seq []seqItem
	pending := sepNone
	for _, c := range tree.Children(n) {
		if c.IsNode() {
			sn, err := b.single(c)
			if err != nil {
				return nil, err
			}
			seq = append(seq, seqItem{sn, pending})
			pending = sepNone
			continue
		}
		switch tokenText(c.Token()) {
		case "-", "to":
			pending = sepRange
		case ",", "or":
			pending = sepList
		}
	}
	// A trailing separator with nothing after it is dropped.
	var items []node
	for _, it := range seq {
		if it.sep == sepRange && len(items) > 0 {
			prev := items[len(items)-1]
			if r, ok := prev.(*rangeNode); ok {
				r.end = it.n
				r.at = r.at.union(it.n.span())
				continue
			}
			items[len(items)-1] = &rangeNode{
				start: prev, end: it.n,
				at: prev.span().union(it.n.span()),
			}
			continue
		}
		items = append(items, it.n)
	}
	if len(items) == 0 {
		return nil, nil
	}
	for i, it := range items {
		r, ok := it.(*rangeNode)
		if !ok {
			continue
		}
		pair, err := inferGroup([]node{r.start, r.end})
		if err != nil {
			return nil, err
		}
		r.start, r.end = pair[0], pair[1]
		items[i] = r
	}
	if len(items) == 1 {
		return items[0], nil
	}
	items, err := inferGroup(items)
	if err != nil {
		return nil, err
	}
	at := noSpan
	for _, it := range items {
		at = at.union(it.span())
	}
	return &listNode{elems: items, at: at}, nil
}

// single dispatches on the alternative the grammar picked.
func (b *builder) single(n tree.Element) (node, error) {
	child := tree.Children(n)
	if len(child) == 0 {
		return &unknownNode{text: nodeText(b, n), at: b.nodeSpan(n)}, nil
	}
	c := child[0]
	switch c.TypeName() {
	case "monthdate":
		return b.monthdate(c)
	case "numberled":
		return b.numberled(c)
	case "iso":
		return b.iso(c)
	case "weekdayled":
		return b.weekdayled(c)
	case "named":
		return b.named(c)
	case "wordnum":
		return b.wordnum(c)
	}
	return &unknownNode{text: nodeText(b, n), at: b.nodeSpan(n)}, nil
}

// monthdate handles expressions opening with a month name: "May 17", "May
// 17, 2018 at 3 PM", "August 2024". The span is built token by token so a
// comma with no year after it ("May 17, okay?") stays outside the match.
func (b *builder) monthdate(n tree.Element) (node, error) {
	at := noSpan
	commaAt := noSpan
	var f fields
	sawComma := false
	for _, c := range tree.Children(n) {
		if c.IsNode() {
			tf, err := b.timeattach(c)
			if err != nil {
				return nil, err
			}
			if err := attachTime(&f, tf); err != nil {
				return nil, err
			}
			at = at.union(b.nodeSpan(c))
			continue
		}
		t := c.Token()
		switch c.TypeName() {
		case "monthname":
			if m, ok := locale.Month(t.Text()); ok {
				f.month = intp(int(m))
			}
			at = at.union(b.tokSpan(t))
		case "number", "ordinal":
			v := numericValue(t)
			if sawComma {
				f.year = intp(expandYear(v))
				at = at.union(commaAt)
			} else {
				dayOrYear(&f, v, c.TypeName() == "ordinal")
			}
			at = at.union(b.tokSpan(t))
		default:
			if t.Text() == "," {
				sawComma = true
				commaAt = b.tokSpan(t)
			}
		}
	}
	return f.datetime(at), nil
}

// iso handles ISO-style dashed dates ("2018-8-4").
func (b *builder) iso(n tree.Element) (node, error) {
	at := b.nodeSpan(n)
	var f fields
	for _, c := range tree.Children(n) {
		if c.IsNode() {
			tf, err := b.timeattach(c)
			if err != nil {
				return nil, err
			}
			if err := attachTime(&f, tf); err != nil {
				return nil, err
			}
			continue
		}
		if c.TypeName() != "isodate" {
			continue
		}
		parts := strings.SplitN(c.Token().Text(), "-", 3)
		y, _ := strconv.Atoi(parts[0])
		m, _ := strconv.Atoi(parts[1])
		d, _ := strconv.Atoi(parts[2])
		if m < 1 || m > 12 {
			return nil, &ParseError{Rule: "date", Text: c.Token().Text()}
		}
		f.year, f.month, f.day = intp(y), intp(m), intp(d)
	}
	return f.datetime(at), nil
}

// numberled handles everything that opens with a digit: slash dates, clock
// times, meridiem times, durations, "17 May" and bare integers.
func (b *builder) numberled(n tree.Element) (node, error) {
	at := b.nodeSpan(n)
	child := tree.Children(n)
	first := child[0].Token()
	text := first.Text()
	isOrd := child[0].TypeName() == "ordinal"
	v := numericValue(first)

	var tail tree.Element
	if len(child) > 1 && child[1].IsNode() {
		inner := tree.Children(child[1])
		if len(inner) > 0 {
			tail = inner[0]
		}
	}
	if tail == nil {
		if isOrd {
			f := fields{day: intp(v)}
			return f.datetime(at), nil
		}
		if strings.Contains(text, ".") {
			return &unknownNode{text: text, at: at}, nil
		}
		return &ambiguousNode{text: text, value: v, at: at}, nil
	}

	switch tail.TypeName() {
	case "slashdate":
		return b.slashdate(tail, v, at)
	case "clocktime":
		return b.clocktime(tail, v, at)
	case "ampm", "zoned":
		f := fields{hour: intp(v)}
		if err := b.timeTail(tail, &f); err != nil {
			return nil, err
		}
		return f.datetime(at), nil
	case "durtail":
		return b.delta(text, tail, at)
	case "dayofmonth":
		return b.dayofmonth(tail, v, isOrd, at)
	}
	return &unknownNode{text: nodeText(b, n), at: at}, nil
}

// slashdate finishes "7/17", "7/17/18" and friends; lead is the already
// consumed month number.
func (b *builder) slashdate(n tree.Element, lead int, at span) (node, error) {
	if lead < 1 || lead > 12 {
		return nil, &ParseError{Rule: "date", Text: strconv.Itoa(lead)}
	}
	f := fields{month: intp(lead)}
	nums := 0
	for _, c := range tree.Children(n) {
		if c.IsNode() {
			tf, err := b.timeattach(c)
			if err != nil {
				return nil, err
			}
			if err := attachTime(&f, tf); err != nil {
				return nil, err
			}
			continue
		}
		if c.TypeName() != "number" {
			continue
		}
		v := numericValue(c.Token())
		if nums == 0 {
			f.day = intp(v)
		} else {
			f.year = intp(expandYear(v))
		}
		nums++
	}
	if f.day != nil && *f.day > 31 {
		if f.year != nil {
			return nil, &ParseError{Rule: "date", Text: strconv.Itoa(*f.day)}
		}
		f.year = intp(expandYear(*f.day))
		f.day = nil
	}
	return f.datetime(at), nil
}

// clocktime finishes "3:30", "15:04:05.5 PM PST on Monday"; lead is the
// hour.
func (b *builder) clocktime(n tree.Element, lead int, at span) (node, error) {
	f := fields{hour: intp(lead)}
	nums := 0
	for _, c := range tree.Children(n) {
		if c.IsNode() {
			df, err := b.dayref(c)
			if err != nil {
				return nil, err
			}
			f = f.merge(df)
			continue
		}
		t := c.Token()
		switch c.TypeName() {
		case "number":
			if nums == 0 {
				f.minute = intp(numericValue(t))
			} else {
				sec, ms := splitSeconds(t.Text())
				f.second = intp(sec)
				if ms > 0 {
					f.millis = intp(ms)
				}
			}
			nums++
		case "meridiem":
			f.mer = meridiemOf(t.Text())
		case "tzname":
			if loc, ok := locale.Zone(t.Text()); ok {
				f.loc = loc
			}
		}
	}
	return f.datetime(at), nil
}

// timeTail consumes the ampm/zoned suffixes shared by several rules.
func (b *builder) timeTail(n tree.Element, f *fields) error {
	for _, c := range tree.Children(n) {
		if c.IsNode() {
			df, err := b.dayref(c)
			if err != nil {
				return err
			}
			*f = f.merge(df)
			continue
		}
		t := c.Token()
		switch c.TypeName() {
		case "meridiem":
			f.mer = meridiemOf(t.Text())
		case "tzname":
			if loc, ok := locale.Zone(t.Text()); ok {
				f.loc = loc
			}
		}
	}
	return nil
}

// dayofmonth finishes "17 May" and "3rd of December, 2018"; lead is the
// number before the month name.
func (b *builder) dayofmonth(n tree.Element, lead int, isOrd bool, at span) (node, error) {
	var f fields
	dayOrYear(&f, lead, isOrd)
	sawMonth := false
	sawComma := false
	for _, c := range tree.Children(n) {
		if c.IsNode() {
			// monthtail
			for _, mc := range tree.Children(c) {
				if mc.IsNode() {
					tf, err := b.timeattach(mc)
					if err != nil {
						return nil, err
					}
					if err := attachTime(&f, tf); err != nil {
						return nil, err
					}
					continue
				}
				t := mc.Token()
				switch t.Text() {
				case ",":
					sawComma = true
				default:
					if mc.TypeName() == "number" && sawComma {
						f.year = intp(expandYear(numericValue(t)))
					}
				}
			}
			continue
		}
		if c.TypeName() == "monthname" {
			if m, ok := locale.Month(c.Token().Text()); ok {
				f.month = intp(int(m))
				sawMonth = true
			}
		}
	}
	if !sawMonth {
		// "17 of" with nothing usable after it.
		return &ambiguousNode{text: strconv.Itoa(lead), value: lead, at: at}, nil
	}
	return f.datetime(at), nil
}

// weekdayled handles bare weekdays, modifier chains ("next next Monday",
// "last Wednesday of December") and modifier-plus-unit phrases ("next
// week").
func (b *builder) weekdayled(n tree.Element) (node, error) {
	at := b.nodeSpan(n)
	var mods []string
	var wd time.Weekday
	haveWd := false
	unitText := ""
	var tail tree.Element
	for _, c := range tree.Children(n) {
		if c.IsNode() {
			tail = c
			continue
		}
		t := c.Token()
		switch c.TypeName() {
		case "weekday":
			wd, haveWd = weekdayOf(t.Text())
		case "modifier", "ordword":
			mods = append(mods, tokenText(t))
		case "unit":
			unitText = tokenText(t)
		}
	}
	if !haveWd {
		if unitText != "" {
			return b.modifiedUnit(mods, unitText, at)
		}
		return &unknownNode{text: nodeText(b, n), at: at}, nil
	}

	var f fields
	var tf fields
	month := 0
	year := 0
	if tail != nil {
		var err error
		month, year, tf, err = b.wkdtail(tail)
		if err != nil {
			return nil, err
		}
	}
	if month != 0 {
		// "last Wednesday of December": keep the occurrence symbolic until
		// the year is settled at render time.
		f.month = intp(month)
		if year != 0 {
			f.year = intp(expandYear(year))
		}
		f.nth = &nthWeekday{weekday: wd, n: nthFromMods(mods)}
	} else {
		y, m, d := b.weekdayDate(wd, mods)
		f.year, f.month, f.day = intp(y), intp(m), intp(d)
	}
	if err := attachTime(&f, tf); err != nil {
		return nil, err
	}
	return f.datetime(at), nil
}

// wkdtail pulls apart "of December 2018 at 3 PM", a trailing timezone
// ("Wed EST") or a bare time attachment.
func (b *builder) wkdtail(n tree.Element) (month, year int, tf fields, err error) {
	for _, c := range tree.Children(n) {
		if c.IsNode() {
			af, err := b.timeattach(c)
			if err != nil {
				return 0, 0, fields{}, err
			}
			tf = tf.merge(af)
			continue
		}
		t := c.Token()
		switch c.TypeName() {
		case "monthname":
			if m, ok := locale.Month(t.Text()); ok {
				month = int(m)
			}
		case "number":
			year = numericValue(t)
		case "tzname":
			if loc, ok := locale.Zone(t.Text()); ok {
				tf.loc = loc
			}
		}
	}
	return month, year, tf, nil
}

// modifiedUnit turns "next week" or "last month" into a concrete date or
// datetime relative to now.
func (b *builder) modifiedUnit(mods []string, unit string, at span) (node, error) {
	steps := 0
	for _, m := range mods {
		steps += modifierSign(m)
	}
	if steps == 0 && !containsThis(mods) {
		steps = 1
	}
	u, ok := unitTable[unit]
	if !ok {
		return &unknownNode{text: unit, at: at}, nil
	}
	var target time.Time
	switch u.canon {
	case "d":
		target = b.now.AddDate(0, 0, steps)
	case "wk":
		target = b.now.AddDate(0, 0, 7*steps)
	case "mo":
		target = b.now.AddDate(0, steps, 0)
	case "y":
		target = b.now.AddDate(steps, 0, 0)
	default:
		dt := time.Duration(u.ms) * time.Millisecond * time.Duration(steps)
		target = b.now.Add(dt)
		f := fields{
			year: intp(target.Year()), month: intp(int(target.Month())), day: intp(target.Day()),
			hour: intp(target.Hour()), minute: intp(target.Minute()),
		}
		return f.datetime(at), nil
	}
	f := fields{year: intp(target.Year()), month: intp(int(target.Month())), day: intp(target.Day())}
	return f.datetime(at), nil
}

// weekdayDate resolves a weekday mention to a concrete calendar day. The
// first modifier picks the direction; every further one steps a week more.
func (b *builder) weekdayDate(wd time.Weekday, mods []string) (y int, m int, d int) {
	dir := b.cfg.Direction
	extra := 0
	seen := false
	for _, mod := range mods {
		sign := modifierSign(mod)
		if !seen {
			seen = true
			switch {
			case sign > 0:
				dir = DirectionNext
			case sign < 0:
				dir = DirectionPrevious
			default:
				dir = DirectionThis
			}
			continue
		}
		extra += 7 * sign
	}
	nowWd := int(b.now.Weekday())
	days := 0
	switch dir {
	case DirectionNext:
		days = (int(wd) - nowWd + 7) % 7
		if days == 0 {
			days = 7
		}
	case DirectionPrevious:
		days = -((nowWd - int(wd) + 7) % 7)
		if days == 0 {
			days = -7
		}
	case DirectionThis:
		days = (int(wd) - nowWd + 7) % 7
	}
	target := b.now.AddDate(0, 0, days+extra)
	return target.Year(), int(target.Month()), target.Day()
}

// named handles the fixed vocabulary: today, tomorrow, yesterday, tonight
// and the day-part names.
func (b *builder) named(n tree.Element) (node, error) {
	at := b.nodeSpan(n)
	var f fields
	for _, c := range tree.Children(n) {
		if c.IsNode() {
			switch c.TypeName() {
			case "timeattach":
				tf, err := b.timeattach(c)
				if err != nil {
					return nil, err
				}
				if err := attachTime(&f, tf); err != nil {
					return nil, err
				}
			case "dayref":
				df, err := b.dayref(c)
				if err != nil {
					return nil, err
				}
				f = f.merge(df)
			}
			continue
		}
		t := c.Token()
		switch c.TypeName() {
		case "datename":
			f = f.merge(b.namedDate(tokenText(t)))
		case "datetimename":
			// tonight
			f = f.merge(b.namedDate("today"))
			f = f.merge(namedTime("night"))
		case "timename":
			f = f.merge(namedTime(tokenText(t)))
		case "tzname":
			if loc, ok := locale.Zone(t.Text()); ok && f.loc == nil {
				f.loc = loc
			}
		}
	}
	return f.datetime(at), nil
}

func (b *builder) namedDate(name string) fields {
	target := b.now
	switch name {
	case "tomorrow", "tmw":
		target = target.AddDate(0, 0, 1)
	case "yesterday":
		target = target.AddDate(0, 0, -1)
	}
	return fields{year: intp(target.Year()), month: intp(int(target.Month())), day: intp(target.Day())}
}

// namedTime maps a day-part name to its conventional clock reading. Hours
// stay in 12-hour relative form; midnight is 12 AM so it renders as 0:00.
func namedTime(name string) fields {
	switch name {
	case "noon", "midday":
		return fields{hour: intp(12), mer: merp(meridiemPM)}
	case "midnight":
		return fields{hour: intp(12), mer: merp(meridiemAM)}
	case "morning":
		return fields{hour: intp(6), mer: merp(meridiemAM)}
	case "afternoon":
		return fields{hour: intp(3), mer: merp(meridiemPM)}
	case "evening":
		return fields{hour: intp(6), mer: merp(meridiemPM)}
	case "night":
		return fields{hour: intp(8), mer: merp(meridiemPM)}
	}
	return fields{}
}

// wordnum handles spelled-out numbers, alone or heading a duration
// ("thirty two minutes").
func (b *builder) wordnum(n tree.Element) (node, error) {
	at := b.nodeSpan(n)
	child := tree.Children(n)
	v := 0
	unitText := ""
	var parts []deltaPart
	ago := false
	for _, c := range child {
		if c.IsNode() {
			switch c.TypeName() {
			case "numwords":
				v = wordNumber(b.words(c))
			case "durpart":
				p, err := b.durpart(c)
				if err != nil {
					return nil, err
				}
				parts = append(parts, p)
			}
			continue
		}
		t := c.Token()
		switch c.TypeName() {
		case "unit":
			unitText = tokenText(t)
		default:
			if tokenText(t) == "ago" {
				ago = true
			}
		}
	}
	if unitText == "" {
		return &ambiguousNode{text: nodeText(b, n), value: v, at: at}, nil
	}
	parts = append([]deltaPart{{qty: strconv.Itoa(v), unit: unitText}}, parts...)
	return b.deltaFromParts(parts, ago, at)
}

func (b *builder) words(n tree.Element) []string {
	var out []string
	for _, c := range tree.Children(n) {
		if !c.IsNode() {
			out = append(out, tokenText(c.Token()))
		}
	}
	return out
}

// timeattach parses "at 3:30 PM", "@noon" or a bare juxtaposed time.
func (b *builder) timeattach(n tree.Element) (fields, error) {
	for _, c := range tree.Children(n) {
		if c.IsNode() {
			return b.timecore(c)
		}
	}
	return fields{}, nil
}

func (b *builder) timecore(n tree.Element) (fields, error) {
	var f fields
	nums := 0
	for _, c := range tree.Children(n) {
		if c.IsNode() {
			continue
		}
		t := c.Token()
		switch c.TypeName() {
		case "number":
			switch nums {
			case 0:
				f.hour = intp(numericValue(t))
			case 1:
				f.minute = intp(numericValue(t))
			default:
				sec, ms := splitSeconds(t.Text())
				f.second = intp(sec)
				if ms > 0 {
					f.millis = intp(ms)
				}
			}
			nums++
		case "meridiem":
			f.mer = meridiemOf(t.Text())
		case "tzname":
			if loc, ok := locale.Zone(t.Text()); ok {
				f.loc = loc
			}
		case "timename":
			f = f.merge(namedTime(tokenText(t)))
		}
	}
	return f, nil
}

// dayref parses "on <expression>", a trailing day name, or a trailing
// weekday, and returns its date fields.
func (b *builder) dayref(n tree.Element) (fields, error) {
	for _, c := range tree.Children(n) {
		if c.IsNode() {
			sn, err := b.single(c)
			if err != nil {
				return fields{}, err
			}
			return dateFieldsOf(sn), nil
		}
		t := c.Token()
		switch c.TypeName() {
		case "datename":
			return b.namedDate(tokenText(t)), nil
		case "weekday":
			if wd, ok := weekdayOf(t.Text()); ok {
				y, m, d := b.weekdayDate(wd, nil)
				return fields{year: intp(y), month: intp(m), day: intp(d)}, nil
			}
		}
	}
	return fields{}, nil
}

// dateFieldsOf lifts the calendar fields out of an already built node.
func dateFieldsOf(n node) fields {
	dl, ok := n.(datelike)
	if !ok {
		return fields{}
	}
	d := dl.DatePart()
	if d == nil {
		return fields{}
	}
	return fields{year: cloneInt(d.year), month: cloneInt(d.month), day: cloneInt(d.day), nth: d.nth}
}

// Duration assembly. Quantities are decimal ("1.5 hours"), so the math runs
// through apd and only the final millisecond total comes back to int64.

type deltaPart struct {
	qty  string
	unit string
}

var unitTable = map[string]struct {
	canon string
	ms    int64
}{
	"ms": {"ms", 1}, "milli": {"ms", 1}, "millis": {"ms", 1},
	"millisecond": {"ms", 1}, "milliseconds": {"ms", 1},
	"s": {"s", 1000}, "sec": {"s", 1000}, "secs": {"s", 1000},
	"second": {"s", 1000}, "seconds": {"s", 1000},
	"m": {"min", 60000}, "min": {"min", 60000}, "mins": {"min", 60000},
	"minute": {"min", 60000}, "minutes": {"min", 60000},
	"h": {"h", 3600000}, "hr": {"h", 3600000}, "hrs": {"h", 3600000},
	"hour": {"h", 3600000}, "hours": {"h", 3600000},
	"d": {"d", 86400000}, "day": {"d", 86400000}, "days": {"d", 86400000},
	"w": {"wk", 604800000}, "wk": {"wk", 604800000}, "wks": {"wk", 604800000},
	"week": {"wk", 604800000}, "weeks": {"wk", 604800000},
	"mo": {"mo", 2592000000}, "mos": {"mo", 2592000000},
	"month": {"mo", 2592000000}, "months": {"mo", 2592000000},
	"y": {"y", 31536000000}, "yr": {"y", 31536000000}, "yrs": {"y", 31536000000},
	"year": {"y", 31536000000}, "years": {"y", 31536000000},
}

var apdCtx = apd.BaseContext.WithPrecision(34)

// delta finishes a digit-led duration: lead is the quantity text, n the
// durtail node carrying the unit, further quantity/unit pairs and an
// optional "ago".
func (b *builder) delta(lead string, n tree.Element, at span) (node, error) {
	parts := []deltaPart{{qty: strings.TrimRight(lead, "stndrh"), unit: ""}}
	ago := false
	for _, c := range tree.Children(n) {
		if c.IsNode() {
			p, err := b.durpart(c)
			if err != nil {
				return nil, err
			}
			parts = append(parts, p)
			continue
		}
		t := c.Token()
		switch c.TypeName() {
		case "unit":
			if parts[0].unit == "" {
				parts[0].unit = tokenText(t)
			}
		default:
			if tokenText(t) == "ago" {
				ago = true
			}
		}
	}
	return b.deltaFromParts(parts, ago, at)
}

func (b *builder) durpart(n tree.Element) (deltaPart, error) {
	var p deltaPart
	for _, c := range tree.Children(n) {
		if c.IsNode() {
			p.qty = strconv.Itoa(wordNumber(b.words(c)))
			continue
		}
		t := c.Token()
		switch c.TypeName() {
		case "number":
			p.qty = t.Text()
		case "unit":
			p.unit = tokenText(t)
		}
	}
	return p, nil
}

func (b *builder) deltaFromParts(parts []deltaPart, ago bool, at span) (node, error) {
	total := int64(0)
	canon := ""
	for i, p := range parts {
		u, ok := unitTable[p.unit]
		if !ok {
			return nil, &ParseError{Rule: "duration", Text: p.unit}
		}
		if i == 0 {
			canon = u.canon
		}
		ms, err := quantityMillis(p.qty, u.ms)
		if err != nil {
			return nil, &ParseError{Rule: "duration", Text: p.qty}
		}
		total += ms
	}
	return &deltaNode{
		days: total / 86400000,
		ms:   total % 86400000,
		unit: canon,
		ago:  ago,
		at:   at,
	}, nil
}

func quantityMillis(qty string, unitMs int64) (int64, error) {
	d, _, err := apd.NewFromString(qty)
	if err != nil {
		return 0, err
	}
	var res apd.Decimal
	if _, err := apdCtx.Mul(&res, d, apd.New(unitMs, 0)); err != nil {
		return 0, err
	}
	if _, err := apdCtx.RoundToIntegralValue(&res, &res); err != nil {
		return 0, err
	}
	return res.Int64()
}

// Small lexical helpers.

// attachTime merges time fields into f, except that a bare large trailing
// number was really a year ("May 17 2018").
func attachTime(f *fields, tf fields) error {
	if tf.hour != nil && *tf.hour > 24 &&
		tf.minute == nil && tf.second == nil && tf.mer == nil && tf.loc == nil {
		if f.year == nil {
			f.year = intp(expandYear(*tf.hour))
			return nil
		}
		return &ParseError{Rule: "time", Text: strconv.Itoa(*tf.hour)}
	}
	*f = f.merge(tf)
	return nil
}

// dayOrYear classifies a bare integer next to a month name: small values
// are days, everything else is a year.
func dayOrYear(f *fields, v int, isOrd bool) {
	if isOrd || v < 32 {
		f.day = intp(v)
		return
	}
	f.year = intp(expandYear(v))
}

// expandYear widens two-digit years: 50-99 land in the 1900s, 0-49 in the
// 2000s.
func expandYear(y int) int {
	if y >= 100 {
		return y
	}
	if y >= 50 {
		return 1900 + y
	}
	return 2000 + y
}

// numericValue reads the integer part of a number or ordinal token.
func numericValue(t *lexer.Token) int {
	text := t.Text()
	if i := strings.IndexAny(text, "."); i >= 0 {
		text = text[:i]
	}
	text = strings.TrimRightFunc(text, func(r rune) bool {
		return r < '0' || r > '9'
	})
	v, _ := strconv.Atoi(text)
	return v
}

// splitSeconds reads "45" or "45.5" into whole seconds and milliseconds.
func splitSeconds(text string) (sec, ms int) {
	whole, frac, found := strings.Cut(text, ".")
	sec, _ = strconv.Atoi(whole)
	if !found {
		return sec, 0
	}
	for len(frac) < 3 {
		frac += "0"
	}
	ms, _ = strconv.Atoi(frac[:3])
	return sec, ms
}

func meridiemOf(text string) *meridiem {
	if strings.HasPrefix(strings.ToLower(text), "p") {
		return merp(meridiemPM)
	}
	return merp(meridiemAM)
}

func merp(m meridiem) *meridiem { return &m }

var weekdays = map[string]time.Weekday{
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
	"sunday": time.Sunday, "sun": time.Sunday,
}

func weekdayOf(text string) (time.Weekday, bool) {
	wd, ok := weekdays[strings.TrimSuffix(strings.ToLower(text), ".")]
	return wd, ok
}

// modifierSign maps a modifier word to its weekly step.
func modifierSign(mod string) int {
	switch mod {
	case "next", "upcoming", "following":
		return 1
	case "previous", "last", "past", "preceding":
		return -1
	}
	return 0
}

func containsThis(mods []string) bool {
	for _, m := range mods {
		if m == "this" {
			return true
		}
	}
	return false
}

// nthFromMods picks the occurrence index for "<mods> <weekday> of <month>".
func nthFromMods(mods []string) int {
	for _, m := range mods {
		switch m {
		case "first":
			return 1
		case "third":
			return 3
		case "fourth":
			return 4
		case "fifth":
			return 5
		case "last":
			return -1
		}
	}
	return 1
}

// "an" counts as one so the article form "an hour" reads as a quantity.
// The article "a" cannot join it: a lone "a" is a meridiem abbreviation.
var numWords = map[string]int{
	"an":  1,
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
	"hundred": 100,
}

// wordNumber evaluates a run of spelled-out number words ("one hundred
// twenty" is 120, "thirty two" is 32).
func wordNumber(words []string) int {
	total := 0
	for _, w := range words {
		v := numWords[w]
		if v == 100 {
			if total == 0 {
				total = 1
			}
			total *= 100
			continue
		}
		total += v
	}
	return total
}
