package whentext

// Inference completes the partial records of a range or list from their
// siblings. Two passes run over the group: the first element donates to
// everyone, then the last element donates and takes precedence where both
// could fill the same gap. Only gaps are filled; a field the text spelled
// out is never overwritten.

// inferGroup resolves ambiguous integers against their neighbors and then
// propagates missing fields through the group. The slice is rewritten in
// place and returned.
func inferGroup(items []node) ([]node, error) {
	if len(items) < 2 {
		return items, nil
	}
	for i, it := range items {
		amb, ok := it.(*ambiguousNode)
		if !ok {
			continue
		}
		other := neighborOf(items, i)
		if other == nil {
			return nil, &AmbiguityError{Text: amb.text}
		}
		resolved, err := resolveAmbiguous(amb, other)
		if err != nil {
			return nil, err
		}
		items[i] = resolved
	}

	borrowed := make(map[datelike]map[string]bool)
	if first, ok := firstDatelike(items); ok {
		for _, it := range items {
			if dl, ok := it.(datelike); ok && dl != first {
				copyMissing(first, dl, borrowed)
			}
		}
	}
	if last, ok := lastDatelike(items); ok {
		for _, it := range items {
			if dl, ok := it.(datelike); ok && dl != last {
				copyMissing(last, dl, borrowed)
			}
		}
	}
	return items, nil
}

// neighborOf picks the context for an ambiguous integer: the nearest
// following resolved sibling, falling back to the nearest preceding one.
func neighborOf(items []node, i int) node {
	for j := i + 1; j < len(items); j++ {
		if usableContext(items[j]) {
			return items[j]
		}
	}
	for j := i - 1; j >= 0; j-- {
		if usableContext(items[j]) {
			return items[j]
		}
	}
	return nil
}

func usableContext(n node) bool {
	switch n.(type) {
	case *ambiguousNode, *unknownNode:
		return false
	}
	return true
}

// resolveAmbiguous reinterprets a bare integer in the shape of its
// neighbor: an hour next to a time, a day next to a day, a quantity next
// to a duration.
func resolveAmbiguous(amb *ambiguousNode, other node) (node, error) {
	if d, ok := other.(*deltaNode); ok {
		u := unitTable[d.unit]
		ms, err := quantityMillis(amb.text, u.ms)
		if err != nil {
			return nil, &ParseError{Rule: "duration", Text: amb.text}
		}
		return &deltaNode{
			days: ms / 86400000,
			ms:   ms % 86400000,
			unit: d.unit,
			ago:  d.ago,
			at:   amb.at,
		}, nil
	}
	dl, ok := other.(datelike)
	if !ok {
		return nil, &AmbiguityError{Text: amb.text}
	}
	switch {
	case dl.TimePart() != nil && dl.TimePart().hour != nil:
		return &datetimeNode{
			t:  &timeNode{hour: intp(amb.value), at: amb.at},
			at: amb.at,
		}, nil
	case dl.Day() != nil:
		if amb.value > 31 {
			return &datetimeNode{
				d:  &dateNode{year: intp(expandYear(amb.value)), at: amb.at},
				at: amb.at,
			}, nil
		}
		return &datetimeNode{
			d:  &dateNode{day: intp(amb.value), at: amb.at},
			at: amb.at,
		}, nil
	case dl.Month() != nil:
		if amb.value >= 1 && amb.value <= 12 {
			return &datetimeNode{
				d:  &dateNode{month: intp(amb.value), at: amb.at},
				at: amb.at,
			}, nil
		}
		return &datetimeNode{
			d:  &dateNode{year: intp(expandYear(amb.value)), at: amb.at},
			at: amb.at,
		}, nil
	case dl.Year() != nil:
		return &datetimeNode{
			d:  &dateNode{year: intp(expandYear(amb.value)), at: amb.at},
			at: amb.at,
		}, nil
	}
	return nil, &AmbiguityError{Text: amb.text}
}

func firstDatelike(items []node) (datelike, bool) {
	for _, it := range items {
		if dl, ok := it.(datelike); ok {
			return dl, true
		}
	}
	return nil, false
}

func lastDatelike(items []node) (datelike, bool) {
	for i := len(items) - 1; i >= 0; i-- {
		if dl, ok := items[i].(datelike); ok {
			return dl, true
		}
	}
	return nil, false
}

// copyMissing fills tgt's gaps from src. A field that an earlier pass
// borrowed may be overwritten by a later pass; a field the text supplied
// never is.
func copyMissing(src, tgt datelike, borrowed map[datelike]map[string]bool) {
	mark := func(field string) {
		if borrowed[tgt] == nil {
			borrowed[tgt] = make(map[string]bool)
		}
		borrowed[tgt][field] = true
	}
	was := func(field string) bool { return borrowed[tgt][field] }

	if d := src.DatePart(); d != nil && (tgt.DatePart() == nil || was("date")) {
		tgt.SetDatePart(d.clone(), true)
		mark("date")
	}
	if t := src.TimePart(); t != nil && (tgt.TimePart() == nil || was("time")) {
		tgt.SetTimePart(t.clone())
		mark("time")
	}
	if m := src.Month(); m != nil && (tgt.Month() == nil || was("month")) {
		tgt.SetMonth(*m)
		mark("month")
	}
	if y := src.Year(); y != nil && (tgt.Year() == nil || was("year")) {
		tgt.SetYear(*y)
		mark("year")
	}
	if m := src.Meridiem(); m != nil && (tgt.Meridiem() == nil || was("meridiem")) {
		tgt.SetMeridiem(*m)
		mark("meridiem")
	}
	if z := src.Zone(); z != nil && (tgt.Zone() == nil || was("zone")) {
		tgt.SetZone(z)
		mark("zone")
	}
}
