package whentext

import (
	"testing"
	"time"
)

func dtNode(mutate ...func(*datetimeNode)) *datetimeNode {
	dt := &datetimeNode{at: noSpan}
	for _, m := range mutate {
		m(dt)
	}
	return dt
}

func TestInferGroupMeridiem(t *testing.T) {
	start := dtNode(func(dt *datetimeNode) {
		dt.t = &timeNode{hour: intp(3), at: noSpan}
	})
	pm := meridiemPM
	end := dtNode(func(dt *datetimeNode) {
		dt.t = &timeNode{hour: intp(4), mer: &pm, at: noSpan}
	})
	items, err := inferGroup([]node{start, end})
	if err != nil {
		t.Fatal(err)
	}
	got := items[0].(*datetimeNode)
	if got.t.mer == nil || *got.t.mer != meridiemPM {
		t.Errorf("start meridiem = %v, want PM", got.t.mer)
	}
	if *got.t.hour != 3 {
		t.Errorf("start hour = %d, want 3 (conversion happens at render)", *got.t.hour)
	}
}

func TestInferGroupDateBorrow(t *testing.T) {
	first := dtNode(func(dt *datetimeNode) {
		dt.d = &dateNode{month: intp(7), day: intp(17), at: noSpan}
	})
	second := dtNode(func(dt *datetimeNode) {
		dt.t = &timeNode{hour: intp(5), at: noSpan}
	})
	items, err := inferGroup([]node{first, second})
	if err != nil {
		t.Fatal(err)
	}
	got := items[1].(*datetimeNode)
	if got.d == nil || got.d.month == nil || *got.d.month != 7 || *got.d.day != 17 {
		t.Fatalf("second did not borrow the date: %+v", got.d)
	}
	if !got.dateInferred {
		t.Error("borrowed date not marked inferred")
	}
	if first.dateInferred {
		t.Error("explicit date marked inferred")
	}
}

func TestInferGroupLastWins(t *testing.T) {
	// The middle element can take a year from either end; the backward
	// pass runs second, so the last element's year wins.
	first := dtNode(func(dt *datetimeNode) {
		dt.d = &dateNode{year: intp(2017), month: intp(6), day: intp(1), at: noSpan}
	})
	middle := dtNode(func(dt *datetimeNode) {
		dt.d = &dateNode{month: intp(7), day: intp(2), at: noSpan}
	})
	last := dtNode(func(dt *datetimeNode) {
		dt.d = &dateNode{year: intp(2019), month: intp(8), day: intp(3), at: noSpan}
	})
	_, err := inferGroup([]node{first, middle, last})
	if err != nil {
		t.Fatal(err)
	}
	if middle.d.year == nil || *middle.d.year != 2019 {
		t.Errorf("middle year = %v, want 2019", middle.d.year)
	}
	if *first.d.year != 2017 || *last.d.year != 2019 {
		t.Error("explicit years were overwritten")
	}
}

func TestInferGroupAmbiguousDelta(t *testing.T) {
	amb := &ambiguousNode{text: "30", value: 30, at: noSpan}
	delta := &deltaNode{ms: 40 * 60000, unit: "min", at: noSpan}
	items, err := inferGroup([]node{amb, delta})
	if err != nil {
		t.Fatal(err)
	}
	got, ok := items[0].(*deltaNode)
	if !ok {
		t.Fatalf("items[0] = %T, want *deltaNode", items[0])
	}
	if got.duration() != 30*time.Minute {
		t.Errorf("duration = %v, want 30m", got.duration())
	}
	if got.unit != "min" {
		t.Errorf("unit = %q, want min", got.unit)
	}
}

func TestInferGroupAmbiguousDay(t *testing.T) {
	dated := dtNode(func(dt *datetimeNode) {
		dt.d = &dateNode{month: intp(7), day: intp(17), at: noSpan}
	})
	amb := &ambiguousNode{text: "18", value: 18, at: noSpan}
	items, err := inferGroup([]node{dated, amb})
	if err != nil {
		t.Fatal(err)
	}
	got, ok := items[1].(*datetimeNode)
	if !ok {
		t.Fatalf("items[1] = %T, want *datetimeNode", items[1])
	}
	if got.d.day == nil || *got.d.day != 18 {
		t.Errorf("day = %v, want 18", got.d.day)
	}
	if got.d.month == nil || *got.d.month != 7 {
		t.Errorf("month = %v, want 7 (borrowed)", got.d.month)
	}
}

func TestInferGroupSingleElement(t *testing.T) {
	only := dtNode(func(dt *datetimeNode) {
		dt.t = &timeNode{hour: intp(3), at: noSpan}
	})
	items, err := inferGroup([]node{only})
	if err != nil {
		t.Fatal(err)
	}
	if items[0] != node(only) {
		t.Error("single-element group was rewritten")
	}
	if only.t.mer != nil || only.d != nil {
		t.Error("single-element group gained fields")
	}
}

func TestInferGroupNoContext(t *testing.T) {
	a := &ambiguousNode{text: "3", value: 3, at: noSpan}
	b := &ambiguousNode{text: "4", value: 4, at: noSpan}
	if _, err := inferGroup([]node{a, b}); err == nil {
		t.Fatal("inferGroup resolved two bare integers, want error")
	}
}
