package date

import (
	"testing"
	"time"
)

func TestHistoryValueAsOf(t *testing.T) {
	var h History[float64]
	h.Append(New(2023, time.March, 10), 1.10)
	h.Append(New(2023, time.January, 1), 1.00)
	h.Append(New(2023, time.June, 30), 1.25)

	cases := []struct {
		day  Date
		want float64
		ok   bool
	}{
		{New(2022, time.December, 31), 0, false},    // before first observation
		{New(2023, time.January, 1), 1.00, true},    // exact match on first
		{New(2023, time.February, 15), 1.00, true},  // carried forward
		{New(2023, time.March, 10), 1.10, true},     // exact match
		{New(2023, time.May, 1), 1.10, true},        // carried forward
		{New(2023, time.December, 31), 1.25, true},  // after last observation
	}
	for _, c := range cases {
		got, ok := h.ValueAsOf(c.day)
		if ok != c.ok || got != c.want {
			t.Errorf("ValueAsOf(%s) = %v, %v; want %v, %v", c.day, got, ok, c.want, c.ok)
		}
	}
}

func TestHistoryAppendOverwritesSameDay(t *testing.T) {
	var h History[float64]
	on := New(2024, time.May, 2)
	h.Append(on, 10)
	h.Append(on, 20)

	if h.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", h.Len())
	}
	if v, _ := h.Get(on); v != 20 {
		t.Errorf("Get(%s) = %v, want 20 (last write wins)", on, v)
	}
}

func TestHistoryUpdateKeepsMax(t *testing.T) {
	var h History[float64]
	on := New(2024, time.May, 2)
	keepMax := func(v float64) func(float64, bool) float64 {
		return func(old float64, exists bool) float64 {
			if exists && old > v {
				return old
			}
			return v
		}
	}
	h.Update(on, keepMax(20))
	h.Update(on, keepMax(10))

	if v, _ := h.Get(on); v != 20 {
		t.Errorf("Get(%s) = %v, want 20 (max wins)", on, v)
	}
}

func TestHistoryStaysSorted(t *testing.T) {
	var h History[float64]
	h.Append(New(2024, time.March, 1), 3)
	h.Append(New(2024, time.January, 1), 1)
	h.Append(New(2024, time.February, 1), 2)

	var prev Date
	for on := range h.Values() {
		if !prev.IsZero() && !prev.Before(on) {
			t.Fatalf("dates out of order: %s then %s", prev, on)
		}
		prev = on
	}
	if first, v := h.First(); first != New(2024, time.January, 1) || v != 1 {
		t.Errorf("First() = %s, %v", first, v)
	}
}
