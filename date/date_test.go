package date

import (
	"testing"
	"time"
)

// TestTime asserts that time() is canonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)
	if d1.time() != d2.time() {
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNormalization(t *testing.T) {
	if got := New(2024, time.January, 32); got != New(2024, time.February, 1) {
		t.Errorf("New(2024, 1, 32) = %s", got)
	}
	if got := New(2024, time.March, 0); got != New(2024, time.February, 29) {
		t.Errorf("New(2024, 3, 0) = %s", got)
	}
}

func TestStartEndOfMonth(t *testing.T) {
	d := New(2023, time.June, 14)
	if got := d.StartOf(Monthly); got != New(2023, time.June, 1) {
		t.Errorf("StartOf(Monthly) = %s", got)
	}
	if got := d.EndOf(Monthly); got != New(2023, time.June, 30) {
		t.Errorf("EndOf(Monthly) = %s", got)
	}
}

func TestSub(t *testing.T) {
	a := New(2023, time.January, 1)
	b := New(2024, time.January, 1)
	if days := b.Sub(a); days != 365 {
		t.Errorf("Sub = %d, want 365", days)
	}
}

func TestParse(t *testing.T) {
	d, err := Parse("2025-7-1")
	if err != nil {
		t.Fatal(err)
	}
	if d != New(2025, time.July, 1) {
		t.Errorf("Parse = %s", d)
	}
	if _, err := Parse("not-a-date"); err == nil {
		t.Error("Parse accepted garbage")
	}
}

func TestMonthEnds(t *testing.T) {
	r := NewRange(New(2023, time.January, 15), New(2023, time.April, 10))
	var got []Date
	for on := range r.Ends(Monthly) {
		got = append(got, on)
	}
	want := []Date{
		New(2023, time.January, 31),
		New(2023, time.February, 28),
		New(2023, time.March, 31),
		New(2023, time.April, 10),
	}
	if len(got) != len(want) {
		t.Fatalf("Ends(Monthly) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Ends(Monthly)[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
