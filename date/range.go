package date

import "iter"

// Range represents an inclusive range of dates.
type Range struct{ From, To Date }

// NewRange creates a new date range. If 'from' is after 'to', they are swapped.
func NewRange(from, to Date) Range {
	if from.After(to) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// Range returns the calendar period containing the given date.
func (p Period) Range(on Date) Range {
	return Range{From: on.StartOf(p), To: on.EndOf(p)}
}

// Contains returns true when the date is included in the range (boundaries included).
func (r Range) Contains(on Date) bool { return !on.Before(r.From) && !on.After(r.To) }

// Days returns an iterator over every day in the range.
func (r Range) Days() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for on := r.From; !on.After(r.To); on = on.Add(1) {
			if !yield(on) {
				return
			}
		}
	}
}

// Ends returns an iterator over the last day of each period in the range.
// The final element is always r.To, even when it falls mid-period.
func (r Range) Ends(p Period) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for on := r.From; !on.After(r.To); {
			end := on.EndOf(p)
			if end.After(r.To) {
				end = r.To
			}
			if !yield(end) {
				return
			}
			on = end.Add(1)
		}
	}
}
