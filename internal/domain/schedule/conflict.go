package schedule

import "time"

// Interval is a half-open [Start, End) range within one day.
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

func IntervalAt(start TimeOfDay, d time.Duration) Interval {
	return Interval{Start: start, End: start.Add(d)}
}

// InDay is false when the interval reaches or crosses midnight. Such a
// service can be neither offered nor booked.
func (i Interval) InDay() bool {
	return i.Start.Valid() && i.End.Valid()
}

// Overlaps is false for intervals that only touch at a boundary.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && i.End > o.Start
}

func HasConflict(candidate Interval, booked []Interval) bool {
	for _, b := range booked {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}

// FilterConflicts keeps the slots whose [slot, slot+d) is free and ends
// before midnight.
func FilterConflicts(slots []TimeOfDay, d time.Duration, booked []Interval) []TimeOfDay {
	out := make([]TimeOfDay, 0, len(slots))
	for _, s := range slots {
		iv := IntervalAt(s, d)
		if iv.InDay() && !HasConflict(iv, booked) {
			out = append(out, s)
		}
	}
	return out
}
