package schedule

import "time"

// WeekdaySet is a bitmask over time.Weekday. The zero value means "no
// restriction".
type WeekdaySet uint8

func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		if d >= time.Sunday && d <= time.Saturday {
			s |= 1 << uint(d)
		}
	}
	return s
}

// WeekdaysFromInts ignores values outside 0..6.
func WeekdaysFromInts(days []int) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		if d >= 0 && d <= 6 {
			s |= 1 << uint(d)
		}
	}
	return s
}

func (s WeekdaySet) Empty() bool { return s == 0 }

// Allows reports whether d is a working day. An empty set allows every day.
func (s WeekdaySet) Allows(d time.Weekday) bool {
	return s.Empty() || s&(1<<uint(d)) != 0
}

func (s WeekdaySet) Ints() []int {
	out := []int{}
	for d := 0; d <= 6; d++ {
		if s&(1<<uint(d)) != 0 {
			out = append(out, d)
		}
	}
	return out
}

// Template is a barber's default working pattern.
type Template struct {
	Start    TimeOfDay
	End      TimeOfDay
	Weekdays WeekdaySet
}

// ResolveTemplate builds the template from the stored barber fields. A missing
// or unusable window falls back to the configured default.
func ResolveTemplate(workStart, workEnd string, weekdays []int, s Settings) Template {
	tpl := Template{
		Start:    s.DefaultStart,
		End:      s.DefaultEnd,
		Weekdays: WeekdaysFromInts(weekdays),
	}

	start, errStart := ParseTimeOfDay(workStart)
	end, errEnd := ParseTimeOfDay(workEnd)
	if errStart == nil && errEnd == nil && start < end {
		tpl.Start = start
		tpl.End = end
	}

	return tpl
}
