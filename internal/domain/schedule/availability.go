package schedule

import "time"

// Reason explains an empty day. It is informational, not an error.
type Reason string

const (
	ReasonNone       Reason = ""
	ReasonDayBlocked Reason = "day_blocked"
	ReasonOffWeekday Reason = "off_weekday"
	ReasonPastDate   Reason = "past_date"
)

// DayInput is everything the compositor needs for one barber and one day.
type DayInput struct {
	Date     Date
	Template Template
	Override *DayOverride
	Duration time.Duration
	Booked   []Interval

	Now       time.Time
	LeadTime  time.Duration
	SlotWidth time.Duration
}

type Result struct {
	Slots  []TimeOfDay
	Reason Reason
}

// BaseSlots resolves the candidate list before lead time and conflicts are
// applied: whitelist or grid, minus blocked slots.
func BaseSlots(date Date, tpl Template, ov *DayOverride, width time.Duration) ([]TimeOfDay, Reason) {
	if ov != nil && ov.IsDayBlocked {
		return []TimeOfDay{}, ReasonDayBlocked
	}

	var base []TimeOfDay
	switch {
	case ov != nil && ov.Whitelist():
		base = NormalizeSlots(ov.AvailableSlots)
	case !tpl.Weekdays.Allows(date.Weekday()):
		return []TimeOfDay{}, ReasonOffWeekday
	default:
		base = Grid(tpl.Start, tpl.End, width)
	}

	if ov == nil || len(ov.BlockedSlots) == 0 {
		return base, ReasonNone
	}

	out := make([]TimeOfDay, 0, len(base))
	for _, s := range base {
		if !ov.IsBlocked(s) {
			out = append(out, s)
		}
	}
	return out, ReasonNone
}

// Compose returns the bookable slots for the day in chronological order.
func Compose(in DayInput) Result {
	if in.Date.Before(DateOf(in.Now)) {
		return Result{Slots: []TimeOfDay{}, Reason: ReasonPastDate}
	}

	slots, reason := BaseSlots(in.Date, in.Template, in.Override, in.SlotWidth)
	if reason != ReasonNone {
		return Result{Slots: slots, Reason: reason}
	}

	slots = FilterLeadTime(slots, in.Date, in.Now, in.LeadTime)
	slots = FilterConflicts(slots, in.Duration, in.Booked)

	return Result{Slots: slots}
}
