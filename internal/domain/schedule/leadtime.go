package schedule

import "time"

// FilterLeadTime drops slots that start before now+lead. With now 09:45 and a
// 30 minute lead 10:15 is still offered; at 09:45:30 it is not. now must
// already be in the barbershop's location. Past dates have no bookable slots.
func FilterLeadTime(slots []TimeOfDay, date Date, now time.Time, lead time.Duration) []TimeOfDay {
	today := DateOf(now)

	switch {
	case date.After(today):
		return slots
	case date.Before(today):
		return []TimeOfDay{}
	}

	// wall clock offset, seconds kept; past midnight every slot is dropped
	cutoff := time.Duration(now.Hour())*time.Hour +
		time.Duration(now.Minute())*time.Minute +
		time.Duration(now.Second())*time.Second +
		time.Duration(now.Nanosecond()) +
		lead

	out := make([]TimeOfDay, 0, len(slots))
	for _, s := range slots {
		if time.Duration(s)*time.Minute >= cutoff {
			out = append(out, s)
		}
	}
	return out
}
