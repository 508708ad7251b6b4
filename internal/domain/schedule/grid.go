package schedule

import "time"

// Grid returns start, start+width, ... strictly before end.
func Grid(start, end TimeOfDay, width time.Duration) []TimeOfDay {
	if width < time.Minute || start >= end {
		return []TimeOfDay{}
	}

	slots := make([]TimeOfDay, 0, int(end-start)/int(width/time.Minute)+1)
	for cur := start; cur < end; cur = cur.Add(width) {
		slots = append(slots, cur)
	}
	return slots
}
