package schedule

import "time"

// Settings are the scheduling knobs the engine is configured with.
type Settings struct {
	SlotWidth    time.Duration
	LeadTime     time.Duration
	DefaultStart TimeOfDay
	DefaultEnd   TimeOfDay
}

func DefaultSettings() Settings {
	return Settings{
		SlotWidth:    30 * time.Minute,
		LeadTime:     30 * time.Minute,
		DefaultStart: NewTimeOfDay(9, 0),
		DefaultEnd:   NewTimeOfDay(18, 0),
	}
}
