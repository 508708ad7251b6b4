package schedule

import (
	"fmt"
	"sort"
	"time"
)

// TimeOfDay is a wall-clock time counted in minutes from local midnight.
type TimeOfDay int

const minutesPerDay = 24 * 60

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay accepts "HH:MM" in 24h form.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return NewTimeOfDay(t.Hour(), t.Minute()), nil
}

func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Add returns t shifted by d. The result may leave the day; callers that care
// check Valid.
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return t + TimeOfDay(d/time.Minute)
}

func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < minutesPerDay
}

// FromTime drops the date and location of tm.
func FromTime(tm time.Time) TimeOfDay {
	return NewTimeOfDay(tm.Hour(), tm.Minute())
}

// ParseSlots parses and normalizes a list of "HH:MM" strings.
func ParseSlots(raw []string) ([]TimeOfDay, error) {
	out := make([]TimeOfDay, 0, len(raw))
	for _, s := range raw {
		t, err := ParseTimeOfDay(s)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return NormalizeSlots(out), nil
}

func FormatSlots(slots []TimeOfDay) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	return out
}

// NormalizeSlots returns a sorted copy without duplicates.
func NormalizeSlots(slots []TimeOfDay) []TimeOfDay {
	if len(slots) == 0 {
		return []TimeOfDay{}
	}
	cp := append([]TimeOfDay(nil), slots...)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })

	out := cp[:1]
	for _, s := range cp[1:] {
		if s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return out
}

func ContainsSlot(slots []TimeOfDay, t TimeOfDay) bool {
	for _, s := range slots {
		if s == t {
			return true
		}
	}
	return false
}
