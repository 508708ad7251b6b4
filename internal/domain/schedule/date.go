package schedule

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day key ("YYYY-MM-DD") in the barbershop's local calendar.
type Date string

func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", fmt.Errorf("invalid date %q", s)
	}
	return Date(s), nil
}

// DateOf returns the calendar day of tm in its own location.
func DateOf(tm time.Time) Date {
	return Date(tm.Format(dateLayout))
}

func (d Date) String() string { return string(d) }

func (d Date) Weekday() time.Weekday {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Sunday
	}
	return t.Weekday()
}

// Before reports whether d is an earlier day than other. Both are in
// canonical form so a lexical comparison is enough.
func (d Date) Before(other Date) bool { return d < other }

func (d Date) After(other Date) bool { return d > other }
