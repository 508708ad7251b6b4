package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves tz, then fallback, then UTC.
func Location(tz, fallback string) *time.Location {
	for _, name := range []string{tz, fallback, DefaultTimezone} {
		if IsValid(name) {
			if loc, err := time.LoadLocation(name); err == nil {
				return loc
			}
		}
	}
	return time.UTC
}

// Clock is the source of "now". Tests pin it.
type Clock func() time.Time

func SystemClock() time.Time { return time.Now() }

func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

// NowIn returns the clock's instant in the shop's location.
func (c Clock) NowIn(tz, fallback string) time.Time {
	if c == nil {
		c = SystemClock
	}
	return c().In(Location(tz, fallback))
}
