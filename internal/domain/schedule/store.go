package schedule

import "context"

// UpdateFunc receives the stored override (nil if none) and returns the value
// to persist. Returning nil deletes the row.
type UpdateFunc func(current *DayOverride) (*DayOverride, error)

// OverrideStore persists day overrides, at most one per (barber, date).
type OverrideStore interface {
	GetDayOverride(
		ctx context.Context,
		barberID uint,
		date Date,
	) (*DayOverride, error)

	// UpdateDayOverride runs fn while holding the row for (barberID, date),
	// so concurrent updates of the same day are serialized.
	UpdateDayOverride(
		ctx context.Context,
		barberID uint,
		date Date,
		fn UpdateFunc,
	) (*DayOverride, error)

	DeleteDayOverride(
		ctx context.Context,
		barberID uint,
		date Date,
	) error
}
