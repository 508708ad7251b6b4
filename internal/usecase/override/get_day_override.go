package override

import (
	"context"

	"github.com/devCaiqueWS/barber-scheduler/internal/domain/schedule"
)

type GetDayOverride struct {
	store schedule.OverrideStore
}

func NewGetDayOverride(store schedule.OverrideStore) *GetDayOverride {
	return &GetDayOverride{store: store}
}

// Execute returns an empty override when the day has none.
func (uc *GetDayOverride) Execute(
	ctx context.Context,
	barberID uint,
	date string,
) (*DayOverrideOutput, error) {

	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	ov, err := uc.store.GetDayOverride(ctx, barberID, day)
	if err != nil {
		return nil, err
	}

	return toOutput(day, ov), nil
}
