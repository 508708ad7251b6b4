package override

import (
	"context"

	"github.com/devCaiqueWS/barber-scheduler/internal/audit"
	"github.com/devCaiqueWS/barber-scheduler/internal/domain/schedule"
	"github.com/devCaiqueWS/barber-scheduler/internal/httperr"
	"github.com/devCaiqueWS/barber-scheduler/internal/infra/lock"
)

type ClearDayOverrideInput struct {
	BarbershopID uint
	BarberID     uint
	Date         string

	// Slot re-opens one blocked slot. ClearDay drops the whole override.
	Slot     string
	ClearDay bool
}

type ClearDayOverride struct {
	barbers BarberFinder
	store   schedule.OverrideStore
	locker  lock.Locker
	audit   audit.Recorder
}

func NewClearDayOverride(
	barbers BarberFinder,
	store schedule.OverrideStore,
	locker lock.Locker,
	audit audit.Recorder,
) *ClearDayOverride {
	return &ClearDayOverride{
		barbers: barbers,
		store:   store,
		locker:  locker,
		audit:   audit,
	}
}

// Execute returns the override left in place, empty when nothing remains.
func (uc *ClearDayOverride) Execute(
	ctx context.Context,
	in ClearDayOverrideInput,
) (*DayOverrideOutput, error) {

	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	if in.ClearDay == (in.Slot != "") {
		return nil, httperr.ErrBusinessf(httperr.CodeInvalidInput, "give exactly one of slot or clear_day")
	}

	var slot schedule.TimeOfDay
	if in.Slot != "" {
		if slot, err = schedule.ParseTimeOfDay(in.Slot); err != nil {
			return nil, httperr.ErrBusinessf(httperr.CodeInvalidInput, "slot must be HH:MM")
		}
	}

	if err := checkBarber(ctx, uc.barbers, in.BarbershopID, in.BarberID); err != nil {
		return nil, err
	}

	release, err := lockDay(ctx, uc.locker, in.BarberID, date)
	if err != nil {
		return nil, err
	}
	defer release()

	var remaining *schedule.DayOverride
	if in.ClearDay {
		err = uc.store.DeleteDayOverride(ctx, in.BarberID, date)
	} else {
		remaining, err = uc.store.UpdateDayOverride(ctx, in.BarberID, date,
			func(current *schedule.DayOverride) (*schedule.DayOverride, error) {
				if current == nil {
					return nil, nil
				}
				next := schedule.RemoveBlockedSlot(*current, slot)
				return &next, nil
			},
		)
	}
	if err != nil {
		return nil, err
	}

	out := toOutput(date, remaining)

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		BarberID:     &in.BarberID,
		Action:       audit.ActionOverrideCleared,
		Entity:       "day_override",
		Metadata: map[string]any{
			"date":      date.String(),
			"slot":      in.Slot,
			"clear_day": in.ClearDay,
		},
	})

	return out, nil
}
