package override

import (
	"context"

	"github.com/devCaiqueWS/barber-scheduler/internal/audit"
	"github.com/devCaiqueWS/barber-scheduler/internal/domain/schedule"
	"github.com/devCaiqueWS/barber-scheduler/internal/httperr"
	"github.com/devCaiqueWS/barber-scheduler/internal/infra/lock"
)

type SetDayOverrideInput struct {
	BarbershopID uint
	BarberID     uint
	Date         string

	IsDayBlocked   *bool
	AvailableSlots []string
	BlockedSlots   []string

	// Mode is "merge" (default) or "replace" and only affects AvailableSlots.
	Mode string
}

type SetDayOverride struct {
	barbers BarberFinder
	store   schedule.OverrideStore
	locker  lock.Locker
	audit   audit.Recorder
}

func NewSetDayOverride(
	barbers BarberFinder,
	store schedule.OverrideStore,
	locker lock.Locker,
	audit audit.Recorder,
) *SetDayOverride {
	return &SetDayOverride{
		barbers: barbers,
		store:   store,
		locker:  locker,
		audit:   audit,
	}
}

func (uc *SetDayOverride) Execute(
	ctx context.Context,
	in SetDayOverrideInput,
) (*DayOverrideOutput, error) {

	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	patch := schedule.OverridePatch{
		IsDayBlocked: in.IsDayBlocked,
		Mode:         schedule.PatchMode(in.Mode),
	}
	if patch.Mode == "" {
		patch.Mode = schedule.ModeMerge
	}
	if !patch.Mode.Valid() {
		return nil, httperr.ErrBusinessf(httperr.CodeInvalidInput, "mode must be merge or replace")
	}

	if in.AvailableSlots != nil {
		if patch.AvailableSlots, err = schedule.ParseSlots(in.AvailableSlots); err != nil {
			return nil, httperr.ErrBusinessf(httperr.CodeInvalidInput, "available_slots: "+err.Error())
		}
	}
	if patch.BlockedSlots, err = schedule.ParseSlots(in.BlockedSlots); err != nil {
		return nil, httperr.ErrBusinessf(httperr.CodeInvalidInput, "blocked_slots: "+err.Error())
	}

	if err := checkBarber(ctx, uc.barbers, in.BarbershopID, in.BarberID); err != nil {
		return nil, err
	}

	release, err := lockDay(ctx, uc.locker, in.BarberID, date)
	if err != nil {
		return nil, err
	}
	defer release()

	saved, err := uc.store.UpdateDayOverride(ctx, in.BarberID, date,
		func(current *schedule.DayOverride) (*schedule.DayOverride, error) {
			next := schedule.ApplyPatch(current, patch)
			return &next, nil
		},
	)
	if err != nil {
		return nil, err
	}

	out := toOutput(date, saved)

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		BarberID:     &in.BarberID,
		Action:       audit.ActionOverrideUpdated,
		Entity:       "day_override",
		Metadata:     out,
	})

	return out, nil
}
