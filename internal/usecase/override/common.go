package override

import (
	"context"
	"errors"

	domain "github.com/devCaiqueWS/barber-scheduler/internal/domain/appointment"
	"github.com/devCaiqueWS/barber-scheduler/internal/domain/schedule"
	"github.com/devCaiqueWS/barber-scheduler/internal/httperr"
	"github.com/devCaiqueWS/barber-scheduler/internal/infra/lock"
	"github.com/devCaiqueWS/barber-scheduler/internal/models"
)

// BarberFinder is the part of the appointment repository overrides need.
type BarberFinder interface {
	GetBarber(ctx context.Context, barbershopID, barberID uint) (*models.Barber, error)
}

type DayOverrideOutput struct {
	Date           string   `json:"date"`
	IsDayBlocked   bool     `json:"is_day_blocked"`
	AvailableSlots []string `json:"available_slots"`
	BlockedSlots   []string `json:"blocked_slots"`
}

func toOutput(date schedule.Date, ov *schedule.DayOverride) *DayOverrideOutput {
	out := &DayOverrideOutput{
		Date:           date.String(),
		AvailableSlots: []string{},
		BlockedSlots:   []string{},
	}
	if ov == nil {
		return out
	}
	out.IsDayBlocked = ov.IsDayBlocked
	out.AvailableSlots = schedule.FormatSlots(ov.AvailableSlots)
	out.BlockedSlots = schedule.FormatSlots(ov.BlockedSlots)
	return out
}

func checkBarber(ctx context.Context, barbers BarberFinder, barbershopID, barberID uint) error {
	if _, err := barbers.GetBarber(ctx, barbershopID, barberID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrBusiness(httperr.CodeBarberNotFound)
		}
		return err
	}
	return nil
}

func parseDate(raw string) (schedule.Date, error) {
	d, err := schedule.ParseDate(raw)
	if err != nil {
		return "", httperr.ErrBusinessf(httperr.CodeInvalidInput, "date must be YYYY-MM-DD")
	}
	return d, nil
}

// lockDay holds the booking lock of (barber, date) so an override write and a
// booking for that day never interleave. A nil locker is a no-op.
func lockDay(ctx context.Context, locker lock.Locker, barberID uint, date schedule.Date) (func(), error) {
	if locker == nil {
		return func() {}, nil
	}
	return locker.Lock(ctx, lock.BookingKey(barberID, date.String()))
}
