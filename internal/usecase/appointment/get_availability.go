package appointment

import (
	"context"
	"time"

	domain "github.com/devCaiqueWS/barber-scheduler/internal/domain/appointment"
	"github.com/devCaiqueWS/barber-scheduler/internal/domain/schedule"
	"github.com/devCaiqueWS/barber-scheduler/internal/httperr"
	"github.com/devCaiqueWS/barber-scheduler/internal/timezone"
)

type GetAvailabilityInput struct {
	BarbershopID uint
	BarberID     uint
	Date         string

	// DurationMinutes wins over ProductID when both are set.
	DurationMinutes int
	ProductID       uint
}

type AvailabilityOutput struct {
	Date        string          `json:"date"`
	DurationMin int             `json:"duration_min"`
	Slots       []string        `json:"slots"`
	Reason      schedule.Reason `json:"reason,omitempty"`
}

type GetAvailability struct {
	repo      domain.Repository
	overrides schedule.OverrideStore
	settings  SettingsSource
	clock     timezone.Clock
}

func NewGetAvailability(
	repo domain.Repository,
	overrides schedule.OverrideStore,
	settings SettingsSource,
	clock timezone.Clock,
) *GetAvailability {
	return &GetAvailability{
		repo:      repo,
		overrides: overrides,
		settings:  settings,
		clock:     clock,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in GetAvailabilityInput,
) (*AvailabilityOutput, error) {

	if in.BarberID == 0 {
		return nil, httperr.ErrBusinessf(httperr.CodeInvalidInput, "barber is required")
	}

	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	shop, barber, err := loadShopAndBarber(ctx, uc.repo, in.BarbershopID, in.BarberID)
	if err != nil {
		return nil, err
	}

	durationMin := in.DurationMinutes
	if durationMin <= 0 {
		if in.ProductID == 0 {
			return nil, httperr.ErrBusinessf(httperr.CodeInvalidInput, "duration or product is required")
		}
		product, err := uc.repo.GetProduct(ctx, in.BarbershopID, in.ProductID)
		if err != nil {
			return nil, notFoundAs(err, httperr.CodeServiceNotFound)
		}
		durationMin = product.DurationMin
	}
	if durationMin <= 0 {
		return nil, httperr.ErrBusinessf(httperr.CodeInvalidInput, "duration must be positive")
	}

	// --------------------------------------------------
	// Inputs of the day
	// --------------------------------------------------
	settings := uc.settings.Scheduling()

	ov, err := uc.overrides.GetDayOverride(ctx, barber.ID, date)
	if err != nil {
		return nil, err
	}

	aps, err := uc.repo.ListBookedAppointmentsForDay(ctx, barber.ID, date)
	if err != nil {
		return nil, err
	}

	res := schedule.Compose(schedule.DayInput{
		Date:      date,
		Template:  templateOf(barber, settings),
		Override:  ov,
		Duration:  time.Duration(durationMin) * time.Minute,
		Booked:    domain.BookedIntervals(aps),
		Now:       uc.clock.NowIn(shop.Timezone, uc.settings.FallbackTimezone()),
		LeadTime:  leadTimeFor(shop, settings),
		SlotWidth: settings.SlotWidth,
	})

	return &AvailabilityOutput{
		Date:        date.String(),
		DurationMin: durationMin,
		Slots:       schedule.FormatSlots(res.Slots),
		Reason:      res.Reason,
	}, nil
}
