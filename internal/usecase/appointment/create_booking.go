package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/devCaiqueWS/barber-scheduler/internal/audit"
	domain "github.com/devCaiqueWS/barber-scheduler/internal/domain/appointment"
	"github.com/devCaiqueWS/barber-scheduler/internal/domain/schedule"
	"github.com/devCaiqueWS/barber-scheduler/internal/httperr"
	"github.com/devCaiqueWS/barber-scheduler/internal/infra/lock"
	"github.com/devCaiqueWS/barber-scheduler/internal/models"
	"github.com/devCaiqueWS/barber-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	BarbershopID uint
	BarberID     uint

	ProductID uint
	Date      string
	StartTime string

	ClientName  string
	ClientPhone string
	ClientEmail string

	// Status is "pending" or "confirmed"; empty means confirmed.
	Status        string
	PaymentMethod string
	Notes         string

	// EnforceLeadTime applies the same-day lead time to the requested start.
	// Client-facing entry points set it; the barber's own agenda does not.
	EnforceLeadTime bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo      domain.Repository
	overrides schedule.OverrideStore
	locker    lock.Locker
	settings  SettingsSource
	clock     timezone.Clock
	audit     audit.Recorder
	log       *zap.Logger
}

func NewCreateBooking(
	repo domain.Repository,
	overrides schedule.OverrideStore,
	locker lock.Locker,
	settings SettingsSource,
	clock timezone.Clock,
	recorder audit.Recorder,
	log *zap.Logger,
) *CreateBooking {
	return &CreateBooking{
		repo:      repo,
		overrides: overrides,
		locker:    locker,
		settings:  settings,
		clock:     clock,
		audit:     recorder,
		log:       log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Appointment, error) {

	if in.BarberID == 0 || in.ProductID == 0 || in.StartTime == "" || in.Date == "" {
		return nil, httperr.ErrBusinessf(httperr.CodeInvalidInput, "barber, product, date and start_time are required")
	}

	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	start, err := schedule.ParseTimeOfDay(in.StartTime)
	if err != nil {
		return nil, httperr.ErrBusinessf(httperr.CodeInvalidInput, "start_time must be HH:MM")
	}

	status, err := domain.InitialStatus(in.Status)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Barbershop / barber / service
	// --------------------------------------------------
	shop, barber, err := loadShopAndBarber(ctx, uc.repo, in.BarbershopID, in.BarberID)
	if err != nil {
		return nil, err
	}

	product, err := uc.repo.GetProduct(ctx, in.BarbershopID, in.ProductID)
	if err != nil {
		return nil, notFoundAs(err, httperr.CodeServiceNotFound)
	}
	if product.DurationMin <= 0 {
		return nil, httperr.ErrBusinessf(httperr.CodeInvalidInput, "service has no duration")
	}

	candidate := schedule.IntervalAt(start, time.Duration(product.DurationMin)*time.Minute)
	if !candidate.InDay() {
		return nil, httperr.ErrBusinessf(httperr.CodeSlotUnavailable, "service would run past midnight")
	}

	// --------------------------------------------------
	// Shop clock
	// --------------------------------------------------
	settings := uc.settings.Scheduling()
	now := uc.clock.NowIn(shop.Timezone, uc.settings.FallbackTimezone())

	if date.Before(schedule.DateOf(now)) {
		return nil, httperr.ErrBusinessf(httperr.CodeSlotUnavailable, "date is in the past")
	}

	// --------------------------------------------------
	// (barber, date) lock, shared with override writers
	// --------------------------------------------------
	if uc.locker != nil {
		release, err := uc.locker.Lock(ctx, lock.BookingKey(barber.ID, date.String()))
		if err != nil {
			if errors.Is(err, lock.ErrNotAcquired) {
				return nil, httperr.ErrBusinessf(httperr.CodeSlotUnavailable, "agenda is busy, try again")
			}
			return nil, err
		}
		defer release()
	}

	// slot must be offered on that day
	ov, err := uc.overrides.GetDayOverride(ctx, barber.ID, date)
	if err != nil {
		return nil, err
	}

	base, _ := schedule.BaseSlots(date, templateOf(barber, settings), ov, settings.SlotWidth)
	if !schedule.ContainsSlot(base, start) {
		return nil, httperr.ErrBusinessf(httperr.CodeSlotUnavailable, "slot is not offered")
	}

	if in.EnforceLeadTime {
		lead := leadTimeFor(shop, settings)
		if len(schedule.FilterLeadTime([]schedule.TimeOfDay{start}, date, now, lead)) == 0 {
			return nil, httperr.ErrBusinessf(httperr.CodeSlotUnavailable, "slot is too soon")
		}
	}

	ap := &models.Appointment{
		BarbershopID:    shop.ID,
		BarberID:        barber.ID,
		ClientName:      strings.TrimSpace(in.ClientName),
		BarberProductID: product.ID,
		Date:            date.String(),
		StartTime:       candidate.Start.String(),
		EndTime:         candidate.End.String(),
		Status:          string(status),
		PaymentMethod:   in.PaymentMethod,
		Notes:           in.Notes,
	}

	err = uc.repo.Book(ctx, barber.ID, date, func(tx domain.BookingTx) error {
		booked, err := tx.ListBookedAppointments(ctx)
		if err != nil {
			return err
		}

		if schedule.HasConflict(candidate, domain.BookedIntervals(booked)) {
			return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
		}

		client, err := tx.GetOrCreateClient(ctx, shop.ID, ap.ClientName, in.ClientPhone, in.ClientEmail)
		if err != nil {
			return err
		}
		ap.ClientID = client.ID
		if ap.ClientName == "" {
			ap.ClientName = client.Name
		}

		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		if httperr.IsExclusionConflict(err) || httperr.IsBusiness(err, httperr.CodeSlotUnavailable) {
			uc.audit.Dispatch(audit.Event{
				BarbershopID: shop.ID,
				BarberID:     &barber.ID,
				Action:       audit.ActionAppointmentConflict,
				Entity:       "appointment",
				Metadata: map[string]string{
					"date":       ap.Date,
					"start_time": ap.StartTime,
					"end_time":   ap.EndTime,
				},
			})
			return nil, httperr.ErrBusiness(httperr.CodeSlotUnavailable)
		}
		return nil, err
	}

	// --------------------------------------------------
	// Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		BarberID:     &barber.ID,
		Action:       audit.ActionAppointmentCreated,
		Entity:       "appointment",
		EntityID:     &ap.ID,
		Metadata: map[string]string{
			"date":       ap.Date,
			"start_time": ap.StartTime,
			"end_time":   ap.EndTime,
			"status":     ap.Status,
		},
	})

	uc.log.Info("appointment booked",
		zap.Uint("appointment_id", ap.ID),
		zap.Uint("barber_id", barber.ID),
		zap.String("date", ap.Date),
		zap.String("start_time", ap.StartTime),
	)

	return ap, nil
}
