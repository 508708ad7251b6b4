package appointment

import (
	"context"

	"github.com/devCaiqueWS/barber-scheduler/internal/audit"
	domain "github.com/devCaiqueWS/barber-scheduler/internal/domain/appointment"
	"github.com/devCaiqueWS/barber-scheduler/internal/httperr"
	"github.com/devCaiqueWS/barber-scheduler/internal/models"
	"github.com/devCaiqueWS/barber-scheduler/internal/timezone"
)

type CompleteAppointment struct {
	repo     domain.Repository
	settings SettingsSource
	clock    timezone.Clock
	audit    audit.Recorder
}

func NewCompleteAppointment(
	repo domain.Repository,
	settings SettingsSource,
	clock timezone.Clock,
	audit audit.Recorder,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:     repo,
		settings: settings,
		clock:    clock,
		audit:    audit,
	}
}

// Execute closes a confirmed appointment. A completed appointment keeps its
// place in the agenda.
func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, notFoundAs(err, httperr.CodeBarbershopNotFound)
	}

	ap, err := uc.repo.GetAppointmentForBarber(ctx, appointmentID, barberID)
	if err != nil {
		return nil, notFoundAs(err, httperr.CodeAppointmentNotFound)
	}

	now := uc.clock.NowIn(shop.Timezone, uc.settings.FallbackTimezone())
	if err := domain.Complete(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		BarberID:     &barberID,
		Action:       audit.ActionAppointmentCompleted,
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}
