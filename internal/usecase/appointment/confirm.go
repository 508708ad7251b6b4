package appointment

import (
	"context"

	"github.com/devCaiqueWS/barber-scheduler/internal/audit"
	domain "github.com/devCaiqueWS/barber-scheduler/internal/domain/appointment"
	"github.com/devCaiqueWS/barber-scheduler/internal/httperr"
	"github.com/devCaiqueWS/barber-scheduler/internal/models"
)

type ConfirmAppointment struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewConfirmAppointment(
	repo domain.Repository,
	audit audit.Recorder,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForBarber(ctx, appointmentID, barberID)
	if err != nil {
		return nil, notFoundAs(err, httperr.CodeAppointmentNotFound)
	}

	if err := domain.Confirm(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		BarberID:     &barberID,
		Action:       audit.ActionAppointmentConfirmed,
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}
