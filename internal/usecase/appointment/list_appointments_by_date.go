package appointment

import (
	"context"

	domain "github.com/devCaiqueWS/barber-scheduler/internal/domain/appointment"
	"github.com/devCaiqueWS/barber-scheduler/internal/dto"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

// Execute lists every appointment of the day, cancelled ones included.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	barberID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListAppointmentsForDay(ctx, barberID, day)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:            ap.ID,
			Date:          ap.Date,
			StartTime:     ap.StartTime,
			EndTime:       ap.EndTime,
			Status:        ap.Status,
			ClientName:    ap.ClientName,
			ProductName:   ap.BarberProduct.Name,
			PaymentMethod: ap.PaymentMethod,
			Notes:         ap.Notes,
		})
	}

	return out, nil
}
