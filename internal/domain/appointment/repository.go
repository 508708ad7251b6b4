package appointment

import (
	"context"
	"errors"

	"github.com/devCaiqueWS/barber-scheduler/internal/domain/schedule"
	"github.com/devCaiqueWS/barber-scheduler/internal/models"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("record not found")

type Repository interface {
	// -------- Barbershop / Barber --------
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	GetBarbershopBySlug(
		ctx context.Context,
		slug string,
	) (*models.Barbershop, error)

	GetBarber(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
	) (*models.Barber, error)

	UpdateBarber(
		ctx context.Context,
		barber *models.Barber,
	) error

	// -------- Product --------
	GetProduct(
		ctx context.Context,
		barbershopID uint,
		productID uint,
	) (*models.BarberProduct, error)

	// -------- Availability (non-cancelled only) --------
	ListBookedAppointmentsForDay(
		ctx context.Context,
		barberID uint,
		date schedule.Date,
	) ([]models.Appointment, error)

	// -------- Appointment (create / conflict) --------

	// Book runs fn in a transaction that holds the (barberID, date) booking
	// lock. No other Book call for the same key runs concurrently.
	Book(
		ctx context.Context,
		barberID uint,
		date schedule.Date,
		fn func(tx BookingTx) error,
	) error

	// -------- Appointment (state change / listing) --------
	GetAppointmentForBarber(
		ctx context.Context,
		appointmentID uint,
		barberID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsForDay(
		ctx context.Context,
		barberID uint,
		date schedule.Date,
	) ([]models.Appointment, error)
}

// BookingTx is the view of the store available inside Book.
type BookingTx interface {
	ListBookedAppointments(ctx context.Context) ([]models.Appointment, error)

	GetOrCreateClient(
		ctx context.Context,
		barbershopID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error
}
