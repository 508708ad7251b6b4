package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/devCaiqueWS/barber-scheduler/internal/domain/appointment"
	"github.com/devCaiqueWS/barber-scheduler/internal/domain/schedule"
	"github.com/devCaiqueWS/barber-scheduler/internal/httperr"
	"github.com/devCaiqueWS/barber-scheduler/internal/infra/lock"
	"github.com/devCaiqueWS/barber-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// --------------------------------------------------
// Barbershop / Barber
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &shop, nil
}

func (r *AppointmentGormRepository) GetBarbershopBySlug(
	ctx context.Context,
	slug string,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&shop).Error; err != nil {
		return nil, notFound(err)
	}
	return &shop, nil
}

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ? AND active = ?", barberID, barbershopID, true).
		First(&barber).Error; err != nil {
		return nil, notFound(err)
	}
	return &barber, nil
}

func (r *AppointmentGormRepository) UpdateBarber(
	ctx context.Context,
	barber *models.Barber,
) error {
	return r.db.WithContext(ctx).
		Model(barber).
		Select("WorkStart", "WorkEnd", "ActiveWeekdays").
		Updates(barber).Error
}

// --------------------------------------------------
// Product
// --------------------------------------------------

func (r *AppointmentGormRepository) GetProduct(
	ctx context.Context,
	barbershopID uint,
	productID uint,
) (*models.BarberProduct, error) {

	var product models.BarberProduct
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ? AND active = ?", productID, barbershopID, true).
		First(&product).Error; err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBookedAppointmentsForDay(
	ctx context.Context,
	barberID uint,
	date schedule.Date,
) ([]models.Appointment, error) {
	return listBooked(r.db.WithContext(ctx), barberID, date, false)
}

func listBooked(db *gorm.DB, barberID uint, date schedule.Date, forUpdate bool) ([]models.Appointment, error) {
	q := db.
		Select("id", "barber_id", "date", "start_time", "end_time", "status").
		Where(
			"barber_id = ? AND date = ? AND status <> ?",
			barberID, date.String(), string(domain.StatusCancelled),
		).
		Order("start_time ASC")

	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var apps []models.Appointment
	if err := q.Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *AppointmentGormRepository) Book(
	ctx context.Context,
	barberID uint,
	date schedule.Date,
	fn func(tx domain.BookingTx) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// serializes every booking of this barber/day across connections
		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(hashtext(?))",
			lock.BookingKey(barberID, date.String()),
		).Error; err != nil {
			return fmt.Errorf("advisory lock: %w", err)
		}

		return fn(&gormBookingTx{tx: tx, barberID: barberID, date: date})
	})
}

type gormBookingTx struct {
	tx       *gorm.DB
	barberID uint
	date     schedule.Date
}

func (t *gormBookingTx) ListBookedAppointments(ctx context.Context) ([]models.Appointment, error) {
	return listBooked(t.tx.WithContext(ctx), t.barberID, t.date, true)
}

func (t *gormBookingTx) GetOrCreateClient(
	ctx context.Context,
	barbershopID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {
	return getOrCreateClient(ctx, t.tx, barbershopID, name, phone, email)
}

func getOrCreateClient(
	ctx context.Context,
	db *gorm.DB,
	barbershopID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	phone = strings.TrimSpace(phone)
	email = strings.ToLower(strings.TrimSpace(email))

	q := db.WithContext(ctx).Where("barbershop_id = ?", barbershopID)
	switch {
	case phone != "":
		q = q.Where("phone = ?", phone)
	case email != "":
		q = q.Where("email = ?", email)
	default:
		q = nil
	}

	var client models.Client
	if q != nil {
		err := q.First(&client).Error
		if err == nil {
			return &client, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	client = models.Client{
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        phone,
		Email:        email,
	}
	if client.Email == "" && client.Phone == "" {
		client.Email = PlaceholderEmail()
	}

	if err := db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (t *gormBookingTx) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	if err := t.tx.WithContext(ctx).Create(ap).Error; err != nil {
		if httperr.IsExclusionConflict(err) {
			return httperr.ErrBusinessf(httperr.CodeSlotUnavailable, "rejected by store constraint")
		}
		return err
	}
	return nil
}

// PlaceholderEmail stands in for walk-in clients that left no contact.
func PlaceholderEmail() string {
	return "walkin-" + uuid.NewString() + "@placeholder.local"
}

// --------------------------------------------------
// Appointment (state change / listing)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentForBarber(
	ctx context.Context,
	appointmentID uint,
	barberID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", appointmentID, barberID).
		First(&ap).Error; err != nil {
		return nil, notFound(err)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Model(ap).
		Select("Status", "CancelledAt", "CompletedAt").
		Updates(ap).Error
}

func (r *AppointmentGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	barberID uint,
	date schedule.Date,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("BarberProduct").
		Where("barber_id = ? AND date = ?", barberID, date.String()).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
