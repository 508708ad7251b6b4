package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/devCaiqueWS/barber-scheduler/internal/httperr"
	"github.com/devCaiqueWS/barber-scheduler/internal/httpresp"
	"github.com/devCaiqueWS/barber-scheduler/internal/middleware"
	"github.com/devCaiqueWS/barber-scheduler/internal/models"
	"github.com/devCaiqueWS/barber-scheduler/internal/usecase/appointment"
	"github.com/devCaiqueWS/barber-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	availability *appointment.GetAvailability
	create       *appointment.CreateBooking
	confirm      *appointment.ConfirmAppointment
	cancel       *appointment.CancelAppointment
	complete     *appointment.CompleteAppointment
	listByDate   *appointment.ListAppointmentsByDate
}

func NewAppointmentHandler(
	availability *appointment.GetAvailability,
	create *appointment.CreateBooking,
	confirm *appointment.ConfirmAppointment,
	cancel *appointment.CancelAppointment,
	complete *appointment.CompleteAppointment,
	listByDate *appointment.ListAppointmentsByDate,
) *AppointmentHandler {
	return &AppointmentHandler{
		availability: availability,
		create:       create,
		confirm:      confirm,
		cancel:       cancel,
		complete:     complete,
		listByDate:   listByDate,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// CreateAppointmentRequest books on the barber's own agenda. Contact details
// are optional for walk-ins.
type CreateAppointmentRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Date      string `json:"date" binding:"required,isodate"`
	StartTime string `json:"start_time" binding:"required,hhmm"`

	ClientName  string `json:"client_name" binding:"required,max=100"`
	ClientPhone string `json:"client_phone" binding:"omitempty,phone"`
	ClientEmail string `json:"client_email" binding:"omitempty,email"`

	Status        string `json:"status" binding:"omitempty,oneof=pending confirmed"`
	PaymentMethod string `json:"payment_method" binding:"max=20"`
	Notes         string `json:"notes" binding:"max=255"`
}

type ListByDateQuery struct {
	Date string `form:"date" binding:"required,isodate"`
}

// ======================================================
// AVAILABILITY
// ======================================================

// GET /api/me/availability
func (h *AppointmentHandler) Availability(c *gin.Context) {
	barberID, barbershopID := middleware.Identity(c)

	var q AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	out, err := h.availability.Execute(c.Request.Context(), appointment.GetAvailabilityInput{
		BarbershopID:    barbershopID,
		BarberID:        barberID,
		Date:            q.Date,
		DurationMinutes: q.Duration,
		ProductID:       q.ProductID,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// CREATE
// ======================================================

// POST /api/me/appointments
func (h *AppointmentHandler) Create(c *gin.Context) {
	barberID, barbershopID := middleware.Identity(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateBookingInput{
		BarbershopID:  barbershopID,
		BarberID:      barberID,
		ProductID:     req.ProductID,
		Date:          req.Date,
		StartTime:     req.StartTime,
		ClientName:    req.ClientName,
		ClientPhone:   validators.NormalizePhone(req.ClientPhone),
		ClientEmail:   validators.NormalizeEmail(req.ClientEmail),
		Status:        req.Status,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST
// ======================================================

// GET /api/me/appointments?date=YYYY-MM-DD
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barberID, _ := middleware.Identity(c)

	var q ListByDateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	list, err := h.listByDate.Execute(c.Request.Context(), barberID, q.Date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, list)
}

// ======================================================
// STATUS CHANGES
// ======================================================

type transitionFunc func(c *gin.Context, barbershopID, barberID, appointmentID uint) (*models.Appointment, error)

func (h *AppointmentHandler) transition(c *gin.Context, fn transitionFunc) {
	barberID, barbershopID := middleware.Identity(c)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	ap, err := fn(c, barbershopID, barberID, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// PATCH /api/me/appointments/:id/confirm
func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, func(c *gin.Context, shopID, barberID, id uint) (*models.Appointment, error) {
		return h.confirm.Execute(c.Request.Context(), shopID, barberID, id)
	})
}

// PATCH /api/me/appointments/:id/cancel
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, func(c *gin.Context, shopID, barberID, id uint) (*models.Appointment, error) {
		return h.cancel.Execute(c.Request.Context(), shopID, barberID, id)
	})
}

// PATCH /api/me/appointments/:id/complete
func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, func(c *gin.Context, shopID, barberID, id uint) (*models.Appointment, error) {
		return h.complete.Execute(c.Request.Context(), shopID, barberID, id)
	})
}
