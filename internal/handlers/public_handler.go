package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/devCaiqueWS/barber-scheduler/internal/httperr"
	"github.com/devCaiqueWS/barber-scheduler/internal/httpresp"
	"github.com/devCaiqueWS/barber-scheduler/internal/usecase/appointment"
	"github.com/devCaiqueWS/barber-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type PublicHandler struct {
	resolve      *appointment.ResolveBarbershop
	availability *appointment.GetAvailability
	booking      *appointment.CreateBooking
}

func NewPublicHandler(
	resolve *appointment.ResolveBarbershop,
	availability *appointment.GetAvailability,
	booking *appointment.CreateBooking,
) *PublicHandler {
	return &PublicHandler{
		resolve:      resolve,
		availability: availability,
		booking:      booking,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type PublicBookingRequest struct {
	BarberID  uint   `json:"barber_id" binding:"required"`
	ProductID uint   `json:"product_id" binding:"required"`
	Date      string `json:"date" binding:"required,isodate"`
	StartTime string `json:"start_time" binding:"required,hhmm"`

	ClientName  string `json:"client_name" binding:"required,max=100"`
	ClientPhone string `json:"client_phone" binding:"required,phone"`
	ClientEmail string `json:"client_email" binding:"omitempty,email"`

	Status        string `json:"status" binding:"omitempty,oneof=pending confirmed"`
	PaymentMethod string `json:"payment_method" binding:"max=20"`
	Notes         string `json:"notes" binding:"max=255"`
}

// ======================================================
// AVAILABILITY
// ======================================================

// GET /api/public/:slug/barbers/:barberID/availability
func (h *PublicHandler) Availability(c *gin.Context) {
	shop, err := h.resolve.Execute(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	barberID, ok := uintParam(c, "barberID")
	if !ok {
		return
	}

	var q AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	out, err := h.availability.Execute(c.Request.Context(), appointment.GetAvailabilityInput{
		BarbershopID:    shop.ID,
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

// POST /api/public/:slug/appointments
func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	shop, err := h.resolve.Execute(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	var req PublicBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	ap, err := h.booking.Execute(c.Request.Context(), appointment.CreateBookingInput{
		BarbershopID:    shop.ID,
		BarberID:        req.BarberID,
		ProductID:       req.ProductID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		ClientName:      req.ClientName,
		ClientPhone:     validators.NormalizePhone(req.ClientPhone),
		ClientEmail:     validators.NormalizeEmail(req.ClientEmail),
		Status:          req.Status,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
		EnforceLeadTime: true,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, ap)
}
