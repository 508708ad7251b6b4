package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/devCaiqueWS/barber-scheduler/internal/httperr"
	"github.com/devCaiqueWS/barber-scheduler/internal/httpresp"
	"github.com/devCaiqueWS/barber-scheduler/internal/middleware"
	"github.com/devCaiqueWS/barber-scheduler/internal/usecase/override"
)

type DayOverrideHandler struct {
	get    *override.GetDayOverride
	set    *override.SetDayOverride
	remove *override.ClearDayOverride
}

func NewDayOverrideHandler(
	get *override.GetDayOverride,
	set *override.SetDayOverride,
	remove *override.ClearDayOverride,
) *DayOverrideHandler {
	return &DayOverrideHandler{get: get, set: set, remove: remove}
}

type DayOverrideRequest struct {
	IsDayBlocked   *bool    `json:"is_day_blocked"`
	AvailableSlots []string `json:"available_slots" binding:"omitempty,dive,hhmm"`
	BlockedSlots   []string `json:"blocked_slots" binding:"omitempty,dive,hhmm"`
	Mode           string   `json:"mode" binding:"omitempty,oneof=merge replace"`
}

// GET /api/me/overrides/:date
func (h *DayOverrideHandler) Get(c *gin.Context) {
	barberID, _ := middleware.Identity(c)

	out, err := h.get.Execute(c.Request.Context(), barberID, c.Param("date"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, out)
}

// PUT /api/me/overrides/:date
func (h *DayOverrideHandler) Put(c *gin.Context) {
	barberID, barbershopID := middleware.Identity(c)

	var req DayOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	out, err := h.set.Execute(c.Request.Context(), override.SetDayOverrideInput{
		BarbershopID:   barbershopID,
		BarberID:       barberID,
		Date:           c.Param("date"),
		IsDayBlocked:   req.IsDayBlocked,
		AvailableSlots: req.AvailableSlots,
		BlockedSlots:   req.BlockedSlots,
		Mode:           req.Mode,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, out)
}

// DELETE /api/me/overrides/:date[?slot=HH:MM]
//
// With slot, only that blocked slot is re-opened. Without it the whole
// override of the day goes.
func (h *DayOverrideHandler) Delete(c *gin.Context) {
	barberID, barbershopID := middleware.Identity(c)
	slot := c.Query("slot")

	out, err := h.remove.Execute(c.Request.Context(), override.ClearDayOverrideInput{
		BarbershopID: barbershopID,
		BarberID:     barberID,
		Date:         c.Param("date"),
		Slot:         slot,
		ClearDay:     slot == "",
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, out)
}
