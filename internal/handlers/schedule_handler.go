package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/devCaiqueWS/barber-scheduler/internal/httperr"
	"github.com/devCaiqueWS/barber-scheduler/internal/httpresp"
	"github.com/devCaiqueWS/barber-scheduler/internal/middleware"
	"github.com/devCaiqueWS/barber-scheduler/internal/usecase/barber"
)

type ScheduleHandler struct {
	get    *barber.GetSchedule
	update *barber.UpdateSchedule
}

func NewScheduleHandler(get *barber.GetSchedule, update *barber.UpdateSchedule) *ScheduleHandler {
	return &ScheduleHandler{get: get, update: update}
}

// ScheduleRequest replaces the weekly template. Empty times fall back to the
// configured window and an empty weekday list to the default week.
type ScheduleRequest struct {
	WorkStart      string `json:"work_start" binding:"omitempty,hhmm"`
	WorkEnd        string `json:"work_end" binding:"omitempty,hhmm"`
	ActiveWeekdays []int  `json:"active_weekdays" binding:"omitempty,dive,min=0,max=6"`
}

// GET /api/me/schedule
func (h *ScheduleHandler) Get(c *gin.Context) {
	barberID, barbershopID := middleware.Identity(c)

	out, err := h.get.Execute(c.Request.Context(), barbershopID, barberID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, out)
}

// PUT /api/me/schedule
func (h *ScheduleHandler) Update(c *gin.Context) {
	barberID, barbershopID := middleware.Identity(c)

	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	out, err := h.update.Execute(c.Request.Context(), barber.UpdateScheduleInput{
		BarbershopID:   barbershopID,
		BarberID:       barberID,
		WorkStart:      req.WorkStart,
		WorkEnd:        req.WorkEnd,
		ActiveWeekdays: req.ActiveWeekdays,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, out)
}
