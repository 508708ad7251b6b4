package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/devCaiqueWS/barber-scheduler/internal/audit"
	"github.com/devCaiqueWS/barber-scheduler/internal/httperr"
	"github.com/devCaiqueWS/barber-scheduler/internal/httpresp"
	"github.com/devCaiqueWS/barber-scheduler/internal/middleware"
	"github.com/devCaiqueWS/barber-scheduler/internal/models"
)

type AuditLogsHandler struct {
	reader audit.Reader
}

func NewAuditLogsHandler(reader audit.Reader) *AuditLogsHandler {
	return &AuditLogsHandler{reader: reader}
}

type AuditLogsQuery struct {
	Action string `form:"action"`
	Entity string `form:"entity"`
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=200"`
}

type AuditLogsResponse struct {
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
	Logs  []models.AuditLog `json:"logs"`
}

// GET /api/me/audit-logs
func (h *AuditLogsHandler) List(c *gin.Context) {
	_, barbershopID := middleware.Identity(c)

	var q AuditLogsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	query := audit.Query{
		BarbershopID: barbershopID,
		Action:       q.Action,
		Entity:       q.Entity,
		Page:         q.Page,
		Limit:        q.Limit,
	}.Normalize()

	logs, total, err := h.reader.ListAuditLogs(c.Request.Context(), query)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	httpresp.OK(c, AuditLogsResponse{
		Page:  query.Page,
		Limit: query.Limit,
		Total: total,
		Logs:  logs,
	})
}
