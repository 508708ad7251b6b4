package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/devCaiqueWS/barber-scheduler/internal/httperr"
	"github.com/devCaiqueWS/barber-scheduler/internal/validators"
)

func bindFailed(c *gin.Context, err error) {
	httperr.BadRequest(c, httperr.CodeInvalidInput, validators.FormatFirst(err))
}

// uintParam reads a positive numeric path parameter. It writes the 400
// itself and returns false when the value is unusable.
func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, httperr.CodeInvalidInput, name+" must be a positive integer")
		return 0, false
	}
	return uint(v), true
}

// AvailabilityQuery is shared by the public and the barber availability
// routes. Either duration or product_id must be given.
type AvailabilityQuery struct {
	Date      string `form:"date" binding:"required,isodate"`
	Duration  int    `form:"duration" binding:"omitempty,min=1,max=1440"`
	ProductID uint   `form:"product_id"`
}
