package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

// FromError writes err as a JSON error. Business errors get their own status;
// anything else is a 500 and is attached to the context for the request log.
func FromError(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		status, ok := statusByCode[be.Code]
		if ok {
			msg := messageByCode[be.Code]
			if be.Detail != "" {
				msg = be.Detail
			}
			Write(c, status, be.Code, msg)
			return
		}
	}

	_ = c.Error(err)
	Internal(c, CodeInternal, "Unexpected error.")
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func TooManyRequests(c *gin.Context, code, message string) {
	Write(c, http.StatusTooManyRequests, code, message)
}
