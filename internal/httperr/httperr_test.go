package httperr

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsBusiness_Wrapped(t *testing.T) {
	err := fmt.Errorf("create booking: %w", ErrBusinessf(CodeSlotUnavailable, "10:00 taken"))

	assert.True(t, IsBusiness(err, CodeSlotUnavailable))
	assert.False(t, IsBusiness(err, CodeInvalidInput))
	assert.Equal(t, CodeSlotUnavailable, CodeOf(err))
	assert.Equal(t, "", CodeOf(fmt.Errorf("plain")))
	assert.Equal(t, "slot_unavailable: 10:00 taken", ErrBusinessf(CodeSlotUnavailable, "10:00 taken").Error())
}

func TestIsExclusionConflict(t *testing.T) {
	assert.True(t, IsExclusionConflict(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsExclusionConflict(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"})))
	assert.False(t, IsExclusionConflict(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsExclusionConflict(fmt.Errorf("boom")))
}

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		body   string
	}{
		{ErrBusiness(CodeSlotUnavailable), http.StatusConflict, `{"error_code":"slot_unavailable","message":"Time slot is not available."}`},
		{ErrBusinessf(CodeInvalidInput, "date must be YYYY-MM-DD"), http.StatusBadRequest, `{"error_code":"invalid_input","message":"date must be YYYY-MM-DD"}`},
		{fmt.Errorf("wrap: %w", ErrBusiness(CodeServiceNotFound)), http.StatusNotFound, `{"error_code":"service_not_found","message":"Service not found."}`},
		{fmt.Errorf("connection reset"), http.StatusInternalServerError, `{"error_code":"internal_error","message":"Unexpected error."}`},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		FromError(c, tc.err)

		assert.Equal(t, tc.status, w.Code, tc.err.Error())
		assert.JSONEq(t, tc.body, w.Body.String())
		assert.True(t, c.IsAborted())
	}
}
