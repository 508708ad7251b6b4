package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Date  string   `validate:"required,isodate"`
	Start string   `validate:"required,hhmm"`
	Slots []string `validate:"omitempty,dive,hhmm"`
	Phone string   `validate:"omitempty,phone"`
}

func TestRegister(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	assert.NoError(t, v.Struct(sample{Date: "2026-03-10", Start: "09:30", Slots: []string{"10:00"}, Phone: "+55 (11) 99999-0000"}))

	err := v.Struct(sample{Date: "2026-02-30", Start: "09:30"})
	require.Error(t, err)
	assert.Equal(t, "date must be YYYY-MM-DD", FormatFirst(err))

	err = v.Struct(sample{Date: "2026-03-10", Start: "9h30"})
	assert.Equal(t, "start must be HH:MM", FormatFirst(err))

	err = v.Struct(sample{Date: "2026-03-10", Start: "09:30", Slots: []string{"10:00", "24:00"}})
	assert.Error(t, err)

	err = v.Struct(sample{Date: "2026-03-10", Start: "09:30", Phone: "12"})
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "+5511999990000", NormalizePhone(" +55 (11) 99999-0000 "))
	assert.Equal(t, "11999990000", NormalizePhone("11.99999.0000"))
	assert.Equal(t, "ana@x.com", NormalizeEmail("  Ana@X.com "))
}

func TestFormatFirst_NotValidation(t *testing.T) {
	assert.Equal(t, "malformed request body", FormatFirst(assert.AnError))
}
