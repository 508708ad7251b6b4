package httperr

import (
	"errors"
	"net/http"
)

const (
	CodeInvalidInput        = "invalid_input"
	CodeServiceNotFound     = "service_not_found"
	CodeBarberNotFound      = "barber_not_found"
	CodeBarbershopNotFound  = "barbershop_not_found"
	CodeAppointmentNotFound = "appointment_not_found"
	CodeSlotUnavailable     = "slot_unavailable"
	CodeInvalidState        = "invalid_state"
	CodeInternal            = "internal_error"
)

var statusByCode = map[string]int{
	CodeInvalidInput:        http.StatusBadRequest,
	CodeServiceNotFound:     http.StatusNotFound,
	CodeBarberNotFound:      http.StatusNotFound,
	CodeBarbershopNotFound:  http.StatusNotFound,
	CodeAppointmentNotFound: http.StatusNotFound,
	CodeSlotUnavailable:     http.StatusConflict,
	CodeInvalidState:        http.StatusBadRequest,
}

var messageByCode = map[string]string{
	CodeInvalidInput:        "Invalid request.",
	CodeServiceNotFound:     "Service not found.",
	CodeBarberNotFound:      "Barber not found.",
	CodeBarbershopNotFound:  "Barbershop not found.",
	CodeAppointmentNotFound: "Appointment not found.",
	CodeSlotUnavailable:     "Time slot is not available.",
	CodeInvalidState:        "Appointment cannot change to this status.",
}

type BusinessError struct {
	Code   string
	Detail string
}

func (e BusinessError) Error() string {
	if e.Detail != "" {
		return e.Code + ": " + e.Detail
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessf(code, detail string) error {
	return BusinessError{Code: code, Detail: detail}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// CodeOf returns the business code carried by err, or "".
func CodeOf(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
