package appointment

import "github.com/devCaiqueWS/barber-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// HoldsTime reports whether an appointment in this status still occupies the
// barber's agenda. Only cancelled appointments are inert.
func (s Status) HoldsTime() bool {
	return s != StatusCancelled
}

func (s Status) open() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ===============================
// Validations
// ===============================

// InitialStatus resolves the status a new appointment is created with.
// Only pending and confirmed are accepted; empty means confirmed.
func InitialStatus(requested string) (Status, error) {
	switch Status(requested) {
	case "":
		return StatusConfirmed, nil
	case StatusPending, StatusConfirmed:
		return Status(requested), nil
	}
	return "", httperr.ErrBusinessf(httperr.CodeInvalidInput, "status must be pending or confirmed")
}

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func CanCancel(current Status) error {
	if !current.open() {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}
