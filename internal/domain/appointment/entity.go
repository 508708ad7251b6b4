package appointment

import (
	"time"

	"github.com/devCaiqueWS/barber-scheduler/internal/domain/schedule"
	"github.com/devCaiqueWS/barber-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// BookedIntervals converts the non-cancelled appointments of one day into the
// intervals the conflict detector works with. Rows with unreadable times are
// skipped.
func BookedIntervals(aps []models.Appointment) []schedule.Interval {
	out := make([]schedule.Interval, 0, len(aps))
	for _, ap := range aps {
		if !Status(ap.Status).HoldsTime() {
			continue
		}
		start, err := schedule.ParseTimeOfDay(ap.StartTime)
		if err != nil {
			continue
		}
		end, err := schedule.ParseTimeOfDay(ap.EndTime)
		if err != nil {
			continue
		}
		out = append(out, schedule.Interval{Start: start, End: end})
	}
	return out
}
