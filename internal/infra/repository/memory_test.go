package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devCaiqueWS/barber-scheduler/internal/audit"
	domain "github.com/devCaiqueWS/barber-scheduler/internal/domain/appointment"
	"github.com/devCaiqueWS/barber-scheduler/internal/domain/schedule"
	"github.com/devCaiqueWS/barber-scheduler/internal/httperr"
	"github.com/devCaiqueWS/barber-scheduler/internal/models"
)

const day schedule.Date = "2026-03-10"

func seeded(t *testing.T) (*MemoryStore, models.Barbershop, models.Barber) {
	t.Helper()
	m := NewMemoryStore()
	shop := m.AddBarbershop(models.Barbershop{Name: "Navalha", Slug: "navalha", Timezone: "UTC"})
	barber := m.AddBarber(models.Barber{BarbershopID: shop.ID, Name: "Rafa", Active: true})
	return m, shop, barber
}

func appointmentAt(shop models.Barbershop, barber models.Barber, start, end string) *models.Appointment {
	return &models.Appointment{
		BarbershopID: shop.ID,
		BarberID:     barber.ID,
		Date:         day.String(),
		StartTime:    start,
		EndTime:      end,
		Status:       string(domain.StatusConfirmed),
	}
}

// ======================================================
// Booking
// ======================================================

func TestMemoryBook_CommitsOnSuccess(t *testing.T) {
	m, shop, barber := seeded(t)
	ctx := context.Background()

	ap := appointmentAt(shop, barber, "10:00", "10:30")
	err := m.Book(ctx, barber.ID, day, func(tx domain.BookingTx) error {
		c, err := tx.GetOrCreateClient(ctx, shop.ID, "Joana", "+5511999990000", "")
		if err != nil {
			return err
		}
		ap.ClientID = c.ID
		return tx.CreateAppointment(ctx, ap)
	})
	require.NoError(t, err)
	assert.NotZero(t, ap.ID)

	booked, err := m.ListBookedAppointmentsForDay(ctx, barber.ID, day)
	require.NoError(t, err)
	require.Len(t, booked, 1)
	assert.Equal(t, ap.ClientID, booked[0].ClientID)
}

func TestMemoryBook_RollsBackOnError(t *testing.T) {
	m, shop, barber := seeded(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := m.Book(ctx, barber.ID, day, func(tx domain.BookingTx) error {
		if _, err := tx.GetOrCreateClient(ctx, shop.ID, "Joana", "+5511999990000", ""); err != nil {
			return err
		}
		if err := tx.CreateAppointment(ctx, appointmentAt(shop, barber, "10:00", "10:30")); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	booked, err := m.ListAppointmentsForDay(ctx, barber.ID, day)
	require.NoError(t, err)
	assert.Empty(t, booked)

	m.mu.RLock()
	defer m.mu.RUnlock()
	assert.Empty(t, m.clients, "the client is dropped with the appointment")
}

func TestMemoryBook_UniqueStartCheckedAtCommit(t *testing.T) {
	m, shop, barber := seeded(t)
	ctx := context.Background()

	ap := appointmentAt(shop, barber, "10:00", "10:30")
	err := m.Book(ctx, barber.ID, day, func(tx domain.BookingTx) error {
		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}
		// a writer outside the booking lock takes the same start first
		m.InsertAppointment(*appointmentAt(shop, barber, "10:00", "11:00"))
		return nil
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))

	all, err := m.ListAppointmentsForDay(ctx, barber.ID, day)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "11:00", all[0].EndTime)
}

func TestMemoryBook_CancelledStartIsFree(t *testing.T) {
	m, shop, barber := seeded(t)
	ctx := context.Background()

	cancelled := appointmentAt(shop, barber, "10:00", "10:30")
	cancelled.Status = string(domain.StatusCancelled)
	m.InsertAppointment(*cancelled)

	err := m.Book(ctx, barber.ID, day, func(tx domain.BookingTx) error {
		return tx.CreateAppointment(ctx, appointmentAt(shop, barber, "10:00", "10:30"))
	})
	require.NoError(t, err)

	booked, err := m.ListBookedAppointmentsForDay(ctx, barber.ID, day)
	require.NoError(t, err)
	assert.Len(t, booked, 1)
}

func TestMemoryBook_RejectsAppointmentOutsideScope(t *testing.T) {
	m, shop, barber := seeded(t)
	ctx := context.Background()

	other := appointmentAt(shop, barber, "10:00", "10:30")
	other.Date = "2026-03-11"

	err := m.Book(ctx, barber.ID, day, func(tx domain.BookingTx) error {
		return tx.CreateAppointment(ctx, other)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside of booking scope")
}

func TestMemoryGetOrCreateClient_Matching(t *testing.T) {
	m, shop, barber := seeded(t)
	ctx := context.Background()

	var byPhone, byEmail, again, walkIn1, walkIn2 *models.Client
	require.NoError(t, m.Book(ctx, barber.ID, day, func(tx domain.BookingTx) error {
		var err error
		byPhone, err = tx.GetOrCreateClient(ctx, shop.ID, "Joana", " +5511999990000 ", "")
		return err
	}))
	require.NoError(t, m.Book(ctx, barber.ID, day, func(tx domain.BookingTx) error {
		var err error
		if again, err = tx.GetOrCreateClient(ctx, shop.ID, "Jo", "+5511999990000", "jo@example.com"); err != nil {
			return err
		}
		if byEmail, err = tx.GetOrCreateClient(ctx, shop.ID, "Ana", "", " Ana@Example.com "); err != nil {
			return err
		}
		if walkIn1, err = tx.GetOrCreateClient(ctx, shop.ID, "Walk", "", ""); err != nil {
			return err
		}
		walkIn2, err = tx.GetOrCreateClient(ctx, shop.ID, "Walk", "", "")
		return err
	}))

	assert.Equal(t, byPhone.ID, again.ID)
	assert.Equal(t, "+5511999990000", byPhone.Phone)
	assert.Equal(t, "ana@example.com", byEmail.Email)
	assert.NotEqual(t, walkIn1.ID, walkIn2.ID, "walk-ins are never merged")
	assert.True(t, strings.HasSuffix(walkIn1.Email, "@placeholder.local"))
}

// ======================================================
// Day overrides
// ======================================================

func TestMemoryUpdateDayOverride_EmptyIsDeleted(t *testing.T) {
	m, _, barber := seeded(t)
	ctx := context.Background()

	saved, err := m.UpdateDayOverride(ctx, barber.ID, day, func(cur *schedule.DayOverride) (*schedule.DayOverride, error) {
		assert.Nil(t, cur)
		return &schedule.DayOverride{BlockedSlots: []schedule.TimeOfDay{schedule.MustParseTimeOfDay("10:00")}}, nil
	})
	require.NoError(t, err)
	require.NotNil(t, saved)

	saved, err = m.UpdateDayOverride(ctx, barber.ID, day, func(cur *schedule.DayOverride) (*schedule.DayOverride, error) {
		require.NotNil(t, cur)
		return &schedule.DayOverride{}, nil
	})
	require.NoError(t, err)
	assert.Nil(t, saved)

	stored, err := m.GetDayOverride(ctx, barber.ID, day)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestMemoryUpdateDayOverride_ErrorKeepsCurrent(t *testing.T) {
	m, _, barber := seeded(t)
	ctx := context.Background()
	blocked := []schedule.TimeOfDay{schedule.MustParseTimeOfDay("10:00")}

	_, err := m.UpdateDayOverride(ctx, barber.ID, day, func(*schedule.DayOverride) (*schedule.DayOverride, error) {
		return &schedule.DayOverride{BlockedSlots: blocked}, nil
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = m.UpdateDayOverride(ctx, barber.ID, day, func(*schedule.DayOverride) (*schedule.DayOverride, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	stored, err := m.GetDayOverride(ctx, barber.ID, day)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, blocked, stored.BlockedSlots)
}

func TestMemoryDeleteDayOverride_WaitsForUpdateInFlight(t *testing.T) {
	m, _, barber := seeded(t)
	ctx := context.Background()

	entered := make(chan struct{})
	proceed := make(chan struct{})
	updated := make(chan error, 1)
	go func() {
		_, err := m.UpdateDayOverride(ctx, barber.ID, day, func(*schedule.DayOverride) (*schedule.DayOverride, error) {
			close(entered)
			<-proceed
			return &schedule.DayOverride{IsDayBlocked: true}, nil
		})
		updated <- err
	}()
	<-entered

	deleted := make(chan error, 1)
	go func() { deleted <- m.DeleteDayOverride(ctx, barber.ID, day) }()

	select {
	case <-deleted:
		t.Fatal("delete ran while an update held the day")
	case <-time.After(50 * time.Millisecond):
	}

	close(proceed)
	require.NoError(t, <-updated)
	require.NoError(t, <-deleted)

	stored, err := m.GetDayOverride(ctx, barber.ID, day)
	require.NoError(t, err)
	assert.Nil(t, stored, "the later clear wins")
}

func TestMemoryDeleteDayOverride_HonoursContext(t *testing.T) {
	m, _, barber := seeded(t)

	entered := make(chan struct{})
	proceed := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = m.UpdateDayOverride(context.Background(), barber.ID, day, func(*schedule.DayOverride) (*schedule.DayOverride, error) {
			close(entered)
			<-proceed
			return nil, nil
		})
	}()
	<-entered

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, m.DeleteDayOverride(ctx, barber.ID, day))

	close(proceed)
	<-done
}

// ======================================================
// Audit
// ======================================================

func TestMemoryListAuditLogs(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	for _, a := range []string{
		audit.ActionAppointmentCreated,
		audit.ActionOverrideUpdated,
		audit.ActionAppointmentCreated,
		audit.ActionAppointmentCreated,
	} {
		require.NoError(t, m.SaveAuditLog(ctx, models.AuditLog{BarbershopID: 1, Action: a, Entity: "appointment"}))
	}
	require.NoError(t, m.SaveAuditLog(ctx, models.AuditLog{BarbershopID: 2, Action: audit.ActionAppointmentCreated}))

	logs, total, err := m.ListAuditLogs(ctx, audit.Query{BarbershopID: 1, Action: audit.ActionAppointmentCreated, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, logs, 2)
	assert.Greater(t, logs[0].ID, logs[1].ID, "newest first")

	logs, total, err = m.ListAuditLogs(ctx, audit.Query{BarbershopID: 1, Action: audit.ActionAppointmentCreated, Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, logs, 1)

	logs, _, err = m.ListAuditLogs(ctx, audit.Query{BarbershopID: 1, Page: 9})
	require.NoError(t, err)
	assert.Empty(t, logs)
}
