//go:build integration

package repository

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/devCaiqueWS/barber-scheduler/internal/config"
	"github.com/devCaiqueWS/barber-scheduler/internal/db"
	domain "github.com/devCaiqueWS/barber-scheduler/internal/domain/appointment"
	"github.com/devCaiqueWS/barber-scheduler/internal/domain/schedule"
	"github.com/devCaiqueWS/barber-scheduler/internal/httperr"
	"github.com/devCaiqueWS/barber-scheduler/internal/models"
)

// Run with: TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/infra/repository/

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb, &config.Config{ShopTimezone: "UTC"}))

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return gdb
}

type pgFixture struct {
	repo    *AppointmentGormRepository
	ovr     *OverrideGormRepository
	shop    models.Barbershop
	barber  models.Barber
	product models.BarberProduct
}

// newPGFixture creates a fresh shop per test so runs never share rows.
func newPGFixture(t *testing.T) *pgFixture {
	gdb := openTestDB(t)

	shop := models.Barbershop{Name: "Navalha", Slug: "navalha-" + uuid.NewString(), Timezone: "UTC"}
	require.NoError(t, gdb.Create(&shop).Error)
	barber := models.Barber{BarbershopID: shop.ID, Name: "Rafa", Active: true}
	require.NoError(t, gdb.Create(&barber).Error)
	product := models.BarberProduct{BarbershopID: shop.ID, Name: "Corte", DurationMin: 30, Active: true}
	require.NoError(t, gdb.Create(&product).Error)

	return &pgFixture{
		repo:    NewAppointmentGormRepository(gdb),
		ovr:     NewOverrideGormRepository(gdb),
		shop:    shop,
		barber:  barber,
		product: product,
	}
}

func (f *pgFixture) book(ctx context.Context, start, end, phone string, check bool) error {
	return f.repo.Book(ctx, f.barber.ID, day, func(tx domain.BookingTx) error {
		if check {
			booked, err := tx.ListBookedAppointments(ctx)
			if err != nil {
				return err
			}
			candidate := schedule.Interval{
				Start: schedule.MustParseTimeOfDay(start),
				End:   schedule.MustParseTimeOfDay(end),
			}
			if schedule.HasConflict(candidate, domain.BookedIntervals(booked)) {
				return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
			}
		}

		client, err := tx.GetOrCreateClient(ctx, f.shop.ID, "Joana", phone, "")
		if err != nil {
			return err
		}

		return tx.CreateAppointment(ctx, &models.Appointment{
			BarbershopID:    f.shop.ID,
			BarberID:        f.barber.ID,
			ClientID:        client.ID,
			BarberProductID: f.product.ID,
			Date:            day.String(),
			StartTime:       start,
			EndTime:         end,
			Status:          string(domain.StatusConfirmed),
		})
	})
}

func TestGormBook_LiveStartIndex(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()

	require.NoError(t, f.book(ctx, "10:00", "10:30", "+5511999990000", false))

	// without the conflict check only the unique index stands in the way
	err := f.book(ctx, "10:00", "10:30", "+5511999990001", false)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))

	booked, err := f.repo.ListBookedAppointmentsForDay(ctx, f.barber.ID, day)
	require.NoError(t, err)
	require.Len(t, booked, 1)

	cancelled := booked[0]
	cancelled.Status = string(domain.StatusCancelled)
	require.NoError(t, f.repo.UpdateAppointment(ctx, &cancelled))

	require.NoError(t, f.book(ctx, "10:00", "10:30", "+5511999990001", false))
}

func TestGormBook_ConcurrentOverlapsOneWins(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()

	starts := []string{"10:00", "10:10", "10:05", "09:50", "10:00", "10:15"}
	var ok int32
	var wg sync.WaitGroup
	for i, s := range starts {
		wg.Add(1)
		go func(i int, start string) {
			defer wg.Done()
			end := schedule.MustParseTimeOfDay(start).Add(30 * time.Minute).String()
			err := f.book(ctx, start, end, fmt.Sprintf("+55119999900%02d", i), true)
			if err == nil {
				atomic.AddInt32(&ok, 1)
				return
			}
			assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable), err)
		}(i, s)
	}
	wg.Wait()

	assert.EqualValues(t, 1, ok)

	booked, err := f.repo.ListBookedAppointmentsForDay(ctx, f.barber.ID, day)
	require.NoError(t, err)
	assert.Len(t, booked, 1)
}

func TestGormGetOrCreateClient_ReusesByPhone(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()

	require.NoError(t, f.book(ctx, "09:00", "09:30", "+5511999990000", true))
	require.NoError(t, f.book(ctx, "09:30", "10:00", "+5511999990000", true))

	booked, err := f.repo.ListAppointmentsForDay(ctx, f.barber.ID, day)
	require.NoError(t, err)
	require.Len(t, booked, 2)
	assert.Equal(t, booked[0].ClientID, booked[1].ClientID)
}

func TestGormUpdateDayOverride_ConcurrentFirstWriters(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()

	slots := []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}
	var wg sync.WaitGroup
	for _, s := range slots {
		wg.Add(1)
		go func(s string) {
			defer wg.Done()
			slot := schedule.MustParseTimeOfDay(s)
			_, err := f.ovr.UpdateDayOverride(ctx, f.barber.ID, day,
				func(cur *schedule.DayOverride) (*schedule.DayOverride, error) {
					next := schedule.ApplyPatch(cur, schedule.OverridePatch{
						BlockedSlots: []schedule.TimeOfDay{slot},
						Mode:         schedule.ModeMerge,
					})
					return &next, nil
				})
			assert.NoError(t, err)
		}(s)
	}
	wg.Wait()

	stored, err := f.ovr.GetDayOverride(ctx, f.barber.ID, day)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, slots, schedule.FormatSlots(stored.BlockedSlots))
}

func TestGormUpdateDayOverride_EmptyAndDelete(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()

	// a first write that ends empty leaves no row behind
	saved, err := f.ovr.UpdateDayOverride(ctx, f.barber.ID, day,
		func(cur *schedule.DayOverride) (*schedule.DayOverride, error) {
			assert.Nil(t, cur)
			return nil, nil
		})
	require.NoError(t, err)
	assert.Nil(t, saved)

	stored, err := f.ovr.GetDayOverride(ctx, f.barber.ID, day)
	require.NoError(t, err)
	assert.Nil(t, stored)

	_, err = f.ovr.UpdateDayOverride(ctx, f.barber.ID, day,
		func(*schedule.DayOverride) (*schedule.DayOverride, error) {
			return &schedule.DayOverride{IsDayBlocked: true}, nil
		})
	require.NoError(t, err)

	stored, err = f.ovr.GetDayOverride(ctx, f.barber.ID, day)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.IsDayBlocked)

	require.NoError(t, f.ovr.DeleteDayOverride(ctx, f.barber.ID, day))
	stored, err = f.ovr.GetDayOverride(ctx, f.barber.ID, day)
	require.NoError(t, err)
	assert.Nil(t, stored)
}
