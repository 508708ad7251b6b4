package appointment

import (
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/devCaiqueWS/barber-scheduler/internal/audit"
	"github.com/devCaiqueWS/barber-scheduler/internal/domain/schedule"
	"github.com/devCaiqueWS/barber-scheduler/internal/infra/lock"
	"github.com/devCaiqueWS/barber-scheduler/internal/infra/repository"
	"github.com/devCaiqueWS/barber-scheduler/internal/models"
	"github.com/devCaiqueWS/barber-scheduler/internal/timezone"
)

// 2026-03-10 is a tuesday; the clock sits on the monday before at noon.
const tuesday = "2026-03-10"

var monday = time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

type spyRecorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *spyRecorder) Dispatch(ev audit.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *spyRecorder) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Action)
	}
	return out
}

type fixture struct {
	store    *repository.MemoryStore
	shop     models.Barbershop
	barber   models.Barber
	haircut  models.BarberProduct
	coloring models.BarberProduct
	settings StaticSettings
	clock    timezone.Clock
	locker   *lock.KeyedMutex
	audit    *spyRecorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := repository.NewMemoryStore()
	shop := store.AddBarbershop(models.Barbershop{Name: "Navalha", Slug: "navalha", Timezone: "UTC"})
	barber := store.AddBarber(models.Barber{
		BarbershopID: shop.ID,
		Name:         "Rafa",
		WorkStart:    "09:00",
		WorkEnd:      "18:00",
		Active:       true,
	})

	return &fixture{
		store:    store,
		shop:     shop,
		barber:   barber,
		haircut:  store.AddProduct(models.BarberProduct{BarbershopID: shop.ID, Name: "Corte", DurationMin: 30, Active: true}),
		coloring: store.AddProduct(models.BarberProduct{BarbershopID: shop.ID, Name: "Luzes", DurationMin: 60, Active: true}),
		settings: StaticSettings{Settings: schedule.DefaultSettings(), Timezone: "UTC"},
		clock:    timezone.Fixed(monday),
		locker:   lock.NewKeyedMutex(),
		audit:    &spyRecorder{},
	}
}

func (f *fixture) availability() *GetAvailability {
	return NewGetAvailability(f.store, f.store, f.settings, f.clock)
}

func (f *fixture) booking() *CreateBooking {
	return NewCreateBooking(f.store, f.store, f.locker, f.settings, f.clock, f.audit, zap.NewNop())
}

func (f *fixture) book(start string, product models.BarberProduct) models.Appointment {
	st := schedule.MustParseTimeOfDay(start)
	return f.store.InsertAppointment(models.Appointment{
		BarbershopID:    f.shop.ID,
		BarberID:        f.barber.ID,
		BarberProductID: product.ID,
		Date:            tuesday,
		StartTime:       st.String(),
		EndTime:         st.Add(time.Duration(product.DurationMin) * time.Minute).String(),
	})
}

func (f *fixture) input(start string) CreateBookingInput {
	return CreateBookingInput{
		BarbershopID: f.shop.ID,
		BarberID:     f.barber.ID,
		ProductID:    f.haircut.ID,
		Date:         tuesday,
		StartTime:    start,
		ClientName:   "Joana",
		ClientPhone:  "+5511999990000",
	}
}
