package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/devCaiqueWS/barber-scheduler/internal/audit"
	domain "github.com/devCaiqueWS/barber-scheduler/internal/domain/appointment"
	"github.com/devCaiqueWS/barber-scheduler/internal/domain/schedule"
	"github.com/devCaiqueWS/barber-scheduler/internal/httperr"
	"github.com/devCaiqueWS/barber-scheduler/internal/infra/lock"
	"github.com/devCaiqueWS/barber-scheduler/internal/models"
)

// MemoryStore keeps everything in process. It backs STORE=memory and the
// tests. Booking and override writes for one (barber, date) are serialized,
// and a second live appointment at the same start is rejected the way the
// partial unique index rejects it in postgres.
type MemoryStore struct {
	mu sync.RWMutex

	nextID uint

	shops        map[uint]models.Barbershop
	barbers      map[uint]models.Barber
	products     map[uint]models.BarberProduct
	clients      map[uint]models.Client
	appointments map[uint]models.Appointment
	overrides    map[string]schedule.DayOverride
	auditLogs    []models.AuditLog

	keys *lock.KeyedMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		shops:        make(map[uint]models.Barbershop),
		barbers:      make(map[uint]models.Barber),
		products:     make(map[uint]models.BarberProduct),
		clients:      make(map[uint]models.Client),
		appointments: make(map[uint]models.Appointment),
		overrides:    make(map[string]schedule.DayOverride),
		keys:         lock.NewKeyedMutex(),
	}
}

func (m *MemoryStore) id() uint {
	m.nextID++
	return m.nextID
}

// --------------------------------------------------
// Seeding
// --------------------------------------------------

func (m *MemoryStore) AddBarbershop(shop models.Barbershop) models.Barbershop {
	m.mu.Lock()
	defer m.mu.Unlock()

	if shop.ID == 0 {
		shop.ID = m.id()
	}
	m.shops[shop.ID] = shop
	return shop
}

func (m *MemoryStore) AddBarber(b models.Barber) models.Barber {
	m.mu.Lock()
	defer m.mu.Unlock()

	if b.ID == 0 {
		b.ID = m.id()
	}
	m.barbers[b.ID] = b
	return b
}

func (m *MemoryStore) AddProduct(p models.BarberProduct) models.BarberProduct {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p.ID == 0 {
		p.ID = m.id()
	}
	m.products[p.ID] = p
	return p
}

// --------------------------------------------------
// Barbershop / Barber / Product
// --------------------------------------------------

func (m *MemoryStore) GetBarbershopByID(_ context.Context, id uint) (*models.Barbershop, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	shop, ok := m.shops[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &shop, nil
}

func (m *MemoryStore) GetBarbershopBySlug(_ context.Context, slug string) (*models.Barbershop, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, shop := range m.shops {
		if shop.Slug == slug {
			return &shop, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MemoryStore) GetBarber(_ context.Context, barbershopID, barberID uint) (*models.Barber, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.barbers[barberID]
	if !ok || b.BarbershopID != barbershopID || !b.Active {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (m *MemoryStore) UpdateBarber(_ context.Context, barber *models.Barber) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.barbers[barber.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.WorkStart = barber.WorkStart
	cur.WorkEnd = barber.WorkEnd
	cur.ActiveWeekdays = append([]int(nil), barber.ActiveWeekdays...)
	cur.UpdatedAt = time.Now()
	m.barbers[barber.ID] = cur
	return nil
}

func (m *MemoryStore) GetProduct(_ context.Context, barbershopID, productID uint) (*models.BarberProduct, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.products[productID]
	if !ok || p.BarbershopID != barbershopID || !p.Active {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (m *MemoryStore) ListBookedAppointmentsForDay(_ context.Context, barberID uint, date schedule.Date) ([]models.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.dayLocked(barberID, date, true), nil
}

func (m *MemoryStore) ListAppointmentsForDay(_ context.Context, barberID uint, date schedule.Date) ([]models.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	apps := m.dayLocked(barberID, date, false)
	for i := range apps {
		apps[i].BarberProduct = m.products[apps[i].BarberProductID]
	}
	return apps, nil
}

func (m *MemoryStore) dayLocked(barberID uint, date schedule.Date, bookedOnly bool) []models.Appointment {
	out := []models.Appointment{}
	for _, ap := range m.appointments {
		if ap.BarberID != barberID || ap.Date != date.String() {
			continue
		}
		if bookedOnly && !domain.Status(ap.Status).HoldsTime() {
			continue
		}
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime == out[j].StartTime {
			return out[i].ID < out[j].ID
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

func (m *MemoryStore) GetAppointmentForBarber(_ context.Context, appointmentID, barberID uint) (*models.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ap, ok := m.appointments[appointmentID]
	if !ok || ap.BarberID != barberID {
		return nil, domain.ErrNotFound
	}
	return &ap, nil
}

func (m *MemoryStore) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.appointments[ap.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Status = ap.Status
	cur.CancelledAt = ap.CancelledAt
	cur.CompletedAt = ap.CompletedAt
	cur.UpdatedAt = time.Now()
	m.appointments[ap.ID] = cur
	return nil
}

// Book runs fn with exclusive access to (barberID, date). Writes made through
// the tx become visible only if fn returns nil.
func (m *MemoryStore) Book(
	ctx context.Context,
	barberID uint,
	date schedule.Date,
	fn func(tx domain.BookingTx) error,
) error {

	release, err := m.keys.Lock(ctx, lock.BookingKey(barberID, date.String()))
	if err != nil {
		return err
	}
	defer release()

	tx := &memoryBookingTx{store: m, barberID: barberID, date: date}
	if err := fn(tx); err != nil {
		return err
	}

	return tx.commit()
}

type memoryBookingTx struct {
	store    *MemoryStore
	barberID uint
	date     schedule.Date

	clients      []*models.Client
	appointments []*models.Appointment
}

func (t *memoryBookingTx) ListBookedAppointments(ctx context.Context) ([]models.Appointment, error) {
	return t.store.ListBookedAppointmentsForDay(ctx, t.barberID, t.date)
}

func (t *memoryBookingTx) GetOrCreateClient(
	_ context.Context,
	barbershopID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	phone = strings.TrimSpace(phone)
	email = strings.ToLower(strings.TrimSpace(email))

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if phone != "" || email != "" {
		for _, c := range t.store.clients {
			if c.BarbershopID != barbershopID {
				continue
			}
			if (phone != "" && c.Phone == phone) || (phone == "" && c.Email == email) {
				return &c, nil
			}
		}
	}

	c := &models.Client{
		ID:           t.store.id(),
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        phone,
		Email:        email,
		CreatedAt:    time.Now(),
	}
	if c.Phone == "" && c.Email == "" {
		c.Email = PlaceholderEmail()
	}
	t.clients = append(t.clients, c)
	return c, nil
}

func (t *memoryBookingTx) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if ap.BarberID != t.barberID || ap.Date != t.date.String() {
		return fmt.Errorf("appointment outside of booking scope %d/%s", t.barberID, t.date)
	}
	if t.store.startTakenLocked(ap) {
		return httperr.ErrBusinessf(httperr.CodeSlotUnavailable, "rejected by store constraint")
	}

	ap.ID = t.store.id()
	now := time.Now()
	ap.CreatedAt = now
	ap.UpdatedAt = now
	t.appointments = append(t.appointments, ap)
	return nil
}

func (m *MemoryStore) startTakenLocked(ap *models.Appointment) bool {
	if !domain.Status(ap.Status).HoldsTime() {
		return false
	}
	for _, other := range m.appointments {
		if other.BarberID == ap.BarberID &&
			other.Date == ap.Date &&
			other.StartTime == ap.StartTime &&
			domain.Status(other.Status).HoldsTime() {
			return true
		}
	}
	return false
}

func (t *memoryBookingTx) commit() error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	for _, ap := range t.appointments {
		if t.store.startTakenLocked(ap) {
			return httperr.ErrBusinessf(httperr.CodeSlotUnavailable, "rejected by store constraint")
		}
	}

	for _, c := range t.clients {
		t.store.clients[c.ID] = *c
	}
	for _, ap := range t.appointments {
		t.store.appointments[ap.ID] = *ap
	}
	return nil
}

// InsertAppointment stores ap without any check. Tests use it to set up
// days, including states the booking path would refuse.
func (m *MemoryStore) InsertAppointment(ap models.Appointment) models.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ap.ID == 0 {
		ap.ID = m.id()
	}
	if ap.Status == "" {
		ap.Status = string(domain.StatusConfirmed)
	}
	m.appointments[ap.ID] = ap
	return ap
}

// --------------------------------------------------
// Day overrides
// --------------------------------------------------

func overrideKey(barberID uint, date schedule.Date) string {
	return fmt.Sprintf("%d|%s", barberID, date)
}

func cloneOverride(o schedule.DayOverride) *schedule.DayOverride {
	return &schedule.DayOverride{
		IsDayBlocked:   o.IsDayBlocked,
		AvailableSlots: schedule.NormalizeSlots(o.AvailableSlots),
		BlockedSlots:   schedule.NormalizeSlots(o.BlockedSlots),
	}
}

func (m *MemoryStore) GetDayOverride(_ context.Context, barberID uint, date schedule.Date) (*schedule.DayOverride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.overrides[overrideKey(barberID, date)]
	if !ok {
		return nil, nil
	}
	return cloneOverride(o), nil
}

func (m *MemoryStore) UpdateDayOverride(
	ctx context.Context,
	barberID uint,
	date schedule.Date,
	fn schedule.UpdateFunc,
) (*schedule.DayOverride, error) {

	key := overrideKey(barberID, date)
	release, err := m.keys.Lock(ctx, "override:"+key)
	if err != nil {
		return nil, err
	}
	defer release()

	current, err := m.GetDayOverride(ctx, barberID, date)
	if err != nil {
		return nil, err
	}

	next, err := fn(current)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if next == nil || next.Empty() {
		delete(m.overrides, key)
		return nil, nil
	}
	m.overrides[key] = *cloneOverride(*next)
	return next, nil
}

// DeleteDayOverride waits for an UpdateDayOverride in flight on the same day.
func (m *MemoryStore) DeleteDayOverride(ctx context.Context, barberID uint, date schedule.Date) error {
	key := overrideKey(barberID, date)
	release, err := m.keys.Lock(ctx, "override:"+key)
	if err != nil {
		return err
	}
	defer release()

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.overrides, key)
	return nil
}

// --------------------------------------------------
// Audit
// --------------------------------------------------

func (m *MemoryStore) SaveAuditLog(_ context.Context, entry models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.ID = m.id()
	m.auditLogs = append(m.auditLogs, entry)
	return nil
}

func (m *MemoryStore) ListAuditLogs(_ context.Context, q audit.Query) ([]models.AuditLog, int64, error) {
	q = q.Normalize()

	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := []models.AuditLog{}
	for i := len(m.auditLogs) - 1; i >= 0; i-- {
		e := m.auditLogs[i]
		if e.BarbershopID != q.BarbershopID {
			continue
		}
		if (q.Action != "" && e.Action != q.Action) || (q.Entity != "" && e.Entity != q.Entity) {
			continue
		}
		matched = append(matched, e)
	}

	total := int64(len(matched))
	from := q.Offset()
	if from >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	to := from + q.Limit
	if to > len(matched) {
		to = len(matched)
	}
	return matched[from:to], total, nil
}

var (
	_ domain.Repository      = (*MemoryStore)(nil)
	_ schedule.OverrideStore = (*MemoryStore)(nil)
	_ audit.Store            = (*MemoryStore)(nil)
	_ audit.Reader           = (*MemoryStore)(nil)
)
