package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ActionAppointmentCreated   = "appointment.created"
	ActionAppointmentConfirmed = "appointment.confirmed"
	ActionAppointmentCancelled = "appointment.cancelled"
	ActionAppointmentCompleted = "appointment.completed"
	ActionAppointmentConflict  = "appointment.conflict"
	ActionOverrideUpdated      = "override.updated"
	ActionOverrideCleared      = "override.cleared"
	ActionScheduleUpdated      = "schedule.updated"
)

type Event struct {
	ID           string
	BarbershopID uint
	BarberID     *uint
	Action       string
	Entity       string
	EntityID     *uint
	Metadata     any
	OccurredAt   time.Time
}

// Sink receives dispatched events. Sinks are called from a single goroutine.
type Sink interface {
	Write(ctx context.Context, ev Event) error
}

// Recorder is what use cases depend on.
type Recorder interface {
	Dispatch(ev Event)
}

// Nop drops everything.
type Nop struct{}

func (Nop) Dispatch(Event) {}

type Dispatcher struct {
	log   *zap.Logger
	sinks []Sink
	queue chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(log *zap.Logger, sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		log:   log,
		sinks: sinks,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		for _, s := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := s.Write(ctx, ev); err != nil {
				d.log.Warn("audit sink failed",
					zap.String("event_id", ev.ID),
					zap.String("action", ev.Action),
					zap.Error(err),
				)
			}
			cancel()
		}
	}
}

// Dispatch never blocks the request path: a full queue drops the event.
func (d *Dispatcher) Dispatch(ev Event) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close drains the queue and waits for the worker, or for ctx.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
