package audit

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/devCaiqueWS/barber-scheduler/internal/models"
)

// Store persists audit rows.
type Store interface {
	SaveAuditLog(ctx context.Context, entry models.AuditLog) error
}

// Logger is the Sink that writes the audit_logs table.
type Logger struct {
	store Store
}

func New(store Store) *Logger {
	return &Logger{store: store}
}

func (l *Logger) Write(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	return l.store.SaveAuditLog(ctx, models.AuditLog{
		EventID:      ev.ID,
		BarbershopID: ev.BarbershopID,
		BarberID:     ev.BarberID,
		Action:       ev.Action,
		Entity:       ev.Entity,
		EntityID:     ev.EntityID,
		Metadata:     metaJSON,
		CreatedAt:    ev.OccurredAt,
	})
}

// GormStore saves audit rows through gorm. A replayed event id is ignored.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) SaveAuditLog(ctx context.Context, entry models.AuditLog) error {
	return s.db.WithContext(ctx).
		Where(models.AuditLog{EventID: entry.EventID}).
		FirstOrCreate(&entry).Error
}

// Query filters the audit trail of one barbershop. Page starts at 1.
type Query struct {
	BarbershopID uint
	Action       string
	Entity       string
	Page         int
	Limit        int
}

func (q Query) Normalize() Query {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 200 {
		q.Limit = 50
	}
	return q
}

func (q Query) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Reader lists stored audit rows, newest first.
type Reader interface {
	ListAuditLogs(ctx context.Context, q Query) ([]models.AuditLog, int64, error)
}

func (s *GormStore) ListAuditLogs(ctx context.Context, q Query) ([]models.AuditLog, int64, error) {
	q = q.Normalize()

	base := s.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("barbershop_id = ?", q.BarbershopID)

	if q.Action != "" {
		base = base.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		base = base.Where("entity = ?", q.Entity)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := base.
		Order("created_at DESC").
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
