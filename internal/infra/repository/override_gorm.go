package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/devCaiqueWS/barber-scheduler/internal/domain/schedule"
	"github.com/devCaiqueWS/barber-scheduler/internal/models"
)

type OverrideGormRepository struct {
	db *gorm.DB
}

func NewOverrideGormRepository(db *gorm.DB) *OverrideGormRepository {
	return &OverrideGormRepository{db: db}
}

func (r *OverrideGormRepository) GetDayOverride(
	ctx context.Context,
	barberID uint,
	date schedule.Date,
) (*schedule.DayOverride, error) {

	var row models.DayOverride
	err := r.db.WithContext(ctx).
		Where("barber_id = ? AND date = ?", barberID, date.String()).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return overrideFromModel(row)
}

// UpdateDayOverride inserts a placeholder row if none exists, then locks it.
// Two first writers both hit the unique index; the loser waits on the lock
// and sees the winner's committed state.
func (r *OverrideGormRepository) UpdateDayOverride(
	ctx context.Context,
	barberID uint,
	date schedule.Date,
	fn schedule.UpdateFunc,
) (*schedule.DayOverride, error) {

	var result *schedule.DayOverride

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		placeholder := models.DayOverride{
			BarberID:       barberID,
			Date:           date.String(),
			AvailableSlots: []string{},
			BlockedSlots:   []string{},
		}
		ins := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&placeholder)
		if ins.Error != nil {
			return ins.Error
		}
		created := ins.RowsAffected == 1

		var row models.DayOverride
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("barber_id = ? AND date = ?", barberID, date.String()).
			First(&row).Error; err != nil {
			return err
		}

		var current *schedule.DayOverride
		if !created {
			cur, err := overrideFromModel(row)
			if err != nil {
				return err
			}
			current = cur
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		if next == nil || next.Empty() {
			return tx.Delete(&models.DayOverride{}, row.ID).Error
		}

		row.IsDayBlocked = next.IsDayBlocked
		row.AvailableSlots = schedule.FormatSlots(next.AvailableSlots)
		row.BlockedSlots = schedule.FormatSlots(next.BlockedSlots)
		if err := tx.Save(&row).Error; err != nil {
			return err
		}

		result = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *OverrideGormRepository) DeleteDayOverride(
	ctx context.Context,
	barberID uint,
	date schedule.Date,
) error {
	return r.db.WithContext(ctx).
		Where("barber_id = ? AND date = ?", barberID, date.String()).
		Delete(&models.DayOverride{}).Error
}

func overrideFromModel(row models.DayOverride) (*schedule.DayOverride, error) {
	available, err := schedule.ParseSlots(row.AvailableSlots)
	if err != nil {
		return nil, fmt.Errorf("override %d available_slots: %w", row.ID, err)
	}
	blocked, err := schedule.ParseSlots(row.BlockedSlots)
	if err != nil {
		return nil, fmt.Errorf("override %d blocked_slots: %w", row.ID, err)
	}

	return &schedule.DayOverride{
		IsDayBlocked:   row.IsDayBlocked,
		AvailableSlots: available,
		BlockedSlots:   blocked,
	}, nil
}

var _ schedule.OverrideStore = (*OverrideGormRepository)(nil)
