package models

import "time"

// DayOverride is unique per (barber_id, date).
type DayOverride struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `gorm:"uniqueIndex:idx_override_barber_date;not null" json:"barber_id"`
	Date     string `gorm:"size:10;uniqueIndex:idx_override_barber_date;not null" json:"date"`

	IsDayBlocked   bool     `gorm:"not null;default:false" json:"is_day_blocked"`
	AvailableSlots []string `gorm:"serializer:json" json:"available_slots"`
	BlockedSlots   []string `gorm:"serializer:json" json:"blocked_slots"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
