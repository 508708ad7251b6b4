package models

import "time"

// Barber is the service provider whose agenda the engine manages.
type Barber struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	BarbershopID uint       `gorm:"index" json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100" json:"email"`
	Phone string `gorm:"size:20" json:"phone"`

	// Default working window, "HH:MM". Empty means the configured default.
	WorkStart string `gorm:"size:5" json:"work_start"`
	WorkEnd   string `gorm:"size:5" json:"work_end"`

	// 0=Sunday .. 6=Saturday. Empty means every day.
	ActiveWeekdays []int `gorm:"serializer:json" json:"active_weekdays"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
