package models

import "time"

type Table struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	TableNumber     string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"table_number"`
	SeatingCapacity int       `gorm:"not null" json:"seating_capacity"`
	Location        string    `gorm:"type:varchar(50);not null;default:'main'" json:"location"`
	IsAvailable     bool      `gorm:"not null;default:true" json:"is_available"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}
