package models

import "time"

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// Booking occupies a slot: the (table, date, time) tuple. At most one
// booking with an active status may exist per slot; cancellation is a
// status transition, rows are never deleted.
type Booking struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Reference       string    `gorm:"type:varchar(16);not null;uniqueIndex" json:"reference"`
	CustomerID      uint      `gorm:"not null" json:"customer_id"`
	Customer        Customer  `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"customer"`
	TableID         uint      `gorm:"not null;index" json:"table_id"`
	Table           Table     `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"table"`
	EmployeeID      *uint     `gorm:"index" json:"employee_id,omitempty"`
	Employee        *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	BookingDate     string    `gorm:"type:varchar(10);not null;index" json:"booking_date"`
	BookingTime     string    `gorm:"type:varchar(5);not null" json:"booking_time"`
	Guests          int       `gorm:"not null" json:"guests"`
	Status          string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	SpecialRequests string    `gorm:"type:text" json:"special_requests"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

// IsActive reports whether the booking counts against slot availability.
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// IsTerminal reports whether the booking can no longer be mutated.
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCancelled || b.Status == BookingStatusCompleted
}

// ActiveBookingStatuses is used in slot queries and the store-level guard.
var ActiveBookingStatuses = []string{BookingStatusPending, BookingStatusConfirmed}
