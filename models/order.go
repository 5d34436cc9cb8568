package models

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order optionally references the booking it was served under.
// TotalAmount is the sum of its detail subtotals, fixed at creation.
type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	CustomerID    uint          `gorm:"not null" json:"customer_id"`
	Customer      Customer      `gorm:"foreignKey:CustomerID" json:"customer"`
	BookingID     *uint         `gorm:"index" json:"booking_id,omitempty"`
	Booking       *Booking      `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
	OrderDate     string        `gorm:"type:varchar(10);not null;index" json:"order_date"`
	OrderTime     string        `gorm:"type:varchar(5);not null" json:"order_time"`
	Status        string        `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentStatus string        `gorm:"type:varchar(20);not null;default:'unpaid'" json:"payment_status"`
	TotalAmount   float64       `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	OrderDetails  []OrderDetail `gorm:"foreignKey:OrderID" json:"order_details"`
	CreatedAt     time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"not null" json:"updated_at"`
}
