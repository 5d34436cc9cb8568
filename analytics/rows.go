package analytics

import (
	"context"

	"gorm.io/gorm"

	"github.com/littlelemon/reservations/services"
)

// SalesRow is one order line joined with its order, menu item, category and
// (when the order was served under a booking) table. The dynamic rows the
// store returns are decoded into this shape once, at the gateway boundary.
type SalesRow struct {
	OrderID         uint    `json:"order_id"`
	OrderDate       string  `json:"order_date"`
	OrderTime       string  `json:"order_time"`
	TotalAmount     float64 `json:"total_amount"`
	MenuItemID      uint    `json:"menu_item_id"`
	ItemName        string  `json:"item_name"`
	CategoryName    string  `json:"category_name"`
	Quantity        int     `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	Subtotal        float64 `json:"subtotal"`
	ItemCost        float64 `json:"item_cost"`
	TableLocation   string  `json:"table_location"`
	SeatingCapacity int     `json:"seating_capacity"`
}

// Profit of the line: subtotal minus cost of goods.
func (r SalesRow) Profit() float64 {
	return r.Subtotal - r.ItemCost*float64(r.Quantity)
}

// BookingRow is one booking joined with its customer, table and employee.
type BookingRow struct {
	BookingID       uint   `json:"booking_id"`
	BookingDate     string `json:"booking_date"`
	BookingTime     string `json:"booking_time"`
	Guests          int    `json:"guests"`
	Status          string `json:"status"`
	SpecialRequests string `json:"special_requests"`
	TableNumber     string `json:"table_number"`
	SeatingCapacity int    `json:"seating_capacity"`
	TableLocation   string `json:"table_location"`
	CustomerName    string `json:"customer_name"`
	EmployeeName    string `json:"employee_name"`
}

// LoadSalesRows pulls the denormalized sales data set. from/to are
// inclusive YYYY-MM-DD bounds; either may be empty.
func LoadSalesRows(ctx context.Context, db *gorm.DB, from, to string) ([]SalesRow, error) {
	var err error
	if from != "" {
		if from, err = services.NormalizeDate(from); err != nil {
			return nil, err
		}
	}
	if to != "" {
		if to, err = services.NormalizeDate(to); err != nil {
			return nil, err
		}
	}

	query := db.WithContext(ctx).
		Table("order_details od").
		Select(`o.id AS order_id,
			o.order_date,
			o.order_time,
			o.total_amount,
			mi.id AS menu_item_id,
			mi.name AS item_name,
			mc.name AS category_name,
			od.quantity,
			od.unit_price,
			od.subtotal,
			mi.cost AS item_cost,
			COALESCE(t.location, '') AS table_location,
			COALESCE(t.seating_capacity, 0) AS seating_capacity`).
		Joins("JOIN orders o ON o.id = od.order_id").
		Joins("JOIN menu_items mi ON mi.id = od.menu_item_id").
		Joins("JOIN menu_categories mc ON mc.id = mi.category_id").
		Joins("LEFT JOIN bookings b ON b.id = o.booking_id").
		Joins("LEFT JOIN tables t ON t.id = b.table_id")
	if from != "" {
		query = query.Where("o.order_date >= ?", from)
	}
	if to != "" {
		query = query.Where("o.order_date <= ?", to)
	}

	var rows []SalesRow
	if err := query.Order("o.order_date ASC, o.order_time ASC, od.id ASC").Scan(&rows).Error; err != nil {
		return nil, services.Classify(err)
	}
	return rows, nil
}

// LoadBookingRows pulls the denormalized booking data set.
func LoadBookingRows(ctx context.Context, db *gorm.DB, from, to string) ([]BookingRow, error) {
	var err error
	if from != "" {
		if from, err = services.NormalizeDate(from); err != nil {
			return nil, err
		}
	}
	if to != "" {
		if to, err = services.NormalizeDate(to); err != nil {
			return nil, err
		}
	}

	// names are concatenated in Go: sqlite and mysql do not share a
	// string-concatenation operator
	type scanRow struct {
		BookingRow
		CustomerFirstName string
		CustomerLastName  string
		EmployeeFirstName *string
		EmployeeLastName  *string
	}

	query := db.WithContext(ctx).
		Table("bookings b").
		Select(`b.id AS booking_id,
			b.booking_date,
			b.booking_time,
			b.guests,
			b.status,
			b.special_requests,
			t.table_number,
			t.seating_capacity,
			t.location AS table_location,
			c.first_name AS customer_first_name,
			c.last_name AS customer_last_name,
			e.first_name AS employee_first_name,
			e.last_name AS employee_last_name`).
		Joins("JOIN customers c ON c.id = b.customer_id").
		Joins("JOIN tables t ON t.id = b.table_id").
		Joins("LEFT JOIN employees e ON e.id = b.employee_id")
	if from != "" {
		query = query.Where("b.booking_date >= ?", from)
	}
	if to != "" {
		query = query.Where("b.booking_date <= ?", to)
	}

	var scanned []scanRow
	if err := query.Order("b.booking_date ASC, b.booking_time ASC, b.id ASC").Scan(&scanned).Error; err != nil {
		return nil, services.Classify(err)
	}

	rows := make([]BookingRow, 0, len(scanned))
	for _, sr := range scanned {
		row := sr.BookingRow
		row.CustomerName = sr.CustomerFirstName + " " + sr.CustomerLastName
		if sr.EmployeeFirstName != nil && sr.EmployeeLastName != nil {
			row.EmployeeName = *sr.EmployeeFirstName + " " + *sr.EmployeeLastName
		}
		rows = append(rows, row)
	}
	return rows, nil
}
