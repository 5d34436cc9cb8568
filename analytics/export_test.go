package analytics_test

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/littlelemon/reservations/analytics"
	"github.com/littlelemon/reservations/models"
	"github.com/littlelemon/reservations/services"
)

func TestExportSalesCSV(t *testing.T) {
	rows := []analytics.SalesRow{
		{
			OrderID: 1, OrderDate: "2025-07-04", OrderTime: "12:30", TotalAmount: 30,
			ItemName: "Lasagna", CategoryName: "Mains",
			Quantity: 2, UnitPrice: 15, Subtotal: 30, ItemCost: 6,
			TableLocation: "main", SeatingCapacity: 4,
		},
	}

	var buf bytes.Buffer
	assert.NoError(t, analytics.ExportSalesCSV(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "order_id", records[0][0])
	assert.Equal(t, "Lasagna", records[1][4])
	assert.Equal(t, "18.00", records[1][10])
}

func TestExportBookingsCSV(t *testing.T) {
	rows := []analytics.BookingRow{
		{
			BookingID: 1, BookingDate: "2025-07-04", BookingTime: "19:00",
			Guests: 2, Status: "confirmed", TableNumber: "T1",
			SeatingCapacity: 4, TableLocation: "main", CustomerName: "Mario Rossi",
		},
	}

	var buf bytes.Buffer
	assert.NoError(t, analytics.ExportBookingsCSV(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "booking_id", records[0][0])
	assert.Equal(t, "Mario Rossi", records[1][8])
}

func TestWriteDailyReportPDF(t *testing.T) {
	report := services.DailyReport{
		Date:              "2025-07-04",
		TotalBookings:     1,
		ConfirmedBookings: 1,
		TotalGuests:       2,
		TotalTables:       10,
		TablesBooked:      1,
		OccupancyRate:     10,
		Bookings: []models.Booking{
			{
				BookingTime: "19:00",
				Guests:      2,
				Status:      models.BookingStatusConfirmed,
				Table:       models.Table{TableNumber: "T1"},
				Customer:    models.Customer{FirstName: "Mario", LastName: "Rossi"},
			},
		},
	}

	var buf bytes.Buffer
	assert.NoError(t, analytics.WriteDailyReportPDF(&buf, report))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestRenderSalesCharts(t *testing.T) {
	rows := []analytics.SalesRow{
		{OrderID: 1, OrderDate: "2025-07-04", OrderTime: "12:30", ItemName: "Lasagna", CategoryName: "Mains", Quantity: 2, Subtotal: 30},
		{OrderID: 2, OrderDate: "2025-07-05", OrderTime: "19:15", ItemName: "Tiramisu", CategoryName: "Desserts", Quantity: 1, Subtotal: 5},
	}
	m := analytics.AnalyzeSales(rows)

	dir := filepath.Join(t.TempDir(), "charts")
	files, err := analytics.RenderSalesCharts(m, dir)
	assert.NoError(t, err)
	assert.NotEmpty(t, files)
	for _, file := range files {
		info, err := os.Stat(file)
		assert.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}
