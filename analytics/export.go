package analytics

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/littlelemon/reservations/services"
	"github.com/littlelemon/reservations/utils"
)

// ExportSalesCSV writes the sales row set as CSV, one line per order line.
func ExportSalesCSV(w io.Writer, rows []SalesRow) error {
	cw := csv.NewWriter(w)
	header := []string{
		"order_id", "order_date", "order_time", "total_amount",
		"item_name", "category_name", "quantity", "unit_price",
		"subtotal", "item_cost", "profit", "table_location", "seating_capacity",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			strconv.FormatUint(uint64(row.OrderID), 10),
			row.OrderDate,
			row.OrderTime,
			strconv.FormatFloat(row.TotalAmount, 'f', 2, 64),
			row.ItemName,
			row.CategoryName,
			strconv.Itoa(row.Quantity),
			strconv.FormatFloat(row.UnitPrice, 'f', 2, 64),
			strconv.FormatFloat(row.Subtotal, 'f', 2, 64),
			strconv.FormatFloat(row.ItemCost, 'f', 2, 64),
			strconv.FormatFloat(row.Profit(), 'f', 2, 64),
			row.TableLocation,
			strconv.Itoa(row.SeatingCapacity),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportBookingsCSV writes the booking row set as CSV.
func ExportBookingsCSV(w io.Writer, rows []BookingRow) error {
	cw := csv.NewWriter(w)
	header := []string{
		"booking_id", "booking_date", "booking_time", "guests", "status",
		"table_number", "seating_capacity", "table_location",
		"customer_name", "employee_name", "special_requests",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			strconv.FormatUint(uint64(row.BookingID), 10),
			row.BookingDate,
			row.BookingTime,
			strconv.Itoa(row.Guests),
			row.Status,
			row.TableNumber,
			strconv.Itoa(row.SeatingCapacity),
			row.TableLocation,
			row.CustomerName,
			row.EmployeeName,
			row.SpecialRequests,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDailyReportPDF renders a daily occupancy report as a one-page PDF.
func WriteDailyReportPDF(w io.Writer, report services.DailyReport) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Daily Booking Report - "+report.Date)
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		fmt.Sprintf("Total bookings: %d", report.TotalBookings),
		fmt.Sprintf("Pending: %d  Confirmed: %d  Cancelled: %d  Completed: %d",
			report.PendingBookings, report.ConfirmedBookings,
			report.CancelledBookings, report.CompletedBookings),
		fmt.Sprintf("Guests expected: %d", report.TotalGuests),
		fmt.Sprintf("Tables booked: %d of %d", report.TablesBooked, report.TotalTables),
		fmt.Sprintf("Occupancy rate: %.1f%%", report.OccupancyRate),
	}
	for _, line := range lines {
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(30, 8, "Time")
	pdf.Cell(30, 8, "Table")
	pdf.Cell(60, 8, "Customer")
	pdf.Cell(20, 8, "Guests")
	pdf.Cell(30, 8, "Status")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	for _, b := range report.Bookings {
		pdf.Cell(30, 7, b.BookingTime)
		pdf.Cell(30, 7, b.Table.TableNumber)
		pdf.Cell(60, 7, b.Customer.FullName())
		pdf.Cell(20, 7, strconv.Itoa(b.Guests))
		pdf.Cell(30, 7, b.Status)
		pdf.Ln(7)
	}

	return pdf.Output(w)
}

// SalesSummaryLine is the human-readable one-liner used by export logs.
func SalesSummaryLine(m SalesMetrics) string {
	return fmt.Sprintf("revenue %s over %d orders (avg %s, margin %.1f%%)",
		utils.FormatCurrency(m.TotalRevenue), m.TotalOrders,
		utils.FormatCurrency(m.AverageOrderValue), m.ProfitMargin)
}
