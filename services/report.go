package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/littlelemon/reservations/models"
)

// DailyReport combines one date's bookings with the table inventory.
// OccupancyRate is the percentage of distinct tables holding at least one
// confirmed booking.
type DailyReport struct {
	Date              string           `json:"date"`
	TotalBookings     int              `json:"total_bookings"`
	PendingBookings   int              `json:"pending_bookings"`
	ConfirmedBookings int              `json:"confirmed_bookings"`
	CancelledBookings int              `json:"cancelled_bookings"`
	CompletedBookings int              `json:"completed_bookings"`
	TotalGuests       int              `json:"total_guests"`
	TotalTables       int              `json:"total_tables"`
	TablesBooked      int              `json:"tables_booked"`
	OccupancyRate     float64          `json:"occupancy_rate"`
	Bookings          []models.Booking `json:"bookings"`
}

type ReportService struct {
	DB       *gorm.DB
	Bookings *BookingService
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db, Bookings: NewBookingService(db)}
}

// Daily builds the occupancy report for one date. A restaurant with no
// tables reports zero occupancy, not an error.
func (s *ReportService) Daily(ctx context.Context, date string) (DailyReport, error) {
	date, err := NormalizeDate(date)
	if err != nil {
		return DailyReport{}, err
	}

	bookings, err := s.Bookings.ByDate(ctx, date)
	if err != nil {
		return DailyReport{}, err
	}

	var totalTables int64
	if err := s.DB.WithContext(ctx).Model(&models.Table{}).Count(&totalTables).Error; err != nil {
		return DailyReport{}, Classify(err)
	}

	report := DailyReport{
		Date:        date,
		TotalTables: int(totalTables),
		Bookings:    bookings,
	}

	confirmedTables := make(map[uint]struct{})
	for _, b := range bookings {
		report.TotalBookings++
		switch b.Status {
		case models.BookingStatusPending:
			report.PendingBookings++
		case models.BookingStatusConfirmed:
			report.ConfirmedBookings++
			confirmedTables[b.TableID] = struct{}{}
		case models.BookingStatusCancelled:
			report.CancelledBookings++
		case models.BookingStatusCompleted:
			report.CompletedBookings++
		}
		if b.IsActive() {
			report.TotalGuests += b.Guests
		}
	}
	report.TablesBooked = len(confirmedTables)

	if report.TotalTables > 0 {
		report.OccupancyRate = 100 * float64(report.TablesBooked) / float64(report.TotalTables)
	}
	return report, nil
}
