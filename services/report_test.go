package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/littlelemon/reservations/models"
	"github.com/littlelemon/reservations/services"
)

func TestDailyReportOccupancy(t *testing.T) {
	db := setupTestDB(t)
	tables := seedTables(t, db, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4)
	customer := seedCustomer(t, db)

	bookings := services.NewBookingService(db)
	create := func(tableID uint, timeOfDay string) models.Booking {
		b, err := bookings.Create(context.Background(), services.CreateBookingInput{
			CustomerID: customer.ID,
			TableID:    tableID,
			Date:       "2025-07-04",
			Time:       timeOfDay,
			Guests:     2,
		})
		assert.NoError(t, err)
		return b
	}

	// three confirmed bookings on three distinct tables
	for i := 0; i < 3; i++ {
		b := create(tables[i].ID, "19:00")
		_, err := bookings.Confirm(context.Background(), b.ID)
		assert.NoError(t, err)
	}
	// one pending and one cancelled do not count toward occupancy
	create(tables[3].ID, "19:00")
	cancelled := create(tables[4].ID, "19:00")
	_, err := bookings.Cancel(context.Background(), cancelled.ID)
	assert.NoError(t, err)

	reports := services.NewReportService(db)
	report, err := reports.Daily(context.Background(), "2025-07-04")
	assert.NoError(t, err)

	assert.Equal(t, 5, report.TotalBookings)
	assert.Equal(t, 3, report.ConfirmedBookings)
	assert.Equal(t, 1, report.PendingBookings)
	assert.Equal(t, 1, report.CancelledBookings)
	assert.Equal(t, 10, report.TotalTables)
	assert.Equal(t, 3, report.TablesBooked)
	assert.InDelta(t, 30.0, report.OccupancyRate, 0.001)
	// guests are counted for active bookings only
	assert.Equal(t, 8, report.TotalGuests)
	assert.Len(t, report.Bookings, 5)
}

func TestDailyReportSameTableCountsOnce(t *testing.T) {
	db := setupTestDB(t)
	tables := seedTables(t, db, 4, 4)
	customer := seedCustomer(t, db)

	bookings := services.NewBookingService(db)
	for _, timeOfDay := range []string{"18:00", "20:00"} {
		b, err := bookings.Create(context.Background(), services.CreateBookingInput{
			CustomerID: customer.ID,
			TableID:    tables[0].ID,
			Date:       "2025-07-04",
			Time:       timeOfDay,
			Guests:     2,
		})
		assert.NoError(t, err)
		_, err = bookings.Confirm(context.Background(), b.ID)
		assert.NoError(t, err)
	}

	reports := services.NewReportService(db)
	report, err := reports.Daily(context.Background(), "2025-07-04")
	assert.NoError(t, err)

	assert.Equal(t, 2, report.ConfirmedBookings)
	assert.Equal(t, 1, report.TablesBooked)
	assert.InDelta(t, 50.0, report.OccupancyRate, 0.001)
}

func TestDailyReportNoTables(t *testing.T) {
	db := setupTestDB(t)

	reports := services.NewReportService(db)
	report, err := reports.Daily(context.Background(), "2025-07-04")
	assert.NoError(t, err)

	assert.Equal(t, 0, report.TotalTables)
	assert.Zero(t, report.OccupancyRate)
	assert.Empty(t, report.Bookings)
}

func TestDailyReportBadDate(t *testing.T) {
	db := setupTestDB(t)

	reports := services.NewReportService(db)
	_, err := reports.Daily(context.Background(), "yesterday")
	assert.ErrorIs(t, err, services.ErrInvalidArgument)
}
