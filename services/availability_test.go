package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/littlelemon/reservations/database"
	"github.com/littlelemon/reservations/models"
	"github.com/littlelemon/reservations/services"
	"github.com/littlelemon/reservations/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	utils.InitLogger()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Employee{},
		&models.Customer{},
		&models.Table{},
		&models.Booking{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if err := database.InstallSlotGuard(db); err != nil {
		t.Fatalf("failed to install slot guard: %v", err)
	}
	return db
}

func seedTables(t *testing.T, db *gorm.DB, capacities ...int) []models.Table {
	tables := make([]models.Table, 0, len(capacities))
	for i, seats := range capacities {
		table := models.Table{
			TableNumber:     "T" + string(rune('A'+i)),
			SeatingCapacity: seats,
			Location:        "main",
			IsAvailable:     true,
		}
		if err := db.Create(&table).Error; err != nil {
			t.Fatalf("failed to seed table: %v", err)
		}
		tables = append(tables, table)
	}
	return tables
}

func seedCustomer(t *testing.T, db *gorm.DB) models.Customer {
	customer := models.Customer{
		FirstName: "Mario",
		LastName:  "Rossi",
		Email:     "mario." + t.Name() + "@example.com",
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}
	return customer
}

func TestFindAvailableTablesTightestFitFirst(t *testing.T) {
	db := setupTestDB(t)
	seedTables(t, db, 8, 2, 6, 4)

	svc := services.NewAvailabilityService(db)
	tables, err := svc.FindAvailableTables(context.Background(), "2025-07-04", "19:00", 3)
	assert.NoError(t, err)

	capacities := make([]int, 0, len(tables))
	for _, table := range tables {
		capacities = append(capacities, table.SeatingCapacity)
	}
	assert.Equal(t, []int{4, 6, 8}, capacities)
}

func TestFindAvailableTablesExcludesActiveSlot(t *testing.T) {
	db := setupTestDB(t)
	tables := seedTables(t, db, 4, 4)
	customer := seedCustomer(t, db)

	svc := services.NewBookingService(db)
	_, err := svc.Create(context.Background(), services.CreateBookingInput{
		CustomerID: customer.ID,
		TableID:    tables[0].ID,
		Date:       "2025-07-04",
		Time:       "19:00",
		Guests:     2,
	})
	assert.NoError(t, err)

	avail := services.NewAvailabilityService(db)

	free, err := avail.FindAvailableTables(context.Background(), "2025-07-04", "19:00", 2)
	assert.NoError(t, err)
	assert.Len(t, free, 1)
	assert.Equal(t, tables[1].ID, free[0].ID)

	// a different time on the same date is a different slot
	free, err = avail.FindAvailableTables(context.Background(), "2025-07-04", "21:00", 2)
	assert.NoError(t, err)
	assert.Len(t, free, 2)
}

func TestFindAvailableTablesIgnoresCancelled(t *testing.T) {
	db := setupTestDB(t)
	tables := seedTables(t, db, 4)
	customer := seedCustomer(t, db)

	bookings := services.NewBookingService(db)
	booking, err := bookings.Create(context.Background(), services.CreateBookingInput{
		CustomerID: customer.ID,
		TableID:    tables[0].ID,
		Date:       "2025-07-04",
		Time:       "19:00",
		Guests:     2,
	})
	assert.NoError(t, err)

	_, err = bookings.Cancel(context.Background(), booking.ID)
	assert.NoError(t, err)

	avail := services.NewAvailabilityService(db)
	free, err := avail.FindAvailableTables(context.Background(), "2025-07-04", "19:00", 2)
	assert.NoError(t, err)
	assert.Len(t, free, 1)
}

func TestFindAvailableTablesNoMatch(t *testing.T) {
	db := setupTestDB(t)
	seedTables(t, db, 2, 4)

	svc := services.NewAvailabilityService(db)
	tables, err := svc.FindAvailableTables(context.Background(), "2025-07-04", "19:00", 20)
	assert.NoError(t, err)
	assert.Empty(t, tables)
}

func TestFindAvailableTablesRejectsBadInput(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewAvailabilityService(db)

	_, err := svc.FindAvailableTables(context.Background(), "2025-07-04", "19:00", 0)
	assert.ErrorIs(t, err, services.ErrInvalidArgument)

	_, err = svc.FindAvailableTables(context.Background(), "not-a-date", "19:00", 2)
	assert.ErrorIs(t, err, services.ErrInvalidArgument)

	_, err = svc.FindAvailableTables(context.Background(), "2025-07-04", "late", 2)
	assert.ErrorIs(t, err, services.ErrInvalidArgument)
}

func TestIsTableFree(t *testing.T) {
	db := setupTestDB(t)
	tables := seedTables(t, db, 4)
	customer := seedCustomer(t, db)

	avail := services.NewAvailabilityService(db)
	free, err := avail.IsTableFree(context.Background(), tables[0].ID, "2025-07-04", "19:00")
	assert.NoError(t, err)
	assert.True(t, free)

	bookings := services.NewBookingService(db)
	_, err = bookings.Create(context.Background(), services.CreateBookingInput{
		CustomerID: customer.ID,
		TableID:    tables[0].ID,
		Date:       "2025-07-04",
		Time:       "19:00",
		Guests:     2,
	})
	assert.NoError(t, err)

	free, err = avail.IsTableFree(context.Background(), tables[0].ID, "2025-07-04", "19:00")
	assert.NoError(t, err)
	assert.False(t, free)

	_, err = avail.IsTableFree(context.Background(), 999, "2025-07-04", "19:00")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestNormalizeTimeDropsSeconds(t *testing.T) {
	got, err := services.NormalizeTime("19:00:00")
	assert.NoError(t, err)
	assert.Equal(t, "19:00", got)

	got, err = services.NormalizeTime("19:30")
	assert.NoError(t, err)
	assert.Equal(t, "19:30", got)

	_, err = services.NormalizeTime("7pm")
	assert.ErrorIs(t, err, services.ErrInvalidArgument)
}

func TestSlotStatus(t *testing.T) {
	db := setupTestDB(t)
	tables := seedTables(t, db, 4)
	customer := seedCustomer(t, db)

	avail := services.NewAvailabilityService(db)
	status, err := avail.SlotStatus(context.Background(), "2025-07-04", tables[0].ID)
	assert.NoError(t, err)
	assert.Contains(t, status, "no bookings")

	bookings := services.NewBookingService(db)
	_, err = bookings.Create(context.Background(), services.CreateBookingInput{
		CustomerID: customer.ID,
		TableID:    tables[0].ID,
		Date:       "2025-07-04",
		Time:       "19:00",
		Guests:     2,
	})
	assert.NoError(t, err)

	status, err = avail.SlotStatus(context.Background(), "2025-07-04", tables[0].ID)
	assert.NoError(t, err)
	assert.Contains(t, status, "1 active booking")

	_, err = avail.SlotStatus(context.Background(), "2025-07-04", 999)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
