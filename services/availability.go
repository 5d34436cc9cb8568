package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/littlelemon/reservations/models"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// AvailabilityService answers slot-availability queries. It never mutates
// state; every call reads current committed rows.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// NormalizeDate validates a YYYY-MM-DD date string.
func NormalizeDate(date string) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("%w: bad date %q", ErrInvalidArgument, date)
	}
	return t.Format(DateLayout), nil
}

// NormalizeTime validates an HH:MM time string; a trailing seconds
// component is accepted and dropped.
func NormalizeTime(value string) (string, error) {
	if t, err := time.Parse("15:04:05", value); err == nil {
		return t.Format(TimeLayout), nil
	}
	t, err := time.Parse(TimeLayout, value)
	if err != nil {
		return "", fmt.Errorf("%w: bad time %q", ErrInvalidArgument, value)
	}
	return t.Format(TimeLayout), nil
}

// FindAvailableTables returns tables seating at least partySize with no
// active booking at the slot, tightest fit first, then table id.
// Past dates are accepted; no match yields an empty slice.
func (s *AvailabilityService) FindAvailableTables(ctx context.Context, date, timeOfDay string, partySize int) ([]models.Table, error) {
	if partySize <= 0 {
		return nil, fmt.Errorf("%w: party size must be positive, got %d", ErrInvalidArgument, partySize)
	}
	date, err := NormalizeDate(date)
	if err != nil {
		return nil, err
	}
	timeOfDay, err = NormalizeTime(timeOfDay)
	if err != nil {
		return nil, err
	}

	occupied := s.DB.Model(&models.Booking{}).
		Select("table_id").
		Where("booking_date = ? AND booking_time = ? AND status IN ?",
			date, timeOfDay, models.ActiveBookingStatuses)

	var tables []models.Table
	err = s.DB.WithContext(ctx).
		Where("seating_capacity >= ? AND is_available = ?", partySize, true).
		Where("id NOT IN (?)", occupied).
		Order("seating_capacity ASC, id ASC").
		Find(&tables).Error
	if err != nil {
		return nil, Classify(err)
	}
	return tables, nil
}

// IsTableFree reports whether the table has no active booking at the slot.
func (s *AvailabilityService) IsTableFree(ctx context.Context, tableID uint, date, timeOfDay string) (bool, error) {
	date, err := NormalizeDate(date)
	if err != nil {
		return false, err
	}
	timeOfDay, err = NormalizeTime(timeOfDay)
	if err != nil {
		return false, err
	}

	var table models.Table
	if err := s.DB.WithContext(ctx).First(&table, tableID).Error; err != nil {
		return false, Classify(err)
	}
	return isTableFreeTx(s.DB.WithContext(ctx), tableID, date, timeOfDay, 0)
}

// isTableFreeTx is the commit-time check the lifecycle manager runs inside
// its write transaction, locking the competing rows. excludeBookingID lets
// an update ignore the booking's own row.
func isTableFreeTx(tx *gorm.DB, tableID uint, date, timeOfDay string, excludeBookingID uint) (bool, error) {
	query := tx.Model(&models.Booking{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("table_id = ? AND booking_date = ? AND booking_time = ? AND status IN ?",
			tableID, date, timeOfDay, models.ActiveBookingStatuses)
	if excludeBookingID != 0 {
		query = query.Where("id <> ?", excludeBookingID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, Classify(err)
	}
	return count == 0, nil
}

// SlotStatus summarizes a table's bookings for one date.
func (s *AvailabilityService) SlotStatus(ctx context.Context, date string, tableID uint) (string, error) {
	date, err := NormalizeDate(date)
	if err != nil {
		return "", err
	}

	var table models.Table
	if err := s.DB.WithContext(ctx).First(&table, tableID).Error; err != nil {
		return "", Classify(err)
	}

	var count int64
	err = s.DB.WithContext(ctx).Model(&models.Booking{}).
		Where("table_id = ? AND booking_date = ? AND status IN ?",
			tableID, date, models.ActiveBookingStatuses).
		Count(&count).Error
	if err != nil {
		return "", Classify(err)
	}

	if count == 0 {
		return fmt.Sprintf("Table %s has no bookings on %s", table.TableNumber, date), nil
	}
	return fmt.Sprintf("Table %s has %d active booking(s) on %s", table.TableNumber, count, date), nil
}
