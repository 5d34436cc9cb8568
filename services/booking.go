package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/littlelemon/reservations/models"
	"github.com/littlelemon/reservations/utils"
)

// BookingService owns booking status transitions. Availability checks and
// writes run inside one transaction so two concurrent creates for the same
// slot cannot both succeed; the store-level slot guard backstops the check.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

type CreateBookingInput struct {
	CustomerID      uint
	TableID         uint
	Date            string
	Time            string
	Guests          int
	SpecialRequests string
	EmployeeID      *uint
	// Status is the initial status, pending unless the caller says
	// otherwise (staff-taken bookings start confirmed).
	Status string
}

type UpdateBookingInput struct {
	Date   *string
	Time   *string
	Guests *int
}

func newReference() string {
	return "BK-" + strings.ToUpper(uuid.NewString()[:8])
}

// Create inserts a new booking after re-checking the slot inside the write
// transaction.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (models.Booking, error) {
	var booking models.Booking

	if in.Guests <= 0 {
		return booking, fmt.Errorf("%w: party size must be positive, got %d", ErrInvalidArgument, in.Guests)
	}
	date, err := NormalizeDate(in.Date)
	if err != nil {
		return booking, err
	}
	timeOfDay, err := NormalizeTime(in.Time)
	if err != nil {
		return booking, err
	}
	status := in.Status
	if status == "" {
		status = models.BookingStatusPending
	}
	if status != models.BookingStatusPending && status != models.BookingStatusConfirmed {
		return booking, fmt.Errorf("%w: initial status %q", ErrInvalidArgument, status)
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := tx.First(&table, in.TableID).Error; err != nil {
			return Classify(err)
		}
		var customer models.Customer
		if err := tx.First(&customer, in.CustomerID).Error; err != nil {
			return Classify(err)
		}

		if in.Guests > table.SeatingCapacity {
			return fmt.Errorf("%w: %d guests on table %s (seats %d)",
				ErrCapacityExceeded, in.Guests, table.TableNumber, table.SeatingCapacity)
		}

		free, err := isTableFreeTx(tx, in.TableID, date, timeOfDay, 0)
		if err != nil {
			return err
		}
		if !free {
			return fmt.Errorf("%w: table %s at %s %s", ErrSlotTaken, table.TableNumber, date, timeOfDay)
		}

		booking = models.Booking{
			Reference:       newReference(),
			CustomerID:      in.CustomerID,
			TableID:         in.TableID,
			EmployeeID:      in.EmployeeID,
			BookingDate:     date,
			BookingTime:     timeOfDay,
			Guests:          in.Guests,
			Status:          status,
			SpecialRequests: in.SpecialRequests,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return Classify(err)
		}
		return nil
	})
	if err != nil {
		return models.Booking{}, err
	}

	utils.InfoLogger.Printf("Booking %s created: table %d, %s %s, %d guests (%s)",
		booking.Reference, booking.TableID, booking.BookingDate, booking.BookingTime, booking.Guests, booking.Status)
	return booking, nil
}

// Update moves a booking to a new slot and/or party size. The availability
// check runs against the new slot excluding the booking's own row.
func (s *BookingService) Update(ctx context.Context, bookingID uint, in UpdateBookingInput) (models.Booking, error) {
	var booking models.Booking

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, bookingID).Error; err != nil {
			return Classify(err)
		}
		if booking.IsTerminal() {
			return fmt.Errorf("%w: booking %s is %s", ErrInvalidState, booking.Reference, booking.Status)
		}

		date := booking.BookingDate
		timeOfDay := booking.BookingTime
		guests := booking.Guests
		var err error

		if in.Date != nil {
			if date, err = NormalizeDate(*in.Date); err != nil {
				return err
			}
		}
		if in.Time != nil {
			if timeOfDay, err = NormalizeTime(*in.Time); err != nil {
				return err
			}
		}
		if in.Guests != nil {
			if *in.Guests <= 0 {
				return fmt.Errorf("%w: party size must be positive, got %d", ErrInvalidArgument, *in.Guests)
			}
			guests = *in.Guests
		}

		var table models.Table
		if err := tx.First(&table, booking.TableID).Error; err != nil {
			return Classify(err)
		}
		if guests > table.SeatingCapacity {
			return fmt.Errorf("%w: %d guests on table %s (seats %d)",
				ErrCapacityExceeded, guests, table.TableNumber, table.SeatingCapacity)
		}

		free, err := isTableFreeTx(tx, booking.TableID, date, timeOfDay, booking.ID)
		if err != nil {
			return err
		}
		if !free {
			return fmt.Errorf("%w: table %s at %s %s", ErrSlotTaken, table.TableNumber, date, timeOfDay)
		}

		booking.BookingDate = date
		booking.BookingTime = timeOfDay
		booking.Guests = guests
		booking.UpdatedAt = time.Now()
		if err := tx.Save(&booking).Error; err != nil {
			return Classify(err)
		}
		return nil
	})
	if err != nil {
		return models.Booking{}, err
	}

	utils.InfoLogger.Printf("Booking %s updated: %s %s, %d guests",
		booking.Reference, booking.BookingDate, booking.BookingTime, booking.Guests)
	return booking, nil
}

// Cancel transitions an active booking to cancelled. A repeat cancel yields
// ErrInvalidState and no side effect.
func (s *BookingService) Cancel(ctx context.Context, bookingID uint) (models.Booking, error) {
	return s.transition(ctx, bookingID, models.BookingStatusCancelled, models.ActiveBookingStatuses)
}

// Confirm moves a pending booking to confirmed.
func (s *BookingService) Confirm(ctx context.Context, bookingID uint) (models.Booking, error) {
	return s.transition(ctx, bookingID, models.BookingStatusConfirmed, []string{models.BookingStatusPending})
}

// Complete closes out a confirmed booking after service.
func (s *BookingService) Complete(ctx context.Context, bookingID uint) (models.Booking, error) {
	return s.transition(ctx, bookingID, models.BookingStatusCompleted, []string{models.BookingStatusConfirmed})
}

func (s *BookingService) transition(ctx context.Context, bookingID uint, target string, allowedFrom []string) (models.Booking, error) {
	var booking models.Booking

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, bookingID).Error; err != nil {
			return Classify(err)
		}

		allowed := false
		for _, from := range allowedFrom {
			if booking.Status == from {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("%w: booking %s is %s, cannot become %s",
				ErrInvalidState, booking.Reference, booking.Status, target)
		}

		booking.Status = target
		booking.UpdatedAt = time.Now()
		if err := tx.Save(&booking).Error; err != nil {
			return Classify(err)
		}
		return nil
	})
	if err != nil {
		return models.Booking{}, err
	}

	utils.InfoLogger.Printf("Booking %s is now %s", booking.Reference, booking.Status)
	return booking, nil
}

// ByID loads a single booking with its customer and table.
func (s *BookingService) ByID(ctx context.Context, bookingID uint) (models.Booking, error) {
	var booking models.Booking
	err := s.DB.WithContext(ctx).
		Preload("Customer").Preload("Table").Preload("Employee").
		First(&booking, bookingID).Error
	if err != nil {
		return models.Booking{}, Classify(err)
	}
	return booking, nil
}

// ByDate lists a date's bookings ordered by time then table id.
func (s *BookingService) ByDate(ctx context.Context, date string) ([]models.Booking, error) {
	date, err := NormalizeDate(date)
	if err != nil {
		return nil, err
	}

	var bookings []models.Booking
	err = s.DB.WithContext(ctx).
		Preload("Customer").Preload("Table").
		Where("booking_date = ?", date).
		Order("booking_time ASC, table_id ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, Classify(err)
	}
	return bookings, nil
}
