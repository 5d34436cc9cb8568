package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Error taxonomy surfaced by every service operation. Store-level failures
// are classified into one of these before they leave the package.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNotFound         = errors.New("not found")
	ErrInvalidState     = errors.New("invalid state")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrSlotTaken        = errors.New("slot taken")
	ErrUnavailable      = errors.New("store unavailable")
	ErrTimeout          = errors.New("timeout")
)

var taxonomy = []error{
	ErrInvalidArgument,
	ErrNotFound,
	ErrInvalidState,
	ErrCapacityExceeded,
	ErrSlotTaken,
	ErrUnavailable,
	ErrTimeout,
}

// Classify maps raw store errors onto the taxonomy. Errors that already
// belong to it pass through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range taxonomy {
		if errors.Is(err, kind) {
			return err
		}
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrSlotTaken
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case errors.Is(err, context.Canceled):
		return ErrTimeout
	case isUniqueViolation(err):
		return ErrSlotTaken
	default:
		return errors.Join(ErrUnavailable, err)
	}
}

// isUniqueViolation sniffs driver messages for the slot guard firing. The
// sqlite and mysql drivers do not share a structured error for this.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "slot already booked")
}
