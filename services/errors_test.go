package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/littlelemon/reservations/services"
)

func TestClassify(t *testing.T) {
	assert.NoError(t, services.Classify(nil))

	// taxonomy errors pass through with their wrapping intact
	wrapped := fmt.Errorf("%w: table T1 at 2025-07-04 19:00", services.ErrSlotTaken)
	assert.Equal(t, wrapped, services.Classify(wrapped))

	assert.ErrorIs(t, services.Classify(gorm.ErrRecordNotFound), services.ErrNotFound)
	assert.ErrorIs(t, services.Classify(gorm.ErrDuplicatedKey), services.ErrSlotTaken)
	assert.ErrorIs(t, services.Classify(context.DeadlineExceeded), services.ErrTimeout)
	assert.ErrorIs(t, services.Classify(context.Canceled), services.ErrTimeout)

	// driver messages from the store-level slot guard
	assert.ErrorIs(t, services.Classify(errors.New("UNIQUE constraint failed: bookings.table_id")), services.ErrSlotTaken)
	assert.ErrorIs(t, services.Classify(errors.New("Error 1062: Duplicate entry")), services.ErrSlotTaken)
	assert.ErrorIs(t, services.Classify(errors.New("Error 1644: slot already booked")), services.ErrSlotTaken)

	// anything else degrades to unavailable but keeps the cause
	cause := errors.New("connection refused")
	classified := services.Classify(cause)
	assert.ErrorIs(t, classified, services.ErrUnavailable)
	assert.ErrorIs(t, classified, cause)
}
