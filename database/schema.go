package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/littlelemon/reservations/utils"
)

// mysql has no partial unique indexes, so the guard there is a pair of
// BEFORE triggers raising SQLSTATE 45000 when a second active booking
// targets an occupied slot.
var mysqlSlotGuardStatements = []string{
	`DROP TRIGGER IF EXISTS bookings_slot_guard_insert`,
	`CREATE TRIGGER bookings_slot_guard_insert
	BEFORE INSERT ON bookings
	FOR EACH ROW
	BEGIN
		IF NEW.status IN ('pending','confirmed') AND EXISTS (
			SELECT 1 FROM bookings
			WHERE table_id = NEW.table_id
			  AND booking_date = NEW.booking_date
			  AND booking_time = NEW.booking_time
			  AND status IN ('pending','confirmed')
		) THEN
			SIGNAL SQLSTATE '45000' SET MESSAGE_TEXT = 'slot already booked';
		END IF;
	END`,
	`DROP TRIGGER IF EXISTS bookings_slot_guard_update`,
	`CREATE TRIGGER bookings_slot_guard_update
	BEFORE UPDATE ON bookings
	FOR EACH ROW
	BEGIN
		IF NEW.status IN ('pending','confirmed') AND EXISTS (
			SELECT 1 FROM bookings
			WHERE table_id = NEW.table_id
			  AND booking_date = NEW.booking_date
			  AND booking_time = NEW.booking_time
			  AND status IN ('pending','confirmed')
			  AND id <> NEW.id
		) THEN
			SIGNAL SQLSTATE '45000' SET MESSAGE_TEXT = 'slot already booked';
		END IF;
	END`,
}

const partialSlotIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_active_slot
	ON bookings (table_id, booking_date, booking_time)
	WHERE status IN ('pending','confirmed')`

// InstallSlotGuard installs the store-level uniqueness guard for active
// slots, so two concurrent creates for the same (table, date, time) cannot
// both commit even without the in-transaction check.
func InstallSlotGuard(db *gorm.DB) error {
	switch db.Dialector.Name() {
	case "sqlite", "postgres":
		if err := db.Exec(partialSlotIndex).Error; err != nil {
			return fmt.Errorf("installing slot index: %w", err)
		}
		utils.InfoLogger.Println("Slot guard installed: partial unique index idx_bookings_active_slot")
	case "mysql":
		for _, stmt := range mysqlSlotGuardStatements {
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("installing slot triggers: %w", err)
			}
		}
		utils.InfoLogger.Println("Slot guard installed: bookings_slot_guard_* triggers")
	default:
		utils.ErrorLogger.Printf("No slot guard for dialect %q, relying on transactional checks only", db.Dialector.Name())
	}
	return nil
}
