package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/littlelemon/reservations/models"
	"github.com/littlelemon/reservations/services"
	"github.com/littlelemon/reservations/utils"
)

type BookingController struct {
	DB           *gorm.DB
	Bookings     *services.BookingService
	Availability *services.AvailabilityService
}

func NewBookingController(db *gorm.DB) *BookingController {
	return &BookingController{
		DB:           db,
		Bookings:     services.NewBookingService(db),
		Availability: services.NewAvailabilityService(db),
	}
}

// CheckAvailability -> GET /availability?date=&time=&party_size=
func (bc *BookingController) CheckAvailability(c *gin.Context) {
	partySize, err := strconv.Atoi(c.Query("party_size"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, services.ErrInvalidArgument)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	tables, err := bc.Availability.FindAvailableTables(ctx, c.Query("date"), c.Query("time"), partySize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Available tables", tables)
}

// SlotStatus -> GET /tables/:table_id/slot-status?date=
func (bc *BookingController) SlotStatus(c *gin.Context) {
	tableID, err := strconv.ParseUint(c.Param("table_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, services.ErrInvalidArgument)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	status, err := bc.Availability.SlotStatus(ctx, c.Query("date"), uint(tableID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Slot status", gin.H{"status": status})
}

// CreateBooking -> POST /bookings
// Staff-taken bookings start confirmed, anything else starts pending.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req struct {
		CustomerID      uint   `json:"customer_id" binding:"required"`
		TableID         uint   `json:"table_id" binding:"required"`
		Date            string `json:"date" binding:"required"`
		Time            string `json:"time" binding:"required"`
		PartySize       int    `json:"party_size" binding:"required"`
		SpecialRequests string `json:"special_requests"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	in := services.CreateBookingInput{
		CustomerID:      req.CustomerID,
		TableID:         req.TableID,
		Date:            req.Date,
		Time:            req.Time,
		Guests:          req.PartySize,
		SpecialRequests: req.SpecialRequests,
	}
	if employeeID, ok := c.Get("employeeID"); ok {
		id := employeeID.(uint)
		in.EmployeeID = &id
		in.Status = models.BookingStatusConfirmed
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	booking, err := bc.Bookings.Create(ctx, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Booking created", booking)
}

// UpdateBooking -> PATCH /bookings/:booking_id
func (bc *BookingController) UpdateBooking(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("booking_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, services.ErrInvalidArgument)
		return
	}

	var req struct {
		Date      *string `json:"date"`
		Time      *string `json:"time"`
		PartySize *int    `json:"party_size"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	booking, err := bc.Bookings.Update(ctx, uint(bookingID), services.UpdateBookingInput{
		Date:   req.Date,
		Time:   req.Time,
		Guests: req.PartySize,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking updated", booking)
}

// CancelBooking -> DELETE /bookings/:booking_id
func (bc *BookingController) CancelBooking(c *gin.Context) {
	bc.transition(c, bc.Bookings.Cancel, "Booking cancelled")
}

// ConfirmBooking -> POST /bookings/:booking_id/confirm
func (bc *BookingController) ConfirmBooking(c *gin.Context) {
	bc.transition(c, bc.Bookings.Confirm, "Booking confirmed")
}

// CompleteBooking -> POST /bookings/:booking_id/complete
func (bc *BookingController) CompleteBooking(c *gin.Context) {
	bc.transition(c, bc.Bookings.Complete, "Booking completed")
}

func (bc *BookingController) transition(c *gin.Context, fn func(ctx context.Context, id uint) (models.Booking, error), message string) {
	bookingID, err := strconv.ParseUint(c.Param("booking_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, services.ErrInvalidArgument)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	booking, err := fn(ctx, uint(bookingID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, booking)
}

// GetBookingByID -> GET /bookings/:booking_id
func (bc *BookingController) GetBookingByID(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("booking_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, services.ErrInvalidArgument)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	booking, err := bc.Bookings.ByID(ctx, uint(bookingID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking detail", booking)
}

// GetBookingsByDate -> GET /bookings?date=
func (bc *BookingController) GetBookingsByDate(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	bookings, err := bc.Bookings.ByDate(ctx, c.Query("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Bookings for "+c.Query("date"), bookings)
}
