package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/littlelemon/reservations/models"
	"github.com/littlelemon/reservations/services"
	"github.com/littlelemon/reservations/utils"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// CreateOrder -> POST /orders
// Line subtotals and the order total are computed here, inside one
// transaction with the stock decrements; a bad line rolls everything back.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	type itemReq struct {
		MenuItemID uint   `json:"menu_item_id" binding:"required"`
		Quantity   int    `json:"quantity" binding:"required"`
		Notes      string `json:"notes"`
	}
	var req struct {
		CustomerID uint      `json:"customer_id" binding:"required"`
		BookingID  *uint     `json:"booking_id"`
		Items      []itemReq `json:"items" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			utils.RespondError(c, http.StatusBadRequest,
				fmt.Errorf("%w: quantity must be positive", services.ErrInvalidArgument))
			return
		}
	}

	var order models.Order
	now := time.Now()

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.First(&customer, req.CustomerID).Error; err != nil {
			return services.Classify(err)
		}
		if req.BookingID != nil {
			var booking models.Booking
			if err := tx.First(&booking, *req.BookingID).Error; err != nil {
				return services.Classify(err)
			}
		}

		order = models.Order{
			CustomerID: req.CustomerID,
			BookingID:  req.BookingID,
			OrderDate:  now.Format(services.DateLayout),
			OrderTime:  now.Format(services.TimeLayout),
			Status:     models.OrderStatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return services.Classify(err)
		}

		var total float64
		for _, item := range req.Items {
			var menuItem models.MenuItem
			if err := tx.First(&menuItem, item.MenuItemID).Error; err != nil {
				return services.Classify(err)
			}
			if !menuItem.IsAvailable || menuItem.Stock < item.Quantity {
				return fmt.Errorf("%w: %s is out of stock", services.ErrInvalidState, menuItem.Name)
			}

			subtotal := float64(item.Quantity) * menuItem.Price
			detail := models.OrderDetail{
				OrderID:    order.ID,
				MenuItemID: menuItem.ID,
				Quantity:   item.Quantity,
				UnitPrice:  menuItem.Price,
				Subtotal:   subtotal,
				Notes:      item.Notes,
			}
			if err := tx.Create(&detail).Error; err != nil {
				return services.Classify(err)
			}

			menuItem.Stock -= item.Quantity
			if err := tx.Save(&menuItem).Error; err != nil {
				return services.Classify(err)
			}
			total += subtotal
		}

		order.TotalAmount = total
		if err := tx.Save(&order).Error; err != nil {
			return services.Classify(err)
		}
		return nil
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order %d created for customer %d, total %s",
		order.ID, order.CustomerID, utils.FormatCurrency(order.TotalAmount))
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetAllOrders -> GET /orders
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Preload("OrderDetails").Order("id ASC").Find(&orders).Error; err != nil {
		respondServiceError(c, services.Classify(err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> GET /orders/:order_id
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	var order models.Order
	err := oc.DB.Preload("OrderDetails").Preload("OrderDetails.MenuItem").
		Preload("Customer").
		First(&order, c.Param("order_id")).Error
	if err != nil {
		respondServiceError(c, services.Classify(err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}
