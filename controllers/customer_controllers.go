package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/littlelemon/reservations/models"
	"github.com/littlelemon/reservations/services"
	"github.com/littlelemon/reservations/utils"
)

type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

// CreateCustomer -> POST /customers
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var req struct {
		FirstName string `json:"first_name" binding:"required"`
		LastName  string `json:"last_name" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Phone     string `json:"phone"`
		City      string `json:"city"`
		State     string `json:"state"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	customer := models.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		City:      req.City,
		State:     req.State,
	}
	if err := cc.DB.Create(&customer).Error; err != nil {
		respondServiceError(c, services.Classify(err))
		return
	}

	utils.InfoLogger.Printf("New customer registered: %s", customer.FullName())
	utils.RespondJSON(c, http.StatusCreated, "Customer created successfully", customer)
}

// GetAllCustomers -> GET /customers
func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := cc.DB.Order("id ASC").Find(&customers).Error; err != nil {
		respondServiceError(c, services.Classify(err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of customers", customers)
}

// GetCustomerByID -> GET /customers/:customer_id
func (cc *CustomerController) GetCustomerByID(c *gin.Context) {
	var customer models.Customer
	if err := cc.DB.First(&customer, c.Param("customer_id")).Error; err != nil {
		respondServiceError(c, services.Classify(err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer detail", customer)
}
