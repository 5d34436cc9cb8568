package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/littlelemon/reservations/models"
	"github.com/littlelemon/reservations/services"
	"github.com/littlelemon/reservations/utils"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// Login -> POST /auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var employee models.Employee
	if err := ac.DB.Where("email = ?", req.Email).First(&employee).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(employee.Password), []byte(req.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(employee.ID, employee.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Employee %s logged in", employee.Email)
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":    token,
		"employee": employee,
	})
}

// RegisterEmployee -> POST /auth/register (admin only)
func (ac *AuthController) RegisterEmployee(c *gin.Context) {
	var req struct {
		FirstName string `json:"first_name" binding:"required"`
		LastName  string `json:"last_name" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required,min=8"`
		Position  string `json:"position"`
		Role      string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	employee := models.Employee{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hashed),
		Position:  req.Position,
		Role:      "staff",
	}
	if req.Role != "" {
		employee.Role = req.Role
	}

	if err := ac.DB.Create(&employee).Error; err != nil {
		respondServiceError(c, services.Classify(err))
		return
	}

	utils.InfoLogger.Printf("Employee registered: %s (%s)", employee.Email, employee.Role)
	utils.RespondJSON(c, http.StatusCreated, "Employee registered", employee)
}
