package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/littlelemon/reservations/models"
	"github.com/littlelemon/reservations/services"
	"github.com/littlelemon/reservations/utils"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// CreateTable -> POST /tables
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		TableNumber     string `json:"table_number" binding:"required"`
		SeatingCapacity int    `json:"seating_capacity" binding:"required"`
		Location        string `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.SeatingCapacity <= 0 {
		utils.RespondError(c, http.StatusBadRequest, services.ErrInvalidArgument)
		return
	}

	table := models.Table{
		TableNumber:     req.TableNumber,
		SeatingCapacity: req.SeatingCapacity,
		Location:        "main",
		IsAvailable:     true,
	}
	if req.Location != "" {
		table.Location = req.Location
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		respondServiceError(c, services.Classify(err))
		return
	}

	utils.InfoLogger.Printf("New table created: %s (seats %d, %s)",
		table.TableNumber, table.SeatingCapacity, table.Location)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> GET /tables
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Order("table_number ASC").Find(&tables).Error; err != nil {
		respondServiceError(c, services.Classify(err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> GET /tables/:table_id
func (tc *TableController) GetTableByID(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, c.Param("table_id")).Error; err != nil {
		respondServiceError(c, services.Classify(err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// UpdateTable -> PATCH /tables/:table_id
func (tc *TableController) UpdateTable(c *gin.Context) {
	var req struct {
		SeatingCapacity *int    `json:"seating_capacity"`
		Location        *string `json:"location"`
		IsAvailable     *bool   `json:"is_available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, c.Param("table_id")).Error; err != nil {
		respondServiceError(c, services.Classify(err))
		return
	}

	if req.SeatingCapacity != nil {
		if *req.SeatingCapacity <= 0 {
			utils.RespondError(c, http.StatusBadRequest, services.ErrInvalidArgument)
			return
		}
		table.SeatingCapacity = *req.SeatingCapacity
	}
	if req.Location != nil {
		table.Location = *req.Location
	}
	if req.IsAvailable != nil {
		table.IsAvailable = *req.IsAvailable
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		respondServiceError(c, services.Classify(err))
		return
	}

	utils.InfoLogger.Printf("Table %d updated (seats %d, available=%t)",
		table.ID, table.SeatingCapacity, table.IsAvailable)
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}
