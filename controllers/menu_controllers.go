package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/littlelemon/reservations/models"
	"github.com/littlelemon/reservations/services"
	"github.com/littlelemon/reservations/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// CreateCategory -> POST /menu-categories
func (mc *MenuController) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category := models.MenuCategory{Name: req.Name}
	if err := mc.DB.Create(&category).Error; err != nil {
		respondServiceError(c, services.Classify(err))
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Category created successfully", category)
}

// GetAllCategories -> GET /menu-categories
func (mc *MenuController) GetAllCategories(c *gin.Context) {
	var categories []models.MenuCategory
	if err := mc.DB.Order("name ASC").Find(&categories).Error; err != nil {
		respondServiceError(c, services.Classify(err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of categories", categories)
}

// CreateMenuItem -> POST /menus
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var req struct {
		CategoryID  uint    `json:"category_id" binding:"required"`
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Price       float64 `json:"price" binding:"required"`
		Cost        float64 `json:"cost"`
		Stock       int     `json:"stock"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Price < 0 || req.Cost < 0 || req.Cost > req.Price {
		utils.RespondError(c, http.StatusBadRequest, services.ErrInvalidArgument)
		return
	}

	var category models.MenuCategory
	if err := mc.DB.First(&category, req.CategoryID).Error; err != nil {
		respondServiceError(c, services.Classify(err))
		return
	}

	item := models.MenuItem{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Cost:        req.Cost,
		Stock:       req.Stock,
		IsAvailable: true,
	}
	if err := mc.DB.Create(&item).Error; err != nil {
		respondServiceError(c, services.Classify(err))
		return
	}

	utils.InfoLogger.Printf("Menu item created: %s (%s) at %s",
		item.Name, category.Name, utils.FormatCurrency(item.Price))
	utils.RespondJSON(c, http.StatusCreated, "Menu item created successfully", item)
}

// GetAllMenuItems -> GET /menus, available items only unless ?all=true
func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	query := mc.DB.Preload("Category")
	if c.Query("all") != "true" {
		query = query.Where("is_available = ?", true)
	}

	var items []models.MenuItem
	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		respondServiceError(c, services.Classify(err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

// UpdateMenuItem -> PATCH /menus/:menu_item_id
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	var req struct {
		Price       *float64 `json:"price"`
		Cost        *float64 `json:"cost"`
		Stock       *int     `json:"stock"`
		IsAvailable *bool    `json:"is_available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.MenuItem
	if err := mc.DB.First(&item, c.Param("menu_item_id")).Error; err != nil {
		respondServiceError(c, services.Classify(err))
		return
	}

	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Cost != nil {
		item.Cost = *req.Cost
	}
	if req.Stock != nil {
		item.Stock = *req.Stock
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if item.Price < 0 || item.Cost < 0 {
		utils.RespondError(c, http.StatusBadRequest, services.ErrInvalidArgument)
		return
	}

	if err := mc.DB.Save(&item).Error; err != nil {
		respondServiceError(c, services.Classify(err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// GetMaxQuantity -> GET /menus/:menu_item_id/max-quantity
// Largest quantity of the item ever sold in a single order line.
func (mc *MenuController) GetMaxQuantity(c *gin.Context) {
	var item models.MenuItem
	if err := mc.DB.First(&item, c.Param("menu_item_id")).Error; err != nil {
		respondServiceError(c, services.Classify(err))
		return
	}

	var maxQuantity *int
	err := mc.DB.Model(&models.OrderDetail{}).
		Where("menu_item_id = ?", item.ID).
		Select("MAX(quantity)").
		Scan(&maxQuantity).Error
	if err != nil {
		respondServiceError(c, services.Classify(err))
		return
	}

	quantity := 0
	if maxQuantity != nil {
		quantity = *maxQuantity
	}
	utils.RespondJSON(c, http.StatusOK, "Max quantity ordered", gin.H{
		"menu_item_id": item.ID,
		"name":         item.Name,
		"max_quantity": quantity,
	})
}
