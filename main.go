package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/littlelemon/reservations/config"
	"github.com/littlelemon/reservations/controllers"
	"github.com/littlelemon/reservations/database"
	"github.com/littlelemon/reservations/models"
	"github.com/littlelemon/reservations/router"
	"github.com/littlelemon/reservations/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}
	utils.InitLogger()
}

func main() {
	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	utils.InitDB(db)

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	controllers.QueryTimeout = cfg.QueryTimeout

	r := router.SetupRouter(db)

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Employee{},
		&models.Customer{},
		&models.Table{},
		&models.Booking{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderDetail{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	if err := database.InstallSlotGuard(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to install slot guard: %v", err)
	}
}
