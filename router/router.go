package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/littlelemon/reservations/controllers"
	"github.com/littlelemon/reservations/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	authCtrl := controllers.NewAuthController(db)
	bookingCtrl := controllers.NewBookingController(db)
	tableCtrl := controllers.NewTableController(db)
	customerCtrl := controllers.NewCustomerController(db)
	menuCtrl := controllers.NewMenuController(db)
	orderCtrl := controllers.NewOrderController(db)
	reportCtrl := controllers.NewReportController(db)

	api := r.Group("/api/v1")

	api.POST("/auth/login", middlewares.NewStrictRateLimiter(), authCtrl.Login)

	// availability and booking creation are customer-facing; staff
	// identity, when present, upgrades the initial booking status
	api.GET("/availability", bookingCtrl.CheckAvailability)
	api.POST("/bookings", middlewares.OptionalAuth(), bookingCtrl.CreateBooking)
	api.GET("/menus", menuCtrl.GetAllMenuItems)
	api.POST("/customers", customerCtrl.CreateCustomer)

	protected := api.Group("")
	protected.Use(middlewares.AuthMiddleware())
	{
		protected.GET("/bookings", bookingCtrl.GetBookingsByDate)
		protected.GET("/bookings/:booking_id", bookingCtrl.GetBookingByID)
		protected.PATCH("/bookings/:booking_id", bookingCtrl.UpdateBooking)
		protected.DELETE("/bookings/:booking_id", bookingCtrl.CancelBooking)
		protected.POST("/bookings/:booking_id/confirm", bookingCtrl.ConfirmBooking)
		protected.POST("/bookings/:booking_id/complete", bookingCtrl.CompleteBooking)

		protected.GET("/tables", tableCtrl.GetAllTables)
		protected.GET("/tables/:table_id", tableCtrl.GetTableByID)
		protected.GET("/tables/:table_id/slot-status", bookingCtrl.SlotStatus)

		protected.GET("/customers", customerCtrl.GetAllCustomers)
		protected.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)

		protected.POST("/orders", orderCtrl.CreateOrder)
		protected.GET("/orders", orderCtrl.GetAllOrders)
		protected.GET("/orders/:order_id", orderCtrl.GetOrderByID)

		protected.GET("/menus/:menu_item_id/max-quantity", menuCtrl.GetMaxQuantity)
	}

	admin := api.Group("")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RequireRoles("manager"))
	{
		admin.POST("/auth/register", authCtrl.RegisterEmployee)

		admin.POST("/tables", tableCtrl.CreateTable)
		admin.PATCH("/tables/:table_id", tableCtrl.UpdateTable)

		admin.POST("/menu-categories", menuCtrl.CreateCategory)
		admin.GET("/menu-categories", menuCtrl.GetAllCategories)
		admin.POST("/menus", menuCtrl.CreateMenuItem)
		admin.PATCH("/menus/:menu_item_id", menuCtrl.UpdateMenuItem)

		admin.GET("/reports/daily", reportCtrl.DailyReport)
		admin.GET("/reports/daily/pdf", reportCtrl.DailyReportPDF)
		admin.GET("/reports/sales", reportCtrl.SalesMetrics)
		admin.GET("/reports/bookings", reportCtrl.BookingMetrics)
		admin.POST("/reports/export", reportCtrl.ExportReports)
	}

	return r
}
