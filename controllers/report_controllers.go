package controllers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/littlelemon/reservations/analytics"
	"github.com/littlelemon/reservations/services"
	"github.com/littlelemon/reservations/utils"
)

type ReportController struct {
	DB      *gorm.DB
	Reports *services.ReportService
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db, Reports: services.NewReportService(db)}
}

// DailyReport -> GET /reports/daily?date=
func (rc *ReportController) DailyReport(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	report, err := rc.Reports.Daily(ctx, c.Query("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Daily report for "+report.Date, report)
}

// DailyReportPDF -> GET /reports/daily/pdf?date=
func (rc *ReportController) DailyReportPDF(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	report, err := rc.Reports.Daily(ctx, c.Query("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=daily_report_"+report.Date+".pdf")
	c.Header("Content-Type", "application/pdf")
	if err := analytics.WriteDailyReportPDF(c.Writer, report); err != nil {
		utils.ErrorLogger.Printf("Error rendering daily report PDF: %v", err)
	}
}

// SalesMetrics -> GET /reports/sales?from=&to=
func (rc *ReportController) SalesMetrics(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	rows, err := analytics.LoadSalesRows(ctx, rc.DB, c.Query("from"), c.Query("to"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	metrics := analytics.AnalyzeSales(rows)
	utils.InfoLogger.Printf("Sales report: %s", analytics.SalesSummaryLine(metrics))
	utils.RespondJSON(c, http.StatusOK, "Sales metrics", metrics)
}

// BookingMetrics -> GET /reports/bookings?from=&to=
func (rc *ReportController) BookingMetrics(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	rows, err := analytics.LoadBookingRows(ctx, rc.DB, c.Query("from"), c.Query("to"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking metrics", analytics.AnalyzeBookings(rows))
}

// ExportReports -> POST /reports/export?from=&to=
// Writes CSV data sets and charts to the export directory and returns the
// file list. A chart failure degrades to a warning, the CSVs still land.
func (rc *ReportController) ExportReports(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	dir := os.Getenv("EXPORT_DIR")
	if dir == "" {
		dir = "exports"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	salesRows, err := analytics.LoadSalesRows(ctx, rc.DB, c.Query("from"), c.Query("to"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	bookingRows, err := analytics.LoadBookingRows(ctx, rc.DB, c.Query("from"), c.Query("to"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var files []string
	var warnings []string

	salesCSV := filepath.Join(dir, "sales_data.csv")
	if err := writeCSVFile(salesCSV, func(f *os.File) error {
		return analytics.ExportSalesCSV(f, salesRows)
	}); err != nil {
		respondServiceError(c, err)
		return
	}
	files = append(files, salesCSV)

	bookingsCSV := filepath.Join(dir, "bookings_data.csv")
	if err := writeCSVFile(bookingsCSV, func(f *os.File) error {
		return analytics.ExportBookingsCSV(f, bookingRows)
	}); err != nil {
		respondServiceError(c, err)
		return
	}
	files = append(files, bookingsCSV)

	salesCharts, err := analytics.RenderSalesCharts(analytics.AnalyzeSales(salesRows), filepath.Join(dir, "charts"))
	files = append(files, salesCharts...)
	if err != nil {
		warnings = append(warnings, "sales charts: "+err.Error())
	}
	bookingCharts, err := analytics.RenderBookingCharts(analytics.AnalyzeBookings(bookingRows), filepath.Join(dir, "charts"))
	files = append(files, bookingCharts...)
	if err != nil {
		warnings = append(warnings, "booking charts: "+err.Error())
	}

	utils.InfoLogger.Printf("Exported %d report files to %s", len(files), dir)
	utils.RespondJSON(c, http.StatusOK, "Reports exported", gin.H{
		"files":    files,
		"warnings": warnings,
	})
}

func writeCSVFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}
