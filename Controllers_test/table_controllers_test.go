package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/littlelemon/reservations/controllers"
	"github.com/littlelemon/reservations/models"
)

func setupTableRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	tableCtrl := controllers.NewTableController(db)
	router.POST("/tables", tableCtrl.CreateTable)
	router.GET("/tables", tableCtrl.GetAllTables)
	router.GET("/tables/:table_id", tableCtrl.GetTableByID)
	router.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
	return router
}

func TestCreateTable(t *testing.T) {
	db := setupTestDB(t)
	router := setupTableRouter(db)

	w := postJSON(t, router, "/tables", map[string]interface{}{
		"table_number":     "A1",
		"seating_capacity": 4,
		"location":         "terrace",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Table created successfully", response["message"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "A1", data["table_number"])
	assert.Equal(t, "terrace", data["location"])
	assert.Equal(t, true, data["is_available"])

	// duplicate table number is a conflict
	w = postJSON(t, router, "/tables", map[string]interface{}{
		"table_number":     "A1",
		"seating_capacity": 2,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetAllTables(t *testing.T) {
	db := setupTestDB(t)
	assert.NoError(t, db.Create(&models.Table{TableNumber: "A1", SeatingCapacity: 2, Location: "main", IsAvailable: true}).Error)
	assert.NoError(t, db.Create(&models.Table{TableNumber: "B1", SeatingCapacity: 4, Location: "main", IsAvailable: true}).Error)

	router := setupTableRouter(db)
	req, err := http.NewRequest("GET", "/tables", nil)
	assert.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "List of tables", response["message"])
	data := response["data"].([]interface{})
	assert.Len(t, data, 2)
}

func TestUpdateTable(t *testing.T) {
	db := setupTestDB(t)
	table := models.Table{TableNumber: "C1", SeatingCapacity: 4, Location: "main", IsAvailable: true}
	assert.NoError(t, db.Create(&table).Error)

	router := setupTableRouter(db)
	payload, err := json.Marshal(map[string]interface{}{"is_available": false, "seating_capacity": 6})
	assert.NoError(t, err)

	url := "/tables/" + strconv.Itoa(int(table.ID))
	req, err := http.NewRequest("PATCH", url, bytes.NewBuffer(payload))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Table updated", response["message"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, false, data["is_available"])
	assert.EqualValues(t, 6, data["seating_capacity"])
}

func TestGetTableByID(t *testing.T) {
	db := setupTestDB(t)
	router := setupTableRouter(db)

	req, err := http.NewRequest("GET", "/tables/999", nil)
	assert.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
