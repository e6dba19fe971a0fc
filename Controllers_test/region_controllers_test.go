package Controllers_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/adisyon-app/adisyon/controllers"
	"github.com/adisyon-app/adisyon/hub"
	"github.com/adisyon-app/adisyon/models"
	"github.com/adisyon-app/adisyon/services"
)

func setupRegionRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	sessionSvc := services.NewSessionService(db, hub.NopPublisher{})
	regionCtrl := controllers.NewRegionController(db, sessionSvc)
	router.GET("/api/regions", regionCtrl.GetAllRegions)
	router.POST("/api/regions", regionCtrl.CreateRegion)
	router.DELETE("/api/regions/:region_id", regionCtrl.DeleteRegion)
	router.GET("/api/region-tables-and-sessions", regionCtrl.GetRegionTablesAndSessions)
	return router
}

func TestGetAllRegionsSorted(t *testing.T) {
	db := setupTestDB(t)
	db.Create(&models.Region{Name: "Terrace"})
	db.Create(&models.Region{Name: "Garden"})

	router := setupRegionRouter(db)
	w := performRequest(router, "GET", "/api/regions", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := decodeResponse(t, w)
	assert.Equal(t, "List of regions", response["message"])
	data := response["data"].([]interface{})
	assert.Len(t, data, 2)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "Garden", first["name"])
}

func TestCreateRegionValidation(t *testing.T) {
	db := setupTestDB(t)
	router := setupRegionRouter(db)

	w := performRequest(router, "POST", "/api/regions", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, "POST", "/api/regions", map[string]string{"name": "Terrace"})
	assert.Equal(t, http.StatusCreated, w.Code)
	response := decodeResponse(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Terrace", data["name"])
}

func TestDeleteRegionBlockedWhileTablesExist(t *testing.T) {
	db := setupTestDB(t)
	region := models.Region{Name: "Terrace"}
	db.Create(&region)
	db.Create(&models.Table{RegionID: region.ID, TableNumber: 1})

	router := setupRegionRouter(db)
	url := "/api/regions/" + strconv.Itoa(int(region.ID))

	w := performRequest(router, "DELETE", url, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	db.Where("region_id = ?", region.ID).Delete(&models.Table{})
	w = performRequest(router, "DELETE", url, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetRegionTablesAndSessionsRequiresRegionID(t *testing.T) {
	db := setupTestDB(t)
	router := setupRegionRouter(db)

	w := performRequest(router, "GET", "/api/region-tables-and-sessions", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRegionTablesAndSessionsSnapshot(t *testing.T) {
	db := setupTestDB(t)
	region := models.Region{Name: "Terrace"}
	db.Create(&region)
	table := models.Table{RegionID: region.ID, TableNumber: 1}
	db.Create(&table)

	sessionSvc := services.NewSessionService(db, hub.NopPublisher{})
	session, err := sessionSvc.OpenTable(region.ID, table.TableNumber)
	assert.NoError(t, err)

	router := setupRegionRouter(db)
	w := performRequest(router, "GET", "/api/region-tables-and-sessions?regionId="+strconv.Itoa(int(region.ID)), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := decodeResponse(t, w)
	data := response["data"].(map[string]interface{})
	tables := data["tables"].([]interface{})
	assert.Len(t, tables, 1)
	sessionMap := data["sessionMap"].(map[string]interface{})
	entry := sessionMap[strconv.Itoa(int(table.ID))].(map[string]interface{})
	assert.Equal(t, float64(session.ID), entry["id"])
}
