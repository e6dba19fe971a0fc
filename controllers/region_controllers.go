package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/adisyon-app/adisyon/models"
	"github.com/adisyon-app/adisyon/services"
	"github.com/adisyon-app/adisyon/utils"
)

type RegionController struct {
	DB       *gorm.DB
	Sessions *services.SessionService
}

func NewRegionController(db *gorm.DB, sessions *services.SessionService) *RegionController {
	return &RegionController{DB: db, Sessions: sessions}
}

// GetAllRegions -> list regions sorted by name
func (rc *RegionController) GetAllRegions(c *gin.Context) {
	var regions []models.Region
	if err := rc.DB.Order("name asc").Find(&regions).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of regions", regions)
}

// CreateRegion -> add a new region
func (rc *RegionController) CreateRegion(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	region := models.Region{Name: req.Name}
	if err := rc.DB.Create(&region).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New region created: %s", region.Name)
	utils.RespondJSON(c, http.StatusCreated, "Region created successfully", region)
}

// DeleteRegion -> remove a region; blocked while tables still reference it
func (rc *RegionController) DeleteRegion(c *gin.Context) {
	regionID := c.Param("region_id")

	var region models.Region
	if err := rc.DB.First(&region, regionID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var tableCount int64
	if err := rc.DB.Model(&models.Table{}).Where("region_id = ?", region.ID).Count(&tableCount).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if tableCount > 0 {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("region %d still has %d tables", region.ID, tableCount))
		return
	}

	if err := rc.DB.Delete(&region).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Region %d deleted", region.ID)
	utils.RespondJSON(c, http.StatusOK, "Region deleted", gin.H{"id": region.ID})
}

// GetRegionTablesAndSessions -> the orders view snapshot: tables of the
// region plus the open session per table
func (rc *RegionController) GetRegionTablesAndSessions(c *gin.Context) {
	regionIDStr := c.Query("regionId")
	if regionIDStr == "" {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("regionId is required"))
		return
	}
	regionID, err := strconv.ParseUint(regionIDStr, 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("regionId must be numeric"))
		return
	}

	snapshot, err := rc.Sessions.GetRegionTablesAndSessions(uint(regionID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Region tables and sessions", snapshot)
}
