package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/adisyon-app/adisyon/models"
	"github.com/adisyon-app/adisyon/utils"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// CreateTable -> adds a table to a region with the next free ordinal
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		RegionID uint    `json:"region_id" binding:"required"`
		Alias    *string `json:"alias"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	err := tc.DB.Transaction(func(tx *gorm.DB) error {
		var region models.Region
		if err := tx.First(&region, req.RegionID).Error; err != nil {
			return err
		}

		// next ordinal within the region, starting at 1
		var maxNumber int
		if err := tx.Model(&models.Table{}).
			Where("region_id = ?", region.ID).
			Select("COALESCE(MAX(table_number), 0)").
			Scan(&maxNumber).Error; err != nil {
			return err
		}

		table = models.Table{
			RegionID:    region.ID,
			TableNumber: maxNumber + 1,
			Alias:       req.Alias,
		}
		return tx.Create(&table).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New table %d created in region %d", table.TableNumber, table.RegionID)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> every table with its region, in ordinal order
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Preload("Region").Order("region_id asc, table_number asc").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// RenameTable -> update the display alias; the ordinal never changes
func (tc *TableController) RenameTable(c *gin.Context) {
	tableID := c.Param("table_id")
	var body struct {
		Alias *string `json:"alias"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	table.Alias = body.Alias
	if err := tc.DB.Model(&table).Update("alias", body.Alias).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table renamed", table)
}

// DeleteTable -> remove a table
func (tc *TableController) DeleteTable(c *gin.Context) {
	tableID := c.Param("table_id")
	var table models.Table

	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table %d deleted", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"id": table.ID})
}
