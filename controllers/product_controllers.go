package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/adisyon-app/adisyon/models"
	"github.com/adisyon-app/adisyon/utils"
)

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

// GetAllProducts -> list products sorted by name
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	var products []models.Product
	if err := pc.DB.Order("name asc").Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

// CreateProduct -> add a new product
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req struct {
		Name       string   `json:"name" binding:"required"`
		Price      *float64 `json:"price" binding:"required"`
		CategoryID *uint    `json:"category_id"`
		IsFavorite bool     `json:"is_favorite"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	product := models.Product{
		Name:       req.Name,
		Price:      *req.Price,
		CategoryID: req.CategoryID,
		IsFavorite: req.IsFavorite,
	}
	if err := pc.DB.Create(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New product created: %s (%s)", product.Name, utils.FormatCurrencyTRY(product.Price))
	utils.RespondJSON(c, http.StatusCreated, "Product created successfully", product)
}

// DeleteProduct -> remove a product entirely
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	productID := c.Param("product_id")

	var product models.Product
	if err := pc.DB.First(&product, productID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := pc.DB.Delete(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Product %d deleted", product.ID)
	utils.RespondJSON(c, http.StatusOK, "Product deleted", gin.H{"id": product.ID})
}

// GetStockList -> products currently included in the stock view
func (pc *ProductController) GetStockList(c *gin.Context) {
	var products []models.Product
	if err := pc.DB.Where("in_stock_list = ?", true).Order("name asc").Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Stock list", products)
}

// UpdateStock -> set a product's stock and critical levels and include it
// in the stock view
func (pc *ProductController) UpdateStock(c *gin.Context) {
	productID := c.Param("product_id")
	var body struct {
		Stock    *int `json:"stock" binding:"required"`
		Critical *int `json:"critical" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if *body.Stock < 0 || *body.Critical < 0 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("stock and critical must not be negative"))
		return
	}

	var product models.Product
	if err := pc.DB.First(&product, productID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	product.Stock = *body.Stock
	product.Critical = *body.Critical
	product.InStockList = true
	if err := pc.DB.Model(&product).Updates(map[string]interface{}{
		"stock":         product.Stock,
		"critical":      product.Critical,
		"in_stock_list": true,
	}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Product %d stock set to %d (critical %d)", product.ID, product.Stock, product.Critical)
	utils.RespondJSON(c, http.StatusOK, "Stock updated", product)
}

// RemoveFromStockList -> hide a product from the stock view without
// deleting it
func (pc *ProductController) RemoveFromStockList(c *gin.Context) {
	productID := c.Param("product_id")

	var product models.Product
	if err := pc.DB.First(&product, productID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	product.InStockList = false
	if err := pc.DB.Model(&product).Update("in_stock_list", false).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product removed from stock tracking", product)
}
