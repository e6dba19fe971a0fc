package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/adisyon-app/adisyon/controllers"
	"github.com/adisyon-app/adisyon/hub"
	"github.com/adisyon-app/adisyon/middlewares"
	"github.com/adisyon-app/adisyon/services"
)

func SetupRouter(db *gorm.DB, h *hub.Hub) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	// must run before any route is registered, gin binds handler chains at
	// registration time
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	sessionSvc := services.NewSessionService(db, h)
	orderSvc := services.NewOrderService(db, h)
	statsSvc := services.NewStatsService(db)

	regionCtrl := controllers.NewRegionController(db, sessionSvc)
	tableCtrl := controllers.NewTableController(db)
	productCtrl := controllers.NewProductController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	sessionCtrl := controllers.NewSessionController(sessionSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	statsCtrl := controllers.NewStatsController(statsSvc)
	wsCtrl := controllers.NewWSController(h)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// WebSocket endpoint for table-state broadcasts
	r.GET("/ws", wsCtrl.Handler)

	api := r.Group("/api")
	{
		// Read endpoints
		api.GET("/regions", regionCtrl.GetAllRegions)
		api.GET("/region-tables-and-sessions", regionCtrl.GetRegionTablesAndSessions)
		api.GET("/tables", tableCtrl.GetAllTables)
		api.GET("/products", productCtrl.GetAllProducts)
		api.GET("/categories", categoryCtrl.GetAllCategories)
		api.GET("/stock-list", productCtrl.GetStockList)
		api.GET("/open-session", sessionCtrl.GetOpenSession)
		api.GET("/sessions/:session_id/items", sessionCtrl.GetSessionItems)
		api.GET("/sessions/:session_id", sessionCtrl.GetSessionDetails)
		api.GET("/sessions-canceled", sessionCtrl.GetCanceledSessions)
		api.GET("/sessions-paid", sessionCtrl.GetPaidSessions)
		api.GET("/payment-stats", statsCtrl.GetPaymentStats)

		// Session lifecycle
		api.POST("/open-table", sessionCtrl.OpenTable)
		api.POST("/cancel-table", sessionCtrl.CancelTable)
		api.POST("/pay-table", sessionCtrl.PayTable)
		api.POST("/partial-payment", sessionCtrl.PartialPayment)
		api.POST("/close-table", sessionCtrl.CloseTable)
		api.POST("/transfer-table", sessionCtrl.TransferTable)

		// Order items
		api.POST("/upsert-order-items-bulk", orderCtrl.UpsertItemsBulk)
		api.POST("/upsert-order-items", orderCtrl.UpsertItemsIncremental)
	}

	// Administrative mutations get the stricter limiter
	admin := r.Group("/api")
	admin.Use(middlewares.NewStrictRateLimiter())
	{
		admin.POST("/regions", regionCtrl.CreateRegion)
		admin.DELETE("/regions/:region_id", regionCtrl.DeleteRegion)
		admin.POST("/tables", tableCtrl.CreateTable)
		admin.PATCH("/tables/:table_id", tableCtrl.RenameTable)
		admin.DELETE("/tables/:table_id", tableCtrl.DeleteTable)
		admin.POST("/products", productCtrl.CreateProduct)
		admin.DELETE("/products/:product_id", productCtrl.DeleteProduct)
		admin.PATCH("/products/:product_id/stock", productCtrl.UpdateStock)
		admin.DELETE("/stock-list/:product_id", productCtrl.RemoveFromStockList)
		admin.POST("/categories", categoryCtrl.CreateCategory)
	}

	return r
}
