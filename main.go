package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/adisyon-app/adisyon/config"
	"github.com/adisyon-app/adisyon/database"
	"github.com/adisyon-app/adisyon/hub"
	"github.com/adisyon-app/adisyon/models"
	"github.com/adisyon-app/adisyon/router"
	"github.com/adisyon-app/adisyon/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	broadcastHub := hub.NewHub()

	r := router.SetupRouter(db, broadcastHub)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Region{},
		&models.Table{},
		&models.Category{},
		&models.Product{},
		&models.TableSession{},
		&models.TableSessionItem{},
		&models.Payment{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	if err := database.EnsureSessionConstraints(db); err != nil {
		utils.ErrorLogger.Printf("Error ensuring session constraints: %v", err)
	}
}
