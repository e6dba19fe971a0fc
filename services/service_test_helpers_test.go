package services

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/adisyon-app/adisyon/hub"
	"github.com/adisyon-app/adisyon/models"
	"github.com/adisyon-app/adisyon/utils"
)

// recorderPublisher captures broadcasts so tests can assert on them.
type recorderPublisher struct {
	events []hub.TableUpdated
}

func (r *recorderPublisher) PublishTableUpdated(ev hub.TableUpdated) {
	r.events = append(r.events, ev)
}

func (r *recorderPublisher) last() hub.TableUpdated {
	return r.events[len(r.events)-1]
}

// setupServiceDB opens a per-test in-memory sqlite database with the full
// schema migrated.
func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.Region{},
		&models.Table{},
		&models.Category{},
		&models.Product{},
		&models.TableSession{},
		&models.TableSessionItem{},
		&models.Payment{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// seedTable creates a region named Terrace with one table at ordinal 3.
func seedTable(t *testing.T, db *gorm.DB) models.Table {
	t.Helper()

	region := models.Region{Name: "Terrace"}
	if err := db.Create(&region).Error; err != nil {
		t.Fatalf("failed to seed region: %v", err)
	}
	table := models.Table{RegionID: region.ID, TableNumber: 3}
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("failed to seed table: %v", err)
	}
	return table
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()

	product := models.Product{
		Name:        name,
		Price:       price,
		Stock:       stock,
		Critical:    2,
		InStockList: true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return product
}

func productStock(t *testing.T, db *gorm.DB, productID uint) int {
	t.Helper()

	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		t.Fatalf("failed to reload product: %v", err)
	}
	return product.Stock
}
