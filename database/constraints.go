package database

import (
	"gorm.io/gorm"

	"github.com/adisyon-app/adisyon/models"
	"github.com/adisyon-app/adisyon/utils"
)

// EnsureSessionConstraints repairs the open_table_key column after
// AutoMigrate. The unique index on it is what enforces "one open session
// per table", so open sessions created before the column existed must be
// backfilled and terminal sessions must not hold a key. Runs at startup,
// idempotent.
func EnsureSessionConstraints(db *gorm.DB) error {
	res := db.Model(&models.TableSession{}).
		Where("status = ? AND open_table_key IS NULL", models.SessionOpen).
		Update("open_table_key", gorm.Expr("table_id"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		utils.InfoLogger.Printf("Backfilled open_table_key on %d open sessions", res.RowsAffected)
	}

	res = db.Model(&models.TableSession{}).
		Where("status != ? AND open_table_key IS NOT NULL", models.SessionOpen).
		Update("open_table_key", nil)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		utils.InfoLogger.Printf("Cleared open_table_key on %d terminal sessions", res.RowsAffected)
	}

	return nil
}
