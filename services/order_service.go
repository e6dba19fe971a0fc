package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/adisyon-app/adisyon/hub"
	"github.com/adisyon-app/adisyon/models"
	"github.com/adisyon-app/adisyon/utils"
)

// ItemInput is one submitted order line. Quantity is the full desired
// count for that line, not a delta; the engines work the deltas out
// against what is already stored.
type ItemInput struct {
	ProductID *uint   `json:"product_id,omitempty"`
	Name      string  `json:"name" binding:"required"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// OrderService reconciles submitted item lists against a session's stored
// items and keeps the session total equal to the sum over its lines. The
// incremental path also reconciles product stock.
type OrderService struct {
	db  *gorm.DB
	pub hub.Publisher
}

func NewOrderService(db *gorm.DB, pub hub.Publisher) *OrderService {
	return &OrderService{db: db, pub: pub}
}

// UpsertItemsBulk replaces the session's whole item set with the submitted
// one (lines with quantity 0 are dropped) and recomputes the total. Stock
// is not touched: this path is for flows that reconciled stock out of band
// or do not track it.
func (s *OrderService) UpsertItemsBulk(sessionID uint, items []ItemInput) (*models.TableSession, error) {
	var session models.TableSession
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := loadSession(tx, sessionID, &session); err != nil {
			return err
		}

		if err := tx.Where("table_session_id = ?", sessionID).
			Delete(&models.TableSessionItem{}).Error; err != nil {
			return err
		}

		for _, in := range items {
			if in.Quantity <= 0 {
				continue
			}
			row := models.TableSessionItem{
				TableSessionID: sessionID,
				ProductID:      in.ProductID,
				Name:           in.Name,
				Price:          in.Price,
				Quantity:       in.Quantity,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		return refreshTotal(tx, &session)
	})
	if err != nil {
		return nil, err
	}
	return s.finishUpsert(&session)
}

// UpsertItemsIncremental reconciles each submitted line against the stored
// one and applies the quantity difference to product stock: ordering more
// consumes stock, ordering less returns it. Lines are matched by product
// when a product is linked and by name only for ad hoc lines. Works for
// sessions in any status; the broadcast carries the session's current
// status unchanged.
func (s *OrderService) UpsertItemsIncremental(sessionID uint, items []ItemInput) (*models.TableSession, error) {
	var session models.TableSession
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := loadSession(tx, sessionID, &session); err != nil {
			return err
		}

		for _, in := range items {
			if err := upsertOneItem(tx, sessionID, in); err != nil {
				return err
			}
		}

		return refreshTotal(tx, &session)
	})
	if err != nil {
		return nil, err
	}
	return s.finishUpsert(&session)
}

// upsertOneItem applies a single reconciled line inside the transaction.
func upsertOneItem(tx *gorm.DB, sessionID uint, in ItemInput) error {
	query := tx.Where("table_session_id = ?", sessionID)
	if in.ProductID != nil {
		query = query.Where("product_id = ?", *in.ProductID)
	} else {
		query = query.Where("product_id IS NULL AND name = ?", in.Name)
	}

	var existing models.TableSessionItem
	var oldQuantity int
	found := true
	if err := query.First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		found = false
	} else {
		oldQuantity = existing.Quantity
	}

	// Positive diff consumes stock, negative returns it. Always applied as
	// an atomic delta against the product row so concurrent sessions on the
	// same product cannot lose updates. No floor check: oversell drives the
	// counter negative instead of blocking the order.
	diff := in.Quantity - oldQuantity
	if in.ProductID != nil && diff != 0 {
		if err := tx.Model(&models.Product{}).
			Where("id = ?", *in.ProductID).
			UpdateColumn("stock", gorm.Expr("stock - ?", diff)).Error; err != nil {
			return err
		}
	}

	if in.Quantity <= 0 {
		if found {
			return tx.Delete(&existing).Error
		}
		return nil
	}

	if found {
		return tx.Model(&existing).Updates(map[string]interface{}{
			"quantity": in.Quantity,
			"price":    in.Price,
		}).Error
	}
	row := models.TableSessionItem{
		TableSessionID: sessionID,
		ProductID:      in.ProductID,
		Name:           in.Name,
		Price:          in.Price,
		Quantity:       in.Quantity,
	}
	return tx.Create(&row).Error
}

// refreshTotal recomputes total = sum(price * quantity) over the session's
// current item set and writes it back.
func refreshTotal(tx *gorm.DB, session *models.TableSession) error {
	var total float64
	if err := tx.Model(&models.TableSessionItem{}).
		Where("table_session_id = ?", session.ID).
		Select("COALESCE(SUM(price * quantity), 0)").
		Scan(&total).Error; err != nil {
		return err
	}
	if err := tx.Model(session).Update("total", total).Error; err != nil {
		return err
	}
	session.Total = total
	return nil
}

// finishUpsert reloads the item set and broadcasts the new total under the
// session's current status.
func (s *OrderService) finishUpsert(session *models.TableSession) (*models.TableSession, error) {
	if err := s.db.Where("table_session_id = ?", session.ID).
		Order("created_at asc").
		Find(&session.Items).Error; err != nil {
		return nil, err
	}

	s.pub.PublishTableUpdated(hub.TableUpdated{
		SessionID: session.ID,
		Status:    session.Status,
		Total:     session.Total,
	})
	utils.InfoLogger.Printf("Session %d items upserted, total %.2f", session.ID, session.Total)
	return session, nil
}
