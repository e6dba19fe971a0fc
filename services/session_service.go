package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adisyon-app/adisyon/hub"
	"github.com/adisyon-app/adisyon/models"
	"github.com/adisyon-app/adisyon/utils"
)

// SessionService owns the table-session state machine: open -> paid /
// canceled / closed. Every multi-write operation runs inside a single
// transaction; broadcasts go out only after the commit succeeded.
type SessionService struct {
	db  *gorm.DB
	pub hub.Publisher
}

func NewSessionService(db *gorm.DB, pub hub.Publisher) *SessionService {
	return &SessionService{db: db, pub: pub}
}

// RegionSnapshot is what the orders view renders for one region: the
// region's tables plus the open session (if any) per table ID.
type RegionSnapshot struct {
	Tables     []models.Table               `json:"tables"`
	SessionMap map[uint]models.TableSession `json:"sessionMap"`
}

// OpenTable returns the open session for the table at (regionID,
// tableNumber), creating one with total 0 if the table is empty. Calling it
// twice before a terminal transition returns the same session. The unique
// index on open_table_key rejects the duplicate if two opens race past the
// lookup.
func (s *SessionService) OpenTable(regionID uint, tableNumber int) (*models.TableSession, error) {
	var session models.TableSession
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := tx.Where("region_id = ? AND table_number = ?", regionID, tableNumber).
			First(&table).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: table %d in region %d", ErrNotFound, tableNumber, regionID)
			}
			return err
		}

		err := tx.Preload("Items").
			Where("table_id = ? AND status = ?", table.ID, models.SessionOpen).
			First(&session).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		key := table.ID
		session = models.TableSession{
			TableID:      table.ID,
			Status:       models.SessionOpen,
			Total:        0,
			OpenTableKey: &key,
			Items:        []models.TableSessionItem{},
		}
		return tx.Create(&session).Error
	})
	if err != nil {
		return nil, err
	}

	s.pub.PublishTableUpdated(hub.TableUpdated{
		SessionID: session.ID,
		Status:    session.Status,
		Total:     session.Total,
	})
	utils.InfoLogger.Printf("Session %d open on table %d", session.ID, session.TableID)
	return &session, nil
}

// CancelTable cancels an open session and returns every product-linked
// item's quantity back to stock. Only open sessions may be canceled, so
// the restock can never be applied twice.
func (s *SessionService) CancelTable(sessionID uint) (*models.TableSession, error) {
	var session models.TableSession
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := loadSession(tx, sessionID, &session); err != nil {
			return err
		}
		if session.Status.Terminal() {
			return fmt.Errorf("%w: session %d is %s, not open", ErrInvalidState, sessionID, session.Status)
		}

		var items []models.TableSessionItem
		if err := tx.Where("table_session_id = ?", sessionID).Find(&items).Error; err != nil {
			return err
		}
		for _, item := range items {
			if item.ProductID == nil {
				continue
			}
			if err := tx.Model(&models.Product{}).
				Where("id = ?", *item.ProductID).
				UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}

		return closeSessionAs(tx, &session, models.SessionCanceled, nil)
	})
	if err != nil {
		return nil, err
	}

	s.pub.PublishTableUpdated(hub.TableUpdated{
		SessionID: session.ID,
		Status:    session.Status,
		Total:     session.Total,
	})
	utils.InfoLogger.Printf("Session %d canceled, stock returned", session.ID)
	return &session, nil
}

// PayTable marks an open session paid in full with the given method.
func (s *SessionService) PayTable(sessionID uint, paymentMethod string) (*models.TableSession, error) {
	var session models.TableSession
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := loadSession(tx, sessionID, &session); err != nil {
			return err
		}
		if session.Status.Terminal() {
			return fmt.Errorf("%w: session %d is %s, not open", ErrInvalidState, sessionID, session.Status)
		}
		return closeSessionAs(tx, &session, models.SessionPaid, &paymentMethod)
	})
	if err != nil {
		return nil, err
	}

	s.pub.PublishTableUpdated(hub.TableUpdated{
		SessionID: session.ID,
		Status:    session.Status,
		Total:     session.Total,
	})
	utils.InfoLogger.Printf("Session %d paid via %s", session.ID, paymentMethod)
	return &session, nil
}

// PartialPayment records a payment against an open session. When the
// accumulated payments reach or exceed the session total the session is
// paid with the supplied method; overpayment is accepted. The returned
// session is nil while the session stays open.
func (s *SessionService) PartialPayment(sessionID uint, method string, amount float64) (*models.Payment, *models.TableSession, error) {
	var (
		payment models.Payment
		session models.TableSession
		settled bool
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := loadSession(tx, sessionID, &session); err != nil {
			return err
		}
		if session.Status.Terminal() {
			return fmt.Errorf("%w: session %d is %s, not open", ErrInvalidState, sessionID, session.Status)
		}

		payment = models.Payment{
			TableSessionID: sessionID,
			Method:         method,
			Amount:         amount,
			ReferenceID:    uuid.NewString(),
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		var paidSum float64
		if err := tx.Model(&models.Payment{}).
			Where("table_session_id = ?", sessionID).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&paidSum).Error; err != nil {
			return err
		}

		if paidSum >= session.Total {
			settled = true
			return closeSessionAs(tx, &session, models.SessionPaid, &method)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if !settled {
		utils.InfoLogger.Printf("Session %d partial payment %.2f via %s", sessionID, amount, method)
		return &payment, nil, nil
	}

	s.pub.PublishTableUpdated(hub.TableUpdated{
		SessionID: session.ID,
		Status:    session.Status,
		Total:     session.Total,
	})
	utils.InfoLogger.Printf("Session %d settled by partial payments", session.ID)
	return &payment, &session, nil
}

// CloseTable archives a session. Closing is an administrative step allowed
// from open or paid; canceled and already-closed sessions stay as they are.
func (s *SessionService) CloseTable(sessionID uint) (*models.TableSession, error) {
	var session models.TableSession
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := loadSession(tx, sessionID, &session); err != nil {
			return err
		}
		if session.Status != models.SessionOpen && session.Status != models.SessionPaid {
			return fmt.Errorf("%w: session %d is %s, cannot be closed", ErrInvalidState, sessionID, session.Status)
		}
		return closeSessionAs(tx, &session, models.SessionClosed, nil)
	})
	if err != nil {
		return nil, err
	}

	s.pub.PublishTableUpdated(hub.TableUpdated{
		SessionID: session.ID,
		Status:    session.Status,
		Total:     session.Total,
	})
	utils.InfoLogger.Printf("Session %d closed", session.ID)
	return &session, nil
}

// TransferTable moves a session to another table. The destination must
// exist and must not already have an open session.
func (s *SessionService) TransferTable(sessionID, newTableID uint) (*models.TableSession, error) {
	var session models.TableSession
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := loadSession(tx, sessionID, &session); err != nil {
			return err
		}

		var dest models.Table
		if err := tx.First(&dest, newTableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: table %d", ErrNotFound, newTableID)
			}
			return err
		}

		var openCount int64
		if err := tx.Model(&models.TableSession{}).
			Where("table_id = ? AND status = ? AND id != ?", dest.ID, models.SessionOpen, session.ID).
			Count(&openCount).Error; err != nil {
			return err
		}
		if openCount > 0 {
			return fmt.Errorf("%w: table %d already has an open session", ErrInvalidState, dest.ID)
		}

		updates := map[string]interface{}{"table_id": dest.ID}
		if session.Status == models.SessionOpen {
			updates["open_table_key"] = dest.ID
		}
		if err := tx.Model(&session).Updates(updates).Error; err != nil {
			return err
		}
		session.TableID = dest.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.pub.PublishTableUpdated(hub.TableUpdated{
		SessionID: session.ID,
		Status:    session.Status,
		Total:     session.Total,
	})
	utils.InfoLogger.Printf("Session %d transferred to table %d", session.ID, session.TableID)
	return &session, nil
}

// GetRegionTablesAndSessions returns the region's tables in ordinal order
// and a map of table ID to its open session.
func (s *SessionService) GetRegionTablesAndSessions(regionID uint) (*RegionSnapshot, error) {
	var tables []models.Table
	if err := s.db.Where("region_id = ?", regionID).
		Order("table_number asc").
		Find(&tables).Error; err != nil {
		return nil, err
	}

	tableIDs := make([]uint, 0, len(tables))
	for _, t := range tables {
		tableIDs = append(tableIDs, t.ID)
	}

	snapshot := &RegionSnapshot{
		Tables:     tables,
		SessionMap: make(map[uint]models.TableSession),
	}
	if len(tableIDs) == 0 {
		return snapshot, nil
	}

	var sessions []models.TableSession
	if err := s.db.Preload("Items").
		Where("table_id IN ? AND status = ?", tableIDs, models.SessionOpen).
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	for _, sess := range sessions {
		snapshot.SessionMap[sess.TableID] = sess
	}
	return snapshot, nil
}

// GetOpenSession looks up the open session at (regionID, tableNumber)
// without opening one. Returns nil when the table is empty.
func (s *SessionService) GetOpenSession(regionID uint, tableNumber int) (*models.TableSession, error) {
	var table models.Table
	if err := s.db.Where("region_id = ? AND table_number = ?", regionID, tableNumber).
		First(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: table %d in region %d", ErrNotFound, tableNumber, regionID)
		}
		return nil, err
	}

	var session models.TableSession
	err := s.db.Preload("Items").
		Where("table_id = ? AND status = ?", table.ID, models.SessionOpen).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetSessionItems returns the session's current order lines.
func (s *SessionService) GetSessionItems(sessionID uint) ([]models.TableSessionItem, error) {
	var session models.TableSession
	if err := loadSession(s.db, sessionID, &session); err != nil {
		return nil, err
	}

	var items []models.TableSessionItem
	if err := s.db.Where("table_session_id = ?", sessionID).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetSessionDetails returns a session with its items and payments.
func (s *SessionService) GetSessionDetails(sessionID uint) (*models.TableSession, error) {
	var session models.TableSession
	err := s.db.Preload("Items").Preload("Payments").First(&session, sessionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: session %d", ErrNotFound, sessionID)
		}
		return nil, err
	}
	return &session, nil
}

// ListCanceledSessions returns canceled sessions, newest first.
func (s *SessionService) ListCanceledSessions() ([]models.TableSession, error) {
	return s.listTerminal(models.SessionCanceled)
}

// ListPaidSessions returns paid sessions, newest first.
func (s *SessionService) ListPaidSessions() ([]models.TableSession, error) {
	return s.listTerminal(models.SessionPaid)
}

func (s *SessionService) listTerminal(status models.SessionStatus) ([]models.TableSession, error) {
	var sessions []models.TableSession
	if err := s.db.Preload("Items").
		Where("status = ?", status).
		Order("closed_at desc").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// loadSession fetches a session or reports NotFound.
func loadSession(tx *gorm.DB, sessionID uint, out *models.TableSession) error {
	if err := tx.First(out, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: session %d", ErrNotFound, sessionID)
		}
		return err
	}
	return nil
}

// closeSessionAs performs a terminal transition: sets the status, stamps
// closedAt and releases the open_table_key slot so the table can be opened
// again.
func closeSessionAs(tx *gorm.DB, session *models.TableSession, status models.SessionStatus, paymentMethod *string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"status":         status,
		"closed_at":      now,
		"open_table_key": nil,
	}
	if paymentMethod != nil {
		updates["payment_method"] = *paymentMethod
	}
	if err := tx.Model(session).Updates(updates).Error; err != nil {
		return err
	}
	session.Status = status
	session.ClosedAt = &now
	session.OpenTableKey = nil
	if paymentMethod != nil {
		session.PaymentMethod = paymentMethod
	}
	return nil
}
