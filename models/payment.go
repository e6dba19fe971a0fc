package models

import "time"

// Payment is one (possibly partial) payment against a session. Rows are
// append-only; a session accumulates payments until their sum reaches the
// session total, at which point the session transitions to paid.
type Payment struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	TableSessionID uint         `gorm:"not null;index" json:"table_session_id"`
	TableSession   TableSession `gorm:"foreignKey:TableSessionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Method         string       `gorm:"type:varchar(50);not null" json:"method"`
	Amount         float64      `gorm:"type:decimal(10,2);not null" json:"amount"`
	ReferenceID    string       `gorm:"type:varchar(64);unique;not null" json:"reference_id"`
	CreatedAt      time.Time    `gorm:"not null" json:"created_at"`
}
