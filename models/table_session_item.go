package models

import "time"

// TableSessionItem is one order line of a session. Name and Price are a
// snapshot taken at order time, so later product edits do not rewrite
// history. ProductID is nil for ad hoc lines typed in by the operator;
// those lines never touch stock. Rows with quantity 0 are deleted, not
// stored.
type TableSessionItem struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	TableSessionID uint         `gorm:"not null;index" json:"table_session_id"`
	TableSession   TableSession `gorm:"foreignKey:TableSessionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ProductID      *uint        `gorm:"index" json:"product_id,omitempty"`
	Product        *Product     `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Name           string       `gorm:"type:varchar(255);not null" json:"name"`
	Price          float64      `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity       int          `gorm:"not null" json:"quantity"`
	CreatedAt      time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"not null" json:"updated_at"`
}
