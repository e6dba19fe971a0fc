package models

import "time"

// SessionStatus is the state of a table session. A session starts open and
// ends in exactly one terminal state; terminal sessions are never deleted,
// they form the audit trail behind the statistics views.
type SessionStatus string

const (
	SessionOpen     SessionStatus = "open"
	SessionPaid     SessionStatus = "paid"
	SessionCanceled SessionStatus = "canceled"
	SessionClosed   SessionStatus = "closed"
)

// Terminal reports whether the status is one of the end states.
func (s SessionStatus) Terminal() bool {
	return s == SessionPaid || s == SessionCanceled || s == SessionClosed
}

// TableSession is one continuous occupancy of a table. OpenTableKey carries
// the table ID while the session is open and NULL afterwards; the unique
// index on it is what guarantees at most one open session per table even
// under concurrent open requests.
type TableSession struct {
	ID            uint               `gorm:"primaryKey" json:"id"`
	TableID       uint               `gorm:"not null;index" json:"table_id"`
	Table         Table              `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Status        SessionStatus      `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	Total         float64            `gorm:"type:decimal(10,2);not null;default:0.00" json:"total"`
	PaymentMethod *string            `gorm:"type:varchar(50)" json:"payment_method,omitempty"`
	ClosedAt      *time.Time         `json:"closed_at,omitempty"`
	OpenTableKey  *uint              `gorm:"uniqueIndex" json:"-"`
	Items         []TableSessionItem `gorm:"foreignKey:TableSessionID" json:"items"`
	Payments      []Payment          `gorm:"foreignKey:TableSessionID" json:"payments,omitempty"`
	CreatedAt     time.Time          `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time          `gorm:"not null" json:"updated_at"`
}
