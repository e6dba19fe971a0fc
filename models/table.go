package models

import "time"

// Table belongs to exactly one Region. TableNumber is the table's ordinal
// inside its region, assigned incrementally when the table is created and
// never renumbered. Alias is a free-form display name.
type Table struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RegionID    uint      `gorm:"not null;index:idx_region_table,unique" json:"region_id"`
	Region      Region    `gorm:"foreignKey:RegionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"region,omitempty"`
	TableNumber int       `gorm:"not null;index:idx_region_table,unique" json:"table_number"`
	Alias       *string   `gorm:"type:varchar(100)" json:"alias,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
