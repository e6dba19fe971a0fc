package models

import "time"

// Product is a sellable item. Stock and Critical are only meaningful while
// InStockList is true; removing a product from stock tracking hides it from
// the stock view without deleting the product itself. Stock is mutated only
// through atomic increments/decrements and may go negative when oversold.
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	CategoryID  *uint     `gorm:"index" json:"category_id,omitempty"`
	Category    *Category `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"category,omitempty"`
	IsFavorite  bool      `gorm:"not null;default:false" json:"is_favorite"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	Critical    int       `gorm:"not null;default:0" json:"critical"`
	InStockList bool      `gorm:"not null;default:false" json:"in_stock_list"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
