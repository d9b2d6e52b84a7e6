package models

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrInvalidQuantity is returned when an order item carries a non-positive
// quantity. Raised inside the commit transaction, it aborts the whole order.
var ErrInvalidQuantity = errors.New("order item quantity must be positive")

// Order is a committed checkout. UserID is nil for guest checkouts.
// Orders are written exactly once and never mutated; Total equals the sum
// of the item subtotals at creation time.
type Order struct {
	gorm.Model
	UserID  *uint           `gorm:"index"                       json:"user_id"`
	Name    string          `gorm:"size:255;not null"           json:"name"`
	Email   string          `gorm:"size:255;not null"           json:"email"`
	Phone   string          `gorm:"size:50"                     json:"phone"`
	Address string          `gorm:"type:text"                   json:"address"`
	Note    string          `gorm:"type:text"                   json:"note"`
	Total   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Items   []OrderItem     `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem is a frozen snapshot of one cart line. ProductID is a plain
// string copy, deliberately decoupled from the products table so that
// later edits or deletes of the product never touch past orders.
type OrderItem struct {
	gorm.Model
	OrderID   uint            `gorm:"not null;index"              json:"order_id"`
	ProductID string          `gorm:"size:64;not null"            json:"product_id"`
	Title     string          `gorm:"size:255;not null"           json:"title"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Qty       int             `gorm:"not null"                    json:"qty"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
}

// BeforeCreate rejects non-positive quantities so a bad line item fails the
// enclosing transaction instead of persisting a corrupt snapshot.
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.Qty <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}
