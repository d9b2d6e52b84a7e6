package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UntitledProduct is the title given to products created with a blank title.
const UntitledProduct = "Untitled"

// Product is a catalogue entry. Image is a path relative to the media disk
// root (e.g. "products/shoe.jpg"); empty means no image. Deleting the
// category nulls the reference instead of cascading.
type Product struct {
	gorm.Model
	Title       string          `gorm:"size:255;not null;index"        json:"title"`
	Description string          `gorm:"type:text"                      json:"description"`
	Image       string          `gorm:"size:255"                       json:"image"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"    json:"price"`
	CategoryID  *uint           `gorm:"index"                          json:"category_id"`
	Category    *Category       `gorm:"constraint:OnDelete:SET NULL"   json:"-"`
}

// CategoryName returns the loaded category's name, or "".
func (p *Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}
