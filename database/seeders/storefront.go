package seeders

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mcreations/storefront/app/models"
	"github.com/mcreations/storefront/pkg/auth"
)

func init() {
	Register("categories", SeedCategories)
	Register("products", SeedProducts)
	Register("staff", SeedStaffUser)
}

// SeedCategories inserts the starter categories. Existing names are left alone.
func SeedCategories(db *gorm.DB) error {
	for _, name := range []string{"Apparel", "Footwear", "Accessories"} {
		var count int64
		db.Model(&models.Category{}).Where("name = ?", name).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&models.Category{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedProducts inserts a small demo catalogue when the table is empty.
func SeedProducts(db *gorm.DB) error {
	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count > 0 {
		return nil
	}

	var footwear models.Category
	db.Where("name = ?", "Footwear").First(&footwear)

	products := []models.Product{
		{Title: "Canvas Sneakers", Description: "Everyday low-tops.", Price: decimal.RequireFromString("49.99")},
		{Title: "Leather Boots", Description: "Waterproof ankle boots.", Price: decimal.RequireFromString("129.00")},
		{Title: "Wool Beanie", Description: "One size fits most.", Price: decimal.RequireFromString("14.50")},
	}
	if footwear.ID != 0 {
		id := footwear.ID
		products[0].CategoryID = &id
		products[1].CategoryID = &id
	}

	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedStaffUser creates the initial staff account when none exists.
// Change the password immediately in anything but local development.
func SeedStaffUser(db *gorm.DB) error {
	var count int64
	db.Model(&models.User{}).Where("role = ?", models.RoleStaff).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword("changeme123")
	if err != nil {
		return err
	}

	return db.Create(&models.User{
		Name:     "Store Admin",
		Email:    "admin@example.com",
		Phone:    "0000000000",
		Password: hash,
		Role:     models.RoleStaff,
	}).Error
}
