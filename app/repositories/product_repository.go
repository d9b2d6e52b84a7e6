package repositories

import (
	"strconv"
	"strings"

	"github.com/mcreations/storefront/app/models"
	"github.com/mcreations/storefront/pkg/collection"
	"github.com/mcreations/storefront/pkg/orm"
)

// ProductRepository handles database operations for Product.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// All returns the catalogue newest-first with categories preloaded.
func (r *ProductRepository) All() ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().
		Model(&models.Product{}).
		Preload("Category").
		Order("created_at DESC").
		Get(&products)
	return products, err
}

// Search filters the catalogue case-insensitively over title, description
// and category name, newest-first.
func (r *ProductRepository) Search(q string) ([]models.Product, error) {
	if strings.TrimSpace(q) == "" {
		return r.All()
	}

	like := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
	var products []models.Product
	err := orm.DB().
		Model(&models.Product{}).
		Preload("Category").
		Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR category_id IN (SELECT id FROM categories WHERE LOWER(name) LIKE ?)",
			like, like, like,
		).
		Order("created_at DESC").
		Get(&products)
	return products, err
}

// FindByID looks up a product by primary key.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var product models.Product
	err := orm.DB().
		Model(&models.Product{}).
		Preload("Category").
		Where("id = ?", id).
		First(&product)
	return product, err
}

// FindByKeys resolves cart keys (stringified product ids) to products.
// Keys that are not numeric or match no row are simply absent from the map.
func (r *ProductRepository) FindByKeys(keys []string) (map[string]models.Product, error) {
	ids := make([]uint, 0, len(keys))
	for _, k := range keys {
		n, err := strconv.ParseUint(k, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(n))
	}

	if len(ids) == 0 {
		return map[string]models.Product{}, nil
	}

	var products []models.Product
	err := orm.DB().
		Model(&models.Product{}).
		Where("id IN ?", ids).
		Get(&products)
	if err != nil {
		return nil, err
	}

	return collection.KeyBy(products, func(p models.Product) string {
		return strconv.FormatUint(uint64(p.ID), 10)
	}), nil
}

// Create persists a new product record.
func (r *ProductRepository) Create(p *models.Product) error {
	return orm.DB().Create(p)
}

// Update persists changes to an existing product.
func (r *ProductRepository) Update(p *models.Product) error {
	return orm.DB().Save(p)
}

// Delete removes a product record. Order item snapshots are unaffected.
func (r *ProductRepository) Delete(p *models.Product) error {
	return orm.DB().Delete(p)
}
