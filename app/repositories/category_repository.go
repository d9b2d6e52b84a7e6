package repositories

import (
	"strings"
	"time"

	"github.com/mcreations/storefront/app/models"
	"github.com/mcreations/storefront/pkg/cache"
	"github.com/mcreations/storefront/pkg/orm"
)

const categoriesCacheKey = "storefront:categories:all"

// CategoryRepository handles database operations for Category.
type CategoryRepository struct{}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

// All returns every category ordered by name. The list changes rarely, so
// it is served through the read-through Redis cache.
func (r *CategoryRepository) All() ([]models.Category, error) {
	var categories []models.Category
	err := orm.DB().
		Model(&models.Category{}).
		Order("name ASC").
		Cache(categoriesCacheKey, 5*time.Minute, &categories)
	return categories, err
}

// FindByID looks up a category by primary key.
func (r *CategoryRepository) FindByID(id uint) (models.Category, error) {
	var category models.Category
	err := orm.DB().Model(&models.Category{}).Where("id = ?", id).First(&category)
	return category, err
}

// FindByName looks up a category by name, case-insensitively.
func (r *CategoryRepository) FindByName(name string) (models.Category, error) {
	var category models.Category
	err := orm.DB().
		Model(&models.Category{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&category)
	return category, err
}

// Create persists a new category and invalidates the cached listing.
func (r *CategoryRepository) Create(c *models.Category) error {
	if err := orm.DB().Create(c); err != nil {
		return err
	}
	cache.Forget(categoriesCacheKey) //nolint:errcheck
	return nil
}
