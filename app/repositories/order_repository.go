package repositories

import (
	"gorm.io/gorm"

	"github.com/mcreations/storefront/app/models"
	"github.com/mcreations/storefront/pkg/orm"
)

// OrderRepository handles database operations for Order and OrderItem.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// CreateWithItems inserts the order header and then each item snapshot
// inside one transaction. Any item failure rolls the whole order back.
func (r *OrderRepository) CreateWithItems(order *models.Order, items []models.OrderItem) error {
	return orm.Transaction(func(tx *gorm.DB) error {
		if err := orm.With(tx).Create(order); err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
			if err := orm.With(tx).Create(&items[i]); err != nil {
				return err
			}
		}
		order.Items = items
		return nil
	})
}

// FindByID returns one order with its item snapshots.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := orm.DB().
		Model(&models.Order{}).
		Preload("Items").
		Where("id = ?", id).
		First(&order)
	return order, err
}

// ForUser returns a user's orders newest-first with items preloaded.
func (r *OrderRepository) ForUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := orm.DB().
		Model(&models.Order{}).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Get(&orders)
	return orders, err
}

// All returns every order newest-first, paginated, for the admin gallery.
func (r *OrderRepository) All(page, limit int) ([]models.Order, orm.Pagination, error) {
	var orders []models.Order
	pagination, err := orm.DB().
		Model(&models.Order{}).
		Preload("Items").
		Order("created_at DESC").
		GetWithPagination(&orders, page, limit)
	return orders, pagination, err
}
