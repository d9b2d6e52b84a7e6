package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcreations/storefront/app/models"
	"github.com/mcreations/storefront/app/repositories"
	"github.com/mcreations/storefront/app/services"
	"github.com/mcreations/storefront/pkg/money"
)

func checkoutInput() services.CheckoutInput {
	return services.CheckoutInput{
		Name:    "  Jane Buyer  ",
		Email:   "jane@example.com",
		Phone:   "5551234",
		Address: "12 Main St",
	}
}

func TestPlaceOrderPersistsOrderAndItems(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCheckoutService(repositories.NewOrderRepository())

	items := []services.LineItem{
		{ProductID: "5", Title: "Canvas Sneakers", Price: price("3.50"), Qty: 2, Subtotal: price("7.00")},
		{ProductID: "7", Title: "Leather Boots", Price: price("9.99"), Qty: 1, Subtotal: price("9.99")},
	}

	order, err := svc.PlaceOrder(nil, checkoutInput(), items, price("16.99"))
	require.NoError(t, err)
	require.NotZero(t, order.ID)
	assert.Equal(t, "Jane Buyer", order.Name) // trimmed
	assert.Nil(t, order.UserID)
	assert.Equal(t, "16.99", money.String(order.Total))

	var got models.Order
	require.NoError(t, db.Preload("Items").First(&got, order.ID).Error)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "5", got.Items[0].ProductID)
	assert.Equal(t, "Canvas Sneakers", got.Items[0].Title)
	assert.Equal(t, 2, got.Items[0].Qty)
}

func TestPlaceOrderAttachesUser(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCheckoutService(repositories.NewOrderRepository())

	user := models.User{Name: "Jane", Phone: "5550000", Role: models.RoleUser}
	require.NoError(t, db.Create(&user).Error)

	items := []services.LineItem{
		{ProductID: "1", Title: "Wool Beanie", Price: price("14.50"), Qty: 1, Subtotal: price("14.50")},
	}
	order, err := svc.PlaceOrder(&user.ID, checkoutInput(), items, price("14.50"))
	require.NoError(t, err)
	require.NotNil(t, order.UserID)
	assert.Equal(t, user.ID, *order.UserID)
}

func TestPlaceOrderRollsBackOnBadItem(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCheckoutService(repositories.NewOrderRepository())

	items := []services.LineItem{
		{ProductID: "1", Title: "Good Line", Price: price("5.00"), Qty: 1, Subtotal: price("5.00")},
		{ProductID: "2", Title: "Bad Line", Price: price("5.00"), Qty: 0, Subtotal: price("0.00")},
	}

	_, err := svc.PlaceOrder(nil, checkoutInput(), items, price("5.00"))
	require.ErrorIs(t, err, models.ErrInvalidQuantity)

	var orders, lines int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&lines).Error)
	assert.Zero(t, orders)
	assert.Zero(t, lines)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	newTestDB(t)
	svc := services.NewCheckoutService(repositories.NewOrderRepository())

	_, err := svc.PlaceOrder(nil, checkoutInput(), nil, money.Zero())
	assert.ErrorIs(t, err, services.ErrEmptyCart)
}

func TestOrderSnapshotsSurviveProductDelete(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewCheckoutService(repositories.NewOrderRepository())

	product := models.Product{Title: "Canvas Sneakers", Price: price("3.50")}
	require.NoError(t, db.Create(&product).Error)

	items := []services.LineItem{
		{ProductID: "1", Title: product.Title, Price: product.Price, Qty: 1, Subtotal: price("3.50")},
	}
	order, err := svc.PlaceOrder(nil, checkoutInput(), items, price("3.50"))
	require.NoError(t, err)

	require.NoError(t, db.Delete(&product).Error)

	var got models.Order
	require.NoError(t, db.Preload("Items").First(&got, order.ID).Error)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Canvas Sneakers", got.Items[0].Title)
	assert.Equal(t, "3.50", money.String(got.Items[0].Price))
}

func TestSummarize(t *testing.T) {
	svc := services.NewCheckoutService(repositories.NewOrderRepository())

	order := &models.Order{Name: "Jane Buyer", Email: "jane@example.com", Total: price("9.99")}
	order.ID = 42
	items := []services.LineItem{
		{ProductID: "7", Title: "Leather Boots", Qty: 1, Subtotal: price("9.99"), ImageURL: "/media/products/boots.jpg"},
	}

	summary := svc.Summarize(order, items)
	assert.Equal(t, uint(42), summary.ID)
	assert.Equal(t, "Jane Buyer", summary.Name)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, "/media/products/boots.jpg", summary.Items[0].ImageURL)
}
