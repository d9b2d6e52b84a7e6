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

func newAdminService() *services.ProductAdminService {
	return services.NewProductAdminService(
		repositories.NewProductRepository(),
		repositories.NewCategoryRepository(),
	)
}

func TestCreateProductForgivingFields(t *testing.T) {
	newTestDB(t)
	svc := newAdminService()

	product, err := svc.Create(services.ProductInput{
		Title:       "   ",
		PriceRaw:    "nonsense",
		CategoryRaw: "99", // no such category
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, models.UntitledProduct, product.Title)
	assert.Equal(t, "0.00", money.String(product.Price))
	assert.Nil(t, product.CategoryID)
}

func TestCreateProductNegativePriceFlipsPositive(t *testing.T) {
	newTestDB(t)
	svc := newAdminService()

	product, err := svc.Create(services.ProductInput{
		Title:    "Canvas Sneakers",
		PriceRaw: "-49.99",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "49.99", money.String(product.Price))
}

func TestUpdateProductKeepsPriceWhenUnparsable(t *testing.T) {
	newTestDB(t)
	svc := newAdminService()

	product, err := svc.Create(services.ProductInput{Title: "Leather Boots", PriceRaw: "120.00"}, nil)
	require.NoError(t, err)

	updated, err := svc.Update(product.ID, services.ProductInput{
		Title:    "Leather Boots",
		PriceRaw: "not a price",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "120.00", money.String(updated.Price))
}

func TestUpdateProductResolvesCategory(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService()

	category := models.Category{Name: "Footwear"}
	require.NoError(t, db.Create(&category).Error)

	product, err := svc.Create(services.ProductInput{Title: "Leather Boots", PriceRaw: "120.00"}, nil)
	require.NoError(t, err)

	updated, err := svc.Update(product.ID, services.ProductInput{
		Title:       "Leather Boots",
		PriceRaw:    "120.00",
		CategoryRaw: "1",
	}, nil)
	require.NoError(t, err)
	require.NotNil(t, updated.CategoryID)
	assert.Equal(t, category.ID, *updated.CategoryID)

	// An unresolvable category on the next edit clears the link.
	updated, err = svc.Update(product.ID, services.ProductInput{
		Title:       "Leather Boots",
		PriceRaw:    "120.00",
		CategoryRaw: "oops",
	}, nil)
	require.NoError(t, err)
	assert.Nil(t, updated.CategoryID)
}

func TestUpdateProductRejectsEscapingMediaPath(t *testing.T) {
	newTestDB(t)
	svc := newAdminService()

	product, err := svc.Create(services.ProductInput{Title: "Wool Beanie", PriceRaw: "14.50"}, nil)
	require.NoError(t, err)

	for _, bad := range []string{"../../etc/passwd", "other/shoe.jpg", "products/../secrets.txt"} {
		_, err := svc.Update(product.ID, services.ProductInput{
			Title:          "Wool Beanie",
			PriceRaw:       "14.50",
			ImageFromMedia: bad,
		}, nil)
		assert.ErrorIs(t, err, services.ErrBadMediaPath, "path %q", bad)
	}
}

func TestUpdateProductAcceptsMediaPath(t *testing.T) {
	newTestDB(t)
	svc := newAdminService()

	product, err := svc.Create(services.ProductInput{Title: "Wool Beanie", PriceRaw: "14.50"}, nil)
	require.NoError(t, err)

	updated, err := svc.Update(product.ID, services.ProductInput{
		Title:          "Wool Beanie",
		PriceRaw:       "14.50",
		ImageFromMedia: "/products/beanie.jpg",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "products/beanie.jpg", updated.Image)
}

func TestDeleteProductLeavesOrderItems(t *testing.T) {
	db := newTestDB(t)
	svc := newAdminService()

	product, err := svc.Create(services.ProductInput{Title: "Canvas Sneakers", PriceRaw: "3.50"}, nil)
	require.NoError(t, err)

	order := models.Order{Name: "Jane", Email: "jane@example.com", Total: price("3.50")}
	require.NoError(t, db.Create(&order).Error)
	item := models.OrderItem{OrderID: order.ID, ProductID: "1", Title: product.Title, Price: product.Price, Qty: 1, Subtotal: price("3.50")}
	require.NoError(t, db.Create(&item).Error)

	require.NoError(t, svc.Delete(product.ID))

	var count int64
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateCategory(t *testing.T) {
	newTestDB(t)
	svc := newAdminService()

	category, err := svc.CreateCategory("  Summer Wear  ")
	require.NoError(t, err)
	assert.Equal(t, "Summer Wear", category.Name)
	assert.Equal(t, "summer-wear", category.Slug)
}

func TestCreateCategoryBlankName(t *testing.T) {
	newTestDB(t)
	svc := newAdminService()

	_, err := svc.CreateCategory("   ")
	assert.ErrorIs(t, err, services.ErrCategoryNameRequired)
}

func TestCreateCategoryDuplicateIsCaseInsensitive(t *testing.T) {
	newTestDB(t)
	svc := newAdminService()

	existing, err := svc.CreateCategory("Footwear")
	require.NoError(t, err)

	_, err = svc.CreateCategory("FOOTWEAR")
	var dup *services.DuplicateCategoryError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, existing.ID, dup.Existing.ID)
}
