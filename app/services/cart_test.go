package services_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcreations/storefront/app/models"
	"github.com/mcreations/storefront/app/services"
)

// fakeFinder serves products from a fixed map, no database involved.
type fakeFinder struct {
	products map[string]models.Product
}

func (f *fakeFinder) FindByKeys(keys []string) (map[string]models.Product, error) {
	out := map[string]models.Product{}
	for _, k := range keys {
		if p, ok := f.products[k]; ok {
			out[k] = p
		}
	}
	return out, nil
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func finderWith(products map[string]models.Product) *fakeFinder {
	return &fakeFinder{products: products}
}

func TestNormalizeMixedShapes(t *testing.T) {
	// A legacy bare-number line and a tagged line with a cached price.
	raw := `{"5": 2, "7": {"qty": 1, "price": "9.99"}}`
	var cart services.Cart
	require.NoError(t, json.Unmarshal([]byte(raw), &cart))

	finder := finderWith(map[string]models.Product{
		"5": {Title: "Canvas Sneakers", Price: price("3.50")},
		"7": {Title: "Leather Boots", Price: price("120.00")},
	})

	items, total, err := services.NewCartService(finder).Normalize(cart)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Sorted key order: "5" then "7".
	assert.Equal(t, "5", items[0].ProductID)
	assert.Equal(t, 2, items[0].Qty)
	assert.Equal(t, "7.00", items[0].Subtotal.StringFixed(2))

	// The cached price wins over the live 120.00.
	assert.Equal(t, "9.99", items[1].Price.StringFixed(2))
	assert.Equal(t, "Leather Boots", items[1].Title)

	assert.Equal(t, "16.99", total.StringFixed(2))
}

func TestNormalizeSkipsBadQuantities(t *testing.T) {
	raw := `{"1": 0, "2": -3, "3": "garbage", "4": {"qty": "2"}}`
	var cart services.Cart
	require.NoError(t, json.Unmarshal([]byte(raw), &cart))

	finder := finderWith(map[string]models.Product{
		"4": {Title: "Wool Beanie", Price: price("14.50")},
	})

	items, total, err := services.NewCartService(finder).Normalize(cart)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "4", items[0].ProductID)
	assert.Equal(t, "29.00", total.StringFixed(2))
}

func TestNormalizeMissingProductUsesCachedFields(t *testing.T) {
	cart := services.Cart{
		"42": {Qty: 1, Price: "5.00", Title: "Gone Product", ImageURL: "/media/products/gone.jpg"},
	}

	items, total, err := services.NewCartService(finderWith(nil)).Normalize(cart)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Gone Product", items[0].Title)
	assert.Equal(t, "/media/products/gone.jpg", items[0].ImageURL)
	assert.Equal(t, "5.00", total.StringFixed(2))
}

func TestNormalizeBadCachedPriceFlattensToZero(t *testing.T) {
	cart := services.Cart{
		"1": {Qty: 3, Price: "not-a-price"},
	}
	finder := finderWith(map[string]models.Product{
		"1": {Title: "Canvas Sneakers", Price: price("49.99")},
	})

	items, total, err := services.NewCartService(finder).Normalize(cart)
	require.NoError(t, err)
	assert.Equal(t, "0.00", items[0].Price.StringFixed(2))
	assert.Equal(t, "0.00", total.StringFixed(2))
}

func TestNormalizeRoundsHalfUp(t *testing.T) {
	cart := services.Cart{"1": {Qty: 1, Price: "0.005"}}

	items, _, err := services.NewCartService(finderWith(nil)).Normalize(cart)
	require.NoError(t, err)
	assert.Equal(t, "0.01", items[0].Price.StringFixed(2))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	cart := services.Cart{
		"2": {Qty: 2},
		"9": {Qty: 1, Price: "1.25"},
	}
	finder := finderWith(map[string]models.Product{
		"2": {Title: "Leather Boots", Price: price("129.00")},
	})
	svc := services.NewCartService(finder)

	first, firstTotal, err := svc.Normalize(cart)
	require.NoError(t, err)
	second, secondTotal, err := svc.Normalize(cart)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, firstTotal.Equal(secondTotal))
	assert.Len(t, cart, 2) // untouched
}

func TestNormalizeTruncatesLongTitles(t *testing.T) {
	long := make([]rune, 300)
	for i := range long {
		long[i] = 'x'
	}
	cart := services.Cart{"1": {Qty: 1, Title: string(long)}}

	items, _, err := services.NewCartService(finderWith(nil)).Normalize(cart)
	require.NoError(t, err)
	assert.Len(t, []rune(items[0].Title), 255)
}

func TestAddDefaultsAndIncrements(t *testing.T) {
	finder := finderWith(map[string]models.Product{
		"1": {Title: "Canvas Sneakers", Price: price("10.00")},
	})
	svc := services.NewCartService(finder)
	cart := services.Cart{}

	count, total, err := svc.Add(cart, "1", 0) // bad qty forced to 1
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, "10.00", total.StringFixed(2))

	count, total, err = svc.Add(cart, "1", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, "30.00", total.StringFixed(2))
	assert.Equal(t, 3, cart["1"].Qty)
}

func TestAddUnknownProduct(t *testing.T) {
	svc := services.NewCartService(finderWith(nil))
	cart := services.Cart{}

	_, _, err := svc.Add(cart, "999", 1)
	assert.ErrorIs(t, err, services.ErrProductNotFound)
	assert.Empty(t, cart)
}

func TestAddPrunesVanishedEntries(t *testing.T) {
	finder := finderWith(map[string]models.Product{
		"1": {Title: "Canvas Sneakers", Price: price("10.00")},
	})
	svc := services.NewCartService(finder)

	// "7" was added before its product was deleted.
	cart := services.Cart{"7": {Qty: 5}}

	count, total, err := svc.Add(cart, "1", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, "10.00", total.StringFixed(2))
	assert.NotContains(t, cart, "7")
}

func TestUpdateAndRemove(t *testing.T) {
	svc := services.NewCartService(finderWith(nil))
	cart := services.Cart{"1": {Qty: 2, Price: "3.00"}}

	svc.Update(cart, "absent", 5) // no-op
	assert.Len(t, cart, 1)

	svc.Update(cart, "1", 7)
	assert.Equal(t, 7, cart["1"].Qty)
	assert.Equal(t, "3.00", cart["1"].Price) // cached fields survive

	svc.Update(cart, "1", 0) // zero removes
	assert.Empty(t, cart)

	svc.Remove(cart, "1") // removing an absent line is fine
	assert.Empty(t, cart)
}

func TestCartFromSessionRoundTrip(t *testing.T) {
	// What the session layer hands back after a JSON round-trip.
	stored := map[string]interface{}{
		"3": float64(2),
		"8": map[string]interface{}{"qty": float64(1), "price": "2.50"},
	}

	cart := services.CartFromSession(stored)
	require.Len(t, cart, 2)
	assert.Equal(t, 2, cart["3"].Qty)
	assert.Equal(t, "2.50", cart["8"].Price)

	assert.Empty(t, services.CartFromSession(nil))
	assert.Empty(t, services.CartFromSession("not a cart"))
}
