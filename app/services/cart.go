package services

import (
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mcreations/storefront/app/models"
	"github.com/mcreations/storefront/config"
	"github.com/mcreations/storefront/pkg/metrics"
	"github.com/mcreations/storefront/pkg/money"
)

// ErrProductNotFound is returned when an id resolves to no catalogue row.
var ErrProductNotFound = errors.New("product not found")

// ProductFinder resolves cart keys to catalogue rows. Keys that match no
// row are absent from the returned map.
type ProductFinder interface {
	FindByKeys(keys []string) (map[string]models.Product, error)
}

// Cart is the session-resident shopping cart, keyed by product id string.
type Cart map[string]CartEntry

// CartEntry is one cart line. Two wire shapes are accepted: a bare number
// (legacy carts stored only a quantity) and an object carrying the quantity
// plus optional cached display fields.
type CartEntry struct {
	Qty      int    `json:"qty"`
	Price    string `json:"price,omitempty"`
	Title    string `json:"title,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// UnmarshalJSON accepts both entry shapes. A value that cannot be coerced
// to a quantity leaves Qty at 0, which downstream reads treat as skippable.
func (e *CartEntry) UnmarshalJSON(b []byte) error {
	trimmed := strings.TrimSpace(string(b))
	if strings.HasPrefix(trimmed, "{") {
		var obj struct {
			Qty      json.RawMessage `json:"qty"`
			Price    json.RawMessage `json:"price"`
			Title    string          `json:"title"`
			ImageURL string          `json:"image_url"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		e.Qty = coerceQty(obj.Qty)
		e.Price = coerceString(obj.Price)
		e.Title = obj.Title
		e.ImageURL = obj.ImageURL
		return nil
	}

	e.Qty = coerceQty(b)
	return nil
}

// coerceQty turns a raw JSON value (number, numeric string, anything) into
// an int quantity. Fractions truncate; garbage becomes 0.
func coerceQty(raw json.RawMessage) int {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return i
	}
	return 0
}

// coerceString renders a raw JSON number or string as a plain string.
func coerceString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// CartFromSession rebuilds a Cart from the raw value the session layer
// hands back. Anything unreadable yields an empty cart rather than an error.
func CartFromSession(v interface{}) Cart {
	cart := Cart{}
	if v == nil {
		return cart
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return cart
	}
	if err := json.Unmarshal(raw, &cart); err != nil {
		return Cart{}
	}
	return cart
}

// LineItem is one normalized, display-ready cart line.
type LineItem struct {
	ProductID string          `json:"product_id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Qty       int             `json:"qty"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	ImageURL  string          `json:"image_url"`
}

// CartService normalizes and mutates session carts.
type CartService struct {
	products ProductFinder
}

func NewCartService(products ProductFinder) *CartService {
	return &CartService{products: products}
}

// Normalize converts the raw cart into display-ready line items plus a
// grand total. It is pure: the cart is never mutated, and running it twice
// yields identical results.
//
// Per entry: a bare quantity becomes {qty}; a non-positive or unparsable
// quantity skips the entry; the price prefers the cached entry price and
// falls back to the live product price, with parse failures flattening to
// 0.00; titles prefer the cached copy, then the product, truncated to 255
// characters; everything monetary is rounded half-up to 2 decimal places.
// Entries whose product no longer exists still render from cached fields.
func (s *CartService) Normalize(cart Cart) ([]LineItem, decimal.Decimal, error) {
	keys := sortedKeys(cart)

	productMap, err := s.products.FindByKeys(keys)
	if err != nil {
		return nil, money.Zero(), err
	}

	items := make([]LineItem, 0, len(keys))
	total := money.Zero()

	for _, key := range keys {
		entry := cart[key]
		if entry.Qty <= 0 {
			continue
		}

		product, live := productMap[key]

		price := money.Zero()
		if entry.Price != "" {
			price, _ = money.Parse(entry.Price)
		} else if live {
			price = product.Price
		}
		price = money.Round(price)

		title := entry.Title
		if title == "" && live {
			title = product.Title
		}
		title = truncate(title, 255)

		image := entry.ImageURL
		if image == "" && live && product.Image != "" {
			image = mediaURL(product.Image)
		}

		subtotal := money.Round(price.Mul(decimal.NewFromInt(int64(entry.Qty))))
		total = total.Add(subtotal)

		items = append(items, LineItem{
			ProductID: key,
			Title:     title,
			Price:     price,
			Qty:       entry.Qty,
			Subtotal:  subtotal,
			ImageURL:  image,
		})
	}

	return items, money.Round(total), nil
}

// Add increments the stored quantity for productID, which must resolve to a
// live product. It returns the aggregate item count and the aggregate total
// at live prices. Entries whose product has vanished since they were added
// are pruned from the cart while aggregating.
func (s *CartService) Add(cart Cart, productID string, qty int) (int, decimal.Decimal, error) {
	if qty < 1 {
		qty = 1
	}

	resolved, err := s.products.FindByKeys([]string{productID})
	if err != nil {
		return 0, money.Zero(), err
	}
	if _, ok := resolved[productID]; !ok {
		return 0, money.Zero(), ErrProductNotFound
	}

	entry := cart[productID]
	entry.Qty += qty
	cart[productID] = entry

	metrics.CartOperations.WithLabelValues("add").Inc()
	return s.aggregate(cart)
}

// Update overwrites the stored quantity. An absent id is a no-op; a
// non-positive quantity removes the line.
func (s *CartService) Update(cart Cart, productID string, qty int) {
	entry, ok := cart[productID]
	if !ok {
		return
	}
	if qty <= 0 {
		delete(cart, productID)
	} else {
		entry.Qty = qty
		cart[productID] = entry
	}
	metrics.CartOperations.WithLabelValues("update").Inc()
}

// Remove deletes the line unconditionally. Removing an absent id succeeds.
func (s *CartService) Remove(cart Cart, productID string) {
	delete(cart, productID)
	metrics.CartOperations.WithLabelValues("remove").Inc()
}

// aggregate sums stored quantities and live-price totals, pruning entries
// that no longer resolve to a product.
func (s *CartService) aggregate(cart Cart) (int, decimal.Decimal, error) {
	keys := sortedKeys(cart)

	productMap, err := s.products.FindByKeys(keys)
	if err != nil {
		return 0, money.Zero(), err
	}

	count := 0
	total := money.Zero()
	for _, key := range keys {
		product, ok := productMap[key]
		if !ok {
			delete(cart, key)
			continue
		}
		entry := cart[key]
		count += entry.Qty
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(entry.Qty))))
	}

	return count, money.Round(total), nil
}

// sortedKeys fixes the iteration order: Go maps iterate randomly, so cart
// walks go in ascending key order to keep output deterministic.
func sortedKeys(cart Cart) []string {
	keys := make([]string, 0, len(cart))
	for k := range cart {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// mediaURL joins a relative media path onto the configured public prefix.
func mediaURL(path string) string {
	return strings.TrimRight(config.MediaURL(), "/") + "/" + strings.TrimLeft(path, "/")
}
