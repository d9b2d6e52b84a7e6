package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mcreations/storefront/app/models"
	"github.com/mcreations/storefront/app/repositories"
	"github.com/mcreations/storefront/pkg/logger"
	"github.com/mcreations/storefront/pkg/metrics"
	"github.com/mcreations/storefront/pkg/money"
)

// ErrEmptyCart is returned when checkout is attempted with nothing in the cart.
var ErrEmptyCart = errors.New("cart is empty")

// CheckoutInput is the buyer detail form. Name and email are the only hard
// requirements; everything else is free text. Pincode is echoed back on
// validation failure but never stored on the order.
type CheckoutInput struct {
	Name    string `json:"name"    validate:"required,max=255"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"   validate:"nullable,max=50"`
	Address string `json:"address" validate:"nullable,max=1000"`
	Pincode string `json:"pincode" validate:"nullable,max=20"`
	Note    string `json:"note"    validate:"nullable,max=1000"`
}

// OrderSummary is the lightweight read-once confirmation flashed into the
// session after a successful commit.
type OrderSummary struct {
	ID    uint            `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Items []SummaryItem   `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// SummaryItem is one confirmation line.
type SummaryItem struct {
	Title    string          `json:"title"`
	Qty      int             `json:"qty"`
	Subtotal decimal.Decimal `json:"subtotal"`
	ImageURL string          `json:"image_url"`
}

// CheckoutService commits carts into persisted orders.
type CheckoutService struct {
	orders *repositories.OrderRepository
}

func NewCheckoutService(orders *repositories.OrderRepository) *CheckoutService {
	return &CheckoutService{orders: orders}
}

// PlaceOrder turns normalized line items into a persisted order. The order
// header and every item snapshot are written in one transaction; any item
// failure rolls everything back so no partial order is ever observable.
// userID is nil for guest checkouts. The caller is responsible for clearing
// the session cart after a successful return.
func (s *CheckoutService) PlaceOrder(userID *uint, input CheckoutInput, items []LineItem, total decimal.Decimal) (*models.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		UserID:  userID,
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Phone:   strings.TrimSpace(input.Phone),
		Address: strings.TrimSpace(input.Address),
		Note:    strings.TrimSpace(input.Note),
		Total:   money.Round(total),
	}

	snapshots := make([]models.OrderItem, len(items))
	for i, item := range items {
		snapshots[i] = models.OrderItem{
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     item.Price,
			Qty:       item.Qty,
			Subtotal:  item.Subtotal,
		}
	}

	if err := s.orders.CreateWithItems(order, snapshots); err != nil {
		return nil, err
	}

	metrics.OrdersPlaced.Inc()
	if v, ok := order.Total.Float64(); ok {
		metrics.OrderValue.Observe(v)
	} else {
		metrics.OrderValue.Observe(0)
	}
	logger.Info("order placed", "order_id", order.ID, "total", money.String(order.Total), "items", len(snapshots))

	return order, nil
}

// Summarize builds the confirmation payload from a committed order and the
// line items it was committed from (the items carry image URLs the
// snapshots do not).
func (s *CheckoutService) Summarize(order *models.Order, items []LineItem) OrderSummary {
	summary := OrderSummary{
		ID:    order.ID,
		Name:  order.Name,
		Email: order.Email,
		Total: order.Total,
		Items: make([]SummaryItem, len(items)),
	}
	for i, item := range items {
		summary.Items[i] = SummaryItem{
			Title:    item.Title,
			Qty:      item.Qty,
			Subtotal: item.Subtotal,
			ImageURL: item.ImageURL,
		}
	}
	return summary
}
