package controllers

import (
	"errors"
	"net/http"

	"github.com/mcreations/storefront/app/services"
	"github.com/mcreations/storefront/pkg/bind"
	"github.com/mcreations/storefront/pkg/logger"
	"github.com/mcreations/storefront/pkg/metrics"
	"github.com/mcreations/storefront/pkg/middleware"
	"github.com/mcreations/storefront/pkg/money"
	"github.com/mcreations/storefront/pkg/response"
	"github.com/mcreations/storefront/pkg/session"
)

// latestOrderKey is the read-once session slot for the order confirmation.
const latestOrderKey = "latest_order"

// CheckoutController runs the cart-to-order pipeline.
type CheckoutController struct {
	cart     *services.CartService
	checkout *services.CheckoutService
}

func NewCheckoutController(cart *services.CartService, checkout *services.CheckoutService) *CheckoutController {
	return &CheckoutController{cart: cart, checkout: checkout}
}

// Show returns the normalized items and total the buyer is about to commit.
func (c *CheckoutController) Show(w http.ResponseWriter, r *http.Request) {
	_, cart := sessionCart(r)

	items, total, err := c.cart.Normalize(cart)
	if err != nil {
		logger.WithCtx(r.Context()).Error("checkout normalize failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	response.OK(w, response.Payload{"items": items, "total": money.String(total)})
}

// Submit validates the buyer details and commits the order atomically.
// Validation failures echo every submitted value back for form prefill and
// create nothing.
func (c *CheckoutController) Submit(w http.ResponseWriter, r *http.Request) {
	var input services.CheckoutInput
	errs, err := bind.JSON(r, &input)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(errs) > 0 {
		response.ValidationErrorsWith(w, errs, response.Payload{"values": input})
		return
	}

	sess, cart := sessionCart(r)
	items, total, err := c.cart.Normalize(cart)
	if err != nil {
		logger.WithCtx(r.Context()).Error("checkout normalize failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	var userID *uint
	if id, ok := middleware.UserIDFromCtx(r); ok {
		userID = &id
	}

	order, err := c.checkout.PlaceOrder(userID, input, items, total)
	if errors.Is(err, services.ErrEmptyCart) {
		response.Error(w, http.StatusBadRequest, "Cart is empty")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("order commit failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	// Commit succeeded: reset the cart and flash the read-once summary.
	sess.Set(cartKey, services.Cart{})
	sess.Flash(latestOrderKey, c.checkout.Summarize(order, items))
	if err := sess.Save(w); err != nil {
		logger.WithCtx(r.Context()).Error("session save failed after commit", "order_id", order.ID, "error", err)
	}

	response.OK(w, response.Payload{
		"order_id": order.ID,
		"total":    money.String(order.Total),
	})
}

// Cancel throws the cart away.
func (c *CheckoutController) Cancel(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	sess.Set(cartKey, services.Cart{})
	metrics.CartOperations.WithLabelValues("clear").Inc()

	if err := sess.Save(w); err != nil {
		logger.WithCtx(r.Context()).Error("cart clear failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	response.OK(w, nil)
}

// Success returns the flashed order summary exactly once; a second read
// finds nothing and 404s.
func (c *CheckoutController) Success(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)

	summary, ok := sess.GetFlash(latestOrderKey)
	if !ok {
		response.NotFound(w)
		return
	}

	// Persist the flash consumption before replying.
	if err := sess.Save(w); err != nil {
		logger.WithCtx(r.Context()).Error("session save failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	response.OK(w, response.Payload{"order": summary})
}
