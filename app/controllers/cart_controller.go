package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mcreations/storefront/app/services"
	"github.com/mcreations/storefront/pkg/logger"
	"github.com/mcreations/storefront/pkg/money"
	"github.com/mcreations/storefront/pkg/response"
	"github.com/mcreations/storefront/pkg/session"
)

const cartKey = "cart"

// CartController exposes the session cart.
type CartController struct {
	cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{cart: cart}
}

// sessionCart lazily reads the cart out of the session; a missing or
// unreadable value is an empty cart.
func sessionCart(r *http.Request) (*session.Session, services.Cart) {
	sess := session.FromCtx(r)
	raw, _ := sess.Get(cartKey)
	return sess, services.CartFromSession(raw)
}

// persistCart writes the cart back and saves the session in-request.
func persistCart(w http.ResponseWriter, sess *session.Session, cart services.Cart) error {
	sess.Set(cartKey, cart)
	return sess.Save(w)
}

// Show returns the normalized cart view.
func (c *CartController) Show(w http.ResponseWriter, r *http.Request) {
	_, cart := sessionCart(r)

	items, total, err := c.cart.Normalize(cart)
	if err != nil {
		logger.WithCtx(r.Context()).Error("cart normalize failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	response.OK(w, response.Payload{"items": items, "total": money.String(total)})
}

// Add puts qty more of product_id into the cart. A missing or bad qty
// means 1; the product must exist.
func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID json.RawMessage `json:"product_id"`
		Qty       json.RawMessage `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	productID := rawToString(body.ProductID)
	if productID == "" {
		response.ValidationErrors(w, map[string][]string{
			"product_id": {"The product_id field is required."},
		})
		return
	}

	sess, cart := sessionCart(r)
	count, total, err := c.cart.Add(cart, productID, rawToInt(body.Qty, 1))
	if errors.Is(err, services.ErrProductNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("cart add failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if err := persistCart(w, sess, cart); err != nil {
		logger.WithCtx(r.Context()).Error("cart save failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	response.OK(w, response.Payload{"count": count, "total": money.String(total)})
}

// Update sets the quantity for one line; zero or less removes it.
func (c *CartController) Update(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Qty json.RawMessage `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sess, cart := sessionCart(r)
	c.cart.Update(cart, chi.URLParam(r, "id"), rawToInt(body.Qty, 0))
	c.respondNormalized(w, r, sess, cart)
}

// Remove drops one line; removing an absent line still succeeds.
func (c *CartController) Remove(w http.ResponseWriter, r *http.Request) {
	sess, cart := sessionCart(r)
	c.cart.Remove(cart, chi.URLParam(r, "id"))
	c.respondNormalized(w, r, sess, cart)
}

func (c *CartController) respondNormalized(w http.ResponseWriter, r *http.Request, sess *session.Session, cart services.Cart) {
	if err := persistCart(w, sess, cart); err != nil {
		logger.WithCtx(r.Context()).Error("cart save failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	items, total, err := c.cart.Normalize(cart)
	if err != nil {
		logger.WithCtx(r.Context()).Error("cart normalize failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	response.OK(w, response.Payload{"items": items, "total": money.String(total)})
}

// rawToString renders a JSON number or string value as a plain string.
func rawToString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// rawToInt coerces a JSON number or numeric string, falling back to def.
func rawToInt(raw json.RawMessage, def int) int {
	s := rawToString(raw)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
