package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/mcreations/storefront/app/models"
	"github.com/mcreations/storefront/app/repositories"
	"github.com/mcreations/storefront/pkg/logger"
	"github.com/mcreations/storefront/pkg/middleware"
	"github.com/mcreations/storefront/pkg/response"
)

// OrderController serves order history and invoices.
type OrderController struct {
	orders *repositories.OrderRepository
}

func NewOrderController(orders *repositories.OrderRepository) *OrderController {
	return &OrderController{orders: orders}
}

// History lists the authenticated user's orders, newest first.
func (c *OrderController) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	orders, err := c.orders.ForUser(userID)
	if err != nil {
		logger.WithCtx(r.Context()).Error("order history failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	response.OK(w, response.Payload{"orders": orders})
}

// Invoice returns one order. Only the owner or a staff account may read
// it; everyone else gets a 403 that leaks nothing about the record.
func (c *OrderController) Invoice(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.NotFound(w)
		return
	}

	order, err := c.orders.FindByID(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("invoice lookup failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	role, _ := middleware.RoleFromCtx(r)
	owner := order.UserID != nil && *order.UserID == userID
	if !owner && role != models.RoleStaff {
		response.Forbidden(w)
		return
	}

	response.OK(w, response.Payload{"order": order})
}
