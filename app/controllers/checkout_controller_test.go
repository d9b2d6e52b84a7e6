package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mcreations/storefront/app/controllers"
	"github.com/mcreations/storefront/app/models"
	"github.com/mcreations/storefront/app/repositories"
	"github.com/mcreations/storefront/app/services"
	"github.com/mcreations/storefront/pkg/database"
	"github.com/mcreations/storefront/pkg/session"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		_ = sqlDB.Close()
	})

	return db
}

func newCheckoutHandler() http.Handler {
	cart := services.NewCartService(repositories.NewProductRepository())
	checkout := services.NewCheckoutService(repositories.NewOrderRepository())
	ctrl := controllers.NewCheckoutController(cart, checkout)
	return session.Middleware(session.DefaultOptions())(http.HandlerFunc(ctrl.Submit))
}

func postCheckout(t *testing.T, handler http.Handler, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &decoded))
	return rr, decoded
}

func TestSubmitValidationFailureEchoesValuesAndCreatesNothing(t *testing.T) {
	db := newTestDB(t)
	handler := newCheckoutHandler()

	rr, decoded := postCheckout(t, handler,
		`{"name":"","email":"a@b.com","pincode":"110001"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, false, decoded["ok"])

	errs, ok := decoded["errors"].(map[string]interface{})
	require.True(t, ok, "expected field errors, got: %v", decoded)
	assert.Contains(t, errs, "name")
	assert.NotContains(t, errs, "email")

	// Every submitted value comes back for form prefill, pincode included.
	values, ok := decoded["values"].(map[string]interface{})
	require.True(t, ok, "expected echoed values, got: %v", decoded)
	assert.Equal(t, "a@b.com", values["email"])
	assert.Equal(t, "110001", values["pincode"])

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitEmptyCart(t *testing.T) {
	db := newTestDB(t)
	handler := newCheckoutHandler()

	// A single-character name is valid input; the empty cart is what stops
	// this checkout.
	rr, decoded := postCheckout(t, handler,
		`{"name":"J","email":"j@example.com"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Cart is empty", decoded["error"])

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}
