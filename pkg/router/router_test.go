package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcreations/storefront/pkg/router"
)

func noop(w http.ResponseWriter, r *http.Request) {}

func TestRoutesRecordsRegistrations(t *testing.T) {
	r := router.New()
	r.Get("/", "home", noop)

	cart := r.Group("/cart")
	cart.Post("/add", "cart.add", noop)
	cart.Post("/remove/{id}", "cart.remove", noop)

	routes := r.Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, router.RouteInfo{Method: http.MethodGet, Path: "/", Name: "home"}, routes[0])
	assert.Equal(t, router.RouteInfo{Method: http.MethodPost, Path: "/cart/add", Name: "cart.add"}, routes[1])
	assert.Equal(t, "/cart/remove/{id}", routes[2].Path)
}

func TestURL(t *testing.T) {
	r := router.New()
	r.Get("/orders/{id}/invoice", "orders.invoice", noop)

	url, err := r.URL("orders.invoice", map[string]string{"id": "7"})
	require.NoError(t, err)
	assert.Equal(t, "/orders/7/invoice", url)

	_, err = r.URL("orders.invoice", nil)
	assert.Error(t, err)

	_, err = r.URL("nope", nil)
	assert.Error(t, err)
}

func TestGroupMiddlewareApplies(t *testing.T) {
	r := router.New()

	guard := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})
	}
	admin := r.Group("/admin", guard)
	admin.Get("/products", "admin.products", noop)
	r.Get("/open", "open", noop)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/admin/products")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/open")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
