// Package routes wires controllers onto the router.
package routes

import (
	"github.com/mcreations/storefront/app/controllers"
	"github.com/mcreations/storefront/app/models"
	"github.com/mcreations/storefront/app/repositories"
	"github.com/mcreations/storefront/app/services"
	"github.com/mcreations/storefront/pkg/ctx"
	"github.com/mcreations/storefront/pkg/logger"
	"github.com/mcreations/storefront/pkg/metrics"
	"github.com/mcreations/storefront/pkg/middleware"
	"github.com/mcreations/storefront/pkg/rbac"
	"github.com/mcreations/storefront/pkg/router"
)

// RegisterAPI builds the controller graph and registers every route.
func RegisterAPI(r *router.Router) {
	productRepo := repositories.NewProductRepository()
	categoryRepo := repositories.NewCategoryRepository()
	orderRepo := repositories.NewOrderRepository()
	userRepo := repositories.NewUserRepository()

	cartService := services.NewCartService(productRepo)
	checkoutService := services.NewCheckoutService(orderRepo)
	catalogService := services.NewCatalogService(productRepo, categoryRepo)
	adminService := services.NewProductAdminService(productRepo, categoryRepo)
	authService := services.NewAuthService(userRepo)

	catalog := controllers.NewCatalogController(catalogService)
	cart := controllers.NewCartController(cartService)
	checkout := controllers.NewCheckoutController(cartService, checkoutService)
	orders := controllers.NewOrderController(orderRepo)
	admin := controllers.NewAdminController(adminService, productRepo, orderRepo)
	auth := controllers.NewAuthController(authService)

	r.Get("/", "home", catalog.Home)
	r.Get("/metrics", "metrics", metrics.Handler())

	gqlController, err := controllers.NewGraphQLController(catalogService)
	if err != nil {
		logger.Error("graphql schema build failed", "error", err)
	}
	r.Post("/graphql", "graphql", gqlController.Serve)

	authGroup := r.Group("/auth")
	authGroup.Post("/register", "auth.register", ctx.Wrap(auth.Register), rbac.Guest)
	authGroup.Post("/login", "auth.login", ctx.Wrap(auth.Login), rbac.Guest)
	authGroup.Post("/staff/login", "auth.staff_login", ctx.Wrap(auth.StaffLogin))
	authGroup.Post("/logout", "auth.logout", ctx.Wrap(auth.Logout))

	r.Get("/cart", "cart.show", cart.Show)
	cartGroup := r.Group("/cart")
	cartGroup.Post("/add", "cart.add", cart.Add, middleware.RequireUser)
	cartGroup.Post("/update/{id}", "cart.update", cart.Update)
	cartGroup.Post("/remove/{id}", "cart.remove", cart.Remove)

	r.Get("/checkout", "checkout.show", checkout.Show)
	r.Post("/checkout", "checkout.submit", checkout.Submit)
	r.Post("/checkout/cancel", "checkout.cancel", checkout.Cancel)
	r.Get("/checkout/success", "checkout.success", checkout.Success)

	orderGroup := r.Group("/orders", middleware.RequireUser)
	orderGroup.Get("/history", "orders.history", orders.History)
	orderGroup.Get("/{id}/invoice", "orders.invoice", orders.Invoice)

	adminGroup := r.Group("/admin", middleware.RequireUser, rbac.HasRole(models.RoleStaff))
	adminGroup.Get("/products", "admin.products", admin.Dashboard)
	adminGroup.Post("/products/add", "admin.products.add", admin.AddProduct)
	adminGroup.Post("/products/edit/{id}", "admin.products.edit", admin.EditProduct)
	adminGroup.Post("/products/delete/{id}", "admin.products.delete", admin.DeleteProduct)
	adminGroup.Post("/categories/add", "admin.categories.add", admin.AddCategory)
	adminGroup.Get("/media/products/list", "admin.media.list", admin.ListMedia)
}
