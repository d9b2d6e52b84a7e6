package controllers

import (
	"net/http"

	"github.com/mcreations/storefront/app/services"
	"github.com/mcreations/storefront/pkg/logger"
	"github.com/mcreations/storefront/pkg/response"
)

// CatalogController serves the public browsing surface.
type CatalogController struct {
	catalog *services.CatalogService
}

func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// Home lists the catalogue newest-first, optionally filtered by ?q=.
func (c *CatalogController) Home(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	products, err := c.catalog.List(q)
	if err != nil {
		logger.WithCtx(r.Context()).Error("catalog listing failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	categories, err := c.catalog.Categories()
	if err != nil {
		logger.WithCtx(r.Context()).Error("category listing failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	response.OK(w, response.Payload{
		"products":   services.Views(products),
		"categories": categories,
		"background": c.catalog.RandomBackground(),
		"query":      q,
	})
}
