package services

import (
	"math/rand"
	"path"
	"strings"

	"github.com/mcreations/storefront/app/models"
	"github.com/mcreations/storefront/app/repositories"
	"github.com/mcreations/storefront/pkg/collection"
	"github.com/mcreations/storefront/pkg/logger"
	"github.com/mcreations/storefront/pkg/storage"
)

// imageExtensions are the file types treated as product imagery.
var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// ProductView is the JSON shape the catalogue endpoints serve.
type ProductView struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
}

// CatalogService serves the public browsing surface.
type CatalogService struct {
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
}

func NewCatalogService(products *repositories.ProductRepository, categories *repositories.CategoryRepository) *CatalogService {
	return &CatalogService{products: products, categories: categories}
}

// List returns the catalogue newest-first, filtered by the free-text query
// when one is given.
func (s *CatalogService) List(q string) ([]models.Product, error) {
	return s.products.Search(q)
}

// Categories returns every category ordered by name.
func (s *CatalogService) Categories() ([]models.Category, error) {
	return s.categories.All()
}

// Find returns one product by id.
func (s *CatalogService) Find(id uint) (models.Product, error) {
	return s.products.FindByID(id)
}

// RandomBackground picks a random product image to decorate the home page.
// Any storage trouble degrades to "" — the page just renders without one.
func (s *CatalogService) RandomBackground() string {
	files, err := storage.Files("products")
	if err != nil {
		logger.Debug("background pick skipped", "error", err)
		return ""
	}

	images := collection.Filter(files, func(f string) bool {
		return imageExtensions[strings.ToLower(path.Ext(f))]
	})
	if len(images) == 0 {
		return ""
	}

	return storage.URL(images[rand.Intn(len(images))])
}

// Views converts products to their serialisable form.
func Views(products []models.Product) []ProductView {
	return collection.Map(products, View)
}

// View converts one product to its serialisable form.
func View(p models.Product) ProductView {
	v := ProductView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Category:    p.CategoryName(),
	}
	if p.Image != "" {
		v.ImageURL = mediaURL(p.Image)
	}
	return v
}
