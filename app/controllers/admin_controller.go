package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/mcreations/storefront/app/repositories"
	"github.com/mcreations/storefront/app/services"
	"github.com/mcreations/storefront/pkg/logger"
	"github.com/mcreations/storefront/pkg/response"
)

// maxUploadBytes caps product image uploads at 16 MB.
const maxUploadBytes = 16 << 20

// AdminController is the staff maintenance surface. Every handler here is
// registered behind the staff role guard.
type AdminController struct {
	admin    *services.ProductAdminService
	products *repositories.ProductRepository
	orders   *repositories.OrderRepository
}

func NewAdminController(admin *services.ProductAdminService, products *repositories.ProductRepository, orders *repositories.OrderRepository) *AdminController {
	return &AdminController{admin: admin, products: products, orders: orders}
}

// Dashboard is the admin gallery: every product plus a page of all orders.
func (c *AdminController) Dashboard(w http.ResponseWriter, r *http.Request) {
	products, err := c.products.All()
	if err != nil {
		logger.WithCtx(r.Context()).Error("admin product listing failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	orders, pagination, err := c.orders.All(page, limit)
	if err != nil {
		logger.WithCtx(r.Context()).Error("admin order listing failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	response.OK(w, response.Payload{
		"products":   services.Views(products),
		"orders":     orders,
		"pagination": pagination,
	})
}

// AddProduct creates a product from a multipart form.
func (c *AdminController) AddProduct(w http.ResponseWriter, r *http.Request) {
	input, upload, ok := productForm(w, r)
	if !ok {
		return
	}

	product, err := c.admin.Create(input, upload)
	if !c.respondProductErr(w, r, err) {
		return
	}
	response.OK(w, response.Payload{"product": services.View(product)})
}

// EditProduct updates a product from a multipart form.
func (c *AdminController) EditProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.NotFound(w)
		return
	}

	input, upload, ok := productForm(w, r)
	if !ok {
		return
	}

	product, err := c.admin.Update(uint(id), input, upload)
	if !c.respondProductErr(w, r, err) {
		return
	}
	response.OK(w, response.Payload{"product": services.View(product)})
}

// DeleteProduct removes a product and its media file.
func (c *AdminController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.NotFound(w)
		return
	}

	err = c.admin.Delete(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("product delete failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	response.OK(w, nil)
}

// AddCategory creates a category, replying 409 with the existing record on
// a case-insensitive duplicate.
func (c *AdminController) AddCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	category, err := c.admin.CreateCategory(body.Name)

	var dup *services.DuplicateCategoryError
	switch {
	case errors.Is(err, services.ErrCategoryNameRequired):
		response.ValidationErrors(w, map[string][]string{
			"name": {"The name field is required."},
		})
	case errors.As(err, &dup):
		response.ErrorWith(w, http.StatusConflict, "exists", response.Payload{
			"category": dup.Existing,
		})
	case err != nil:
		logger.WithCtx(r.Context()).Error("category create failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
	default:
		response.OK(w, response.Payload{"category": category})
	}
}

// ListMedia walks the product media directory.
func (c *AdminController) ListMedia(w http.ResponseWriter, r *http.Request) {
	files, err := c.admin.MediaFiles()
	if err != nil {
		logger.WithCtx(r.Context()).Error("media listing failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	response.OK(w, response.Payload{"files": files})
}

// productForm parses the multipart product form; on failure it has already
// written the error response.
func productForm(w http.ResponseWriter, r *http.Request) (services.ProductInput, *multipart.FileHeader, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid multipart form")
		return services.ProductInput{}, nil, false
	}

	input := services.ProductInput{
		Title:          r.FormValue("title"),
		PriceRaw:       r.FormValue("price"),
		Description:    r.FormValue("description"),
		CategoryRaw:    r.FormValue("category"),
		ImageFromMedia: r.FormValue("image_from_media"),
		ImageClear:     r.FormValue("image-clear") == "true",
	}

	var upload *multipart.FileHeader
	if files := r.MultipartForm.File["image"]; len(files) > 0 {
		upload = files[0]
	}

	return input, upload, true
}

// respondProductErr maps service errors to responses; true means no error.
func (c *AdminController) respondProductErr(w http.ResponseWriter, r *http.Request, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.NotFound(w)
	case errors.Is(err, services.ErrBadMediaPath):
		response.ValidationErrors(w, map[string][]string{
			"image_from_media": {"The selected media path is invalid."},
		})
	default:
		logger.WithCtx(r.Context()).Error("product save failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
	}
	return false
}
