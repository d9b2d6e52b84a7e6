package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"strconv"
	"strings"

	"github.com/mcreations/storefront/app/models"
	"github.com/mcreations/storefront/app/repositories"
	"github.com/mcreations/storefront/pkg/collection"
	"github.com/mcreations/storefront/pkg/logger"
	"github.com/mcreations/storefront/pkg/money"
	"github.com/mcreations/storefront/pkg/storage"
)

// mediaDir is where product images live on the storage disk.
const mediaDir = "products"

var (
	// ErrCategoryNameRequired rejects blank category names.
	ErrCategoryNameRequired = errors.New("category name is required")

	// ErrBadMediaPath rejects image_from_media paths outside the products dir.
	ErrBadMediaPath = errors.New("media path must point inside products/")
)

// DuplicateCategoryError reports a case-insensitive name collision and
// carries the record that already owns the name.
type DuplicateCategoryError struct {
	Existing models.Category
}

func (e *DuplicateCategoryError) Error() string {
	return fmt.Sprintf("category %q already exists", e.Existing.Name)
}

// ProductInput is the admin product form. Price and category arrive as raw
// strings because the form is forgiving: unparsable values degrade instead
// of erroring.
type ProductInput struct {
	Title          string
	PriceRaw       string
	Description    string
	CategoryRaw    string
	ImageFromMedia string
	ImageClear     bool
}

// MediaFile is one entry in the media listing.
type MediaFile struct {
	Name string `json:"name"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

// ProductAdminService implements the staff maintenance operations.
type ProductAdminService struct {
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
}

func NewProductAdminService(products *repositories.ProductRepository, categories *repositories.CategoryRepository) *ProductAdminService {
	return &ProductAdminService{products: products, categories: categories}
}

// Create inserts a new product from the form. upload may be nil.
func (s *ProductAdminService) Create(input ProductInput, upload *multipart.FileHeader) (models.Product, error) {
	product := models.Product{Price: money.Zero()}
	if err := s.apply(&product, input, upload); err != nil {
		return models.Product{}, err
	}
	if err := s.products.Create(&product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// Update edits an existing product in place.
func (s *ProductAdminService) Update(id uint, input ProductInput, upload *multipart.FileHeader) (models.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		return models.Product{}, err
	}
	if err := s.apply(&product, input, upload); err != nil {
		return models.Product{}, err
	}
	if err := s.products.Update(&product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// Delete removes a product and, best-effort, its media file. Order item
// snapshots referencing the product are untouched.
func (s *ProductAdminService) Delete(id uint) error {
	product, err := s.products.FindByID(id)
	if err != nil {
		return err
	}
	s.deleteMedia(product.Image)
	return s.products.Delete(&product)
}

// apply folds one form submission into the product, following the forgiving
// rules the admin surface has always had: blank title becomes "Untitled",
// an unparsable price keeps the old one, a negative price flips positive,
// and an unresolvable category silently clears the association.
func (s *ProductAdminService) apply(p *models.Product, input ProductInput, upload *multipart.FileHeader) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = models.UntitledProduct
	}
	p.Title = title
	p.Description = input.Description

	if price, ok := money.Parse(input.PriceRaw); ok {
		p.Price = price.Abs()
	}

	p.CategoryID = nil
	p.Category = nil
	if n, err := strconv.ParseUint(strings.TrimSpace(input.CategoryRaw), 10, 64); err == nil {
		if category, err := s.categories.FindByID(uint(n)); err == nil {
			id := category.ID
			p.CategoryID = &id
		}
	}

	return s.applyImage(p, input, upload)
}

func (s *ProductAdminService) applyImage(p *models.Product, input ProductInput, upload *multipart.FileHeader) error {
	switch {
	case input.ImageClear:
		s.deleteMedia(p.Image)
		p.Image = ""

	case upload != nil:
		stored, err := s.storeUpload(upload)
		if err != nil {
			return err
		}
		if p.Image != stored {
			s.deleteMedia(p.Image)
		}
		p.Image = stored

	case input.ImageFromMedia != "":
		normalized, err := normalizeMediaPath(input.ImageFromMedia)
		if err != nil {
			return err
		}
		if p.Image != normalized {
			s.deleteMedia(p.Image)
		}
		p.Image = normalized
	}

	return nil
}

// storeUpload writes the uploaded file under products/ with a randomized
// name, keeping the original extension.
func (s *ProductAdminService) storeUpload(upload *multipart.FileHeader) (string, error) {
	src, err := upload.Open()
	if err != nil {
		return "", fmt.Errorf("products: open upload: %w", err)
	}
	defer src.Close()

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("products: name upload: %w", err)
	}
	name := hex.EncodeToString(buf) + strings.ToLower(path.Ext(upload.Filename))

	stored := mediaDir + "/" + name
	if err := storage.PutStream(stored, src); err != nil {
		return "", fmt.Errorf("products: store upload: %w", err)
	}
	return stored, nil
}

// deleteMedia removes an old media file. Failures are logged and swallowed:
// a stale file on disk is not worth failing the product write over.
func (s *ProductAdminService) deleteMedia(stored string) {
	if stored == "" {
		return
	}
	if err := storage.Delete(stored); err != nil {
		logger.Warn("stale media not deleted", "path", stored, "error", err)
	}
}

// normalizeMediaPath cleans a caller-supplied media path and requires it to
// stay inside products/.
func normalizeMediaPath(raw string) (string, error) {
	cleaned := path.Clean(strings.TrimLeft(strings.TrimSpace(raw), "/"))
	if cleaned != mediaDir && !strings.HasPrefix(cleaned, mediaDir+"/") {
		return "", ErrBadMediaPath
	}
	if strings.Contains(cleaned, "..") {
		return "", ErrBadMediaPath
	}
	return cleaned, nil
}

// CreateCategory inserts a category after a case-insensitive duplicate
// check. The slug is derived by the model hook.
func (s *ProductAdminService) CreateCategory(name string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, ErrCategoryNameRequired
	}

	if existing, err := s.categories.FindByName(name); err == nil {
		return models.Category{}, &DuplicateCategoryError{Existing: existing}
	}

	category := models.Category{Name: name}
	if err := s.categories.Create(&category); err != nil {
		return models.Category{}, err
	}
	return category, nil
}

// MediaFiles walks products/ and returns the image files found there.
func (s *ProductAdminService) MediaFiles() ([]MediaFile, error) {
	files, err := storage.AllFiles(mediaDir)
	if err != nil {
		return nil, fmt.Errorf("products: list media: %w", err)
	}

	images := collection.Filter(files, func(f string) bool {
		return imageExtensions[strings.ToLower(path.Ext(f))]
	})

	return collection.Map(images, func(f string) MediaFile {
		return MediaFile{Name: path.Base(f), Path: f, URL: storage.URL(f)}
	}), nil
}
