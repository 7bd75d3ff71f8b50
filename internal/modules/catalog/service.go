package catalog

import (
	"context"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/dukkanpos/backoffice-api/internal/apperr"
)

const (
	minCategoryNameLength = 2
	minProductNameLength  = 3
)

// Service defines catalog business logic for categories and products.
type Service interface {
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	UpdateCategory(ctx context.Context, id string, req CreateCategoryRequest) (*Category, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	GetProductByBarcode(ctx context.Context, barcode string) (*Product, error)
	ListProducts(ctx context.Context, filter ListFilter) ([]*Product, error)
	UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error

	// AdjustStock applies an administrative stock correction. The resulting
	// stock may never be negative.
	AdjustStock(ctx context.Context, id string, req AdjustStockRequest) (*Product, error)
}

type service struct {
	categories CategoryRepository
	products   ProductRepository
}

// NewService creates a new catalog service.
func NewService(categories CategoryRepository, products ProductRepository) Service {
	return &service{categories: categories, products: products}
}

// ---- Categories ----

func (s *service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	name, err := validCategoryName(req.Name)
	if err != nil {
		return nil, err
	}
	c := &Category{ID: uuid.New(), Name: name}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetCategory(ctx context.Context, id string) (*Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.categories.List(ctx)
}

func (s *service) UpdateCategory(ctx context.Context, id string, req CreateCategoryRequest) (*Category, error) {
	name, err := validCategoryName(req.Name)
	if err != nil {
		return nil, err
	}
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = name
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) DeleteCategory(ctx context.Context, id string) error {
	return s.categories.Delete(ctx, id)
}

// ---- Products ----

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	name := strings.TrimSpace(req.Name)
	if len(name) < minProductNameLength {
		return nil, apperr.Validation("product name must be at least %d characters", minProductNameLength)
	}
	if req.Price.IsNegative() {
		return nil, apperr.Validation("price cannot be negative")
	}
	if req.Stock < 0 {
		return nil, apperr.Validation("stock cannot be negative")
	}
	if err := validImages(req.Images); err != nil {
		return nil, err
	}

	p := &Product{
		ID:          uuid.New(),
		Name:        name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Images:      req.Images,
		Barcode:     strings.TrimSpace(req.Barcode),
	}
	if req.CategoryID != "" {
		c, err := s.categories.GetByID(ctx, req.CategoryID)
		if err != nil {
			return nil, err
		}
		p.CategoryID = &c.ID
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *service) GetProductByBarcode(ctx context.Context, barcode string) (*Product, error) {
	if strings.TrimSpace(barcode) == "" {
		return nil, apperr.Validation("barcode is required")
	}
	return s.products.GetByBarcode(ctx, barcode)
}

func (s *service) ListProducts(ctx context.Context, filter ListFilter) ([]*Product, error) {
	return s.products.List(ctx, filter)
}

func (s *service) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if len(name) < minProductNameLength {
			return nil, apperr.Validation("product name must be at least %d characters", minProductNameLength)
		}
		p.Name = name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, apperr.Validation("price cannot be negative")
		}
		p.Price = *req.Price
	}
	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			p.CategoryID = nil
		} else {
			c, err := s.categories.GetByID(ctx, *req.CategoryID)
			if err != nil {
				return nil, err
			}
			p.CategoryID = &c.ID
		}
	}
	if req.Images != nil {
		if err := validImages(req.Images); err != nil {
			return nil, err
		}
		p.Images = req.Images
	}
	if req.Barcode != nil {
		p.Barcode = strings.TrimSpace(*req.Barcode)
	}
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.products.GetByID(ctx, id)
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

func (s *service) AdjustStock(ctx context.Context, id string, req AdjustStockRequest) (*Product, error) {
	if req.Adjustment == 0 {
		return nil, apperr.Validation("adjustment cannot be zero")
	}
	return s.products.AdjustStock(ctx, id, req.Adjustment)
}

// ---- validation helpers ----

func validCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if len(name) < minCategoryNameLength {
		return "", apperr.Validation("category name must be at least %d characters", minCategoryNameLength)
	}
	return name, nil
}

func validImages(images []string) error {
	if len(images) == 0 {
		return apperr.Validation("at least one image is required")
	}
	for _, img := range images {
		u, err := url.Parse(img)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return apperr.Validation("invalid image url: %s", img)
		}
	}
	return nil
}
