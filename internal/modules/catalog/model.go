package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category groups products. Names are unique case-insensitively.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Product is a sellable catalog item. Stock never goes negative; every
// mutation of it runs through a guarded transaction.
type Product struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	Category    *Category       `json:"category,omitempty"`
	Images      []string        `json:"images"`
	Barcode     string          `json:"barcode,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateCategoryRequest is the payload for creating or renaming a category.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CreateProductRequest is the payload for creating a product.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	CategoryID  string          `json:"category_id,omitempty"`
	Images      []string        `json:"images"`
	Barcode     string          `json:"barcode,omitempty"`
}

// UpdateProductRequest is the payload for a partial product update.
// Nil fields are left unchanged.
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	CategoryID  *string          `json:"category_id,omitempty"`
	Images      []string         `json:"images,omitempty"`
	Barcode     *string          `json:"barcode,omitempty"`
}

// AdjustStockRequest is the payload for an administrative stock correction.
type AdjustStockRequest struct {
	Adjustment int `json:"adjustment"`
}

// ListFilter narrows a product listing.
type ListFilter struct {
	CategoryID string
	Query      string
}
