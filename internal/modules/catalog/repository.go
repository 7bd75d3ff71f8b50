package catalog

import "context"

// CategoryRepository defines data access for categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, c *Category) error

	// Delete fails with a conflict while products still reference the
	// category; it never cascades.
	Delete(ctx context.Context, id string) error
}

// ProductRepository defines data access for products.
type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*Product, error)
	List(ctx context.Context, filter ListFilter) ([]*Product, error)
	Update(ctx context.Context, p *Product) error

	// Delete removes the product together with its historical order items.
	Delete(ctx context.Context, id string) error

	// AdjustStock applies stock += delta atomically; if the result would be
	// negative it fails and leaves stock unchanged.
	AdjustStock(ctx context.Context, id string, delta int) (*Product, error)
}
