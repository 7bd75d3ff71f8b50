package catalog

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukkanpos/backoffice-api/internal/apperr"
)

type fakeCategoryRepo struct {
	store    map[uuid.UUID]*Category
	products *fakeProductRepo
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *Category) error {
	for _, existing := range f.store {
		if strings.EqualFold(existing.Name, c.Name) {
			return apperr.Conflict("category already exists")
		}
	}
	cp := *c
	f.store[c.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id string) (*Category, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid category id: %s", id)
	}
	c, ok := f.store[uid]
	if !ok {
		return nil, apperr.NotFound("category not found")
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCategoryRepo) List(_ context.Context) ([]*Category, error) {
	var out []*Category
	for _, c := range f.store {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, c *Category) error {
	if _, ok := f.store[c.ID]; !ok {
		return apperr.NotFound("category not found")
	}
	cp := *c
	f.store[c.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return apperr.Validation("invalid category id: %s", id)
	}
	if _, ok := f.store[uid]; !ok {
		return apperr.NotFound("category not found")
	}
	for _, p := range f.products.store {
		if p.CategoryID != nil && *p.CategoryID == uid {
			return apperr.Conflict("category is referenced by other records")
		}
	}
	delete(f.store, uid)
	return nil
}

type fakeProductRepo struct {
	mu    sync.Mutex
	store map[uuid.UUID]*Product
}

func (f *fakeProductRepo) Create(_ context.Context, p *Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.Barcode != "" {
		for _, existing := range f.store {
			if existing.Barcode == p.Barcode {
				return apperr.Conflict("product already exists")
			}
		}
	}
	cp := *p
	f.store[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid product id: %s", id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.store[uid]
	if !ok {
		return nil, apperr.NotFound("product not found")
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) GetByBarcode(_ context.Context, barcode string) (*Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.store {
		if p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("product not found")
}

func (f *fakeProductRepo) List(_ context.Context, filter ListFilter) ([]*Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*Product
	for _, p := range f.store {
		if filter.CategoryID != "" && (p.CategoryID == nil || p.CategoryID.String() != filter.CategoryID) {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Query)) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.store[p.ID]; !ok {
		return apperr.NotFound("product not found")
	}
	cp := *p
	f.store[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return apperr.Validation("invalid product id: %s", id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.store[uid]; !ok {
		return apperr.NotFound("product not found")
	}
	delete(f.store, uid)
	return nil
}

func (f *fakeProductRepo) AdjustStock(_ context.Context, id string, delta int) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid product id: %s", id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.store[uid]
	if !ok {
		return nil, apperr.NotFound("product not found")
	}
	if p.Stock+delta < 0 {
		return nil, apperr.Validation("stock cannot go below zero (current: %d, adjustment: %d)", p.Stock, delta)
	}
	p.Stock += delta
	cp := *p
	return &cp, nil
}

func setup(t *testing.T) (Service, *fakeCategoryRepo, *fakeProductRepo) {
	t.Helper()
	products := &fakeProductRepo{store: make(map[uuid.UUID]*Product)}
	categories := &fakeCategoryRepo{store: make(map[uuid.UUID]*Category), products: products}
	return NewService(categories, products), categories, products
}

func validProduct() CreateProductRequest {
	return CreateProductRequest{
		Name:   "Ground Coffee 250g",
		Price:  decimal.NewFromFloat(10.00),
		Stock:  5,
		Images: []string{"https://cdn.shop.test/coffee.jpg"},
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	t.Run("valid product is created", func(t *testing.T) {
		p, err := svc.CreateProduct(ctx, validProduct())
		require.NoError(t, err)
		assert.Equal(t, 5, p.Stock)
		assert.True(t, p.Price.Equal(decimal.NewFromFloat(10.00)))
	})

	t.Run("short name rejected", func(t *testing.T) {
		req := validProduct()
		req.Name = "ab"
		_, err := svc.CreateProduct(ctx, req)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("negative price rejected", func(t *testing.T) {
		req := validProduct()
		req.Price = decimal.NewFromFloat(-1)
		_, err := svc.CreateProduct(ctx, req)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("negative stock rejected", func(t *testing.T) {
		req := validProduct()
		req.Stock = -1
		_, err := svc.CreateProduct(ctx, req)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("missing images rejected", func(t *testing.T) {
		req := validProduct()
		req.Images = nil
		_, err := svc.CreateProduct(ctx, req)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("non-url image rejected", func(t *testing.T) {
		req := validProduct()
		req.Images = []string{"not a url"}
		_, err := svc.CreateProduct(ctx, req)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		req := validProduct()
		req.CategoryID = uuid.NewString()
		_, err := svc.CreateProduct(ctx, req)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestCategoryRules(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	t.Run("name minimum length", func(t *testing.T) {
		_, err := svc.CreateCategory(ctx, CreateCategoryRequest{Name: "a"})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("case-insensitive uniqueness", func(t *testing.T) {
		_, err := svc.CreateCategory(ctx, CreateCategoryRequest{Name: "Drinks"})
		require.NoError(t, err)
		_, err = svc.CreateCategory(ctx, CreateCategoryRequest{Name: "drinks"})
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	})
}

func TestDeleteCategoryProtected(t *testing.T) {
	svc, categories, _ := setup(t)
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, CreateCategoryRequest{Name: "Snacks"})
	require.NoError(t, err)

	req := validProduct()
	req.CategoryID = c.ID.String()
	p, err := svc.CreateProduct(ctx, req)
	require.NoError(t, err)

	err = svc.DeleteCategory(ctx, c.ID.String())
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// Category and product are untouched.
	_, err = svc.GetCategory(ctx, c.ID.String())
	assert.NoError(t, err)
	_, err = svc.GetProduct(ctx, p.ID.String())
	assert.NoError(t, err)

	// After the product goes, the delete succeeds.
	require.NoError(t, svc.DeleteProduct(ctx, p.ID.String()))
	assert.NoError(t, svc.DeleteCategory(ctx, c.ID.String()))
	_, ok := categories.store[c.ID]
	assert.False(t, ok)
}

func TestAdjustStock(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()
	p, err := svc.CreateProduct(ctx, validProduct())
	require.NoError(t, err)

	t.Run("restock", func(t *testing.T) {
		updated, err := svc.AdjustStock(ctx, p.ID.String(), AdjustStockRequest{Adjustment: 7})
		require.NoError(t, err)
		assert.Equal(t, 12, updated.Stock)
	})

	t.Run("correction below zero rejected, stock unchanged", func(t *testing.T) {
		_, err := svc.AdjustStock(ctx, p.ID.String(), AdjustStockRequest{Adjustment: -100})
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

		current, err := svc.GetProduct(ctx, p.ID.String())
		require.NoError(t, err)
		assert.Equal(t, 12, current.Stock)
	})

	t.Run("zero adjustment rejected", func(t *testing.T) {
		_, err := svc.AdjustStock(ctx, p.ID.String(), AdjustStockRequest{Adjustment: 0})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestUpdateProductPartial(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()
	p, err := svc.CreateProduct(ctx, validProduct())
	require.NoError(t, err)

	newPrice := decimal.NewFromFloat(12.50)
	updated, err := svc.UpdateProduct(ctx, p.ID.String(), UpdateProductRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(newPrice))
	assert.Equal(t, p.Name, updated.Name)
	assert.Equal(t, p.Stock, updated.Stock)
}
