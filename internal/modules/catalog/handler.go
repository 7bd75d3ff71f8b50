package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dukkanpos/backoffice-api/internal/policy"
	"github.com/dukkanpos/backoffice-api/internal/web"
)

// Guard wraps a handler with an authorization check for an operation.
type Guard func(policy.Operation) func(http.Handler) http.Handler

// Handler exposes catalog HTTP endpoints. Reads are public; mutations are
// guarded per operation.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router, guard Guard) {
	r.Route("/api/v1/categories", func(r chi.Router) {
		r.Get("/", h.listCategories)
		r.Get("/{id}", h.getCategory)
		r.With(guard(policy.OpCategoryCreate)).Post("/", h.createCategory)
		r.With(guard(policy.OpCategoryUpdate)).Patch("/{id}", h.updateCategory)
		r.With(guard(policy.OpCategoryDelete)).Delete("/{id}", h.deleteCategory)
	})
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.listProducts)
		r.Get("/{id}", h.getProduct)
		r.Get("/barcode/{code}", h.getProductByBarcode)
		r.With(guard(policy.OpProductCreate)).Post("/", h.createProduct)
		r.With(guard(policy.OpProductUpdate)).Patch("/{id}", h.updateProduct)
		r.With(guard(policy.OpProductDelete)).Delete("/{id}", h.deleteProduct)
		r.With(guard(policy.OpStockAdjust)).Patch("/{id}/stock", h.adjustStock)
	})
}

// ---- Categories ----

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		web.Error(w, "category.list", err)
		return
	}
	web.JSON(w, http.StatusOK, categories)
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.GetCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, "category.get", err)
		return
	}
	web.JSON(w, http.StatusOK, c)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, "category.create", err)
		return
	}
	c, err := h.service.CreateCategory(r.Context(), req)
	if err != nil {
		web.Error(w, "category.create", err)
		return
	}
	web.JSON(w, http.StatusCreated, c)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, "category.update", err)
		return
	}
	c, err := h.service.UpdateCategory(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		web.Error(w, "category.update", err)
		return
	}
	web.JSON(w, http.StatusOK, c)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		web.Error(w, "category.delete", err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"status": "category deleted"})
}

// ---- Products ----

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		CategoryID: r.URL.Query().Get("category_id"),
		Query:      r.URL.Query().Get("query"),
	}
	products, err := h.service.ListProducts(r.Context(), filter)
	if err != nil {
		web.Error(w, "product.list", err)
		return
	}
	web.JSON(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		web.Error(w, "product.get", err)
		return
	}
	web.JSON(w, http.StatusOK, p)
}

func (h *Handler) getProductByBarcode(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProductByBarcode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		web.Error(w, "product.barcode", err)
		return
	}
	web.JSON(w, http.StatusOK, p)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, "product.create", err)
		return
	}
	p, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		web.Error(w, "product.create", err)
		return
	}
	web.JSON(w, http.StatusCreated, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req UpdateProductRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, "product.update", err)
		return
	}
	p, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		web.Error(w, "product.update", err)
		return
	}
	web.JSON(w, http.StatusOK, p)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		web.Error(w, "product.delete", err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"status": "product deleted"})
}

func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request) {
	var req AdjustStockRequest
	if err := web.Decode(r, &req); err != nil {
		web.Error(w, "product.stock.adjust", err)
		return
	}
	p, err := h.service.AdjustStock(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		web.Error(w, "product.stock.adjust", err)
		return
	}
	web.JSON(w, http.StatusOK, p)
}
