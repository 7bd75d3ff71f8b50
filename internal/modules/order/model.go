package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukkanpos/backoffice-api/internal/apperr"
)

// Status is the lifecycle state of an order. Transitions are deliberately
// unrestricted; only membership in the set is validated.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// ParseStatus validates a status string against the closed set.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(s)); st {
	case StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled:
		return st, nil
	default:
		return "", apperr.Validation("invalid status: %s (allowed: PENDING, PAID, SHIPPED, DELIVERED, CANCELLED)", s)
	}
}

// Origin indicates how an order was placed.
type Origin string

const (
	OriginInStore Origin = "IN_STORE"
	OriginOnline  Origin = "ONLINE"
)

// Order is a sale recorded against the shop's stock. The total is always
// computed from the items, never trusted from input.
type Order struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Total     decimal.Decimal `json:"total"`
	Status    Status          `json:"status"`
	Origin    Origin          `json:"origin"`
	Items     []*Item         `json:"items,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Item is one order line. Price is a snapshot of the product's price at the
// moment of purchase and is never recomputed from the live product.
type Item struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"order_id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// RequestedItem is one (product, quantity) pair in a placement request.
type RequestedItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// PlaceOrderRequest is the payload for creating an order. UserID optionally
// names the customer; walk-in sales are attributed to the acting staff.
type PlaceOrderRequest struct {
	Items  []RequestedItem `json:"items"`
	UserID string          `json:"user_id,omitempty"`
}

// UpdateStatusRequest is the payload for changing an order's status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ProductNotFoundError reports a requested product that does not exist.
type ProductNotFoundError struct {
	ProductID uuid.UUID
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.ProductID)
}

// InsufficientStockError reports a requested quantity exceeding availability.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (available: %d)", e.ProductID, e.Available)
}
