package order

import (
	"context"

	"github.com/google/uuid"
)

// ItemRequest is a validated (product, quantity) pair handed to the store.
type ItemRequest struct {
	ProductID uuid.UUID
	Quantity  int
}

// Repository defines data access for the order ledger.
type Repository interface {
	// PlaceOrder runs the inventory reservation as one atomic transaction:
	// it locks the referenced product rows, validates availability, snapshots
	// current prices into the items, decrements stock and inserts the order
	// with its items. On any failure nothing is visible. Availability
	// failures are reported as *ProductNotFoundError / *InsufficientStockError.
	PlaceOrder(ctx context.Context, userID uuid.UUID, origin Origin, status Status, items []ItemRequest) (*Order, error)

	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, error)
}
