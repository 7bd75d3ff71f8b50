package pos

import "context"

// Repository defines data access for POS sales.
type Repository interface {
	Create(ctx context.Context, s *Sale) error
	GetByID(ctx context.Context, id string) (*Sale, error)
	GetByOrderID(ctx context.Context, orderID string) (*Sale, error)
	List(ctx context.Context) ([]*Sale, error)

	// Refund flips a COMPLETED sale to REFUNDED and cancels its order in
	// the same transaction; on any failure neither row changes.
	Refund(ctx context.Context, id string) (*Sale, error)
}
