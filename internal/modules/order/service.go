package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dukkanpos/backoffice-api/internal/apperr"
	"github.com/dukkanpos/backoffice-api/internal/policy"
)

// Service defines the order ledger business logic.
type Service interface {
	// Place validates the request and runs the inventory reservation. The
	// order is attributed to the explicit customer when given, otherwise to
	// the acting staff member; in-store sales are recorded as PAID.
	Place(ctx context.Context, actor policy.Actor, req PlaceOrderRequest) (*Order, error)

	GetOrder(ctx context.Context, id string) (*Order, error)
	ListOrders(ctx context.Context) ([]*Order, error)

	// UpdateStatus moves an order to any valid status. Transitions are not
	// restricted beyond enum membership.
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error)
}

type service struct {
	repo      Repository
	txTimeout time.Duration
}

// NewService creates a new order service. txTimeout bounds the reservation
// transaction; a timeout surfaces as an internal error.
func NewService(repo Repository, txTimeout time.Duration) Service {
	if txTimeout <= 0 {
		txTimeout = 5 * time.Second
	}
	return &service{repo: repo, txTimeout: txTimeout}
}

func (s *service) Place(ctx context.Context, actor policy.Actor, req PlaceOrderRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, apperr.Validation("order must contain at least one item")
	}
	// Duplicate product lines are combined so availability is checked
	// against the summed quantity, not each line alone.
	items := make([]ItemRequest, 0, len(req.Items))
	seen := make(map[uuid.UUID]int, len(req.Items))
	for _, ri := range req.Items {
		pid, err := uuid.Parse(ri.ProductID)
		if err != nil {
			return nil, apperr.Validation("invalid product id: %s", ri.ProductID)
		}
		if ri.Quantity < 1 {
			return nil, apperr.Validation("quantity must be at least 1 for product %s", ri.ProductID)
		}
		if i, ok := seen[pid]; ok {
			items[i].Quantity += ri.Quantity
			continue
		}
		seen[pid] = len(items)
		items = append(items, ItemRequest{ProductID: pid, Quantity: ri.Quantity})
	}

	owner := actor.ID
	if req.UserID != "" {
		uid, err := uuid.Parse(req.UserID)
		if err != nil {
			return nil, apperr.Validation("invalid user id: %s", req.UserID)
		}
		owner = uid
	}

	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	o, err := s.repo.PlaceOrder(ctx, owner, OriginInStore, StatusPaid, items)
	if err != nil {
		return nil, translateReservationError(err)
	}
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListOrders(ctx context.Context) ([]*Order, error) {
	return s.repo.List(ctx)
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error) {
	status, err := ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

// translateReservationError maps availability failures to conflicts; anything
// else keeps its classification (rollback details stay opaque to the caller).
func translateReservationError(err error) error {
	var notFound *ProductNotFoundError
	if errors.As(err, &notFound) {
		return apperr.Conflict("product not found: %s", notFound.ProductID)
	}
	var insufficient *InsufficientStockError
	if errors.As(err, &insufficient) {
		return apperr.Conflict("insufficient stock for product %s (available: %d)",
			insufficient.ProductID, insufficient.Available)
	}
	return err
}
