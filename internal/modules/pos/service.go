package pos

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukkanpos/backoffice-api/internal/apperr"
	"github.com/dukkanpos/backoffice-api/internal/modules/order"
	"github.com/dukkanpos/backoffice-api/internal/policy"
)

// Service defines POS business logic: payments recorded against orders.
type Service interface {
	// RecordSale records a counter payment for an existing order. The amount
	// is the order total; for cash, the tendered amount must cover it and
	// the change is computed here, never taken from input.
	RecordSale(ctx context.Context, actor policy.Actor, req RecordSaleRequest) (*Sale, error)

	GetSale(ctx context.Context, id string) (*Sale, error)
	GetSaleByOrder(ctx context.Context, orderID string) (*Sale, error)
	ListSales(ctx context.Context) ([]*Sale, error)

	// Refund marks a completed sale as refunded and cancels its order.
	// Stock is not returned; corrections go through the stock adjustment.
	Refund(ctx context.Context, id string) (*Sale, error)
}

type service struct {
	repo   Repository
	orders order.Service
}

// NewService creates a new POS service.
func NewService(repo Repository, orders order.Service) Service {
	return &service{repo: repo, orders: orders}
}

func (s *service) RecordSale(ctx context.Context, actor policy.Actor, req RecordSaleRequest) (*Sale, error) {
	if req.OrderID == "" {
		return nil, apperr.Validation("order_id is required")
	}
	method := PaymentMethod(strings.ToUpper(req.PaymentMethod))
	switch method {
	case PaymentCash, PaymentCard, PaymentMobileMoney:
	default:
		return nil, apperr.Validation("invalid payment_method: %s (allowed: CASH, CARD, MOBILE_MONEY)", req.PaymentMethod)
	}

	o, err := s.orders.GetOrder(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByOrderID(ctx, req.OrderID); err == nil {
		return nil, apperr.Conflict("order %s already has a recorded sale", req.OrderID)
	} else if apperr.KindOf(err) != apperr.KindNotFound {
		return nil, err
	}

	change := decimal.Zero
	tendered := req.Tendered
	if method == PaymentCash {
		if tendered.LessThan(o.Total) {
			return nil, apperr.Validation("tendered amount %s does not cover total %s", tendered, o.Total)
		}
		change = tendered.Sub(o.Total)
	} else {
		tendered = o.Total
	}

	sale := &Sale{
		ID:            uuid.New(),
		OrderID:       o.ID,
		CashierID:     actor.ID,
		Amount:        o.Total,
		PaymentMethod: method,
		Tendered:      tendered,
		Change:        change,
		Status:        SaleCompleted,
	}
	if err := s.repo.Create(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *service) GetSale(ctx context.Context, id string) (*Sale, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetSaleByOrder(ctx context.Context, orderID string) (*Sale, error) {
	return s.repo.GetByOrderID(ctx, orderID)
}

func (s *service) ListSales(ctx context.Context) ([]*Sale, error) {
	return s.repo.List(ctx)
}

func (s *service) Refund(ctx context.Context, id string) (*Sale, error) {
	return s.repo.Refund(ctx, id)
}
