package pos

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukkanpos/backoffice-api/internal/apperr"
	"github.com/dukkanpos/backoffice-api/internal/modules/order"
	"github.com/dukkanpos/backoffice-api/internal/policy"
)

// fakeRepo emulates the transactional store: a refund flips the sale and
// cancels the order together, or fails leaving both untouched when
// failOrderCancel is set.
type fakeRepo struct {
	store           map[uuid.UUID]*Sale
	orders          *fakeOrders
	failOrderCancel bool
}

func (f *fakeRepo) Create(_ context.Context, s *Sale) error {
	cp := *s
	f.store[s.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Sale, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid sale id: %s", id)
	}
	s, ok := f.store[uid]
	if !ok {
		return nil, apperr.NotFound("sale not found")
	}
	cp := *s
	return &cp, nil
}

func (f *fakeRepo) GetByOrderID(_ context.Context, orderID string) (*Sale, error) {
	for _, s := range f.store {
		if s.OrderID.String() == orderID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("sale not found")
}

func (f *fakeRepo) List(_ context.Context) ([]*Sale, error) {
	var sales []*Sale
	for _, s := range f.store {
		cp := *s
		sales = append(sales, &cp)
	}
	return sales, nil
}

func (f *fakeRepo) Refund(_ context.Context, id string) (*Sale, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid sale id: %s", id)
	}
	s, ok := f.store[uid]
	if !ok {
		return nil, apperr.NotFound("sale not found")
	}
	if s.Status != SaleCompleted {
		return nil, apperr.Conflict("only COMPLETED sales can be refunded (current: %s)", s.Status)
	}
	if f.failOrderCancel {
		return nil, apperr.Internal(errors.New("order row gone"), "order store error")
	}
	s.Status = SaleRefunded
	if o, ok := f.orders.orders[s.OrderID]; ok {
		o.Status = order.StatusCancelled
	}
	cp := *s
	return &cp, nil
}

// fakeOrders serves a fixed set of orders and records status updates.
type fakeOrders struct {
	orders map[uuid.UUID]*order.Order
}

func (f *fakeOrders) Place(context.Context, policy.Actor, order.PlaceOrderRequest) (*order.Order, error) {
	panic("not used")
}

func (f *fakeOrders) GetOrder(_ context.Context, id string) (*order.Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid order id: %s", id)
	}
	o, ok := f.orders[uid]
	if !ok {
		return nil, apperr.NotFound("order not found")
	}
	return o, nil
}

func (f *fakeOrders) ListOrders(context.Context) ([]*order.Order, error) {
	panic("not used")
}

func (f *fakeOrders) UpdateStatus(_ context.Context, id string, req order.UpdateStatusRequest) (*order.Order, error) {
	o, err := f.GetOrder(context.Background(), id)
	if err != nil {
		return nil, err
	}
	o.Status = order.Status(req.Status)
	return o, nil
}

func setup(t *testing.T, total string) (Service, *fakeRepo, uuid.UUID) {
	t.Helper()
	o := &order.Order{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Total:  decimal.RequireFromString(total),
		Status: order.StatusPaid,
		Origin: order.OriginInStore,
	}
	orders := &fakeOrders{orders: map[uuid.UUID]*order.Order{o.ID: o}}
	repo := &fakeRepo{store: make(map[uuid.UUID]*Sale), orders: orders}
	return NewService(repo, orders), repo, o.ID
}

func cashier() policy.Actor {
	return policy.Actor{ID: uuid.New(), Role: policy.RoleStaff}
}

func TestRecordSale(t *testing.T) {
	ctx := context.Background()

	t.Run("cash sale computes change", func(t *testing.T) {
		svc, _, orderID := setup(t, "17.50")
		sale, err := svc.RecordSale(ctx, cashier(), RecordSaleRequest{
			OrderID:       orderID.String(),
			PaymentMethod: "cash",
			Tendered:      decimal.RequireFromString("20.00"),
		})
		require.NoError(t, err)
		assert.True(t, sale.Amount.Equal(decimal.RequireFromString("17.50")))
		assert.True(t, sale.Change.Equal(decimal.RequireFromString("2.50")))
		assert.Equal(t, SaleCompleted, sale.Status)
	})

	t.Run("cash short of the total rejected", func(t *testing.T) {
		svc, _, orderID := setup(t, "17.50")
		_, err := svc.RecordSale(ctx, cashier(), RecordSaleRequest{
			OrderID:       orderID.String(),
			PaymentMethod: "CASH",
			Tendered:      decimal.RequireFromString("10.00"),
		})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("card sale needs no tendered amount", func(t *testing.T) {
		svc, _, orderID := setup(t, "9.99")
		sale, err := svc.RecordSale(ctx, cashier(), RecordSaleRequest{
			OrderID:       orderID.String(),
			PaymentMethod: "CARD",
		})
		require.NoError(t, err)
		assert.True(t, sale.Tendered.Equal(sale.Amount))
		assert.True(t, sale.Change.IsZero())
	})

	t.Run("unknown payment method rejected", func(t *testing.T) {
		svc, _, orderID := setup(t, "5.00")
		_, err := svc.RecordSale(ctx, cashier(), RecordSaleRequest{
			OrderID:       orderID.String(),
			PaymentMethod: "BARTER",
		})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("duplicate sale for an order conflicts", func(t *testing.T) {
		svc, _, orderID := setup(t, "5.00")
		_, err := svc.RecordSale(ctx, cashier(), RecordSaleRequest{
			OrderID: orderID.String(), PaymentMethod: "CARD",
		})
		require.NoError(t, err)
		_, err = svc.RecordSale(ctx, cashier(), RecordSaleRequest{
			OrderID: orderID.String(), PaymentMethod: "CARD",
		})
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	})

	t.Run("unknown order not found", func(t *testing.T) {
		svc, _, _ := setup(t, "5.00")
		_, err := svc.RecordSale(ctx, cashier(), RecordSaleRequest{
			OrderID: uuid.NewString(), PaymentMethod: "CARD",
		})
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestRefund(t *testing.T) {
	ctx := context.Background()
	svc, repo, orderID := setup(t, "12.00")
	sale, err := svc.RecordSale(ctx, cashier(), RecordSaleRequest{
		OrderID: orderID.String(), PaymentMethod: "CARD",
	})
	require.NoError(t, err)

	t.Run("failed order cancellation changes nothing", func(t *testing.T) {
		repo.failOrderCancel = true
		defer func() { repo.failOrderCancel = false }()

		_, err := svc.Refund(ctx, sale.ID.String())
		require.Error(t, err)
		got, err := svc.GetSale(ctx, sale.ID.String())
		require.NoError(t, err)
		assert.Equal(t, SaleCompleted, got.Status, "sale untouched")
		assert.Equal(t, order.StatusPaid, repo.orders.orders[orderID].Status, "order untouched")
	})

	t.Run("refund cancels the order with the sale", func(t *testing.T) {
		refunded, err := svc.Refund(ctx, sale.ID.String())
		require.NoError(t, err)
		assert.Equal(t, SaleRefunded, refunded.Status)
		assert.Equal(t, order.StatusCancelled, repo.orders.orders[orderID].Status)
	})

	t.Run("second refund conflicts", func(t *testing.T) {
		_, err := svc.Refund(ctx, sale.ID.String())
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	})
}
