package order

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/dukkanpos/backoffice-api/internal/apperr"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// PlaceOrder reserves stock and records the order in a single transaction.
// The product rows are locked with FOR UPDATE so two concurrent reservations
// cannot both pass the availability check for the same unit of stock.
func (r *postgresRepo) PlaceOrder(ctx context.Context, userID uuid.UUID, origin Origin, status Status, items []ItemRequest) (*Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperr.Internal(err, "begin order transaction")
	}
	defer tx.Rollback()

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT id, price, stock FROM products WHERE id = ANY($1) FOR UPDATE`,
		pq.Array(ids))
	if err != nil {
		return nil, apperr.FromDB(err, "product")
	}
	type productRow struct {
		price decimal.Decimal
		stock int
	}
	loaded := make(map[uuid.UUID]productRow, len(items))
	for rows.Next() {
		var id uuid.UUID
		var p productRow
		if err := rows.Scan(&id, &p.price, &p.stock); err != nil {
			rows.Close()
			return nil, apperr.FromDB(err, "product")
		}
		loaded[id] = p
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, apperr.FromDB(err, "product")
	}

	o := &Order{
		ID:     uuid.New(),
		UserID: userID,
		Total:  decimal.Zero,
		Status: status,
		Origin: origin,
	}
	for _, item := range items {
		p, ok := loaded[item.ProductID]
		if !ok {
			return nil, &ProductNotFoundError{ProductID: item.ProductID}
		}
		if p.stock < item.Quantity {
			return nil, &InsufficientStockError{ProductID: item.ProductID, Available: p.stock}
		}
		o.Total = o.Total.Add(p.price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		o.Items = append(o.Items, &Item{
			ID:        uuid.New(),
			OrderID:   o.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     p.price,
		})
	}

	for _, item := range items {
		if _, err := tx.ExecContext(ctx, `
			UPDATE products SET stock = stock - $1, updated_at=$2 WHERE id=$3`,
			item.Quantity, time.Now(), item.ProductID); err != nil {
			return nil, apperr.FromDB(err, "product")
		}
	}

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO orders (id, user_id, total, status, origin)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at, updated_at`,
		o.ID, o.UserID, o.Total, o.Status, o.Origin).
		Scan(&o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, apperr.FromDB(err, "order")
	}
	for _, item := range o.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, price)
			VALUES ($1,$2,$3,$4,$5)`,
			item.ID, item.OrderID, item.ProductID, item.Quantity, item.Price); err != nil {
			return nil, apperr.FromDB(err, "order item")
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, apperr.Internal(err, "commit order transaction")
	}
	return o, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid order id: %s", id)
	}
	o := &Order{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, user_id, total, status, origin, created_at, updated_at
		FROM orders WHERE id=$1`, uid).
		Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.Origin, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, apperr.FromDB(err, "order")
	}
	o.Items, err = r.listItems(ctx, o.ID)
	return o, err
}

func (r *postgresRepo) List(ctx context.Context) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, total, status, origin, created_at, updated_at
		FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperr.FromDB(err, "order")
	}
	defer rows.Close()
	var orders []*Order
	for rows.Next() {
		o := &Order{}
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.Origin,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, apperr.FromDB(err, "order")
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.FromDB(err, "order")
	}
	for _, o := range orders {
		if o.Items, err = r.listItems(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status Status) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid order id: %s", id)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status=$1, updated_at=$2 WHERE id=$3`,
		status, time.Now(), uid)
	if err != nil {
		return nil, apperr.FromDB(err, "order")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, apperr.Internal(err, "order store error")
	}
	if n == 0 {
		return nil, apperr.NotFound("order not found")
	}
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) listItems(ctx context.Context, orderID uuid.UUID) ([]*Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, quantity, price
		FROM order_items WHERE order_id=$1`, orderID)
	if err != nil {
		return nil, apperr.FromDB(err, "order item")
	}
	defer rows.Close()
	var items []*Item
	for rows.Next() {
		item := &Item{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID,
			&item.Quantity, &item.Price); err != nil {
			return nil, apperr.FromDB(err, "order item")
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
