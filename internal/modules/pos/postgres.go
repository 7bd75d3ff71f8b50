package pos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/dukkanpos/backoffice-api/internal/apperr"
	"github.com/dukkanpos/backoffice-api/internal/modules/order"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, s *Sale) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pos_sales (id, order_id, cashier_id, amount, payment_method, tendered, change, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		s.ID, s.OrderID, s.CashierID, s.Amount, s.PaymentMethod,
		s.Tendered, s.Change, s.Status)
	return apperr.FromDB(err, "sale")
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Sale, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid sale id: %s", id)
	}
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT id, order_id, cashier_id, amount, payment_method, tendered, change, status, created_at, updated_at
		FROM pos_sales WHERE id=$1`, uid))
}

func (r *postgresRepo) GetByOrderID(ctx context.Context, orderID string) (*Sale, error) {
	uid, err := uuid.Parse(orderID)
	if err != nil {
		return nil, apperr.Validation("invalid order id: %s", orderID)
	}
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT id, order_id, cashier_id, amount, payment_method, tendered, change, status, created_at, updated_at
		FROM pos_sales WHERE order_id=$1`, uid))
}

func (r *postgresRepo) List(ctx context.Context) ([]*Sale, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, cashier_id, amount, payment_method, tendered, change, status, created_at, updated_at
		FROM pos_sales ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperr.FromDB(err, "sale")
	}
	defer rows.Close()
	var sales []*Sale
	for rows.Next() {
		s := &Sale{}
		if err := rows.Scan(&s.ID, &s.OrderID, &s.CashierID, &s.Amount,
			&s.PaymentMethod, &s.Tendered, &s.Change, &s.Status,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, apperr.FromDB(err, "sale")
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func (r *postgresRepo) Refund(ctx context.Context, id string) (*Sale, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid sale id: %s", id)
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperr.Internal(err, "begin refund transaction")
	}
	defer tx.Rollback()

	s, err := r.scan(tx.QueryRowContext(ctx, `
		SELECT id, order_id, cashier_id, amount, payment_method, tendered, change, status, created_at, updated_at
		FROM pos_sales WHERE id=$1 FOR UPDATE`, uid))
	if err != nil {
		return nil, err
	}
	if s.Status != SaleCompleted {
		return nil, apperr.Conflict("only COMPLETED sales can be refunded (current: %s)", s.Status)
	}

	now := time.Now()
	if _, err := tx.ExecContext(ctx,
		`UPDATE pos_sales SET status=$1, updated_at=$2 WHERE id=$3`,
		SaleRefunded, now, uid); err != nil {
		return nil, apperr.FromDB(err, "sale")
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE orders SET status=$1, updated_at=$2 WHERE id=$3`,
		order.StatusCancelled, now, s.OrderID); err != nil {
		return nil, apperr.FromDB(err, "order")
	}

	if err := tx.Commit(); err != nil {
		return nil, apperr.Internal(err, "commit refund transaction")
	}
	s.Status = SaleRefunded
	s.UpdatedAt = now
	return s, nil
}

func (r *postgresRepo) scan(row *sql.Row) (*Sale, error) {
	s := &Sale{}
	err := row.Scan(&s.ID, &s.OrderID, &s.CashierID, &s.Amount,
		&s.PaymentMethod, &s.Tendered, &s.Change, &s.Status,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, apperr.FromDB(err, "sale")
	}
	return s, nil
}
