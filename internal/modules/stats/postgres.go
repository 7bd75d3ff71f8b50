package stats

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/dukkanpos/backoffice-api/internal/apperr"
)

type postgres struct {
	db *sql.DB
}

// NewPostgresRepository creates a new postgres stats repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgres{db: db}
}

func (p *postgres) Summary(ctx context.Context) (*Summary, error) {
	s := &Summary{RevenueToday: decimal.Zero}

	err := p.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM products),
			(SELECT COALESCE(SUM(stock), 0) FROM products)
	`).Scan(&s.UserCount, &s.ProductCount, &s.TotalStock)
	if err != nil {
		return nil, apperr.FromDB(err, "stats")
	}

	var top sql.NullString
	err = p.db.QueryRowContext(ctx, `
		SELECT c.name
		FROM categories c
		JOIN products p ON p.category_id = c.id
		GROUP BY c.name
		ORDER BY COUNT(*) DESC, c.name ASC
		LIMIT 1
	`).Scan(&top)
	if err != nil && err != sql.ErrNoRows {
		return nil, apperr.FromDB(err, "stats")
	}
	if top.Valid {
		s.TopCategory = top.String
	}

	err = p.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE created_at >= date_trunc('day', now())
		  AND status <> 'CANCELLED'
	`).Scan(&s.OrdersToday, &s.RevenueToday)
	if err != nil {
		return nil, apperr.FromDB(err, "stats")
	}

	return s, nil
}
