package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/dukkanpos/backoffice-api/internal/apperr"
)

// ---- Category ----

type categoryPostgres struct{ db *sql.DB }

func NewCategoryPostgresRepository(db *sql.DB) CategoryRepository { return &categoryPostgres{db: db} }

func (r *categoryPostgres) Create(ctx context.Context, c *Category) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name) VALUES ($1, $2)`, c.ID, c.Name)
	return apperr.FromDB(err, "category")
}

func (r *categoryPostgres) GetByID(ctx context.Context, id string) (*Category, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid category id: %s", id)
	}
	c := &Category{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at FROM categories WHERE id=$1`, uid).
		Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, apperr.FromDB(err, "category")
	}
	return c, nil
}

func (r *categoryPostgres) List(ctx context.Context) ([]*Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, apperr.FromDB(err, "category")
	}
	defer rows.Close()
	var categories []*Category
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, apperr.FromDB(err, "category")
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *categoryPostgres) Update(ctx context.Context, c *Category) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name=$1, updated_at=$2 WHERE id=$3`,
		c.Name, time.Now(), c.ID)
	if err != nil {
		return apperr.FromDB(err, "category")
	}
	return noneUpdated(res, "category")
}

func (r *categoryPostgres) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return apperr.Validation("invalid category id: %s", id)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id=$1`, uid)
	if err != nil {
		// Foreign-key violation: products still reference this category.
		return apperr.FromDB(err, "category")
	}
	return noneUpdated(res, "category")
}

// ---- Product ----

type productPostgres struct{ db *sql.DB }

func NewProductPostgresRepository(db *sql.DB) ProductRepository { return &productPostgres{db: db} }

const productColumns = `p.id, p.name, p.description, p.price, p.stock, p.category_id,
       p.images, p.barcode, p.created_at, p.updated_at,
       c.id, c.name, c.created_at, c.updated_at`

func (r *productPostgres) Create(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, name, description, price, stock, category_id, images, barcode)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.Name, p.Description, p.Price, p.Stock, p.CategoryID,
		pq.Array(p.Images), nullableString(p.Barcode))
	return apperr.FromDB(err, "product")
}

func (r *productPostgres) GetByID(ctx context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid product id: %s", id)
	}
	return scanProduct(r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products p LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id=$1`, uid).Scan)
}

func (r *productPostgres) GetByBarcode(ctx context.Context, barcode string) (*Product, error) {
	return scanProduct(r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products p LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.barcode=$1`, barcode).Scan)
}

func (r *productPostgres) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	query := `SELECT ` + productColumns + `
	          FROM products p LEFT JOIN categories c ON c.id = p.category_id WHERE 1=1`
	args := []interface{}{}
	n := 1
	if filter.CategoryID != "" {
		uid, err := uuid.Parse(filter.CategoryID)
		if err != nil {
			return nil, apperr.Validation("invalid category id: %s", filter.CategoryID)
		}
		query += fmt.Sprintf(` AND p.category_id=$%d`, n)
		args = append(args, uid)
		n++
	}
	if filter.Query != "" {
		query += fmt.Sprintf(` AND (p.name ILIKE $%d OR p.description ILIKE $%d)`, n, n)
		args = append(args, "%"+filter.Query+"%")
		n++
	}
	query += ` ORDER BY p.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.FromDB(err, "product")
	}
	defer rows.Close()
	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productPostgres) Update(ctx context.Context, p *Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name=$1, description=$2, price=$3, category_id=$4, images=$5, barcode=$6, updated_at=$7
		WHERE id=$8`,
		p.Name, p.Description, p.Price, p.CategoryID,
		pq.Array(p.Images), nullableString(p.Barcode), time.Now(), p.ID)
	if err != nil {
		return apperr.FromDB(err, "product")
	}
	return noneUpdated(res, "product")
}

// Delete removes the product's historical order items first, then the product,
// in one transaction. This destroys order history for the product; the
// behavior is inherited from the source system deliberately.
func (r *productPostgres) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return apperr.Validation("invalid product id: %s", id)
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Internal(err, "begin delete product")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE product_id=$1`, uid); err != nil {
		return apperr.FromDB(err, "product")
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id=$1`, uid)
	if err != nil {
		return apperr.FromDB(err, "product")
	}
	if err := noneUpdated(res, "product"); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return apperr.Internal(err, "commit delete product")
	}
	return nil
}

// AdjustStock locks the product row, checks the result and applies the delta
// in one transaction, so no transiently negative stock is ever visible.
func (r *productPostgres) AdjustStock(ctx context.Context, id string, delta int) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid product id: %s", id)
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperr.Internal(err, "begin stock adjustment")
	}
	defer tx.Rollback()

	var stock int
	err = tx.QueryRowContext(ctx,
		`SELECT stock FROM products WHERE id=$1 FOR UPDATE`, uid).Scan(&stock)
	if err != nil {
		return nil, apperr.FromDB(err, "product")
	}
	if stock+delta < 0 {
		return nil, apperr.Validation("stock cannot go below zero (current: %d, adjustment: %d)", stock, delta)
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE products SET stock = stock + $1, updated_at=$2 WHERE id=$3`,
		delta, time.Now(), uid)
	if err != nil {
		return nil, apperr.FromDB(err, "product")
	}
	if err := tx.Commit(); err != nil {
		return nil, apperr.Internal(err, "commit stock adjustment")
	}
	return r.GetByID(ctx, id)
}

// ---- helpers ----

func scanProduct(scan func(...interface{}) error) (*Product, error) {
	p := &Product{}
	var categoryID sql.NullString
	var barcode sql.NullString
	var catID, catName sql.NullString
	var catCreated, catUpdated sql.NullTime
	err := scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &categoryID,
		pq.Array(&p.Images), &barcode, &p.CreatedAt, &p.UpdatedAt,
		&catID, &catName, &catCreated, &catUpdated)
	if err != nil {
		return nil, apperr.FromDB(err, "product")
	}
	if barcode.Valid {
		p.Barcode = barcode.String
	}
	if categoryID.Valid {
		uid, err := uuid.Parse(categoryID.String)
		if err != nil {
			return nil, apperr.Internal(errors.Wrap(err, "malformed category id"), "product store error")
		}
		p.CategoryID = &uid
		if catID.Valid {
			p.Category = &Category{
				ID:        uid,
				Name:      catName.String,
				CreatedAt: catCreated.Time,
				UpdatedAt: catUpdated.Time,
			}
		}
	}
	return p, nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func noneUpdated(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Internal(err, entity+" store error")
	}
	if n == 0 {
		return apperr.NotFound("%s not found", entity)
	}
	return nil
}
