package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pricewise/pricewise/internal/models"
)

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

const productColumns = `id, name, description, price, stock, discount_kind, discount_value, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (models.Product, error) {
	var (
		p            models.Product
		description  sql.NullString
		discountKind sql.NullString
		discountVal  decimal.NullDecimal
	)
	err := row.Scan(&p.ID, &p.Name, &description, &p.Price, &p.Stock,
		&discountKind, &discountVal, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.Product{}, err
	}
	p.Description = description.String
	if discountKind.Valid {
		p.Discount = &models.Discount{
			Kind:  models.DiscountKind(discountKind.String),
			Value: discountVal.Decimal,
		}
	}
	return p, nil
}

// List returns the whole catalog in id order; filtering and paging happen in
// the catalog package so both sides of the gateway share one implementation.
func (r *ProductRepo) List(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (models.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Product{}, models.ErrNotFound
		}
		return models.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

// RemoveDiscount clears a product's attached discount.
func (r *ProductRepo) RemoveDiscount(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET discount_kind = NULL, discount_value = NULL, updated_at = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("remove discount from product %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}
