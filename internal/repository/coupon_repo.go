package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/pricewise/pricewise/internal/models"
)

// uniqueViolation is the postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

type CouponRepo struct {
	db *sql.DB
}

func NewCouponRepo(db *sql.DB) *CouponRepo {
	return &CouponRepo{db: db}
}

func (r *CouponRepo) List(ctx context.Context) ([]models.Coupon, error) {
	query := `
		SELECT id, code, kind, value, one_shot, valid_from, valid_until, created_at, updated_at
		FROM coupons
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	defer rows.Close()

	var coupons []models.Coupon
	for rows.Next() {
		var c models.Coupon
		if err := rows.Scan(&c.ID, &c.Code, &c.Kind, &c.Value, &c.OneShot,
			&c.ValidFrom, &c.ValidUntil, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan coupon: %w", err)
		}
		coupons = append(coupons, c)
	}
	return coupons, rows.Err()
}

// GetByCode looks a coupon up by code. Comparison is case-insensitive.
func (r *CouponRepo) GetByCode(ctx context.Context, code string) (models.Coupon, error) {
	query := `
		SELECT id, code, kind, value, one_shot, valid_from, valid_until, created_at, updated_at
		FROM coupons
		WHERE lower(code) = $1
	`
	var c models.Coupon
	err := r.db.QueryRowContext(ctx, query, models.NormalizeCode(code)).Scan(
		&c.ID, &c.Code, &c.Kind, &c.Value, &c.OneShot,
		&c.ValidFrom, &c.ValidUntil, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Coupon{}, models.ErrNotFound
		}
		return models.Coupon{}, fmt.Errorf("get coupon %q: %w", code, err)
	}
	return c, nil
}

// Create inserts a coupon, storing the code in normalized form. A code
// collision surfaces as models.ErrDuplicateCode.
func (r *CouponRepo) Create(ctx context.Context, c models.Coupon) (models.Coupon, error) {
	query := `
		INSERT INTO coupons (code, kind, value, one_shot, valid_from, valid_until, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, code, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		models.NormalizeCode(c.Code), c.Kind, c.Value, c.OneShot, c.ValidFrom, c.ValidUntil,
	).Scan(&c.ID, &c.Code, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return models.Coupon{}, models.ErrDuplicateCode
		}
		return models.Coupon{}, fmt.Errorf("create coupon: %w", err)
	}
	return c, nil
}
