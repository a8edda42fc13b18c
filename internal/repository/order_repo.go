package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pricewise/pricewise/internal/models"
)

type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create persists an order and decrements stock for each line in a single
// transaction. Stock rows are locked so concurrent orders cannot both take
// the last unit; an insufficient line fails the whole order with
// models.ErrOutOfStock.
func (r *OrderRepo) Create(ctx context.Context, order models.Order) (models.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Order{}, fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for _, line := range order.Lines {
		var stock int
		err := tx.QueryRowContext(ctx,
			`SELECT stock FROM products WHERE id = $1 FOR UPDATE`, line.ProductID,
		).Scan(&stock)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.Order{}, fmt.Errorf("product %d: %w", line.ProductID, models.ErrNotFound)
			}
			return models.Order{}, fmt.Errorf("lock stock for product %d: %w", line.ProductID, err)
		}
		if stock < line.Quantity {
			return models.Order{}, fmt.Errorf("product %d: %w", line.ProductID, models.ErrOutOfStock)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE products SET stock = stock - $2, updated_at = NOW() WHERE id = $1`,
			line.ProductID, line.Quantity,
		); err != nil {
			return models.Order{}, fmt.Errorf("decrement stock for product %d: %w", line.ProductID, err)
		}
	}

	order.ID = uuid.NewString()
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (id, subtotal, discount_amount, total, coupon_code, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NOW())
		RETURNING created_at
	`, order.ID, order.Subtotal, order.DiscountAmount, order.Total, order.CouponCode,
	).Scan(&order.CreatedAt)
	if err != nil {
		return models.Order{}, fmt.Errorf("insert order: %w", err)
	}

	for _, line := range order.Lines {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)
		`, order.ID, line.ProductID, line.Quantity, line.UnitPrice); err != nil {
			return models.Order{}, fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Order{}, fmt.Errorf("commit order: %w", err)
	}
	committed = true
	return order, nil
}
