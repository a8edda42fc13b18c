package repository

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pricewise/pricewise/internal/models"
	"github.com/pricewise/pricewise/pkg/db"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())
	conn, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, conn.Ping())
	require.NoError(t, db.RunMigrations(conn, "migrations"))
	return conn
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func insertProduct(t *testing.T, conn *sql.DB, name, price string, stock int) int64 {
	t.Helper()
	var id int64
	err := conn.QueryRow(`
		INSERT INTO products (name, price, stock) VALUES ($1, $2, $3) RETURNING id
	`, name, price, stock).Scan(&id)
	require.NoError(t, err)
	return id
}

func testCoupon(code string) models.Coupon {
	return models.Coupon{
		Code:       code,
		Kind:       models.DiscountPercent,
		Value:      dec("10"),
		ValidFrom:  time.Now().UTC().Add(-24 * time.Hour),
		ValidUntil: time.Now().UTC().AddDate(0, 1, 0),
	}
}

func TestCouponRepo(t *testing.T) {
	conn := setupTestDB(t)
	repo := NewCouponRepo(conn)
	ctx := context.Background()

	created, err := repo.Create(ctx, testCoupon("PROMO10"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "promo10", created.Code, "codes are stored normalized")

	t.Run("duplicate code conflicts case-insensitively", func(t *testing.T) {
		_, err := repo.Create(ctx, testCoupon("promo10"))
		assert.ErrorIs(t, err, models.ErrDuplicateCode)

		_, err = repo.Create(ctx, testCoupon("  PROMO10  "))
		assert.ErrorIs(t, err, models.ErrDuplicateCode)
	})

	t.Run("get by code ignores case", func(t *testing.T) {
		got, err := repo.GetByCode(ctx, "PROMO10")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.True(t, got.Value.Equal(dec("10")))
	})

	t.Run("unknown code is not found", func(t *testing.T) {
		_, err := repo.GetByCode(ctx, "missing")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("list", func(t *testing.T) {
		coupons, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, coupons, 1)
	})
}

func TestProductRepo(t *testing.T) {
	conn := setupTestDB(t)
	repo := NewProductRepo(conn)
	ctx := context.Background()

	id := insertProduct(t, conn, "Pen", "10.00", 5)
	_, err := conn.Exec(`
		UPDATE products SET discount_kind = 'percent', discount_value = 20 WHERE id = $1
	`, id)
	require.NoError(t, err)

	t.Run("get with discount", func(t *testing.T) {
		p, err := repo.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Pen", p.Name)
		assert.True(t, p.Price.Equal(dec("10.00")))
		require.NotNil(t, p.Discount)
		assert.Equal(t, models.DiscountPercent, p.Discount.Kind)
		assert.True(t, p.Discount.Value.Equal(dec("20")))
	})

	t.Run("remove discount", func(t *testing.T) {
		require.NoError(t, repo.RemoveDiscount(ctx, id))

		p, err := repo.Get(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, p.Discount)
	})

	t.Run("remove discount on unknown product", func(t *testing.T) {
		assert.ErrorIs(t, repo.RemoveDiscount(ctx, 9999), models.ErrNotFound)
	})

	t.Run("get unknown product", func(t *testing.T) {
		_, err := repo.Get(ctx, 9999)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("list preserves id order", func(t *testing.T) {
		insertProduct(t, conn, "Notebook", "30.00", 2)
		products, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Less(t, products[0].ID, products[1].ID)
	})
}

func TestOrderRepo(t *testing.T) {
	conn := setupTestDB(t)
	repo := NewOrderRepo(conn)
	ctx := context.Background()

	penID := insertProduct(t, conn, "Pen", "10.00", 5)

	order := models.Order{
		Lines:          []models.CartLine{{ProductID: penID, Quantity: 3, UnitPrice: dec("10.00")}},
		Subtotal:       dec("30.00"),
		DiscountAmount: dec("3.00"),
		Total:          dec("27.00"),
		CouponCode:     "promo10",
	}

	created, err := repo.Create(ctx, order)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	t.Run("stock is decremented", func(t *testing.T) {
		var stock int
		require.NoError(t, conn.QueryRow(`SELECT stock FROM products WHERE id = $1`, penID).Scan(&stock))
		assert.Equal(t, 2, stock)
	})

	t.Run("insufficient stock rejects the whole order", func(t *testing.T) {
		_, err := repo.Create(ctx, models.Order{
			Lines:    []models.CartLine{{ProductID: penID, Quantity: 10, UnitPrice: dec("10.00")}},
			Subtotal: dec("100.00"),
			Total:    dec("100.00"),
		})
		assert.ErrorIs(t, err, models.ErrOutOfStock)

		var stock int
		require.NoError(t, conn.QueryRow(`SELECT stock FROM products WHERE id = $1`, penID).Scan(&stock))
		assert.Equal(t, 2, stock, "failed order must not touch stock")
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := repo.Create(ctx, models.Order{
			Lines: []models.CartLine{{ProductID: 9999, Quantity: 1, UnitPrice: dec("1.00")}},
		})
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("order items are persisted", func(t *testing.T) {
		var count int
		require.NoError(t, conn.QueryRow(
			`SELECT COUNT(*) FROM order_items WHERE order_id = $1`, created.ID,
		).Scan(&count))
		assert.Equal(t, 1, count)
	})
}
