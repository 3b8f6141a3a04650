package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahabubulhasibshawon/lojamix/internal/domain"
)

// setupTestRepository connects to the database named by LOJAMIX_TEST_DSN,
// e.g. "host=localhost port=5432 user=postgres password=pass dbname=lojamix_test sslmode=disable".
func setupTestRepository(t *testing.T) *PostgresRepository {
	t.Helper()
	dsn := os.Getenv("LOJAMIX_TEST_DSN")
	if dsn == "" {
		t.Skip("LOJAMIX_TEST_DSN not set")
	}
	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Ping())

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db))
	_, err = db.ExecContext(ctx, "TRUNCATE orders, products, users RESTART IDENTITY CASCADE")
	require.NoError(t, err)
	return NewPostgresRepository(db)
}

func TestPostgresRepository_Users(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()
	email := fmt.Sprintf("ana%d@example.com", time.Now().UnixNano())

	user, err := repo.CreateUser(ctx, "ana", email, "hash")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	_, err = repo.CreateUser(ctx, "other", email, "hash2")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	found, err := repo.FindUserByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "hash", found.PasswordHash)

	byID, err := repo.FindUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, email, byID.Email)

	_, err = repo.FindUserByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgresRepository_Catalog(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	inserted, err := repo.SeedProducts(ctx, domain.DemoProducts())
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.SeedProducts(ctx, domain.DemoProducts())
	require.NoError(t, err)
	assert.False(t, inserted, "second seed must be a no-op")

	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 6)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("89.90")))

	categories, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 6)
	assert.Contains(t, categories, "Acessórios")

	acc, err := repo.ListProductsByCategory(ctx, "Acessórios")
	require.NoError(t, err)
	require.Len(t, acc, 1)
	assert.Equal(t, "Boné Minimalist", acc[0].Name)

	found, err := repo.FindProductsByIDs(ctx, []int64{products[5].ID, products[0].ID, 9999})
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestPostgresRepository_Orders(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	user, err := repo.CreateUser(ctx, "ana", "ana@example.com", "hash")
	require.NoError(t, err)

	order := &domain.Order{
		ID:            uuid.NewString(),
		CreatedAt:     time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
		TotalPrice:    decimal.RequireFromString("478.80"),
		Description:   "2x Camiseta Oversized Thunder, 1x Tênis Urban White",
		Status:        domain.OrderStatusPaid,
		PaymentMethod: "Pix",
		Address:       domain.Address{City: "São Paulo", Street: "Rua Augusta, 1500", PostalCode: "01304-001"},
		UserID:        user.ID,
	}

	t.Run("beforeCommit failure rolls back", func(t *testing.T) {
		rolledBack := *order
		rolledBack.ID = uuid.NewString()
		hookErr := errors.New("cart clear failed")
		err := repo.CreateOrder(ctx, &rolledBack, func() error { return hookErr })
		assert.ErrorIs(t, err, hookErr)

		_, err = repo.FindOrder(ctx, rolledBack.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("commit", func(t *testing.T) {
		called := false
		require.NoError(t, repo.CreateOrder(ctx, order, func() error { called = true; return nil }))
		assert.True(t, called)

		got, err := repo.FindOrder(ctx, order.ID)
		require.NoError(t, err)
		assert.True(t, got.TotalPrice.Equal(order.TotalPrice))
		assert.Equal(t, order.Address, got.Address)
		assert.Equal(t, domain.OrderStatusPaid, got.Status)
		assert.True(t, got.CreatedAt.Equal(order.CreatedAt))

		list, err := repo.ListOrders(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, order.ID, list[0].ID)
	})
}
