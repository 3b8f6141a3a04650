// internal/adapters/repository/postgres.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/mahabubulhasibshawon/lojamix/internal/domain"
)

// seedLockKey serializes concurrent catalog seeding through a transaction
// scoped advisory lock.
const seedLockKey = 727_001

const uniqueViolation = "23505"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Users

func (r *PostgresRepository) CreateUser(ctx context.Context, username, email, passwordHash string) (*domain.User, error) {
	user := &domain.User{Username: username, Email: email, PasswordHash: passwordHash}
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users (username, email, password_hash) VALUES ($1, $2, $3) RETURNING id",
		username, email, passwordHash,
	).Scan(&user.ID)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return nil, domain.ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("repository: create user: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findUser(ctx, "SELECT id, username, email, password_hash FROM users WHERE email = $1", email)
}

func (r *PostgresRepository) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findUser(ctx, "SELECT id, username, email, password_hash FROM users WHERE id = $1", id)
}

func (r *PostgresRepository) findUser(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("repository: find user: %w", err)
	}
	return user, nil
}

// Catalog

const productColumns = "id, name, price, image, category, description"

func (r *PostgresRepository) SeedProducts(ctx context.Context, products []*domain.Product) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM products)").Scan(&exists); err != nil {
		return false, fmt.Errorf("repository: seed products: %w", err)
	}
	if exists {
		return false, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("repository: seed products: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", seedLockKey); err != nil {
		return false, fmt.Errorf("repository: seed products: %w", err)
	}
	// Another request may have seeded while we waited for the lock.
	if err := tx.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM products)").Scan(&exists); err != nil {
		return false, fmt.Errorf("repository: seed products: %w", err)
	}
	if exists {
		return false, nil
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO products (name, price, image, category, description) VALUES ($1, $2, $3, $4, $5) RETURNING id")
	if err != nil {
		return false, fmt.Errorf("repository: seed products: %w", err)
	}
	defer stmt.Close()

	for _, p := range products {
		if err := stmt.QueryRowContext(ctx, p.Name, p.Price, p.Image, p.Category, p.Description).Scan(&p.ID); err != nil {
			return false, fmt.Errorf("repository: seed product %q: %w", p.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("repository: seed products: %w", err)
	}
	return true, nil
}

func (r *PostgresRepository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return r.queryProducts(ctx, "SELECT "+productColumns+" FROM products ORDER BY id")
}

func (r *PostgresRepository) ListProductsByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return r.queryProducts(ctx, "SELECT "+productColumns+" FROM products WHERE category = $1 ORDER BY id", category)
}

func (r *PostgresRepository) FindProductsByIDs(ctx context.Context, ids []int64) ([]*domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.queryProducts(ctx, "SELECT "+productColumns+" FROM products WHERE id = ANY($1) ORDER BY id", pq.Array(ids))
}

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT category FROM products ORDER BY category")
	if err != nil {
		return nil, fmt.Errorf("repository: list categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("repository: list categories: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *PostgresRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p := &domain.Product{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Image, &p.Category, &p.Description); err != nil {
			return nil, fmt.Errorf("repository: scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Orders

const orderColumns = `id, created_at, total_price, description, status, payment_method,
	city, street, postal_code, user_id`

func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order, beforeCommit func() error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: create order: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = tx.ExecContext(ctx, query,
		order.ID, order.CreatedAt, order.TotalPrice, order.Description, string(order.Status), order.PaymentMethod,
		order.Address.City, order.Address.Street, order.Address.PostalCode, order.UserID,
	)
	if err != nil {
		return fmt.Errorf("repository: create order: %w", err)
	}
	if beforeCommit != nil {
		if err := beforeCommit(); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("repository: commit order: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindOrder(ctx context.Context, id string) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id)
	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("repository: find order: %w", err)
	}
	return o, nil
}

func (r *PostgresRepository) ListOrders(ctx context.Context, userID int64) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE user_id = $1 ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("repository: list orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(s scanner) (*domain.Order, error) {
	o := &domain.Order{}
	var status string
	err := s.Scan(
		&o.ID, &o.CreatedAt, &o.TotalPrice, &o.Description, &status, &o.PaymentMethod,
		&o.Address.City, &o.Address.Street, &o.Address.PostalCode, &o.UserID,
	)
	if err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	o.CreatedAt = o.CreatedAt.UTC()
	return o, nil
}
