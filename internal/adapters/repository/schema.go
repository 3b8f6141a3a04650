package repository

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username VARCHAR(100) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		price NUMERIC(12, 2) NOT NULL,
		image VARCHAR(200) NOT NULL DEFAULT '',
		category VARCHAR(50) NOT NULL,
		description VARCHAR(200) NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		total_price NUMERIC(12, 2) NOT NULL,
		description TEXT NOT NULL,
		status VARCHAR(32) NOT NULL CHECK (status IN ('Awaiting Payment', 'Paid')),
		payment_method VARCHAR(50) NOT NULL,
		city VARCHAR(100) NOT NULL,
		street VARCHAR(200) NOT NULL,
		postal_code VARCHAR(20) NOT NULL,
		user_id BIGINT NOT NULL REFERENCES users(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders (user_id, created_at DESC)`,
}

// Migrate creates the tables if they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, q := range schema {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("repository: migrate: %w", err)
		}
	}
	return nil
}
