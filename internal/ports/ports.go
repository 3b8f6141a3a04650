// internal/ports/ports.go
package ports

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=ports

import (
	"context"

	"github.com/mahabubulhasibshawon/lojamix/internal/domain"
)

type UserRepositoryPort interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByID(ctx context.Context, id int64) (*domain.User, error)
}

type CatalogRepositoryPort interface {
	// SeedProducts inserts products only when the catalog is empty and
	// reports whether it did.
	SeedProducts(ctx context.Context, products []*domain.Product) (bool, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	FindProductsByIDs(ctx context.Context, ids []int64) ([]*domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type OrderRepositoryPort interface {
	// CreateOrder inserts order in a transaction and calls beforeCommit
	// before committing. A beforeCommit error rolls the insert back.
	CreateOrder(ctx context.Context, order *domain.Order, beforeCommit func() error) error
	FindOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context, userID int64) ([]*domain.Order, error)
}

type CachePort interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value interface{}) error
	DeleteByPrefix(ctx context.Context, prefix string) error
	Ping(ctx context.Context) error
}

// CartStore is the visitor's session cart for the duration of one request.
type CartStore interface {
	Load() (domain.Cart, error)
	Save(cart domain.Cart) error
	Clear() error
}
