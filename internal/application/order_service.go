package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mahabubulhasibshawon/lojamix/internal/domain"
	"github.com/mahabubulhasibshawon/lojamix/internal/ports"
)

type OrderService struct {
	repo  ports.OrderRepositoryPort
	cache ports.CachePort
}

func NewOrderService(repo ports.OrderRepositoryPort, cache ports.CachePort) *OrderService {
	return &OrderService{repo: repo, cache: cache}
}

func userOrdersPrefix(userID int64) string {
	return fmt.Sprintf("orders:%d:", userID)
}

// FindOrder returns the order only to its owner; anyone else gets
// domain.ErrNotFound. Ids that are not UUIDs never reach the store.
func (s *OrderService) FindOrder(ctx context.Context, id string, userID int64) (*domain.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	order, err := s.repo.FindOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID int64) ([]*domain.Order, error) {
	orders, err := cached(ctx, s.cache, userOrdersPrefix(userID)+"list", func() ([]*domain.Order, error) {
		return s.repo.ListOrders(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}
