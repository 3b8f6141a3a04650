package application

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mahabubulhasibshawon/lojamix/internal/domain"
	"github.com/mahabubulhasibshawon/lojamix/internal/ports"
)

type CartService struct {
	repo ports.CatalogRepositoryPort
}

func NewCartService(repo ports.CatalogRepositoryPort) *CartService {
	return &CartService{repo: repo}
}

// Summarize groups repeated product ids into line items priced from the
// current catalog. Ids the catalog does not know are dropped.
func (s *CartService) Summarize(ctx context.Context, ids []int64) (*domain.CartSummary, error) {
	summary := &domain.CartSummary{Items: []domain.LineItem{}, Total: decimal.Zero}
	if len(ids) == 0 {
		return summary, nil
	}

	counts := make(map[int64]int, len(ids))
	var order []int64
	for _, id := range ids {
		if counts[id] == 0 {
			order = append(order, id)
		}
		counts[id]++
	}

	products, err := s.repo.FindProductsByIDs(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("summarize cart: %w", err)
	}
	byID := make(map[int64]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, id := range order {
		p, ok := byID[id]
		if !ok {
			continue
		}
		qty := counts[id]
		subtotal := p.Price.Mul(decimal.NewFromInt(int64(qty)))
		summary.Items = append(summary.Items, domain.LineItem{Product: p, Quantity: qty, Subtotal: subtotal})
		summary.Total = summary.Total.Add(subtotal)
	}
	return summary, nil
}

// SummarizeCart loads the visitor's cart and summarizes it.
func (s *CartService) SummarizeCart(ctx context.Context, cart ports.CartStore) (*domain.CartSummary, error) {
	c, err := cart.Load()
	if err != nil {
		return nil, err
	}
	return s.Summarize(ctx, c.ProductIDs())
}
