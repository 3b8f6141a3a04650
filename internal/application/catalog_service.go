package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mahabubulhasibshawon/lojamix/internal/domain"
	"github.com/mahabubulhasibshawon/lojamix/internal/ports"
	"github.com/mahabubulhasibshawon/lojamix/internal/slug"
)

const (
	catalogCachePrefix     = "catalog:"
	catalogProductsKey     = "catalog:products"
	catalogCategoriesKey   = "catalog:categories"
	catalogCategoryKeyBase = "catalog:category:"
)

type CatalogService struct {
	repo   ports.CatalogRepositoryPort
	cache  ports.CachePort
	seeded atomic.Bool

	mu        sync.RWMutex
	indexedAt string
	bySlug    map[string]domain.Category
}

func NewCatalogService(repo ports.CatalogRepositoryPort, cache ports.CachePort) *CatalogService {
	return &CatalogService{repo: repo, cache: cache}
}

// EnsureSeeded fills an empty catalog with the demo products.
func (s *CatalogService) EnsureSeeded(ctx context.Context) error {
	if s.seeded.Load() {
		return nil
	}
	inserted, err := s.repo.SeedProducts(ctx, domain.DemoProducts())
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	if inserted {
		slog.InfoContext(ctx, "catalog seeded with demo products")
		invalidate(ctx, s.cache, catalogCachePrefix)
	}
	s.seeded.Store(true)
	return nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return cached(ctx, s.cache, catalogProductsKey, func() ([]*domain.Product, error) {
		return s.repo.ListProducts(ctx)
	})
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return cached(ctx, s.cache, catalogCategoriesKey, func() ([]domain.Category, error) {
		names, err := s.repo.ListCategories(ctx)
		if err != nil {
			return nil, err
		}
		categories := make([]domain.Category, 0, len(names))
		for _, n := range names {
			categories = append(categories, domain.Category{Name: n, Slug: slug.Make(n)})
		}
		return categories, nil
	})
}

// CategoryBySlug resolves a URL slug to a category, comparing normalized
// forms so "acessorios" finds "Acessórios".
func (s *CatalogService) CategoryBySlug(ctx context.Context, raw string) (domain.Category, error) {
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return domain.Category{}, err
	}
	c, ok := s.index(categories)[slug.Make(raw)]
	if !ok {
		return domain.Category{}, domain.ErrNotFound
	}
	return c, nil
}

// ProductsInCategory returns the category matching raw and its products.
func (s *CatalogService) ProductsInCategory(ctx context.Context, raw string) (domain.Category, []*domain.Product, error) {
	c, err := s.CategoryBySlug(ctx, raw)
	if err != nil {
		return domain.Category{}, nil, err
	}
	products, err := cached(ctx, s.cache, catalogCategoryKeyBase+c.Slug, func() ([]*domain.Product, error) {
		return s.repo.ListProductsByCategory(ctx, c.Name)
	})
	if err != nil {
		return domain.Category{}, nil, err
	}
	return c, products, nil
}

// index returns the slug lookup table for categories, rebuilding it only
// when the category list changed since the last call.
func (s *CatalogService) index(categories []domain.Category) map[string]domain.Category {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	key := strings.Join(names, "\x00")

	s.mu.RLock()
	if s.bySlug != nil && s.indexedAt == key {
		idx := s.bySlug
		s.mu.RUnlock()
		return idx
	}
	s.mu.RUnlock()

	idx := make(map[string]domain.Category, len(categories))
	for _, c := range categories {
		sl := slug.Make(c.Name)
		if _, dup := idx[sl]; !dup {
			idx[sl] = domain.Category{Name: c.Name, Slug: sl}
		}
	}

	s.mu.Lock()
	s.bySlug, s.indexedAt = idx, key
	s.mu.Unlock()
	return idx
}
