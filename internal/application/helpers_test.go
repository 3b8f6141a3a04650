package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mahabubulhasibshawon/lojamix/internal/domain"
)

// memCache is a CachePort kept in a map. A non-nil err makes every call fail.
type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	err     error
	deleted []string
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}}
}

func (m *memCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	v, ok := m.entries[key]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return v, nil
}

func (m *memCache) Set(ctx context.Context, key string, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = data
	return nil
}

func (m *memCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, prefix)
	if m.err != nil {
		return m.err
	}
	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			delete(m.entries, k)
		}
	}
	return nil
}

func (m *memCache) Ping(ctx context.Context) error {
	return m.err
}

// memCart is a CartStore over a plain value.
type memCart struct {
	cart     domain.Cart
	loadErr  error
	clearErr error
	cleared  int
	saved    int
}

func (c *memCart) Load() (domain.Cart, error) {
	if c.loadErr != nil {
		return domain.Cart{}, c.loadErr
	}
	return domain.Cart{Lines: append([]domain.CartLine(nil), c.cart.Lines...)}, nil
}

func (c *memCart) Save(cart domain.Cart) error {
	c.saved++
	c.cart = cart
	return nil
}

func (c *memCart) Clear() error {
	if c.clearErr != nil {
		return c.clearErr
	}
	c.cleared++
	c.cart = domain.Cart{}
	return nil
}

func cartOf(ids ...int64) *memCart {
	c := &memCart{}
	for _, id := range ids {
		c.cart.Add(id)
	}
	return c
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var (
	camiseta = &domain.Product{ID: 1, Name: "Camiseta Oversized Thunder", Price: price("89.90"), Category: "Streetwear"}
	bermuda  = &domain.Product{ID: 2, Name: "Bermuda Sarja Side Stripe", Price: price("119.90"), Category: "Casual"}
	tenis    = &domain.Product{ID: 3, Name: "Tênis Urban White", Price: price("299.00"), Category: "Calçados"}
)
