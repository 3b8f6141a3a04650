package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mahabubulhasibshawon/lojamix/internal/domain"
	"github.com/mahabubulhasibshawon/lojamix/internal/ports"
)

type CheckoutInput struct {
	City          string
	Street        string
	PostalCode    string
	PaymentMethod string
}

func (in CheckoutInput) trimmed() CheckoutInput {
	return CheckoutInput{
		City:          strings.TrimSpace(in.City),
		Street:        strings.TrimSpace(in.Street),
		PostalCode:    strings.TrimSpace(in.PostalCode),
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
	}
}

func (in CheckoutInput) complete() bool {
	return in.City != "" && in.Street != "" && in.PostalCode != "" && in.PaymentMethod != ""
}

type CheckoutService struct {
	carts  *CartService
	orders ports.OrderRepositoryPort
	cache  ports.CachePort
	now    func() time.Time
	newID  func() string
}

func NewCheckoutService(carts *CartService, orders ports.OrderRepositoryPort, cache ports.CachePort) *CheckoutService {
	return &CheckoutService{
		carts:  carts,
		orders: orders,
		cache:  cache,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// Pending summarizes the cart about to be checked out. It fails with
// domain.ErrEmptyCart when there is nothing to buy.
func (s *CheckoutService) Pending(ctx context.Context, cart ports.CartStore) (*domain.CartSummary, error) {
	c, err := cart.Load()
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	return s.carts.Summarize(ctx, c.ProductIDs())
}

// Checkout turns the visitor's cart into a paid order for userID.
//
// Line items and the total are recomputed from the catalog at this moment.
// The order insert commits only if the cart was cleared; if anything fails
// the cart is put back and no order exists.
func (s *CheckoutService) Checkout(ctx context.Context, userID int64, cart ports.CartStore, in CheckoutInput) (*domain.Order, error) {
	current, err := cart.Load()
	if err != nil {
		return nil, err
	}
	if current.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	in = in.trimmed()
	if !in.complete() {
		return nil, domain.ErrMissingFields
	}

	summary, err := s.carts.Summarize(ctx, current.ProductIDs())
	if err != nil {
		return nil, err
	}
	if len(summary.Items) == 0 {
		// Nothing in the cart exists any more.
		if err := cart.Clear(); err != nil {
			return nil, err
		}
		return nil, domain.ErrEmptyCart
	}

	// TODO: gate OrderStatusPaid behind a payment confirmation step once a gateway is integrated.
	order := &domain.Order{
		ID:            s.newID(),
		CreatedAt:     s.now(),
		TotalPrice:    summary.Total,
		Description:   summary.Description(),
		Status:        domain.OrderStatusPaid,
		PaymentMethod: in.PaymentMethod,
		Address: domain.Address{
			City:       in.City,
			Street:     in.Street,
			PostalCode: in.PostalCode,
		},
		UserID: userID,
	}

	if err := s.orders.CreateOrder(ctx, order, cart.Clear); err != nil {
		if rerr := cart.Save(current); rerr != nil {
			err = errors.Join(err, fmt.Errorf("restore cart: %w", rerr))
		}
		return nil, fmt.Errorf("checkout: %w", err)
	}

	invalidate(ctx, s.cache, userOrdersPrefix(userID))
	slog.InfoContext(ctx, "order placed",
		"order_id", order.ID,
		"user_id", userID,
		"total", order.TotalPrice.StringFixed(2),
		"items", len(summary.Items),
	)
	return order, nil
}
