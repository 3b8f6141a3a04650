package application

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/mahabubulhasibshawon/lojamix/internal/domain"
	"github.com/mahabubulhasibshawon/lojamix/internal/ports"
)

func TestOrderService_FindOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := ports.NewMockOrderRepositoryPort(ctrl)
	svc := NewOrderService(mockRepo, newMemCache())

	const orderID = "6f0e3c4a-8d1b-4c2e-9f7a-1b2c3d4e5f60"
	owned := &domain.Order{ID: orderID, UserID: 1, TotalPrice: price("89.90"), Status: domain.OrderStatusPaid}

	tests := []struct {
		name      string
		id        string
		userID    int64
		mockSetup func()
		wantErr   error
	}{
		{
			name:   "Owner sees the order",
			id:     orderID,
			userID: 1,
			mockSetup: func() {
				mockRepo.EXPECT().FindOrder(gomock.Any(), orderID).Return(owned, nil)
			},
		},
		{
			name:   "Someone else's order is not found",
			id:     orderID,
			userID: 2,
			mockSetup: func() {
				mockRepo.EXPECT().FindOrder(gomock.Any(), orderID).Return(owned, nil)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name:   "Unknown id",
			id:     "0b8d7c3e-2f4a-4b6c-8d9e-0a1b2c3d4e5f",
			userID: 1,
			mockSetup: func() {
				mockRepo.EXPECT().FindOrder(gomock.Any(), "0b8d7c3e-2f4a-4b6c-8d9e-0a1b2c3d4e5f").Return(nil, domain.ErrNotFound)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name:      "Malformed id is not found without a store query",
			id:        "abc",
			userID:    1,
			mockSetup: func() {},
			wantErr:   domain.ErrNotFound,
		},
		{
			name:      "Blank id",
			id:        "",
			userID:    1,
			mockSetup: func() {},
			wantErr:   domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			order, err := svc.FindOrder(context.Background(), tt.id, tt.userID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("FindOrder() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil || order.ID != tt.id {
				t.Errorf("FindOrder() = %v, %v", order, err)
			}
		})
	}
}

func TestOrderService_ListOrders(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := ports.NewMockOrderRepositoryPort(ctrl)
	cache := newMemCache()
	svc := NewOrderService(mockRepo, cache)

	orders := []*domain.Order{
		{
			ID:         "b2",
			CreatedAt:  time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
			TotalPrice: price("478.80"),
			Status:     domain.OrderStatusPaid,
			UserID:     1,
		},
	}
	cacheBytes, _ := json.Marshal(orders)

	tests := []struct {
		name      string
		mockSetup func()
		wantErr   bool
	}{
		{
			name: "Cache hit",
			mockSetup: func() {
				cache.entries["orders:1:list"] = cacheBytes
			},
		},
		{
			name: "Cache miss, successful DB query",
			mockSetup: func() {
				delete(cache.entries, "orders:1:list")
				mockRepo.EXPECT().ListOrders(gomock.Any(), int64(1)).Return(orders, nil)
			},
		},
		{
			name: "Repository error",
			mockSetup: func() {
				delete(cache.entries, "orders:1:list")
				mockRepo.EXPECT().ListOrders(gomock.Any(), int64(1)).Return(nil, errors.New("db error"))
			},
			wantErr: true,
		},
		{
			name: "Cache set error",
			mockSetup: func() {
				cache.err = errors.New("cache set error")
				mockRepo.EXPECT().ListOrders(gomock.Any(), int64(1)).Return(orders, nil)
			},
			wantErr: false, // Cache error doesn't fail the operation
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := svc.ListOrders(context.Background(), 1)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ListOrders() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ListOrders() unexpected error: %v", err)
			}
			if len(result) != 1 || result[0].ID != "b2" || !result[0].TotalPrice.Equal(price("478.80")) {
				t.Errorf("ListOrders() result = %v, want %v", result, orders)
			}
		})
	}
}
