package application

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/mahabubulhasibshawon/lojamix/internal/domain"
	"github.com/mahabubulhasibshawon/lojamix/internal/ports"
)

func TestCartService_Summarize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := ports.NewMockCatalogRepositoryPort(ctrl)
	svc := NewCartService(mockRepo)

	type line struct {
		id       int64
		qty      int
		subtotal string
	}
	tests := []struct {
		name      string
		ids       []int64
		mockSetup func()
		want      []line
		total     string
		wantErr   bool
	}{
		{
			name: "Groups repeated ids",
			ids:  []int64{1, 1, 3},
			mockSetup: func() {
				mockRepo.EXPECT().FindProductsByIDs(gomock.Any(), []int64{1, 3}).Return([]*domain.Product{tenis, camiseta}, nil)
			},
			want:  []line{{1, 2, "179.80"}, {3, 1, "299.00"}},
			total: "478.80",
		},
		{
			name: "Unknown ids are dropped",
			ids:  []int64{42, 2, 42, 2, 2},
			mockSetup: func() {
				mockRepo.EXPECT().FindProductsByIDs(gomock.Any(), []int64{42, 2}).Return([]*domain.Product{bermuda}, nil)
			},
			want:  []line{{2, 3, "359.70"}},
			total: "359.70",
		},
		{
			name:      "Empty input never hits the store",
			ids:       nil,
			mockSetup: func() {},
			want:      nil,
			total:     "0",
		},
		{
			name: "Store error",
			ids:  []int64{1},
			mockSetup: func() {
				mockRepo.EXPECT().FindProductsByIDs(gomock.Any(), []int64{1}).Return(nil, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			got, err := svc.Summarize(context.Background(), tt.ids)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Summarize() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Summarize() unexpected error: %v", err)
			}
			if len(got.Items) != len(tt.want) {
				t.Fatalf("Summarize() items = %v, want %v", got.Items, tt.want)
			}
			for i, w := range tt.want {
				it := got.Items[i]
				if it.Product.ID != w.id || it.Quantity != w.qty || !it.Subtotal.Equal(price(w.subtotal)) {
					t.Errorf("item %d = {%d %d %s}, want %v", i, it.Product.ID, it.Quantity, it.Subtotal, w)
				}
			}
			if !got.Total.Equal(price(tt.total)) {
				t.Errorf("Summarize() total = %s, want %s", got.Total, tt.total)
			}
		})
	}
}

func TestCartService_SummarizeCart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := ports.NewMockCatalogRepositoryPort(ctrl)
	svc := NewCartService(mockRepo)

	mockRepo.EXPECT().FindProductsByIDs(gomock.Any(), []int64{3}).Return([]*domain.Product{tenis}, nil)
	got, err := svc.SummarizeCart(context.Background(), cartOf(3, 3))
	if err != nil {
		t.Fatalf("SummarizeCart() unexpected error: %v", err)
	}
	if !got.Total.Equal(price("598.00")) {
		t.Errorf("SummarizeCart() total = %s, want 598.00", got.Total)
	}

	_, err = svc.SummarizeCart(context.Background(), &memCart{loadErr: errors.New("bad cookie")})
	if err == nil {
		t.Errorf("SummarizeCart() expected load error")
	}
}
