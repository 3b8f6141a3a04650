// internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
}

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

type OrderStatus string

const (
	OrderStatusAwaitingPayment OrderStatus = "Awaiting Payment"
	OrderStatusPaid            OrderStatus = "Paid"
)

type Address struct {
	City       string `json:"city"`
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
}

type Order struct {
	ID            string          `json:"id"`
	CreatedAt     time.Time       `json:"created_at"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Description   string          `json:"description"`
	Status        OrderStatus     `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	Address       Address         `json:"address"`
	UserID        int64           `json:"user_id"`
}

// DemoProducts is the catalog seeded on the first visit to an empty store.
func DemoProducts() []*Product {
	return []*Product{
		{Name: "Camiseta Oversized Thunder", Price: decimal.RequireFromString("89.90"), Image: "image.png", Category: "Streetwear", Description: "Algodão premium com corte largo."},
		{Name: "Bermuda Sarja Side Stripe", Price: decimal.RequireFromString("119.90"), Image: "image2.png", Category: "Casual", Description: "Conforto e estilo para o verão."},
		{Name: "Jaqueta Bomber Preta", Price: decimal.RequireFromString("259.90"), Image: "https://images.unsplash.com/photo-1551028919-ac7bcb5fb8eb?w=500", Category: "Casacos", Description: "Essencial para dias frios."},
		{Name: "Vestido Midi Floral", Price: decimal.RequireFromString("149.90"), Image: "https://images.unsplash.com/photo-1572804013309-59a88b7e92f1?w=500", Category: "Feminino", Description: "Elegância natural."},
		{Name: "Boné Minimalist", Price: decimal.RequireFromString("59.90"), Image: "https://images.unsplash.com/photo-1588850561407-ed78c282e89b?w=500", Category: "Acessórios", Description: "O toque final no look."},
		{Name: "Tênis Urban White", Price: decimal.RequireFromString("299.00"), Image: "https://images.unsplash.com/photo-1549298916-b41d501d3772?w=500", Category: "Calçados", Description: "Design moderno e leve."},
	}
}
