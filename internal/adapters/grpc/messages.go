package grpc

import "github.com/mahabubulhasibshawon/lojamix/internal/domain"

// Every response carries the same envelope: Message, Type ("success" or
// "error") and an HTTP-like Code.

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int64  `json:"expires_in,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
	Message     string `json:"message"`
	Type        string `json:"type"`
	Code        int32  `json:"code"`
}

type ListProductsRequest struct {
	// Category is an optional category slug.
	Category string `json:"category,omitempty"`
}

type ListProductsResponse struct {
	Products []*domain.Product `json:"products,omitempty"`
	Message  string            `json:"message"`
	Type     string            `json:"type"`
	Code     int32             `json:"code"`
}

type ListCategoriesRequest struct{}

type ListCategoriesResponse struct {
	Categories []domain.Category `json:"categories,omitempty"`
	Message    string            `json:"message"`
	Type       string            `json:"type"`
	Code       int32             `json:"code"`
}

type ListOrdersRequest struct{}

type ListOrdersResponse struct {
	Orders  []*domain.Order `json:"orders,omitempty"`
	Message string          `json:"message"`
	Type    string          `json:"type"`
	Code    int32           `json:"code"`
}

type GetOrderRequest struct {
	OrderID string `json:"order_id"`
}

type GetOrderResponse struct {
	Order   *domain.Order `json:"order,omitempty"`
	Message string        `json:"message"`
	Type    string        `json:"type"`
	Code    int32         `json:"code"`
}
