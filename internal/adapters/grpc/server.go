package grpc

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/mahabubulhasibshawon/lojamix/internal/application"
	"github.com/mahabubulhasibshawon/lojamix/internal/domain"
	"github.com/mahabubulhasibshawon/lojamix/pkg/auth"
)

type Server struct {
	authService    *application.AuthService
	catalogService *application.CatalogService
	orderService   *application.OrderService
	tokens         *auth.TokenManager
}

func NewServer(authService *application.AuthService, catalog *application.CatalogService, orders *application.OrderService, tokens *auth.TokenManager) *Server {
	return &Server{
		authService:    authService,
		catalogService: catalog,
		orderService:   orders,
		tokens:         tokens,
	}
}

func (s *Server) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	token, _, err := s.authService.Login(ctx, req.Email, req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return &LoginResponse{Message: "invalid credentials", Type: "error", Code: 400}, nil
	}
	if err != nil {
		return nil, internal(ctx, "Login", err)
	}
	return &LoginResponse{
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
		AccessToken: token,
		Message:     "Logged in",
		Type:        "success",
		Code:        200,
	}, nil
}

func (s *Server) ListProducts(ctx context.Context, req *ListProductsRequest) (*ListProductsResponse, error) {
	if err := s.catalogService.EnsureSeeded(ctx); err != nil {
		return nil, internal(ctx, "ListProducts", err)
	}

	var (
		products []*domain.Product
		err      error
	)
	if req.Category != "" {
		_, products, err = s.catalogService.ProductsInCategory(ctx, req.Category)
	} else {
		products, err = s.catalogService.ListProducts(ctx)
	}
	if errors.Is(err, domain.ErrNotFound) {
		return &ListProductsResponse{Message: "category not found", Type: "error", Code: 404}, nil
	}
	if err != nil {
		return nil, internal(ctx, "ListProducts", err)
	}
	return &ListProductsResponse{Products: products, Message: "Products successfully fetched.", Type: "success", Code: 200}, nil
}

func (s *Server) ListCategories(ctx context.Context, _ *ListCategoriesRequest) (*ListCategoriesResponse, error) {
	categories, err := s.catalogService.ListCategories(ctx)
	if err != nil {
		return nil, internal(ctx, "ListCategories", err)
	}
	return &ListCategoriesResponse{Categories: categories, Message: "Categories successfully fetched.", Type: "success", Code: 200}, nil
}

func (s *Server) ListOrders(ctx context.Context, _ *ListOrdersRequest) (*ListOrdersResponse, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "Unauthorized")
	}
	orders, err := s.orderService.ListOrders(ctx, userID)
	if err != nil {
		return nil, internal(ctx, "ListOrders", err)
	}
	return &ListOrdersResponse{Orders: orders, Message: "Orders successfully fetched.", Type: "success", Code: 200}, nil
}

func (s *Server) GetOrder(ctx context.Context, req *GetOrderRequest) (*GetOrderResponse, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "Unauthorized")
	}
	order, err := s.orderService.FindOrder(ctx, req.OrderID, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return &GetOrderResponse{Message: "order not found", Type: "error", Code: 404}, nil
	}
	if err != nil {
		return nil, internal(ctx, "GetOrder", err)
	}
	return &GetOrderResponse{Order: order, Message: "Order successfully fetched.", Type: "success", Code: 200}, nil
}

func internal(ctx context.Context, method string, err error) error {
	slog.ErrorContext(ctx, "rpc failed", "method", method, "error", err)
	return status.Error(codes.Internal, "internal error")
}

type userIDKey struct{}

func userIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey{}).(int64)
	return id, ok
}

var publicMethods = map[string]bool{
	fullMethod("Login"):          true,
	fullMethod("ListProducts"):   true,
	fullMethod("ListCategories"): true,
}

// AuthInterceptor requires a valid bearer token on every method except the
// public catalog and login calls, and puts the caller's user id on the context.
func AuthInterceptor(tokens *auth.TokenManager) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if publicMethods[info.FullMethod] {
			return handler(ctx, req)
		}
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}
		authHeader := md.Get("authorization")
		if len(authHeader) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing authorization")
		}
		token := strings.TrimPrefix(authHeader[0], "Bearer ")
		claims, err := tokens.ValidateToken(token)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}
		return handler(context.WithValue(ctx, userIDKey{}, claims.UserID), req)
	}
}
