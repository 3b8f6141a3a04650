package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mahabubulhasibshawon/lojamix/internal/domain"
	"github.com/mahabubulhasibshawon/lojamix/internal/ports"
	"github.com/mahabubulhasibshawon/lojamix/pkg/auth"
)

type AuthService struct {
	repo   ports.UserRepositoryPort
	tokens *auth.TokenManager
}

func NewAuthService(repo ports.UserRepositoryPort, tokens *auth.TokenManager) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user. An email that is already registered yields
// domain.ErrEmailTaken and leaves the store untouched.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)
	if username == "" || email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return s.repo.CreateUser(ctx, username, email, string(hashedPassword))
}

// Authenticate checks email and password, returning domain.ErrInvalidCredentials
// for an unknown email or a wrong password alike.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.repo.FindUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and issues a bearer token for the RPC API.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	token, err := s.tokens.GenerateToken(user.Email, user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) UserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.FindUserByID(ctx, id)
}
