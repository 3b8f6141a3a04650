package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/mahabubulhasibshawon/lojamix/internal/domain"
	"github.com/mahabubulhasibshawon/lojamix/internal/ports"
	"github.com/mahabubulhasibshawon/lojamix/pkg/auth"
)

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := ports.NewMockUserRepositoryPort(ctrl)
	svc := NewAuthService(mockRepo, auth.NewTokenManager("secret", time.Hour))

	tests := []struct {
		name      string
		username  string
		email     string
		password  string
		mockSetup func()
		wantErr   error
	}{
		{
			name:     "Successful signup",
			username: "ana",
			email:    "  Ana@Example.com ",
			password: "securepass",
			mockSetup: func() {
				mockRepo.EXPECT().CreateUser(gomock.Any(), "ana", "ana@example.com", gomock.Any()).
					DoAndReturn(func(_ context.Context, username, email, hash string) (*domain.User, error) {
						if bcrypt.CompareHashAndPassword([]byte(hash), []byte("securepass")) != nil {
							t.Errorf("CreateUser() got a hash that does not match the password")
						}
						return &domain.User{ID: 1, Username: username, Email: email, PasswordHash: hash}, nil
					})
			},
		},
		{
			name:      "Missing email",
			username:  "ana",
			email:     "",
			password:  "securepass",
			mockSetup: func() {},
			wantErr:   domain.ErrMissingFields,
		},
		{
			name:     "Email already registered",
			username: "ana",
			email:    "ana@example.com",
			password: "securepass",
			mockSetup: func() {
				mockRepo.EXPECT().CreateUser(gomock.Any(), "ana", "ana@example.com", gomock.Any()).Return(nil, domain.ErrEmailTaken)
			},
			wantErr: domain.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			user, err := svc.Register(context.Background(), tt.username, tt.email, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Register() unexpected error: %v", err)
			}
			if user == nil || user.Email != "ana@example.com" {
				t.Errorf("Register() user = %v", user)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := ports.NewMockUserRepositoryPort(ctrl)
	tokens := auth.NewTokenManager("secret", time.Hour)
	svc := NewAuthService(mockRepo, tokens)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("securepass"), bcrypt.MinCost)
	stored := &domain.User{ID: 1, Username: "ana", Email: "ana@example.com", PasswordHash: string(hashed)}

	tests := []struct {
		name      string
		email     string
		password  string
		mockSetup func()
		wantErr   error
	}{
		{
			name:     "Successful login",
			email:    "ANA@example.com",
			password: "securepass",
			mockSetup: func() {
				mockRepo.EXPECT().FindUserByEmail(gomock.Any(), "ana@example.com").Return(stored, nil)
			},
		},
		{
			name:     "Invalid credentials",
			email:    "ana@example.com",
			password: "wrongpass",
			mockSetup: func() {
				mockRepo.EXPECT().FindUserByEmail(gomock.Any(), "ana@example.com").Return(stored, nil)
			},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:     "User not found",
			email:    "ghost@example.com",
			password: "securepass",
			mockSetup: func() {
				mockRepo.EXPECT().FindUserByEmail(gomock.Any(), "ghost@example.com").Return(nil, domain.ErrNotFound)
			},
			wantErr: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			token, user, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Login() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() unexpected error: %v", err)
			}
			claims, err := tokens.ValidateToken(token)
			if err != nil || claims.UserID != user.ID {
				t.Errorf("Login() token = %q, claims = %v, err = %v", token, claims, err)
			}
		})
	}
}
