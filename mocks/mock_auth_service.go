package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"repono/internal/domain"
	"repono/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, account *domain.Account, input service.LoginInput) (*service.SessionUser, *service.TokenPair, error) {
	args := m.Called(ctx, account, input)
	var user *service.SessionUser
	if args.Get(0) != nil {
		user = args.Get(0).(*service.SessionUser)
	}
	var pair *service.TokenPair
	if args.Get(1) != nil {
		pair = args.Get(1).(*service.TokenPair)
	}
	return user, pair, args.Error(2)
}

func (m *MockAuthService) Refresh(ctx context.Context, account *domain.Account, refreshToken string) (*service.SessionUser, *service.TokenPair, error) {
	args := m.Called(ctx, account, refreshToken)
	var user *service.SessionUser
	if args.Get(0) != nil {
		user = args.Get(0).(*service.SessionUser)
	}
	var pair *service.TokenPair
	if args.Get(1) != nil {
		pair = args.Get(1).(*service.TokenPair)
	}
	return user, pair, args.Error(2)
}

func (m *MockAuthService) Current(ctx context.Context, account *domain.Account, accessToken string) (*service.SessionUser, error) {
	args := m.Called(ctx, account, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SessionUser), args.Error(1)
}

func (m *MockAuthService) ValidateAccess(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}
