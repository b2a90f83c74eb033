package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"repono/internal/config"
	"repono/internal/domain"
	"repono/internal/port"
)

// Claims represents the JWT claims with tenant context.
type Claims struct {
	jwt.RegisteredClaims
	AccountID uuid.UUID       `json:"account_id"`
	UserID    uuid.UUID       `json:"user_id"`
	Email     string          `json:"email"`
	Role      domain.UserRole `json:"role"`
}

// TokenPair holds one access/refresh token pair.
type TokenPair struct {
	AccessToken   string
	RefreshToken  string
	AccessExpiry  time.Time
	RefreshExpiry time.Time
}

// SessionUser is the user JSON returned by every session endpoint.
type SessionUser struct {
	Email        string              `json:"email"`
	Participants []map[string]string `json:"participants"`
	Type         []string            `json:"type"`
}

// BlankSessionUser is rendered when no valid session exists.
func BlankSessionUser() *SessionUser {
	return &SessionUser{Participants: []map[string]string{}, Type: []string{}}
}

// LoginInput is the DTO for login requests. Expire is an access-token
// lifetime hint in hours; zero means the configured default.
type LoginInput struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
	Expire   int    `json:"expire" form:"expire"`
}

// AuthService issues, refreshes, and validates session tokens.
type AuthService interface {
	Login(ctx context.Context, account *domain.Account, input LoginInput) (*SessionUser, *TokenPair, error)
	Refresh(ctx context.Context, account *domain.Account, refreshToken string) (*SessionUser, *TokenPair, error)
	Current(ctx context.Context, account *domain.Account, accessToken string) (*SessionUser, error)
	// ValidateAccess parses an access token, failing closed on any defect.
	ValidateAccess(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo        port.UserRepository
	participantRepo port.ParticipantRepository
	cfg             config.JWTConfig
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(
	userRepo port.UserRepository,
	participantRepo port.ParticipantRepository,
	cfg config.JWTConfig,
) AuthService {
	return &authService{
		userRepo:        userRepo,
		participantRepo: participantRepo,
		cfg:             cfg,
	}
}

func (s *authService) Login(ctx context.Context, account *domain.Account, input LoginInput) (*SessionUser, *TokenPair, error) {
	if !account.IsActive {
		return nil, nil, domain.ErrAccountInactive
	}

	user, err := s.userRepo.GetByEmail(ctx, account.ID, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("auth.Login: %w", err)
	}
	if !user.IsActive {
		return nil, nil, domain.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	sessionUser, err := s.sessionUser(ctx, account, user)
	if err != nil {
		return nil, nil, err
	}
	pair, err := s.generateTokenPair(user, s.accessExpiry(input.Expire))
	if err != nil {
		return nil, nil, err
	}
	return sessionUser, pair, nil
}

func (s *authService) Refresh(ctx context.Context, account *domain.Account, refreshToken string) (*SessionUser, *TokenPair, error) {
	claims, err := s.validateTokenString(refreshToken, "refresh")
	if err != nil {
		return nil, nil, domain.ErrInvalidToken
	}
	if claims.AccountID != account.ID {
		return nil, nil, domain.ErrInvalidToken
	}

	// A deactivated user's session is dead, same as an unknown one.
	user, err := s.userRepo.GetByID(ctx, claims.AccountID, claims.UserID)
	if err != nil || !user.IsActive {
		return nil, nil, domain.ErrInvalidToken
	}

	sessionUser, err := s.sessionUser(ctx, account, user)
	if err != nil {
		return nil, nil, err
	}
	// Rotation: both tokens are reissued on every refresh.
	pair, err := s.generateTokenPair(user, s.cfg.AccessTokenExpiry)
	if err != nil {
		return nil, nil, err
	}
	return sessionUser, pair, nil
}

func (s *authService) Current(ctx context.Context, account *domain.Account, accessToken string) (*SessionUser, error) {
	claims, err := s.validateTokenString(accessToken, "access")
	if err != nil || claims.AccountID != account.ID {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.AccountID, claims.UserID)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	return s.sessionUser(ctx, account, user)
}

func (s *authService) ValidateAccess(tokenString string) (*Claims, error) {
	return s.validateTokenString(tokenString, "access")
}

// sessionUser assembles the user JSON: admin-set participants and role tags.
func (s *authService) sessionUser(ctx context.Context, account *domain.Account, user *domain.User) (*SessionUser, error) {
	grants, err := s.participantRepo.ListByAgent(ctx, account.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("auth: listing participants: %w", err)
	}

	participants := make([]map[string]string, 0, len(grants))
	for _, g := range grants {
		participants = append(participants, map[string]string{g.AdminSetTitle: string(g.Access)})
	}

	return &SessionUser{
		Email:        user.Email,
		Participants: participants,
		Type:         user.RoleTags(),
	}, nil
}

// accessExpiry resolves the expire hint (hours) against the configured
// default and ceiling.
func (s *authService) accessExpiry(expireHours int) time.Duration {
	if expireHours <= 0 {
		return s.cfg.AccessTokenExpiry
	}
	expiry := time.Duration(expireHours) * time.Hour
	if s.cfg.MaxAccessExpiry > 0 && expiry > s.cfg.MaxAccessExpiry {
		return s.cfg.MaxAccessExpiry
	}
	return expiry
}

func (s *authService) generateTokenPair(user *domain.User, accessTTL time.Duration) (*TokenPair, error) {
	now := time.Now()
	accessExpiry := now.Add(accessTTL)
	refreshExpiry := now.Add(s.cfg.RefreshTokenExpiry)

	accessClaims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(accessExpiry),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{"access"},
		},
		AccountID: user.AccountID,
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}

	refreshClaims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(refreshExpiry),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{"refresh"},
		},
		AccountID: user.AccountID,
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("signing refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:   accessToken,
		RefreshToken:  refreshToken,
		AccessExpiry:  accessExpiry,
		RefreshExpiry: refreshExpiry,
	}, nil
}

func (s *authService) validateTokenString(tokenString, audience string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	aud, _ := claims.GetAudience()
	for _, a := range aud {
		if a == audience {
			return claims, nil
		}
	}
	return nil, domain.ErrUnauthorized
}
