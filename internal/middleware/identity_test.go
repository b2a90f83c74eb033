package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"repono/internal/config"
	"repono/internal/domain"
	"repono/internal/middleware"
	"repono/internal/service"
	"repono/mocks"
)

func testAccount() *domain.Account {
	return &domain.Account{
		ID:       uuid.New(),
		Name:     "Test Repository",
		Tenant:   "test",
		CName:    "test.example.org",
		IsActive: true,
	}
}

func identityRouter(authSvc service.AuthService, account *domain.Account) (*gin.Engine, *domain.Identity) {
	gin.SetMode(gin.TestMode)
	captured := &domain.Identity{}
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeyAccount, account)
		c.Next()
	})
	r.Use(middleware.Identity(authSvc))
	r.GET("/whoami", func(c *gin.Context) {
		*captured = middleware.GetIdentity(c)
		c.Status(http.StatusOK)
	})
	return r, captured
}

func TestIdentity_NoToken(t *testing.T) {
	svc := new(mocks.MockAuthService)
	r, captured := identityRouter(svc, testAccount())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, captured.SignedIn())
}

func TestIdentity_BearerHeader(t *testing.T) {
	svc := new(mocks.MockAuthService)
	account := testAccount()
	svc.On("ValidateAccess", "good-token").Return(&service.Claims{
		AccountID: account.ID,
		Email:     "user@test.org",
		Role:      domain.RoleUser,
	}, nil)
	r, captured := identityRouter(svc, account)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.True(t, captured.SignedIn())
	assert.Equal(t, "user@test.org", captured.Email)
}

func TestIdentity_CookieFallback(t *testing.T) {
	svc := new(mocks.MockAuthService)
	account := testAccount()
	svc.On("ValidateAccess", "cookie-token").Return(&service.Claims{
		AccountID: account.ID,
		Email:     "user@test.org",
		Role:      domain.RoleAdmin,
	}, nil)
	r, captured := identityRouter(svc, account)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AccessCookieName, Value: "cookie-token"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.True(t, captured.SignedIn())
	assert.True(t, captured.Admin())
}

func TestIdentity_BadTokenFailsClosed(t *testing.T) {
	svc := new(mocks.MockAuthService)
	svc.On("ValidateAccess", "bad-token").Return(nil, domain.ErrInvalidToken)
	r, captured := identityRouter(svc, testAccount())

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// A defective token downgrades the request to anonymous, not a 401.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, captured.SignedIn())
}

func TestIdentity_CrossTenantTokenDowngrades(t *testing.T) {
	svc := new(mocks.MockAuthService)
	// A validly signed token issued for another account must not carry any
	// identity onto this tenant, least of all an admin one.
	svc.On("ValidateAccess", "foreign-token").Return(&service.Claims{
		AccountID: uuid.New(),
		Email:     "admin@other.org",
		Role:      domain.RoleAdmin,
	}, nil)
	r, captured := identityRouter(svc, testAccount())

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer foreign-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, captured.SignedIn())
	assert.False(t, captured.Admin())
}

func TestIdentity_CrossTenantAdminLoginReplay(t *testing.T) {
	// End to end with real tokens: an admin logs in on account A, then the
	// issued access token is replayed against account B. The shared signing
	// secret and the dot-domain cookies make this replay trivial to mount,
	// so the middleware has to reject it by account ID.
	accountA := testAccount()
	accountB := testAccount()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	assert.NoError(t, err)
	admin := &domain.User{
		ID:           uuid.New(),
		AccountID:    accountA.ID,
		Email:        "admin@test.org",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}

	userRepo := new(mocks.MockUserRepo)
	participantRepo := new(mocks.MockParticipantRepo)
	userRepo.On("GetByEmail", mock.Anything, accountA.ID, "admin@test.org").Return(admin, nil)
	participantRepo.On("ListByAgent", mock.Anything, accountA.ID, "admin@test.org").
		Return([]domain.Participant{}, nil)

	authSvc := service.NewAuthService(userRepo, participantRepo, config.JWTConfig{
		Secret:             "test-secret-key-for-unit-tests",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 336 * time.Hour,
		Issuer:             "repono-test",
	})

	_, pair, err := authSvc.Login(context.Background(), accountA, service.LoginInput{
		Email:    "admin@test.org",
		Password: "password123",
	})
	assert.NoError(t, err)

	r, captured := identityRouter(authSvc, accountB)
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, captured.SignedIn())
	assert.False(t, captured.Admin())

	// The same token on its own tenant still resolves.
	r, captured = identityRouter(authSvc, accountA)
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, captured.SignedIn())
	assert.True(t, captured.Admin())
}
