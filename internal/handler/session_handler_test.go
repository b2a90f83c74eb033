package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"repono/internal/domain"
	"repono/internal/handler"
	"repono/internal/middleware"
	"repono/internal/service"
	"repono/mocks"
)

func setupSessionRouter(svc service.AuthService, account *domain.Account) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewSessionHandler(svc)
	grp := r.Group("/api/v1/tenant/:tenant_id/users", withContext(account, domain.Anonymous()))
	grp.POST("/login", h.Login)
	grp.POST("/refresh", h.Refresh)
	grp.POST("/current", h.Current)
	grp.DELETE("/log_out", h.Logout)
	return r
}

func testTokenPair() *service.TokenPair {
	return &service.TokenPair{
		AccessToken:   "access-token",
		RefreshToken:  "refresh-token",
		AccessExpiry:  time.Now().Add(time.Hour),
		RefreshExpiry: time.Now().Add(336 * time.Hour),
	}
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSessionHandler_Login_SetsCookies(t *testing.T) {
	svc := new(mocks.MockAuthService)
	account := testAccount()
	r := setupSessionRouter(svc, account)

	user := &service.SessionUser{
		Email:        "user@test.org",
		Participants: []map[string]string{{"Default Admin Set": "deposit"}},
		Type:         []string{},
	}
	svc.On("Login", mock.Anything, account, service.LoginInput{
		Email:    "user@test.org",
		Password: "password123",
	}).Return(user, testTokenPair(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tenant/test/users/login",
		strings.NewReader(`{"email":"user@test.org","password":"password123"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Host = "test.example.org"
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body service.SessionUser
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "user@test.org", body.Email)
	assert.Equal(t, []map[string]string{{"Default Admin Set": "deposit"}}, body.Participants)

	cookies := w.Result().Cookies()
	jwtCookie := cookieByName(cookies, middleware.AccessCookieName)
	refreshCookie := cookieByName(cookies, middleware.RefreshCookieName)
	sessionCookie := cookieByName(cookies, handler.SessionCookieName)
	assert.NotNil(t, jwtCookie)
	assert.NotNil(t, refreshCookie)
	assert.NotNil(t, sessionCookie)
	assert.Equal(t, "access-token", jwtCookie.Value)
	assert.Equal(t, "refresh-token", refreshCookie.Value)
	assert.Equal(t, ".test.example.org", jwtCookie.Domain)
	assert.True(t, jwtCookie.HttpOnly)
}

func TestSessionHandler_Login_FrontendURLCookieDomain(t *testing.T) {
	svc := new(mocks.MockAuthService)
	account := testAccount()
	frontend := "app.example.org"
	account.FrontendURL = &frontend
	r := setupSessionRouter(svc, account)

	svc.On("Login", mock.Anything, account, mock.Anything).
		Return(&service.SessionUser{Email: "user@test.org"}, testTokenPair(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tenant/test/users/login",
		strings.NewReader(`{"email":"user@test.org","password":"password123"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Host = "api.internal:8080"
	r.ServeHTTP(w, req)

	jwtCookie := cookieByName(w.Result().Cookies(), middleware.AccessCookieName)
	assert.NotNil(t, jwtCookie)
	assert.Equal(t, ".app.example.org", jwtCookie.Domain)
}

func TestSessionHandler_Login_InvalidCredentials(t *testing.T) {
	svc := new(mocks.MockAuthService)
	account := testAccount()
	r := setupSessionRouter(svc, account)

	svc.On("Login", mock.Anything, account, mock.Anything).
		Return(nil, nil, domain.ErrInvalidCredentials)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tenant/test/users/login",
		strings.NewReader(`{"email":"user@test.org","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body handler.ErrorEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusUnauthorized, body.Status)
	assert.Equal(t, "Invalid email or password.", body.Message)
	assert.Empty(t, w.Result().Cookies())
}

func TestSessionHandler_Login_MissingFields(t *testing.T) {
	svc := new(mocks.MockAuthService)
	account := testAccount()
	r := setupSessionRouter(svc, account)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tenant/test/users/login",
		strings.NewReader(`{"email":"user@test.org"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionHandler_Refresh_RotatesCookies(t *testing.T) {
	svc := new(mocks.MockAuthService)
	account := testAccount()
	r := setupSessionRouter(svc, account)

	user := &service.SessionUser{Email: "user@test.org", Participants: []map[string]string{}, Type: []string{}}
	svc.On("Refresh", mock.Anything, account, "old-refresh-token").
		Return(user, testTokenPair(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tenant/test/users/refresh", nil)
	req.Header.Set("Authorization", "Bearer old-refresh-token")
	req.Host = "test.example.org"
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	jwtCookie := cookieByName(w.Result().Cookies(), middleware.AccessCookieName)
	refreshCookie := cookieByName(w.Result().Cookies(), middleware.RefreshCookieName)
	assert.Equal(t, "access-token", jwtCookie.Value)
	assert.Equal(t, "refresh-token", refreshCookie.Value)
	svc.AssertExpectations(t)
}

func TestSessionHandler_Refresh_InvalidTokenClearsCookies(t *testing.T) {
	svc := new(mocks.MockAuthService)
	account := testAccount()
	r := setupSessionRouter(svc, account)

	svc.On("Refresh", mock.Anything, account, "stale-token").
		Return(nil, nil, domain.ErrInvalidToken)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tenant/test/users/refresh", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	req.Host = "test.example.org"
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body handler.ErrorEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Invalid token", body.Message)

	jwtCookie := cookieByName(w.Result().Cookies(), middleware.AccessCookieName)
	assert.NotNil(t, jwtCookie)
	assert.Empty(t, jwtCookie.Value)
	assert.Less(t, jwtCookie.MaxAge, 0)
}

func TestSessionHandler_Current_BadTokenRendersBlankUser(t *testing.T) {
	svc := new(mocks.MockAuthService)
	account := testAccount()
	r := setupSessionRouter(svc, account)

	svc.On("Current", mock.Anything, account, "bad-token").
		Return(nil, domain.ErrInvalidToken)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tenant/test/users/current", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body service.SessionUser
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Email)
	assert.NotNil(t, body.Participants)
	assert.Empty(t, body.Participants)
	assert.NotNil(t, body.Type)
	assert.Empty(t, body.Type)
}

func TestSessionHandler_Logout(t *testing.T) {
	svc := new(mocks.MockAuthService)
	account := testAccount()
	r := setupSessionRouter(svc, account)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/tenant/test/users/log_out", nil)
	req.Host = "test.example.org"
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Successfully logged out", body["message"])

	for _, name := range []string{middleware.AccessCookieName, middleware.RefreshCookieName, handler.SessionCookieName} {
		cookie := cookieByName(w.Result().Cookies(), name)
		assert.NotNil(t, cookie)
		assert.Empty(t, cookie.Value)
		assert.Less(t, cookie.MaxAge, 0)
	}
}
